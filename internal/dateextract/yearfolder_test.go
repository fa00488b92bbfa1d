package dateextract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsYearFolderName(t *testing.T) {
	year, ok := IsYearFolderName("Photos from 2019", 2026)
	assert.True(t, ok)
	assert.Equal(t, 2019, year)
}

func TestIsYearFolderNameUnderscoreVariant(t *testing.T) {
	year, ok := IsYearFolderName("Photos_from_2019", 2026)
	assert.True(t, ok)
	assert.Equal(t, 2019, year)
}

func TestIsYearFolderNameCaseInsensitive(t *testing.T) {
	_, ok := IsYearFolderName("PHOTOS FROM 2021", 2026)
	assert.True(t, ok)
}

func TestIsYearFolderNameRejectsOutOfRange(t *testing.T) {
	_, ok := IsYearFolderName("Photos from 1899", 2026)
	assert.False(t, ok)

	_, ok = IsYearFolderName("Photos from 2099", 2026)
	assert.False(t, ok)
}

func TestIsYearFolderNameRejectsNonMatch(t *testing.T) {
	_, ok := IsYearFolderName("Album", 2026)
	assert.False(t, ok)
}

func TestExtractYearFolder(t *testing.T) {
	res := ExtractYearFolder(2018)
	assert.Equal(t, RankYearFolder, res.Rank)
	assert.Equal(t, MethodYearFolder, res.Method)
	assert.Equal(t, time.Date(2018, time.January, 1, 0, 0, 0, 0, time.Local), res.Date)
}
