package dateextract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEXIFDateStringStandardForm(t *testing.T) {
	got, err := ParseEXIFDateString("2020:03:04 15:30:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 4, 15, 30, 45, 0, time.Local), got)
}

func TestParseEXIFDateStringSlashSeparators(t *testing.T) {
	got, err := ParseEXIFDateString("2020/03/04 15:30:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 4, 15, 30, 45, 0, time.Local), got)
}

func TestParseEXIFDateStringPadsSingleDigitComponent(t *testing.T) {
	got, err := ParseEXIFDateString("2020: 3: 4 15:30:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 4, 15, 30, 45, 0, time.Local), got)
}

func TestParseEXIFDateStringRejectsGarbage(t *testing.T) {
	_, err := ParseEXIFDateString("not a date")
	assert.Error(t, err)
}
