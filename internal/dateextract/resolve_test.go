package dateextract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToFilenamePattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_20200304_153045.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))

	res, ok, _ := Resolve(Input{Path: path})
	require.True(t, ok)
	assert.Equal(t, RankFilename, res.Rank)
}

func TestResolveFallsBackToYearFolderWhenNothingElseMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vacation.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))

	res, ok, _ := Resolve(Input{
		Path:             path,
		EnclosingYear:    2015,
		HasEnclosingYear: true,
	})
	require.True(t, ok)
	assert.Equal(t, RankYearFolder, res.Rank)
}

func TestResolveFailsWithoutAnySignal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vacation.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))

	_, ok, _ := Resolve(Input{Path: path})
	assert.False(t, ok)
}
