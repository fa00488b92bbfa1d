package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMedia(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRunDiscoveryClassifiesYearAndAlbumFolders(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, filepath.Join(root, "Photos from 2020", "a.jpg"))
	writeMedia(t, filepath.Join(root, "Trip to Paris", "b.jpg"))
	writeMedia(t, filepath.Join(root, "Trip to Paris", "b.jpg.json"))

	entries, err := runDiscovery(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]discoveryEntry{}
	for _, e := range entries {
		byName[filepath.Base(e.path)] = e
	}

	year := byName["a.jpg"]
	assert.True(t, year.isCanonical)
	assert.Equal(t, 2020, year.year)

	album := byName["b.jpg"]
	assert.False(t, album.isCanonical)
	assert.Equal(t, "Trip to Paris", album.albumName)
}

func TestRunDiscoverySkipsNonMediaFiles(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, filepath.Join(root, "Photos from 2021", "notes.txt"))

	entries, err := runDiscovery(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildCollectionSeedsAlbumsAndCanonical(t *testing.T) {
	entries := []discoveryEntry{
		{path: "/in/Photos from 2020/a.jpg", isCanonical: true, sourceDir: "/in/Photos from 2020", year: 2020, hasYear: true},
		{path: "/in/Trip/b.jpg", isCanonical: false, albumName: "Trip", sourceDir: "/in/Trip"},
	}

	coll := buildCollection(entries)

	require.Equal(t, 2, coll.Len())
	assert.True(t, coll.At(0).PrimaryFile.IsCanonical)
	assert.False(t, coll.At(1).PrimaryFile.IsCanonical)
	assert.True(t, coll.At(1).InAlbum("Trip"))
}
