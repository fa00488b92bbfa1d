package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileEntityHasDate(t *testing.T) {
	assert.False(t, FileEntity{}.HasDate())
	assert.True(t, FileEntity{DateAccuracy: 1}.HasDate())
}

func TestFileEntityDisposed(t *testing.T) {
	assert.False(t, FileEntity{}.Disposed())
	assert.True(t, FileEntity{IsDeleted: true}.Disposed())
	assert.True(t, FileEntity{TargetPath: "/out/a.jpg"}.Disposed())
	assert.False(t, FileEntity{IsDeleted: true, TargetPath: "/out/a.jpg"}.Disposed())
}

func TestAlbumEntityMerge(t *testing.T) {
	a := NewAlbumEntity("Trip", "/in/Trip")
	b := NewAlbumEntity("Trip", "/in/Trip (1)")

	merged := a.Merge(b)

	assert.Equal(t, []string{"/in/Trip", "/in/Trip (1)"}, merged.SortedSourceDirectories())
}

func TestMediaEntityAddAlbumMergesExisting(t *testing.T) {
	m := NewMediaEntity(FileEntity{SourcePath: "/in/2020/a.jpg"})
	m.AddAlbum("Trip", "/in/Trip")
	m.AddAlbum("Trip", "/in/Trip (1)")

	assert.True(t, m.InAlbum("Trip"))
	assert.Equal(t, []string{"/in/Trip", "/in/Trip (1)"}, m.AlbumsMap["Trip"].SortedSourceDirectories())
}

func TestMediaEntityAllFilesOrder(t *testing.T) {
	primary := FileEntity{SourcePath: "/in/2020/a.jpg"}
	secondary := FileEntity{SourcePath: "/in/2020/a.heic"}
	m := NewMediaEntity(primary)
	m.SecondaryFiles = append(m.SecondaryFiles, secondary)

	all := m.AllFiles()

	assert.Equal(t, []FileEntity{primary, secondary}, all)
}

func TestMediaEntitySetDate(t *testing.T) {
	m := NewMediaEntity(FileEntity{})
	when := time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)

	m.SetDate(when, 2, "exif")

	assert.True(t, m.HasDateTaken)
	assert.Equal(t, when, m.DateTaken)
	assert.Equal(t, 2, m.DateAccuracy)
	assert.Equal(t, "exif", m.DateTimeExtractionMethod)
}

func TestMediaEntityAlbumNamesSorted(t *testing.T) {
	m := NewMediaEntity(FileEntity{})
	m.AddAlbum("Zoo", "/in/Zoo")
	m.AddAlbum("Beach", "/in/Beach")

	assert.Equal(t, []string{"Beach", "Zoo"}, m.AlbumNames())
}
