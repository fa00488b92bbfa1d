package album

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"takeoutsort/internal/model"
)

func TestConsolidateTrimsAlbumNames(t *testing.T) {
	coll := model.NewMediaCollection()
	m := model.NewMediaEntity(model.FileEntity{SourcePath: "/in/2020/a.jpg"})
	m.AlbumsMap[" Trip "] = model.NewAlbumEntity(" Trip ", "/in/Trip")
	coll.Append(m)

	summary := Consolidate(coll)

	assert.True(t, m.InAlbum("Trip"))
	assert.False(t, m.InAlbum(" Trip "))
	assert.Equal(t, 1, summary.AlbumsRenamed)
	assert.Equal(t, 1, summary.EntitiesTouched)
	assert.Equal(t, 1, summary.AlbumCount)
}

func TestConsolidateMergesCollidingNames(t *testing.T) {
	coll := model.NewMediaCollection()
	m := model.NewMediaEntity(model.FileEntity{SourcePath: "/in/2020/a.jpg"})
	m.AlbumsMap["Trip"] = model.NewAlbumEntity("Trip", "/in/Trip")
	m.AlbumsMap[" Trip"] = model.NewAlbumEntity(" Trip", "/in/Trip (1)")
	coll.Append(m)

	summary := Consolidate(coll)

	assert.Len(t, m.AlbumsMap, 1)
	assert.Equal(t, []string{"/in/Trip", "/in/Trip (1)"}, m.AlbumsMap["Trip"].SortedSourceDirectories())
	assert.Equal(t, 1, summary.AlbumsMerged)
}

func TestConsolidateBackfillsEmptySourceDirectories(t *testing.T) {
	coll := model.NewMediaCollection()
	m := model.NewMediaEntity(model.FileEntity{SourcePath: "/in/2020/a.jpg"})
	m.AlbumsMap["Trip"] = model.AlbumEntity{Name: "Trip", SourceDirectories: map[string]struct{}{}}
	coll.Append(m)

	Consolidate(coll)

	assert.Equal(t, []string{"/in/2020"}, m.AlbumsMap["Trip"].SortedSourceDirectories())
}

func TestConsolidateDropsEmptyAlbumName(t *testing.T) {
	coll := model.NewMediaCollection()
	m := model.NewMediaEntity(model.FileEntity{SourcePath: "/in/2020/a.jpg"})
	m.AlbumsMap["   "] = model.NewAlbumEntity("   ", "/in/odd")
	coll.Append(m)

	Consolidate(coll)

	assert.Empty(t, m.AlbumsMap)
}
