package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"takeoutsort/internal/config"
	"takeoutsort/internal/model"
)

func TestNewDispatchesOnAlbumBehavior(t *testing.T) {
	cases := map[config.AlbumBehavior]string{
		config.AlbumShortcut:        "shortcut",
		config.AlbumDuplicateCopy:   "duplicate-copy",
		config.AlbumReverseShortcut: "reverse-shortcut",
		config.AlbumJSON:            "json",
		config.AlbumIgnoreAlbums:    "ignore-albums",
		config.AlbumNothing:         "nothing",
		config.AlbumBehavior("unknown"): "nothing",
	}
	for behavior, wantName := range cases {
		assert.Equal(t, wantName, New(behavior).Name())
	}
}

func TestBestRankedPrefersLowerRanking(t *testing.T) {
	a := model.FileEntity{SourcePath: "/in/a.jpg", Ranking: 2}
	b := model.FileEntity{SourcePath: "/in/b.jpg", Ranking: 1}

	got := bestRanked([]model.FileEntity{a, b})
	assert.Equal(t, b, got)
}

func TestBestRankedTiebreaksOnShorterBasename(t *testing.T) {
	a := model.FileEntity{SourcePath: "/in/photo-long-name.jpg", Ranking: 1}
	b := model.FileEntity{SourcePath: "/in/img.jpg", Ranking: 1}

	got := bestRanked([]model.FileEntity{a, b})
	assert.Equal(t, b, got)
}

func TestBestRankedFinalTiebreakOnShorterPath(t *testing.T) {
	a := model.FileEntity{SourcePath: "/input/dir/a.jpg", Ranking: 1}
	b := model.FileEntity{SourcePath: "/in/a.jpg", Ranking: 1}

	got := bestRanked([]model.FileEntity{a, b})
	assert.Equal(t, b, got)
}

func TestSplitCanonical(t *testing.T) {
	primary := model.FileEntity{SourcePath: "/in/2020/a.jpg", IsCanonical: true}
	secondary := model.FileEntity{SourcePath: "/in/Trip/a.jpg", IsCanonical: false}
	m := model.NewMediaEntity(primary)
	m.SecondaryFiles = append(m.SecondaryFiles, secondary)

	canonical, nonCanonical := splitCanonical(m)

	assert.Equal(t, []model.FileEntity{primary}, canonical)
	assert.Equal(t, []model.FileEntity{secondary}, nonCanonical)
}

func TestSameFile(t *testing.T) {
	a := model.FileEntity{SourcePath: "/in/a.jpg"}
	b := model.FileEntity{SourcePath: "/in/a.jpg"}
	c := model.FileEntity{SourcePath: "/in/b.jpg"}

	assert.True(t, sameFile(a, b))
	assert.False(t, sameFile(a, c))
}

func TestDateParam(t *testing.T) {
	m := model.NewMediaEntity(model.FileEntity{})
	assert.Nil(t, dateParam(m))

	m.SetDate(m.DateTaken, 1, "exif")
	assert.NotNil(t, dateParam(m))
}
