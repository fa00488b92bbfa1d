package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoutsort/internal/errs"
	"takeoutsort/internal/model"
)

func TestRunDedupMergesIdenticalContentAcrossYearAndAlbum(t *testing.T) {
	root := t.TempDir()
	yearPath := filepath.Join(root, "a.jpg")
	albumPath := filepath.Join(root, "a (album copy).jpg")
	require.NoError(t, os.WriteFile(yearPath, []byte("identical bytes"), 0o644))
	require.NoError(t, os.WriteFile(albumPath, []byte("identical bytes"), 0o644))

	coll := model.NewMediaCollection()
	yearEntity := model.NewMediaEntity(model.FileEntity{SourcePath: yearPath, IsCanonical: true})
	coll.Append(yearEntity)
	albumEntity := model.NewMediaEntity(model.FileEntity{SourcePath: albumPath, IsCanonical: false})
	albumEntity.AddAlbum("Trip", filepath.Dir(albumPath))
	coll.Append(albumEntity)

	counters := &errs.Counters{}
	runDedup(context.Background(), coll, 4, counters)

	require.Equal(t, 1, coll.Len())
	survivor := coll.At(0)
	assert.Equal(t, yearPath, survivor.PrimaryFile.SourcePath)
	assert.True(t, survivor.InAlbum("Trip"))
	require.Len(t, survivor.SecondaryFiles, 1)
	assert.Equal(t, albumPath, survivor.SecondaryFiles[0].SourcePath)
	assert.Equal(t, 1, counters.Succeeded)
}

func TestRunDedupLeavesDistinctContentUntouched(t *testing.T) {
	root := t.TempDir()
	pathA := filepath.Join(root, "a.jpg")
	pathB := filepath.Join(root, "b.jpg")
	require.NoError(t, os.WriteFile(pathA, []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("two"), 0o644))

	coll := model.NewMediaCollection()
	coll.Append(model.NewMediaEntity(model.FileEntity{SourcePath: pathA}))
	coll.Append(model.NewMediaEntity(model.FileEntity{SourcePath: pathB}))

	counters := &errs.Counters{}
	runDedup(context.Background(), coll, 4, counters)

	assert.Equal(t, 2, coll.Len())
	assert.Equal(t, 0, counters.Succeeded)
}

func TestBetterSurvivorPrefersLowerDateAccuracy(t *testing.T) {
	withDate := model.NewMediaEntity(model.FileEntity{SourcePath: "/in/a.jpg"})
	withDate.SetDate(withDate.DateTaken, 1, "exif")
	withoutDate := model.NewMediaEntity(model.FileEntity{SourcePath: "/in/b.jpg"})

	assert.True(t, betterSurvivor(withDate, withoutDate))
	assert.False(t, betterSurvivor(withoutDate, withDate))
}
