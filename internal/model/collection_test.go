package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionAppendAndAt(t *testing.T) {
	c := NewMediaCollection()
	a := NewMediaEntity(FileEntity{SourcePath: "a"})
	b := NewMediaEntity(FileEntity{SourcePath: "b"})
	c.Append(a)
	c.Append(b)

	assert.Equal(t, 2, c.Len())
	assert.Same(t, a, c.At(0))
	assert.Same(t, b, c.At(1))
}

func TestCollectionReplaceAt(t *testing.T) {
	c := NewMediaCollection()
	c.Append(NewMediaEntity(FileEntity{SourcePath: "a"}))
	replacement := NewMediaEntity(FileEntity{SourcePath: "a-merged"})

	c.ReplaceAt(0, replacement)

	assert.Same(t, replacement, c.At(0))
}

func TestCollectionRemoveWherePreservesOrder(t *testing.T) {
	c := NewMediaCollection()
	for _, name := range []string{"a", "b", "c", "d"} {
		c.Append(NewMediaEntity(FileEntity{SourcePath: name}))
	}

	c.RemoveWhere(func(m *MediaEntity) bool {
		return m.PrimaryFile.SourcePath == "b" || m.PrimaryFile.SourcePath == "d"
	})

	var remaining []string
	c.ForEach(func(_ int, m *MediaEntity) {
		remaining = append(remaining, m.PrimaryFile.SourcePath)
	})
	assert.Equal(t, []string{"a", "c"}, remaining)
}

func TestCollectionForEachIndices(t *testing.T) {
	c := NewMediaCollection()
	c.Append(NewMediaEntity(FileEntity{SourcePath: "a"}))
	c.Append(NewMediaEntity(FileEntity{SourcePath: "b"}))

	var indices []int
	c.ForEach(func(i int, _ *MediaEntity) {
		indices = append(indices, i)
	})
	assert.Equal(t, []int{0, 1}, indices)
}

func TestCollectionSnapshotIsIndependent(t *testing.T) {
	c := NewMediaCollection()
	c.Append(NewMediaEntity(FileEntity{SourcePath: "a"}))

	snap := c.Snapshot()
	c.Append(NewMediaEntity(FileEntity{SourcePath: "b"}))

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, c.Len())
}
