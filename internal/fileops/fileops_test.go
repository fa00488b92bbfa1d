package fileops

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(fs), fs
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestMoveRelocatesFile(t *testing.T) {
	svc, fs := newTestService(t)
	writeFile(t, fs, "/in/a.jpg", "data")

	dst, err := svc.Move("/in/a.jpg", "/out/2020", nil, NewUsedNames())

	require.NoError(t, err)
	assert.Equal(t, "/out/2020/a.jpg", dst)
	exists, _ := afero.Exists(fs, "/in/a.jpg")
	assert.False(t, exists)
	data, _ := afero.ReadFile(fs, dst)
	assert.Equal(t, "data", string(data))
}

func TestMoveDisambiguatesOnCollision(t *testing.T) {
	svc, fs := newTestService(t)
	writeFile(t, fs, "/out/2020/a.jpg", "existing")
	writeFile(t, fs, "/in/a.jpg", "incoming")

	dst, err := svc.Move("/in/a.jpg", "/out/2020", nil, NewUsedNames())

	require.NoError(t, err)
	assert.Equal(t, "/out/2020/a (1).jpg", dst)
}

func TestMoveDisambiguatesAcrossMultipleCollisions(t *testing.T) {
	svc, fs := newTestService(t)
	writeFile(t, fs, "/out/2020/a.jpg", "1")
	writeFile(t, fs, "/out/2020/a (1).jpg", "2")
	writeFile(t, fs, "/in/a.jpg", "3")

	dst, err := svc.Move("/in/a.jpg", "/out/2020", nil, NewUsedNames())

	require.NoError(t, err)
	assert.Equal(t, "/out/2020/a (2).jpg", dst)
}

func TestMoveUsedNamesPreventsSameOperationCollision(t *testing.T) {
	svc, fs := newTestService(t)
	writeFile(t, fs, "/in/a.jpg", "1")
	writeFile(t, fs, "/in/album/a.jpg", "2")
	used := NewUsedNames()

	first, err := svc.Move("/in/a.jpg", "/out/2020", nil, used)
	require.NoError(t, err)
	second, err := svc.Move("/in/album/a.jpg", "/out/2020", nil, used)
	require.NoError(t, err)

	assert.Equal(t, "/out/2020/a.jpg", first)
	assert.Equal(t, "/out/2020/a (1).jpg", second)
}

func TestMoveStampsDate(t *testing.T) {
	svc, fs := newTestService(t)
	writeFile(t, fs, "/in/a.jpg", "data")
	when := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)

	dst, err := svc.Move("/in/a.jpg", "/out", &when, NewUsedNames())

	require.NoError(t, err)
	info, err := fs.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(when))
}

func TestCopyLeavesSourceInPlace(t *testing.T) {
	svc, fs := newTestService(t)
	writeFile(t, fs, "/in/a.jpg", "data")

	dst, err := svc.Copy("/in/a.jpg", "/out", nil, NewUsedNames())

	require.NoError(t, err)
	srcExists, _ := afero.Exists(fs, "/in/a.jpg")
	assert.True(t, srcExists)
	dstData, _ := afero.ReadFile(fs, dst)
	assert.Equal(t, "data", string(dstData))
}
