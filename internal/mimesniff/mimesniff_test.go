package mimesniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestDetectPNG(t *testing.T) {
	got := Detect(pngMagic)
	assert.Equal(t, "image/png", got.MIME)
	assert.Equal(t, ".png", got.Extension)
}

func TestMIMEForExt(t *testing.T) {
	assert.Equal(t, "image/jpeg", MIMEForExt(".JPG"))
	assert.Equal(t, "image/heic", MIMEForExt(".heic"))
	assert.Equal(t, "", MIMEForExt(".unknown"))
}

func TestAVIMislabeledAsMP4(t *testing.T) {
	det := Detection{MIME: "video/x-msvideo", Extension: ".avi"}
	assert.True(t, AVIMislabeledAsMP4(det, ".mp4"))
	assert.True(t, AVIMislabeledAsMP4(det, ".MP4"))
	assert.False(t, AVIMislabeledAsMP4(det, ".avi"))
}

func TestShouldRenameTIFFLikeNeverRenamed(t *testing.T) {
	det := Detection{MIME: "image/x-canon-cr2", Extension: ".tif"}
	assert.False(t, ShouldRename(det, ".cr2", false))
}

func TestShouldRenameConservativeSparesJPEG(t *testing.T) {
	det := Detection{MIME: "image/jpeg", Extension: ".jpg"}
	assert.False(t, ShouldRename(det, ".heic", true))
	assert.True(t, ShouldRename(det, ".heic", false))
}

func TestShouldRenameUnknownExtensionNeverRenamed(t *testing.T) {
	det := Detection{MIME: "application/octet-stream", Extension: ""}
	assert.False(t, ShouldRename(det, ".dat", false))
}

func TestShouldRenameMismatchedExtension(t *testing.T) {
	det := Detection{MIME: "image/heic", Extension: ".heic"}
	assert.True(t, ShouldRename(det, ".jpg", false))
	assert.False(t, ShouldRename(det, ".heic", false))
	assert.False(t, ShouldRename(det, ".HEIC", false))
}
