package mimesniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEditedVersion(t *testing.T) {
	assert.True(t, IsEditedVersion("/in/2020/IMG_001-edited.jpg"))
	assert.True(t, IsEditedVersion("/in/2020/IMG_001-EDITED.JPG"))
	assert.True(t, IsEditedVersion("/in/2020/IMG_001-bearbeitet.jpg"))
	assert.False(t, IsEditedVersion("/in/2020/IMG_001.jpg"))
}

func TestStripPartialEditedSuffixFullSuffix(t *testing.T) {
	stripped, ok := StripPartialEditedSuffix("IMG_001-edited")
	assert.True(t, ok)
	assert.Equal(t, "IMG_001", stripped)
}

func TestStripPartialEditedSuffixNoMatch(t *testing.T) {
	stripped, ok := StripPartialEditedSuffix("IMG_001")
	assert.False(t, ok)
	assert.Equal(t, "IMG_001", stripped)
}

func TestStripPartialEditedSuffixWithDisambiguator(t *testing.T) {
	stripped, ok := StripPartialEditedSuffix("IMG_001-edited(1)")
	assert.True(t, ok)
	assert.Equal(t, "IMG_001", stripped)
}
