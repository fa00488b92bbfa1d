package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageWithAndWithoutPath(t *testing.T) {
	withPath := New(KindMove, "/in/a.jpg", errors.New("disk full"))
	assert.Equal(t, "move: /in/a.jpg: disk full", withPath.Error())

	withoutPath := New(KindConfig, "", errors.New("input_dir is required"))
	assert.Equal(t, "config: input_dir is required", withoutPath.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := New(KindHashing, "/in/a.jpg", cause)

	assert.Same(t, cause, errors.Unwrap(e))
	assert.True(t, errors.Is(e, cause))
}

func TestErrorKindAndPath(t *testing.T) {
	e := New(KindExifTool, "/in/a.jpg", errors.New("x"))
	assert.Equal(t, KindExifTool, e.Kind())
	assert.Equal(t, "/in/a.jpg", e.Path())
}

func TestErrorRecoverable(t *testing.T) {
	assert.True(t, New(KindMove, "", nil).Recoverable())
	assert.False(t, New(KindConfig, "", nil).Recoverable())
}
