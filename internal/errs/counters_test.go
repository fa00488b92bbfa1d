package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersRecordSuccess(t *testing.T) {
	c := &Counters{}
	c.RecordSuccess()
	c.RecordSuccess()

	succeeded, failed := c.Counts()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 0, failed)
}

func TestCountersRecordFailureWithTaxonomyError(t *testing.T) {
	c := &Counters{}
	taxErr := New(KindMove, "/in/a.jpg", errors.New("disk full"))

	c.RecordFailure(taxErr)

	assert.Equal(t, 1, c.Failed)
	assert.Len(t, c.Errors, 1)
	assert.Same(t, taxErr, c.Errors[0])
}

func TestCountersRecordFailureWithPlainError(t *testing.T) {
	c := &Counters{}

	c.RecordFailure(errors.New("plain failure"))

	assert.Equal(t, 1, c.Failed)
	assert.Len(t, c.Errors, 1)
	assert.Equal(t, KindDiscovery, c.Errors[0].Kind())
}

func TestCountersRecordFailureNilErrorStillCounts(t *testing.T) {
	c := &Counters{}

	c.RecordFailure(nil)

	assert.Equal(t, 1, c.Failed)
	assert.Empty(t, c.Errors)
}

func TestCountersSummary(t *testing.T) {
	c := &Counters{Succeeded: 3, Failed: 1}
	assert.Equal(t, "succeeded: 3, failed: 1", c.Summary())
}
