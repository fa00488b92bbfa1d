package errs

import "fmt"

// Counters accumulates one stage's success/failure tally plus the
// individual failures, so a stage's summary line and an optional
// detailed error dump can both be produced from one accumulator. Not
// safe for concurrent use by design: every stage drives its Counters
// from a single goroutine, pushing concurrency (e.g. stage 3's hashing
// batches) down into a result slice joined before recording.
type Counters struct {
	Succeeded int
	Failed    int
	Errors    []*Error
}

// RecordSuccess increments the succeeded tally by one.
func (c *Counters) RecordSuccess() {
	c.Succeeded++
}

// RecordFailure increments the failed tally and appends err to the log,
// if non-nil.
func (c *Counters) RecordFailure(err error) {
	c.Failed++
	if err == nil {
		return
	}
	if te, ok := err.(*Error); ok {
		c.Errors = append(c.Errors, te)
		return
	}
	c.Errors = append(c.Errors, New(KindDiscovery, "", err))
}

// Summary renders the one-line stage-summary format used in terminal
// output.
func (c *Counters) Summary() string {
	return fmt.Sprintf("succeeded: %d, failed: %d", c.Succeeded, c.Failed)
}

// Counts returns the raw (succeeded, failed) pair for callers that need
// the numbers rather than the formatted line (e.g. progress documents).
func (c *Counters) Counts() (succeeded, failed int) {
	return c.Succeeded, c.Failed
}
