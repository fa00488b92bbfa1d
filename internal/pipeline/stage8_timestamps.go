package pipeline

import (
	"takeoutsort/internal/errs"
	"takeoutsort/internal/model"
	"takeoutsort/internal/platform"
)

// runTimestampSync sets the modification time (and, on Windows, the
// creation time) of every destination file (primary and secondaries) to
// its entity's
// date_taken, per spec.md §4.8. Failures are counted but never fatal.
func runTimestampSync(syncer platform.TimeSyncer, coll *model.MediaCollection, counters *errs.Counters) {
	coll.ForEach(func(_ int, m *model.MediaEntity) {
		if !m.HasDateTaken {
			return
		}
		for _, f := range m.AllFiles() {
			if f.TargetPath == "" {
				continue
			}
			if err := syncer.SetModTime(f.TargetPath, m.DateTaken, f.IsShortcut); err != nil {
				counters.RecordFailure(errs.New(errs.KindTimestamp, f.TargetPath, err))
				continue
			}
			counters.RecordSuccess()
		}
	})
}
