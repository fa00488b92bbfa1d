// Package pipeline wires the eight leaf stages into the ordered,
// resumable driver described by spec.md §2 and §5: sequential across
// stages, cancellable between them, with each completed stage eligible
// to persist a snapshot.
package pipeline

import (
	"context"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"takeoutsort/internal/config"
	"takeoutsort/internal/errs"
	"takeoutsort/internal/exiftool"
	"takeoutsort/internal/hashutil"
	"takeoutsort/internal/logging"
	"takeoutsort/internal/model"
	"takeoutsort/internal/platform"
	"takeoutsort/internal/progress"
	"takeoutsort/internal/sidecar"
)

// Stage names, used both as progress-document keys and log fields.
const (
	StageExtensionFix = "extension_fix"
	StageDiscovery    = "discovery"
	StageDedup        = "dedup"
	StageDateExtract  = "date_extract"
	StageAlbums       = "albums"
	StageOutput       = "output"
	StageExifWrite    = "exif_writeback"
	StageTimestamps   = "timestamps"
)

var stageOrder = []string{
	StageExtensionFix, StageDiscovery, StageDedup, StageDateExtract,
	StageAlbums, StageOutput, StageExifWrite, StageTimestamps,
}

// Driver runs the eight-stage pipeline over one input/output directory
// pair, honoring a resumed progress.Document when given one.
type Driver struct {
	Config *config.Config
	FS     afero.Fs
	Log    *zap.Logger

	RunID     string
	completed map[string]bool
	results   []progress.StageResult
	coll      *model.MediaCollection
	proc      *exiftool.Process
}

// NewDriver builds a Driver from cfg, starting a fresh run identity
// unless doc rehydrates an existing one.
func NewDriver(cfg *config.Config, fs afero.Fs, log *zap.Logger, doc *progress.Document) *Driver {
	d := &Driver{
		Config:    cfg,
		FS:        fs,
		Log:       log,
		completed: map[string]bool{},
		coll:      model.NewMediaCollection(),
	}
	if doc != nil {
		d.RunID = doc.RunID
		for _, s := range doc.CompletedStages {
			d.completed[s] = true
		}
		d.results = doc.StageResults
		d.rehydrate(*doc)
	} else {
		d.RunID = progress.NewRunID()
	}
	return d
}

func (d *Driver) rehydrate(doc progress.Document) {
	for _, fs := range doc.Collection {
		primary := model.FileEntity{SourcePath: fs.PrimarySource, TargetPath: fs.PrimaryTarget}
		m := model.NewMediaEntity(primary)
		for _, name := range fs.Albums {
			m.AddAlbum(name, "")
		}
		if fs.HasDateTaken {
			m.SetDate(fs.DateTaken, fs.DateAccuracy, "")
		}
		for _, sec := range fs.Secondary {
			m.SecondaryFiles = append(m.SecondaryFiles, model.FileEntity{SourcePath: sec.Source, TargetPath: sec.Target})
		}
		d.coll.Append(m)
	}
}

// run wraps one stage with timing, logging, and the resume skip check.
func (d *Driver) run(ctx context.Context, name string, fn func() *errs.Counters) error {
	if d.completed[name] {
		d.Log.Info("stage skipped (already completed)", zap.String("stage", name))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	counters := fn()
	duration := logging.TimeTrack(d.Log, start, name)
	d.Log.Info("stage finished", zap.String("stage", name), zap.String("summary", counters.Summary()))

	d.completed[name] = true
	d.results = append(d.results, progress.StageResult{
		Name:      name,
		StartedAt: start,
		EndedAt:   start.Add(duration),
		Succeeded: counters.Succeeded,
		Failed:    counters.Failed,
	})
	return nil
}

// Run executes every not-yet-completed stage in order, returning the
// final media collection and the accumulated stage results.
func (d *Driver) Run(ctx context.Context) (*model.MediaCollection, []progress.StageResult, error) {
	if err := d.run(ctx, StageExtensionFix, func() *errs.Counters {
		c := &errs.Counters{}
		if err := runExtensionCorrection(d.Config.InputDir, d.Config.FixExtensions, d.Config.TransformPixelMP, c); err != nil {
			c.RecordFailure(err)
		}
		return c
	}); err != nil {
		return d.coll, d.results, err
	}

	if err := d.run(ctx, StageDiscovery, func() *errs.Counters {
		c := &errs.Counters{}
		if _, _, err := sidecar.NormalizeSupplementalSidecars(d.Log, d.Config.InputDir); err != nil {
			c.RecordFailure(err)
		}
		entries, err := runDiscovery(d.Config.InputDir)
		if err != nil {
			c.RecordFailure(err)
			return c
		}
		d.coll = buildCollection(entries)
		for range entries {
			c.RecordSuccess()
		}
		return c
	}); err != nil {
		return d.coll, d.results, err
	}

	if err := d.run(ctx, StageDedup, func() *errs.Counters {
		c := &errs.Counters{}
		runDedup(ctx, d.coll, hashutil.DefaultMaxConcurrency(), c)
		return c
	}); err != nil {
		return d.coll, d.results, err
	}

	if err := d.run(ctx, StageDateExtract, func() *errs.Counters {
		c := &errs.Counters{}
		runDateExtraction(d.coll, d.Config, c)
		return c
	}); err != nil {
		return d.coll, d.results, err
	}

	if err := d.run(ctx, StageAlbums, func() *errs.Counters {
		c := &errs.Counters{}
		summary := runAlbumConsolidation(d.coll)
		for i := 0; i < summary.AlbumCount; i++ {
			c.RecordSuccess()
		}
		return c
	}); err != nil {
		return d.coll, d.results, err
	}

	if err := d.run(ctx, StageOutput, func() *errs.Counters {
		c := &errs.Counters{}
		if err := runOutputMaterialization(d.FS, d.Config.OutputDir, d.Config, d.coll, c); err != nil {
			c.RecordFailure(err)
		}
		return c
	}); err != nil {
		return d.coll, d.results, err
	}

	if d.Config.WriteExif {
		if err := d.run(ctx, StageExifWrite, func() *errs.Counters {
			c := &errs.Counters{}
			proc, err := d.ensureExifTool()
			if err != nil {
				c.RecordFailure(err)
				return c
			}
			runExifWriteback(ctx, proc, d.coll, c)
			return c
		}); err != nil {
			return d.coll, d.results, err
		}
	} else {
		d.completed[StageExifWrite] = true
	}

	if d.Config.UpdateCreationTime {
		if err := d.run(ctx, StageTimestamps, func() *errs.Counters {
			c := &errs.Counters{}
			runTimestampSync(platform.NewTimeSyncer(), d.coll, c)
			return c
		}); err != nil {
			return d.coll, d.results, err
		}
	} else {
		d.completed[StageTimestamps] = true
	}

	if d.proc != nil {
		d.proc.Close()
	}
	return d.coll, d.results, nil
}

func (d *Driver) ensureExifTool() (*exiftool.Process, error) {
	if d.proc != nil {
		return d.proc, nil
	}
	binary, err := exiftool.ResolveBinary("", d.Config.ExifToolPath)
	if err != nil {
		return nil, err
	}
	proc, err := exiftool.Start(binary)
	if err != nil {
		return nil, err
	}
	d.proc = proc
	return proc, nil
}

// Snapshot builds a resumable progress.Document from the driver's
// current state.
func (d *Driver) Snapshot(now time.Time) progress.Document {
	var completedList []string
	for _, s := range stageOrder {
		if d.completed[s] {
			completedList = append(completedList, s)
		}
	}
	return progress.Snapshot(d.RunID, d.Config.InputDir, d.Config.OutputDir, completedList, d.results, d.coll, now)
}
