package pipeline

import (
	"errors"
	"path/filepath"
	"time"

	"takeoutsort/internal/config"
	"takeoutsort/internal/dateextract"
	"takeoutsort/internal/errs"
	"takeoutsort/internal/model"
)

// errNoDate marks a file for which every date extractor, including the
// year-folder fallback, failed to produce a date.
var errNoDate = errors.New("no date could be extracted from any source")

// runDateExtraction assigns date_taken/date_accuracy to every entity in
// coll that doesn't already have one, via the ranked extractor chain
// (spec.md §4.4).
func runDateExtraction(coll *model.MediaCollection, cfg *config.Config, counters *errs.Counters) {
	coll.ForEach(func(_ int, m *model.MediaEntity) {
		if m.HasDateTaken {
			return
		}

		year, hasYear := enclosingYear(m.PrimaryFile.SourcePath)
		res, ok, errsList := dateextract.Resolve(dateextract.Input{
			Path:               m.PrimaryFile.SourcePath,
			EnclosingYear:      year,
			HasEnclosingYear:   hasYear,
			EnforceMaxFileSize: cfg.EnforceMaxFileSize,
			MaxFileSizeBytes:   cfg.MaxFileSizeBytes,
		})
		for _, e := range errsList {
			counters.RecordFailure(errs.New(errs.KindDateExtraction, m.PrimaryFile.SourcePath, e))
		}
		if !ok {
			counters.RecordFailure(errs.New(errs.KindDateExtraction, m.PrimaryFile.SourcePath, errNoDate))
			return
		}

		m.SetDate(res.Date, res.Rank, res.Method)
		m.PrimaryFile.DateAccuracy = res.Rank
		m.PrimaryFile.Ranking = res.Rank
		counters.RecordSuccess()

		if lat, lon, ok := dateextract.SidecarGeo(m.PrimaryFile.SourcePath); ok {
			m.HasGPS = true
			m.Latitude = lat
			m.Longitude = lon
		}
	})
}

// enclosingYear reports the year named by path's immediate parent
// directory, if it is a year folder.
func enclosingYear(path string) (int, bool) {
	return dateextract.IsYearFolderName(filepath.Base(filepath.Dir(path)), time.Now().Year())
}
