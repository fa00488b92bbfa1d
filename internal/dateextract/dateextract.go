// Package dateextract implements stage 4's ranked date extractors: EXIF,
// sidecar JSON, filename pattern, and enclosing year folder. The EXIF
// image path is grounded in davidrenne-mediaRenamerToTimestamp and
// tendant-photo-organizer's use of rwcarlsen/goexif; the video-container
// path adapts davidrenne's QuickTime atom walk.
package dateextract

import (
	"time"
)

// Rank mirrors spec.md §4.4's accuracy table.
const (
	RankEXIF       = 1
	RankSidecar    = 2
	RankFilename   = 3
	RankYearFolder = 4
)

// MethodEXIFImage etc. name the extractor that produced a date, recorded on
// MediaEntity.DateTimeExtractionMethod.
const (
	MethodEXIFImage     = "exif_image"
	MethodEXIFVideo     = "exif_video_container"
	MethodSidecar       = "sidecar_json"
	MethodFilename      = "filename_pattern"
	MethodYearFolder    = "year_folder"
)

// Result is one extractor's outcome.
type Result struct {
	Date   time.Time
	Rank   int
	Method string
}

// Extractor resolves a date for a single file path. ok is false when the
// extractor has nothing to offer (not an error per se — DateExtractionError
// is for failures that occurred while trying, e.g. an unreadable file).
type Extractor func(path string) (Result, bool, error)
