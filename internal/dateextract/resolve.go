package dateextract

import (
	"os"
	"path/filepath"
	"strings"
)

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true, ".avi": true, ".mkv": true, ".3gp": true, ".webm": true,
}

func isVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// Input bundles what the resolver needs about one media file beyond its
// path: an optional enclosing year-folder year, and the size-cap
// configuration for rank 1.
type Input struct {
	Path               string
	EnclosingYear      int
	HasEnclosingYear   bool
	EnforceMaxFileSize bool
	MaxFileSizeBytes   int64
}

// Resolve runs the four ranked extractors in order and returns the first
// success, per spec.md §4.4. A per-extractor failure is swallowed (logged
// by the caller via the returned error slice) and the next extractor is
// tried; only running out of extractors yields ok=false. The one
// exception is a non-video file above MaxFileSizeBytes while
// EnforceMaxFileSize is set: it yields ok=false without trying any
// extractor.
func Resolve(in Input) (Result, bool, []error) {
	var errs []error

	if in.EnforceMaxFileSize && in.MaxFileSizeBytes > 0 && !isVideo(in.Path) {
		if fi, err := os.Stat(in.Path); err == nil && fi.Size() > in.MaxFileSizeBytes {
			return Result{}, false, errs
		}
	}

	var rank1 Extractor
	if isVideo(in.Path) {
		rank1 = ExtractVideoContainerCreationTime
	} else {
		rank1 = func(path string) (Result, bool, error) {
			var cap int64
			if in.EnforceMaxFileSize {
				cap = in.MaxFileSizeBytes
			}
			return ExtractImageEXIF(path, cap)
		}
	}

	for _, extractor := range []Extractor{rank1, ExtractSidecar, ExtractFilenamePattern} {
		res, ok, err := extractor(in.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return res, true, errs
		}
	}

	if in.HasEnclosingYear {
		return ExtractYearFolder(in.EnclosingYear), true, errs
	}
	return Result{}, false, errs
}
