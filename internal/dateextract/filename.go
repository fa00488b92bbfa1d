package dateextract

import (
	"path/filepath"
	"regexp"
	"time"
)

// filenamePattern pairs a regex against the file's basename-without-
// extension with the Go reference-time layout to parse its single capture
// group, and is tried in spec.md §4.4's documented order. The approach is
// grounded in tendant-photo-organizer's datePatterns table, generalized to
// the exact pattern list and numeric-only-14-digit rule spec.md names.
type filenamePattern struct {
	regex  *regexp.Regexp
	layout string
}

var filenamePatterns = []filenamePattern{
	{regexp.MustCompile(`^IMG_(\d{8}_\d{6})`), "20060102_150405"},
	{regexp.MustCompile(`^VID_(\d{8}_\d{6})`), "20060102_150405"},
	{regexp.MustCompile(`^(\d{8}_\d{6})`), "20060102_150405"},
	{regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}\.\d{2}\.\d{2})`), "2006-01-02 15.04.05"},
	{regexp.MustCompile(`^Screenshot_(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})`), "2006-01-02-15-04-05"},
	{regexp.MustCompile(`^(\d{14})$`), "20060102150405"},
}

// ExtractFilenamePattern tries each pattern in turn against path's
// basename with its extension stripped, returning
// the first valid match. Invalid calendar components (month>12, day>31,
// etc.) are rejected by time.Parse itself, matching spec.md's validation
// requirement.
func ExtractFilenamePattern(path string) (Result, bool, error) {
	base := filepath.Base(path)
	baseNoExt := base[:len(base)-len(filepath.Ext(base))]

	for _, p := range filenamePatterns {
		matches := p.regex.FindStringSubmatch(baseNoExt)
		if matches == nil {
			continue
		}
		t, err := time.ParseInLocation(p.layout, matches[1], time.Local)
		if err != nil {
			continue
		}
		return Result{Date: t, Rank: RankFilename, Method: MethodFilename}, true, nil
	}
	return Result{}, false, nil
}
