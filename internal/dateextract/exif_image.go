package dateextract

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifDateTags are tried in spec.md §4.4's documented order: original,
// else digitized, else plain DateTime.
var exifDateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// ExtractImageEXIF reads embedded EXIF date tags via goexif, trying
// DateTimeOriginal, DateTimeDigitized, then DateTime. maxFileSize, when
// non-zero, causes files above the cap to be skipped entirely (ok=false),
// matching the Open Question resolution that oversized files downgrade to
// no-date rather than falling through to a lower-rank extractor.
func ExtractImageEXIF(path string, maxFileSize int64) (Result, bool, error) {
	if maxFileSize > 0 {
		if fi, err := os.Stat(path); err == nil && fi.Size() > maxFileSize {
			return Result{}, false, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, false, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Decode failure means "no EXIF available", not a hard error:
		// most non-JPEG/TIFF media simply has no EXIF segment.
		return Result{}, false, nil
	}

	for _, tag := range exifDateTags {
		raw, err := x.Get(tag)
		if err != nil {
			continue
		}
		s, err := raw.StringVal()
		if err != nil {
			continue
		}
		t, err := ParseEXIFDateString(s)
		if err != nil {
			continue
		}
		return Result{Date: t, Rank: RankEXIF, Method: MethodEXIFImage}, true, nil
	}
	return Result{}, false, nil
}

// ParseEXIFDateString normalizes and parses an EXIF date string per
// spec.md §4.4's exact rule: replace separators between date parts with
// ':', map ": " to ":0", truncate to 19 chars, then swap the first two
// ':' in the date portion for '-' to reach ISO form.
func ParseEXIFDateString(s string) (time.Time, error) {
	normalized := normalizeEXIFDateString(s)
	return time.ParseInLocation("2006-01-02 15:04:05", normalized, time.Local)
}

func normalizeEXIFDateString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '-', '/', '.', '\\':
			out = append(out, ':')
		default:
			out = append(out, r)
		}
	}
	normalized := string(out)

	// ": " -> ":0" (single-digit month/day padded with a leading zero
	// that got left as a space by some camera firmwares).
	fixed := make([]byte, 0, len(normalized))
	bytesNorm := []byte(normalized)
	for i := 0; i < len(bytesNorm); i++ {
		if bytesNorm[i] == ':' && i+1 < len(bytesNorm) && bytesNorm[i+1] == ' ' {
			fixed = append(fixed, ':', '0')
			i++
			continue
		}
		fixed = append(fixed, bytesNorm[i])
	}
	normalized = string(fixed)

	if len(normalized) > 19 {
		normalized = normalized[:19]
	}

	// Swap the first two ':' (both in the date portion, positions 4 and 7
	// of a well-formed "YYYY:MM:DD HH:MM:SS") for '-' to reach ISO form.
	swapped := []byte(normalized)
	swaps := 0
	for i := 0; i < len(swapped) && swaps < 2; i++ {
		if swapped[i] == ':' {
			swapped[i] = '-'
			swaps++
		}
	}
	return string(swapped)
}
