package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"takeoutsort/internal/errs"
	"takeoutsort/internal/exiftool"
	"takeoutsort/internal/mimesniff"
	"takeoutsort/internal/model"
)

// exifDateFormat is the EXIF wire format for date/time tags
// ("yyyy:MM:dd HH:mm:ss"), per spec.md §4.7.
const exifDateFormat = "2006:01:02 15:04:05"

// runExifWriteback ensures every entity's destination file carries its
// resolved date_taken (and sidecar GPS, when present) in EXIF, without
// overwriting existing EXIF date/GPS, per spec.md §4.7. A nil process
// means no ExifTool adapter is available; writes are skipped with a
// counted failure rather than aborting the stage.
func runExifWriteback(ctx context.Context, proc *exiftool.Process, coll *model.MediaCollection, counters *errs.Counters) {
	coll.ForEach(func(_ int, m *model.MediaEntity) {
		if !m.HasDateTaken {
			return
		}
		for _, f := range m.AllFiles() {
			if f.TargetPath == "" || f.IsDeleted {
				continue
			}
			if err := writeBackOne(ctx, proc, f.TargetPath, m); err != nil {
				counters.RecordFailure(err)
				continue
			}
			counters.RecordSuccess()
		}
	})
}

func writeBackOne(ctx context.Context, proc *exiftool.Process, path string, m *model.MediaEntity) error {
	if proc == nil {
		return errs.New(errs.KindExifTool, path, fmt.Errorf("no exiftool adapter available"))
	}
	if mismatchGuard(path) {
		return nil
	}

	existing, err := proc.ReadDates(ctx, path)
	if err != nil {
		return errs.New(errs.KindExifTool, path, err)
	}

	if !hasAnyDate(existing) {
		if err := proc.WriteAllDates(ctx, path, m.DateTaken.Format(exifDateFormat)); err != nil {
			return err
		}
	}

	if m.HasGPS && !hasGPS(existing) {
		if err := proc.WriteGPS(ctx, path, m.Latitude, m.Longitude); err != nil {
			return err
		}
	}
	return nil
}

func hasAnyDate(tags map[string]string) bool {
	for _, tag := range []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"} {
		if v, ok := tags[tag]; ok && v != "" {
			return true
		}
	}
	return false
}

func hasGPS(tags map[string]string) bool {
	lat, latOK := tags["GPSLatitude"]
	lon, lonOK := tags["GPSLongitude"]
	return latOK && lonOK && lat != "" && lon != ""
}

// mismatchGuard reports whether path's extension-implied MIME disagrees
// with its sniffed content MIME (excluding the documented tiff/jpeg
// exception), in which case the write is skipped per spec.md §4.7.
func mismatchGuard(path string) bool {
	extMIME := mimesniff.MIMEForExt(filepath.Ext(path))
	if extMIME == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, sniffWindow)
	n, _ := f.Read(buf)
	det := mimesniff.Detect(buf[:n])

	if det.MIME == extMIME {
		return false
	}
	if isTIFFJPEGPair(det.MIME, extMIME) {
		return false
	}
	return true
}

func isTIFFJPEGPair(a, b string) bool {
	tiff := strings.Contains(a, "tiff") || strings.Contains(b, "tiff")
	jpeg := strings.Contains(a, "jpeg") || strings.Contains(b, "jpeg")
	return tiff && jpeg
}
