// Package mimesniff implements stage 1's content sniffing: detecting a
// file's true MIME type from its leading bytes and comparing it against
// the MIME type implied by its extension.
package mimesniff

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

func init() {
	// spec.md §4.1: "the first ≤128 bytes of its content". mimetype reads
	// up to its configured limit; pin it to the mandated window once at
	// package init rather than threading the limit through every call.
	mimetype.SetLimit(128)
}

// extToMIME maps the extensions the pipeline cares about to their expected
// MIME type, mirroring the kind of static table the teacher corpus keeps
// for supported media extensions.
var extToMIME = map[string]string{
	".jpg": "image/jpeg", ".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".heic": "image/heic", ".heif": "image/heif",
	".tif": "image/tiff", ".tiff": "image/tiff",
	".dng": "image/x-adobe-dng",
	".cr2": "image/x-canon-cr2", ".nef": "image/x-nikon-nef", ".arw": "image/x-sony-arw", ".raf": "image/x-fujifilm-raf",
	".mp4": "video/mp4", ".m4v": "video/x-m4v",
	".mov": "video/quicktime",
	".avi": "video/x-msvideo",
	".mkv": "video/x-matroska",
	".3gp": "video/3gpp",
	".webm": "video/webm",
}

// MIMEForExt returns the expected MIME type for a lowercase, dotted
// extension (e.g. ".jpg"), or "" if unknown.
func MIMEForExt(ext string) string {
	return extToMIME[strings.ToLower(ext)]
}

// Detection is the result of sniffing one file's content.
type Detection struct {
	MIME      string
	Extension string // canonical extension for the detected MIME, dotted
}

// Detect sniffs the leading bytes of data and returns the detected MIME
// type and its canonical extension.
func Detect(data []byte) Detection {
	mt := mimetype.Detect(data)
	return Detection{MIME: mt.String(), Extension: mt.Extension()}
}

// isTIFFLike reports whether a MIME type is TIFF-derived, including the
// common camera RAW formats the detector conflates with plain TIFF.
func isTIFFLike(mime string) bool {
	switch {
	case strings.HasPrefix(mime, "image/tiff"):
		return true
	case strings.Contains(mime, "x-adobe-dng"),
		strings.Contains(mime, "x-canon-cr2"),
		strings.Contains(mime, "x-nikon-nef"),
		strings.Contains(mime, "x-sony-arw"),
		strings.Contains(mime, "x-fujifilm-raf"):
		return true
	}
	return false
}

// isJPEG reports whether a MIME type is JPEG.
func isJPEG(mime string) bool {
	return mime == "image/jpeg"
}

// AVIMislabeledAsMP4 reports the special-case log condition from spec.md
// §4.1: AVI content sitting behind an .mp4 extension.
func AVIMislabeledAsMP4(detected Detection, currentExt string) bool {
	return detected.MIME == "video/x-msvideo" && strings.EqualFold(currentExt, ".mp4")
}

// ShouldRename decides, per spec.md §4.1, whether a file whose content was
// detected as det and whose current extension is currentExt should be
// renamed. conservative mirrors the "conservative" fix_extensions mode
// that additionally spares real JPEG content.
func ShouldRename(det Detection, currentExt string, conservative bool) bool {
	if isTIFFLike(det.MIME) {
		return false
	}
	if conservative && isJPEG(det.MIME) {
		return false
	}
	if det.Extension == "" {
		return false
	}
	return !strings.EqualFold(det.Extension, currentExt)
}
