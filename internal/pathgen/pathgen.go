// Package pathgen implements the stage-6 path generator (spec.md §4.6.1):
// computing a target directory from (album?, date, division level,
// partner-shared) and sanitizing album names for the host filesystem.
package pathgen

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/forPelevin/gomoji"
)

const (
	BucketAllPhotos     = "ALL_PHOTOS"
	BucketPartnerShared = "PARTNER_SHARED"
	AlbumsDir           = "Albums"
	DateUnknownDir      = "date-unknown"
	UnknownAlbumName    = "Unknown Album"
)

// DivisionLevel is the output date-subdivision depth.
type DivisionLevel int

const (
	DivisionNone DivisionLevel = iota
	DivisionYear
	DivisionMonth
	DivisionDay
)

// Params bundles the path generator's inputs.
type Params struct {
	AlbumName      string // "" means none
	Date           time.Time
	HasDate        bool
	Division       DivisionLevel
	PartnerShared  bool
}

// Generate computes the target directory (forward-slash, relative to the
// output root) for Params, per spec.md §4.6.1.
func Generate(p Params) string {
	var segments []string

	if p.AlbumName != "" {
		segments = append(segments, AlbumsDir, SanitizeAlbumName(p.AlbumName))
	} else if p.PartnerShared {
		segments = append(segments, BucketPartnerShared)
	} else {
		segments = append(segments, BucketAllPhotos)
	}

	if p.Division == DivisionNone {
		return path.Join(segments...)
	}

	if !p.HasDate {
		segments = append(segments, DateUnknownDir)
		return path.Join(segments...)
	}

	switch p.Division {
	case DivisionYear:
		segments = append(segments, fmt.Sprintf("%04d", p.Date.Year()))
	case DivisionMonth:
		segments = append(segments, fmt.Sprintf("%04d", p.Date.Year()), fmt.Sprintf("%02d", int(p.Date.Month())))
	case DivisionDay:
		segments = append(segments, fmt.Sprintf("%04d", p.Date.Year()), fmt.Sprintf("%02d", int(p.Date.Month())), fmt.Sprintf("%02d", p.Date.Day()))
	}
	return path.Join(segments...)
}

// windowsInvalidChars are characters disallowed in Windows filenames;
// sanitization strips them uniformly regardless of host OS so output
// trees remain portable.
const windowsInvalidChars = `<>:"|?*`

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeAlbumName implements spec.md §4.6.1's album-name sanitization:
// emoji stripped (forPelevin/gomoji, grounded in
// davidrenne-mediaRenamerToTimestamp's dependency on the same library),
// invalid characters stripped, trailing dots/spaces collapsed, reserved
// Windows device names suffixed with "_file", and an empty result mapped
// to "Unknown Album" (spec.md §8 boundary behavior).
func SanitizeAlbumName(name string) string {
	name = strings.TrimSpace(name)
	name = gomoji.RemoveEmojis(name)

	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(windowsInvalidChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	name = b.String()

	name = strings.TrimRight(name, " .")
	name = strings.TrimSpace(name)

	if name == "" {
		return UnknownAlbumName
	}

	if reservedNames[strings.ToUpper(name)] {
		return name + "_file"
	}
	return name
}
