// Package sidecar locates and parses a Takeout JSON sidecar for a media
// file, per spec.md §4.1's matcher rules and §6's sidecar document shape.
// Matching is grounded in bryanbrunetti-takeaway's findSidecarFile /
// findSidecarWithPrefixMatching, generalized to the 3-step rule spec.md
// states (exact, case/whitespace-tolerant, trimmed-parent).
package sidecar

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Document is a Takeout metadata sidecar, or at least the fields the
// pipeline consumes from it.
type Document struct {
	Title          string `json:"title"`
	PhotoTakenTime struct {
		Timestamp flexibleInt `json:"timestamp"`
	} `json:"photoTakenTime"`
	GeoData struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"geoData"`
}

// flexibleInt accepts a Takeout timestamp encoded as either a JSON string
// or a JSON number, since Google's exports are inconsistent about this.
type flexibleInt int64

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = flexibleInt(v)
	return nil
}

// Parse reads and decodes a sidecar JSON document at path.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// TakenTimeSeconds returns photoTakenTime.timestamp as Unix seconds.
func (d *Document) TakenTimeSeconds() int64 {
	return int64(d.PhotoTakenTime.Timestamp)
}

// HasGeoData reports whether geoData carries a non-zero coordinate pair.
func (d *Document) HasGeoData() bool {
	return d.GeoData.Latitude != 0 || d.GeoData.Longitude != 0
}

// Locate implements spec.md §4.1's three-step sidecar search:
//
//	(a) <media>.json
//	(b) same directory, case-insensitive, trailing-whitespace-tolerant match
//	(c) same candidates under a trailing-whitespace-trimmed parent directory
//
// It returns "" if no sidecar is found.
func Locate(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	base := filepath.Base(mediaPath)

	if p := exact(dir, base+".json"); p != "" {
		return p
	}
	if p := caseInsensitiveTolerant(dir, base+".json"); p != "" {
		return p
	}
	if p := supplementalVariant(dir, base); p != "" {
		return p
	}

	trimmedParent := strings.TrimRight(dir, " \t")
	if trimmedParent != dir {
		if p := exact(trimmedParent, base+".json"); p != "" {
			return p
		}
		if p := caseInsensitiveTolerant(trimmedParent, base+".json"); p != "" {
			return p
		}
	}
	return ""
}

func exact(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
		return candidate
	}
	return ""
}

func supplementalVariant(dir, base string) string {
	ext := filepath.Ext(base)
	withoutExt := strings.TrimSuffix(base, ext)
	return exact(dir, withoutExt+ext+".supplemental-metadata.json")
}

// caseInsensitiveTolerant scans dir's entries for a case-insensitive match
// of name, tolerating trailing whitespace differences on either side.
func caseInsensitiveTolerant(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	target := strings.ToLower(strings.TrimRight(name, " \t"))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		candidate := strings.ToLower(strings.TrimRight(e.Name(), " \t"))
		if candidate == target {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}
