// Package model holds the in-memory media collection the pipeline operates
// over: FileEntity, AlbumEntity, MediaEntity and MediaCollection.
package model

import (
	"sort"
	"time"
)

// FileEntity is a reference to one physical file involved in one MediaEntity.
type FileEntity struct {
	SourcePath      string
	TargetPath      string
	IsShortcut      bool
	IsDuplicateCopy bool
	IsMoved         bool
	IsDeleted       bool
	DateAccuracy    int // 0 means absent; ranks are 1..4, smaller is better
	Ranking         int
	IsCanonical     bool
}

// DateAccuracyAbsent marks a FileEntity with no assigned date rank.
const DateAccuracyAbsent = 0

// HasDate reports whether the file carries a date-accuracy rank.
func (f FileEntity) HasDate() bool {
	return f.DateAccuracy != DateAccuracyAbsent
}

// Disposed reports whether the file has reached its terminal stage-6 state:
// exactly one of deleted or moved-with-target, never both.
func (f FileEntity) Disposed() bool {
	return f.IsDeleted != (f.TargetPath != "")
}

// AlbumEntity is one album association of a media entity.
type AlbumEntity struct {
	Name              string
	SourceDirectories map[string]struct{}
}

// NewAlbumEntity builds an AlbumEntity from a trimmed name and one seed
// source directory.
func NewAlbumEntity(name, sourceDir string) AlbumEntity {
	a := AlbumEntity{Name: name, SourceDirectories: map[string]struct{}{}}
	if sourceDir != "" {
		a.SourceDirectories[sourceDir] = struct{}{}
	}
	return a
}

// Merge unions b's source directories into a and returns the result.
func (a AlbumEntity) Merge(b AlbumEntity) AlbumEntity {
	for dir := range b.SourceDirectories {
		a.SourceDirectories[dir] = struct{}{}
	}
	return a
}

// SortedSourceDirectories returns the source directories in sorted order,
// useful for deterministic output (manifests, tests).
func (a AlbumEntity) SortedSourceDirectories() []string {
	dirs := make([]string, 0, len(a.SourceDirectories))
	for d := range a.SourceDirectories {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// MediaEntity is one logical photo/video.
type MediaEntity struct {
	PrimaryFile              FileEntity
	SecondaryFiles           []FileEntity
	AlbumsMap                map[string]AlbumEntity
	DateTaken                time.Time
	HasDateTaken             bool
	DateAccuracy             int
	DateTimeExtractionMethod string
	PartnerShared            bool

	// GPS fields populated by sidecar extraction (§4.7 GPS write-back).
	HasGPS    bool
	Latitude  float64
	Longitude float64
}

// NewMediaEntity builds a MediaEntity around a discovered primary file.
func NewMediaEntity(primary FileEntity) *MediaEntity {
	return &MediaEntity{
		PrimaryFile: primary,
		AlbumsMap:   map[string]AlbumEntity{},
	}
}

// AllFiles returns primary followed by secondaries, the canonical
// enumeration order used throughout stages 3-8.
func (m *MediaEntity) AllFiles() []FileEntity {
	out := make([]FileEntity, 0, 1+len(m.SecondaryFiles))
	out = append(out, m.PrimaryFile)
	out = append(out, m.SecondaryFiles...)
	return out
}

// SetDate assigns date_taken/date_accuracy/extraction method together,
// preserving the invariant that accuracy is present iff the date is.
func (m *MediaEntity) SetDate(t time.Time, accuracy int, method string) {
	m.DateTaken = t
	m.HasDateTaken = true
	m.DateAccuracy = accuracy
	m.DateTimeExtractionMethod = method
}

// AddAlbum merges name into AlbumsMap, creating or merging as needed. name
// must already be trimmed and non-empty.
func (m *MediaEntity) AddAlbum(name, sourceDir string) {
	if existing, ok := m.AlbumsMap[name]; ok {
		m.AlbumsMap[name] = existing.Merge(NewAlbumEntity(name, sourceDir))
		return
	}
	m.AlbumsMap[name] = NewAlbumEntity(name, sourceDir)
}

// InAlbum reports whether name is one of this entity's albums.
func (m *MediaEntity) InAlbum(name string) bool {
	_, ok := m.AlbumsMap[name]
	return ok
}

// AlbumNames returns album names in sorted order.
func (m *MediaEntity) AlbumNames() []string {
	names := make([]string, 0, len(m.AlbumsMap))
	for n := range m.AlbumsMap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
