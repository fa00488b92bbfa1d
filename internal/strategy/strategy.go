// Package strategy implements stage 6's five album-handling movement
// strategies (plus ignore-albums) as a capability interface dispatched
// from config.AlbumBehavior, grounded in bryanbrunetti-takeaway's
// single-minded "move primary, symlink into album dirs" logic
// generalized to spec.md §4.6.5's five variants.
package strategy

import (
	"time"

	"github.com/spf13/afero"

	"takeoutsort/internal/config"
	"takeoutsort/internal/fileops"
	"takeoutsort/internal/model"
	"takeoutsort/internal/pathgen"
	"takeoutsort/internal/platform"
)

// PlacedFile records where one physical file ended up, for the JSON
// strategy's manifest and the stage result log.
type PlacedFile struct {
	EntityIndex int
	SourcePath  string
	TargetPath  string
	AlbumName   string // "" for the primary/year placement
	IsShortcut  bool
	IsCopy      bool
}

// Context bundles everything a strategy needs to place one entity's
// files, threading through the shared collaborators so strategies stay
// stateless between calls.
type Context struct {
	FS       afero.Fs
	Ops      *fileops.Service
	Linker   platform.Linker
	Division pathgen.DivisionLevel
	// CopyMode mirrors config.Config.CopyMode: every relocation that
	// would otherwise move a file instead copies it, leaving the
	// source tree untouched (spec.md §6 "copy_mode").
	CopyMode bool
}

// relocate moves src into dstDir, or copies it when ctx.CopyMode is set.
func relocate(ctx Context, used *fileops.UsedNames, src, dstDir string, date *time.Time) (string, error) {
	if ctx.CopyMode {
		return ctx.Ops.Copy(src, dstDir, date, used)
	}
	return ctx.Ops.Move(src, dstDir, date, used)
}

// MovingStrategy is the capability interface every album-handling
// variant implements (spec.md §4.6.5).
type MovingStrategy interface {
	Name() string
	CreatesShortcuts() bool
	CreatesDuplicates() bool
	ValidateContext(ctx Context) error
	ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error)
	Finalize(ctx Context, placed []PlacedFile) error
}

// New builds the MovingStrategy for behavior, per spec.md §4.6.5.
func New(behavior config.AlbumBehavior) MovingStrategy {
	switch behavior {
	case config.AlbumShortcut:
		return shortcutStrategy{}
	case config.AlbumDuplicateCopy:
		return duplicateCopyStrategy{}
	case config.AlbumReverseShortcut:
		return reverseShortcutStrategy{}
	case config.AlbumJSON:
		return jsonStrategy{manifest: &[]ManifestEntry{}}
	case config.AlbumIgnoreAlbums:
		return ignoreAlbumsStrategy{}
	default:
		return nothingStrategy{}
	}
}

// dateParam converts an entity's resolved date into a *time.Time, or nil
// if none was found, for passing to fileops.Move/Copy.
func dateParam(m *model.MediaEntity) *time.Time {
	if !m.HasDateTaken {
		return nil
	}
	t := m.DateTaken
	return &t
}

// primaryTargetDir computes the primary placement directory for m (the
// year/ALL_PHOTOS/PARTNER_SHARED bucket, ignoring album membership).
func primaryTargetDir(ctx Context, m *model.MediaEntity) string {
	return pathgen.Generate(pathgen.Params{
		Date:          m.DateTaken,
		HasDate:       m.HasDateTaken,
		Division:      ctx.Division,
		PartnerShared: m.PartnerShared,
	})
}

// albumTargetDir computes one album's placement directory for m.
func albumTargetDir(ctx Context, albumName string) string {
	return pathgen.Generate(pathgen.Params{
		AlbumName: albumName,
		Division:  pathgen.DivisionNone,
	})
}

// splitCanonical partitions m's files into canonical (year-folder
// sourced) and non-canonical (album-only sourced), per spec.md §3's
// is_canonical attribute.
func splitCanonical(m *model.MediaEntity) (canonical, nonCanonical []model.FileEntity) {
	for _, f := range m.AllFiles() {
		if f.IsCanonical {
			canonical = append(canonical, f)
		} else {
			nonCanonical = append(nonCanonical, f)
		}
	}
	return
}

// bestRanked picks the best FileEntity among files by the §4.6.5 rule:
// lower Ranking wins, then shorter basename, then shorter full path.
func bestRanked(files []model.FileEntity) model.FileEntity {
	best := files[0]
	for _, f := range files[1:] {
		if better(f, best) {
			best = f
		}
	}
	return best
}

func better(a, b model.FileEntity) bool {
	if a.Ranking != b.Ranking {
		return a.Ranking < b.Ranking
	}
	ab, bb := baseName(a.SourcePath), baseName(b.SourcePath)
	if len(ab) != len(bb) {
		return len(ab) < len(bb)
	}
	return len(a.SourcePath) < len(b.SourcePath)
}

func baseName(p string) string {
	i := len(p) - 1
	for i >= 0 && p[i] != '/' && p[i] != '\\' {
		i--
	}
	return p[i+1:]
}

// sameFile reports whether a and b refer to the same physical file by
// source path, used to identify which FileEntity a strategy already
// placed.
func sameFile(a, b model.FileEntity) bool {
	return a.SourcePath == b.SourcePath
}
