package strategy

import (
	"path/filepath"

	"takeoutsort/internal/fileops"
	"takeoutsort/internal/model"
)

// albumLinkPath computes the initial (pre-disambiguation) link path for
// target inside dir; the Linker itself disambiguates further on
// collision.
func albumLinkPath(dir, target string) string {
	return filepath.Join(dir, filepath.Base(target))
}

// moveToBucket moves one file into m's year/ALL_PHOTOS/PARTNER_SHARED
// bucket.
func moveToBucket(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int, f model.FileEntity) (PlacedFile, error) {
	target, err := relocate(ctx, used, f.SourcePath, primaryTargetDir(ctx, m), dateParam(m))
	if err != nil {
		return PlacedFile{}, err
	}
	return PlacedFile{EntityIndex: idx, SourcePath: f.SourcePath, TargetPath: target}, nil
}

// deleteFile drops a source file that a strategy has decided carries no
// further information (already superseded by a move/shortcut/copy).
func deleteFile(ctx Context, path string) error {
	return ctx.FS.Remove(path)
}

// albumsContaining reports the album names among m.AlbumNames() whose
// source_directories set includes f's parent directory — i.e. the
// albums f actually belonged to, not every album the entity touches.
func albumsContaining(m *model.MediaEntity, f model.FileEntity) []string {
	dir := filepath.Dir(f.SourcePath)
	var out []string
	for _, name := range m.AlbumNames() {
		if _, ok := m.AlbumsMap[name].SourceDirectories[dir]; ok {
			out = append(out, name)
		}
	}
	return out
}

// ignoreAlbumsStrategy: canonical files move to ALL_PHOTOS; every
// non-canonical file is dropped; album folders vanish from output.
type ignoreAlbumsStrategy struct{}

func (ignoreAlbumsStrategy) Name() string                  { return "ignore-albums" }
func (ignoreAlbumsStrategy) CreatesShortcuts() bool         { return false }
func (ignoreAlbumsStrategy) CreatesDuplicates() bool        { return false }
func (ignoreAlbumsStrategy) ValidateContext(Context) error  { return nil }
func (ignoreAlbumsStrategy) Finalize(Context, []PlacedFile) error { return nil }

func (ignoreAlbumsStrategy) ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error) {
	canonical, nonCanonical := splitCanonical(m)
	var placed []PlacedFile
	for _, f := range canonical {
		pf, err := moveToBucket(ctx, used, m, idx, f)
		if err != nil {
			return placed, err
		}
		placed = append(placed, pf)
	}
	for _, f := range nonCanonical {
		if err := deleteFile(ctx, f.SourcePath); err != nil {
			return placed, err
		}
	}
	return placed, nil
}

// nothingStrategy: the primary is moved to ALL_PHOTOS; every secondary
// is deleted from source; albums are ignored entirely.
type nothingStrategy struct{}

func (nothingStrategy) Name() string                  { return "nothing" }
func (nothingStrategy) CreatesShortcuts() bool         { return false }
func (nothingStrategy) CreatesDuplicates() bool        { return false }
func (nothingStrategy) ValidateContext(Context) error  { return nil }
func (nothingStrategy) Finalize(Context, []PlacedFile) error { return nil }

func (nothingStrategy) ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error) {
	pf, err := moveToBucket(ctx, used, m, idx, m.PrimaryFile)
	if err != nil {
		return nil, err
	}
	for _, f := range m.SecondaryFiles {
		if err := deleteFile(ctx, f.SourcePath); err != nil {
			return []PlacedFile{pf}, err
		}
	}
	return []PlacedFile{pf}, nil
}

// ManifestEntry is one row of the JSON strategy's album manifest
// (spec.md §4.6.5 "JSON" variant entry shape).
type ManifestEntry struct {
	AlbumName  string `json:"albumName"`
	AlbumPath  string `json:"albumPath"`
	FileName   string `json:"fileName"`
	FilePath   string `json:"filePath"`
	TargetPath string `json:"targetPath"`
}

// jsonStrategy: primary moves to ALL_PHOTOS; every album membership of a
// non-canonical file is recorded as a manifest row instead of a
// filesystem link; secondaries are deleted after recording.
type jsonStrategy struct {
	manifest *[]ManifestEntry
}

func (jsonStrategy) Name() string                 { return "json" }
func (jsonStrategy) CreatesShortcuts() bool        { return false }
func (jsonStrategy) CreatesDuplicates() bool       { return false }
func (jsonStrategy) ValidateContext(Context) error { return nil }
func (jsonStrategy) Finalize(Context, []PlacedFile) error { return nil }

func (s jsonStrategy) ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error) {
	pf, err := moveToBucket(ctx, used, m, idx, m.PrimaryFile)
	if err != nil {
		return nil, err
	}

	if !m.PrimaryFile.IsCanonical {
		for _, album := range albumsContaining(m, m.PrimaryFile) {
			s.recordEntry(album, m.PrimaryFile, pf.TargetPath)
		}
	}
	for _, f := range m.SecondaryFiles {
		if f.IsCanonical {
			continue
		}
		for _, album := range albumsContaining(m, f) {
			s.recordEntry(album, f, pf.TargetPath)
		}
	}

	for _, f := range m.SecondaryFiles {
		if err := deleteFile(ctx, f.SourcePath); err != nil {
			return []PlacedFile{pf}, err
		}
	}
	return []PlacedFile{pf}, nil
}

func (s jsonStrategy) recordEntry(album string, f model.FileEntity, targetPath string) {
	base := filepath.Base(f.SourcePath)
	albumPath := "Albums/" + album
	*s.manifest = append(*s.manifest, ManifestEntry{
		AlbumName:  album,
		AlbumPath:  albumPath,
		FileName:   base,
		FilePath:   albumPath + "/" + base,
		TargetPath: targetPath,
	})
}

// Manifest returns the accumulated album manifest, written to
// albums-info.json by the output stage once every entity has processed.
func (s jsonStrategy) Manifest() []ManifestEntry { return *s.manifest }

// shortcutStrategy: the best-ranked canonical file (or the primary, if
// none is canonical) moves to ALL_PHOTOS; every other non-canonical file
// gets a shortcut in its album(s) pointing back at the moved file, then
// is deleted from source (spec.md §4.6.5 "Shortcut"). When the moved file
// is itself non-canonical, no shortcut is created in its own albums.
type shortcutStrategy struct{}

func (shortcutStrategy) Name() string                 { return "shortcut" }
func (shortcutStrategy) CreatesShortcuts() bool        { return true }
func (shortcutStrategy) CreatesDuplicates() bool       { return false }
func (shortcutStrategy) ValidateContext(Context) error { return nil }
func (shortcutStrategy) Finalize(Context, []PlacedFile) error { return nil }

func (shortcutStrategy) ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error) {
	canonical, _ := splitCanonical(m)
	moveSrc := m.PrimaryFile
	if len(canonical) > 0 {
		moveSrc = bestRanked(canonical)
	}

	pf, err := moveToBucket(ctx, used, m, idx, moveSrc)
	if err != nil {
		return nil, err
	}
	placed := []PlacedFile{pf}

	for _, f := range m.AllFiles() {
		if sameFile(f, moveSrc) || f.IsCanonical {
			continue
		}
		for _, album := range albumsContaining(m, f) {
			albumDir := albumTargetDir(ctx, album)
			linkPath, err := ctx.Linker.CreateLink(pf.TargetPath, albumLinkPath(albumDir, f.SourcePath))
			if err != nil {
				return placed, err
			}
			placed = append(placed, PlacedFile{EntityIndex: idx, SourcePath: f.SourcePath, TargetPath: linkPath, AlbumName: album, IsShortcut: true})
		}
		if err := deleteFile(ctx, f.SourcePath); err != nil {
			return placed, err
		}
	}
	return placed, nil
}

// reverseShortcutStrategy: every non-canonical file moves physically
// into the first album it belonged to; the best-ranked of those moved
// files is the anchor; every canonical file becomes a shortcut in
// ALL_PHOTOS pointing at the anchor, then is deleted. With no
// non-canonical files, falls back to moving the canonical primary.
type reverseShortcutStrategy struct{}

func (reverseShortcutStrategy) Name() string                 { return "reverse-shortcut" }
func (reverseShortcutStrategy) CreatesShortcuts() bool        { return true }
func (reverseShortcutStrategy) CreatesDuplicates() bool       { return false }
func (reverseShortcutStrategy) ValidateContext(Context) error { return nil }
func (reverseShortcutStrategy) Finalize(Context, []PlacedFile) error { return nil }

func (reverseShortcutStrategy) ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error) {
	canonical, nonCanonical := splitCanonical(m)
	if len(nonCanonical) == 0 {
		pf, err := moveToBucket(ctx, used, m, idx, m.PrimaryFile)
		if err != nil {
			return nil, err
		}
		return []PlacedFile{pf}, nil
	}

	var placed []PlacedFile
	var moved []model.FileEntity
	for _, f := range nonCanonical {
		albums := albumsContaining(m, f)
		if len(albums) == 0 {
			continue
		}
		dir := albumTargetDir(ctx, albums[0])
		target, err := relocate(ctx, used, f.SourcePath, dir, dateParam(m))
		if err != nil {
			return placed, err
		}
		pf := PlacedFile{EntityIndex: idx, SourcePath: f.SourcePath, TargetPath: target, AlbumName: albums[0]}
		placed = append(placed, pf)
		moved = append(moved, model.FileEntity{SourcePath: target, Ranking: f.Ranking})
	}
	if len(moved) == 0 {
		pf, err := moveToBucket(ctx, used, m, idx, m.PrimaryFile)
		if err != nil {
			return placed, err
		}
		return append(placed, pf), nil
	}
	anchor := bestRanked(moved)

	yearDir := primaryTargetDir(ctx, m)
	for _, f := range canonical {
		linkPath, err := ctx.Linker.CreateLink(anchor.SourcePath, albumLinkPath(yearDir, f.SourcePath))
		if err != nil {
			return placed, err
		}
		placed = append(placed, PlacedFile{EntityIndex: idx, SourcePath: f.SourcePath, TargetPath: linkPath, IsShortcut: true})
		if err := deleteFile(ctx, f.SourcePath); err != nil {
			return placed, err
		}
	}
	return placed, nil
}

// duplicateCopyStrategy: canonical files move to ALL_PHOTOS; each
// non-canonical file moves into the first album it belonged to and is
// copied into every other album it belonged to. With no canonical file,
// one physical duplicate copy of the best-ranked non-canonical is made
// in ALL_PHOTOS first, marked is_duplicate_copy. No shortcuts.
type duplicateCopyStrategy struct{}

func (duplicateCopyStrategy) Name() string                  { return "duplicate-copy" }
func (duplicateCopyStrategy) CreatesShortcuts() bool         { return false }
func (duplicateCopyStrategy) CreatesDuplicates() bool        { return true }
func (duplicateCopyStrategy) ValidateContext(Context) error  { return nil }
func (duplicateCopyStrategy) Finalize(Context, []PlacedFile) error { return nil }

func (duplicateCopyStrategy) ProcessEntity(ctx Context, used *fileops.UsedNames, m *model.MediaEntity, idx int) ([]PlacedFile, error) {
	canonical, nonCanonical := splitCanonical(m)
	var placed []PlacedFile

	if len(canonical) > 0 {
		for _, f := range canonical {
			pf, err := moveToBucket(ctx, used, m, idx, f)
			if err != nil {
				return placed, err
			}
			placed = append(placed, pf)
		}
	} else if len(nonCanonical) > 0 {
		best := bestRanked(nonCanonical)
		target, err := ctx.Ops.Copy(best.SourcePath, primaryTargetDir(ctx, m), dateParam(m), used)
		if err != nil {
			return placed, err
		}
		placed = append(placed, PlacedFile{EntityIndex: idx, SourcePath: best.SourcePath, TargetPath: target, IsCopy: true})
	}

	for _, f := range nonCanonical {
		albums := albumsContaining(m, f)
		if len(albums) == 0 {
			continue
		}
		first := true
		for _, album := range albums {
			dir := albumTargetDir(ctx, album)
			if first {
				target, err := relocate(ctx, used, f.SourcePath, dir, dateParam(m))
				if err != nil {
					return placed, err
				}
				placed = append(placed, PlacedFile{EntityIndex: idx, SourcePath: f.SourcePath, TargetPath: target, AlbumName: album})
				first = false
				continue
			}
			albumUsed := fileops.NewUsedNames()
			target, err := ctx.Ops.Copy(f.SourcePath, dir, dateParam(m), albumUsed)
			if err != nil {
				return placed, err
			}
			placed = append(placed, PlacedFile{EntityIndex: idx, SourcePath: f.SourcePath, TargetPath: target, AlbumName: album, IsCopy: true})
		}
	}
	return placed, nil
}
