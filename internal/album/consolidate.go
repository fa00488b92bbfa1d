// Package album implements stage 5, album consolidation: trimming and
// merging album names across every entity's AlbumsMap and backfilling an
// empty source-directories set from the effective parent directory
// (spec.md §4.5).
package album

import (
	"path/filepath"
	"strings"

	"takeoutsort/internal/model"
)

// Summary reports what consolidation changed, for the stage result log.
type Summary struct {
	EntitiesTouched int
	AlbumsRenamed   int
	AlbumsMerged    int
	AlbumCount      int
}

// Consolidate trims whitespace from every album name on every entity in
// coll, merging entries that collide after trimming, and fills in any
// album whose SourceDirectories set is empty using the primary file's
// parent directory as the effective source.
func Consolidate(coll *model.MediaCollection) Summary {
	var s Summary
	seen := map[string]struct{}{}

	coll.ForEach(func(_ int, m *model.MediaEntity) {
		touched := false
		trimmed := map[string]model.AlbumEntity{}

		for name, a := range m.AlbumsMap {
			clean := strings.TrimSpace(name)
			if clean == "" {
				continue
			}
			if clean != name {
				touched = true
				s.AlbumsRenamed++
			}
			a.Name = clean

			if len(a.SourceDirectories) == 0 {
				a.SourceDirectories = map[string]struct{}{
					filepath.Dir(m.PrimaryFile.SourcePath): {},
				}
			}

			if existing, ok := trimmed[clean]; ok {
				trimmed[clean] = existing.Merge(a)
				s.AlbumsMerged++
				touched = true
			} else {
				trimmed[clean] = a
			}
			seen[clean] = struct{}{}
		}

		m.AlbumsMap = trimmed
		if touched {
			s.EntitiesTouched++
		}
	})

	s.AlbumCount = len(seen)
	return s
}
