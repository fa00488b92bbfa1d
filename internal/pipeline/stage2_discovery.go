package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"takeoutsort/internal/dateextract"
	"takeoutsort/internal/mimesniff"
	"takeoutsort/internal/model"
)

// isMediaFile reports whether path's extension is one the pipeline
// recognizes as a photo or video, per the path & MIME utility table.
func isMediaFile(path string) bool {
	return mimesniff.MIMEForExt(filepath.Ext(path)) != ""
}

// discoveryEntry pairs one discovered media file with the classification
// context (album name, year) needed to build its MediaEntity.
type discoveryEntry struct {
	path        string
	isCanonical bool
	albumName   string // "" when under a year folder
	sourceDir   string
	year        int
	hasYear     bool
}

// runDiscovery walks root, classifying every directory as a year folder
// or an album folder and collecting each media file it contains, per
// spec.md §4.2.
func runDiscovery(root string) ([]discoveryEntry, error) {
	var entries []discoveryEntry
	currentYear := time.Now().Year()

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || !isMediaFile(path) {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			return nil
		}

		dir := filepath.Dir(path)
		dirName := filepath.Base(dir)
		if year, ok := dateextract.IsYearFolderName(dirName, currentYear); ok {
			entries = append(entries, discoveryEntry{path: path, isCanonical: true, sourceDir: dir, year: year, hasYear: true})
			return nil
		}

		entries = append(entries, discoveryEntry{path: path, isCanonical: false, albumName: dirName, sourceDir: dir})
		return nil
	})
	return entries, err
}

// buildCollection turns discovery entries into a MediaCollection: one
// MediaEntity per physical file (stage 3 coalesces duplicates). Files
// under an album folder populate albums_map; files under a year folder
// seed is_canonical on the primary file.
func buildCollection(entries []discoveryEntry) *model.MediaCollection {
	coll := model.NewMediaCollection()
	for _, e := range entries {
		primary := model.FileEntity{
			SourcePath:  e.path,
			IsCanonical: e.isCanonical,
		}
		m := model.NewMediaEntity(primary)
		if !e.isCanonical && e.albumName != "" {
			m.AddAlbum(strings.TrimSpace(e.albumName), e.sourceDir)
		}
		coll.Append(m)
	}
	return coll
}
