package sidecar

import (
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// supplementalPattern implements spec.md §6's pre-step rule
// (^(.*\.[a-z0-9]{3,5})\..+\.json$ -> $1.json), with upper-case
// extension letters accepted as well.
var supplementalPattern = regexp.MustCompile(`^(.*\.[a-zA-Z0-9]{3,5})\..+\.json$`)

// NormalizeSupplementalSidecars walks root and renames every
// "*.supplemental-metadata.json"-shaped sidecar (and any other
// "<media>.<ext>.<anything>.json" variant) down to "<media>.<ext>.json",
// skipping any rename that would collide with an existing file. It is run
// once, before stage 2 discovery, exactly as spec.md §6 describes.
func NormalizeSupplementalSidecars(log *zap.Logger, root string) (renamed, skipped int, err error) {
	var candidates []string
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supplementalPattern.MatchString(d.Name()) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if walkErr != nil {
		return 0, 0, walkErr
	}

	for _, path := range candidates {
		dir := filepath.Dir(path)
		name := filepath.Base(path)
		target := supplementalPattern.ReplaceAllString(name, "$1.json")
		targetPath := filepath.Join(dir, target)
		if targetPath == path {
			continue
		}
		if _, statErr := os.Stat(targetPath); statErr == nil {
			skipped++
			log.Warn("supplemental sidecar collision, skipping", zap.String("path", path), zap.String("target", targetPath))
			continue
		}
		if err := os.Rename(path, targetPath); err != nil {
			skipped++
			log.Warn("failed to normalize supplemental sidecar", zap.String("path", path), zap.Error(err))
			continue
		}
		renamed++
	}
	return renamed, skipped, nil
}

// FilenameSatisfiesSupplementalForm reports whether name matches the
// generic supplemental-suffix shape, independent of any particular
// truncation of "supplemental-metadata" — useful for callers that need to
// recognize the family without performing the rename.
func FilenameSatisfiesSupplementalForm(name string) bool {
	return supplementalPattern.MatchString(name)
}
