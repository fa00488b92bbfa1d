// Package platform isolates the host-specific parts of stage 6 and 8:
// link creation for the Shortcut/ReverseShortcut album strategies and
// filesystem timestamp synchronization, each split into a POSIX and a
// Windows implementation behind a shared interface (spec.md §4.6.3, §4.8).
package platform

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"takeoutsort/internal/errs"
)

// Linker creates a filesystem link from linkPath to target: a symlink on
// POSIX, a .lnk shortcut on Windows. Implementations disambiguate
// linkPath on collision the same way fileops disambiguates file names.
type Linker interface {
	CreateLink(target, linkPath string) (string, error)
}

// disambiguateLinkPath finds the first linkPath variant ("name (n).ext")
// that doesn't already exist, reusing exists to probe the filesystem.
func disambiguateLinkPath(linkPath string, exists func(string) bool) string {
	ext := filepath.Ext(linkPath)
	stem := strings.TrimSuffix(linkPath, ext)
	candidate := linkPath
	for n := 0; exists(candidate); n++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, n+1, ext)
	}
	return candidate
}

// TimeSyncer sets a path's modification (and, where the platform
// supports it, creation) time without following a trailing symlink.
type TimeSyncer interface {
	SetModTime(path string, t time.Time, isSymlink bool) error
}

// DiskFreeBytes reports free space at path. No pipeline stage calls it.
func DiskFreeBytes(path string) (uint64, error) {
	free, err := diskFreeBytes(path)
	if err != nil {
		return 0, errs.New(errs.KindMove, path, err)
	}
	return free, nil
}
