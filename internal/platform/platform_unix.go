//go:build !windows

package platform

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"takeoutsort/internal/errs"
)

// symlinkLinker creates POSIX symlinks for the Shortcut/ReverseShortcut
// album strategies, grounded in bryanbrunetti-takeaway's album-linking
// step generalized to a standalone, disambiguating Linker.
type symlinkLinker struct{}

// NewLinker returns the host's Linker implementation.
func NewLinker() Linker { return symlinkLinker{} }

func (symlinkLinker) CreateLink(target, linkPath string) (string, error) {
	resolved := disambiguateLinkPath(linkPath, func(p string) bool {
		_, err := os.Lstat(p)
		return err == nil
	})
	if err := os.Symlink(target, resolved); err != nil {
		return "", errs.New(errs.KindShortcut, resolved, err)
	}
	return resolved, nil
}

// unixTimeSyncer sets mtime via utimensat with AT_SYMLINK_NOFOLLOW so a
// symlink's own timestamp is set rather than its target's (spec.md §4.8).
type unixTimeSyncer struct{}

// NewTimeSyncer returns the host's TimeSyncer implementation.
func NewTimeSyncer() TimeSyncer { return unixTimeSyncer{} }

func (unixTimeSyncer) SetModTime(path string, t time.Time, isSymlink bool) error {
	ts := unix.NsecToTimespec(t.UnixNano())
	times := [2]unix.Timespec{ts, ts}

	flags := 0
	if isSymlink {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}
	if err := unix.UtimensAt(unix.AT_FDCWD, path, &times, flags); err != nil {
		return errs.New(errs.KindTimestamp, path, err)
	}
	return nil
}

func diskFreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
