//go:build windows

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"takeoutsort/internal/errs"
)

// winFileTimeEpochOffset converts a Unix millisecond timestamp to a
// Windows FILETIME (100ns ticks since 1601-01-01), spec.md §4.8's named
// constant.
const winFileTimeEpochOffset = 116444736000000000

// extendedPath prefixes path with \\?\ so operations on deeply nested
// Takeout trees don't hit MAX_PATH, per spec.md §4.8.
func extendedPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if strings.HasPrefix(abs, `\\?\`) {
		return abs
	}
	return `\\?\` + abs
}

// shortcutLinker creates .lnk shortcuts through a PowerShell-run
// WScript.Shell script only; no in-process COM call is made.
type shortcutLinker struct{}

// NewLinker returns the host's Linker implementation.
func NewLinker() Linker { return shortcutLinker{} }

func (shortcutLinker) CreateLink(target, linkPath string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(linkPath), ".lnk") {
		linkPath += ".lnk"
	}
	resolved := disambiguateLinkPath(linkPath, func(p string) bool {
		_, err := os.Lstat(p)
		return err == nil
	})

	if err := createShortcutPowerShell(target, resolved); err != nil {
		return "", errs.New(errs.KindShortcut, resolved, err)
	}
	return resolved, nil
}

// createShortcutPowerShell drives the WScript.Shell COM object through a
// generated script rather than in-process COM bindings, since nothing in
// the dependency set provides an in-process COM client (see DESIGN.md).
func createShortcutPowerShell(target, linkPath string) error {
	script := fmt.Sprintf(
		`$s=(New-Object -COMObject WScript.Shell).CreateShortcut('%s'); $s.TargetPath='%s'; $s.Save()`,
		strings.ReplaceAll(linkPath, "'", "''"),
		strings.ReplaceAll(target, "'", "''"),
	)
	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	return cmd.Run()
}

// windowsTimeSyncer sets file times via SetFileTime so symlink-less
// Windows shortcuts still get the original media's timestamp applied
// directly to the .lnk entry.
type windowsTimeSyncer struct{}

// NewTimeSyncer returns the host's TimeSyncer implementation.
func NewTimeSyncer() TimeSyncer { return windowsTimeSyncer{} }

func (windowsTimeSyncer) SetModTime(path string, t time.Time, isSymlink bool) error {
	ft := toFileTime(t)
	pathPtr, err := windows.UTF16PtrFromString(extendedPath(path))
	if err != nil {
		return errs.New(errs.KindTimestamp, path, err)
	}

	attrs := uint32(windows.FILE_FLAG_BACKUP_SEMANTICS)
	if isSymlink {
		attrs |= windows.FILE_FLAG_OPEN_REPARSE_POINT
	}

	h, err := windows.CreateFile(pathPtr, windows.FILE_WRITE_ATTRIBUTES, windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil, windows.OPEN_EXISTING, attrs, 0)
	if err != nil {
		return errs.New(errs.KindTimestamp, path, err)
	}
	defer windows.CloseHandle(h)

	if err := windows.SetFileTime(h, &ft, nil, &ft); err != nil {
		return errs.New(errs.KindTimestamp, path, err)
	}
	return nil
}

func toFileTime(t time.Time) windows.Filetime {
	ms := t.UnixMilli()
	ticks := ms*10000 + winFileTimeEpochOffset
	return windows.Filetime{
		LowDateTime:  uint32(ticks & 0xFFFFFFFF),
		HighDateTime: uint32(ticks >> 32),
	}
}

func diskFreeBytes(path string) (uint64, error) {
	var freeBytes, totalBytes, totalFree uint64
	pathPtr, err := syscall.UTF16PtrFromString(filepath.VolumeName(path) + `\`)
	if err != nil {
		return 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeBytes, &totalBytes, &totalFree); err != nil {
		return 0, err
	}
	return freeBytes, nil
}
