// Package fileops implements the stage-6 file operation service: a
// collision-free move/copy over an afero.Fs, so the whole stage runs
// against an in-memory filesystem in tests and the OS filesystem in
// production (spec.md §4.6.2).
package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"takeoutsort/internal/errs"
)

// osExclusiveCreateFlags opens the destination for a fresh write,
// failing if it already exists (collision resolution always picks a
// name not yet present, so O_EXCL catches a concurrent writer instead
// of silently clobbering its output).
const osExclusiveCreateFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL

// Service performs collision-free move/copy operations against an
// afero.Fs, tracking an in-memory used-name set per logical operation to
// prevent TOCTOU collisions within one call (spec.md §4.6.2).
type Service struct {
	FS afero.Fs
}

// New builds a Service over the given filesystem.
func New(fs afero.Fs) *Service {
	return &Service{FS: fs}
}

// UsedNames scopes name-collision resolution to one logical operation
// (e.g. "move every file belonging to entity E into this album
// directory"), preventing two files moved in the same operation from
// racing each other for the same disambiguated name.
type UsedNames struct {
	names map[string]bool
}

// NewUsedNames starts a fresh per-operation used-name set.
func NewUsedNames() *UsedNames {
	return &UsedNames{names: map[string]bool{}}
}

// resolveCollision finds the smallest n>=0 such that base (n=0: unchanged;
// n>=1: "name (n).ext") doesn't already exist on disk or in used, then
// reserves it in used.
func (s *Service) resolveCollision(dstDir, baseName string, used *UsedNames) (string, error) {
	ext := filepath.Ext(baseName)
	stem := strings.TrimSuffix(baseName, ext)

	candidate := baseName
	for n := 0; ; n++ {
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		full := filepath.Join(dstDir, candidate)
		exists, err := afero.Exists(s.FS, full)
		if err != nil {
			return "", err
		}
		if !exists && !used.names[candidate] {
			used.names[candidate] = true
			return candidate, nil
		}
	}
}

// Move relocates src into dstDir, disambiguating on collision, optionally
// stamping the destination's mtime to date. It tries a same-filesystem
// rename first, falling back to copy+delete — the cross-device fallback
// path spec.md §4.6.2 requires.
func (s *Service) Move(src, dstDir string, date *time.Time, used *UsedNames) (string, error) {
	if err := s.FS.MkdirAll(dstDir, 0o755); err != nil {
		return "", errs.New(errs.KindMove, src, err)
	}
	name, err := s.resolveCollision(dstDir, filepath.Base(src), used)
	if err != nil {
		return "", errs.New(errs.KindMove, src, err)
	}
	dst := filepath.Join(dstDir, name)

	if err := s.FS.Rename(src, dst); err != nil {
		if err := s.copyThenDelete(src, dst); err != nil {
			return "", errs.New(errs.KindMove, src, err)
		}
	}
	if date != nil {
		if err := s.FS.Chtimes(dst, *date, *date); err != nil {
			return dst, errs.New(errs.KindMove, dst, err)
		}
	}
	return dst, nil
}

// Copy copies src into dstDir, disambiguating on collision, optionally
// stamping the destination's mtime to date.
func (s *Service) Copy(src, dstDir string, date *time.Time, used *UsedNames) (string, error) {
	if err := s.FS.MkdirAll(dstDir, 0o755); err != nil {
		return "", errs.New(errs.KindCopy, src, err)
	}
	name, err := s.resolveCollision(dstDir, filepath.Base(src), used)
	if err != nil {
		return "", errs.New(errs.KindCopy, src, err)
	}
	dst := filepath.Join(dstDir, name)
	if err := s.copyFile(src, dst); err != nil {
		return "", errs.New(errs.KindCopy, src, err)
	}
	if date != nil {
		if err := s.FS.Chtimes(dst, *date, *date); err != nil {
			return dst, errs.New(errs.KindCopy, dst, err)
		}
	}
	return dst, nil
}

func (s *Service) copyThenDelete(src, dst string) error {
	if err := s.copyFile(src, dst); err != nil {
		return err
	}
	return s.FS.Remove(src)
}

func (s *Service) copyFile(src, dst string) error {
	in, err := s.FS.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := s.FS.Stat(src)
	if err != nil {
		return err
	}

	out, err := s.FS.OpenFile(dst, osExclusiveCreateFlags, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
