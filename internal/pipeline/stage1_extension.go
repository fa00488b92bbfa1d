package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"takeoutsort/internal/config"
	"takeoutsort/internal/errs"
	"takeoutsort/internal/mimesniff"
	"takeoutsort/internal/sidecar"
)

// sniffWindow is the number of leading bytes read per file for content
// sniffing, matching mimesniff's pinned detection limit.
const sniffWindow = 128

// pixelMotionExts are the Pixel "Motion Photo" container extensions
// Google Takeout exports alongside the still JPEG; renaming them to
// .mp4 up front lets stage 2 classify them as ordinary video sidecars
// instead of unrecognized files (SPEC_FULL.md's supplemented
// transform_pixel_mp feature).
var pixelMotionExts = map[string]bool{
	".MP": true, ".MV": true,
}

// runPixelMotionRename walks root renaming every *.MP/*.MV file to .mp4,
// run before extension correction proper so the sniffer below never
// sees the Pixel-specific extensions at all.
func runPixelMotionRename(root string, counters *errs.Counters) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			counters.RecordFailure(errs.New(errs.KindExtensionFix, path, err))
			return nil
		}
		if info.IsDir() || !pixelMotionExts[strings.ToUpper(filepath.Ext(path))] {
			return nil
		}
		newPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mp4"
		if err := os.Rename(path, newPath); err != nil {
			counters.RecordFailure(errs.New(errs.KindExtensionFix, path, err))
			return nil
		}
		counters.RecordSuccess()
		return nil
	})
}

// runExtensionCorrection walks root renaming every media file (and its
// sidecar, atomically as a pair) whose sniffed content implies a
// different extension than the one it carries, per spec.md §4.1. When
// transformPixelMP is set, Pixel Motion Photo containers are normalized
// to .mp4 first.
func runExtensionCorrection(root string, mode config.FixExtensionsMode, transformPixelMP bool, counters *errs.Counters) error {
	if transformPixelMP {
		if err := runPixelMotionRename(root, counters); err != nil {
			return err
		}
	}
	if mode == config.FixExtOff {
		return nil
	}
	conservative := mode != config.FixExtStandard

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			counters.RecordFailure(errs.New(errs.KindExtensionFix, path, err))
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if mimesniff.IsEditedVersion(path) {
			return nil
		}
		if err := fixOneExtension(path, conservative); err != nil {
			counters.RecordFailure(err)
			return nil
		}
		counters.RecordSuccess()
		return nil
	})
}

// RunExtensionCorrectionSolo exposes stage 1 for standalone use (the
// fixext CLI subcommand), outside of a full Driver.Run pass.
func RunExtensionCorrectionSolo(root string, mode config.FixExtensionsMode, transformPixelMP bool, counters *errs.Counters) error {
	return runExtensionCorrection(root, mode, transformPixelMP, counters)
}

// fixOneExtension sniffs path's content and, if it disagrees with the
// current extension, renames path and its sidecar together, rolling back
// the media rename if the sidecar rename fails.
func fixOneExtension(path string, conservative bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errs.New(errs.KindExtensionFix, path, err)
	}
	buf := make([]byte, sniffWindow)
	n, _ := f.Read(buf)
	f.Close()

	det := mimesniff.Detect(buf[:n])
	currentExt := filepath.Ext(path)
	if !mimesniff.ShouldRename(det, currentExt, conservative) {
		return nil
	}

	newPath := strings.TrimSuffix(path, currentExt) + det.Extension
	sidecarPath := sidecar.Locate(path)

	if err := os.Rename(path, newPath); err != nil {
		return errs.New(errs.KindExtensionFix, path, err)
	}

	if sidecarPath != "" {
		newSidecarPath := newPath + ".json"
		if err := os.Rename(sidecarPath, newSidecarPath); err != nil {
			if rollbackErr := os.Rename(newPath, path); rollbackErr != nil {
				return errs.New(errs.KindExtensionFix, path,
					fmt.Errorf("media renamed to %s but sidecar rename failed and rollback also failed: %v / %v", newPath, err, rollbackErr))
			}
			return errs.New(errs.KindExtensionFix, path, err)
		}
	}
	return nil
}
