// Package config defines the pipeline's configuration surface (spec.md §6)
// and its validation; the viper/pflag loader lives in cmd/takeoutsort.
// The loader is the one component permitted to raise a ConfigError
// that aborts before the pipeline starts; the pipeline itself never
// validates configuration it didn't request.
package config

import (
	"fmt"

	"takeoutsort/internal/errs"
)

// AlbumBehavior selects one of the five stage-6 movement strategies.
type AlbumBehavior string

const (
	AlbumShortcut        AlbumBehavior = "shortcut"
	AlbumDuplicateCopy   AlbumBehavior = "duplicate-copy"
	AlbumReverseShortcut AlbumBehavior = "reverse-shortcut"
	AlbumJSON            AlbumBehavior = "json"
	AlbumNothing         AlbumBehavior = "nothing"
	AlbumIgnoreAlbums    AlbumBehavior = "ignore-albums"
)

// FixExtensionsMode selects stage 1's operating mode.
type FixExtensionsMode string

const (
	FixExtOff     FixExtensionsMode = "off"
	FixExtStandard FixExtensionsMode = "standard"
	FixExtNonJPEG FixExtensionsMode = "non-jpeg"
	FixExtSolo    FixExtensionsMode = "solo"
)

// DateDivision selects the output date-subdivision depth (§4.6.1).
type DateDivision int

const (
	DivisionNone  DateDivision = 0
	DivisionYear  DateDivision = 1
	DivisionMonth DateDivision = 2
	DivisionDay   DateDivision = 3
)

// Config is the full set of configuration inputs enumerated in spec.md §6.
type Config struct {
	InputDir  string
	OutputDir string

	AlbumBehavior AlbumBehavior
	DateDivision  DateDivision

	CopyMode           bool
	WriteExif          bool
	UpdateCreationTime bool
	TransformPixelMP   bool
	FixExtensions      FixExtensionsMode

	EnforceMaxFileSize bool
	MaxFileSizeBytes   int64

	Verbose      bool
	ExifToolPath string
}

// Validate checks the invariants the external config loader is
// responsible for before the pipeline is allowed to start. A failure here
// is always a *errs.Error of KindConfig.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errs.New(errs.KindConfig, "", fmt.Errorf("input_dir is required"))
	}
	if c.OutputDir == "" {
		return errs.New(errs.KindConfig, "", fmt.Errorf("output_dir is required"))
	}
	switch c.AlbumBehavior {
	case AlbumShortcut, AlbumDuplicateCopy, AlbumReverseShortcut, AlbumJSON, AlbumNothing, AlbumIgnoreAlbums:
	default:
		return errs.New(errs.KindConfig, "", fmt.Errorf("unknown album_behavior %q", c.AlbumBehavior))
	}
	switch c.DateDivision {
	case DivisionNone, DivisionYear, DivisionMonth, DivisionDay:
	default:
		return errs.New(errs.KindConfig, "", fmt.Errorf("date_division must be 0-3, got %d", c.DateDivision))
	}
	switch c.FixExtensions {
	case FixExtOff, FixExtStandard, FixExtNonJPEG, FixExtSolo, "":
	default:
		return errs.New(errs.KindConfig, "", fmt.Errorf("unknown fix_extensions %q", c.FixExtensions))
	}
	if c.EnforceMaxFileSize && c.MaxFileSizeBytes <= 0 {
		return errs.New(errs.KindConfig, "", fmt.Errorf("max_file_size must be positive when enforce_max_file_size is set"))
	}
	return nil
}

// Default returns a Config populated with the spec's documented defaults.
func Default() *Config {
	return &Config{
		AlbumBehavior: AlbumShortcut,
		DateDivision:  DivisionYear,
		FixExtensions: FixExtStandard,
	}
}
