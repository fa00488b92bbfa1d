package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"takeoutsort/internal/errs"
)

func validConfig() *Config {
	cfg := Default()
	cfg.InputDir = "/in"
	cfg.OutputDir = "/out"
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRequiresInputDir(t *testing.T) {
	cfg := validConfig()
	cfg.InputDir = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Equal(t, errs.KindConfig, err.(*errs.Error).Kind())
}

func TestValidateRequiresOutputDir(t *testing.T) {
	cfg := validConfig()
	cfg.OutputDir = ""

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownAlbumBehavior(t *testing.T) {
	cfg := validConfig()
	cfg.AlbumBehavior = "not-a-real-behavior"

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeDateDivision(t *testing.T) {
	cfg := validConfig()
	cfg.DateDivision = DateDivision(99)

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownFixExtensionsMode(t *testing.T) {
	cfg := validConfig()
	cfg.FixExtensions = "bogus"

	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresPositiveMaxFileSizeWhenEnforced(t *testing.T) {
	cfg := validConfig()
	cfg.EnforceMaxFileSize = true
	cfg.MaxFileSizeBytes = 0

	assert.Error(t, cfg.Validate())

	cfg.MaxFileSizeBytes = 1024
	assert.NoError(t, cfg.Validate())
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, AlbumShortcut, cfg.AlbumBehavior)
	assert.Equal(t, DivisionYear, cfg.DateDivision)
	assert.Equal(t, FixExtStandard, cfg.FixExtensions)
}
