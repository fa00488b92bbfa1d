// Package logging wraps zap into the small surface the pipeline stages
// need: a structured logger plus a TimeTrack helper in the style of
// GoCore's logger.TimeTrack (see davidrenne-mediaRenamerToTimestamp),
// adapted to emit a zap field instead of a bare log line.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style zap logger; verbose lowers the level to
// Debug, matching the --verbose configuration input.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// TimeTrack logs the elapsed time since start under the given operation
// name, returning the elapsed duration so callers can also report it in a
// StepResult.
func TimeTrack(log *zap.Logger, start time.Time, operation string) time.Duration {
	elapsed := time.Since(start)
	log.Info("stage timing", zap.String("operation", operation), zap.Duration("elapsed", elapsed))
	return elapsed
}

// Nop returns a logger that discards everything, for tests and library
// callers that inject no logger.
func Nop() *zap.Logger {
	return zap.NewNop()
}
