// Package errs implements the error taxonomy from the design's error
// handling section: per-entity failures are recovered locally and carried
// as counted result records, never as panics or aborted stages.
package errs

import "fmt"

// Kind names one of the error taxonomy's categories. These are kinds, not
// Go types: every stage constructs the same *Error with a different Kind.
type Kind string

const (
	KindDiscovery       Kind = "discovery"
	KindHashing         Kind = "hashing"
	KindDateExtraction  Kind = "date_extraction"
	KindSidecarMissing  Kind = "sidecar_missing"
	KindExtensionFix    Kind = "extension_fix"
	KindMove            Kind = "move"
	KindCopy            Kind = "copy"
	KindShortcut        Kind = "shortcut"
	KindExifTool        Kind = "exiftool"
	KindTimestamp       Kind = "timestamp"
	KindConfig          Kind = "config"
)

// Error wraps an underlying cause with its taxonomy Kind and the path it
// concerns, so callers can switch on Kind() without string matching.
type Error struct {
	kind Kind
	path string
	err  error
}

// New constructs a taxonomy error for path, wrapping cause.
func New(kind Kind, path string, cause error) *Error {
	return &Error{kind: kind, path: path, err: cause}
}

func (e *Error) Error() string {
	if e.path == "" {
		return fmt.Sprintf("%s: %v", e.kind, e.err)
	}
	return fmt.Sprintf("%s: %s: %v", e.kind, e.path, e.err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

// Kind reports which taxonomy category this error belongs to.
func (e *Error) Kind() Kind { return e.kind }

// Path reports the file or directory path the error concerns, if any.
func (e *Error) Path() string { return e.path }

// Recoverable reports whether the taxonomy kind is always per-entity
// recoverable (every kind except ConfigError, which aborts the pipeline
// before it starts).
func (e *Error) Recoverable() bool { return e.kind != KindConfig }
