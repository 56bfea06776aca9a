// errors.go defines the fatal error kinds produced by the scaffold
// pipeline. Each kind corresponds to one failure class with its own
// cleanup contract:
//
//   - TemplateNotFoundError / TargetExistsError fire before anything is
//     written, so no cleanup is needed.
//   - ScaffoldError / ConfigurationError fire after the target directory
//     exists, so the caller removes the partially materialized tree.
//
// Installation failures are intentionally NOT represented here: they are
// swallowed by internal/installer and never abort a run.
package model

import "fmt"

// TemplateNotFoundError indicates the template root, or one of its
// required top-level directories, is missing. Nothing has been written
// when this error is returned.
type TemplateNotFoundError struct {
	// Path is the template root or required subdirectory that is missing.
	Path string
}

// Error satisfies the error interface.
func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.Path)
}

// TargetExistsError indicates the target directory already exists.
// The run is refused before any file is touched; the existing directory
// is never modified or removed.
type TargetExistsError struct {
	// Path is the pre-existing target directory.
	Path string
}

// Error satisfies the error interface.
func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("target directory already exists: %s", e.Path)
}

// ScaffoldError wraps an I/O failure that occurred while materializing
// the template tree. The target directory may be partially populated
// when this error surfaces; the orchestrator removes it best-effort.
type ScaffoldError struct {
	// Path is the source or destination entry that failed.
	Path string

	// Err is the underlying I/O error.
	Err error
}

// Error satisfies the error interface.
func (e *ScaffoldError) Error() string {
	return fmt.Sprintf("scaffolding failed at %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ScaffoldError) Unwrap() error {
	return e.Err
}

// NewScaffoldError wraps err as a ScaffoldError for the given path.
func NewScaffoldError(path string, err error) *ScaffoldError {
	return &ScaffoldError{Path: path, Err: err}
}

// ConfigurationError wraps a read, parse, or write failure during
// manifest configuration. The manifest file is never partially mutated:
// the configurator loads fully, mutates in memory, and writes once, so
// a ConfigurationError means the manifest on disk is either the original
// or the fully configured version.
type ConfigurationError struct {
	// Path is the file whose read/parse/write failed.
	Path string

	// Err is the underlying error.
	Err error
}

// Error satisfies the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration failed for %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err as a ConfigurationError for the given path.
func NewConfigurationError(path string, err error) *ConfigurationError {
	return &ConfigurationError{Path: path, Err: err}
}
