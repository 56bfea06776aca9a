// Package model defines the domain types and value objects for the
// monoseed CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (PackageManager, the fatal error kinds, exit codes) are
// transient and scoped to a single invocation — the only durable output of
// a run is the file tree written to the target directory.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
