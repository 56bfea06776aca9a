package model

import (
	"fmt"
	"regexp"
	"strings"
)

// PackageManager identifies which Node.js package manager the scaffolded
// project is configured for. The choice drives both the manifest mutation
// rules (see internal/manifest) and the dependency installation command
// (see internal/installer).
type PackageManager string

const (
	// Npm is the stock npm client. npm projects carry no packageManager
	// field in their manifest and declare workspaces inline.
	Npm PackageManager = "npm"

	// Pnpm is the default package manager when none is selected.
	// pnpm projects pin the client via the packageManager field and
	// declare workspaces in pnpm-workspace.yaml.
	Pnpm PackageManager = "pnpm"

	// Yarn is Yarn Berry. yarn projects pin the client via the
	// packageManager field and declare workspaces inline in the manifest.
	Yarn PackageManager = "yarn"
)

// DefaultPackageManager is used when the caller specifies no selector flag
// and skips the interactive prompt.
const DefaultPackageManager = Pnpm

// String returns the string representation of PackageManager.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (pm PackageManager) String() string {
	return string(pm)
}

// IsValid checks whether the PackageManager value is one of the
// three supported clients.
func (pm PackageManager) IsValid() bool {
	switch pm {
	case Npm, Pnpm, Yarn:
		return true
	default:
		return false
	}
}

// ParsePackageManager converts a string to a PackageManager.
// Returns an error if the string does not match any supported client.
func ParsePackageManager(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(s))
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid package manager: %q (valid: npm, pnpm, yarn)", s)
	}
	return pm, nil
}

// InstallArgs returns the command name and arguments that install
// dependencies for this package manager. All three clients use the same
// subcommand shape.
func (pm PackageManager) InstallArgs() (string, []string) {
	return string(pm), []string{"install"}
}

// projectNameRegex validates project names: letters, digits, hyphens and
// underscores only. The name lands verbatim in the manifest's name field,
// so anything looser would produce an invalid package name.
var projectNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateProjectName checks if the given name is usable as both a
// directory name and a manifest name field. Validation happens once at
// the CLI boundary — downstream components trust the name.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("invalid project name %q: only letters, digits, hyphens and underscores are allowed", name)
	}
	return nil
}

// ScaffoldRequest bundles the validated inputs for one scaffold run.
// It is assembled by the CLI layer (from flags or interactive prompts)
// and consumed by internal/scaffold.
type ScaffoldRequest struct {
	// TemplateRoot is the absolute path to the fixed template tree.
	// It is read-only for the entire run.
	TemplateRoot string `json:"templateRoot"`

	// TargetDir is the absolute path of the directory to create.
	// It must not exist before the run starts.
	TargetDir string `json:"targetDir"`

	// ProjectName is the validated name written into the manifest.
	ProjectName string `json:"projectName"`

	// PackageManager selects the manifest mutation rules and the
	// install command.
	PackageManager PackageManager `json:"packageManager"`
}

// ScaffoldResult describes a completed scaffold run for presentation.
// Workspaces is best-effort: an unreadable workspace declaration file
// leaves it empty rather than failing the run.
type ScaffoldResult struct {
	// TargetDir is the absolute path of the created project.
	TargetDir string `json:"targetDir"`

	// ProjectName is the name written into the manifest.
	ProjectName string `json:"projectName"`

	// PackageManager the project was configured for.
	PackageManager PackageManager `json:"packageManager"`

	// Workspaces lists the workspace globs declared by the scaffolded
	// project, when they could be determined.
	Workspaces []string `json:"workspaces,omitempty"`
}

// ExitCode defines the CLI exit codes. Scripts and CI systems only need
// to distinguish success from failure, so the surface is deliberately
// small: every fatal condition maps to ExitGeneralError after best-effort
// cleanup of a partially written target.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates a fatal precondition failure,
	// validation failure, or unhandled error.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
