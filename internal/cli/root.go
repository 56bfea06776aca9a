// Package cli implements the cobra-based command surface for monoseed.
//
// monoseed is a single-purpose tool, so the root command itself performs
// the scaffold (see scaffold.go in this package); there is no subcommand
// tree. This file defines the root command, the global flags, and the
// error-to-exit-code translation.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/monoseed/internal/logging"
	"github.com/mmr-tortoise/monoseed/internal/model"
)

// Global flag variables bound to the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine
	// consumption and interactive prompts are disabled.
	jsonOutput bool

	// verbosity raises the log level: 0 warn, 1 info, 2 debug, 3+ trace.
	verbosity int
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &scaffoldFlags{}

	rootCmd := &cobra.Command{
		Use:   "monoseed [project-name]",
		Short: "Scaffold a multi-package monorepo from the built-in template",
		Long: `monoseed creates a new monorepo project from a fixed template: an apps/
collection, a packages/ collection, and the workspace wiring for your
package manager of choice (npm, pnpm, or yarn; pnpm is the default).

When the project name or the package manager is not given on the command
line, monoseed asks interactively.

Examples:
  monoseed my-product --pnpm
  monoseed my-product --pm yarn
  monoseed my-product --npm --skip-install
  monoseed`,

		// At most one positional argument: the project name. A missing
		// name triggers the interactive prompt.
		Args: cobra.MaximumNArgs(1),

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRun fires after flag parsing and before RunE, the
		// right moment to configure logging from --verbose.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(args, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	registerScaffoldFlags(rootCmd, flags)

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
