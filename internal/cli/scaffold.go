// Package cli — scaffold.go implements the scaffold run behind the root
// command.
//
// Orchestration steps:
//  1. Resolve the project name (positional argument or prompt) and
//     validate it
//  2. Resolve the package manager (selector flags, --pm, or prompt)
//  3. Resolve the template root (--template, env var, or the template
//     directory beside the executable)
//  4. Run the scaffold (internal/scaffold) under a spinner
//  5. Best-effort install dependencies under a second spinner
//  6. Output results (text or JSON)
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/monoseed/internal/installer"
	"github.com/mmr-tortoise/monoseed/internal/model"
	"github.com/mmr-tortoise/monoseed/internal/scaffold"
)

// templateEnvVar overrides the template root location without a flag,
// which packaging scripts use to point at an installed share directory.
const templateEnvVar = "MONOSEED_TEMPLATE"

// scaffoldFlags holds the flag values for the root command.
type scaffoldFlags struct {
	npm  bool   // --npm: configure the project for npm
	pnpm bool   // --pnpm: configure the project for pnpm (default)
	yarn bool   // --yarn: configure the project for yarn
	pm   string // --pm: key=value form of the selector flags

	templateDir    string        // --template: override the template root
	skipInstall    bool          // --skip-install: skip dependency installation
	installTimeout time.Duration // --install-timeout: wall-clock cap on the install step
}

// registerScaffoldFlags binds the scaffold flags to the root command.
func registerScaffoldFlags(cmd *cobra.Command, flags *scaffoldFlags) {
	cmd.Flags().BoolVar(&flags.npm, "npm", false, "Configure the project for npm")
	cmd.Flags().BoolVar(&flags.pnpm, "pnpm", false, "Configure the project for pnpm (default)")
	cmd.Flags().BoolVar(&flags.yarn, "yarn", false, "Configure the project for yarn")
	cmd.Flags().StringVar(&flags.pm, "pm", "", "Package manager to configure (npm|pnpm|yarn)")
	cmd.Flags().StringVar(&flags.templateDir, "template", "", "Template root directory (default: template/ beside the executable)")
	cmd.Flags().BoolVar(&flags.skipInstall, "skip-install", false, "Skip dependency installation")
	cmd.Flags().DurationVar(&flags.installTimeout, "install-timeout", installer.DefaultTimeout, "Wall-clock cap on dependency installation")
}

// runScaffold resolves all inputs and drives one scaffold run.
func runScaffold(args []string, flags *scaffoldFlags) error {
	projectName, err := resolveProjectName(args)
	if err != nil {
		return err
	}

	pm, err := resolvePackageManager(flags)
	if err != nil {
		return err
	}

	templateRoot, err := resolveTemplateRoot(flags.templateDir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "could not locate template", err)
	}

	// The project lands in the current working directory under its
	// own name.
	targetDir, err := filepath.Abs(projectName)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "could not resolve target directory", err)
	}

	req := model.ScaffoldRequest{
		TemplateRoot:   templateRoot,
		TargetDir:      targetDir,
		ProjectName:    projectName,
		PackageManager: pm,
	}

	spinner := startSpinner(fmt.Sprintf("Creating %s...", projectName))
	result, err := scaffold.Run(req)
	if err != nil {
		stopSpinner(spinner, false, "Scaffolding failed")
		return model.WrapCLIError(model.ExitGeneralError, "scaffolding failed", err)
	}
	stopSpinner(spinner, true, fmt.Sprintf("Created %s", result.TargetDir))

	if !flags.skipInstall {
		// Best-effort: the installer swallows every failure mode, so
		// this block cannot fail the run.
		spinner = startSpinner(fmt.Sprintf("Installing dependencies with %s...", pm))
		installer.Install(result.TargetDir, pm, flags.installTimeout)
		stopSpinner(spinner, true, "Install step finished")
	}

	printScaffoldResult(result)
	return nil
}

// resolveProjectName takes the positional argument when given, prompts
// otherwise, and validates the outcome either way.
func resolveProjectName(args []string) (string, error) {
	var name string
	if len(args) == 1 {
		name = args[0]
		if err := model.ValidateProjectName(name); err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "invalid project name", err)
		}
		return name, nil
	}

	if jsonOutput {
		// JSON mode is for machines; never block on a prompt.
		return "", model.NewCLIError(model.ExitGeneralError, "project name is required with --json")
	}

	name, err := promptProjectName()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "could not read project name", err)
	}
	return name, nil
}

// resolvePackageManager turns the selector flags into a PackageManager.
// More than one selector is a usage error; none at all falls through to
// the interactive prompt (or the default, when prompts are disabled).
func resolvePackageManager(flags *scaffoldFlags) (model.PackageManager, error) {
	selected := make([]model.PackageManager, 0, 3)
	if flags.npm {
		selected = append(selected, model.Npm)
	}
	if flags.pnpm {
		selected = append(selected, model.Pnpm)
	}
	if flags.yarn {
		selected = append(selected, model.Yarn)
	}
	if flags.pm != "" {
		pm, err := model.ParsePackageManager(flags.pm)
		if err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "invalid --pm value", err)
		}
		selected = append(selected, pm)
	}

	switch len(selected) {
	case 0:
		if jsonOutput {
			// JSON mode is for machines; never block on a prompt.
			return model.DefaultPackageManager, nil
		}
		pm, err := promptPackageManager()
		if err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "could not read package manager selection", err)
		}
		return pm, nil
	case 1:
		return selected[0], nil
	default:
		return "", model.NewCLIError(model.ExitGeneralError,
			"choose exactly one package manager (--npm, --pnpm, --yarn, or --pm)")
	}
}

// resolveTemplateRoot locates the fixed template directory: flag first,
// then the environment variable, then template/ beside the executable.
func resolveTemplateRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env := os.Getenv(templateEnvVar); env != "" {
		return filepath.Abs(env)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "template"), nil
}

// startSpinner begins a pterm spinner unless JSON output is requested.
// Returns nil in JSON mode; stopSpinner tolerates that.
func startSpinner(text string) *pterm.SpinnerPrinter {
	if jsonOutput {
		return nil
	}
	spinner, err := pterm.DefaultSpinner.Start(text)
	if err != nil {
		return nil
	}
	return spinner
}

// stopSpinner finishes a spinner with a success or failure mark.
func stopSpinner(spinner *pterm.SpinnerPrinter, ok bool, text string) {
	if spinner == nil {
		return
	}
	if ok {
		spinner.Success(text)
		return
	}
	spinner.Fail(text)
}

// printScaffoldResult outputs the result in text or JSON format.
func printScaffoldResult(result *model.ScaffoldResult) {
	if jsonOutput {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Scaffolded %q\n", result.ProjectName)
	fmt.Printf("  Path:             %s\n", result.TargetDir)
	fmt.Printf("  Package manager:  %s\n", result.PackageManager)

	if len(result.Workspaces) > 0 {
		fmt.Println()
		fmt.Println("  Workspaces:")
		for _, glob := range result.Workspaces {
			fmt.Printf("    %s\n", glob)
		}
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", result.ProjectName)
	fmt.Printf("  %s install\n", result.PackageManager)
}
