// Package cli — prompt.go implements the interactive prompts used when
// the project name or package manager is not given on the command line.
// Prompts are pterm-based and only run in text mode; JSON mode never
// blocks on input.
package cli

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/mmr-tortoise/monoseed/internal/model"
)

// promptNameAttempts bounds re-prompting on invalid input so a piped
// stdin cannot loop forever.
const promptNameAttempts = 3

// promptProjectName asks for a project name and re-prompts on invalid
// input, up to promptNameAttempts times.
func promptProjectName() (string, error) {
	for attempt := 0; attempt < promptNameAttempts; attempt++ {
		name, err := pterm.DefaultInteractiveTextInput.Show("Project name")
		if err != nil {
			return "", err
		}

		if err := model.ValidateProjectName(name); err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}
		return name, nil
	}

	return "", fmt.Errorf("no valid project name after %d attempts", promptNameAttempts)
}

// promptPackageManager asks which package manager to configure, with
// the default preselected.
func promptPackageManager() (model.PackageManager, error) {
	options := []string{
		model.Pnpm.String(),
		model.Npm.String(),
		model.Yarn.String(),
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(model.DefaultPackageManager.String()).
		Show("Package manager")
	if err != nil {
		return "", err
	}

	return model.ParsePackageManager(choice)
}
