// workspace.go reads the workspace globs a scaffolded project declares,
// for the post-scaffold summary. The declaration lives in two places
// depending on the client: pnpm-workspace.yaml for pnpm, the manifest's
// workspaces field for npm and yarn.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// workspaceFile models the subset of pnpm-workspace.yaml this tool
// reads. Only the packages list matters; anything else in the file is
// opaque to us and left alone (the file is never written here).
type workspaceFile struct {
	// Packages lists the workspace member globs, e.g. "apps/*".
	Packages []string `yaml:"packages"`
}

// Workspaces returns the workspace globs declared under destRoot.
// It first consults pnpm-workspace.yaml, then falls back to the
// manifest's workspaces field. A project declaring neither returns
// (nil, nil) — having no workspaces is not an error.
func Workspaces(destRoot string) ([]string, error) {
	globs, err := pnpmWorkspaces(filepath.Join(destRoot, WorkspaceFileName))
	if err != nil {
		return nil, err
	}
	if globs != nil {
		return globs, nil
	}

	return manifestWorkspaces(filepath.Join(destRoot, FileName))
}

// pnpmWorkspaces parses the packages list from pnpm-workspace.yaml.
// Returns (nil, nil) when the file does not exist.
func pnpmWorkspaces(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var wf workspaceFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, err
	}
	return wf.Packages, nil
}

// manifestWorkspaces reads the workspaces array from package.json.
// Both the missing-file and missing-field cases return (nil, nil).
func manifestWorkspaces(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var manifest struct {
		Workspaces []string `json:"workspaces"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
		return nil, err
	}
	return manifest.Workspaces, nil
}
