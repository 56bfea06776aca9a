// configure.go mutates the scaffolded project's manifest and workspace
// files to match the selected package manager.
//
// The rewrite works in three phases, mirroring how the manifest must
// never be partially applied:
//  1. Strip JSONC comments and parse into a generic map
//  2. Apply mutations: name, packageManager, workspaces
//  3. Re-serialize with 2-space indentation and write once
//
// Using a map (instead of a typed struct) preserves every field the
// template author put in package.json — scripts, dependencies,
// engines — not just the ones this tool knows about.
package manifest

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/monoseed/internal/logging"
	"github.com/mmr-tortoise/monoseed/internal/model"
)

// Well-known file names in the scaffolded project root.
const (
	// FileName is the root project manifest.
	FileName = "package.json"

	// WorkspaceFileName is the pnpm-specific workspace declaration file.
	// It must be absent for npm and yarn targets.
	WorkspaceFileName = "pnpm-workspace.yaml"

	// EnvFileName is the registry/behavior dotfile copied verbatim from
	// the template root for every package manager.
	EnvFileName = ".npmrc"
)

// Pinned client versions written into the packageManager field.
// Corepack reads this field to activate the exact client version,
// which keeps every checkout of a scaffolded project on the same
// toolchain.
const (
	pnpmVersion = "pnpm@9.0.0"
	yarnVersion = "yarn@4.0.0"
)

// yarnWorkspaces is the workspace declaration written inline into the
// manifest for yarn targets. It names the template's two collections.
var yarnWorkspaces = []string{"apps/*", "packages/*"}

// Configure rewrites the manifest and workspace files under destRoot for
// the given package manager and project name. The project name is
// validated upstream at the CLI boundary and written verbatim.
//
// A missing manifest is not an error: the manifest mutation becomes a
// no-op while the workspace-file rule below still applies. Any read,
// parse, or write failure aborts with a model.ConfigurationError; the
// manifest on disk is then either untouched or fully configured, never
// in between.
//
// Configure is idempotent: re-running with the same inputs yields the
// same file contents.
func Configure(destRoot string, pm model.PackageManager, projectName string) error {
	logger := logging.GetLogger("manifest")

	manifestPath := filepath.Join(destRoot, FileName)
	data, err := os.ReadFile(manifestPath)
	switch {
	case os.IsNotExist(err):
		logger.Debug().Str("path", manifestPath).Msg("no manifest to configure")
	case err != nil:
		return model.NewConfigurationError(manifestPath, err)
	default:
		if err := rewriteManifest(manifestPath, data, pm, projectName); err != nil {
			return err
		}
		logger.Info().
			Str("name", projectName).
			Str("packageManager", pm.String()).
			Msg("manifest configured")
	}

	// Workspace declaration file rule: only pnpm projects carry
	// pnpm-workspace.yaml. The template ships it, so pnpm targets keep
	// it and the other two delete it. Absence is not an error.
	if pm == model.Npm || pm == model.Yarn {
		workspacePath := filepath.Join(destRoot, WorkspaceFileName)
		if err := os.Remove(workspacePath); err != nil && !os.IsNotExist(err) {
			return model.NewConfigurationError(workspacePath, err)
		}
	}

	return nil
}

// rewriteManifest performs the load-mutate-write cycle on raw manifest
// bytes. JSONC comments in the template manifest are tolerated on input
// and absent from the output.
func rewriteManifest(path string, raw []byte, pm model.PackageManager, projectName string) error {
	// Phase 1: strip comments, parse into a generic map so unknown
	// fields are preserved.
	clean := jsonc.ToJSON(raw)

	var manifest map[string]interface{}
	if err := json.Unmarshal(clean, &manifest); err != nil {
		return model.NewConfigurationError(path, err)
	}

	// Phase 2: apply mutations.
	manifest["name"] = projectName

	switch pm {
	case model.Npm:
		// npm does not consume the packageManager field the way
		// corepack-driven clients do; drop it. An inherited workspaces
		// field stays as-is.
		delete(manifest, "packageManager")

	case model.Yarn:
		manifest["packageManager"] = yarnVersion
		// Yarn declares workspaces inline; overwrite whatever the
		// template carried.
		workspaces := make([]interface{}, len(yarnWorkspaces))
		for i, glob := range yarnWorkspaces {
			workspaces[i] = glob
		}
		manifest["workspaces"] = workspaces

	default:
		manifest["packageManager"] = pnpmVersion
	}

	// Phase 3: serialize once with stable 2-space indentation so diffs
	// between regenerated projects stay minimal.
	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return model.NewConfigurationError(path, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return model.NewConfigurationError(path, err)
	}

	return nil
}

// CopyEnvFile copies the registry dotfile from the template root to the
// destination root, for every package manager uniformly. A template
// without the dotfile is a "nothing to do" condition.
func CopyEnvFile(templateRoot, destRoot string) error {
	srcPath := filepath.Join(templateRoot, EnvFileName)

	srcFile, err := os.Open(srcPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return model.NewConfigurationError(srcPath, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstPath := filepath.Join(destRoot, EnvFileName)
	dstFile, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return model.NewConfigurationError(dstPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return model.NewConfigurationError(dstPath, err)
	}

	return nil
}
