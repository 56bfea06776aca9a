// Package scaffold orchestrates one end-to-end scaffold run.
//
// Orchestration steps:
//  1. Validate the template root (apps/ and packages/ must exist)
//  2. Refuse a pre-existing target directory
//  3. Materialize the filtered, link-resolved template tree
//  4. Configure the manifest and workspace files for the package manager
//  5. Collect the result summary (workspace globs, best-effort)
//
// A failure in step 3 or 4 triggers best-effort removal of the partially
// created target before the error propagates; failures in steps 1 and 2
// happen before anything is written, so there is nothing to clean up.
// Dependency installation is deliberately NOT part of this package — the
// CLI layer runs it afterwards so its spinner owns the bounded wait, and
// its outcome never affects the run.
package scaffold

import (
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/monoseed/internal/logging"
	"github.com/mmr-tortoise/monoseed/internal/manifest"
	"github.com/mmr-tortoise/monoseed/internal/model"
	"github.com/mmr-tortoise/monoseed/internal/template"
)

// Run executes a scaffold described by req and returns a summary of what
// was created. All inputs are validated by the CLI layer; Run trusts the
// project name and package manager.
func Run(req model.ScaffoldRequest) (*model.ScaffoldResult, error) {
	logger := logging.GetLogger("scaffold")

	if err := template.ValidateRoot(req.TemplateRoot); err != nil {
		return nil, err
	}

	// Lstat rather than Stat: a dangling symlink at the target path
	// still occupies the name and must refuse the run.
	if _, err := os.Lstat(req.TargetDir); err == nil {
		return nil, &model.TargetExistsError{Path: req.TargetDir}
	} else if !os.IsNotExist(err) {
		return nil, model.NewScaffoldError(req.TargetDir, err)
	}

	logger.Info().
		Str("template", req.TemplateRoot).
		Str("target", req.TargetDir).
		Msg("materializing template")

	if err := template.Materialize(req.TemplateRoot, req.TargetDir); err != nil {
		cleanup(req.TargetDir)
		return nil, err
	}

	if err := manifest.Configure(req.TargetDir, req.PackageManager, req.ProjectName); err != nil {
		cleanup(req.TargetDir)
		return nil, err
	}
	if err := manifest.CopyEnvFile(req.TemplateRoot, req.TargetDir); err != nil {
		cleanup(req.TargetDir)
		return nil, err
	}

	result := &model.ScaffoldResult{
		TargetDir:      req.TargetDir,
		ProjectName:    req.ProjectName,
		PackageManager: req.PackageManager,
	}

	// Workspace globs feed the summary only; an unreadable declaration
	// file must not fail an otherwise complete scaffold.
	globs, err := manifest.Workspaces(req.TargetDir)
	if err != nil {
		logger.Warn().Err(err).Msg("could not read workspace declaration for summary")
	} else {
		result.Workspaces = globs
	}

	logger.Info().Str("project", req.ProjectName).Msg("scaffold complete")
	return result, nil
}

// cleanup removes a partially created target directory. Best-effort: a
// cleanup failure is reported but does not replace or reclassify the
// original error.
func cleanup(targetDir string) {
	logger := logging.GetLogger("scaffold")

	// Refuse to remove anything but the directory this run created.
	// filepath.Clean guards against a trailing-separator path turning
	// the log line confusing; the caller already verified the directory
	// did not exist before the run.
	targetDir = filepath.Clean(targetDir)

	if err := os.RemoveAll(targetDir); err != nil {
		logger.Error().Str("target", targetDir).Err(err).Msg("cleanup of partial target failed")
		return
	}
	logger.Info().Str("target", targetDir).Msg("removed partially created target")
}
