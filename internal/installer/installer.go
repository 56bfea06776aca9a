// Package installer spawns the package manager's install step after a
// successful scaffold.
//
// Installation is strictly best-effort: a spawn failure, a non-zero exit
// code, and a blown wall-clock cap are all treated identically to
// success — logged, never surfaced as a failure of the overall
// operation. The scaffolded tree is valid and usable even when the
// install is killed, so nothing here may abort a run.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mmr-tortoise/monoseed/internal/logging"
	"github.com/mmr-tortoise/monoseed/internal/model"
)

// DefaultTimeout is the hard wall-clock cap on the install step. The cap
// keeps the CLI responsive; it does not guarantee installation
// completion. Exceeding it kills the spawned process.
const DefaultTimeout = 90 * time.Second

// Install runs "<pm> install" in dir, bounded by timeout (DefaultTimeout
// when zero or negative). It never returns an error: every failure mode
// is logged at warn and swallowed.
func Install(dir string, pm model.PackageManager, timeout time.Duration) {
	logger := logging.GetLogger("installer")

	name, args := pm.InstallArgs()
	start := time.Now()

	if err := Run(dir, name, args, timeout); err != nil {
		logger.Warn().
			Str("packageManager", pm.String()).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("dependency installation did not complete; the project is usable, run install manually")
		return
	}

	logger.Info().
		Str("packageManager", pm.String()).
		Dur("elapsed", time.Since(start)).
		Msg("dependencies installed")
}

// Run executes a single command in dir under a context deadline. When
// the deadline fires, the process is forcibly terminated and the
// returned error says so; cancellation has no effect on files already
// written by the command.
func Run(dir, name string, args []string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// #nosec G204 — name and args come from the PackageManager enum,
	// not from user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	// Capture combined output for diagnostics only; install output is
	// noise on the happy path.
	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s and was terminated", name, timeout)
	}
	if err != nil {
		tail := strings.TrimSpace(output.String())
		if tail != "" {
			return fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, lastLine(tail))
		}
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}

	return nil
}

// lastLine trims install output down to its final line, which for all
// three clients is where the actionable error message lands.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
