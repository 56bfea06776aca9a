// materialize.go implements the recursive copy-and-filter routine.
//
// The recursion carries three paths per level: the current source
// directory, the current destination directory, and the fixed original
// template root. The original root exists only so that ignore filtering
// can compute root-relative paths at every depth — there is no global
// mutable "current root" state.
//
// Symbolic links are resolved once per entry and never reproduced as
// links. A broken link (target missing or unreadable) is skipped
// silently; broken links in a template are a "nothing to do" condition,
// not an error. Cyclic links terminate: each canonical directory path
// reached through a link is recorded in a per-run visited set, and a
// directory seen again through a link is skipped.
package template

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/monoseed/internal/logging"
	"github.com/mmr-tortoise/monoseed/internal/model"
)

// Materialize copies the filtered, link-resolved content of sourceRoot
// into destRoot. destRoot is created if absent (the caller is responsible
// for refusing a pre-existing target before invoking this). sourceRoot is
// never modified.
//
// Any I/O failure that is not a skippable condition (ignored entry,
// broken link) aborts the copy with a model.ScaffoldError wrapping the
// cause. Traversal order is not guaranteed; no step depends on sibling
// ordering.
func Materialize(sourceRoot, destRoot string) error {
	matcher := NewMatcher(DefaultIgnoreRules)

	// Seed the cycle guard with the canonical root so a link pointing
	// back at the template root (or at any ancestor chain through it)
	// terminates instead of recursing forever.
	visited := make(map[string]struct{})
	if canonical, err := filepath.EvalSymlinks(sourceRoot); err == nil {
		visited[canonical] = struct{}{}
	}

	return copyTree(sourceRoot, destRoot, sourceRoot, matcher, visited)
}

// copyTree copies one directory level and recurses. srcDir and dstDir
// move together down the tree; origRoot stays fixed so relative-path
// computation for filtering remains anchored at the template root.
func copyTree(srcDir, dstDir, origRoot string, matcher *Matcher, visited map[string]struct{}) error {
	logger := logging.GetLogger("template")

	// MkdirAll is a no-op for an existing directory, which makes the
	// routine tolerant of a pre-existing (empty or partially populated)
	// destination. Refusing a pre-existing target is the caller's job.
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return model.NewScaffoldError(dstDir, err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return model.NewScaffoldError(srcDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())

		// Filtering inspects the entry's own name and root-relative
		// path — for a symlink, never the target's. Inside a followed
		// link the relative path may climb out of the root (leading
		// ".." segments); literal path rules then simply don't match,
		// while base-name rules still do.
		rel, relErr := filepath.Rel(origRoot, srcPath)
		if relErr != nil {
			rel = entry.Name()
		}
		if matcher.Matches(entry.Name(), rel) {
			logger.Debug().Str("path", rel).Msg("skipping ignored entry")
			continue
		}

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := copyLinkTarget(srcPath, dstPath, origRoot, matcher, visited); err != nil {
				return err
			}

		case entry.IsDir():
			if err := copyTree(srcPath, dstPath, origRoot, matcher, visited); err != nil {
				return err
			}

		default:
			info, infoErr := entry.Info()
			if infoErr != nil {
				return model.NewScaffoldError(srcPath, infoErr)
			}
			if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyLinkTarget resolves a symbolic link and materializes its content at
// dstPath. Relative link targets resolve against the link's containing
// directory. A target that cannot be read or does not exist produces no
// output and no error.
func copyLinkTarget(linkPath, dstPath, origRoot string, matcher *Matcher, visited map[string]struct{}) error {
	logger := logging.GetLogger("template")

	target, err := os.Readlink(linkPath)
	if err != nil {
		logger.Debug().Str("link", linkPath).Err(err).Msg("skipping unreadable symlink")
		return nil
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}

	// Stat follows any further link chain. A missing target means a
	// broken link, which never aborts the run.
	info, err := os.Stat(target)
	if err != nil {
		logger.Debug().Str("link", linkPath).Str("target", target).Msg("skipping broken symlink")
		return nil
	}

	if info.IsDir() {
		canonical, evalErr := filepath.EvalSymlinks(target)
		if evalErr == nil {
			if _, seen := visited[canonical]; seen {
				logger.Debug().Str("link", linkPath).Str("target", canonical).Msg("skipping cyclic symlink")
				return nil
			}
			visited[canonical] = struct{}{}
		}
		// Recurse into the resolved directory as if it were an
		// ordinary subdirectory located at the link's own path.
		return copyTree(target, dstPath, origRoot, matcher, visited)
	}

	return copyFile(target, dstPath, info.Mode().Perm())
}

// copyFile copies a single file from src to dst, preserving the
// permission bits and overwriting dst if present. io.Copy streams the
// content so large template assets are not loaded into memory.
func copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return model.NewScaffoldError(src, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return model.NewScaffoldError(dst, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return model.NewScaffoldError(dst, err)
	}

	return nil
}
