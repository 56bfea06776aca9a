// validate.go checks template-root well-formedness before any copying
// begins. A malformed template is a fatal precondition failure: nothing
// has been written yet, so no cleanup is required.
package template

import (
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/monoseed/internal/model"
)

// Names of the two top-level directories every template must provide.
// They anchor the monorepo layout that the workspace globs
// ("apps/*", "packages/*") refer to.
const (
	AppsDirName     = "apps"
	PackagesDirName = "packages"
)

// ValidateRoot verifies that root exists, is a directory, and contains
// the apps and packages collections. It returns a
// model.TemplateNotFoundError naming the missing path otherwise.
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return &model.TemplateNotFoundError{Path: root}
	}

	for _, name := range []string{AppsDirName, PackagesDirName} {
		sub := filepath.Join(root, name)
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			return &model.TemplateNotFoundError{Path: sub}
		}
	}

	return nil
}
