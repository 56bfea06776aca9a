package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/monoseed/internal/model"
)

// setupProject creates a destination directory resembling a freshly
// materialized template: a manifest with extra fields that must survive
// configuration, and the pnpm workspace declaration file.
func setupProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	manifest := `{
  "name": "template",
  "private": true,
  "packageManager": "pnpm@9.0.0",
  "scripts": {
    "build": "turbo build"
  },
  "devDependencies": {
    "turbo": "^2.0.0"
  }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorkspaceFileName),
		[]byte("packages:\n  - \"apps/*\"\n  - \"packages/*\"\n"), 0o644))
	return dir
}

// readManifest parses the configured manifest back into a map for
// assertions.
func readManifest(t *testing.T, dir string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

// TestConfigure_Npm verifies the npm branch: name set, packageManager
// removed, workspace declaration file deleted.
func TestConfigure_Npm(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, Configure(dir, model.Npm, "demo"))

	m := readManifest(t, dir)
	assert.Equal(t, "demo", m["name"])
	_, hasPM := m["packageManager"]
	assert.False(t, hasPM, "npm manifests must not carry packageManager")

	assert.NoFileExists(t, filepath.Join(dir, WorkspaceFileName))
}

// TestConfigure_Yarn verifies the yarn branch: pinned client version and
// the fixed inline workspaces list, overwriting any prior value.
func TestConfigure_Yarn(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, Configure(dir, model.Yarn, "demo"))

	m := readManifest(t, dir)
	assert.Equal(t, "demo", m["name"])
	assert.Equal(t, "yarn@4.0.0", m["packageManager"])
	assert.Equal(t, []interface{}{"apps/*", "packages/*"}, m["workspaces"])

	assert.NoFileExists(t, filepath.Join(dir, WorkspaceFileName))
}

// TestConfigure_Pnpm verifies the default branch: pinned client version
// and the workspace declaration file left in place.
func TestConfigure_Pnpm(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, Configure(dir, model.Pnpm, "demo"))

	m := readManifest(t, dir)
	assert.Equal(t, "demo", m["name"])
	assert.Equal(t, "pnpm@9.0.0", m["packageManager"])

	assert.FileExists(t, filepath.Join(dir, WorkspaceFileName))
}

// TestConfigure_PreservesUnknownFields verifies the read-modify-write
// discipline: fields the configurator does not know about survive.
func TestConfigure_PreservesUnknownFields(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, Configure(dir, model.Pnpm, "demo"))

	m := readManifest(t, dir)
	assert.Equal(t, true, m["private"])

	scripts, ok := m["scripts"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "turbo build", scripts["build"])

	deps, ok := m["devDependencies"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "^2.0.0", deps["turbo"])
}

// TestConfigure_Idempotent verifies applying the same configuration
// twice yields byte-identical manifest content.
func TestConfigure_Idempotent(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, Configure(dir, model.Yarn, "demo"))
	first, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	require.NoError(t, Configure(dir, model.Yarn, "demo"))
	second, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestConfigure_JSONCComments verifies comments in a template manifest
// are tolerated on input and absent from the configured output.
func TestConfigure_JSONCComments(t *testing.T) {
	dir := t.TempDir()
	manifest := `{
  // the template's own name, replaced on scaffold
  "name": "template",
  "private": true
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(manifest), 0o644))

	require.NoError(t, Configure(dir, model.Pnpm, "demo"))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "//")

	m := readManifest(t, dir)
	assert.Equal(t, "demo", m["name"])
}

// TestConfigure_MissingManifest verifies a missing manifest is a no-op
// for the manifest while the workspace-file rule still applies.
func TestConfigure_MissingManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorkspaceFileName),
		[]byte("packages:\n  - \"apps/*\"\n"), 0o644))

	require.NoError(t, Configure(dir, model.Npm, "demo"))

	assert.NoFileExists(t, filepath.Join(dir, FileName))
	assert.NoFileExists(t, filepath.Join(dir, WorkspaceFileName))
}

// TestConfigure_MissingWorkspaceFile verifies deleting an absent
// workspace declaration file is not an error.
func TestConfigure_MissingWorkspaceFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName),
		[]byte(`{"name":"template"}`), 0o644))

	assert.NoError(t, Configure(dir, model.Yarn, "demo"))
}

// TestConfigure_InvalidManifest verifies a parse failure surfaces as a
// ConfigurationError and leaves the file untouched.
func TestConfigure_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	broken := []byte(`{"name": "template"`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), broken, 0o644))

	err := Configure(dir, model.Pnpm, "demo")

	var confErr *model.ConfigurationError
	require.True(t, errors.As(err, &confErr))

	data, readErr := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, readErr)
	assert.Equal(t, broken, data, "a failed configuration must not mutate the manifest")
}

// TestConfigure_TrailingNewline pins the POSIX trailing newline on the
// configured manifest.
func TestConfigure_TrailingNewline(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, Configure(dir, model.Pnpm, "demo"))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

// TestCopyEnvFile verifies the dotfile is copied verbatim when present
// and silently skipped when absent.
func TestCopyEnvFile(t *testing.T) {
	templateRoot := t.TempDir()
	destRoot := t.TempDir()

	// Absent in the template: nothing to do.
	require.NoError(t, CopyEnvFile(templateRoot, destRoot))
	assert.NoFileExists(t, filepath.Join(destRoot, EnvFileName))

	content := "registry=https://registry.example.com/\n"
	require.NoError(t, os.WriteFile(filepath.Join(templateRoot, EnvFileName), []byte(content), 0o644))

	require.NoError(t, CopyEnvFile(templateRoot, destRoot))
	data, err := os.ReadFile(filepath.Join(destRoot, EnvFileName))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
