package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/monoseed/internal/model"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. (Equivalent to t.Chdir, which
// requires Go 1.24+.)
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

// buildTemplate creates a minimal valid template root for CLI-level tests.
func buildTemplate(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "apps"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "packages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte(`{"name":"template"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pnpm-workspace.yaml"),
		[]byte("packages:\n  - \"apps/*\"\n  - \"packages/*\"\n"), 0o644))
	return root
}

// TestNewRootCommand_Flags verifies the full flag surface is registered.
func TestNewRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"npm", "pnpm", "yarn", "pm", "template", "skip-install", "install-timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag --%s should be registered", name)
	}
	for _, name := range []string{"json", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag --%s should be registered", name)
	}
}

// TestResolvePackageManager covers the selector-flag combinations,
// including the key=value form and the conflict error.
func TestResolvePackageManager(t *testing.T) {
	tests := []struct {
		name     string
		flags    scaffoldFlags
		expected model.PackageManager
		hasError bool
	}{
		{"npm flag", scaffoldFlags{npm: true}, model.Npm, false},
		{"pnpm flag", scaffoldFlags{pnpm: true}, model.Pnpm, false},
		{"yarn flag", scaffoldFlags{yarn: true}, model.Yarn, false},
		{"pm value", scaffoldFlags{pm: "yarn"}, model.Yarn, false},
		{"pm value case", scaffoldFlags{pm: "NPM"}, model.Npm, false},
		{"conflicting flags", scaffoldFlags{npm: true, yarn: true}, "", true},
		{"flag plus pm", scaffoldFlags{pnpm: true, pm: "npm"}, "", true},
		{"invalid pm value", scaffoldFlags{pm: "bun"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm, err := resolvePackageManager(&tt.flags)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, pm)
			}
		})
	}
}

// TestResolvePackageManager_JSONDefault verifies JSON mode never blocks
// on a prompt and falls back to the default client.
func TestResolvePackageManager_JSONDefault(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	pm, err := resolvePackageManager(&scaffoldFlags{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPackageManager, pm)
}

// TestResolveTemplateRoot_FlagAndEnv verifies resolution precedence:
// flag over environment variable.
func TestResolveTemplateRoot_FlagAndEnv(t *testing.T) {
	fromEnv := t.TempDir()
	t.Setenv(templateEnvVar, fromEnv)

	root, err := resolveTemplateRoot("")
	require.NoError(t, err)
	assert.Equal(t, fromEnv, root)

	fromFlag := t.TempDir()
	root, err = resolveTemplateRoot(fromFlag)
	require.NoError(t, err)
	assert.Equal(t, fromFlag, root)
}

// TestRootCommand_EndToEnd runs a complete scaffold through the command
// in JSON mode (no prompts, no spinner) and checks the files on disk.
func TestRootCommand_EndToEnd(t *testing.T) {
	templateRoot := buildTemplate(t)
	workDir := t.TempDir()
	chdir(t, workDir)
	t.Cleanup(func() { jsonOutput = false })

	cmd := NewRootCommand()
	cmd.SetArgs([]string{
		"demo",
		"--yarn",
		"--skip-install",
		"--json",
		"--template", templateRoot,
	})
	require.NoError(t, cmd.Execute())

	targetDir := filepath.Join(workDir, "demo")
	assert.DirExists(t, filepath.Join(targetDir, "apps"))
	assert.DirExists(t, filepath.Join(targetDir, "packages"))
	assert.NoFileExists(t, filepath.Join(targetDir, "pnpm-workspace.yaml"))

	data, err := os.ReadFile(filepath.Join(targetDir, "package.json"))
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "demo", m["name"])
	assert.Equal(t, "yarn@4.0.0", m["packageManager"])
}

// TestRootCommand_TargetExists verifies the refusal path surfaces an
// error through the command without touching the directory.
func TestRootCommand_TargetExists(t *testing.T) {
	templateRoot := buildTemplate(t)
	workDir := t.TempDir()
	chdir(t, workDir)
	t.Cleanup(func() { jsonOutput = false })

	require.NoError(t, os.Mkdir(filepath.Join(workDir, "demo"), 0o755))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"demo", "--pnpm", "--skip-install", "--json", "--template", templateRoot})
	err := cmd.Execute()
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)

	// Refused before anything was written.
	assert.NoFileExists(t, filepath.Join(workDir, "demo", "package.json"))
}

// TestRootCommand_InvalidName verifies name validation at the CLI
// boundary.
func TestRootCommand_InvalidName(t *testing.T) {
	templateRoot := buildTemplate(t)
	chdir(t, t.TempDir())
	t.Cleanup(func() { jsonOutput = false })

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"bad name!", "--pnpm", "--json", "--template", templateRoot})
	assert.Error(t, cmd.Execute())
}
