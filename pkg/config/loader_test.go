// pkg/config/loader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp directories, environment
// PURPOSE: Test layered configuration loading and TOML rendering

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config lookup at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WFLINK_CONFIG_DIR", dir)
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.PrefsFile)
	assert.Equal(t, "workflows", cfg.WorkflowsSubdir)
	assert.Equal(t, ".png", cfg.AssetExt)
	assert.Equal(t, "Makefile", cfg.BuildFile)
	assert.Equal(t, "WORKFLOW_FILES =", cfg.ManifestMarker)
	assert.False(t, cfg.LogFile)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UserFile(t *testing.T) {
	dir := isolate(t)
	content := `build_file = "GNUmakefile"
asset_ext = ".icns"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "GNUmakefile", cfg.BuildFile)
	assert.Equal(t, ".icns", cfg.AssetExt)
	assert.Equal(t, "WORKFLOW_FILES =", cfg.ManifestMarker, "unset keys keep defaults")
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidToml(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("build_file = [unterminated"), 0644))

	_, err := Load(LoadOptions{ConfigFile: path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_EnvAndOverridesPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`build_file = "FromFile"`), 0644))
	t.Setenv("WFLINK_BUILD_FILE", "FromEnv")
	t.Setenv("WFLINK_LOG_FILE", "true")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.BuildFile)
	assert.True(t, cfg.LogFile)

	cfg, err = Load(LoadOptions{Overrides: map[string]interface{}{"build_file": "FromFlag"}})
	require.NoError(t, err)
	assert.Equal(t, "FromFlag", cfg.BuildFile)
}

func TestLoad_RejectsEmptyMarker(t *testing.T) {
	isolate(t)
	t.Setenv("WFLINK_MANIFEST_MARKER", " ")

	_, err := Load(LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestValidate_ReportsFirstEmptyKeyInOrder(t *testing.T) {
	cfg := Default()
	cfg.AssetExt = ""
	cfg.BuildFile = " "
	cfg.ManifestMarker = ""

	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "asset_ext", errors.GetErrorDetails(err)["key"])
	}
}

func TestResolvedPrefsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	got, err := cfg.ResolvedPrefsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", "Alfred", "prefs.json"), got)

	cfg.PrefsFile = "~/alfred/prefs.json"
	got, err = cfg.ResolvedPrefsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "alfred", "prefs.json"), got)
}

func TestMarshal_RoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.BuildFile = "GNUmakefile"

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "build_file")
	assert.Contains(t, string(data), "GNUmakefile")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
