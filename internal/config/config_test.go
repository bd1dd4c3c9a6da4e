package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfig, "HELPTEXT_THEME", "HELPTEXT_WIDTH", "HELPTEXT_FILE"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadMergesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
theme = "gruvbox"
width = 72
soft_wrap = true
icon_classes = ["icon", "glyph"]
help_file = "/usr/share/doc/app/help.html"

[server]
addr = ":9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 72, cfg.Width)
	assert.True(t, cfg.SoftWrap)
	assert.Equal(t, []string{"icon", "glyph"}, cfg.IconClasses)
	assert.Equal(t, "/usr/share/doc/app/help.html", cfg.HelpFile)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "width = 60\n"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, []string{"material-icons"}, cfg.IconClasses)
	assert.Equal(t, "127.0.0.1:8095", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Width)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "colour = \"red\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "theme = \n"))
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "theme = \"idle\"\nwidth = 50\n")
	t.Setenv("HELPTEXT_THEME", "boring")
	t.Setenv("HELPTEXT_WIDTH", "100")
	t.Setenv("HELPTEXT_FILE", "help.md")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "boring", cfg.Theme)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, "help.md", cfg.HelpFile)
}

func TestEnvWidthIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELPTEXT_WIDTH", "wide")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Width)
}

func TestPathResolution(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, filepath.Join(xdg, "helptext", "config.toml"), Path(""))

	t.Setenv(EnvConfig, "/etc/helptext.toml")
	assert.Equal(t, "/etc/helptext.toml", Path(""))
	assert.Equal(t, "explicit.toml", Path("explicit.toml"))
}

func TestLoadFromXDG(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "helptext")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("theme = \"solarized-dark\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "solarized-dark", cfg.Theme)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	cfg.Width = -1
	require.Error(t, cfg.Validate())
}
