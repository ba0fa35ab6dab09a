package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for one test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

// withConfigPath temporarily sets the --config global for a test and
// restores it after. Returns a cleanup function that should be deferred.
func withConfigPath(path string) func() {
	old := configPath
	configPath = path
	return func() { configPath = old }
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "parseLogLevel(%q)", tt.in)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scango.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	defer withConfigPath(path)()

	cfg, loaded, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	defer withConfigPath(filepath.Join(t.TempDir(), "nope.toml"))()

	_, _, err := loadConfig()
	require.Error(t, err)
}

func TestLoadConfig_NoFileAnywhere(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SCANGO_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, loaded, err := loadConfig()
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.Equal(t, "scanimage", cfg.Scanner.Command, "defaults apply without a file")
}
