// Package config handles TOML configuration loading with environment
// variable substitution. Every key has a built-in default, so scango runs
// without any config file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Scanner ScannerConfig `toml:"scanner"`
	Convert ConvertConfig `toml:"convert"`
	Prompt  PromptConfig  `toml:"prompt"`
	Viewer  ViewerConfig  `toml:"viewer"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// ScannerConfig describes the external capture command.
type ScannerConfig struct {
	Command    string   `toml:"command"`
	Device     string   `toml:"device"`
	Resolution int      `toml:"resolution"`
	Mode       string   `toml:"mode"`
	Args       []string `toml:"args"`
}

// ConvertConfig describes the raster-to-target-format converter.
type ConvertConfig struct {
	Command string `toml:"command"`
}

// PromptConfig describes the interactive rename dialog. The command is an
// argv vector; {suggestion} and {path} are replaced before execution.
type PromptConfig struct {
	Command []string `toml:"command"`
}

// ViewerConfig describes the post-capture viewer. An empty command selects
// the platform opener.
type ViewerConfig struct {
	Command []string `toml:"command"`
}

// HistoryConfig controls the capture ledger.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Command:    "scanimage",
			Resolution: 300,
			Mode:       "Color",
		},
		Convert: ConvertConfig{Command: "convert"},
		Prompt: PromptConfig{
			Command: []string{
				"zenity", "--entry",
				"--title=scango",
				"--text=Saving scan as {path}. Enter a different name to rename:",
				"--entry-text={suggestion}",
			},
		},
		History: HistoryConfig{Enabled: true},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads and parses the configuration file. Values decode over the
// built-in defaults, so a partial file only overrides what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDiscovered loads the first config file found in the search order and
// reports its path. When no file exists anywhere it returns the built-in
// defaults with an empty path.
func LoadDiscovered() (*Config, string, error) {
	path, err := Discover()
	if errors.Is(err, ErrNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message} references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces environment variable references. Unset or empty
// variables fall back to their :- default when one is given; :? references
// report the given message. Plain references to unset variables are left
// unchanged and reported as missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}

		if name, msg, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			missing = append(missing, fmt.Sprintf("%s: %s", name, msg))
			return match
		}

		if value, ok := os.LookupEnv(expr); ok && value != "" {
			return value
		}
		missing = append(missing, expr)
		return match
	})
	return out, missing
}
