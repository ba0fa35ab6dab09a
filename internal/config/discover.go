package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no config file exists in any searched location.
// Callers fall back to the built-in defaults in that case.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./scango.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scango", "scango.toml")
}

// Discover finds the config file using the standard search order:
//
//  1. SCANGO_CONFIG environment variable
//  2. ./scango.toml (current directory)
//  3. $XDG_CONFIG_HOME/scango/scango.toml
//  4. /etc/scango/scango.toml
//
// A set but unreadable SCANGO_CONFIG is an error, not a fallthrough.
func Discover() (string, error) {
	if envPath := os.Getenv("SCANGO_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("SCANGO_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./scango.toml",
		DefaultPath(),
		"/etc/scango/scango.toml",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
