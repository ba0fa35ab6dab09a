package resolve

import (
	"fmt"
	"os"
	"path/filepath"
)

// Env carries the process locations resolution depends on. Passing it in
// explicitly keeps the resolver deterministic under test.
type Env struct {
	WorkDir string // current working directory
	Home    string // user home directory
	ExeDir  string // directory containing the running binary
}

// DefaultEnv captures the real process environment.
func DefaultEnv() (Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Env{}, fmt.Errorf("determine working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, fmt.Errorf("determine home directory: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return Env{}, fmt.Errorf("determine executable path: %w", err)
	}
	return Env{WorkDir: wd, Home: home, ExeDir: filepath.Dir(exe)}, nil
}
