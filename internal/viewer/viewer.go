// Package viewer hands a finished capture to the user's preferred viewer.
// Launching is fire-and-forget: the viewer's exit status is logged, never
// awaited by the caller.
package viewer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener opens a file in an external application.
type Opener interface {
	Open(path string) error
}

// Launcher shells out to the configured viewer command, falling back to the
// platform opener when none is configured.
type Launcher struct {
	argv []string
	log  *slog.Logger
}

// NewLauncher creates a launcher. argv may be empty.
func NewLauncher(argv []string, log *slog.Logger) *Launcher {
	return &Launcher{argv: argv, log: log.With("component", "viewer")}
}

var _ Opener = (*Launcher)(nil)

// Open starts the viewer on path without waiting for it to exit.
func (l *Launcher) Open(path string) error {
	argv := l.argv
	if len(argv) == 0 {
		argv = DefaultCommand()
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch viewer: %w", err)
	}
	l.log.Debug("viewer launched", "command", argv[0], "path", path)

	// Reap the child so it cannot linger as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			l.log.Debug("viewer exited", "error", err)
		}
	}()
	return nil
}

// DefaultCommand is the per-platform opener used when no viewer command is
// configured.
func DefaultCommand() []string {
	if runtime.GOOS == "darwin" {
		return []string{"open"}
	}
	return []string{"xdg-open"}
}
