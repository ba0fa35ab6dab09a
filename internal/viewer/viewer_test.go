package viewer

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLauncher_Open(t *testing.T) {
	// "touch" as the viewer: the launched process creates the path it was
	// handed, proving both launch and argument passing.
	marker := filepath.Join(t.TempDir(), "opened")

	l := NewLauncher([]string{"touch"}, testLogger())
	require.NoError(t, l.Open(marker))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "viewer process never ran")
}

func TestLauncher_MissingBinary(t *testing.T) {
	l := NewLauncher([]string{"/nonexistent/viewer"}, testLogger())

	err := l.Open("/tmp/whatever.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch viewer")
}

func TestDefaultCommand(t *testing.T) {
	argv := DefaultCommand()
	require.NotEmpty(t, argv)
	assert.Contains(t, []string{"xdg-open", "open"}, argv[0])
}
