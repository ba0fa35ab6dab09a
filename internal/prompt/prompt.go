// Package prompt obtains a user-confirmed file name through an external
// dialog command while the capture runs. The confirmed name is normalized,
// given the destination extension and validated before anyone acts on it.
package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/scango/internal/pathspec"
	"github.com/vmunix/scango/internal/resolve"
)

// Namer obtains the final target path for a capture.
type Namer interface {
	Name(ctx context.Context, dest resolve.Destination) (string, error)
}

// Dialog asks through an external command, zenity-style: the argv is run
// with {suggestion} and {path} placeholders expanded, and its stdout is the
// chosen name.
type Dialog struct {
	argv []string
	log  *slog.Logger
}

// NewDialog creates a prompt backed by the given command line.
func NewDialog(argv []string, log *slog.Logger) *Dialog {
	return &Dialog{argv: argv, log: log.With("component", "prompt")}
}

var _ Namer = (*Dialog)(nil)

func (d *Dialog) Name(ctx context.Context, dest resolve.Destination) (string, error) {
	if len(d.argv) == 0 {
		return "", errors.New("prompt command not configured")
	}

	args := make([]string, 0, len(d.argv)-1)
	for _, a := range d.argv[1:] {
		a = strings.ReplaceAll(a, "{suggestion}", dest.BaseName)
		a = strings.ReplaceAll(a, "{path}", dest.FullPath())
		args = append(args, a)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.argv[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%s: %w", d.argv[0], err)
		}
		return "", fmt.Errorf("%s: %w: %s", d.argv[0], err, msg)
	}

	raw := strings.TrimRight(stdout.String(), "\n")
	final, err := Finalize(raw, dest)
	if err != nil {
		return "", err
	}
	d.log.Debug("prompt confirmed", "name", final)
	return final, nil
}

// Finalize turns raw prompt input into the final target path. Input is NFC
// normalized, the destination extension is appended unless already present,
// and the result must satisfy the path grammar. Relative names resolve
// against the destination directory; empty input keeps the suggestion.
func Finalize(raw string, dest resolve.Destination) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if name == "" {
		return dest.FullPath(), nil
	}

	ext := "." + dest.Extension.String()
	if strings.EqualFold(filepath.Ext(name), ext) {
		name = name[:len(name)-len(ext)]
	}

	if !pathspec.ValidPath(name) {
		return "", &resolve.InvalidFilenameError{Name: name}
	}

	full := name + ext
	if !filepath.IsAbs(full) {
		full = filepath.Join(dest.Directory, full)
	}
	return full, nil
}
