// Package capture produces the scan artifact, either by driving the
// external scanner and converter commands or by generating a fixture file
// in simulated runs.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/scango/internal/config"
	"github.com/vmunix/scango/internal/intent"
)

// Request describes one capture.
type Request struct {
	Directory string // destination directory, also holds the intermediate file
	Target    string // full target path
	Format    intent.Format
}

// Capturer produces the file named by Request.Target.
type Capturer interface {
	Capture(ctx context.Context, req Request) error
}

// IntermediatePath returns the hidden intermediate file used for a capture
// into dir. The name is fixed per extension family, so concurrent runs in
// different directories cannot collide.
func IntermediatePath(dir string, format intent.Format) string {
	return filepath.Join(dir, ".scango."+format.String()+".pnm")
}

// Scanner drives the configured scanner and converter commands. The scanner
// writes raw PNM to the intermediate file; the converter turns it into the
// target format.
type Scanner struct {
	scanner config.ScannerConfig
	convert config.ConvertConfig
	log     *slog.Logger
}

// NewScanner creates a hardware-backed capturer.
func NewScanner(scanner config.ScannerConfig, convert config.ConvertConfig, log *slog.Logger) *Scanner {
	return &Scanner{
		scanner: scanner,
		convert: convert,
		log:     log.With("component", "capture"),
	}
}

var _ Capturer = (*Scanner)(nil)

// Capture runs the scan and conversion, deleting the intermediate file on
// the way out regardless of outcome.
func (s *Scanner) Capture(ctx context.Context, req Request) error {
	intermediate := IntermediatePath(req.Directory, req.Format)
	defer func() { _ = os.Remove(intermediate) }()

	if err := s.runScan(ctx, intermediate); err != nil {
		return err
	}
	return s.runConvert(ctx, intermediate, req.Target)
}

func (s *Scanner) runScan(ctx context.Context, intermediate string) error {
	out, err := os.Create(intermediate)
	if err != nil {
		return fmt.Errorf("create intermediate file: %w", err)
	}
	defer func() { _ = out.Close() }()

	args := buildScanArgs(s.scanner)
	s.log.Debug("running scanner", "command", s.scanner.Command, "args", args)

	cmd := exec.CommandContext(ctx, s.scanner.Command, args...)
	cmd.Stdout = out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return commandError(s.scanner.Command, err, &stderr)
	}
	s.log.Info("scan complete", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *Scanner) runConvert(ctx context.Context, intermediate, target string) error {
	s.log.Debug("converting", "from", intermediate, "to", target)

	cmd := exec.CommandContext(ctx, s.convert.Command, intermediate, target)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return commandError(s.convert.Command, err, &stderr)
	}
	return nil
}

// commandError wraps an exec failure with the last stderr line, which is
// where scanimage and convert put the actual reason.
func commandError(name string, err error, stderr *bytes.Buffer) error {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	return fmt.Errorf("%s: %w: %s", name, err, msg)
}
