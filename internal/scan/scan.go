// Package scan coordinates one capture run. The capture operation and the
// naming operation start together and are joined before the artifact is
// renamed, verified and handed to the viewer.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/scango/internal/capture"
	"github.com/vmunix/scango/internal/history"
	"github.com/vmunix/scango/internal/intent"
	"github.com/vmunix/scango/internal/prompt"
	"github.com/vmunix/scango/internal/resolve"
	"github.com/vmunix/scango/internal/viewer"
)

// MinArtifactSize is the sanity floor for a finished capture. A smaller
// file means the device returned a blank or truncated frame without
// reporting an error.
const MinArtifactSize = 10 * 1024

// Recorder persists finished captures. Implemented by history.Store.
type Recorder interface {
	Add(e *history.Entry) error
}

var _ Recorder = (*history.Store)(nil)

// Runner executes one scan from resolved destination to verified artifact.
type Runner struct {
	capturer capture.Capturer
	namer    prompt.Namer
	opener   viewer.Opener
	recorder Recorder // nil disables history
	log      *slog.Logger
}

// New creates a Runner from its collaborators.
func New(capturer capture.Capturer, namer prompt.Namer, opener viewer.Opener, recorder Recorder, log *slog.Logger) *Runner {
	return &Runner{
		capturer: capturer,
		namer:    namer,
		opener:   opener,
		recorder: recorder,
		log:      log.With("component", "scan"),
	}
}

// Result describes a finished run.
type Result struct {
	Path    string
	Size    int64
	Renamed bool
	Elapsed time.Duration
}

// Run captures into dest and settles the final name. The two operations
// run concurrently and both must finish before anything touches the
// artifact; neither cancels the other on failure, the join simply reports
// the first error once both are done.
func (r *Runner) Run(ctx context.Context, in intent.Intent, dest resolve.Destination) (*Result, error) {
	start := time.Now()
	target := dest.FullPath()

	var finalPath string
	var g errgroup.Group

	g.Go(func() error {
		return r.capturer.Capture(ctx, capture.Request{
			Directory: dest.Directory,
			Target:    target,
			Format:    dest.Extension,
		})
	})

	g.Go(func() error {
		if !dest.Prompt {
			finalPath = target
			return nil
		}
		name, err := r.namer.Name(ctx, dest)
		if err != nil {
			return fmt.Errorf("naming: %w", err)
		}
		finalPath = name
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	renamed := false
	if finalPath != target {
		r.log.Info("renaming", "from", target, "to", finalPath)
		if err := os.Rename(target, finalPath); err != nil {
			return nil, fmt.Errorf("rename artifact: %w", err)
		}
		renamed = true
	}

	size, err := verifyArtifact(finalPath)
	if err != nil {
		return nil, err
	}
	r.log.Info("capture finished", "path", finalPath, "bytes", size)

	if in.OpenAfter {
		if err := r.opener.Open(finalPath); err != nil {
			r.log.Warn("viewer launch failed", "error", err)
		}
	}

	res := &Result{Path: finalPath, Size: size, Renamed: renamed, Elapsed: time.Since(start)}
	r.record(in, dest, res)
	return res, nil
}

// verifyArtifact confirms the artifact exists and clears the size floor.
func verifyArtifact(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("capture produced no file at %s", path)
		}
		return 0, fmt.Errorf("verify artifact: %w", err)
	}
	if fi.Size() < MinArtifactSize {
		return 0, fmt.Errorf("artifact %s is %d bytes, below the %d byte minimum", path, fi.Size(), MinArtifactSize)
	}
	return fi.Size(), nil
}

// record writes the run to history. Failures are logged, never fatal: the
// artifact on disk is the source of truth.
func (r *Runner) record(in intent.Intent, dest resolve.Destination, res *Result) {
	if r.recorder == nil {
		return
	}
	entry := &history.Entry{
		Path:      res.Path,
		Format:    dest.Extension.String(),
		SizeBytes: res.Size,
		Pages:     in.PageCount,
		Simulated: in.Simulate,
		Renamed:   res.Renamed,
		Duration:  res.Elapsed,
	}
	if err := r.recorder.Add(entry); err != nil {
		r.log.Warn("history record failed", "error", err)
	}
}
