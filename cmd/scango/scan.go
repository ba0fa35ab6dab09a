package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/scango/internal/capture"
	"github.com/vmunix/scango/internal/history"
	"github.com/vmunix/scango/internal/intent"
	"github.com/vmunix/scango/internal/prompt"
	"github.com/vmunix/scango/internal/resolve"
	"github.com/vmunix/scango/internal/scan"
	"github.com/vmunix/scango/internal/viewer"
)

// scanResult is the --json shape of a finished run.
type scanResult struct {
	Path       string `json:"path"`
	SizeBytes  int64  `json:"size_bytes"`
	Renamed    bool   `json:"renamed"`
	DurationMS int64  `json:"duration_ms"`
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	if cfgPath != "" {
		log.Debug("config loaded", "path", cfgPath)
	}

	in := intent.Classify(args)
	if in.MultiPage && in.PageCount != 1 {
		// Page count tokens are recognized but the capture loop behind
		// them does not exist yet.
		return errors.New("multi-page capture is not implemented")
	}

	env, err := resolve.DefaultEnv()
	if err != nil {
		return err
	}

	dest, err := resolve.Resolve(in, env)
	if err != nil {
		return err
	}
	if dest.BaseName == "" {
		base, err := resolve.DefaultBaseName(dest.Directory, dest.Extension, time.Now())
		if err != nil {
			return err
		}
		dest.BaseName = base
	}
	log.Debug("destination resolved",
		"directory", dest.Directory,
		"name", dest.BaseName,
		"format", dest.Extension.String(),
		"prompt", dest.Prompt,
	)

	var capturer capture.Capturer
	if in.Simulate {
		capturer = capture.NewSimulator(log)
	} else {
		capturer = capture.NewScanner(cfg.Scanner, cfg.Convert, log)
	}
	namer := prompt.NewDialog(cfg.Prompt.Command, log)
	opener := viewer.NewLauncher(cfg.Viewer.Command, log)

	var recorder scan.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(historyPath(cfg))
		if err != nil {
			log.Warn("history unavailable", "error", err)
		} else {
			defer func() { _ = store.Close() }()
			recorder = store
		}
	}

	// A run is never cancelled from outside: both concurrent operations
	// always proceed to the join.
	runner := scan.New(capturer, namer, opener, recorder, log)
	res, err := runner.Run(context.Background(), in, dest)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(scanResult{
			Path:       res.Path,
			SizeBytes:  res.Size,
			Renamed:    res.Renamed,
			DurationMS: res.Elapsed.Milliseconds(),
		})
		return nil
	}
	fmt.Println(res.Path)
	return nil
}
