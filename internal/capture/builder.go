package capture

import (
	"strconv"

	"github.com/vmunix/scango/internal/config"
)

// buildScanArgs assembles the scanner argument list from configuration.
// Configured extras come last so they can override the generated flags.
func buildScanArgs(cfg config.ScannerConfig) []string {
	var args []string
	if cfg.Device != "" {
		args = append(args, "--device-name", cfg.Device)
	}
	if cfg.Resolution > 0 {
		args = append(args, "--resolution", strconv.Itoa(cfg.Resolution))
	}
	if cfg.Mode != "" {
		args = append(args, "--mode", cfg.Mode)
	}
	args = append(args, "--format=pnm")
	args = append(args, cfg.Args...)
	return args
}
