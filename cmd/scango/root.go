package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/scango/internal/config"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "scango [token]... [path expression]",
	Short: "One-shot document scanning with sensible names",
	Long: `scango - one-shot document scanning with sensible names

Captures a page from the default scanner and drops it where you point.
Leading magic tokens adjust the run; everything after them is the
destination, spaces and all.

Tokens:
  close    do not open the finished scan in a viewer
  fake     substitute a generated test page for the scanner
  jpg/png  select the output format (default: pdf)

Examples:
  scango                          # <today> scan 01.pdf here, then ask for a name
  scango receipts/water bill      # receipts/water bill.pdf
  scango close jpg ~/inbox        # a jpg into ~/inbox, viewer suppressed
  scango fake                     # test page, no scanner needed`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runScanCmd,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("scango {{.Version}}\n")
}

// loadConfig honors an explicit --config path, otherwise runs discovery.
// Absence of any config file is not an error: the built-in defaults apply.
func loadConfig() (*config.Config, string, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		return cfg, configPath, err
	}
	return config.LoadDiscovered()
}

// newLogger builds the process logger on stderr, keeping stdout free for
// command output.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
