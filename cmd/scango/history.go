package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/scango/internal/config"
	"github.com/vmunix/scango/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scans",
	Long:  "Lists the most recent captures recorded in the scan ledger, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 = all)")
}

// historyEntry is the --json shape of one ledger row.
type historyEntry struct {
	ID         int64  `json:"id"`
	Path       string `json:"path"`
	Format     string `json:"format"`
	SizeBytes  int64  `json:"size_bytes"`
	Pages      int    `json:"pages"`
	Simulated  bool   `json:"simulated"`
	Renamed    bool   `json:"renamed"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return errors.New("history is disabled in the configuration")
	}

	store, err := history.Open(historyPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := make([]historyEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, historyEntry{
				ID:         e.ID,
				Path:       e.Path,
				Format:     e.Format,
				SizeBytes:  e.SizeBytes,
				Pages:      e.Pages,
				Simulated:  e.Simulated,
				Renamed:    e.Renamed,
				DurationMS: e.Duration.Milliseconds(),
				CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		printJSON(out)
		return nil
	}

	printHistoryHuman(entries)
	return nil
}

// historyPath returns the configured ledger location, falling back to the
// XDG state directory.
func historyPath(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return history.DefaultPath()
}

func printHistoryHuman(entries []*history.Entry) {
	if len(entries) == 0 {
		fmt.Println("No scans recorded")
		return
	}

	fmt.Printf("Recent scans (%d):\n\n", len(entries))
	fmt.Printf("  # │ %-16s │ %-44s │ %8s │ %s\n", "WHEN", "PATH", "SIZE", "FLAGS")
	fmt.Println("────┼──────────────────┼──────────────────────────────────────────────┼──────────┼───────")

	for i, e := range entries {
		path := e.Path
		if len(path) > 44 {
			path = "..." + path[len(path)-41:]
		}
		fmt.Printf(" %2d │ %s │ %-44s │ %8s │ %s\n",
			i+1, e.CreatedAt.Format("2006-01-02 15:04"), path, formatSize(e.SizeBytes), entryFlags(e))
	}
}

func entryFlags(e *history.Entry) string {
	var flags []string
	if e.Simulated {
		flags = append(flags, "fake")
	}
	if e.Renamed {
		flags = append(flags, "renamed")
	}
	return strings.Join(flags, ",")
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
