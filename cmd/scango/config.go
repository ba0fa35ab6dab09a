package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/scango/internal/config"
	"github.com/vmunix/scango/internal/history"
	"github.com/vmunix/scango/internal/viewer"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate a configuration file",
	Long:  "Validates scango.toml syntax, field values, and environment variable substitution without touching the scanner.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTestCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if configPath != "" {
		path = configPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	var fatal, warnings []string
	for _, msg := range cfg.Validate() {
		if strings.Contains(msg, "warning:") {
			warnings = append(warnings, msg)
		} else {
			fatal = append(fatal, msg)
		}
	}

	for _, w := range warnings {
		fmt.Printf("  warning: %s\n", strings.Replace(w, "warning: ", "", 1))
	}
	if len(fatal) > 0 {
		printConfigErrors(&config.ConfigError{Errors: fatal})
		return fmt.Errorf("configuration invalid")
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")

	scanner := cfg.Scanner.Command
	if cfg.Scanner.Device != "" {
		scanner += " --device-name " + cfg.Scanner.Device
	}
	fmt.Printf("  Scanner:  %s (%d dpi, %s)\n", scanner, cfg.Scanner.Resolution, cfg.Scanner.Mode)
	fmt.Printf("  Convert:  %s\n", cfg.Convert.Command)
	fmt.Printf("  Prompt:   %s\n", strings.Join(cfg.Prompt.Command, " "))

	viewerDesc := strings.Join(cfg.Viewer.Command, " ")
	if viewerDesc == "" {
		viewerDesc = strings.Join(viewer.DefaultCommand(), " ") + " (platform default)"
	}
	fmt.Printf("  Viewer:   %s\n", viewerDesc)

	if cfg.History.Enabled {
		fmt.Printf("  History:  %s\n", historyPathDesc(cfg))
	} else {
		fmt.Println("  History:  disabled")
	}
	fmt.Printf("  Log:      %s\n", cfg.Log.Level)
}

func historyPathDesc(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return history.DefaultPath() + " (default)"
}
