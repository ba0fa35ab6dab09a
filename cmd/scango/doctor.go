package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/scango/internal/config"
	"github.com/vmunix/scango/internal/history"
	"github.com/vmunix/scango/internal/viewer"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the external commands scango relies on",
	Long:  "Verifies that the scanner, converter, prompt dialog and viewer commands are reachable, and that the history database can be opened.",
	Args:  cobra.NoArgs,
	RunE:  runDoctorCmd,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// checkResult is one line of doctor output.
type checkResult struct {
	Name    string `json:"name"`
	Command string `json:"command,omitempty"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
}

func runDoctorCmd(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = "built-in defaults"
	}

	checks := []checkResult{
		checkCommand("scanner", cfg.Scanner.Command, "--version"),
		checkCommand("convert", cfg.Convert.Command, "-version"),
		checkPrompt(cfg.Prompt.Command),
		checkViewer(cfg.Viewer.Command),
		checkHistory(cfg),
	}

	if jsonOutput {
		printJSON(checks)
	} else {
		fmt.Printf("Config: %s\n\n", cfgPath)
		for _, c := range checks {
			printCheck(c)
		}
	}

	failed := 0
	for _, c := range checks {
		if !c.OK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}

	if !jsonOutput {
		fmt.Println("\nAll checks passed")
	}
	return nil
}

func printCheck(c checkResult) {
	status := "ok"
	if !c.OK {
		status = "FAIL"
	}
	line := fmt.Sprintf("  %-8s %-5s %s", c.Name, status, c.Command)
	if c.Detail != "" {
		line += "  (" + c.Detail + ")"
	}
	fmt.Println(strings.TrimRight(line, " "))
}

// checkCommand verifies a binary is on PATH and grabs its version banner.
func checkCommand(name, command, versionFlag string) checkResult {
	r := checkResult{Name: name, Command: command}
	if command == "" {
		r.Detail = "not configured"
		return r
	}
	if _, err := exec.LookPath(command); err != nil {
		r.Detail = "not found on PATH"
		return r
	}
	r.OK = true
	r.Detail = versionLine(command, versionFlag)
	return r
}

func checkPrompt(argv []string) checkResult {
	if len(argv) == 0 {
		return checkResult{Name: "prompt", Detail: "not configured"}
	}
	return checkCommand("prompt", argv[0], "--version")
}

func checkViewer(argv []string) checkResult {
	if len(argv) == 0 {
		argv = viewer.DefaultCommand()
	}
	r := checkResult{Name: "viewer", Command: argv[0]}
	if _, err := exec.LookPath(argv[0]); err != nil {
		r.Detail = "not found on PATH"
		return r
	}
	r.OK = true
	return r
}

// checkHistory opens the ledger the same way a scan would.
func checkHistory(cfg *config.Config) checkResult {
	r := checkResult{Name: "history"}
	if !cfg.History.Enabled {
		r.OK = true
		r.Detail = "disabled"
		return r
	}
	path := historyPath(cfg)
	r.Command = path
	store, err := history.Open(path)
	if err != nil {
		r.Detail = err.Error()
		return r
	}
	_ = store.Close()
	r.OK = true
	return r
}

// versionLine returns the first line of the command's version output,
// best-effort.
func versionLine(command, flag string) string {
	out, err := exec.Command(command, flag).Output()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i > 0 {
		line = line[:i]
	}
	return line
}
