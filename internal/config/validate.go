package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validScanModes = map[string]bool{
	"Color": true, "Gray": true, "Lineart": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Scanner.Command == "" {
		errs = append(errs, "scanner.command: required")
	}
	if c.Scanner.Resolution != 0 && (c.Scanner.Resolution < 50 || c.Scanner.Resolution > 9600) {
		errs = append(errs, fmt.Sprintf("scanner.resolution: must be between 50 and 9600 dpi, got %d", c.Scanner.Resolution))
	}
	if !validScanModes[c.Scanner.Mode] {
		errs = append(errs, fmt.Sprintf("scanner.mode: must be one of Color, Gray, Lineart; got %q", c.Scanner.Mode))
	}

	if c.Convert.Command == "" {
		errs = append(errs, "convert.command: required")
	}

	if len(c.Prompt.Command) == 0 {
		errs = append(errs, "prompt.command: required")
	} else if !hasPlaceholder(c.Prompt.Command, "{suggestion}") {
		// Non-fatal: the dialog still runs, it just cannot show the proposed name.
		errs = append(errs, "prompt.command: warning: no {suggestion} placeholder in command")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}

func hasPlaceholder(argv []string, placeholder string) bool {
	for _, a := range argv {
		if strings.Contains(a, placeholder) {
			return true
		}
	}
	return false
}
