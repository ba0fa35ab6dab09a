package resolve

import (
	"fmt"

	"github.com/vmunix/scango/internal/intent"
)

// InvalidFilenameError reports a name that fails the filename grammar.
type InvalidFilenameError struct {
	Name string
}

func (e *InvalidFilenameError) Error() string {
	return fmt.Sprintf("invalid filename %q: names may not contain <>:\"'`/\\|?* or doubled separators", e.Name)
}

// MissingDirectoryError reports a target directory that does not exist.
type MissingDirectoryError struct {
	Dir        string
	Suggestion string // closest existing sibling, empty when none is plausible
}

func (e *MissingDirectoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("directory %q does not exist (did you mean %q?)", e.Dir, e.Suggestion)
	}
	return fmt.Sprintf("directory %q does not exist", e.Dir)
}

// FormatConflictError reports a filename extension that contradicts the
// format requested on the command line.
type FormatConflictError struct {
	Extension string
	Format    intent.Format
}

func (e *FormatConflictError) Error() string {
	return fmt.Sprintf("extension %q conflicts with requested %s output", e.Extension, e.Format)
}

// NameSpaceExhaustedError reports that every default name slot for the
// current date is already taken.
type NameSpaceExhaustedError struct {
	Dir  string
	Date string
}

func (e *NameSpaceExhaustedError) Error() string {
	return fmt.Sprintf("no free default name in %s: all %d slots for %s are taken", e.Dir, maxDefaultIndex, e.Date)
}
