// Package pathspec validates candidate file names and paths before they are
// handed to the filesystem.
//
// The accepted character set is deliberately narrower than what the kernel
// allows. Names are built from runs of safe characters joined by single
// separators (one space or one dot), which rules out doubled delimiters,
// leading or trailing whitespace and shell-hostile punctuation outright.
package pathspec

import "regexp"

// A run is one or more characters excluding separators, path syntax and
// characters that are unsafe in shells or on common filesystems.
const runExpr = `[^<>:"'\x60/\\|?*.\s]+`

// A segment is what may appear between two path separators: runs joined by
// single spaces or dots.
const segmentExpr = runExpr + `(?:[ .]` + runExpr + `)*`

var (
	filenamePattern = regexp.MustCompile(`^` + segmentExpr + `$`)
	pathPattern     = regexp.MustCompile(`^(?:/|\./|\.\./)?` + segmentExpr + `(?:/` + segmentExpr + `)*$`)
)

// ValidFilename reports whether s is acceptable as a single file name.
func ValidFilename(s string) bool {
	return filenamePattern.MatchString(s)
}

// ValidPath reports whether s is acceptable as a path. Segments follow the
// filename grammar and are joined by single slashes, with at most one
// leading "/", "./" or "../".
func ValidPath(s string) bool {
	return pathPattern.MatchString(s)
}
