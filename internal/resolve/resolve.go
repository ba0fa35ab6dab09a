// Package resolve turns the residual command-line expression into a concrete
// capture destination: a directory that exists, a base name (possibly still
// unassigned) and an output format.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/scango/internal/intent"
	"github.com/vmunix/scango/internal/pathspec"
)

// Destination is the fully resolved capture target.
type Destination struct {
	Directory string        // always an existing absolute directory
	BaseName  string        // empty until a default name is assigned
	Extension intent.Format // lower-cased on output
	Prompt    bool          // no explicit name was given; offer a rename
}

// FullPath joins the destination into the final target path. Only meaningful
// once BaseName is set.
func (d Destination) FullPath() string {
	return filepath.Join(d.Directory, d.BaseName+"."+d.Extension.String())
}

// Resolve decides where a capture should land. The empty expression selects
// the working directory, a string naming an existing directory is honored
// verbatim, and anything else is split into directory and filename at the
// last separator. Directories equal to the home directory or the binary's
// own directory are redirected to ~/Pictures/scan, except when named
// explicitly as a whole-expression directory.
func Resolve(in intent.Intent, env Env) (Destination, error) {
	expr := in.PathExpression()

	if expr == "" {
		dir, err := safeDirectory(env.WorkDir, env)
		if err != nil {
			return Destination{}, err
		}
		return Destination{Directory: dir, Extension: in.Format, Prompt: true}, nil
	}

	abs := absolutize(expr, env)
	if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
		// An explicit directory request wins over the substitution
		// heuristic, even for the home directory itself.
		return Destination{Directory: abs, Extension: in.Format, Prompt: true}, nil
	}

	dirExpr, name := filepath.Split(expr)
	dir := env.WorkDir
	if dirExpr != "" {
		dir = absolutize(filepath.Clean(dirExpr), env)
	}

	ext := in.Format
	base := name
	if i := strings.LastIndexByte(name, '.'); i > 0 && i < len(name)-1 {
		if f, ok := intent.KnownExtension(strings.ToLower(name[i+1:])); ok {
			if in.FormatSet && f != in.Format {
				return Destination{}, &FormatConflictError{Extension: name[i+1:], Format: in.Format}
			}
			ext = f
			base = name[:i]
		}
	}

	if !pathspec.ValidFilename(base) {
		return Destination{}, &InvalidFilenameError{Name: base}
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return Destination{}, &MissingDirectoryError{Dir: dir, Suggestion: suggestDir(dir)}
	}

	dir, err := safeDirectory(dir, env)
	if err != nil {
		return Destination{}, err
	}
	return Destination{Directory: dir, BaseName: base, Extension: ext}, nil
}

// absolutize resolves p against the injected working directory, never the
// ambient one.
func absolutize(p string, env Env) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(env.WorkDir, p)
}

// safeDirectory redirects captures away from the home directory and the
// binary's own directory, the two places a desktop "run command" prompt
// starts in. The substitute is created on first use.
func safeDirectory(dir string, env Env) (string, error) {
	if !sameDir(dir, env.Home) && !sameDir(dir, env.ExeDir) {
		return dir, nil
	}
	sub := filepath.Join(env.Home, "Pictures", "scan")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", sub, err)
	}
	return sub, nil
}

func sameDir(a, b string) bool {
	return b != "" && filepath.Clean(a) == filepath.Clean(b)
}
