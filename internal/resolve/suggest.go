package resolve

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suggestScore is the minimum Jaro-Winkler similarity before a sibling is
// offered as a correction.
const suggestScore = 0.8

// suggestDir looks for an existing sibling of the missing directory whose
// name closely resembles the requested one.
func suggestDir(missing string) string {
	parent := filepath.Dir(missing)
	entries, err := os.ReadDir(parent)
	if err != nil {
		return ""
	}

	want := foldName(filepath.Base(missing))
	var best string
	var bestScore float64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		score := float64(edlib.JaroWinklerSimilarity(want, foldName(e.Name())))
		if score > bestScore {
			best = e.Name()
			bestScore = score
		}
	}
	if bestScore < suggestScore {
		return ""
	}
	return filepath.Join(parent, best)
}

// foldName lowercases and strips accents so "Fotós" still matches "fotos".
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
