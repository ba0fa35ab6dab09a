package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// pageCountPattern matches an explicit page count: one to three digits.
var pageCountPattern = regexp.MustCompile(`^\d{1,3}$`)

// Classify consumes recognized option tokens from the front of args and
// returns the resulting Intent. Matching is case-insensitive and strictly
// prefix-based: the first token that is not a magic word stops
// classification, and everything from it on is path material even if a
// later argument happens to spell a magic word.
func Classify(args []string) Intent {
	in := Intent{OpenAfter: true, PageCount: 1}

	rest := args
	for len(rest) > 0 && in.consume(rest[0]) {
		rest = rest[1:]
	}
	in.Residual = append([]string(nil), rest...)
	return in
}

// PathExpression joins the residual arguments with single spaces. Unquoted
// paths containing spaces arrive as separate arguments; joining them back
// is a deliberate leniency.
func (in Intent) PathExpression() string {
	return strings.Join(in.Residual, " ")
}

// consume applies one leading token to the intent. It reports false for the
// first non-magic token, which halts classification.
func (in *Intent) consume(tok string) bool {
	switch strings.ToLower(tok) {
	case "close":
		in.OpenAfter = false
	case "fake":
		in.Simulate = true
	case "all":
		in.PageCount = 0
		in.MultiPage = true
	case "jpg":
		in.Format = FormatJPG
		in.FormatSet = true
	case "png":
		in.Format = FormatPNG
		in.FormatSet = true
	default:
		if !pageCountPattern.MatchString(tok) {
			return false
		}
		n, _ := strconv.Atoi(tok)
		in.PageCount = n
		in.MultiPage = true
	}
	return true
}
