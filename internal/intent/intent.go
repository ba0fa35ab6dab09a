// Package intent builds the immutable invocation intent from raw CLI arguments.
package intent

// Format is the output format of a scan.
type Format int

const (
	// FormatPDF is the default page-description output; it requires a
	// conversion step after capture.
	FormatPDF Format = iota
	FormatJPG
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatJPG:
		return "jpg"
	case FormatPNG:
		return "png"
	default:
		return "pdf"
	}
}

// KnownExtension reports whether ext (lower-case, no dot) names one of the
// three supported output formats, and which one.
func KnownExtension(ext string) (Format, bool) {
	switch ext {
	case "pdf":
		return FormatPDF, true
	case "jpg":
		return FormatJPG, true
	case "png":
		return FormatPNG, true
	}
	return FormatPDF, false
}

// Intent is the structured reading of a scango invocation. It is built once
// by Classify and never mutated afterwards.
type Intent struct {
	// OpenAfter requests that the finished scan be handed to the system
	// viewer. Default true; the "close" token clears it.
	OpenAfter bool

	// Simulate substitutes a generated fixture for real scanner hardware.
	Simulate bool

	// PageCount is the number of pages to capture. 0 means unbounded
	// ("all"); the default is a single page.
	PageCount int

	// MultiPage is set whenever a page count token ("all" or a number)
	// was given.
	MultiPage bool

	// Format is the requested output format. FormatSet distinguishes an
	// explicit "jpg"/"png" token from the PDF default.
	Format    Format
	FormatSet bool

	// Residual holds every argument from the first non-magic token on.
	// Joined with single spaces it forms the path expression.
	Residual []string
}
