package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/vmunix/scango/internal/intent"
)

// Simulator writes a generated fixture instead of driving hardware. The
// fixture is a valid file of the requested format, large enough to pass the
// artifact size floor.
type Simulator struct {
	log *slog.Logger
}

// NewSimulator creates a fixture-producing capturer.
func NewSimulator(log *slog.Logger) *Simulator {
	return &Simulator{log: log.With("component", "capture")}
}

var _ Capturer = (*Simulator)(nil)

func (s *Simulator) Capture(ctx context.Context, req Request) error {
	s.log.Info("simulated capture", "target", req.Target)

	f, err := os.Create(req.Target)
	if err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}

	var werr error
	switch req.Format {
	case intent.FormatJPG:
		werr = jpeg.Encode(f, fixtureImage(), &jpeg.Options{Quality: 90})
	case intent.FormatPNG:
		werr = png.Encode(f, fixtureImage())
	default:
		werr = writeFixturePDF(f)
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write fixture: %w", werr)
	}
	return nil
}

// fixtureImage fills a frame with deterministic noise. Noise does not
// compress, so the encoded file always clears the size floor.
func fixtureImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	rng := rand.New(rand.NewSource(20758))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = byte(rng.Intn(256))
		img.Pix[i+1] = byte(rng.Intn(256))
		img.Pix[i+2] = byte(rng.Intn(256))
		img.Pix[i+3] = 0xff
	}
	return img
}

// writeFixturePDF emits a minimal single-page PDF: catalog, page tree, one
// page and a padded content stream, with a correct xref table.
func writeFixturePDF(w io.Writer) error {
	content := "0.92 g\n36 36 523 770 re f\n" + strings.Repeat("% simulated page content\n", 480)

	var buf bytes.Buffer
	var offsets [4]int
	addObj := func(n int, body string) {
		offsets[n-1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	buf.WriteString("%PDF-1.4\n")
	addObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	addObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	addObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents 4 0 R >>")
	addObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

	xref := buf.Len()
	buf.WriteString("xref\n0 5\n0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 5 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	_, err := w.Write(buf.Bytes())
	return err
}
