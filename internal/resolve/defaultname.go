package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmunix/scango/internal/intent"
)

const maxDefaultIndex = 99

// DefaultBaseName returns the first date-stamped base name with no existing
// file in dir, scanning "<date> scan 01" through "<date> scan 99". The
// ceiling bounds the directory walk on pathological days.
func DefaultBaseName(dir string, ext intent.Format, now time.Time) (string, error) {
	date := now.Format("2006-01-02")
	for i := 1; i <= maxDefaultIndex; i++ {
		base := fmt.Sprintf("%s scan %02d", date, i)
		_, err := os.Stat(filepath.Join(dir, base+"."+ext.String()))
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
	}
	return "", &NameSpaceExhaustedError{Dir: dir, Date: date}
}
