package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshots captures labeled frames as PNG files. Labels are queued from
// Update and written at the end of the next Draw.
type Screenshots struct {
	// Dir receives the files. Created on first write.
	Dir string

	queue []string
	now   func() time.Time
}

// Queue requests a capture of the next drawn frame.
func (s *Screenshots) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued captures.
func (s *Screenshots) Pending() int {
	return len(s.queue)
}

// Flush writes one file per queued label from screen and returns the paths
// written. The queue is emptied even when writing fails.
func (s *Screenshots) Flush(screen *ebiten.Image) ([]string, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	labels := s.queue
	s.queue = nil

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", s.Dir, err)
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := straightAlpha(pixels, bounds.Dx(), bounds.Dy())

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	stamp := now().Format("20060102_150405")

	paths := make([]string, 0, len(labels))
	for i, label := range labels {
		name := fmt.Sprintf("%s_%02d_%s.png", stamp, i, sanitizeLabel(label))
		path := filepath.Join(s.Dir, name)
		if err := writePNG(path, img); err != nil {
			return paths, fmt.Errorf("screenshot: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// straightAlpha converts premultiplied RGBA pixels to an NRGBA image.
func straightAlpha(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, dashes and dots. Anything else
// becomes an underscore; an empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
