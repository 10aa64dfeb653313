package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay is a text panel drawn on top of the scene, refreshed every ~0.5
// seconds. It shows FPS and TPS followed by caller-provided status lines.
type Overlay struct {
	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// Update refreshes the overlay text when at least half a second has passed
// since the last refresh.
func (o *Overlay) Update(dt float64, lines ...string) {
	o.lastUpdate += dt
	if o.img != nil && o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0
	o.text = FormatOverlay(ebiten.ActualFPS(), ebiten.ActualTPS(), lines)

	width, height := overlaySize(o.text)
	if o.img == nil || o.img.Bounds().Dx() != width || o.img.Bounds().Dy() != height {
		if o.img != nil {
			o.img.Deallocate()
		}
		o.img = ebiten.NewImage(width, height)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

// Draw paints the overlay at the top-left corner of dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	if o.img == nil {
		return
	}
	dst.DrawImage(o.img, nil)
}

// FormatOverlay builds the overlay text.
func FormatOverlay(fps, tps float64, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f", fps, tps)
	for _, l := range lines {
		b.WriteByte('\n')
		b.WriteString(l)
	}
	return b.String()
}

// overlaySize returns the image size that fits text printed with the
// 6x16 debug font.
func overlaySize(text string) (int, int) {
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	return width*6 + 8, len(lines)*16 + 4
}
