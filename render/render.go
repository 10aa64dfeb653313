// Package render draws an arbor presentation tree with Ebitengine.
//
// Drawing happens in two passes: the tree is flattened into a list of
// commands in paint order, then the commands are submitted to the target
// image. Only rectangle nodes produce commands.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor/scene"
)

// Command is a single solid rectangle in target coordinates.
type Command struct {
	X, Y          int
	Width, Height int
	Color         color.RGBA
}

// Commands appends the draw commands of t in paint order (bottom first) to
// buf and returns it. Disabled subtrees and empty rectangles are skipped.
func Commands(t *scene.Tree, buf []Command) []Command {
	t.Walk(func(n *scene.Node, absX, absY int) {
		if n.Kind() != scene.KindRect || n.Width <= 0 || n.Height <= 0 {
			return
		}
		buf = append(buf, Command{
			X: absX, Y: absY,
			Width: n.Width, Height: n.Height,
			Color: n.Color,
		})
	})
	return buf
}

// whitePixel is a 1x1 white image scaled to draw solid rectangles. Created
// on first use so that the package can be imported without a graphics
// context.
var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Stats reports what the last Draw call submitted.
type Stats struct {
	Commands int
}

// Renderer draws presentation trees. The zero value is ready to use and
// clears to transparent black.
type Renderer struct {
	// Background fills the target before drawing.
	Background color.RGBA

	commands []Command
	op       ebiten.DrawImageOptions
	stats    Stats
}

// Draw clears dst and paints t onto it back to front.
func (r *Renderer) Draw(dst *ebiten.Image, t *scene.Tree) {
	dst.Fill(r.Background)

	r.commands = Commands(t, r.commands[:0])
	img := pixel()
	for i := range r.commands {
		cmd := &r.commands[i]
		r.op.GeoM.Reset()
		r.op.GeoM.Scale(float64(cmd.Width), float64(cmd.Height))
		r.op.GeoM.Translate(float64(cmd.X), float64(cmd.Y))
		r.op.ColorScale.Reset()
		r.op.ColorScale.ScaleWithColor(cmd.Color)
		dst.DrawImage(img, &r.op)
	}
	r.stats = Stats{Commands: len(r.commands)}
}

// Stats returns the statistics of the last Draw call.
func (r *Renderer) Stats() Stats {
	return r.stats
}
