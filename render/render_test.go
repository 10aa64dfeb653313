package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/arbor/scene"
)

func TestCommandsPaintOrder(t *testing.T) {
	root := scene.NewRoot()
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	back := scene.NewRect(root, 10, 10, red)
	back.SetPosition(1, 1)

	group := scene.NewTree(root)
	group.Node().SetPosition(100, 0)
	front := scene.NewRect(group, 5, 6, blue)
	front.SetPosition(2, 3)

	scene.NewRect(root, 0, 10, red) // empty, skipped

	cmds := Commands(root, nil)
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{X: 1, Y: 1, Width: 10, Height: 10, Color: red}, cmds[0])
	assert.Equal(t, Command{X: 102, Y: 3, Width: 5, Height: 6, Color: blue}, cmds[1])
}

func TestCommandsReuseBuffer(t *testing.T) {
	root := scene.NewRoot()
	scene.NewRect(root, 1, 1, color.RGBA{A: 0xff})

	buf := make([]Command, 0, 8)
	out := Commands(root, buf)
	assert.Len(t, out, 1)
	assert.Equal(t, 8, cap(out))
}

func TestCommandsSkipDisabled(t *testing.T) {
	root := scene.NewRoot()
	n := scene.NewRect(root, 4, 4, color.RGBA{A: 0xff})
	n.SetEnabled(false)
	assert.Empty(t, Commands(root, nil))
}

func TestFormatOverlay(t *testing.T) {
	text := FormatOverlay(59.94, 60, []string{"pointer: root > desk", "keyboard: -"})
	assert.Equal(t, "FPS: 59.9\nTPS: 60.0\npointer: root > desk\nkeyboard: -", text)

	w, h := overlaySize(text)
	assert.Equal(t, len("pointer: root > desk")*6+8, w)
	assert.Equal(t, 4*16+4, h)
}

func TestFormatOverlayNoLines(t *testing.T) {
	text := FormatOverlay(30, 30, nil)
	assert.Equal(t, 2, strings.Count(text, "\n")+1)
}
