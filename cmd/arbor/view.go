package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor/input"
	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logger"
	"github.com/phanxgames/arbor/render"
)

var (
	viewOverlay     bool
	viewScreenshots string
)

var viewCmd = &cobra.Command{
	Use:   "view [script]",
	Short: "Open a script's tree in a window",
	Long: `View builds the tree declared in a script and renders it in a window.
Live mouse and keyboard input is routed through the tree; a script's steps,
if any, run first. Without a script the built-in demo is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewOverlay, "overlay", true, "show FPS and focus overlay")
	viewCmd.Flags().StringVar(&viewScreenshots, "screenshots", "", "capture a PNG into this directory at every script mark")
}

// viewer is the ebiten.Game driving a session.
type viewer struct {
	s        *session
	in       *input.Adapter
	renderer render.Renderer
	overlay  render.Overlay
	shots    render.Screenshots
	width    int
	height   int
	tps      int
	done     bool
}

func runView(cmd *cobra.Command, args []string) error {
	data, name, err := readScript(args, len(args) == 0)
	if err != nil {
		return err
	}
	cfg := config.Get()

	s, err := newSession(data, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer s.close()
	s.trace.onEntry = func(e traceEntry) {
		logger.Debug("notification", "kind", e.Kind.String(), "element", e.Element, "detail", e.Detail)
	}

	v := &viewer{
		s:      s,
		in:     input.New(s.root),
		width:  cfg.View.Width,
		height: cfg.View.Height,
		tps:    cfg.View.TPS,
	}
	v.renderer.Background = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff} // dark purple
	if viewScreenshots != "" && s.script != nil {
		v.shots.Dir = viewScreenshots
		s.script.OnMark = func(label string) {
			s.trace.add(traceMark, label, "")
			v.shots.Queue(label)
		}
	}

	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", cfg.View.Title, name))
	ebiten.SetTPS(v.tps)
	return ebiten.RunGame(v)
}

// Update runs the script while it lasts, then polls live input.
func (v *viewer) Update() error {
	if !v.done {
		done, err := v.s.step()
		if err != nil {
			return err
		}
		v.done = done
	} else {
		v.in.Update()
	}
	if viewOverlay {
		v.overlay.Update(1/float64(v.tps), v.s.focusChains()...)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.renderer.Draw(screen, v.s.tree)
	if viewOverlay {
		v.overlay.Draw(screen)
	}
	paths, err := v.shots.Flush(screen)
	if err != nil {
		logger.Error("screenshot failed", "err", err)
	}
	for _, p := range paths {
		logger.Info("screenshot saved", "file", p)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}
