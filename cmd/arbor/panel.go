package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/scene"
)

// panel is a solid rectangle leaf. A press focuses it (when focusable),
// raises it within its parent, and starts a drag by grabbing the pointer
// (when grabbable).
type panel struct {
	arbor.Element
	orig arbor.Handlers

	width, height int
	color         color.RGBA

	focusable bool
	grabbable bool

	focused      bool
	dragging     bool
	grabX, grabY float64

	trace *tracer
}

func newPanel(name string, width, height int, c color.RGBA, tr *tracer) *panel {
	p := &panel{width: width, height: height, color: c, trace: tr}
	p.Init(name)
	p.UserData = p
	p.orig = p.Extend(arbor.Handlers{
		CreateSceneNode: p.createSceneNode,
		Bounds:          p.bounds,
		PointerMotion:   p.handlePointerMotion,
		PointerButton:   p.handlePointerButton,
		PointerAxis:     p.handlePointerAxis,
		KeyboardBlur:    p.handleKeyboardBlur,
		KeyboardEvent:   p.handleKeyboardEvent,
	})
	return p
}

// setGrabbable enables drag-to-move. Grabbing requires a cancel capability,
// so it is only installed for grabbable panels.
func (p *panel) setGrabbable() {
	p.grabbable = true
	p.Extend(arbor.Handlers{PointerGrabCancel: p.cancelDrag})
}

func (p *panel) createSceneNode(parent *scene.Tree) *scene.Node {
	return scene.NewRect(parent, p.width, p.height, p.displayColor())
}

func (p *panel) bounds() arbor.Box {
	return arbor.Box{Right: p.width, Bottom: p.height}
}

func (p *panel) displayColor() color.RGBA {
	if !p.focused {
		return p.color
	}
	return lighten(p.color, 0.35)
}

func (p *panel) refreshColor() {
	if n := p.SceneNode(); n != nil {
		n.Color = p.displayColor()
	}
}

func (p *panel) handlePointerMotion(ev arbor.PointerMotionEvent) bool {
	inside := p.orig.PointerMotion(ev)
	if p.dragging && ev.Finite() {
		x, y := p.Position()
		dx := int(math.Round(ev.X - p.grabX))
		dy := int(math.Round(ev.Y - p.grabY))
		if dx != 0 || dy != 0 {
			p.SetPosition(x+dx, y+dy)
		}
		// The panel follows the pointer, so it stays under it.
		return true
	}
	return inside
}

func (p *panel) handlePointerButton(ev arbor.ButtonEvent) bool {
	if ev.Button != arbor.MouseButtonLeft {
		return false
	}
	p.trace.add(traceButton, p.Name, ev.Phase.String())

	parent := p.Parent()
	switch ev.Phase {
	case arbor.ButtonDown:
		if parent == nil {
			return true
		}
		if p.focusable {
			parent.SetKeyboardFocus(&p.Element)
			if !p.focused {
				p.focused = true
				p.refreshColor()
				p.trace.add(traceFocus, p.Name, "")
			}
		}
		parent.RaiseToTop(&p.Element)
		if p.grabbable {
			m := p.LastPointerMotion()
			p.grabX, p.grabY = m.X, m.Y
			p.dragging = true
			parent.PointerGrab(&p.Element)
			p.trace.add(traceGrab, p.Name, "acquired")
		}
	case arbor.ButtonUp:
		if p.dragging {
			p.dragging = false
			if parent != nil {
				parent.PointerGrabRelease(&p.Element)
			}
			x, y := p.Position()
			p.trace.add(traceGrab, p.Name, fmt.Sprintf("released at %d,%d", x, y))
		}
	}
	return true
}

func (p *panel) handlePointerAxis(ev arbor.AxisEvent) bool {
	p.trace.add(traceAxis, p.Name, fmt.Sprintf("%+g", ev.Delta))
	return true
}

func (p *panel) cancelDrag() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.trace.add(traceCancel, p.Name, "grab")
}

func (p *panel) handleKeyboardBlur() {
	if !p.focused {
		return
	}
	p.focused = false
	p.refreshColor()
	p.trace.add(traceBlur, p.Name, "")
}

func (p *panel) handleKeyboardEvent(ev arbor.KeyEvent) bool {
	if !p.focused {
		return false
	}
	state := "up"
	if ev.Pressed {
		state = "down"
	}
	p.trace.add(traceKey, p.Name, fmt.Sprintf("%d %s", ev.Keycode, state))
	return true
}

// lighten mixes c with white by f (0..1).
func lighten(c color.RGBA, f float64) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*f))
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
