package arbor

import (
	"image/color"

	"github.com/phanxgames/arbor/scene"
)

// fakeElement is a rectangular leaf that records what it receives. Its
// acceptance of buttons, axis and key events is configurable.
type fakeElement struct {
	Element
	orig Handlers

	width, height int

	motions []PointerMotionEvent
	buttons []ButtonEvent
	axes    []AxisEvent
	keys    []KeyEvent

	acceptButton bool
	acceptAxis   bool
	acceptKey    bool

	grabCancels int
	blurs       int

	// onButton, when set, runs before the event is recorded.
	onButton func(ev ButtonEvent)
}

// newFake creates a fake at (x, y) of size w x h. Enter and leave are
// appended to log as "enter <name>" and "leave <name>" when log is non-nil.
func newFake(name string, x, y, w, h int, log *[]string) *fakeElement {
	f := &fakeElement{width: w, height: h, acceptButton: true, acceptAxis: true, acceptKey: true}
	f.Init(name)
	f.SetPosition(x, y)
	f.orig = f.Extend(Handlers{
		CreateSceneNode: func(parent *scene.Tree) *scene.Node {
			return scene.NewRect(parent, f.width, f.height, color.RGBA{A: 0xff})
		},
		Bounds: func() Box { return Box{Right: f.width, Bottom: f.height} },
		PointerMotion: func(ev PointerMotionEvent) bool {
			f.motions = append(f.motions, ev)
			return f.orig.PointerMotion(ev)
		},
		PointerButton: func(ev ButtonEvent) bool {
			if f.onButton != nil {
				f.onButton(ev)
			}
			f.buttons = append(f.buttons, ev)
			return f.acceptButton
		},
		PointerAxis: func(ev AxisEvent) bool {
			f.axes = append(f.axes, ev)
			return f.acceptAxis
		},
		PointerGrabCancel: func() { f.grabCancels++ },
		KeyboardBlur:      func() { f.blurs++ },
		KeyboardEvent: func(ev KeyEvent) bool {
			f.keys = append(f.keys, ev)
			return f.acceptKey
		},
	})
	if log != nil {
		f.OnPointerEnter = func(PointerMotionEvent) { *log = append(*log, "enter "+name) }
		f.OnPointerLeave = func() { *log = append(*log, "leave "+name) }
	}
	return f
}

// phases returns the phases of the recorded button events.
func (f *fakeElement) phases() []ButtonPhase {
	out := make([]ButtonPhase, len(f.buttons))
	for i, b := range f.buttons {
		out[i] = b.Phase
	}
	return out
}

func motion(x, y float64) PointerMotionEvent {
	return PointerMotionEvent{X: x, Y: y}
}

func press(b MouseButton, phase ButtonPhase) ButtonEvent {
	return ButtonEvent{Button: b, Phase: phase}
}

// names returns the element names in order.
func names(es []*Element) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

// sceneNames returns the names of a tree's children, topmost first.
func sceneNames(t *scene.Tree) []string {
	children := t.Children()
	out := make([]string, 0, len(children))
	for i := len(children) - 1; i >= 0; i-- {
		out = append(out, children[i].Name)
	}
	return out
}
