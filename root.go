package arbor

import (
	"math"
	"time"

	"github.com/phanxgames/arbor/scene"
)

// --- Constants ---

const (
	maxButtons                 = 5 // MouseButtonLeft..MouseButtonForward
	defaultDoubleClickInterval = 400 * time.Millisecond
	defaultDoubleClickDistance = 4.0 // pixels
)

// RootConfig tunes the gesture translation done by Root.
type RootConfig struct {
	// DoubleClickInterval is the longest gap between two clicks of the same
	// button that still counts as a double click. Zero selects the default.
	DoubleClickInterval time.Duration

	// DoubleClickDistance is how far the pointer may travel between the two
	// clicks. Zero selects the default.
	DoubleClickDistance float64
}

// DefaultRootConfig returns the configuration used for zero fields.
func DefaultRootConfig() RootConfig {
	return RootConfig{
		DoubleClickInterval: defaultDoubleClickInterval,
		DoubleClickDistance: defaultDoubleClickDistance,
	}
}

func (cfg RootConfig) withDefaults() RootConfig {
	if cfg.DoubleClickInterval <= 0 {
		cfg.DoubleClickInterval = defaultDoubleClickInterval
	}
	if cfg.DoubleClickDistance <= 0 {
		cfg.DoubleClickDistance = defaultDoubleClickDistance
	}
	return cfg
}

// --- Per-button state ---

type clickState struct {
	clicked  bool
	timeMsec uint32
	x, y     float64
}

// --- Handler registry ---

type elementHandler struct {
	id uint32
	fn func(*Element)
}

type buttonHandler struct {
	id uint32
	fn func(ButtonEvent)
}

type handlerRegistry struct {
	pointerEnter    []elementHandler
	pointerLeave    []elementHandler
	unclaimedButton []buttonHandler
	nextID          uint32
}

// CallbackHandle allows removing a registered root-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerEnter:
		h.reg.pointerEnter = removeElementHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeElementHandler(h.reg.pointerLeave, h.id)
	case EventUnclaimedButton:
		h.reg.unclaimedButton = removeButtonHandler(h.reg.unclaimedButton, h.id)
	}
}

func removeElementHandler(s []elementHandler, id uint32) []elementHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = elementHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeButtonHandler(s []buttonHandler, id uint32) []buttonHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = buttonHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Root ---

// Root is the outermost container of a hierarchy and the entry point for raw
// input. It turns device-level button edges into gestures, keeps the pointer
// position that focus recomputation replays, and reports root-level
// notifications.
type Root struct {
	Container

	cfg       RootConfig
	callbacks handlerRegistry
	clicks    [maxButtons]clickState

	// Injected input
	injectQueue []syntheticEvent
	clockMsec   uint32
}

// NewRoot creates a root container. With a non-nil tree the root is attached
// to it at once and every element added below gets a backing node.
func NewRoot(tree *scene.Tree, cfg RootConfig) *Root {
	r := &Root{}
	if tree != nil {
		r.InitAttached("root", tree)
	} else {
		r.Init("root")
	}
	r.cfg = cfg.withDefaults()
	r.observer = r.emitElementEvent
	return r
}

// Config returns the effective configuration.
func (r *Root) Config() RootConfig {
	return r.cfg
}

// Destroy destroys every element of the hierarchy and the root's scene tree.
func (r *Root) Destroy() {
	r.callbacks = handlerRegistry{}
	r.injectQueue = nil
	r.Element.Destroy()
}

// --- Entry points ---

// PointerMotion routes a pointer position in root coordinates and reports
// whether an element took pointer focus there.
func (r *Root) PointerMotion(x, y float64, timeMsec uint32, pointerID int) bool {
	return r.Element.PointerMotion(PointerMotionEvent{X: x, Y: y, TimeMsec: timeMsec, PointerID: pointerID})
}

// PointerButton translates a button edge into gestures. A press is routed as
// DOWN. A release is routed as UP then CLICK, and additionally DOUBLE_CLICK
// when it completes the second click of the same button within the
// configured interval and distance. A DOWN nobody accepts is reported to
// OnUnclaimedButton callbacks.
func (r *Root) PointerButton(raw RawButtonEvent) bool {
	ev := ButtonEvent{Button: raw.Button, TimeMsec: raw.TimeMsec, Modifiers: raw.Modifiers}

	if raw.Pressed {
		ev.Phase = ButtonDown
		if r.Element.PointerButton(ev) {
			return true
		}
		for _, h := range r.callbacks.unclaimedButton {
			h.fn(ev)
		}
		return false
	}

	ev.Phase = ButtonUp
	accepted := r.Element.PointerButton(ev)
	ev.Phase = ButtonClick
	if r.Element.PointerButton(ev) {
		accepted = true
	}
	if r.completesDoubleClick(raw) {
		ev.Phase = ButtonDoubleClick
		if r.Element.PointerButton(ev) {
			accepted = true
		}
	}
	return accepted
}

// completesDoubleClick records a click of raw.Button and reports whether it
// pairs with the previous one.
func (r *Root) completesDoubleClick(raw RawButtonEvent) bool {
	if int(raw.Button) >= maxButtons {
		return false
	}
	st := &r.clicks[raw.Button]
	x, y := r.lastMotion.X, r.lastMotion.Y
	interval := uint32(r.cfg.DoubleClickInterval / time.Millisecond)

	if st.clicked && raw.TimeMsec-st.timeMsec <= interval &&
		math.Hypot(x-st.x, y-st.y) <= r.cfg.DoubleClickDistance {
		*st = clickState{}
		return true
	}
	*st = clickState{clicked: true, timeMsec: raw.TimeMsec, x: x, y: y}
	return false
}

// PointerAxis routes a scroll event.
func (r *Root) PointerAxis(ev AxisEvent) bool {
	return r.Element.PointerAxis(ev)
}

// KeyboardEvent routes a key event along the keyboard-focus chain.
func (r *Root) KeyboardEvent(ev KeyEvent) bool {
	return r.Element.KeyboardEvent(ev)
}

// --- Root-level event registration ---

// OnPointerEnter registers a callback fired whenever any element of the
// hierarchy gains pointer focus.
func (r *Root) OnPointerEnter(fn func(*Element)) CallbackHandle {
	r.callbacks.nextID++
	id := r.callbacks.nextID
	r.callbacks.pointerEnter = append(r.callbacks.pointerEnter, elementHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.callbacks, event: EventPointerEnter}
}

// OnPointerLeave registers a callback fired whenever any element of the
// hierarchy loses pointer focus.
func (r *Root) OnPointerLeave(fn func(*Element)) CallbackHandle {
	r.callbacks.nextID++
	id := r.callbacks.nextID
	r.callbacks.pointerLeave = append(r.callbacks.pointerLeave, elementHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.callbacks, event: EventPointerLeave}
}

// OnUnclaimedButton registers a callback for button presses no element
// accepted.
func (r *Root) OnUnclaimedButton(fn func(ButtonEvent)) CallbackHandle {
	r.callbacks.nextID++
	id := r.callbacks.nextID
	r.callbacks.unclaimedButton = append(r.callbacks.unclaimedButton, buttonHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.callbacks, event: EventUnclaimedButton}
}

// emitElementEvent forwards enter and leave notifications of descendants.
// The root's own transitions are not reported.
func (r *Root) emitElementEvent(t EventType, e *Element) {
	if e == &r.Element {
		return
	}
	var hs []elementHandler
	switch t {
	case EventPointerEnter:
		hs = r.callbacks.pointerEnter
	case EventPointerLeave:
		hs = r.callbacks.pointerLeave
	}
	for _, h := range hs {
		h.fn(e)
	}
}
