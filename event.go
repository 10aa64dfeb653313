package arbor

import "math"

// Box is an axis-aligned rectangle given by its edges. Right and Bottom are
// exclusive. A Box with Left >= Right or Top >= Bottom covers nothing.
type Box struct {
	Left, Top, Right, Bottom int
}

// Width returns the horizontal extent (never negative).
func (b Box) Width() int {
	if b.Right <= b.Left {
		return 0
	}
	return b.Right - b.Left
}

// Height returns the vertical extent (never negative).
func (b Box) Height() int {
	if b.Bottom <= b.Top {
		return 0
	}
	return b.Bottom - b.Top
}

// Empty reports whether the box covers no area.
func (b Box) Empty() bool {
	return b.Left >= b.Right || b.Top >= b.Bottom
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	return Box{b.Left + dx, b.Top + dy, b.Right + dx, b.Bottom + dy}
}

// Contains reports whether (x, y) lies inside the box. Left and top edges are
// inside, right and bottom edges are not. Non-finite points are never inside.
func (b Box) Contains(x, y float64) bool {
	return float64(b.Left) <= x && x < float64(b.Right) &&
		float64(b.Top) <= y && y < float64(b.Bottom)
}

// --- Pointer motion ---

// PointerMotionEvent carries a pointer position in the receiving element's
// coordinate space. Non-finite coordinates mark the focus-loss sentinel.
type PointerMotionEvent struct {
	X, Y      float64
	TimeMsec  uint32
	PointerID int
}

// Finite reports whether the event carries a real position.
func (e PointerMotionEvent) Finite() bool {
	return !math.IsNaN(e.X) && !math.IsNaN(e.Y) &&
		!math.IsInf(e.X, 0) && !math.IsInf(e.Y, 0)
}

// LeaveEvent returns the sentinel motion telling an element it lost pointer
// focus.
func LeaveEvent(timeMsec uint32, pointerID int) PointerMotionEvent {
	return PointerMotionEvent{X: math.NaN(), Y: math.NaN(), TimeMsec: timeMsec, PointerID: pointerID}
}

// --- Buttons ---

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) button, tracked for capture
	MouseButtonRight                     // secondary (right) button
	MouseButtonMiddle                    // middle button (wheel click)
	MouseButtonBack                      // side button "back"
	MouseButtonForward                   // side button "forward"
)

// String returns a short button name.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonBack:
		return "back"
	case MouseButtonForward:
		return "forward"
	default:
		return "unknown"
	}
}

// ButtonPhase is the stage of a button gesture.
type ButtonPhase uint8

const (
	ButtonDown        ButtonPhase = iota + 1 // button pressed
	ButtonUp                                 // button released
	ButtonClick                              // press and release completed
	ButtonDoubleClick                        // second click in quick succession
)

// String returns the phase name.
func (p ButtonPhase) String() string {
	switch p {
	case ButtonDown:
		return "down"
	case ButtonUp:
		return "up"
	case ButtonClick:
		return "click"
	case ButtonDoubleClick:
		return "double-click"
	default:
		return "invalid"
	}
}

// ButtonEvent is a gesture-level button event routed through the tree.
type ButtonEvent struct {
	Button    MouseButton
	Phase     ButtonPhase
	TimeMsec  uint32
	Modifiers KeyModifiers
}

// RawButtonEvent is a device-level button edge, as delivered to Root.
type RawButtonEvent struct {
	Button    MouseButton
	Pressed   bool
	TimeMsec  uint32
	Modifiers KeyModifiers
}

// --- Axis ---

// AxisOrientation is the scroll direction of an axis event.
type AxisOrientation uint8

const (
	AxisVertical   AxisOrientation = iota // wheel up/down
	AxisHorizontal                        // wheel left/right, tilt
)

// AxisEvent is a scroll event.
type AxisEvent struct {
	Orientation   AxisOrientation
	Delta         float64
	DeltaDiscrete int
	TimeMsec      uint32
}

// --- Keyboard ---

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Logo key
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Keycode   uint32
	Syms      []uint32
	Pressed   bool
	TimeMsec  uint32
	Modifiers KeyModifiers
}

// EventType identifies a kind of root-level notification.
type EventType uint8

const (
	EventPointerEnter    EventType = iota // pointer entered an element
	EventPointerLeave                     // pointer left an element
	EventUnclaimedButton                  // a button DOWN nobody accepted
)
