package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// injectFrameMsec is the synthetic clock advance per consumed event.
const injectFrameMsec = 16

type syntheticKind uint8

const (
	syntheticMotion syntheticKind = iota
	syntheticButton
	syntheticAxis
	syntheticKey
)

// syntheticEvent is a single injected input event. Button events carry the
// pointer position and move the pointer there before the edge is routed.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	button  MouseButton
	pressed bool
	axis    AxisEvent
	key     KeyEvent
}

// InjectMotion queues a pointer move to (x, y) in root coordinates.
func (r *Root) InjectMotion(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{kind: syntheticMotion, x: x, y: y})
}

// InjectPress queues a press of button at (x, y).
func (r *Root) InjectPress(x, y float64, button MouseButton) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{
		kind: syntheticButton, x: x, y: y,
		pressed: true,
		button:  button,
	})
}

// InjectRelease queues a release of button at (x, y).
func (r *Root) InjectRelease(x, y float64, button MouseButton) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{
		kind: syntheticButton, x: x, y: y,
		pressed: false,
		button:  button,
	})
}

// InjectClick is a convenience that queues a left press followed by a
// release at the same position. Consumes two steps.
func (r *Root) InjectClick(x, y float64) {
	r.InjectPress(x, y, MouseButtonLeft)
	r.InjectRelease(x, y, MouseButtonLeft)
}

// InjectDrag queues a left-button drag: press at (fromX, fromY), frames-2
// intermediate moves along the path eased by fn (linear when nil), and
// release at (toX, toY). Minimum frames is 2.
func (r *Root) InjectDrag(fromX, fromY, toX, toY float64, frames int, fn ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	if fn == nil {
		fn = ease.Linear
	}
	r.InjectPress(fromX, fromY, MouseButtonLeft)
	steps := frames - 2
	tw := gween.New(0, 1, float32(steps+1), fn)
	for i := 1; i <= steps; i++ {
		t, _ := tw.Update(1)
		r.InjectMotion(fromX+(toX-fromX)*float64(t), fromY+(toY-fromY)*float64(t))
	}
	r.InjectRelease(toX, toY, MouseButtonLeft)
}

// InjectAxis queues a scroll event. The time stamp is filled in when the
// event is consumed.
func (r *Root) InjectAxis(ev AxisEvent) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{kind: syntheticAxis, axis: ev})
}

// InjectKey queues a key event. The time stamp is filled in when the event
// is consumed.
func (r *Root) InjectKey(ev KeyEvent) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{kind: syntheticKey, key: ev})
}

// Pending returns the number of queued synthetic events.
func (r *Root) Pending() int {
	return len(r.injectQueue)
}

// Step pops one queued event and routes it. Returns false when the queue was
// empty.
func (r *Root) Step() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue[len(r.injectQueue)-1] = syntheticEvent{}
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	r.clockMsec += injectFrameMsec
	now := r.clockMsec

	switch evt.kind {
	case syntheticMotion:
		r.PointerMotion(evt.x, evt.y, now, 0)
	case syntheticButton:
		r.PointerMotion(evt.x, evt.y, now, 0)
		r.PointerButton(RawButtonEvent{Button: evt.button, Pressed: evt.pressed, TimeMsec: now})
	case syntheticAxis:
		evt.axis.TimeMsec = now
		r.PointerAxis(evt.axis)
	case syntheticKey:
		evt.key.TimeMsec = now
		r.KeyboardEvent(evt.key)
	}
	return true
}

// Flush routes every queued event and returns how many there were.
func (r *Root) Flush() int {
	n := 0
	for r.Step() {
		n++
	}
	return n
}
