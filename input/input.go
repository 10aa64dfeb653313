// Package input feeds Ebitengine mouse and keyboard state into an arbor
// Root. Call Adapter.Update once per tick from the game's Update method.
package input

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/arbor"
)

// buttonMap pairs each tracked ebiten button with its arbor counterpart.
var buttonMap = [...]struct {
	ebiten ebiten.MouseButton
	arbor  arbor.MouseButton
}{
	{ebiten.MouseButtonLeft, arbor.MouseButtonLeft},
	{ebiten.MouseButtonRight, arbor.MouseButtonRight},
	{ebiten.MouseButtonMiddle, arbor.MouseButtonMiddle},
	{ebiten.MouseButton3, arbor.MouseButtonBack},
	{ebiten.MouseButton4, arbor.MouseButtonForward},
}

// ButtonState is the pressed state of every tracked button, indexed like
// arbor.MouseButton.
type ButtonState [len(buttonMap)]bool

// Adapter translates polled ebiten input into Root entry points. Real input
// is skipped while the root has injected events queued.
type Adapter struct {
	root    *arbor.Root
	started time.Time

	buttons      ButtonState
	lastX, lastY int
	moved        bool

	keys []ebiten.Key
}

// New creates an adapter for root.
func New(root *arbor.Root) *Adapter {
	return &Adapter{root: root, started: time.Now()}
}

// Update polls ebiten and routes what changed since the last call.
func (a *Adapter) Update() {
	if a.root.Pending() > 0 {
		a.root.Step()
		return
	}

	now := a.now()
	mods := readModifiers()

	x, y := ebiten.CursorPosition()
	if !a.moved || x != a.lastX || y != a.lastY {
		a.moved = true
		a.lastX, a.lastY = x, y
		a.root.PointerMotion(float64(x), float64(y), now, 0)
	}

	var cur ButtonState
	for i, b := range buttonMap {
		cur[i] = ebiten.IsMouseButtonPressed(b.ebiten)
	}
	for _, ev := range ButtonEdges(a.buttons, cur, now, mods) {
		a.root.PointerButton(ev)
	}
	a.buttons = cur

	for _, ev := range AxisEvents(ebiten.Wheel()) {
		ev.TimeMsec = now
		a.root.PointerAxis(ev)
	}

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		a.root.KeyboardEvent(arbor.KeyEvent{Keycode: uint32(k), Pressed: true, TimeMsec: now, Modifiers: mods})
	}
	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, k := range a.keys {
		a.root.KeyboardEvent(arbor.KeyEvent{Keycode: uint32(k), Pressed: false, TimeMsec: now, Modifiers: mods})
	}
}

func (a *Adapter) now() uint32 {
	return uint32(time.Since(a.started) / time.Millisecond)
}

// ButtonEdges returns a raw button event for every button whose state
// differs between prev and cur, in button order.
func ButtonEdges(prev, cur ButtonState, timeMsec uint32, mods arbor.KeyModifiers) []arbor.RawButtonEvent {
	var out []arbor.RawButtonEvent
	for i := range cur {
		if prev[i] == cur[i] {
			continue
		}
		out = append(out, arbor.RawButtonEvent{
			Button:    buttonMap[i].arbor,
			Pressed:   cur[i],
			TimeMsec:  timeMsec,
			Modifiers: mods,
		})
	}
	return out
}

// AxisEvents converts an ebiten wheel reading into axis events. Ebiten
// reports wheel-up as positive y; arbor uses positive deltas for scrolling
// down, matching discrete wheel clicks.
func AxisEvents(wheelX, wheelY float64) []arbor.AxisEvent {
	var out []arbor.AxisEvent
	if wheelY != 0 {
		out = append(out, arbor.AxisEvent{
			Orientation:   arbor.AxisVertical,
			Delta:         -wheelY,
			DeltaDiscrete: discrete(-wheelY),
		})
	}
	if wheelX != 0 {
		out = append(out, arbor.AxisEvent{
			Orientation:   arbor.AxisHorizontal,
			Delta:         -wheelX,
			DeltaDiscrete: discrete(-wheelX),
		})
	}
	return out
}

func discrete(d float64) int {
	switch {
	case d > 0 && d < 1:
		return 1
	case d < 0 && d > -1:
		return -1
	default:
		return int(d)
	}
}

// readModifiers returns the currently held modifier keys.
func readModifiers() arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= arbor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= arbor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= arbor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= arbor.ModMeta
	}
	return mods
}
