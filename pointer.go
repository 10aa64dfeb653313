package arbor

import "fmt"

// --- Pointer focus ---

// PointerFocus returns the child currently holding pointer focus, or nil.
func (c *Container) PointerFocus() *Element {
	return c.pointerFocus
}

// PointerGrabHolder returns the child holding the pointer grab, or nil.
func (c *Container) PointerGrabHolder() *Element {
	return c.pointerGrab
}

// LeftButtonHolder returns the child that accepted the last left-button DOWN,
// or nil.
func (c *Container) LeftButtonHolder() *Element {
	return c.leftButton
}

// UpdatePointerFocus recomputes pointer focus from the outermost container,
// replaying its most recent motion.
func (c *Container) UpdatePointerFocus() {
	if c.parent != nil {
		c.parent.UpdatePointerFocus()
		return
	}
	m := c.lastMotion
	c.updatePointerFocusAt(m.X, m.Y, m.TimeMsec, m.PointerID)
}

func (c *Container) handlePointerMotion(ev PointerMotionEvent) bool {
	c.orig.PointerMotion(ev)
	return c.updatePointerFocusAt(ev.X, ev.Y, ev.TimeMsec, ev.PointerID)
}

// updatePointerFocusAt routes a position in c's coordinates to the child that
// takes pointer focus there and reports whether one did. An active grab takes
// every motion. Otherwise visible children are tried front to back and the
// first that accepts becomes the holder; the previous holder is sent the
// leave sentinel.
func (c *Container) updatePointerFocusAt(x, y float64, timeMsec uint32, pointerID int) bool {
	// Recomputation may start here rather than from a motion event; hold
	// enters until the previous holder has left.
	top := c.outermost()
	top.dispatch.depth++
	defer func() {
		top.dispatch.depth--
		if top.dispatch.depth == 0 {
			top.flushEnters()
		}
	}()

	c.focusPass++
	pass := c.focusPass
	ev := PointerMotionEvent{TimeMsec: timeMsec, PointerID: pointerID}

	if g := c.pointerGrab; g != nil {
		ev.X = x - float64(g.x)
		ev.Y = y - float64(g.y)
		g.PointerMotion(ev)
		return true
	}

	for e := c.head; e != nil; {
		if !e.visible || !e.PointerArea().Translate(e.x, e.y).Contains(x, y) {
			e = e.next
			continue
		}

		next := e.next
		ev.X = x - float64(e.x)
		ev.Y = y - float64(e.y)
		accepted := e.PointerMotion(ev)
		if c.focusPass != pass {
			// The handler changed the tree and focus was recomputed while it
			// ran. That pass saw the current children; its result stands.
			return c.pointerFocus != nil
		}
		if accepted && e.parent == c {
			// Handlers may have moved focus while running; re-read the slot.
			if prev := c.pointerFocus; prev != nil && prev != e {
				c.pointerFocus = nil
				if globalDebug {
					logger.Debug("pointer focus", "container", c.Name, "from", prev.Name, "to", e.Name)
				}
				prev.PointerMotion(LeaveEvent(timeMsec, pointerID))
			} else if prev == nil && globalDebug {
				logger.Debug("pointer focus", "container", c.Name, "to", e.Name)
			}
			c.pointerFocus = e
			return true
		}

		// Continue from the current successor. A child removed during
		// delivery only leaves the one captured before, if still ours.
		switch {
		case e.parent == c:
			e = e.next
		case next != nil && next.parent == c:
			e = next
		default:
			e = nil
		}
	}

	if prev := c.pointerFocus; prev != nil {
		c.pointerFocus = nil
		if globalDebug {
			logger.Debug("pointer focus cleared", "container", c.Name, "from", prev.Name)
		}
		prev.PointerMotion(LeaveEvent(timeMsec, pointerID))
	}
	return false
}

// --- Buttons ---

// handlePointerButton routes a button event. An active grab takes all
// phases. For the left button a DOWN accepted by the focus holder captures
// the gesture: UP goes to the capture holder, and CLICK and DOUBLE_CLICK
// only while the capture holder is still under the pointer. Other buttons go
// to the focus holder.
func (c *Container) handlePointerButton(ev ButtonEvent) bool {
	if g := c.pointerGrab; g != nil {
		return g.PointerButton(ev)
	}

	if ev.Button != MouseButtonLeft {
		if f := c.pointerFocus; f != nil {
			return f.PointerButton(ev)
		}
		return false
	}

	switch ev.Phase {
	case ButtonDown:
		f := c.pointerFocus
		if f == nil {
			c.leftButton = nil
			return false
		}
		accepted := f.PointerButton(ev)
		if accepted && f.parent == c {
			c.leftButton = f
		} else {
			c.leftButton = nil
		}
		return accepted

	case ButtonUp:
		if h := c.leftButton; h != nil {
			return h.PointerButton(ev)
		}
		return false

	case ButtonClick, ButtonDoubleClick:
		if h := c.leftButton; h != nil && h == c.pointerFocus {
			return h.PointerButton(ev)
		}
		return false

	default:
		panic(fmt.Sprintf("arbor: unhandled button phase %d", ev.Phase))
	}
}

// --- Axis ---

func (c *Container) handlePointerAxis(ev AxisEvent) bool {
	if g := c.pointerGrab; g != nil {
		return g.PointerAxis(ev)
	}
	if f := c.pointerFocus; f != nil {
		return f.PointerAxis(ev)
	}
	return false
}

// --- Pointer grab ---

// PointerGrab gives e exclusive pointer input. Any other grab held in c is
// cancelled and c requests the grab from its parent; then a distinct focus
// holder is sent the leave sentinel. Panics if e is not a child of c or
// has no PointerGrabCancel capability.
func (c *Container) PointerGrab(e *Element) {
	if e == nil || e.parent != c {
		panic("arbor: pointer grab requested by an element that is not a child")
	}
	if !e.CanCancelPointerGrab() {
		panic(fmt.Sprintf("arbor: element %q cannot be grabbed without PointerGrabCancel", e.Name))
	}
	if c.pointerGrab == e {
		return
	}

	c.cancelPointerGrab()
	c.pointerGrab = e
	if globalDebug {
		logger.Debug("pointer grab", "container", c.Name, "holder", e.Name)
	}

	if c.parent != nil {
		c.parent.PointerGrab(&c.Element)
	}

	if f := c.pointerFocus; f != nil && f != e {
		c.pointerFocus = nil
		m := c.lastMotion
		f.PointerMotion(LeaveEvent(m.TimeMsec, m.PointerID))
	}
}

// PointerGrabRelease ends the grab held by e and releases it up the chain,
// where the outermost container recomputes pointer focus. No-op if e does
// not hold the grab.
func (c *Container) PointerGrabRelease(e *Element) {
	if e == nil || c.pointerGrab != e {
		return
	}
	c.pointerGrab = nil
	if globalDebug {
		logger.Debug("pointer grab released", "container", c.Name, "holder", e.Name)
	}

	if c.parent != nil {
		c.parent.PointerGrabRelease(&c.Element)
		return
	}
	m := c.lastMotion
	c.updatePointerFocusAt(m.X, m.Y, m.TimeMsec, m.PointerID)
}

// cancelPointerGrab cancels the grab held in c, if any. Idempotent.
func (c *Container) cancelPointerGrab() {
	g := c.pointerGrab
	if g == nil {
		return
	}
	c.pointerGrab = nil
	if globalDebug {
		logger.Debug("pointer grab cancelled", "container", c.Name, "holder", g.Name)
	}
	g.PointerGrabCancel()
}
