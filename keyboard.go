package arbor

// KeyboardFocus returns the child holding keyboard focus in c, or nil.
func (c *Container) KeyboardFocus() *Element {
	return c.keyboardFocus
}

// SetKeyboardFocus makes e the keyboard-focus holder of c. The previous holder
// is blurred. A non-nil e also makes c the holder in its parent, and so on up
// the chain. Passing nil blurs and clears the slot of c only; ancestors keep
// pointing at c. Panics if e is not a child of c.
func (c *Container) SetKeyboardFocus(e *Element) {
	if e != nil && e.parent != c {
		panic("arbor: keyboard focus given to an element that is not a child")
	}
	if c.keyboardFocus == e {
		return
	}

	prev := c.keyboardFocus
	c.keyboardFocus = e
	if prev != nil {
		prev.KeyboardBlur()
	}
	if globalDebug {
		logger.Debug("keyboard focus", "container", c.Name, "holder", elementName(e))
	}

	if e != nil && c.parent != nil {
		c.parent.SetKeyboardFocus(&c.Element)
	}
}

func (c *Container) handleKeyboardBlur() {
	if f := c.keyboardFocus; f != nil {
		c.keyboardFocus = nil
		f.KeyboardBlur()
	}
}

func (c *Container) handleKeyboardEvent(ev KeyEvent) bool {
	if f := c.keyboardFocus; f != nil {
		return f.KeyboardEvent(ev)
	}
	return false
}

func elementName(e *Element) string {
	if e == nil {
		return ""
	}
	return e.Name
}
