package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// keyboardChain builds c1 ⊃ c2 ⊃ {l, m}.
func keyboardChain() (c1, c2 *Container, l, m *fakeElement) {
	c1 = NewContainer("c1")
	c2 = NewContainer("c2")
	l = newFake("l", 0, 0, 10, 10, nil)
	m = newFake("m", 10, 0, 10, 10, nil)
	c2.AddFront(&l.Element)
	c2.AddFront(&m.Element)
	c1.AddFront(&c2.Element)
	return c1, c2, l, m
}

func TestKeyboardFocusPropagatesUp(t *testing.T) {
	c1, c2, l, _ := keyboardChain()

	c2.SetKeyboardFocus(&l.Element)
	assert.Equal(t, &l.Element, c2.KeyboardFocus())
	assert.Equal(t, &c2.Element, c1.KeyboardFocus())
}

func TestKeyboardEventsFollowChain(t *testing.T) {
	c1, c2, l, m := keyboardChain()
	ev := KeyEvent{Keycode: 30, Pressed: true, Modifiers: ModShift}

	assert.False(t, c1.KeyboardEvent(ev), "no holder")

	c2.SetKeyboardFocus(&l.Element)
	assert.True(t, c1.KeyboardEvent(ev))
	assert.Equal(t, []KeyEvent{ev}, l.keys)
	assert.Empty(t, m.keys)

	l.acceptKey = false
	assert.False(t, c1.KeyboardEvent(ev))
}

func TestKeyboardFocusSwitchBlursPrevious(t *testing.T) {
	_, c2, l, m := keyboardChain()

	c2.SetKeyboardFocus(&l.Element)
	c2.SetKeyboardFocus(&l.Element)
	assert.Zero(t, l.blurs, "setting the same holder is a no-op")

	c2.SetKeyboardFocus(&m.Element)
	assert.Equal(t, 1, l.blurs)
	assert.Zero(t, m.blurs)
	assert.Equal(t, &m.Element, c2.KeyboardFocus())
}

func TestClearingKeyboardFocusStaysLocal(t *testing.T) {
	c1, c2, l, _ := keyboardChain()

	c2.SetKeyboardFocus(&l.Element)
	c2.SetKeyboardFocus(nil)
	assert.Equal(t, 1, l.blurs)
	assert.Nil(t, c2.KeyboardFocus())
	assert.Equal(t, &c2.Element, c1.KeyboardFocus(), "ancestors keep pointing at c2")
	assert.False(t, c1.KeyboardEvent(KeyEvent{Keycode: 1}))
}

func TestBlurBubblesDown(t *testing.T) {
	c1, c2, l, _ := keyboardChain()
	other := NewContainer("other")
	c1.AddFront(&other.Element)
	leaf := newFake("leaf", 0, 0, 1, 1, nil)
	other.AddFront(&leaf.Element)

	c2.SetKeyboardFocus(&l.Element)
	other.SetKeyboardFocus(&leaf.Element)

	// Moving focus to another branch blurs the old one all the way down.
	assert.Equal(t, &other.Element, c1.KeyboardFocus())
	assert.Nil(t, c2.KeyboardFocus())
	assert.Equal(t, 1, l.blurs)
}

func TestKeyboardFocusForeignPanics(t *testing.T) {
	_, c2, _, _ := keyboardChain()
	assert.Panics(t, func() { c2.SetKeyboardFocus(NewElement("stranger")) })
}

func TestRemovingKeyboardHolderBlurs(t *testing.T) {
	c1, c2, l, _ := keyboardChain()
	c2.SetKeyboardFocus(&l.Element)

	c1.Remove(&c2.Element)
	assert.Nil(t, c1.KeyboardFocus())
	assert.Nil(t, c2.KeyboardFocus())
	assert.Equal(t, 1, l.blurs)
}
