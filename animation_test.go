package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	e := NewElement("pos")
	e.SetPosition(10, 20)

	tw := TweenPosition(e, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	tw.Update(0.5)
	tw.Update(0.5)

	require.True(t, tw.Done)
	x, y := e.Position()
	assert.Equal(t, 100, x)
	assert.Equal(t, 200, y)
}

func TestTweenPositionHalfway(t *testing.T) {
	e := NewElement("half")
	tw := TweenPosition(e, 40, 0, 1.0, nil)

	tw.Update(0.5)
	require.False(t, tw.Done)
	x, _ := e.Position()
	assert.Equal(t, 20, x)
	assert.Equal(t, e, tw.Target())
}

func TestTweenDestroyedTarget(t *testing.T) {
	e := NewElement("gone")
	tw := TweenPosition(e, 100, 0, 1.0, ease.Linear)
	e.Destroy()

	tw.Update(0.5)
	assert.True(t, tw.Done)
	x, _ := e.Position()
	assert.Zero(t, x, "destroyed element must not move")
}

func TestTweenMovesPointerFocus(t *testing.T) {
	var log []string
	c := NewContainer("c")
	e := newFake("slider", 50, 0, 10, 10, &log)
	c.AddFront(&e.Element)
	c.PointerMotion(motion(5, 5))

	tw := TweenPosition(&e.Element, 0, 0, 2, ease.Linear)
	tw.Update(1)
	require.Nil(t, c.PointerFocus(), "not under the pointer halfway")
	tw.Update(1)
	require.Equal(t, &e.Element, c.PointerFocus())
	assert.Equal(t, []string{"enter slider"}, log)
}

func TestEaseByName(t *testing.T) {
	for _, name := range []string{"", "linear", "outQuad", "in-out-cubic", "OUT_BOUNCE", "inoutelastic"} {
		fn, ok := EaseByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, fn, name)
	}
	_, ok := EaseByName("wobble")
	assert.False(t, ok)
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	ta := TweenPosition(a, 100, 0, 1.0, ease.Linear)
	tb := TweenPosition(b, 100, 0, 1.0, ease.InQuad)

	ta.Update(0.5)
	tb.Update(0.5)

	xa, _ := a.Position()
	xb, _ := b.Position()
	assert.NotEqual(t, xa, xb, "Linear and InQuad differ at t=0.5")
}
