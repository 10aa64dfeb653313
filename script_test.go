package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
[[step]]
action = "click"
x = 100
y = 200

[[step]]
action = "wait"
frames = 5

[[step]]
action = "drag"
from_x = 10
from_y = 20
to_x = 300
to_y = 400
frames = 10
ease = "outCubic"

[[step]]
action = "key"
keycode = 30
modifiers = ["shift", "ctrl"]
`)
	s, err := LoadScript(data)
	require.NoError(t, err)

	steps := s.Steps()
	require.Len(t, steps, 4)
	assert.Equal(t, "click", steps[0].Action)
	assert.Equal(t, 100.0, steps[0].X)
	assert.Equal(t, 200.0, steps[0].Y)
	assert.Equal(t, 5, steps[1].Frames)
	assert.Equal(t, 300.0, steps[2].ToX)
	assert.Equal(t, "outCubic", steps[2].Ease)
	assert.Len(t, steps[3].Modifiers, 2)
}

func TestLoadScriptIgnoresOtherTables(t *testing.T) {
	data := []byte(`
[[element]]
name = "panel"

[[step]]
action = "mark"
label = "start"
`)
	s, err := LoadScript(data)
	require.NoError(t, err)
	assert.Len(t, s.Steps(), 1)
}

func TestLoadScriptInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":   `[[step]`,
		"action":   "[[step]]\naction = \"teleport\"",
		"button":   "[[step]]\naction = \"press\"\nbutton = \"thumb\"",
		"ease":     "[[step]]\naction = \"drag\"\nease = \"wobble\"",
		"modifier": "[[step]]\naction = \"key\"\nmodifiers = [\"hyper\"]",
		"target":   "[[step]]\naction = \"move\"",
	}
	for name, src := range cases {
		_, err := LoadScript([]byte(src))
		assert.Error(t, err, name)
	}
}

func TestLoadScriptEmpty(t *testing.T) {
	_, err := LoadScript([]byte(``))
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestScriptStepClick(t *testing.T) {
	r, a := newTestRoot()
	s, err := LoadScript([]byte("[[step]]\naction = \"click\"\nx = 5\ny = 5\n"))
	require.NoError(t, err)

	// Frame 1: issue the click (queues press + release).
	require.NoError(t, s.Step(r))
	require.Equal(t, 2, r.Pending())
	assert.False(t, s.Done(), "script waits for the queue to drain")

	// Frames 2-3 drain the queue, frame 4 finishes.
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Step(r))
	}
	assert.True(t, s.Done())
	assert.Equal(t, []ButtonPhase{ButtonDown, ButtonUp, ButtonClick}, a.phases())
}

func TestScriptStepRejectsInvalidSteps(t *testing.T) {
	r, a := newTestRoot()
	steps := map[string]ScriptStep{
		"button":   {Action: "press", X: 5, Y: 5, Button: "thumb"},
		"modifier": {Action: "key", Modifiers: []string{"hyper"}},
		"ease":     {Action: "drag", Ease: "wobble"},
		"action":   {Action: "teleport"},
	}
	for name, st := range steps {
		s := &Script{steps: []ScriptStep{st}}
		assert.Error(t, s.Step(r), name)
	}
	assert.Zero(t, r.Pending(), "nothing is queued for a rejected step")
	assert.Empty(t, a.buttons)
}

func TestScriptStepWait(t *testing.T) {
	r := NewRoot(nil, RootConfig{})
	var marks []string
	s, err := LoadScript([]byte(`
[[step]]
action = "wait"
frames = 3

[[step]]
action = "mark"
label = "after"
`))
	require.NoError(t, err)
	s.OnMark = func(label string) { marks = append(marks, label) }

	// Frame 1 issues the wait, frames 2-3 count down, frame 4 marks.
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Step(r))
		require.Empty(t, marks, "mark fired early at frame %d", i+1)
	}
	require.NoError(t, s.Step(r))
	assert.Equal(t, []string{"after"}, marks)
	assert.True(t, s.Done())
}

func TestScriptRunDragAndKeys(t *testing.T) {
	r := NewRoot(nil, RootConfig{})
	wide := newFake("wide", 0, 0, 100, 100, nil)
	r.AddFront(&wide.Element)
	r.SetKeyboardFocus(&wide.Element)

	s, err := LoadScript([]byte(`
[[step]]
action = "drag"
from_x = 10
from_y = 10
to_x = 50
to_y = 50
frames = 4

[[step]]
action = "axis"
x = 0
delta = -3
horizontal = true

[[step]]
action = "key"
keycode = 30
modifiers = ["alt"]
`))
	require.NoError(t, err)
	require.NoError(t, s.Run(r, 100))

	require.Len(t, wide.axes, 1)
	assert.Equal(t, AxisHorizontal, wide.axes[0].Orientation)
	assert.Equal(t, -3, wide.axes[0].DeltaDiscrete)

	require.Len(t, wide.keys, 2)
	assert.True(t, wide.keys[0].Pressed)
	assert.False(t, wide.keys[1].Pressed)
	assert.Equal(t, ModAlt, wide.keys[0].Modifiers)

	last := wide.LastPointerMotion()
	assert.Equal(t, 50.0, last.X)
	assert.Equal(t, 50.0, last.Y)
}

func TestScriptRunMove(t *testing.T) {
	r := NewRoot(nil, RootConfig{})
	e := newFake("mover", 0, 0, 10, 10, nil)
	r.AddFront(&e.Element)

	s, err := LoadScript([]byte(`
[[step]]
action = "move"
target = "mover"
to_x = 30
to_y = 40
frames = 3
ease = "linear"
`))
	require.NoError(t, err)
	require.NoError(t, s.Run(r, 20))

	x, y := e.Position()
	assert.Equal(t, 30, x)
	assert.Equal(t, 40, y)
}

func TestScriptRunMissingTarget(t *testing.T) {
	r := NewRoot(nil, RootConfig{})
	s, err := LoadScript([]byte("[[step]]\naction = \"move\"\ntarget = \"ghost\"\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, s.Run(r, 10), ErrScriptTarget)
}

func TestScriptRunMaxFrames(t *testing.T) {
	r := NewRoot(nil, RootConfig{})
	s, err := LoadScript([]byte("[[step]]\naction = \"wait\"\nframes = 50\n"))
	require.NoError(t, err)

	err = s.Run(r, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 frames")
}

func TestScriptWaitsForInjectQueue(t *testing.T) {
	r := NewRoot(nil, RootConfig{})
	var marks []string
	s, err := LoadScript([]byte(`
[[step]]
action = "mark"
label = "first"

[[step]]
action = "mark"
label = "second"
`))
	require.NoError(t, err)
	s.OnMark = func(label string) { marks = append(marks, label) }

	r.InjectMotion(1, 1)
	r.InjectMotion(2, 2)

	s.Step(r)
	s.Step(r)
	require.Empty(t, marks, "marks fire only after the queue drained")
	s.Step(r)
	assert.Equal(t, []string{"first"}, marks)
}

func TestParseButtonAndModifiers(t *testing.T) {
	b, err := ParseButton("")
	require.NoError(t, err)
	assert.Equal(t, MouseButtonLeft, b)

	b, err = ParseButton("Middle")
	require.NoError(t, err)
	assert.Equal(t, MouseButtonMiddle, b)

	mods, err := ParseModifiers([]string{"Shift", "meta"})
	require.NoError(t, err)
	assert.Equal(t, ModShift|ModMeta, mods)
}
