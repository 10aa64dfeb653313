package arbor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ScriptStep is a single action of an event script.
type ScriptStep struct {
	Action string  `toml:"action"`
	Label  string  `toml:"label"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	FromX  float64 `toml:"from_x"`
	FromY  float64 `toml:"from_y"`
	ToX    float64 `toml:"to_x"`
	ToY    float64 `toml:"to_y"`
	Button string  `toml:"button"`
	Frames int     `toml:"frames"`
	Ease   string  `toml:"ease"`

	// axis
	Delta      float64 `toml:"delta"`
	Horizontal bool    `toml:"horizontal"`

	// key
	Keycode   uint32   `toml:"keycode"`
	Modifiers []string `toml:"modifiers"`

	// move
	Target string `toml:"target"`
}

// scriptFile is the TOML layout of a script. Other top-level tables are
// ignored so callers can keep their own declarations in the same file.
type scriptFile struct {
	Steps []ScriptStep `toml:"step"`
}

// ErrNoSteps is returned by LoadScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// ErrScriptTarget is returned by Step when a move names no known element.
var ErrScriptTarget = errors.New("script target not found")

// Script sequences injected input across frames. Each Step call advances
// the script by one frame: it waits for the root's inject queue and running
// tweens to drain, counts down waits, then issues the next action.
type Script struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	tweens    []*Tween
	done      bool

	// OnMark is called for "mark" actions with the step label.
	OnMark func(label string)
}

// LoadScript parses a TOML event script. Actions, buttons, easing names and
// modifiers are validated up front.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrNoSteps)
	}
	for i := range f.Steps {
		if err := validateStep(&f.Steps[i]); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i+1, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func validateStep(st *ScriptStep) error {
	switch st.Action {
	case "motion", "press", "release", "click", "axis", "wait", "mark":
	case "key":
		if _, err := ParseModifiers(st.Modifiers); err != nil {
			return err
		}
	case "drag", "move":
		if _, ok := EaseByName(st.Ease); !ok {
			return fmt.Errorf("unknown ease %q", st.Ease)
		}
		if st.Action == "move" && st.Target == "" {
			return fmt.Errorf("move without target")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, err := ParseButton(st.Button); err != nil {
		return err
	}
	return nil
}

// Steps returns the parsed steps. The returned slice MUST NOT be mutated.
func (s *Script) Steps() []ScriptStep {
	return s.steps
}

// Done reports whether all steps have been executed and drained.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame against r.
func (s *Script) Step(r *Root) error {
	if s.done {
		return nil
	}
	// Wait for pending injections to drain before advancing.
	if r.Pending() > 0 {
		r.Step()
		return nil
	}
	if s.updateTweens() {
		return nil
	}
	// Count down wait frames.
	if s.waitCount > 0 {
		s.waitCount--
		return nil
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return nil
	}

	st := s.steps[s.cursor]
	s.cursor++
	if err := s.issue(r, &st); err != nil {
		return err
	}

	// Check if we've reached the end after executing.
	if s.cursor >= len(s.steps) && s.waitCount == 0 && r.Pending() == 0 && len(s.tweens) == 0 {
		s.done = true
	}
	return nil
}

// Run steps the script until done or until maxFrames frames have passed.
func (s *Script) Run(r *Root, maxFrames int) error {
	for i := 0; !s.done; i++ {
		if maxFrames > 0 && i >= maxFrames {
			return fmt.Errorf("script not done after %d frames", maxFrames)
		}
		if err := s.Step(r); err != nil {
			return err
		}
	}
	return nil
}

// updateTweens advances running tweens by one frame and reports whether any
// is still running.
func (s *Script) updateTweens() bool {
	if len(s.tweens) == 0 {
		return false
	}
	live := s.tweens[:0]
	for _, t := range s.tweens {
		t.Update(1)
		if !t.Done {
			live = append(live, t)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
	return len(live) > 0
}

func (s *Script) issue(r *Root, st *ScriptStep) error {
	button, err := ParseButton(st.Button)
	if err != nil {
		return fmt.Errorf("step %d: %w", s.cursor, err)
	}
	fn, ok := EaseByName(st.Ease)
	if !ok && (st.Action == "drag" || st.Action == "move") {
		return fmt.Errorf("step %d: unknown ease %q", s.cursor, st.Ease)
	}

	switch st.Action {
	case "motion":
		r.InjectMotion(st.X, st.Y)
	case "press":
		r.InjectPress(st.X, st.Y, button)
	case "release":
		r.InjectRelease(st.X, st.Y, button)
	case "click":
		r.InjectPress(st.X, st.Y, button)
		r.InjectRelease(st.X, st.Y, button)
	case "drag":
		r.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2), fn)
	case "axis":
		ev := AxisEvent{Delta: st.Delta, DeltaDiscrete: int(st.Delta)}
		if st.Horizontal {
			ev.Orientation = AxisHorizontal
		}
		r.InjectAxis(ev)
	case "key":
		mods, err := ParseModifiers(st.Modifiers)
		if err != nil {
			return fmt.Errorf("step %d: %w", s.cursor, err)
		}
		r.InjectKey(KeyEvent{Keycode: st.Keycode, Pressed: true, Modifiers: mods})
		r.InjectKey(KeyEvent{Keycode: st.Keycode, Pressed: false, Modifiers: mods})
	case "move":
		e := r.Find(st.Target)
		if e == nil {
			return fmt.Errorf("move %q: %w", st.Target, ErrScriptTarget)
		}
		t := TweenPosition(e, int(st.ToX), int(st.ToY), float32(max(st.Frames, 1)), fn)
		s.tweens = append(s.tweens, t)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mark":
		if s.OnMark != nil {
			s.OnMark(st.Label)
		}
	default:
		return fmt.Errorf("step %d: unknown action %q", s.cursor, st.Action)
	}
	return nil
}

// ParseButton maps a script button name to a MouseButton. The empty name
// selects the left button.
func ParseButton(name string) (MouseButton, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "back":
		return MouseButtonBack, nil
	case "forward":
		return MouseButtonForward, nil
	default:
		return 0, fmt.Errorf("unknown button %q", name)
	}
}

// ParseModifiers maps modifier names (shift, ctrl, alt, meta) to a mask.
func ParseModifiers(names []string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, n := range names {
		switch strings.ToLower(n) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "meta", "logo", "super":
			mods |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return mods, nil
}
