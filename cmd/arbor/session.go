package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/scene"
)

// session is a tree built from a script file, plus the script's steps.
type session struct {
	tree     *scene.Tree
	root     *arbor.Root
	script   *arbor.Script // nil when the file declares no steps
	trace    *tracer
	elements map[string]*arbor.Element
}

// newSession builds the declared tree and loads the steps of data.
func newSession(data []byte, cfg *config.Config) (*session, error) {
	decls, err := loadLayout(data)
	if err != nil {
		return nil, err
	}
	script, err := arbor.LoadScript(data)
	if err != nil && !errors.Is(err, arbor.ErrNoSteps) {
		return nil, err
	}

	s := &session{
		tree:   scene.NewRoot(),
		script: script,
		trace:  &tracer{},
	}
	s.root = arbor.NewRoot(s.tree, cfg.RootConfig())
	s.root.OnUnclaimedButton(func(ev arbor.ButtonEvent) {
		s.trace.add(traceUnclaimed, "root", fmt.Sprintf("%s %s", ev.Button, ev.Phase))
	})
	if s.script != nil {
		s.script.OnMark = func(label string) {
			s.trace.add(traceMark, label, "")
		}
	}
	s.elements = buildTree(s.root, decls, s.trace)
	return s, nil
}

// step advances the script by one frame. Returns true when the script is
// finished or absent.
func (s *session) step() (bool, error) {
	if s.script == nil {
		return true, nil
	}
	s.trace.frame++
	if err := s.script.Step(s.root); err != nil {
		return true, err
	}
	return s.script.Done(), nil
}

// run steps the script to completion.
func (s *session) run(maxFrames int) error {
	for i := 0; ; i++ {
		if maxFrames > 0 && i >= maxFrames {
			return fmt.Errorf("script not done after %d frames", maxFrames)
		}
		done, err := s.step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// focusChains describes where pointer, grab and keyboard focus currently
// point, as paths from the root.
func (s *session) focusChains() []string {
	return []string{
		"pointer:  " + chain(&s.root.Container, (*arbor.Container).PointerFocus),
		"grab:     " + chain(&s.root.Container, (*arbor.Container).PointerGrabHolder),
		"keyboard: " + chain(&s.root.Container, (*arbor.Container).KeyboardFocus),
	}
}

// chain follows slot from c downwards and joins the element names.
func chain(c *arbor.Container, slot func(*arbor.Container) *arbor.Element) string {
	var names []string
	for c != nil {
		e := slot(c)
		if e == nil {
			break
		}
		names = append(names, e.Name)
		c = e.AsContainer()
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " > ")
}

func (s *session) close() {
	s.root.Destroy()
	s.tree.Node().Destroy()
}
