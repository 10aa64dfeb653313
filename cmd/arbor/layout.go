package main

import (
	_ "embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/arbor"
)

//go:embed demo.toml
var demoScript []byte

// elementDecl declares one element of a script's tree. Elements are added
// in file order, each in front of its earlier siblings.
type elementDecl struct {
	Name    string `toml:"name"`
	Parent  string `toml:"parent"` // empty: the root
	Kind    string `toml:"kind"`   // "panel" (default) or "container"
	X       int    `toml:"x"`
	Y       int    `toml:"y"`
	W       int    `toml:"w"`
	H       int    `toml:"h"`
	Color   string `toml:"color"` // #rrggbb or #rrggbbaa
	Grab    bool   `toml:"grab"`
	Focus   bool   `toml:"focus"`
	Visible *bool  `toml:"visible"`
}

type layoutFile struct {
	Elements []elementDecl `toml:"element"`
}

// palette colors panels without an explicit color.
var palette = []color.RGBA{
	{R: 0xe6, G: 0x4d, B: 0x4d, A: 0xff}, // red
	{R: 0x4d, G: 0xb3, B: 0xe6, A: 0xff}, // blue
	{R: 0x4d, G: 0xe6, B: 0x80, A: 0xff}, // green
	{R: 0xff, G: 0xb3, B: 0x33, A: 0xff}, // orange
	{R: 0xcc, G: 0x4d, B: 0xe6, A: 0xff}, // purple
}

// loadLayout parses the [[element]] tables of a script and validates names,
// parents and kinds.
func loadLayout(data []byte) ([]elementDecl, error) {
	var f layoutFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	kinds := make(map[string]string, len(f.Elements))
	for i, d := range f.Elements {
		if d.Name == "" {
			return nil, fmt.Errorf("parse layout: element %d has no name", i+1)
		}
		if _, dup := kinds[d.Name]; dup {
			return nil, fmt.Errorf("parse layout: duplicate element %q", d.Name)
		}
		switch d.Kind {
		case "", "panel":
			if d.W <= 0 || d.H <= 0 {
				return nil, fmt.Errorf("parse layout: panel %q needs a positive size", d.Name)
			}
		case "container":
		default:
			return nil, fmt.Errorf("parse layout: element %q has unknown kind %q", d.Name, d.Kind)
		}
		if d.Parent != "" {
			kind, ok := kinds[d.Parent]
			if !ok {
				return nil, fmt.Errorf("parse layout: element %q: parent %q must be declared before it", d.Name, d.Parent)
			}
			if kind != "container" {
				return nil, fmt.Errorf("parse layout: element %q: parent %q is not a container", d.Name, d.Parent)
			}
		}
		if d.Color != "" {
			if _, err := parseColor(d.Color); err != nil {
				return nil, fmt.Errorf("parse layout: element %q: %w", d.Name, err)
			}
		}
		kinds[d.Name] = d.Kind
	}
	return f.Elements, nil
}

// buildTree creates the declared elements under root. Every element reports
// pointer enter and leave to tr.
func buildTree(root *arbor.Root, decls []elementDecl, tr *tracer) map[string]*arbor.Element {
	elements := make(map[string]*arbor.Element, len(decls))
	containers := map[string]*arbor.Container{"": &root.Container}

	for i, d := range decls {
		var e *arbor.Element
		if d.Kind == "container" {
			c := arbor.NewContainer(d.Name)
			containers[d.Name] = c
			e = &c.Element
		} else {
			col := palette[i%len(palette)]
			if d.Color != "" {
				col, _ = parseColor(d.Color)
			}
			p := newPanel(d.Name, d.W, d.H, col, tr)
			p.focusable = d.Focus
			if d.Grab {
				p.setGrabbable()
			}
			e = &p.Element
		}

		name := d.Name
		e.OnPointerEnter = func(ev arbor.PointerMotionEvent) {
			tr.add(traceEnter, name, fmt.Sprintf("at %g,%g", ev.X, ev.Y))
		}
		e.OnPointerLeave = func() {
			tr.add(traceLeave, name, "")
		}

		e.SetPosition(d.X, d.Y)
		if d.Visible != nil {
			e.SetVisible(*d.Visible)
		}
		containers[d.Parent].AddFront(e)
		elements[d.Name] = e
	}
	return elements
}

// parseColor parses #rrggbb or #rrggbbaa.
func parseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
