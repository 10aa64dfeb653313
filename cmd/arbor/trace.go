package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the trace output
var (
	colorPrimary = lipgloss.Color("39")  // Bright blue
	colorSuccess = lipgloss.Color("82")  // Green
	colorWarning = lipgloss.Color("214") // Orange
	colorError   = lipgloss.Color("196") // Red
	colorInfo    = lipgloss.Color("86")  // Cyan
	colorText    = lipgloss.Color("252") // Light gray
	colorSubtle  = lipgloss.Color("241") // Medium gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	frameStyle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Width(6).
			Align(lipgloss.Right)

	elementStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	detailStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	kindStyles = map[traceKind]lipgloss.Style{
		traceEnter:     lipgloss.NewStyle().Foreground(colorSuccess),
		traceLeave:     lipgloss.NewStyle().Foreground(colorWarning),
		traceButton:    lipgloss.NewStyle().Foreground(colorPrimary),
		traceAxis:      lipgloss.NewStyle().Foreground(colorPrimary),
		traceKey:       lipgloss.NewStyle().Foreground(colorInfo),
		traceFocus:     lipgloss.NewStyle().Foreground(colorInfo),
		traceBlur:      lipgloss.NewStyle().Foreground(colorSubtle),
		traceGrab:      lipgloss.NewStyle().Foreground(colorSuccess),
		traceCancel:    lipgloss.NewStyle().Foreground(colorError),
		traceUnclaimed: lipgloss.NewStyle().Foreground(colorError),
		traceMark:      lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	}
)

type traceKind uint8

const (
	traceEnter traceKind = iota
	traceLeave
	traceButton
	traceAxis
	traceKey
	traceFocus
	traceBlur
	traceGrab
	traceCancel
	traceUnclaimed
	traceMark
)

var traceKindNames = [...]string{
	traceEnter:     "enter",
	traceLeave:     "leave",
	traceButton:    "button",
	traceAxis:      "axis",
	traceKey:       "key",
	traceFocus:     "focus",
	traceBlur:      "blur",
	traceGrab:      "grab",
	traceCancel:    "cancel",
	traceUnclaimed: "unclaimed",
	traceMark:      "mark",
}

func (k traceKind) String() string {
	if int(k) < len(traceKindNames) {
		return traceKindNames[k]
	}
	return "unknown"
}

// traceEntry is one notification observed during a replay.
type traceEntry struct {
	Frame   int
	Kind    traceKind
	Element string
	Detail  string
}

// String returns the unstyled form, used by tests and plain output.
func (e traceEntry) String() string {
	s := fmt.Sprintf("%s %s", e.Kind, e.Element)
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return s
}

// tracer collects notifications in the order they happen.
type tracer struct {
	frame   int
	entries []traceEntry

	// onEntry, when set, sees every entry as it is recorded.
	onEntry func(traceEntry)
}

func (t *tracer) add(kind traceKind, element, detail string) {
	e := traceEntry{Frame: t.frame, Kind: kind, Element: element, Detail: detail}
	t.entries = append(t.entries, e)
	if t.onEntry != nil {
		t.onEntry(e)
	}
}

// lines returns the unstyled entries.
func (t *tracer) lines() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.String()
	}
	return out
}

// render writes the trace. Styling is skipped when plain is set.
func (t *tracer) render(w io.Writer, title string, plain bool) error {
	var b strings.Builder
	if plain {
		b.WriteString(title + "\n")
		for _, e := range t.entries {
			fmt.Fprintf(&b, "%6d  %s\n", e.Frame, e)
		}
	} else {
		b.WriteString(headerStyle.Render(title) + "\n")
		for _, e := range t.entries {
			line := frameStyle.Render(fmt.Sprint(e.Frame)) + "  " +
				kindStyles[e.Kind].Render(fmt.Sprintf("%-9s", e.Kind)) + " " +
				elementStyle.Render(e.Element)
			if e.Detail != "" {
				line += " " + detailStyle.Render(e.Detail)
			}
			b.WriteString(line + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
