// Package render formats target listings, dependency trees and run summaries
// for the terminal.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette
var (
	colorAction  = lipgloss.Color("#2CD7C7")
	colorGroup   = lipgloss.Color("#F4D03F")
	colorSkipped = lipgloss.Color("#7F8C8D")
	colorCyclic  = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#5C7A84")
)

// Styles holds the styles used for rendering. The zero value renders plain
// text.
type Styles struct {
	Action  lipgloss.Style
	Group   lipgloss.Style
	Skipped lipgloss.Style
	Cyclic  lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Command lipgloss.Style
	// Emoji prefixes headings and summaries with emojis.
	Emoji bool
}

// NewStyles creates styles for output written to w. When color is false the
// styles never emit escape sequences.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Action:  r.NewStyle().Foreground(colorAction).Bold(true),
		Group:   r.NewStyle().Foreground(colorGroup),
		Skipped: r.NewStyle().Foreground(colorSkipped).Strikethrough(true),
		Cyclic:  r.NewStyle().Foreground(colorCyclic).Bold(true),
		Dim:     r.NewStyle().Foreground(colorMuted).Faint(true),
		Title:   r.NewStyle().Bold(true),
		Command: r.NewStyle().Foreground(colorMuted),
	}
}

// WithEmoji returns a copy of s with emoji output toggled.
func (s Styles) WithEmoji(on bool) Styles {
	s.Emoji = on
	return s
}

func (s Styles) emoji(e string) string {
	if !s.Emoji {
		return ""
	}
	return e + "  "
}
