// Package render styles terminal output. Styles degrade to plain text when
// the writer is not a terminal or NO_COLOR is set.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorAccent = ac("25", "75")
	colorMuted  = ac("240", "245")
	colorWarn   = ac("160", "203")
)

// Styles renders output for one writer.
type Styles struct {
	heading lipgloss.Style
	name    lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
}

// New builds styles for w. A nil *Styles renders plain text.
func New(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	if termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		heading: r.NewStyle().Bold(true),
		name:    r.NewStyle().Bold(true).Foreground(colorAccent),
		muted:   r.NewStyle().Foreground(colorMuted),
		warn:    r.NewStyle().Foreground(colorWarn),
	}
}

func (s *Styles) Heading(text string) string {
	if s == nil {
		return text
	}
	return s.heading.Render(text)
}

func (s *Styles) ListName(text string) string {
	if s == nil {
		return text
	}
	return s.name.Render(text)
}

func (s *Styles) Muted(text string) string {
	if s == nil {
		return text
	}
	return s.muted.Render(text)
}

func (s *Styles) Warn(text string) string {
	if s == nil {
		return text
	}
	return s.warn.Render(text)
}

// Truncate shortens text to width display cells, marking the cut with "…".
func Truncate(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
