package renderer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jsonexplorer/internal/models"
)

// Styles colours the parts of a rendered line for terminal output.
type Styles struct {
	Punct    lipgloss.Style
	Key      lipgloss.Style
	Target   lipgloss.Style
	Selected lipgloss.Style
	String   lipgloss.Style
	Number   lipgloss.Style
	Literal  lipgloss.Style
}

// Palette holds the colours Styles are built from.
type Palette struct {
	Key      string
	Target   string
	Selected string
	String   string
	Number   string
	Literal  string
	Muted    string
}

// NewStyles builds Styles from a palette. Empty colours leave text unstyled.
func NewStyles(p Palette) Styles {
	fg := func(color string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if color != "" {
			s = s.Foreground(lipgloss.Color(color))
		}
		return s
	}

	return Styles{
		Punct:    fg(p.Muted),
		Key:      fg(p.Key),
		Target:   fg(p.Target).Underline(true),
		Selected: fg(p.Selected).Bold(true).Reverse(true),
		String:   fg(p.String),
		Number:   fg(p.Number),
		Literal:  fg(p.Literal),
	}
}

// Line renders l with styles applied. The target whose path equals
// selected is drawn with the Selected style.
func (s Styles) Line(l Line, selected string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.Indent))
	for _, span := range l.Spans {
		b.WriteString(s.span(span, selected))
	}
	return b.String()
}

// Text renders all lines joined with newlines.
func (s Styles) Text(lines []Line, selected string) string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = s.Line(l, selected)
	}
	return strings.Join(rows, "\n")
}

func (s Styles) span(span Span, selected string) string {
	switch span.Kind {
	case SpanTarget:
		if selected != "" && span.Path == selected {
			return s.Selected.Render(span.Text)
		}
		return s.Target.Render(span.Text)
	case SpanKey:
		return s.Key.Render(span.Text)
	case SpanValue:
		switch span.Value.(type) {
		case models.JSONString:
			return s.String.Render(span.Text)
		case models.JSONNumber:
			return s.Number.Render(span.Text)
		default:
			return s.Literal.Render(span.Text)
		}
	default:
		return s.Punct.Render(span.Text)
	}
}
