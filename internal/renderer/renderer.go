// Package renderer lays a JSON document out as an indented, bracket-delimited
// tree. Every key whose value is a primitive becomes an activation target
// carrying the full path to that key.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jsonexplorer/internal/formatter"
	"github.com/mcncl/jsonexplorer/internal/models"
)

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = 4

// SpanKind tells what a piece of a line represents.
type SpanKind int

const (
	SpanPunct  SpanKind = iota // brackets, ": " and ","
	SpanKey                    // inert key (its value is a container)
	SpanTarget                 // key that can be activated
	SpanValue                  // primitive literal
)

// Span is one piece of a rendered line.
type Span struct {
	Kind SpanKind
	Text string
	// Path and Value are set for SpanTarget and SpanValue.
	Path  string
	Value models.JSONValue
}

// Line is a single row of the tree.
type Line struct {
	Indent int
	Spans  []Span
}

func (l Line) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.Indent))
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Target is an activation target located in the rendered output.
type Target struct {
	Key    string
	Path   string
	Value  models.JSONValue
	Line   int // index into the rendered lines
	Column int // cell offset of the key within Line.String()
}

// Renderer renders documents with a fixed indent width.
type Renderer struct {
	indentWidth int
}

// NewRenderer returns a Renderer. A non-positive width uses DefaultIndentWidth.
func NewRenderer(indentWidth int) *Renderer {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	return &Renderer{indentWidth: indentWidth}
}

// Render lays out document. The root object omits its own braces.
func (r *Renderer) Render(document models.JSONValue) []Line {
	if document == nil {
		return nil
	}

	b := &builder{width: r.indentWidth}
	b.newLine(0)
	b.render(document, 0, "")

	lines := make([]Line, 0, len(b.lines))
	for _, l := range b.lines {
		if len(l.Spans) == 0 {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

type builder struct {
	width int
	lines []Line
}

func (b *builder) newLine(indent int) {
	b.lines = append(b.lines, Line{Indent: indent})
}

func (b *builder) add(span Span) {
	last := &b.lines[len(b.lines)-1]
	last.Spans = append(last.Spans, span)
}

func (b *builder) punct(text string) {
	b.add(Span{Kind: SpanPunct, Text: text})
}

// closingIndent is one level less than the children, never negative.
func (b *builder) closingIndent(level int) int {
	if level <= 0 {
		return 0
	}
	return (level - 1) * b.width
}

func (b *builder) render(value models.JSONValue, level int, path string) {
	switch v := value.(type) {
	case models.JSONArray:
		b.punct("[")
		for i, elem := range v {
			b.newLine(level * b.width)
			b.render(elem, level+1, fmt.Sprintf("%s[%d]", path, i))
			b.punct(",")
		}
		b.newLine(b.closingIndent(level))
		b.punct("]")
	case *models.JSONObject:
		root := level == 0
		if !root && v.Len() == 0 {
			b.punct("{}")
			return
		}
		if !root {
			b.punct("{")
		}
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}

			b.newLine(level * b.width)
			if models.Classify(child) == models.ClassPrimitive {
				b.add(Span{Kind: SpanTarget, Text: key, Path: childPath, Value: child})
			} else {
				b.add(Span{Kind: SpanKey, Text: key})
			}
			b.punct(": ")
			b.render(child, level+1, childPath)
			b.punct(",")
		}
		b.newLine(b.closingIndent(level))
		if !root {
			b.punct("}")
		}
	default:
		b.add(Span{Kind: SpanValue, Text: formatter.Literal(v), Path: path, Value: v})
	}
}

// Targets lists the activation targets of lines in display order.
func Targets(lines []Line) []Target {
	var targets []Target
	for i, l := range lines {
		column := l.Indent
		for _, s := range l.Spans {
			if s.Kind == SpanTarget {
				targets = append(targets, Target{
					Key:    s.Text,
					Path:   s.Path,
					Value:  s.Value,
					Line:   i,
					Column: column,
				})
			}
			column += lipgloss.Width(s.Text)
		}
	}
	return targets
}

// Text joins lines with newlines.
func Text(lines []Line) string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}
