package renderer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonexplorer/internal/models"
	"github.com/mcncl/jsonexplorer/internal/parser"
	"github.com/mcncl/jsonexplorer/internal/resolver"
)

func mustParse(t *testing.T, jsonStr string) models.JSONValue {
	t.Helper()
	ir, err := parser.ParseString(jsonStr)
	require.NoError(t, err)
	return ir.Root
}

func lines(s ...string) string {
	return strings.Join(s, "\n")
}

func TestRender_Layout(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{
			name: "object with array",
			json: `{"x": [10, 20], "y": "z"}`,
			expected: lines(
				"x: [",
				"    10,",
				"    20,",
				"],",
				"y: 'z',",
			),
		},
		{
			name: "nested object",
			json: `{"a": {"b": 1}}`,
			expected: lines(
				"a: {",
				"    b: 1,",
				"},",
			),
		},
		{
			name: "object inside array",
			json: `{"a": [{"b": 1, "c": null}]}`,
			expected: lines(
				"a: [",
				"    {",
				"        b: 1,",
				"        c: null,",
				"    },",
				"],",
			),
		},
		{
			name: "root array",
			json: `[1, {"k": "v"}, true]`,
			expected: lines(
				"[",
				"1,",
				"{",
				"    k: 'v',",
				"},",
				"true,",
				"]",
			),
		},
		{
			name: "empty containers",
			json: `{"e": {}, "l": [], "n": [{}]}`,
			expected: lines(
				"e: {},",
				"l: [",
				"],",
				"n: [",
				"    {},",
				"],",
			),
		},
		{
			name:     "root primitive",
			json:     `"hi"`,
			expected: "'hi'",
		},
		{
			name:     "root empty object",
			json:     `{}`,
			expected: "",
		},
	}

	r := NewRenderer(DefaultIndentWidth)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(r.Render(mustParse(t, tt.json))))
		})
	}
}

func TestRender_IndentWidth(t *testing.T) {
	r := NewRenderer(2)
	out := Text(r.Render(mustParse(t, `{"a": {"b": [1]}}`)))
	assert.Equal(t, lines(
		"a: {",
		"  b: [",
		"    1,",
		"  ],",
		"},",
	), out)

	assert.Equal(t, DefaultIndentWidth, NewRenderer(0).indentWidth)
}

func TestRender_ContainerKeysAreInert(t *testing.T) {
	r := NewRenderer(DefaultIndentWidth)
	rendered := r.Render(mustParse(t, `{"a": {"b": 1}}`))

	require.Len(t, rendered, 3)
	assert.Equal(t, SpanKey, rendered[0].Spans[0].Kind)
	assert.Equal(t, "a", rendered[0].Spans[0].Text)
	assert.Empty(t, rendered[0].Spans[0].Path)

	targets := Targets(rendered)
	require.Len(t, targets, 1)
	assert.Equal(t, "b", targets[0].Key)
	assert.Equal(t, "a.b", targets[0].Path)
	assert.Equal(t, 1, targets[0].Line)
	assert.Equal(t, 4, targets[0].Column)
}

func TestRender_TargetPaths(t *testing.T) {
	r := NewRenderer(DefaultIndentWidth)
	doc := mustParse(t, `{"date": "d", "fields": [{"id": "4c", "tags": ["x"]}, {"id": "5d"}], "meta": {"ok": true}}`)

	var paths []string
	for _, target := range Targets(r.Render(doc)) {
		paths = append(paths, target.Path)
	}
	assert.Equal(t, []string{"date", "fields[0].id", "fields[1].id", "meta.ok"}, paths)
}

func TestRender_TargetsResolveToRenderedValue(t *testing.T) {
	docs := []string{
		`{"x": [10, 20], "y": "z"}`,
		`[{"a": 1}, [{"b": "two"}], {"c": {"d": null}}]`,
		`{"date": "2021-10-27T07:49:14.896Z", "hasError": false, "fields": [{"id": "4c212130", "prop": "iban", "value": "DE81200505501265402568", "hasError": false}]}`,
		`{"1": {"2": [false, {"3": 3.5}]}}`,
		`{"a": {"": 1}}`,
		`{"a": [{"": true}]}`,
	}

	r := NewRenderer(DefaultIndentWidth)
	for _, jsonStr := range docs {
		t.Run(jsonStr, func(t *testing.T) {
			doc := mustParse(t, jsonStr)
			targets := Targets(r.Render(doc))
			require.NotEmpty(t, targets)

			for _, target := range targets {
				got, err := resolver.Resolve(doc, target.Path)
				require.NoError(t, err, target.Path)
				assert.True(t, models.Equal(target.Value, got), "path %s: got %v want %v", target.Path, got, target.Value)
			}
		})
	}
}

func TestStyles_PlainPaletteMatchesText(t *testing.T) {
	r := NewRenderer(DefaultIndentWidth)
	rendered := r.Render(mustParse(t, `{"x": [10, 20], "y": "z", "n": {"m": null}}`))

	styles := Styles{
		Punct:    lipgloss.NewStyle(),
		Key:      lipgloss.NewStyle(),
		Target:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle(),
		String:   lipgloss.NewStyle(),
		Number:   lipgloss.NewStyle(),
		Literal:  lipgloss.NewStyle(),
	}
	assert.Equal(t, Text(rendered), styles.Text(rendered, "y"))
}
