package resolver

import (
	"fmt"
	"strings"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"

	"github.com/mcncl/jsonexplorer/internal/errors"
	"github.com/mcncl/jsonexplorer/internal/models"
)

// JSONPath returns the RFC 9535 normalized path ("$['fields'][0]['prop']")
// of the location path resolves to in document. Segments skipped because the
// accumulator was already a primitive do not appear in the result.
func JSONPath(document models.JSONValue, path string) (string, error) {
	_, steps, err := walk(document, path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteByte('$')
	for _, s := range steps {
		if s.class == models.ClassArray {
			fmt.Fprintf(&b, "[%d]", s.index)
			continue
		}
		b.WriteString("['")
		b.WriteString(escapeName(s.key))
		b.WriteString("']")
	}

	normalized := b.String()
	if _, err := jsonpath.Parse(normalized); err != nil {
		return "", errors.NewPathError(fmt.Sprintf("generated JSONPath %s is invalid", normalized), err)
	}
	return normalized, nil
}

// Query evaluates an RFC 9535 JSONPath expression against document. The
// selected nodes are taken from document itself, so objects keep their
// member order.
func Query(document models.JSONValue, expr string) (models.JSONArray, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, errors.NewPathError(fmt.Sprintf("invalid JSONPath %s", expr), err)
	}

	located := p.SelectLocated(models.ToInterface(document))
	nodes := make(models.JSONArray, 0, len(located))
	for _, node := range located {
		value, err := locate(document, node.Path)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, value)
	}
	return nodes, nil
}

// locate follows a normalized path through document.
func locate(document models.JSONValue, path spec.NormalizedPath) (models.JSONValue, error) {
	current := document
	for _, sel := range path {
		switch s := sel.(type) {
		case spec.Name:
			obj, ok := current.(*models.JSONObject)
			if !ok {
				return nil, errors.NewPathError(fmt.Sprintf("no member %s at %s", s, path), errors.ErrPathNotFound)
			}
			if current, ok = obj.Get(string(s)); !ok {
				return nil, errors.NewPathError(fmt.Sprintf("no member %s at %s", s, path), errors.ErrPathNotFound)
			}
		case spec.Index:
			arr, ok := current.(models.JSONArray)
			if !ok || int(s) < 0 || int(s) >= len(arr) {
				return nil, errors.NewPathError(fmt.Sprintf("no element %d at %s", s, path), errors.ErrPathNotFound)
			}
			current = arr[s]
		default:
			return nil, errors.NewPathError(fmt.Sprintf("unsupported selector in %s", path), errors.ErrMalformedPathToken)
		}
	}
	return current, nil
}

// escapeName escapes a member name for a single-quoted normalized path.
func escapeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
