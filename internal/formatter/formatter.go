package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/pretty"

	"github.com/mcncl/jsonexplorer/internal/models"
)

// Format selects how a resolved value is written out.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// undefined is shown for a resolved value that is an object or array.
const undefined = "undefined"

// Formatter turns resolved values into output text.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format writes value in the requested format. A failed resolution (err != nil)
// always produces empty output.
func (f *Formatter) Format(value models.JSONValue, err error, format Format) (string, error) {
	if err != nil || value == nil {
		return "", nil
	}

	switch format {
	case "", FormatText:
		return Display(value, nil), nil
	case FormatJSON:
		return f.JSON(value)
	case FormatYAML:
		return f.YAML(value)
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// JSON returns value as indented JSON, members in document order.
func (f *Formatter) JSON(value models.JSONValue) (string, error) {
	data, err := value.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return strings.TrimSpace(string(pretty.Pretty(data))), nil
}

// YAML returns value as YAML, members in document order.
func (f *Formatter) YAML(value models.JSONValue) (string, error) {
	data, err := yaml.Marshal(toYAML(value))
	if err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func toYAML(value models.JSONValue) any {
	switch v := value.(type) {
	case models.JSONBool:
		return bool(v)
	case models.JSONNumber:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return i
		}
		if fl, err := v.Float64(); err == nil {
			return fl
		}
		return string(v)
	case models.JSONString:
		return string(v)
	case models.JSONArray:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = toYAML(elem)
		}
		return out
	case *models.JSONObject:
		out := make(yaml.MapSlice, 0, v.Len())
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			out = append(out, yaml.MapItem{Key: key, Value: toYAML(child)})
		}
		return out
	default:
		return nil
	}
}

// Display is the text shown for the value at the current path: empty when
// nothing was found, the bare primitive otherwise, and "undefined" for
// objects and arrays.
func Display(value models.JSONValue, err error) string {
	if err != nil || value == nil {
		return ""
	}

	switch v := value.(type) {
	case models.JSONString:
		return string(v)
	case models.JSONArray, *models.JSONObject:
		return undefined
	default:
		return Literal(v)
	}
}

// Literal is the tree form of a primitive. Strings are single-quoted.
func Literal(value models.JSONValue) string {
	switch v := value.(type) {
	case models.JSONNull:
		return "null"
	case models.JSONBool:
		return strconv.FormatBool(bool(v))
	case models.JSONNumber:
		return v.String()
	case models.JSONString:
		return "'" + string(v) + "'"
	case nil:
		return ""
	default:
		return undefined
	}
}
