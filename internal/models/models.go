package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// JSONValue is a closed sum type over the six JSON kinds.
// The only implementations are JSONNull, JSONBool, JSONNumber, JSONString,
// JSONArray and *JSONObject; switch on them with a type switch.
type JSONValue interface {
	json.Marshaler
	jsonValue()
}

// JSONNull is the JSON literal null.
type JSONNull struct{}

// JSONBool is a JSON boolean.
type JSONBool bool

// JSONNumber keeps the literal text of a JSON number, like json.Number.
type JSONNumber string

// JSONString is a JSON string.
type JSONString string

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONObject represents a JSON object whose members keep their document order.
type JSONObject struct {
	keys   []string
	fields map[string]JSONValue
}

func (JSONNull) jsonValue()    {}
func (JSONBool) jsonValue()    {}
func (JSONNumber) jsonValue()  {}
func (JSONString) jsonValue()  {}
func (JSONArray) jsonValue()   {}
func (*JSONObject) jsonValue() {}

// Class is the three-way classification used by the resolver and renderer.
type Class int

const (
	ClassPrimitive Class = iota
	ClassArray
	ClassObject
)

func (c Class) String() string {
	switch c {
	case ClassArray:
		return "array"
	case ClassObject:
		return "object"
	default:
		return "primitive"
	}
}

// Classify reports whether v is an object, an array or a primitive.
// A nil interface classifies as primitive.
func Classify(v JSONValue) Class {
	switch v.(type) {
	case JSONArray:
		return ClassArray
	case *JSONObject:
		return ClassObject
	default:
		return ClassPrimitive
	}
}

// NewJSONObject returns an empty ordered object.
func NewJSONObject() *JSONObject {
	return &JSONObject{fields: make(map[string]JSONValue)}
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (o *JSONObject) Set(key string, value JSONValue) {
	if o.fields == nil {
		o.fields = make(map[string]JSONValue)
	}
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = value
}

// Get returns the value stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Keys returns the member names in document order.
func (o *JSONObject) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of members.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// String returns the natural textual form of the number: integers without a
// fraction, short decimals as written, and exponent form for very large or
// very small magnitudes.
func (n JSONNumber) String() string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return string(n)
	}
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float64 returns the number as a float64.
func (n JSONNumber) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (JSONNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (b JSONBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (n JSONNumber) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

func (s JSONString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (a JSONArray) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := marshalValue(elem)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON writes the members in document order.
func (o *JSONObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		data, err := marshalValue(o.fields[key])
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v JSONValue) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return v.MarshalJSON()
}

// Equal reports whether a and b are structurally equal. Object member order
// is not significant; numbers compare by numeric value.
func Equal(a, b JSONValue) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case JSONNull:
		_, ok := b.(JSONNull)
		return ok
	case JSONBool:
		bv, ok := b.(JSONBool)
		return ok && av == bv
	case JSONString:
		bv, ok := b.(JSONString)
		return ok && av == bv
	case JSONNumber:
		bv, ok := b.(JSONNumber)
		if !ok {
			return false
		}
		af, aerr := av.Float64()
		bf, berr := bv.Float64()
		if aerr != nil || berr != nil {
			return av == bv
		}
		return af == bf
	case JSONArray:
		bv, ok := b.(JSONArray)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *JSONObject:
		bv, ok := b.(*JSONObject)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.keys {
			other, exists := bv.Get(key)
			if !exists || !Equal(av.fields[key], other) {
				return false
			}
		}
		return true
	}
	return false
}

// ToInterface converts v into plain Go values (map[string]any, []any,
// json.Number, string, bool, nil) for libraries that walk encoding/json output.
func ToInterface(v JSONValue) any {
	switch tv := v.(type) {
	case JSONBool:
		return bool(tv)
	case JSONNumber:
		return json.Number(tv)
	case JSONString:
		return string(tv)
	case JSONArray:
		out := make([]any, len(tv))
		for i, elem := range tv {
			out[i] = ToInterface(elem)
		}
		return out
	case *JSONObject:
		out := make(map[string]any, tv.Len())
		for _, key := range tv.keys {
			out[key] = ToInterface(tv.fields[key])
		}
		return out
	default:
		return nil
	}
}

// IntermediateRepresentation holds a parsed document.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}
