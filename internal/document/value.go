package document

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a node of a materialized document.
// The interface is sealed: only the types in this package implement it.
type Value interface {
	Kind() Kind
	sealed()
}

// Object maps entry names to values. Directories materialize to objects.
type Object map[string]Value

// Array is an ordered list of values.
type Array []Value

// String is a JSON string.
type String string

// Number holds the decimal literal of a JSON number so integer precision survives.
type Number string

// Bool is a JSON boolean.
type Bool bool

// Null is the JSON null. Non-YAML files materialize to Null.
type Null struct{}

func (Object) Kind() Kind { return KindObject }
func (Array) Kind() Kind  { return KindArray }
func (String) Kind() Kind { return KindString }
func (Number) Kind() Kind { return KindNumber }
func (Bool) Kind() Kind   { return KindBool }
func (Null) Kind() Kind   { return KindNull }

func (Object) sealed() {}
func (Array) sealed()  {}
func (String) sealed() {}
func (Number) sealed() {}
func (Bool) sealed()   {}
func (Null) sealed()   {}

// MarshalJSON writes the number literal verbatim.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// MarshalJSON writes null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Int returns a Number for an integer.
func Int(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// Raw converts v into the plain Go representation used by encoding/json
// decoders configured with UseNumber: map[string]any, []any, string,
// json.Number, bool and nil.
func Raw(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case Number:
		return json.Number(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Raw(item)
		}
		return out
	case Object:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Raw(item)
		}
		return out
	}
	return nil
}

// Truthy reports whether v is non-empty: null, false, zero, the empty string
// and empty collections are falsy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(t)
	case Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return err != nil || f != 0
	case String:
		return t != ""
	case Array:
		return len(t) > 0
	case Object:
		return len(t) > 0
	}
	return false
}
