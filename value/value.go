// Package value defines the abstract JSON value facade the evaluator walks:
// a tagged union over null/bool/number/string/array/object with stable key
// iteration, exposed as an interface so the same keyword evaluation code
// runs over more than one concrete encoding (see value/jxvalue,
// value/yamlvalue).
package value

import "math/big"

// Kind is a JSON value's type tag.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a JSON (or JSON-equivalent) value being validated.
//
// Implementations must preserve object key insertion order during Object
// iteration, so result-tree construction and "propertyNames" style
// annotations are reproducible.
type Value interface {
	// Type reports the value's kind.
	Type() Kind
	// Bool returns the value as bool. Only valid when Type() == Bool.
	Bool() bool
	// Number returns the value as an exact rational. Only valid when
	// Type() == Number.
	Number() *big.Rat
	// Str returns the value as a string. Only valid when Type() == String.
	Str() string
	// Array calls cb for every element, in order. Only valid when
	// Type() == Array.
	Array(cb func(v Value) error) error
	// Object calls cb for every key-value pair, in insertion order. Only
	// valid when Type() == Object.
	Object(cb func(key string, v Value) error) error
}

// Comparator decides deep equality between two values of the same
// implementation, per JSON Schema equality semantics (numbers compared by
// mathematical value; objects equal iff same key set and pairwise-equal
// values; arrays equal iff same length and pairwise-equal elements).
type Comparator interface {
	Equal(a, b Value) (bool, error)
}

// Len reports the number of elements in an array or key-value pairs in an
// object. It is a convenience built on Array/Object since Value does not
// expose a direct length accessor.
func Len(v Value) (int, error) {
	n := 0
	switch v.Type() {
	case Array:
		if err := v.Array(func(Value) error { n++; return nil }); err != nil {
			return 0, err
		}
	case Object:
		if err := v.Object(func(string, Value) error { n++; return nil }); err != nil {
			return 0, err
		}
	}
	return n, nil
}
