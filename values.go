package jsonschema

import (
	"math/big"

	"github.com/go-faster/errors"

	"github.com/jsonschema-go/core/value"
)

// objectMap materializes inst's members into a map plus their declaration
// order, so object keywords (required, properties, dependentRequired...)
// can do repeated lookups without re-iterating the decoder.
func objectMap(inst value.Value) (map[string]value.Value, []string, error) {
	m := map[string]value.Value{}
	var order []string
	err := inst.Object(func(key string, v value.Value) error {
		m[key] = v
		order = append(order, key)
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "read object")
	}
	return m, order, nil
}

// arraySlice materializes inst's elements.
func arraySlice(inst value.Value) ([]value.Value, error) {
	var out []value.Value
	err := inst.Array(func(v value.Value) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "read array")
	}
	return out, nil
}

func isInteger(v value.Value) bool {
	if v.Type() != value.Number {
		return false
	}
	r := v.Number()
	return r.IsInt()
}

// stringValue adapts a bare Go string (a property name, used by
// "propertyNames") into a value.Value so it can be validated by a
// compiled Schema like any other instance.
type stringValue string

func (s stringValue) Type() value.Kind                              { return value.String }
func (s stringValue) Bool() bool                                    { return false }
func (s stringValue) Number() *big.Rat                              { return new(big.Rat) }
func (s stringValue) Str() string                                   { return string(s) }
func (s stringValue) Array(func(value.Value) error) error           { return errors.New("not an array") }
func (s stringValue) Object(func(string, value.Value) error) error { return errors.New("not an object") }
