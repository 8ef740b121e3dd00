// Package jxvalue implements value.Value on top of github.com/go-faster/jx,
// the teacher's JSON decoder, so the evaluator can walk instance and schema
// documents without allocating an intermediate map[string]interface{} tree.
package jxvalue

import (
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/jsonschema-go/core/internal/jsonequal"
	"github.com/jsonschema-go/core/value"
)

var _ value.Value = Value{}

// Value is a value.Value backed by a raw JSON slice.
type Value struct {
	Raw jx.Raw
}

// Parse decodes data as a single JSON value.
func Parse(data []byte) (Value, error) {
	raw, err := jx.DecodeBytes(data).Raw()
	if err != nil {
		return Value{}, errors.Wrap(err, "parse JSON")
	}
	return Value{Raw: raw}, nil
}

// Type implements value.Value.
func (v Value) Type() value.Kind {
	switch v.Raw.Type() {
	case jx.Null:
		return value.Null
	case jx.Bool:
		return value.Bool
	case jx.Number:
		return value.Number
	case jx.String:
		return value.String
	case jx.Array:
		return value.Array
	case jx.Object:
		return value.Object
	default:
		return value.Invalid
	}
}

func (v Value) dec() *jx.Decoder {
	return jx.DecodeBytes(v.Raw)
}

// Bool implements value.Value.
func (v Value) Bool() bool {
	return errors.Must(v.dec().Bool())
}

// Number implements value.Value.
func (v Value) Number() *big.Rat {
	n := errors.Must(v.dec().Num())
	rat := new(big.Rat)
	if err := rat.UnmarshalText(n); err != nil {
		panic(err)
	}
	return rat
}

// Str implements value.Value.
func (v Value) Str() string {
	return errors.Must(v.dec().Str())
}

// Array implements value.Value.
func (v Value) Array(cb func(value.Value) error) error {
	dec := v.dec()
	iter, err := dec.ArrIter()
	if err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	for iter.Next() {
		raw, err := dec.Raw()
		if err != nil {
			return errors.Wrap(err, "parse JSON")
		}
		if err := cb(Value{Raw: raw}); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Object implements value.Value.
func (v Value) Object(cb func(key string, v value.Value) error) error {
	dec := v.dec()
	iter, err := dec.ObjIter()
	if err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	for iter.Next() {
		key := string(iter.Key())
		raw, err := dec.Raw()
		if err != nil {
			return errors.Wrap(err, "parse JSON")
		}
		if err := cb(key, Value{Raw: raw}); err != nil {
			return err
		}
	}
	return iter.Err()
}

var _ value.Comparator = Comparator{}

// Comparator compares jxvalue.Value instances for deep JSON equality.
type Comparator struct{}

// Equal implements value.Comparator.
func (c Comparator) Equal(a, b value.Value) (bool, error) {
	av, ok := a.(Value)
	if !ok {
		return false, errors.Errorf("jxvalue.Comparator: unexpected value type %T", a)
	}
	bv, ok := b.(Value)
	if !ok {
		return false, errors.Errorf("jxvalue.Comparator: unexpected value type %T", b)
	}
	return jsonequal.Equal(av.Raw, bv.Raw)
}
