// Package jsonequal implements JSON Schema deep-equality semantics over raw
// JSON bytes: numbers compared by mathematical value, objects equal iff
// same key set and pairwise-equal values, arrays equal iff same length and
// pairwise-equal elements.
package jsonequal

import (
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Equal reports whether a and b are JSON-Schema-equal.
func Equal(a, b jx.Raw) (bool, error) {
	da, db := jx.DecodeBytes(a), jx.DecodeBytes(b)
	ta, tb := da.Next(), db.Next()
	if ta != tb {
		// number/integer distinction does not affect JSON value equality.
		return false, nil
	}

	switch ta {
	case jx.Null:
		return true, nil
	case jx.Bool:
		va, err := da.Bool()
		if err != nil {
			return false, errors.Wrap(err, "left bool")
		}
		vb, err := db.Bool()
		if err != nil {
			return false, errors.Wrap(err, "right bool")
		}
		return va == vb, nil
	case jx.Number:
		na, err := da.Num()
		if err != nil {
			return false, errors.Wrap(err, "left number")
		}
		nb, err := db.Num()
		if err != nil {
			return false, errors.Wrap(err, "right number")
		}
		ra, rb := new(big.Rat), new(big.Rat)
		if err := ra.UnmarshalText(na); err != nil {
			return false, errors.Wrap(err, "parse left number")
		}
		if err := rb.UnmarshalText(nb); err != nil {
			return false, errors.Wrap(err, "parse right number")
		}
		return ra.Cmp(rb) == 0, nil
	case jx.String:
		sa, err := da.Str()
		if err != nil {
			return false, errors.Wrap(err, "left string")
		}
		sb, err := db.Str()
		if err != nil {
			return false, errors.Wrap(err, "right string")
		}
		return sa == sb, nil
	case jx.Array:
		var elems []jx.Raw
		if err := da.Arr(func(d *jx.Decoder) error {
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			elems = append(elems, raw)
			return nil
		}); err != nil {
			return false, errors.Wrap(err, "left array")
		}
		i := 0
		eq := true
		if err := db.Arr(func(d *jx.Decoder) error {
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			if i >= len(elems) {
				eq = false
				i++
				return nil
			}
			ok, err := Equal(elems[i], raw)
			if err != nil {
				return err
			}
			eq = eq && ok
			i++
			return nil
		}); err != nil {
			return false, errors.Wrap(err, "right array")
		}
		return eq && i == len(elems), nil
	case jx.Object:
		amap := map[string]jx.Raw{}
		if err := da.Obj(func(d *jx.Decoder, key string) error {
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			amap[key] = raw
			return nil
		}); err != nil {
			return false, errors.Wrap(err, "left object")
		}
		count := 0
		eq := true
		if err := db.Obj(func(d *jx.Decoder, key string) error {
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			count++
			av, ok := amap[key]
			if !ok {
				eq = false
				return nil
			}
			ok, err = Equal(av, raw)
			if err != nil {
				return err
			}
			eq = eq && ok
			return nil
		}); err != nil {
			return false, errors.Wrap(err, "right object")
		}
		return eq && count == len(amap), nil
	default:
		return false, errors.Errorf("unexpected type %q", ta)
	}
}
