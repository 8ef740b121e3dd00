// Package yamlvalue implements value.Value on top of
// github.com/go-faster/yaml, so a compiled schema can validate a
// YAML-authored instance without a JSON round trip. Schema documents
// themselves are read as JSON only.
package yamlvalue

import (
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/yaml"

	"github.com/jsonschema-go/core/value"
)

var _ value.Value = Value{}

// Value is a value.Value backed by a YAML node.
type Value struct {
	Node *yaml.Node
}

// Parse decodes data as a single YAML document.
func Parse(data []byte) (Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return Value{}, errors.Wrap(err, "parse YAML")
	}
	return Value{Node: &n}, nil
}

func resolveNode(n *yaml.Node) (_ *yaml.Node, reason string) {
	if n == nil {
		return nil, "node is nil"
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, "document node content is empty"
		}
		return resolveNode(n.Content[0])
	case yaml.AliasNode:
		return resolveNode(n.Alias)
	case yaml.MappingNode:
		if len(n.Content)%2 != 0 {
			return nil, "mapping node content length is not even"
		}
		fallthrough
	default:
		return n, ""
	}
}

func parseRat(s string) (*big.Rat, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Errorf("cannot parse %q as number", s)
	}
	return rat, nil
}

// Type implements value.Value.
func (v Value) Type() value.Kind {
	n, _ := resolveNode(v.Node)
	if n == nil {
		return value.Invalid
	}
	switch n.Kind {
	case yaml.MappingNode:
		return value.Object
	case yaml.SequenceNode:
		return value.Array
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return value.Null
		case "!!bool":
			return value.Bool
		case "!!int", "!!float":
			return value.Number
		default:
			return value.String
		}
	default:
		return value.Invalid
	}
}

func (v Value) node() *yaml.Node {
	n, _ := resolveNode(v.Node)
	return n
}

// Bool implements value.Value.
func (v Value) Bool() bool {
	var b bool
	if err := v.node().Decode(&b); err != nil {
		panic(err)
	}
	return b
}

// Number implements value.Value.
func (v Value) Number() *big.Rat {
	rat, err := parseRat(v.node().Value)
	if err != nil {
		panic(err)
	}
	return rat
}

// Str implements value.Value.
func (v Value) Str() string {
	return v.node().Value
}

// Array implements value.Value.
func (v Value) Array(cb func(value.Value) error) error {
	n, reason := resolveNode(v.Node)
	if n == nil {
		return errors.Errorf("node is invalid: %s", reason)
	}
	for _, item := range n.Content {
		if err := cb(Value{Node: item}); err != nil {
			return err
		}
	}
	return nil
}

// Object implements value.Value.
func (v Value) Object(cb func(key string, v value.Value) error) error {
	n, reason := resolveNode(v.Node)
	if n == nil {
		return errors.Errorf("node is invalid: %s", reason)
	}
	content := n.Content
	for i := 0; i < len(content); i += 2 {
		key, val := content[i], content[i+1]
		if err := cb(key.Value, Value{Node: val}); err != nil {
			return err
		}
	}
	return nil
}

var _ value.Comparator = Comparator{}

// Comparator compares yamlvalue.Value instances for deep equality.
type Comparator struct{}

// Equal implements value.Comparator.
func (c Comparator) Equal(a, b value.Value) (bool, error) {
	av, ok := a.(Value)
	if !ok {
		return false, errors.Errorf("yamlvalue.Comparator: unexpected value type %T", a)
	}
	bv, ok := b.(Value)
	if !ok {
		return false, errors.Errorf("yamlvalue.Comparator: unexpected value type %T", b)
	}
	return yamlEqual(av.Node, bv.Node)
}

func yamlEqual(a, b *yaml.Node) (bool, error) {
	a, reason := resolveNode(a)
	if reason != "" {
		return false, errors.Errorf("left node is invalid: %s", reason)
	}
	b, reason = resolveNode(b)
	if reason != "" {
		return false, errors.Errorf("right node is invalid: %s", reason)
	}

	switch {
	case a == b:
		return true, nil
	case a.Kind != b.Kind:
		return false, nil
	}

	switch a.Kind {
	case yaml.ScalarNode:
		if a.Value == b.Value && a.Tag == b.Tag {
			return true, nil
		}
		switch a.Tag {
		case "!!int", "!!float":
			switch b.Tag {
			case "!!int", "!!float":
			default:
				return false, nil
			}
			aRat, err := parseRat(a.Value)
			if err != nil {
				return false, errors.Wrap(err, "parse left number")
			}
			bRat, err := parseRat(b.Value)
			if err != nil {
				return false, errors.Wrap(err, "parse right number")
			}
			return aRat.Cmp(bRat) == 0, nil
		default:
			return false, nil
		}
	case yaml.SequenceNode:
		if len(a.Content) != len(b.Content) {
			return false, nil
		}
		for i := range a.Content {
			eq, err := yamlEqual(a.Content[i], b.Content[i])
			if err != nil {
				return false, errors.Wrapf(err, "compare [%d]", i)
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case yaml.MappingNode:
		if len(a.Content) != len(b.Content) {
			return false, nil
		}
		amap := make(map[string]*yaml.Node, len(a.Content)/2)
		for i := 0; i < len(a.Content); i += 2 {
			amap[a.Content[i].Value] = a.Content[i+1]
		}
		for i := 0; i < len(b.Content); i += 2 {
			bkey, bval := b.Content[i], b.Content[i+1]
			aval, ok := amap[bkey.Value]
			if !ok {
				return false, nil
			}
			eq, err := yamlEqual(aval, bval)
			if err != nil {
				return false, errors.Wrapf(err, "compare %q", bkey.Value)
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, errors.Errorf("unexpected node kind: %v", a.Kind)
	}
}
