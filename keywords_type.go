package jsonschema

import (
	"fmt"

	"github.com/go-faster/jx"

	"github.com/jsonschema-go/core/value"
)

// typeKeyword implements "type": one or more of the seven JSON Schema
// instance types, with "integer" meaning "number with no fractional
// part" per the GLOSSARY.
type typeKeyword struct {
	types []string
}

func (k *typeKeyword) Name() string { return "type" }
func (k *typeKeyword) Group() Group { return GroupType }
func (k *typeKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	for _, t := range k.types {
		if matchesType(t, inst) {
			parent.Attach(child)
			return
		}
	}
	child.Fail(k.Name(), fmt.Sprintf("value is not of type %v", k.types))
	parent.Attach(child)
}

func matchesType(t string, inst value.Value) bool {
	switch t {
	case "null":
		return inst.Type() == value.Null
	case "boolean":
		return inst.Type() == value.Bool
	case "object":
		return inst.Type() == value.Object
	case "array":
		return inst.Type() == value.Array
	case "string":
		return inst.Type() == value.String
	case "number":
		return inst.Type() == value.Number
	case "integer":
		return isInteger(inst)
	}
	return false
}

// enumKeyword implements "enum": inst must deep-equal one of a fixed set
// of JSON values.
type enumKeyword struct {
	raws []jx.Raw
}

func (k *enumKeyword) Name() string { return "enum" }
func (k *enumKeyword) Group() Group { return GroupType }
func (k *enumKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	for _, raw := range k.raws {
		member, err := ctx.rawValue(raw)
		if err != nil {
			continue
		}
		if ok, err := ctx.Comparator.Equal(member, inst); err == nil && ok {
			parent.Attach(child)
			return
		}
	}
	child.Fail(k.Name(), "value does not match any enum member")
	parent.Attach(child)
}

// constKeyword implements "const" as a single-member "enum".
type constKeyword struct {
	raw jx.Raw
}

func (k *constKeyword) Name() string { return "const" }
func (k *constKeyword) Group() Group { return GroupType }
func (k *constKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	member, err := ctx.rawValue(k.raw)
	ok := false
	if err == nil {
		ok, err = ctx.Comparator.Equal(member, inst)
	}
	if err != nil || !ok {
		child.Fail(k.Name(), "value does not match const")
	}
	parent.Attach(child)
}
