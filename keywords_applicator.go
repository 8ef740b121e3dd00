package jsonschema

import (
	"fmt"

	"github.com/jsonschema-go/core/value"
)

type allOfKeyword struct{ schemas []*Schema }

func (k *allOfKeyword) Name() string { return "allOf" }
func (k *allOfKeyword) Group() Group { return GroupInPlace }
func (k *allOfKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	for i, sub := range k.schemas {
		res := evaluate(ctx, sub, child, myPath.Child(i), parent.InstanceLocation, inst)
		child.Attach(res)
	}
	parent.Attach(child)
}

type anyOfKeyword struct{ schemas []*Schema }

func (k *anyOfKeyword) Name() string { return "anyOf" }
func (k *anyOfKeyword) Group() Group { return GroupInPlace }
func (k *anyOfKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	var results []*Node
	anyValid := false
	for i, sub := range k.schemas {
		res := evaluate(ctx, sub, child, myPath.Child(i), parent.InstanceLocation, inst)
		results = append(results, res)
		if res.Valid {
			anyValid = true
		}
	}
	for _, res := range results {
		child.Nested = append(child.Nested, res)
	}
	if !anyValid {
		child.Fail(k.Name(), "value does not match any subschema")
	}
	parent.Attach(child)
}

type oneOfKeyword struct{ schemas []*Schema }

func (k *oneOfKeyword) Name() string { return "oneOf" }
func (k *oneOfKeyword) Group() Group { return GroupInPlace }
func (k *oneOfKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	var matched []int
	for i, sub := range k.schemas {
		res := evaluate(ctx, sub, child, myPath.Child(i), parent.InstanceLocation, inst)
		child.Nested = append(child.Nested, res)
		if res.Valid {
			matched = append(matched, i)
		}
	}
	switch len(matched) {
	case 1:
		// exactly one match: success, nested results retained for
		// annotations/unevaluated* to see through the matching branch.
	case 0:
		child.Fail(k.Name(), "value does not match any subschema")
	default:
		child.Fail(k.Name(), fmt.Sprintf("value matches more than one subschema: %v", matched))
	}
	parent.Attach(child)
}

type notKeyword struct{ schema *Schema }

func (k *notKeyword) Name() string { return "not" }
func (k *notKeyword) Group() Group { return GroupInPlace }
func (k *notKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	res := evaluate(ctx, k.schema, child, myPath, parent.InstanceLocation, inst)
	child.Nested = append(child.Nested, res)
	if res.Valid {
		child.Fail(k.Name(), "value must not match subschema")
	}
	parent.Attach(child)
}

// ifThenElseKeyword implements "if"/"then"/"else" as one unit: they
// share a single conditional decision, so splitting them into three
// independent Keyword values would require re-running "if" per branch.
type ifThenElseKeyword struct {
	ifSchema, thenSchema, elseSchema *Schema
}

func (k *ifThenElseKeyword) Name() string { return "if" }
func (k *ifThenElseKeyword) Group() Group { return GroupInPlace }
func (k *ifThenElseKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, "if")
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	ifRes := evaluate(ctx, k.ifSchema, child, myPath, parent.InstanceLocation, inst)
	child.Nested = append(child.Nested, ifRes)

	if ifRes.Valid {
		if k.thenSchema != nil {
			thenPath := childPointer(parent.EvaluationPath, "then")
			res := evaluate(ctx, k.thenSchema, child, thenPath, parent.InstanceLocation, inst)
			child.Nested = append(child.Nested, res)
			if !res.Valid {
				child.Valid = false
			}
		}
	} else if k.elseSchema != nil {
		elsePath := childPointer(parent.EvaluationPath, "else")
		res := evaluate(ctx, k.elseSchema, child, elsePath, parent.InstanceLocation, inst)
		child.Nested = append(child.Nested, res)
		if !res.Valid {
			child.Valid = false
		}
	}
	parent.Attach(child)
}
