package jsonschema

import (
	"github.com/jsonschema-go/core/value"
)

// collectEvaluatedProps walks n's already-attached, same-instance-location
// descendants and unions every property name that "properties",
// "patternProperties", "additionalProperties", or an already-evaluated
// "unevaluatedProperties" claimed, per spec.md §4.3's unevaluatedProperties
// semantics: evaluated-ness flows through every in-place applicator
// (allOf, if/then/else, $ref, oneOf's matching branch, ...).
func collectEvaluatedProps(n *Node) map[string]struct{} {
	out := map[string]struct{}{}
	var walk func(*Node)
	walk = func(node *Node) {
		if !node.Valid {
			return
		}
		for k, v := range node.Annotations {
			switch k {
			case "properties", "patternProperties", "additionalProperties", "unevaluatedProperties":
				if names, ok := v.([]string); ok {
					for _, name := range names {
						out[name] = struct{}{}
					}
				}
			}
		}
		for _, child := range node.Nested {
			if child.Valid && child.InstanceLocation.Equal(node.InstanceLocation) {
				walk(child)
			}
		}
	}
	walk(n)
	return out
}

// evaluatedItems summarizes which array indices "prefixItems", "items",
// "contains", and "unevaluatedItems" have already claimed.
type evaluatedItems struct {
	maxPrefix int
	coversAll bool
	contains  map[int]struct{}
}

func (e *evaluatedItems) has(i int) bool {
	if e.coversAll || i <= e.maxPrefix {
		return true
	}
	_, ok := e.contains[i]
	return ok
}

func collectEvaluatedItems(n *Node) *evaluatedItems {
	out := &evaluatedItems{maxPrefix: -1, contains: map[int]struct{}{}}
	var walk func(*Node)
	walk = func(node *Node) {
		if !node.Valid {
			return
		}
		for k, v := range node.Annotations {
			switch k {
			case "prefixItems":
				if idx, ok := v.(int); ok && idx > out.maxPrefix {
					out.maxPrefix = idx
				}
			case "items", "unevaluatedItems":
				if b, ok := v.(bool); ok && b {
					out.coversAll = true
				}
			case "contains":
				if idxs, ok := v.([]int); ok {
					for _, i := range idxs {
						out.contains[i] = struct{}{}
					}
				}
			}
		}
		for _, child := range node.Nested {
			if child.Valid && child.InstanceLocation.Equal(node.InstanceLocation) {
				walk(child)
			}
		}
	}
	walk(n)
	return out
}

type unevaluatedPropertiesKeyword struct{ schema *Schema }

func (k *unevaluatedPropertiesKeyword) Name() string { return "unevaluatedProperties" }
func (k *unevaluatedPropertiesKeyword) Group() Group { return GroupUnevaluated }
func (k *unevaluatedPropertiesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Object {
		parent.Attach(child)
		return
	}
	members, order, err := objectMap(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	evaluated := collectEvaluatedProps(parent)
	var newlyEvaluated []string
	for _, name := range order {
		if _, ok := evaluated[name]; ok {
			continue
		}
		res := evaluate(ctx, k.schema, child, myPath.Append(name), parent.InstanceLocation.Append(name), members[name])
		child.Attach(res)
		if res.Valid {
			newlyEvaluated = append(newlyEvaluated, name)
		}
	}
	if len(newlyEvaluated) > 0 {
		child.Annotate(k.Name(), newlyEvaluated)
	}
	parent.Attach(child)
}

type unevaluatedItemsKeyword struct{ schema *Schema }

func (k *unevaluatedItemsKeyword) Name() string { return "unevaluatedItems" }
func (k *unevaluatedItemsKeyword) Group() Group { return GroupUnevaluated }
func (k *unevaluatedItemsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Array {
		parent.Attach(child)
		return
	}
	items, err := arraySlice(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	evaluated := collectEvaluatedItems(parent)
	any := false
	for i, item := range items {
		if evaluated.has(i) {
			continue
		}
		res := evaluate(ctx, k.schema, child, myPath, parent.InstanceLocation.Child(i), item)
		child.Attach(res)
		any = true
	}
	if any {
		child.Annotate(k.Name(), true)
	}
	parent.Attach(child)
}
