package jsonschema

import (
	"github.com/jsonschema-go/core/value"
)

// refKeyword implements "$ref": a reference resolved once at compile
// time, since plain $ref never depends on the dynamic scope.
type refKeyword struct {
	target *Schema
}

func (k *refKeyword) Name() string { return "$ref" }
func (k *refKeyword) Group() Group { return GroupReference }
func (k *refKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	path := childPointer(parent.EvaluationPath, k.Name())
	res := evaluate(ctx, k.target, parent, path, parent.InstanceLocation, inst)
	parent.Attach(res)
}

// dynamicRefKeyword implements "$recursiveRef" and "$dynamicRef":
// resolved against the live dynamic scope first, falling back to the
// statically-resolved target when nothing in scope exposes a matching
// anchor (spec.md §4.1).
type dynamicRefKeyword struct {
	name       string // "$recursiveRef" or "$dynamicRef"
	anchorName string // "" for $recursiveRef
	static     *Schema
}

func (k *dynamicRefKeyword) Name() string { return k.name }
func (k *dynamicRefKeyword) Group() Group { return GroupReference }
func (k *dynamicRefKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	target := ctx.resolveDynamic(k.anchorName)
	if target == nil {
		target = k.static
	}
	path := childPointer(parent.EvaluationPath, k.Name())
	res := evaluate(ctx, target, parent, path, parent.InstanceLocation, inst)
	parent.Attach(res)
}
