package jsonschema

import (
	"github.com/jsonschema-go/core/pointer"
	"github.com/jsonschema-go/core/value"
)

// evaluate runs schema against inst and returns the resulting Node,
// pushing/popping schema's dynamic-scope frame around keyword execution
// (spec.md §4.1's dynamic scope, consulted by $recursiveRef/$dynamicRef).
//
// This is the evaluator's only recursion point: every keyword that needs
// to validate a subschema against a (possibly different) instance value
// calls back into evaluate, never reimplements keyword dispatch itself.
func evaluate(ctx *Context, schema *Schema, parent *Node, evalPath, instLoc pointer.Pointer, inst value.Value) *Node {
	n := newNode(parent, schema, evalPath, instLoc)

	if err := ctx.Go.Err(); err != nil {
		n.Fail("", "validation cancelled")
		return n
	}
	if schema == nil {
		return n
	}
	if b, ok := schema.IsBool(); ok {
		if !b {
			n.Fail("", "schema is false")
		}
		return n
	}

	if schema.dynamicAnchor != "" || schema.recursiveAnchor {
		pop := ctx.pushScope(schema)
		defer pop()
	}

	for _, kw := range schema.keywords {
		if err := ctx.Go.Err(); err != nil {
			n.Fail("", "validation cancelled")
			break
		}
		kw.Evaluate(ctx, n, inst)
	}
	return n
}

// Validate runs schema against inst with the given output format and
// returns the root result Node, shaped per format (spec.md §4.4).
func Validate(ctx *Context, schema *Schema, inst value.Value) *Node {
	root := evaluate(ctx, schema, nil, pointer.Root, pointer.Root, inst)
	switch ctx.Format {
	case Flag:
		return root.ToFlag()
	case Basic:
		return root.ToBasic()
	default:
		return root
	}
}
