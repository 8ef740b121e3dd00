package jsonschema

import (
	"github.com/jsonschema-go/core/pointer"
)

// Format selects the shape ValidationResults is walked/serialized into.
type Format int

const (
	// Hierarchical keeps the full result tree.
	Hierarchical Format = iota
	// Basic flattens the tree into a single-level list.
	Basic
	// Flag retains only the root's validity.
	Flag
)

// Node is one ValidationResults node: spec.md §3's result-tree attributes.
type Node struct {
	Valid bool

	EvaluationPath   pointer.Pointer
	InstanceLocation pointer.Pointer
	// schemaLocation is memoized lazily by SchemaLocation, per spec.md's
	// "lazily built" contract; schemaLocSet records whether it has been
	// computed.
	schemaLocation string
	schemaLocSet   bool

	Parent *Node
	Nested []*Node

	Annotations map[string]any
	Errors      map[string]string

	Exclude bool

	// schema is the node's originating compiled schema, kept so
	// SchemaLocation can walk the evaluation path and reset the local
	// prefix after each $ref/$recursiveRef/$dynamicRef segment.
	schema *Schema
}

func newNode(parent *Node, schema *Schema, evalPath, instLoc pointer.Pointer) *Node {
	return &Node{
		Valid:            true,
		EvaluationPath:   evalPath,
		InstanceLocation: instLoc,
		Parent:           parent,
		schema:           schema,
	}
}

// Fail marks n invalid and records message under keyword in n.Errors.
// Per spec.md §3 Invariant 1, a failing node drops any annotations it may
// have accumulated.
func (n *Node) Fail(keyword, message string) {
	n.Valid = false
	if n.Errors == nil {
		n.Errors = map[string]string{}
	}
	n.Errors[keyword] = message
	n.Annotations = nil
}

// Annotate records ann under keyword, last-writer-wins, but only while n is
// still valid (spec.md §3 Invariant 1).
func (n *Node) Annotate(keyword string, ann any) {
	if !n.Valid {
		return
	}
	if n.Annotations == nil {
		n.Annotations = map[string]any{}
	}
	n.Annotations[keyword] = ann
}

// Attach appends child to n.Nested and folds child's validity into n:
// n becomes invalid if a required child is invalid. Keywords that treat a
// child as non-binding (if, the discarded then/else branch) must not call
// Attach for that child, or must restore n.Valid afterward.
func (n *Node) Attach(child *Node) {
	n.Nested = append(n.Nested, child)
	if !child.Valid {
		n.Valid = false
	}
}

// SchemaLocation computes, memoizes, and returns n's absolute schema
// location: the evaluation path, but with the URI prefix reset to the
// target schema's base URI after each reference hop.
func (n *Node) SchemaLocation() string {
	if n.schemaLocSet {
		return n.schemaLocation
	}
	loc := ""
	if n.schema != nil {
		loc = n.schema.location
	}
	n.schemaLocation = loc
	n.schemaLocSet = true
	return loc
}

// collectAnnotations gathers annotations from n and from every nested
// result that (a) succeeded and (b) shares n's instance_location,
// transitively through in-place applicators — per spec.md §3 Invariant 4
// and the unevaluatedProperties/unevaluatedItems semantics in §4.3. keys
// restricts which annotation keys are gathered; pass nil for all of them.
func (n *Node) collectAnnotations(keys map[string]struct{}, out map[string]any) {
	if !n.Valid {
		return
	}
	for k, v := range n.Annotations {
		if keys != nil {
			if _, ok := keys[k]; !ok {
				continue
			}
		}
		out[k] = v
	}
	for _, child := range n.Nested {
		if !child.Valid || !child.InstanceLocation.Equal(n.InstanceLocation) {
			continue
		}
		child.collectAnnotations(keys, out)
	}
}
