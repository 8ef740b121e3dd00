package jsonschema

import (
	"context"

	"github.com/jsonschema-go/core/pointer"
	"github.com/jsonschema-go/core/value"
)

// Group orders keyword execution per spec.md §4.3. Groups execute in
// ascending Group order; within a group, keywords execute in name order.
type Group int

const (
	GroupIdentifier Group = iota
	GroupReference
	GroupType
	GroupStructural
	GroupInPlace
	GroupChildApplicator
	GroupUnevaluated
	GroupAnnotation
)

// Keyword is one compiled keyword handler bound to its schema node.
//
// Keyword replaces the deep class hierarchy a naive port of the source
// validator would reach for (one Keyword type per struct field) with a
// single interface and one small implementation per keyword, per the
// Design Notes.
type Keyword interface {
	// Name is the keyword's JSON Schema name, e.g. "allOf".
	Name() string
	// Group reports this keyword's execution group.
	Group() Group
	// Evaluate runs the keyword against inst, attaching exactly one child
	// node (named Name()) to parent via parent.Attach.
	Evaluate(ctx *Context, parent *Node, inst value.Value)
}

// Context threads per-validation state through keyword evaluation:
// the dynamic scope, output format, cancellation, and the value
// comparator for the instance's concrete encoding.
type Context struct {
	Go context.Context

	Registry   *Registry
	Format     Format
	Comparator value.Comparator
	// ParseLiteral parses a JSON literal embedded in the schema document
	// (an "enum"/"const" member) into a Value of the same concrete family
	// as the instance being validated, so Comparator can compare them.
	// JSON is valid YAML, so for YAML instances the JSON literal is parsed
	// with the YAML parser (yamlParseLiteral).
	ParseLiteral func([]byte) (value.Value, error)

	scope []*Schema
}

// pushScope pushes schema's dynamic-scope frame, returning a function that
// pops it. Call via defer.
func (c *Context) pushScope(s *Schema) func() {
	c.scope = append(c.scope, s)
	return func() {
		c.scope = c.scope[:len(c.scope)-1]
	}
}

// recursiveAnchorName is the sentinel name resolveDynamic uses for
// $recursiveRef, which (unlike $dynamicRef) matches on the mere presence
// of $recursiveAnchor: true rather than on a name.
const recursiveAnchorName = ""

// resolveDynamic implements spec.md §4.1's resolve_anchor(dynamic=true):
// scan the dynamic scope from the outermost frame inward, returning the
// outermost active schema frame exposing a matching $dynamicAnchor (or,
// for name == recursiveAnchorName, the outermost frame with
// $recursiveAnchor: true).
func (c *Context) resolveDynamic(name string) *Schema {
	for _, frame := range c.scope {
		if name == recursiveAnchorName {
			if frame.recursiveAnchor {
				return frame
			}
			continue
		}
		if frame.dynamicAnchor == name {
			return frame
		}
	}
	return nil
}

// childPointer is a small helper every keyword file uses to build a child
// node's evaluation path.
func childPointer(parent pointer.Pointer, keyword string) pointer.Pointer {
	return parent.Append(keyword)
}

// rawValue parses raw (a JSON literal from the schema document) into a
// Value of the instance's concrete family.
func (c *Context) rawValue(raw []byte) (value.Value, error) {
	return c.ParseLiteral(raw)
}
