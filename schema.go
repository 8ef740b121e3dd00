package jsonschema

import (
	"github.com/jsonschema-go/core/pointer"
)

// Schema is a compiled JSON Schema node: either the boolean short-circuit
// form or an object schema carrying its ordered keyword handlers. The
// handlers are not filtered by draft: a keyword is compiled whenever it is
// present, whatever "$schema" the document declares.
//
// Schema nodes are immutable once returned from Compile and may be shared
// across concurrent validations (spec.md §5).
type Schema struct {
	// boolSchema is non-nil for the boolean schema form: true accepts
	// every instance, false rejects every instance.
	boolSchema *bool

	baseURI        string
	evaluationPath pointer.Pointer
	// location is s's absolute schema location: baseURI plus either a
	// JSON Pointer fragment or an $anchor-name fragment. SchemaLocation
	// reports this verbatim; it is computed once at compile time because
	// a $ref target's location is fixed regardless of how many places
	// refer to it.
	location string

	// dynamicAnchor is the $dynamicAnchor (or, for 2019-09,
	// $recursiveAnchor-opted-in) name this node exposes to the dynamic
	// scope, or "" if none.
	dynamicAnchor   string
	recursiveAnchor bool

	keywords []Keyword

	registry *Registry
}

// IsBool reports whether s is the boolean schema form, returning its value.
func (s *Schema) IsBool() (value, ok bool) {
	if s.boolSchema == nil {
		return false, false
	}
	return *s.boolSchema, true
}

// BaseURI returns the absolute URI of the resource s belongs to.
func (s *Schema) BaseURI() string {
	return s.baseURI
}

// EvaluationPath returns the JSON Pointer from the root schema to s.
func (s *Schema) EvaluationPath() pointer.Pointer {
	return s.evaluationPath
}
