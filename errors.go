package jsonschema

import (
	"github.com/go-faster/errors"
)

// Kind classifies a compile/resolution-time failure, per spec.md §7's
// error taxonomy. Evaluation-time failures are never Go errors: they are
// recorded in the result tree (Node.Fail), the only exception being
// context cancellation, which still surfaces as a failing Node rather
// than a returned error (spec.md §7's "only unwinding path is
// Cancelled").
type Kind int

const (
	// KindInvalidSchema covers malformed schema documents: bad JSON,
	// unknown $schema-incompatible constructs the parser rejects
	// outright, duplicate "required" entries, and similar.
	KindInvalidSchema Kind = iota
	// KindRegistryConflict is registering a URI already bound to
	// different content.
	KindRegistryConflict
	// KindReferenceUnresolved is a $ref/$recursiveRef/$dynamicRef whose
	// target could not be found or fetched.
	KindReferenceUnresolved
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSchema:
		return "invalid schema"
	case KindRegistryConflict:
		return "registry conflict"
	case KindReferenceUnresolved:
		return "reference unresolved"
	default:
		return "unknown"
	}
}

// Error wraps a Kind-classified compile/resolution failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func wrapKind(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// As reports whether err (or something it wraps) is an *Error of kind.
func As(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
