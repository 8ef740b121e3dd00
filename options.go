package jsonschema

import (
	"github.com/jsonschema-go/core/value"
)

// ValidateOption configures a single Validate call.
type ValidateOption func(*Context)

// WithFormat selects the result-tree shape Validate returns.
func WithFormat(f Format) ValidateOption {
	return func(c *Context) { c.Format = f }
}

// WithComparator overrides the equality check "enum"/"const"/"uniqueItems"
// use, replacing the comparator ValidateJSON/ValidateYAML pick for the
// instance's encoding.
func WithComparator(cmp value.Comparator) ValidateOption {
	return func(c *Context) { c.Comparator = cmp }
}

// CompileOption configures a single Parse/ParseWithOptions call.
type CompileOption func(*compileSettings)

type compileSettings struct {
	validateMeta bool
}

// WithMetaSchemaValidation runs the schema document itself through its
// declared (or default) draft's meta-schema before compiling it, the way
// the teacher's own suite runner validates every test schema against a
// meta-schema ahead of exercising it. A schema that fails this pass is
// rejected with KindInvalidSchema instead of being compiled and possibly
// misbehaving on malformed keyword shapes.
func WithMetaSchemaValidation() CompileOption {
	return func(s *compileSettings) { s.validateMeta = true }
}
