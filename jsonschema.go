// Package jsonschema compiles JSON Schema (2019-09/2020-12) documents
// into reusable validators and evaluates them against JSON or YAML
// instance documents, producing a structured, serializable result tree.
package jsonschema

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/jsonschema-go/core/value"
	"github.com/jsonschema-go/core/value/jxvalue"
	"github.com/jsonschema-go/core/value/yamlvalue"
)

// Parse compiles a standalone JSON Schema document in a fresh Registry
// with remote resolution disabled (NoRemote), so every $ref must resolve
// within the document itself. baseURI anchors its "$id"/"$ref"
// resolution; pass "" for a schema with no meaningful base.
func Parse(baseURI string, data []byte) (*Schema, error) {
	return ParseWithRegistry(NewRegistry(NoRemote{}), baseURI, data)
}

// ParseWithRegistry is Parse against an explicit, possibly pre-populated
// Registry, so multiple root schemas can share $ref targets.
func ParseWithRegistry(reg *Registry, baseURI string, data []byte) (*Schema, error) {
	return ParseWithOptions(reg, baseURI, data)
}

// ParseWithOptions is ParseWithRegistry with compile-time options, e.g.
// WithMetaSchemaValidation.
func ParseWithOptions(reg *Registry, baseURI string, data []byte, opts ...CompileOption) (*Schema, error) {
	var raw RawSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, wrapKind(KindInvalidSchema, errors.Wrap(err, "unmarshal schema"))
	}

	settings := &compileSettings{}
	for _, opt := range opts {
		opt(settings)
	}
	if settings.validateMeta {
		if err := validateAgainstMetaSchema(reg, raw); err != nil {
			return nil, err
		}
	}

	return CompileSchema(context.Background(), reg, baseURI, raw)
}

// MustParse is Parse, panicking on error. It exists for package-level
// var initialization, the way the teacher repo's own examples construct
// schemas from literals.
func MustParse(baseURI string, data []byte) *Schema {
	s, err := Parse(baseURI, data)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateJSON validates JSON-encoded data against schema.
func ValidateJSON(schema *Schema, data []byte, opts ...ValidateOption) (*Node, error) {
	inst, err := jxvalue.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse instance")
	}
	return run(schema, inst, jsonParseLiteral, jxvalue.Comparator{}, opts), nil
}

func jsonParseLiteral(data []byte) (value.Value, error) {
	return jxvalue.Parse(data)
}

// ValidateYAML validates YAML-encoded data against schema.
func ValidateYAML(schema *Schema, data []byte, opts ...ValidateOption) (*Node, error) {
	inst, err := yamlvalue.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse instance")
	}
	return run(schema, inst, yamlParseLiteral, yamlvalue.Comparator{}, opts), nil
}

func yamlParseLiteral(data []byte) (value.Value, error) {
	return yamlvalue.Parse(data)
}

func run(schema *Schema, inst value.Value, parseLiteral func([]byte) (value.Value, error), cmp value.Comparator, opts []ValidateOption) *Node {
	ctx := &Context{
		Go:           context.Background(),
		Registry:     schema.registry,
		Format:       Hierarchical,
		Comparator:   cmp,
		ParseLiteral: parseLiteral,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return Validate(ctx, schema, inst)
}
