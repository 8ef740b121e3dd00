package jsonschema

import (
	"encoding/json"

	"github.com/jsonschema-go/core/value"
)

// annotationKeyword implements every pure-annotation keyword (title,
// description, default, examples, deprecated, readOnly, writeOnly,
// format, contentMediaType, contentEncoding, and unknown keywords):
// it never fails, it only records its value.
//
// Non-goals exclude format/content assertion behavior (RFC 3986 media
// type decoding, format-as-validation) — these keywords are annotation
// carriers here, matching the "format" vocabulary's default
// (non-assertion) mode.
type annotationKeyword struct {
	name string
	val  any
}

func (k *annotationKeyword) Name() string { return k.name }
func (k *annotationKeyword) Group() Group { return GroupAnnotation }
func (k *annotationKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.name), parent.InstanceLocation)
	child.Annotate(k.name, k.val)
	parent.Attach(child)
}

func rawToAny(raw json.RawMessage) any {
	var v any
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// contentSchemaKeyword records contentSchema as an annotation without
// decoding/validating the (possibly base64 or otherwise encoded) content
// it describes.
type contentSchemaKeyword struct {
	schema *Schema
}

func (k *contentSchemaKeyword) Name() string { return "contentSchema" }
func (k *contentSchemaKeyword) Group() Group { return GroupAnnotation }
func (k *contentSchemaKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	child.Annotate(k.Name(), k.schema.location)
	parent.Attach(child)
}
