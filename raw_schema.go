package jsonschema

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Num represents a JSON number, preserved verbatim so it can later be
// parsed into an exact big.Rat without a float64 round trip.
type Num jx.Num

// MarshalJSON implements json.Marshaler.
func (n Num) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.RawMessage(n))
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Num) UnmarshalJSON(data []byte) error {
	j, err := jx.DecodeBytes(data).Num()
	if err != nil {
		return errors.Wrapf(err, "invalid number %s", data)
	}
	if j.Str() {
		return errors.Errorf("invalid number %s", data)
	}
	*n = Num(j)
	return nil
}

// SchemaType is the JSON Schema "type" keyword value: either a single type
// name or a list of them.
type SchemaType []string

var knownTypes = map[string]struct{}{
	"array": {}, "boolean": {}, "integer": {}, "null": {},
	"number": {}, "object": {}, "string": {},
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SchemaType) UnmarshalJSON(data []byte) error {
	parseSingle := func(d *jx.Decoder) (string, error) {
		val, err := d.Str()
		if err != nil {
			return "", err
		}
		if _, ok := knownTypes[val]; !ok {
			return "", errors.Errorf("unexpected type %q", val)
		}
		return val, nil
	}

	d := jx.DecodeBytes(data)
	switch tt := d.Next(); tt {
	case jx.Array:
		return d.Arr(func(d *jx.Decoder) error {
			val, err := parseSingle(d)
			if err != nil {
				return err
			}
			*r = append(*r, val)
			return nil
		})
	case jx.String:
		val, err := parseSingle(d)
		if err != nil {
			return err
		}
		*r = []string{val}
		return nil
	default:
		return errors.Errorf("unexpected type: %q", tt)
	}
}

// RawSchema is an unparsed JSON Schema: either the boolean form (accept-all
// / reject-all) or the object form carrying keyword/value pairs.
//
// Unlike the draft-4 shape this engine's teacher parsed (booleans only at
// a handful of ad hoc sites: additionalProperties, additionalItems), any
// subschema site here may hold the boolean form, per spec.md §3 ("Schema —
// either a boolean... or an object").
type RawSchema struct {
	// Bool is set when the schema is the boolean form; the rest of the
	// struct is then zero.
	Bool *bool

	// Identifier keywords.
	ID            string          `json:"$id,omitempty"`
	Schema        string          `json:"$schema,omitempty"`
	Anchor        string          `json:"$anchor,omitempty"`
	DynamicAnchor string          `json:"$dynamicAnchor,omitempty"`
	Vocabulary    map[string]bool `json:"$vocabulary,omitempty"`
	Comment       string          `json:"$comment,omitempty"`
	Defs          RawProperties   `json:"$defs,omitempty"`

	// Reference keywords.
	Ref          string `json:"$ref,omitempty"`
	RecursiveRef string `json:"$recursiveRef,omitempty"`
	DynamicRef   string `json:"$dynamicRef,omitempty"`
	// RecursiveAnchor is 2019-09's boolean opt-in for $recursiveRef.
	RecursiveAnchor bool `json:"$recursiveAnchor,omitempty"`

	// Type assertions.
	Type  SchemaType        `json:"type,omitempty"`
	Enum  []json.RawMessage `json:"enum,omitempty"`
	Const *json.RawMessage  `json:"const,omitempty"`

	// Structural assertions.
	MinLength         *uint64             `json:"minLength,omitempty"`
	MaxLength         *uint64             `json:"maxLength,omitempty"`
	Pattern           string              `json:"pattern,omitempty"`
	Minimum           Num                 `json:"minimum,omitempty"`
	Maximum           Num                 `json:"maximum,omitempty"`
	ExclusiveMinimum  Num                 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum  Num                 `json:"exclusiveMaximum,omitempty"`
	MultipleOf        Num                 `json:"multipleOf,omitempty"`
	MinItems          *uint64             `json:"minItems,omitempty"`
	MaxItems          *uint64             `json:"maxItems,omitempty"`
	UniqueItems       bool                `json:"uniqueItems,omitempty"`
	MinProperties     *uint64             `json:"minProperties,omitempty"`
	MaxProperties     *uint64             `json:"maxProperties,omitempty"`
	Required          []string            `json:"required,omitempty"`
	DependentRequired map[string][]string `json:"dependentRequired,omitempty"`

	// In-place applicators.
	AllOf            []RawSchema   `json:"allOf,omitempty"`
	AnyOf            []RawSchema   `json:"anyOf,omitempty"`
	OneOf            []RawSchema   `json:"oneOf,omitempty"`
	Not              *RawSchema    `json:"not,omitempty"`
	If               *RawSchema    `json:"if,omitempty"`
	Then             *RawSchema    `json:"then,omitempty"`
	Else             *RawSchema    `json:"else,omitempty"`
	DependentSchemas RawProperties `json:"dependentSchemas,omitempty"`

	// Child applicators.
	Properties           RawProperties `json:"properties,omitempty"`
	PatternProperties    RawProperties `json:"patternProperties,omitempty"`
	AdditionalProperties *RawSchema    `json:"additionalProperties,omitempty"`
	PropertyNames        *RawSchema    `json:"propertyNames,omitempty"`
	Items                *RawSchema    `json:"items,omitempty"`
	PrefixItems          []RawSchema   `json:"prefixItems,omitempty"`
	Contains             *RawSchema    `json:"contains,omitempty"`
	MinContains          *uint64       `json:"minContains,omitempty"`
	MaxContains          *uint64       `json:"maxContains,omitempty"`

	// Unevaluated applicators.
	UnevaluatedProperties *RawSchema `json:"unevaluatedProperties,omitempty"`
	UnevaluatedItems      *RawSchema `json:"unevaluatedItems,omitempty"`

	// Pure annotation keywords.
	Title            string            `json:"title,omitempty"`
	Description      string            `json:"description,omitempty"`
	Default          *json.RawMessage  `json:"default,omitempty"`
	Examples         []json.RawMessage `json:"examples,omitempty"`
	Deprecated       bool              `json:"deprecated,omitempty"`
	ReadOnly         bool              `json:"readOnly,omitempty"`
	WriteOnly        bool              `json:"writeOnly,omitempty"`
	Format           string            `json:"format,omitempty"`
	ContentMediaType string            `json:"contentMediaType,omitempty"`
	ContentEncoding  string            `json:"contentEncoding,omitempty"`
	ContentSchema    *RawSchema        `json:"contentSchema,omitempty"`

	// Unknown keywords are retained verbatim, becoming annotations per
	// spec.md §4.1 ("Unknown keywords are retained as annotations").
	Unknown map[string]json.RawMessage `json:"-"`
}

// rawSchemaAlias avoids infinite recursion in RawSchema's UnmarshalJSON.
type rawSchemaAlias RawSchema

// MarshalJSON implements json.Marshaler.
func (r RawSchema) MarshalJSON() ([]byte, error) {
	if r.Bool != nil {
		return json.Marshal(*r.Bool)
	}
	return json.Marshal(rawSchemaAlias(r))
}

var knownSchemaKeys = map[string]struct{}{
	"$id": {}, "$schema": {}, "$anchor": {}, "$dynamicAnchor": {},
	"$vocabulary": {}, "$comment": {}, "$defs": {},
	"$ref": {}, "$recursiveRef": {}, "$dynamicRef": {}, "$recursiveAnchor": {},
	"type": {}, "enum": {}, "const": {},
	"minLength": {}, "maxLength": {}, "pattern": {},
	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {},
	"multipleOf": {}, "minItems": {}, "maxItems": {}, "uniqueItems": {},
	"minProperties": {}, "maxProperties": {}, "required": {}, "dependentRequired": {},
	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {}, "if": {}, "then": {}, "else": {},
	"dependentSchemas": {},
	"properties": {}, "patternProperties": {}, "additionalProperties": {},
	"propertyNames": {}, "items": {}, "prefixItems": {}, "contains": {},
	"minContains": {}, "maxContains": {},
	"unevaluatedProperties": {}, "unevaluatedItems": {},
	"title": {}, "description": {}, "default": {}, "examples": {},
	"deprecated": {}, "readOnly": {}, "writeOnly": {}, "format": {},
	"contentMediaType": {}, "contentEncoding": {}, "contentSchema": {},
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RawSchema) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	switch tt := d.Next(); tt {
	case jx.Bool:
		val, err := d.Bool()
		if err != nil {
			return err
		}
		*r = RawSchema{Bool: &val}
		return nil
	case jx.Object:
		var alias rawSchemaAlias
		if err := json.Unmarshal(data, &alias); err != nil {
			return err
		}
		*r = RawSchema(alias)

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for k, v := range raw {
			if _, ok := knownSchemaKeys[k]; ok {
				continue
			}
			if r.Unknown == nil {
				r.Unknown = map[string]json.RawMessage{}
			}
			r.Unknown[k] = v
		}
		return nil
	default:
		return errors.Errorf("unexpected schema type %q", tt)
	}
}

// RawProperty is one entry of an ordered keyword-value object (properties,
// patternProperties, dependentSchemas, $defs).
type RawProperty struct {
	Name   string
	Schema RawSchema
}

// RawProperties is an ordered object of RawSchema values. Order is
// preserved because result-tree traversal order must match schema
// declaration order (spec.md §3 Invariant 5).
type RawProperties []RawProperty

// MarshalJSON implements json.Marshaler.
func (p RawProperties) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	e.ObjStart()
	for _, prop := range p {
		e.FieldStart(prop.Name)
		b, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, errors.Wrap(err, "marshal")
		}
		e.Raw(b)
	}
	e.ObjEnd()
	return e.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RawProperties) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	return d.Obj(func(d *jx.Decoder, key string) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		var s RawSchema
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*p = append(*p, RawProperty{Name: key, Schema: s})
		return nil
	})
}
