package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core"
)

func mustCompile(t *testing.T, schema string) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Parse("https://example.com/schema", []byte(schema))
	require.NoError(t, err)
	return s
}

func TestValidateJSON_TypeAndStructural(t *testing.T) {
	s := mustCompile(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`)

	tests := []struct {
		name  string
		inst  string
		valid bool
	}{
		{"valid", `{"name": "ana", "age": 3}`, true},
		{"missing required", `{"age": 3}`, false},
		{"wrong type", `{"name": 7}`, false},
		{"negative age", `{"name": "ana", "age": -1}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := jsonschema.ValidateJSON(s, []byte(tt.inst))
			require.NoError(t, err)
			require.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidateJSON_Enum(t *testing.T) {
	s := mustCompile(t, `{"enum": ["a", "b", 3]}`)

	r, err := jsonschema.ValidateJSON(s, []byte(`"a"`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`3`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`"c"`))
	require.NoError(t, err)
	require.False(t, r.Valid)
}

func TestValidateJSON_Applicators(t *testing.T) {
	s := mustCompile(t, `{
		"allOf": [{"type": "number"}, {"minimum": 0}],
		"anyOf": [{"multipleOf": 2}, {"multipleOf": 3}],
		"not": {"const": 13}
	}`)

	for _, tt := range []struct {
		inst  string
		valid bool
	}{
		{"4", true},
		{"9", true},
		{"5", false},
		{"-2", false},
		{"13", false},
	} {
		r, err := jsonschema.ValidateJSON(s, []byte(tt.inst))
		require.NoError(t, err)
		require.Equalf(t, tt.valid, r.Valid, "instance %s", tt.inst)
	}
}

func TestValidateJSON_ArrayTuple(t *testing.T) {
	s := mustCompile(t, `{
		"prefixItems": [{"type": "string"}, {"type": "number"}],
		"items": {"type": "boolean"}
	}`)

	r, err := jsonschema.ValidateJSON(s, []byte(`["x", 1, true, false]`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`["x", 1, "oops"]`))
	require.NoError(t, err)
	require.False(t, r.Valid)
}

func TestValidateJSON_UnevaluatedProperties(t *testing.T) {
	s := mustCompile(t, `{
		"allOf": [{"properties": {"a": {"type": "string"}}}],
		"unevaluatedProperties": false
	}`)

	r, err := jsonschema.ValidateJSON(s, []byte(`{"a": "x"}`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`{"a": "x", "b": 1}`))
	require.NoError(t, err)
	require.False(t, r.Valid)
}

func TestValidateJSON_RefCycle(t *testing.T) {
	s := mustCompile(t, `{
		"$id": "https://example.com/tree",
		"type": "object",
		"properties": {
			"value": {"type": "integer"},
			"children": {"type": "array", "items": {"$ref": "#"}}
		}
	}`)

	r, err := jsonschema.ValidateJSON(s, []byte(`{
		"value": 1,
		"children": [{"value": 2, "children": []}, {"value": "bad"}]
	}`))
	require.NoError(t, err)
	require.False(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`{
		"value": 1,
		"children": [{"value": 2, "children": []}]
	}`))
	require.NoError(t, err)
	require.True(t, r.Valid)
}

func TestValidateJSON_IfThenElse(t *testing.T) {
	s := mustCompile(t, `{
		"if": {"properties": {"kind": {"const": "circle"}}},
		"then": {"required": ["radius"]},
		"else": {"required": ["side"]}
	}`)

	r, err := jsonschema.ValidateJSON(s, []byte(`{"kind": "circle", "radius": 2}`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`{"kind": "circle"}`))
	require.NoError(t, err)
	require.False(t, r.Valid)

	r, err = jsonschema.ValidateJSON(s, []byte(`{"kind": "square", "side": 2}`))
	require.NoError(t, err)
	require.True(t, r.Valid)
}

func TestValidateYAML(t *testing.T) {
	s := mustCompile(t, `{"type": "object", "required": ["name"]}`)

	r, err := jsonschema.ValidateYAML(s, []byte("name: ana\nage: 3\n"))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = jsonschema.ValidateYAML(s, []byte("age: 3\n"))
	require.NoError(t, err)
	require.False(t, r.Valid)
}

func TestValidateJSON_FlagFormat(t *testing.T) {
	s := mustCompile(t, `{"type": "string"}`)

	r, err := jsonschema.ValidateJSON(s, []byte(`5`), jsonschema.WithFormat(jsonschema.Flag))
	require.NoError(t, err)
	require.False(t, r.Valid)
	require.Empty(t, r.Nested)
}

func TestMustParsePanicsOnInvalidJSON(t *testing.T) {
	require.Panics(t, func() {
		jsonschema.MustParse("https://example.com/bad", []byte(`{`))
	})
}
