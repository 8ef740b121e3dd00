package jsonschema

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterIdempotent(t *testing.T) {
	reg := NewRegistry(NoRemote{})

	var raw RawSchema
	require.NoError(t, mustUnmarshal(t, `{"type": "string"}`, &raw))

	require.NoError(t, reg.Register("https://example.com/a", raw))
	require.NoError(t, reg.Register("https://example.com/a", raw))
}

func TestRegistry_RegisterConflict(t *testing.T) {
	reg := NewRegistry(NoRemote{})

	var a, b RawSchema
	require.NoError(t, mustUnmarshal(t, `{"type": "string"}`, &a))
	require.NoError(t, mustUnmarshal(t, `{"type": "number"}`, &b))

	require.NoError(t, reg.Register("https://example.com/a", a))
	err := reg.Register("https://example.com/a", b)
	require.Error(t, err)
	require.True(t, As(err, KindRegistryConflict))
}

func TestRegistry_ResolveRefByPointer(t *testing.T) {
	reg := NewRegistry(NoRemote{})

	var raw RawSchema
	require.NoError(t, mustUnmarshal(t, `{
		"$defs": {"pos": {"type": "integer", "minimum": 0}},
		"type": "object",
		"properties": {"age": {"$ref": "#/$defs/pos"}}
	}`, &raw))

	s, err := CompileSchema(context.Background(), reg, "https://example.com/root", raw)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestRegistry_ResolveRefByAnchor(t *testing.T) {
	reg := NewRegistry(NoRemote{})

	var raw RawSchema
	require.NoError(t, mustUnmarshal(t, `{
		"$defs": {"pos": {"$anchor": "positive", "type": "integer", "minimum": 0}},
		"type": "object",
		"properties": {"age": {"$ref": "#positive"}}
	}`, &raw))

	s, err := CompileSchema(context.Background(), reg, "https://example.com/root", raw)
	require.NoError(t, err)
	require.NotNil(t, s)

	result, err := ValidateJSON(s, []byte(`{"age": 5}`))
	require.NoError(t, err)
	require.True(t, result.Valid)

	result, err = ValidateJSON(s, []byte(`{"age": -5}`))
	require.NoError(t, err)
	require.False(t, result.Valid)
}

func TestRegistry_UnresolvedRefFails(t *testing.T) {
	reg := NewRegistry(NoRemote{})

	var raw RawSchema
	require.NoError(t, mustUnmarshal(t, `{"$ref": "#/$defs/missing"}`, &raw))

	_, err := CompileSchema(context.Background(), reg, "https://example.com/root", raw)
	require.Error(t, err)
	require.True(t, As(err, KindReferenceUnresolved))
}

func mustUnmarshal(t *testing.T, data string, out *RawSchema) error {
	t.Helper()
	return json.Unmarshal([]byte(data), out)
}
