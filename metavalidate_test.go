package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithMetaSchemaValidation_AcceptsWellFormedSchema(t *testing.T) {
	reg := NewRegistry(NoRemote{})
	s, err := ParseWithOptions(reg, "https://example.com/good", []byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`), WithMetaSchemaValidation())
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestWithMetaSchemaValidation_RejectsMalformedSchema(t *testing.T) {
	// "$anchor" is a plain string field on RawSchema, so Go's own
	// unmarshaling accepts any value here; only the meta-schema's
	// "^[A-Za-z][-A-Za-z0-9.:_]*$" pattern catches a leading digit.
	reg := NewRegistry(NoRemote{})
	_, err := ParseWithOptions(reg, "https://example.com/bad", []byte(`{
		"$anchor": "1bad"
	}`), WithMetaSchemaValidation())
	require.Error(t, err)
	require.True(t, As(err, KindInvalidSchema))
}

func TestParseWithOptions_NoValidationByDefault(t *testing.T) {
	reg := NewRegistry(NoRemote{})
	_, err := ParseWithOptions(reg, "https://example.com/plain", []byte(`{
		"$anchor": "1bad"
	}`))
	require.NoError(t, err)
}
