package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core/value"
	"github.com/jsonschema-go/core/value/jxvalue"
)

func TestWithFormatBasic(t *testing.T) {
	s, err := Parse("https://example.com/schema", []byte(`{
		"allOf": [{"type": "number"}, {"minimum": 0}]
	}`))
	require.NoError(t, err)

	r, err := ValidateJSON(s, []byte(`-1`), WithFormat(Basic))
	require.NoError(t, err)
	require.False(t, r.Valid)
	require.NotEmpty(t, r.Nested)
}

func TestWithComparatorOverride(t *testing.T) {
	s, err := Parse("https://example.com/schema", []byte(`{"const": 1}`))
	require.NoError(t, err)

	calls := 0
	cmp := countingComparator{inner: jxvalue.Comparator{}, calls: &calls}
	_, err = ValidateJSON(s, []byte(`1`), WithComparator(cmp))
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

type countingComparator struct {
	inner jxvalue.Comparator
	calls *int
}

func (c countingComparator) Equal(a, b value.Value) (bool, error) {
	*c.calls++
	return c.inner.Equal(a, b)
}
