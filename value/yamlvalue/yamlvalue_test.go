package yamlvalue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core/value"
	"github.com/jsonschema-go/core/value/yamlvalue"
)

func TestValue_Type(t *testing.T) {
	v, err := yamlvalue.Parse([]byte("a: 1\nb: [1, 2]\n"))
	require.NoError(t, err)
	require.Equal(t, value.Object, v.Type())

	var a, b value.Value
	require.NoError(t, v.Object(func(key string, val value.Value) error {
		switch key {
		case "a":
			a = val
		case "b":
			b = val
		}
		return nil
	}))
	require.Equal(t, value.Number, a.Type())
	require.Equal(t, int64(1), a.Number().Num().Int64())
	require.Equal(t, value.Array, b.Type())
}

func TestComparator_Equal(t *testing.T) {
	a, err := yamlvalue.Parse([]byte("{a: 1, b: 2}\n"))
	require.NoError(t, err)
	b, err := yamlvalue.Parse([]byte("{b: 2.0, a: 1}\n"))
	require.NoError(t, err)

	eq, err := (yamlvalue.Comparator{}).Equal(a, b)
	require.NoError(t, err)
	require.True(t, eq)
}
