package jsonequal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core/internal/jsonequal"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1", "1.0", true},
		{"1", "2", false},
		{`"a"`, `"a"`, true},
		{`"a"`, `"b"`, false},
		{"[1,2,3]", "[1,2,3]", true},
		{"[1,2,3]", "[1,2]", false},
		{`{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{`{"a":1}`, `{"a":1,"b":2}`, false},
		{"null", "null", true},
		{"true", "false", false},
		{"1", `"1"`, false},
	}
	for _, tt := range tests {
		got, err := jsonequal.Equal([]byte(tt.a), []byte(tt.b))
		require.NoError(t, err)
		require.Equalf(t, tt.want, got, "Equal(%s, %s)", tt.a, tt.b)
	}
}
