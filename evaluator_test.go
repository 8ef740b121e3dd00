package jsonschema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core/value"
)

func TestDynamicRef_StrictTree(t *testing.T) {
	// The canonical $dynamicRef extension point from the JSON Schema test
	// suite: "tree" defines a recursive "node" shape whose children defer
	// to whatever "node" the outermost schema in the dynamic scope
	// declares; "strict-tree" extends it with unevaluatedProperties, which
	// then applies transitively to every nested child too.
	reg := NewRegistry(NoRemote{})
	treeRaw := mustRaw(t, `{
		"$id": "https://example.com/strict-tree/tree",
		"$dynamicAnchor": "node",
		"type": "object",
		"properties": {
			"data": true,
			"children": {
				"type": "array",
				"items": {"$dynamicRef": "#node"}
			}
		}
	}`)
	require.NoError(t, reg.Register("https://example.com/strict-tree/tree", treeRaw))

	mainRaw := mustRaw(t, `{
		"$id": "https://example.com/strict-tree/main",
		"$ref": "https://example.com/strict-tree/tree",
		"$dynamicAnchor": "node",
		"unevaluatedProperties": false
	}`)
	mainSchema, err := CompileSchema(context.Background(), reg, "https://example.com/strict-tree/main", mainRaw)
	require.NoError(t, err)

	r, err := ValidateJSON(mainSchema, []byte(`{"children": [{"data": 1, "children": []}]}`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = ValidateJSON(mainSchema, []byte(`{"children": [{"daat": 1}]}`))
	require.NoError(t, err)
	require.False(t, r.Valid)
}

func TestContainsAnnotatesMatchingIndices(t *testing.T) {
	s := mustCompileInternal(t, `{
		"contains": {"type": "number", "minimum": 10}
	}`)
	r, err := ValidateJSON(s, []byte(`[1, 20, 3, 40]`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	var contains *Node
	for _, child := range r.Nested {
		if child.EvaluationPath.Fragment() == "#/contains" {
			contains = child
		}
	}
	require.NotNil(t, contains)
	require.Equal(t, []int{1, 3}, contains.Annotations["contains"])
}

func TestUniqueItems(t *testing.T) {
	s := mustCompileInternal(t, `{"uniqueItems": true}`)

	r, err := ValidateJSON(s, []byte(`[1, 2, 3]`))
	require.NoError(t, err)
	require.True(t, r.Valid)

	r, err = ValidateJSON(s, []byte(`[1, 2, 1]`))
	require.NoError(t, err)
	require.False(t, r.Valid)
}

func TestCancellationFailsNode(t *testing.T) {
	s := mustCompileInternal(t, `{"type": "string"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Context{Go: ctx, Registry: s.registry, Format: Hierarchical, Comparator: nil, ParseLiteral: jsonParseLiteral}
	n := Validate(c, s, mustValue(t, `"x"`))
	require.False(t, n.Valid)
}

func mustRaw(t *testing.T, data string) RawSchema {
	t.Helper()
	var raw RawSchema
	require.NoError(t, mustUnmarshal(t, data, &raw))
	return raw
}

func mustCompileInternal(t *testing.T, schema string) *Schema {
	t.Helper()
	s, err := Parse("https://example.com/schema", []byte(schema))
	require.NoError(t, err)
	return s
}

func mustValue(t *testing.T, data string) value.Value {
	t.Helper()
	v, err := jsonParseLiteral([]byte(data))
	require.NoError(t, err)
	return v
}
