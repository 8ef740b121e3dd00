package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core/pointer"
)

func TestPointer_String(t *testing.T) {
	p := pointer.Root.Append("a").Append("b~c").Append("d/e").Child(3)
	require.Equal(t, "/a/b~0c/d~1e/3", p.String())
	require.Equal(t, "#/a/b~0c/d~1e/3", p.Fragment())
}

func TestPointer_RootString(t *testing.T) {
	require.Equal(t, "", pointer.Root.String())
	require.Equal(t, "#", pointer.Root.Fragment())
	require.True(t, pointer.Root.IsRoot())
}

func TestParse(t *testing.T) {
	p, err := pointer.Parse("/a/b~0c/d~1e/3")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b~c", "d/e", "3"}, p.Segments())
}

func TestParse_invalid(t *testing.T) {
	_, err := pointer.Parse("a/b")
	require.Error(t, err)
}

func TestParseFragment(t *testing.T) {
	p, err := pointer.ParseFragment("#/a/b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, p.Segments())
}

func TestPointer_AppendImmutable(t *testing.T) {
	base := pointer.Root.Append("a")
	child1 := base.Append("b")
	child2 := base.Append("c")
	require.Equal(t, "/a/b", child1.String())
	require.Equal(t, "/a/c", child2.String())
	require.Equal(t, "/a", base.String())
}
