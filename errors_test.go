package jsonschema

import (
	"testing"

	goerrors "github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapKind_NilIsNil(t *testing.T) {
	require.NoError(t, wrapKind(KindInvalidSchema, nil))
}

func TestAs_MatchesWrappedKind(t *testing.T) {
	err := goerrors.Wrap(wrapKind(KindReferenceUnresolved, goerrors.New("boom")), "context")
	require.True(t, As(err, KindReferenceUnresolved))
	require.False(t, As(err, KindRegistryConflict))
}

func TestAs_NonErrorKind(t *testing.T) {
	require.False(t, As(goerrors.New("plain"), KindInvalidSchema))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "invalid schema", KindInvalidSchema.String())
	require.Equal(t, "registry conflict", KindRegistryConflict.String())
	require.Equal(t, "reference unresolved", KindReferenceUnresolved.String())
}
