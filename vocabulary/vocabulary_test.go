package vocabulary_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonschema-go/core/vocabulary"
)

func TestMetaSchemasEmbedded(t *testing.T) {
	for _, v := range []vocabulary.Vocabulary{vocabulary.Draft201909, vocabulary.Draft202012} {
		v := v
		t.Run(v.Name, func(t *testing.T) {
			data, err := v.MetaSchema()
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, json.Unmarshal(data, &doc))
			require.Equal(t, v.ID, doc["$id"])
		})
	}
}

func TestLookup(t *testing.T) {
	v, ok := vocabulary.Lookup("https://json-schema.org/draft/2020-12/schema")
	require.True(t, ok)
	require.Equal(t, "2020-12", v.Name)

	v, ok = vocabulary.Lookup("https://json-schema.org/draft/2019-09/schema#")
	require.True(t, ok)
	require.Equal(t, "2019-09", v.Name)

	_, ok = vocabulary.Lookup("https://json-schema.org/draft-07/schema#")
	require.False(t, ok)
}

func TestDefaultIsLatestDraft(t *testing.T) {
	require.Equal(t, vocabulary.Draft202012.ID, vocabulary.Default().ID)
}

func TestKeywordSetsCoverBothFormsOfItems(t *testing.T) {
	_, ok := vocabulary.Draft201909.Keywords["items"]
	require.True(t, ok)
	_, ok = vocabulary.Draft201909.Keywords["prefixItems"]
	require.False(t, ok)

	_, ok = vocabulary.Draft202012.Keywords["prefixItems"]
	require.True(t, ok)
}
