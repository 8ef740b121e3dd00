package jsonschema

import (
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"

	"github.com/jsonschema-go/core/vocabulary"
)

// metaRegistry and metaSchemas cache the two embedded meta-schemas
// compiled exactly once, independent of any caller-supplied Registry, so
// WithMetaSchemaValidation never mutates or shares state with the
// registry a caller is compiling their own schema into.
var (
	metaOnce     sync.Once
	metaRegistry = NewRegistry(NoRemote{})
	metaSchemas  = map[string]*Schema{}
	metaErr      error
)

func loadMetaSchemas() {
	for _, v := range []vocabulary.Vocabulary{vocabulary.Draft201909, vocabulary.Draft202012} {
		data, err := v.MetaSchema()
		if err != nil {
			metaErr = errors.Wrapf(err, "load meta-schema %q", v.Name)
			return
		}
		s, err := ParseWithRegistry(metaRegistry, v.ID, data)
		if err != nil {
			metaErr = errors.Wrapf(err, "compile meta-schema %q", v.Name)
			return
		}
		metaSchemas[v.ID] = s
	}
}

// validateAgainstMetaSchema checks raw's own JSON shape against the
// meta-schema of the draft it declares via "$schema" (vocabulary.Default
// when absent).
func validateAgainstMetaSchema(reg *Registry, raw RawSchema) error {
	metaOnce.Do(loadMetaSchemas)
	if metaErr != nil {
		return metaErr
	}

	v := vocabulary.Default()
	if raw.Schema != "" {
		if found, ok := vocabulary.Lookup(raw.Schema); ok {
			v = found
		}
	}
	meta, ok := metaSchemas[v.ID]
	if !ok {
		return wrapKind(KindInvalidSchema, errors.Errorf("no meta-schema registered for %q", v.ID))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return wrapKind(KindInvalidSchema, errors.Wrap(err, "marshal schema for meta-schema check"))
	}

	result, err := ValidateJSON(meta, data)
	if err != nil {
		return wrapKind(KindInvalidSchema, errors.Wrap(err, "run meta-schema validation"))
	}
	if !result.Valid {
		return wrapKind(KindInvalidSchema, errors.Errorf("schema does not conform to %s meta-schema", v.Name))
	}
	return nil
}
