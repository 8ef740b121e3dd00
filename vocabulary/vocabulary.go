// Package vocabulary holds the keyword sets and meta-schema documents for
// the JSON Schema drafts this engine understands, and a small registry so
// a draft can be looked up by its "$schema" URI the way a compiled
// Vocabulary is looked up by ID in the wider ecosystem.
package vocabulary

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed metaschemas/*.json
var metaSchemaFS embed.FS

// Vocabulary names one JSON Schema draft: its "$schema" identifier, the
// keyword names it recognizes, and the embedded meta-schema document that
// describes its own shape.
type Vocabulary struct {
	// Name is a short human label, e.g. "2020-12".
	Name string
	// ID is the value of "$schema" that selects this draft.
	ID string
	// Keywords is the set of keyword names this draft defines. It is
	// descriptive only: compilation does not consult it, so every keyword
	// the engine knows is compiled whatever draft a document declares, and
	// only keywords the engine does not know at all become annotations.
	Keywords map[string]struct{}
	// MetaSchemaPath names the file under metaschemas/ describing this
	// draft's own document shape.
	MetaSchemaPath string
}

// MetaSchema returns the embedded meta-schema document for v.
func (v Vocabulary) MetaSchema() ([]byte, error) {
	return metaSchemaFS.ReadFile("metaschemas/" + v.MetaSchemaPath)
}

func keywordSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

var commonKeywords = []string{
	"$id", "$schema", "$anchor", "$vocabulary", "$comment", "$defs", "$ref",
	"type", "enum", "const",
	"minLength", "maxLength", "pattern",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minItems", "maxItems", "uniqueItems",
	"minProperties", "maxProperties", "required", "dependentRequired",
	"allOf", "anyOf", "oneOf", "not", "if", "then", "else", "dependentSchemas",
	"properties", "patternProperties", "additionalProperties", "propertyNames",
	"contains", "minContains", "maxContains",
	"unevaluatedProperties", "unevaluatedItems",
	"title", "description", "default", "examples",
	"deprecated", "readOnly", "writeOnly", "format",
	"contentMediaType", "contentEncoding", "contentSchema",
}

// Draft201909 is the 2019-09 vocabulary: $recursiveRef/$recursiveAnchor,
// and "items" as either a single schema or a tuple array.
var Draft201909 = Vocabulary{
	Name:           "2019-09",
	ID:             "https://json-schema.org/draft/2019-09/schema",
	MetaSchemaPath: "2019-09.json",
	Keywords: keywordSet(append(append([]string{}, commonKeywords...),
		"$dynamicAnchor", "$recursiveRef", "$recursiveAnchor", "items")...),
}

// Draft202012 is the 2020-12 vocabulary: $dynamicRef/$dynamicAnchor, and
// the prefixItems/items split.
var Draft202012 = Vocabulary{
	Name:           "2020-12",
	ID:             "https://json-schema.org/draft/2020-12/schema",
	MetaSchemaPath: "2020-12.json",
	Keywords: keywordSet(append(append([]string{}, commonKeywords...),
		"$dynamicAnchor", "$dynamicRef", "items", "prefixItems")...),
}

type registry struct {
	mu      sync.RWMutex
	byID    map[string]Vocabulary
	defval  string
}

var reg = func() *registry {
	r := &registry{byID: map[string]Vocabulary{}}
	r.byID[Draft201909.ID] = Draft201909
	r.byID[Draft202012.ID] = Draft202012
	r.defval = Draft202012.ID
	return r
}()

// Register adds v to the global registry under its ID, panicking if that
// ID is already taken (an engine embeds a fixed, known set of drafts;
// a duplicate registration is a programming error, not runtime data).
func Register(v Vocabulary) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.byID[v.ID]; ok {
		panic(fmt.Sprintf("vocabulary: %q already registered", v.ID))
	}
	reg.byID[v.ID] = v
}

// Lookup returns the Vocabulary registered under schemaURI, trimming a
// trailing "#" the way a "$schema" value sometimes carries one.
func Lookup(schemaURI string) (Vocabulary, bool) {
	schemaURI = strings.TrimSuffix(schemaURI, "#")
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	v, ok := reg.byID[schemaURI]
	return v, ok
}

// Default returns the vocabulary used when a document declares no
// "$schema" of its own.
func Default() Vocabulary {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.byID[reg.defval]
}
