package jsonschema

import (
	"net/url"

	"github.com/go-faster/errors"
)

// document is one registered schema tree plus every $id/$anchor/
// $dynamicAnchor declared anywhere inside it. A nested $id does not start
// a separate document: it is indexed in this document's ids map (and
// Registry.Register makes the document reachable under that URI too),
// found the same way the teacher's collectIDs walks "properties"/"items"/
// "allOf" etc. to find nested "id" values — generalized here to operate
// over the already-parsed RawSchema tree instead of raw bytes, since
// RawSchema.UnmarshalJSON already gives us a structured walk for free.
type document struct {
	base *url.URL
	// ids maps absolute URI (fragment-free) -> the RawSchema rooted there.
	ids map[string]*RawSchema
	// anchors maps (baseURI, anchor name) -> RawSchema for "$anchor".
	anchors map[anchorKey]*RawSchema
	// dynamicAnchors maps (baseURI, anchor name) -> RawSchema for
	// "$dynamicAnchor", plus a by-name-only index for dynamic resolution.
	dynamicAnchors map[anchorKey]*RawSchema
	dynamicByName  map[string][]*RawSchema
}

type anchorKey struct {
	base   string
	anchor string
}

// collectIDs walks schema (already structurally parsed) and indexes every
// $id/$anchor/$dynamicAnchor it declares, resolving $id against base.
func collectIDs(base *url.URL, schema *RawSchema) (*document, error) {
	doc := &document{
		base:           base,
		ids:            map[string]*RawSchema{},
		anchors:        map[anchorKey]*RawSchema{},
		dynamicAnchors: map[anchorKey]*RawSchema{},
		dynamicByName:  map[string][]*RawSchema{},
	}
	if err := doc.walk(base, schema); err != nil {
		return nil, errors.Wrap(err, "collect ids")
	}
	// The root is always addressable by the URI it was registered/fetched
	// under, $id or not; an explicit $id additionally indexes it there
	// (set by walk above).
	if _, ok := doc.ids[stripFragment(base)]; !ok {
		doc.ids[stripFragment(base)] = schema
	}
	return doc, nil
}

func (doc *document) walk(base *url.URL, schema *RawSchema) error {
	if schema == nil || schema.Bool != nil {
		return nil
	}

	cur := base
	if schema.ID != "" {
		idURL, err := resolveURL(base, schema.ID)
		if err != nil {
			return errors.Wrapf(err, "parse $id %q", schema.ID)
		}
		cur = idURL
		doc.ids[stripFragment(cur)] = schema
	}
	if doc.base == nil && base == nil {
		doc.base = cur
	}

	if schema.Anchor != "" {
		doc.anchors[anchorKey{base: locString(cur), anchor: schema.Anchor}] = schema
	}
	if schema.DynamicAnchor != "" {
		key := anchorKey{base: locString(cur), anchor: schema.DynamicAnchor}
		doc.dynamicAnchors[key] = schema
		doc.dynamicByName[schema.DynamicAnchor] = append(doc.dynamicByName[schema.DynamicAnchor], schema)
	}

	walkMany := func(schemas []RawSchema) error {
		for i := range schemas {
			if err := doc.walk(cur, &schemas[i]); err != nil {
				return errors.Wrapf(err, "[%d]", i)
			}
		}
		return nil
	}
	walkProps := func(props RawProperties) error {
		for i := range props {
			if err := doc.walk(cur, &props[i].Schema); err != nil {
				return errors.Wrapf(err, "%q", props[i].Name)
			}
		}
		return nil
	}

	if err := walkProps(schema.Defs); err != nil {
		return errors.Wrap(err, "$defs")
	}
	if err := walkMany(schema.AllOf); err != nil {
		return errors.Wrap(err, "allOf")
	}
	if err := walkMany(schema.AnyOf); err != nil {
		return errors.Wrap(err, "anyOf")
	}
	if err := walkMany(schema.OneOf); err != nil {
		return errors.Wrap(err, "oneOf")
	}
	for _, single := range []*RawSchema{schema.Not, schema.If, schema.Then, schema.Else,
		schema.AdditionalProperties, schema.PropertyNames, schema.Items,
		schema.Contains, schema.UnevaluatedProperties, schema.UnevaluatedItems,
		schema.ContentSchema} {
		if err := doc.walk(cur, single); err != nil {
			return err
		}
	}
	if err := walkMany(schema.PrefixItems); err != nil {
		return errors.Wrap(err, "prefixItems")
	}
	if err := walkProps(schema.Properties); err != nil {
		return errors.Wrap(err, "properties")
	}
	if err := walkProps(schema.PatternProperties); err != nil {
		return errors.Wrap(err, "patternProperties")
	}
	if err := walkProps(schema.DependentSchemas); err != nil {
		return errors.Wrap(err, "dependentSchemas")
	}
	return nil
}

func stripFragment(u *url.URL) string {
	if u == nil {
		return ""
	}
	cpy := *u
	cpy.Fragment = ""
	return cpy.String()
}

func locString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return stripFragment(u)
}

func resolveURL(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	if base != nil {
		return base.ResolveReference(u), nil
	}
	return u, nil
}
