package jsonschema

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-faster/errors"

	"github.com/jsonschema-go/core/pointer"
)

// Registry is the compile-time schema store: spec.md §4.1's "Schema
// Registry" component. It holds every registered/fetched document, their
// $id/$anchor/$dynamicAnchor indexes, and the cache of already-compiled
// Schema nodes keyed by absolute location.
//
// A Registry may be shared across goroutines once compilation has
// finished; during compilation it is guarded by mu, since Register and
// Compile may run concurrently for independent root schemas sharing one
// remote cache.
type Registry struct {
	mu sync.RWMutex

	remote RemoteResolver

	// docs maps a fragment-free base URI to the document parsed from it.
	docs map[string]*document
	// compiled maps an absolute location (baseURI + "#" + pointer-or-anchor)
	// to its already-compiled Schema, so repeated $ref targets and cyclic
	// schemas compile exactly once (spec.md §5). compile() populates an
	// entry for a location before compiling that schema's own keywords,
	// so a $ref cycle back to the same location resolves to the
	// in-progress *Schema instead of recursing forever.
	compiled map[string]*Schema
}

// NewRegistry constructs an empty Registry. remote is consulted for any
// $ref whose target was never explicitly Register-ed; pass NoRemote{} to
// disable network resolution entirely.
func NewRegistry(remote RemoteResolver) *Registry {
	if remote == nil {
		remote = NoRemote{}
	}
	return &Registry{
		remote:   remote,
		docs:     map[string]*document{},
		compiled: map[string]*Schema{},
	}
}

// Register adds schema as the document rooted at uri, indexing its
// $id/$anchor/$dynamicAnchor declarations. Re-registering the same uri
// with byte-identical content is a no-op; registering different content
// under an already-registered uri fails, per spec.md §4.1's "registering
// a URI already bound to different content" conflict case.
func (r *Registry) Register(uri string, schema RawSchema) error {
	base, err := url.Parse(uri)
	if err != nil {
		return errors.Wrapf(err, "parse registry uri %q", uri)
	}
	doc, err := collectIDs(base, &schema)
	if err != nil {
		return errors.Wrapf(err, "index %q", uri)
	}

	key := stripFragment(base)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.docs[key]; ok {
		if !sameDocument(existing, doc) {
			return wrapKind(KindRegistryConflict, errors.Errorf("%q already registered with different content", key))
		}
		return nil
	}
	r.docs[key] = doc
	// The document is also reachable under every $id declared inside it, so
	// a $ref resolved against a rebased $id finds the same document.
	for id := range doc.ids {
		if _, ok := r.docs[id]; !ok {
			r.docs[id] = doc
		}
	}
	return nil
}

func sameDocument(a, b *document) bool {
	ra, errA := json.Marshal(rootOf(a))
	rb, errB := json.Marshal(rootOf(b))
	if errA != nil || errB != nil {
		return false
	}
	return string(ra) == string(rb)
}

func rootOf(doc *document) *RawSchema {
	if s, ok := doc.ids[stripFragment(doc.base)]; ok {
		return s
	}
	return nil
}

// document fetches (via remote resolution, caching the result) the
// document rooted at the fragment-free form of uri.
func (r *Registry) document(ctx context.Context, uri string) (*document, error) {
	base, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parse uri %q", uri)
	}
	key := stripFragment(base)

	r.mu.RLock()
	doc, ok := r.docs[key]
	r.mu.RUnlock()
	if ok {
		return doc, nil
	}

	data, err := r.remote.Resolve(ctx, key)
	if err != nil {
		return nil, wrapKind(KindReferenceUnresolved, errors.Wrapf(err, "resolve %q", key))
	}
	var raw RawSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse fetched schema %q", key)
	}
	if err := r.Register(key, raw); err != nil {
		return nil, err
	}

	r.mu.RLock()
	doc = r.docs[key]
	r.mu.RUnlock()
	return doc, nil
}

// resolveRef resolves ref (a $ref/$recursiveRef/$dynamicRef value) against
// base, returning the target RawSchema and its absolute location string
// (the fragment-free document URI, plus "#" and the pointer or anchor name
// when ref has a fragment).
func (r *Registry) resolveRef(ctx context.Context, base *url.URL, ref string) (*RawSchema, string, error) {
	target, err := resolveURL(base, ref)
	if err != nil {
		return nil, "", errors.Wrapf(err, "resolve ref %q", ref)
	}

	doc, err := r.document(ctx, target.String())
	if err != nil {
		return nil, "", err
	}

	docKey := stripFragment(target)
	frag := target.Fragment

	if frag == "" {
		root, ok := doc.ids[docKey]
		if !ok {
			return nil, "", wrapKind(KindReferenceUnresolved, errors.Errorf("no schema rooted at %q", docKey))
		}
		return root, docKey, nil
	}

	if frag[0] == '/' {
		ptr, err := pointer.Parse(frag)
		if err != nil {
			return nil, "", errors.Wrapf(err, "ref fragment %q", frag)
		}
		root, ok := doc.ids[docKey]
		if !ok {
			return nil, "", wrapKind(KindReferenceUnresolved, errors.Errorf("no schema rooted at %q", docKey))
		}
		found, err := navigate(root, ptr.Segments())
		if err != nil {
			return nil, "", wrapKind(KindReferenceUnresolved, errors.Wrapf(err, "navigate %q", frag))
		}
		return found, docKey + "#" + ptr.String(), nil
	}

	// Plain-name fragment: an $anchor.
	key := anchorKey{base: docKey, anchor: frag}
	if found, ok := doc.anchors[key]; ok {
		return found, docKey + "#" + frag, nil
	}
	if found, ok := doc.dynamicAnchors[key]; ok {
		return found, docKey + "#" + frag, nil
	}
	return nil, "", wrapKind(KindReferenceUnresolved, errors.Errorf("no $anchor %q in %q", frag, docKey))
}

// navigate walks a RawSchema tree by JSON Pointer segments, following the
// same child sites document.walk indexes. Container keywords
// (properties, allOf, $defs, ...) consume two segments at a time: the
// keyword name, then the member name or index within it.
func navigate(schema *RawSchema, segments []string) (*RawSchema, error) {
	cur := schema
	i := 0
	for i < len(segments) {
		seg := segments[i]
		if cur == nil || cur.Bool != nil {
			return nil, errors.Errorf("segment %d (%q): cannot descend into a boolean schema", i, seg)
		}
		if isContainerKeyword(seg) {
			if i+1 >= len(segments) {
				return nil, errors.Errorf("segment %d (%q): missing member segment", i, seg)
			}
			next, err := stepInto(cur, seg, segments[i+1])
			if err != nil {
				return nil, errors.Wrapf(err, "segment %d (%q/%q)", i, seg, segments[i+1])
			}
			cur = next
			i += 2
			continue
		}
		next, err := step(cur, seg)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d (%q)", i, seg)
		}
		if next == nil {
			return nil, errors.Errorf("segment %d (%q): not found", i, seg)
		}
		cur = next
		i++
	}
	return cur, nil
}

func isContainerKeyword(seg string) bool {
	switch seg {
	case "properties", "patternProperties", "dependentSchemas", "$defs",
		"allOf", "anyOf", "oneOf", "prefixItems":
		return true
	}
	return false
}

func step(s *RawSchema, seg string) (*RawSchema, error) {
	switch seg {
	case "additionalProperties":
		return s.AdditionalProperties, nil
	case "propertyNames":
		return s.PropertyNames, nil
	case "items":
		return s.Items, nil
	case "contains":
		return s.Contains, nil
	case "not":
		return s.Not, nil
	case "if":
		return s.If, nil
	case "then":
		return s.Then, nil
	case "else":
		return s.Else, nil
	case "unevaluatedProperties":
		return s.UnevaluatedProperties, nil
	case "unevaluatedItems":
		return s.UnevaluatedItems, nil
	case "contentSchema":
		return s.ContentSchema, nil
	}
	return nil, errors.Errorf("unknown pointer segment %q", seg)
}

// stepInto resolves the member-name/index segment following one of the
// container keywords navigate recognizes via isContainerKeyword.
func stepInto(parent *RawSchema, key, seg string) (*RawSchema, error) {
	find := func(props RawProperties) (*RawSchema, error) {
		for i := range props {
			if props[i].Name == seg {
				return &props[i].Schema, nil
			}
		}
		return nil, errors.Errorf("no property %q", seg)
	}
	findIdx := func(schemas []RawSchema) (*RawSchema, error) {
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(schemas) {
			return nil, errors.Errorf("invalid index %q", seg)
		}
		return &schemas[idx], nil
	}
	switch key {
	case "properties":
		return find(parent.Properties)
	case "patternProperties":
		return find(parent.PatternProperties)
	case "dependentSchemas":
		return find(parent.DependentSchemas)
	case "$defs":
		return find(parent.Defs)
	case "allOf":
		return findIdx(parent.AllOf)
	case "anyOf":
		return findIdx(parent.AnyOf)
	case "oneOf":
		return findIdx(parent.OneOf)
	case "prefixItems":
		return findIdx(parent.PrefixItems)
	}
	return nil, errors.Errorf("unknown container keyword %q", key)
}

// cacheCompiled records s as the compiled result for location, so later
// references to the same location reuse it instead of recompiling.
func (r *Registry) cacheCompiled(location string, s *Schema) {
	r.mu.Lock()
	r.compiled[location] = s
	r.mu.Unlock()
}

// lookupCompiled returns the already-compiled Schema at location, if any.
func (r *Registry) lookupCompiled(location string) (*Schema, bool) {
	r.mu.RLock()
	s, ok := r.compiled[location]
	r.mu.RUnlock()
	return s, ok
}
