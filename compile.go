package jsonschema

import (
	"context"
	"net/url"
	"regexp"

	"github.com/go-faster/errors"

	"github.com/jsonschema-go/core/pointer"
)

// compileCtx threads the registry and the ambient cancellation context
// through one compile pass. Unlike Context (evaluator.go), it never
// touches the dynamic scope: $ref is resolved eagerly here; $recursiveRef
// and $dynamicRef only record their static fallback target plus the
// anchor name to search for at evaluation time.
type compileCtx struct {
	ctx      context.Context
	registry *Registry
}

// Compile compiles the document already registered (or fetchable via the
// registry's RemoteResolver) at uri into a Schema.
func Compile(ctx context.Context, registry *Registry, uri string) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parse uri %q", uri)
	}
	doc, err := registry.document(ctx, uri)
	if err != nil {
		return nil, err
	}
	docKey := stripFragment(base)
	root, ok := doc.ids[docKey]
	if !ok {
		return nil, wrapKind(KindReferenceUnresolved, errors.Errorf("no schema registered at %q", docKey))
	}
	cc := &compileCtx{ctx: ctx, registry: registry}
	return cc.compile(base, root, pointer.Root)
}

// CompileSchema registers raw under baseURI and compiles it, so any
// internal $ref can resolve back into it.
func CompileSchema(ctx context.Context, registry *Registry, baseURI string, raw RawSchema) (*Schema, error) {
	if err := registry.Register(baseURI, raw); err != nil {
		return nil, err
	}
	return Compile(ctx, registry, baseURI)
}

func (cc *compileCtx) compile(base *url.URL, raw *RawSchema, evalPath pointer.Pointer) (*Schema, error) {
	docKey := stripFragment(base)
	location := docKey + evalPath.Fragment()

	if cached, ok := cc.registry.lookupCompiled(location); ok {
		return cached, nil
	}

	if raw.Bool != nil {
		s := &Schema{boolSchema: raw.Bool, baseURI: docKey, evaluationPath: evalPath, location: location, registry: cc.registry}
		cc.registry.cacheCompiled(location, s)
		return s, nil
	}

	cur := base
	if raw.ID != "" {
		idURL, err := resolveURL(base, raw.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "parse $id %q", raw.ID)
		}
		cur = idURL
		docKey = stripFragment(cur)
		evalPath = pointer.Root
		location = docKey + evalPath.Fragment()
		if cached, ok := cc.registry.lookupCompiled(location); ok {
			return cached, nil
		}
	}

	s := &Schema{
		baseURI:        docKey,
		evaluationPath: evalPath,
		location:       location,
		registry:       cc.registry,
	}
	if raw.DynamicAnchor != "" {
		s.dynamicAnchor = raw.DynamicAnchor
	}
	if raw.RecursiveAnchor {
		s.recursiveAnchor = true
	}
	// Cache before compiling children so a self-referential $ref resolves
	// to this same pointer instead of recursing forever.
	cc.registry.cacheCompiled(location, s)

	b := &keywordBuilder{cc: cc, base: cur, evalPath: evalPath, out: s}
	if err := b.build(raw); err != nil {
		return nil, errors.Wrapf(err, "compile %q", location)
	}
	return s, nil
}

// compileChild compiles one subschema at seg relative to parent's
// location.
func (cc *compileCtx) compileChild(base *url.URL, raw *RawSchema, evalPath pointer.Pointer, seg string) (*Schema, error) {
	return cc.compile(base, raw, evalPath.Append(seg))
}

// compileRef resolves ref against base and compiles the target,
// returning the anchor name too (for $recursiveRef/$dynamicRef, which
// need it to search the dynamic scope at evaluation time).
func (cc *compileCtx) compileRef(base *url.URL, ref string) (target *Schema, anchorName string, err error) {
	raw, location, err := cc.registry.resolveRef(cc.ctx, base, ref)
	if err != nil {
		return nil, "", err
	}
	if cached, ok := cc.registry.lookupCompiled(location); ok {
		return cached, anchorNameOf(location), nil
	}

	targetBase, err := url.Parse(location)
	if err != nil {
		return nil, "", errors.Wrapf(err, "parse resolved location %q", location)
	}
	frag := targetBase.Fragment
	targetBase.Fragment = ""

	var evalPath pointer.Pointer
	if frag == "" || frag[0] == '/' {
		evalPath, err = pointer.ParseFragment("#" + frag)
		if err != nil {
			return nil, "", errors.Wrapf(err, "parse location pointer %q", frag)
		}
	} else {
		// Anchor-addressed target: its own structural pointer is not
		// directly recoverable from the anchor name, so it is compiled
		// with a fresh root-relative path. SchemaLocation still reports
		// the correct anchor-qualified location since location was
		// already computed by resolveRef.
		evalPath = pointer.Root
	}

	s, err := cc.compile(targetBase, raw, evalPath)
	if err != nil {
		return nil, "", err
	}
	return s, anchorNameOf(location), nil
}

func anchorNameOf(location string) string {
	for i := len(location) - 1; i >= 0; i-- {
		if location[i] == '#' {
			frag := location[i+1:]
			if frag == "" || frag[0] == '/' {
				return ""
			}
			return frag
		}
	}
	return ""
}

func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "pattern %q", pattern)
	}
	return re, nil
}
