package jsonschema

import (
	"encoding/json"
	"math/big"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/jsonschema-go/core/pointer"
)

// keywordBuilder compiles one RawSchema object's keywords into out,
// threading the compile context, the schema's resolved base URI, and its
// structural evaluation path down to every subschema it compiles.
type keywordBuilder struct {
	cc       *compileCtx
	base     *url.URL
	evalPath pointer.Pointer
	out      *Schema
}

func (b *keywordBuilder) child(raw *RawSchema, seg string) (*Schema, error) {
	return b.cc.compileChild(b.base, raw, b.evalPath, seg)
}

func (b *keywordBuilder) add(kw Keyword) { b.out.keywords = append(b.out.keywords, kw) }

func parseNum(n Num) (*big.Rat, bool, error) {
	if len(n) == 0 {
		return nil, false, nil
	}
	r := new(big.Rat)
	if err := r.UnmarshalText(n); err != nil {
		return nil, false, errors.Wrap(err, "parse number")
	}
	return r, true, nil
}

func extractAnchorName(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.Fragment == "" || strings.HasPrefix(u.Fragment, "/") {
		return ""
	}
	return u.Fragment
}

func (b *keywordBuilder) build(raw *RawSchema) error {
	if ref := raw.Ref; ref != "" {
		target, _, err := b.cc.compileRef(b.base, ref)
		if err != nil {
			return errors.Wrapf(err, "$ref %q", ref)
		}
		b.add(&refKeyword{target: target})
	}
	if ref := raw.RecursiveRef; ref != "" {
		target, _, err := b.cc.compileRef(b.base, ref)
		if err != nil {
			return errors.Wrapf(err, "$recursiveRef %q", ref)
		}
		b.add(&dynamicRefKeyword{name: "$recursiveRef", anchorName: recursiveAnchorName, static: target})
	}
	if ref := raw.DynamicRef; ref != "" {
		target, _, err := b.cc.compileRef(b.base, ref)
		if err != nil {
			return errors.Wrapf(err, "$dynamicRef %q", ref)
		}
		b.add(&dynamicRefKeyword{name: "$dynamicRef", anchorName: extractAnchorName(ref), static: target})
	}

	if len(raw.Type) > 0 {
		b.add(&typeKeyword{types: raw.Type})
	}
	if raw.Enum != nil {
		raws := make([]jx.Raw, len(raw.Enum))
		for i, m := range raw.Enum {
			raws[i] = jx.Raw(m)
		}
		b.add(&enumKeyword{raws: raws})
	}
	if raw.Const != nil {
		b.add(&constKeyword{raw: jx.Raw(*raw.Const)})
	}

	if raw.MinLength != nil {
		b.add(&minLengthKeyword{n: *raw.MinLength})
	}
	if raw.MaxLength != nil {
		b.add(&maxLengthKeyword{n: *raw.MaxLength})
	}
	if raw.Pattern != "" {
		re, err := compileRegexp(raw.Pattern)
		if err != nil {
			return err
		}
		b.add(&patternKeyword{re: re, src: raw.Pattern})
	}

	if n, ok, err := parseNum(raw.Minimum); err != nil {
		return errors.Wrap(err, "minimum")
	} else if ok {
		b.add(&minimumKeyword{n: n})
	}
	if n, ok, err := parseNum(raw.Maximum); err != nil {
		return errors.Wrap(err, "maximum")
	} else if ok {
		b.add(&maximumKeyword{n: n})
	}
	if n, ok, err := parseNum(raw.ExclusiveMinimum); err != nil {
		return errors.Wrap(err, "exclusiveMinimum")
	} else if ok {
		b.add(&exclusiveMinimumKeyword{n: n})
	}
	if n, ok, err := parseNum(raw.ExclusiveMaximum); err != nil {
		return errors.Wrap(err, "exclusiveMaximum")
	} else if ok {
		b.add(&exclusiveMaximumKeyword{n: n})
	}
	if n, ok, err := parseNum(raw.MultipleOf); err != nil {
		return errors.Wrap(err, "multipleOf")
	} else if ok {
		b.add(&multipleOfKeyword{n: n})
	}

	if raw.MinItems != nil {
		b.add(&minItemsKeyword{n: *raw.MinItems})
	}
	if raw.MaxItems != nil {
		b.add(&maxItemsKeyword{n: *raw.MaxItems})
	}
	if raw.UniqueItems {
		b.add(&uniqueItemsKeyword{})
	}

	if raw.MinProperties != nil {
		b.add(&minPropertiesKeyword{n: *raw.MinProperties})
	}
	if raw.MaxProperties != nil {
		b.add(&maxPropertiesKeyword{n: *raw.MaxProperties})
	}
	if len(raw.Required) > 0 {
		b.add(&requiredKeyword{names: raw.Required})
	}
	if len(raw.DependentRequired) > 0 {
		b.add(&dependentRequiredKeyword{rules: raw.DependentRequired})
	}

	if len(raw.Properties) > 0 {
		props := make(map[string]*Schema, len(raw.Properties))
		for _, p := range raw.Properties {
			sub, err := b.cc.compileChild(b.base, &p.Schema, b.evalPath.Append("properties"), p.Name)
			if err != nil {
				return errors.Wrapf(err, "properties.%s", p.Name)
			}
			props[p.Name] = sub
		}
		b.add(&propertiesKeyword{props: props})
	}

	var patternRegexes []*regexp.Regexp
	if len(raw.PatternProperties) > 0 {
		patterns := make([]patternSchema, 0, len(raw.PatternProperties))
		for _, p := range raw.PatternProperties {
			re, err := compileRegexp(p.Name)
			if err != nil {
				return errors.Wrapf(err, "patternProperties.%s", p.Name)
			}
			sub, err := b.cc.compileChild(b.base, &p.Schema, b.evalPath.Append("patternProperties"), p.Name)
			if err != nil {
				return errors.Wrapf(err, "patternProperties.%s", p.Name)
			}
			patterns = append(patterns, patternSchema{re: re, src: p.Name, schema: sub})
			patternRegexes = append(patternRegexes, re)
		}
		b.add(&patternPropertiesKeyword{patterns: patterns})
	}

	if raw.AdditionalProperties != nil {
		sub, err := b.child(raw.AdditionalProperties, "additionalProperties")
		if err != nil {
			return errors.Wrap(err, "additionalProperties")
		}
		propNames := map[string]struct{}{}
		for _, p := range raw.Properties {
			propNames[p.Name] = struct{}{}
		}
		b.add(&additionalPropertiesKeyword{schema: sub, propNames: propNames, patternRegex: patternRegexes})
	}

	if raw.PropertyNames != nil {
		sub, err := b.child(raw.PropertyNames, "propertyNames")
		if err != nil {
			return errors.Wrap(err, "propertyNames")
		}
		b.add(&propertyNamesKeyword{schema: sub})
	}

	if len(raw.DependentSchemas) > 0 {
		rules := make(map[string]*Schema, len(raw.DependentSchemas))
		for _, p := range raw.DependentSchemas {
			sub, err := b.cc.compileChild(b.base, &p.Schema, b.evalPath.Append("dependentSchemas"), p.Name)
			if err != nil {
				return errors.Wrapf(err, "dependentSchemas.%s", p.Name)
			}
			rules[p.Name] = sub
		}
		b.add(&dependentSchemasKeyword{rules: rules})
	}

	prefixCount := 0
	if len(raw.PrefixItems) > 0 {
		schemas := make([]*Schema, len(raw.PrefixItems))
		for i := range raw.PrefixItems {
			sub, err := b.cc.compileChild(b.base, &raw.PrefixItems[i], b.evalPath.Append("prefixItems"), strconv.Itoa(i))
			if err != nil {
				return errors.Wrapf(err, "prefixItems[%d]", i)
			}
			schemas[i] = sub
		}
		prefixCount = len(schemas)
		b.add(&prefixItemsKeyword{schemas: schemas})
	}
	if raw.Items != nil {
		sub, err := b.child(raw.Items, "items")
		if err != nil {
			return errors.Wrap(err, "items")
		}
		b.add(&itemsKeyword{schema: sub, prefixCount: prefixCount})
	}
	if raw.Contains != nil {
		sub, err := b.child(raw.Contains, "contains")
		if err != nil {
			return errors.Wrap(err, "contains")
		}
		min := uint64(1)
		if raw.MinContains != nil {
			min = *raw.MinContains
		}
		var max uint64
		var hasMax bool
		if raw.MaxContains != nil {
			max, hasMax = *raw.MaxContains, true
		}
		b.add(&containsKeyword{schema: sub, min: min, max: max, hasMax: hasMax})
	}

	for _, many := range []struct {
		name    string
		schemas []RawSchema
		build   func([]*Schema) Keyword
	}{
		{"allOf", raw.AllOf, func(s []*Schema) Keyword { return &allOfKeyword{schemas: s} }},
		{"anyOf", raw.AnyOf, func(s []*Schema) Keyword { return &anyOfKeyword{schemas: s} }},
		{"oneOf", raw.OneOf, func(s []*Schema) Keyword { return &oneOfKeyword{schemas: s} }},
	} {
		if len(many.schemas) == 0 {
			continue
		}
		schemas := make([]*Schema, len(many.schemas))
		for i := range many.schemas {
			sub, err := b.cc.compile(b.base, &many.schemas[i], b.evalPath.Append(many.name).Child(i))
			if err != nil {
				return errors.Wrapf(err, "%s[%d]", many.name, i)
			}
			schemas[i] = sub
		}
		b.add(many.build(schemas))
	}
	if raw.Not != nil {
		sub, err := b.child(raw.Not, "not")
		if err != nil {
			return errors.Wrap(err, "not")
		}
		b.add(&notKeyword{schema: sub})
	}
	if raw.If != nil {
		ifSub, err := b.child(raw.If, "if")
		if err != nil {
			return errors.Wrap(err, "if")
		}
		var thenSub, elseSub *Schema
		if raw.Then != nil {
			thenSub, err = b.child(raw.Then, "then")
			if err != nil {
				return errors.Wrap(err, "then")
			}
		}
		if raw.Else != nil {
			elseSub, err = b.child(raw.Else, "else")
			if err != nil {
				return errors.Wrap(err, "else")
			}
		}
		b.add(&ifThenElseKeyword{ifSchema: ifSub, thenSchema: thenSub, elseSchema: elseSub})
	}

	if raw.UnevaluatedProperties != nil {
		sub, err := b.child(raw.UnevaluatedProperties, "unevaluatedProperties")
		if err != nil {
			return errors.Wrap(err, "unevaluatedProperties")
		}
		b.add(&unevaluatedPropertiesKeyword{schema: sub})
	}
	if raw.UnevaluatedItems != nil {
		sub, err := b.child(raw.UnevaluatedItems, "unevaluatedItems")
		if err != nil {
			return errors.Wrap(err, "unevaluatedItems")
		}
		b.add(&unevaluatedItemsKeyword{schema: sub})
	}

	annotate := func(name string, v any, present bool) {
		if present {
			b.add(&annotationKeyword{name: name, val: v})
		}
	}
	annotate("title", raw.Title, raw.Title != "")
	annotate("description", raw.Description, raw.Description != "")
	annotate("default", rawToAny(derefRaw(raw.Default)), raw.Default != nil)
	if len(raw.Examples) > 0 {
		examples := make([]any, len(raw.Examples))
		for i, e := range raw.Examples {
			examples[i] = rawToAny(e)
		}
		b.add(&annotationKeyword{name: "examples", val: examples})
	}
	annotate("deprecated", raw.Deprecated, raw.Deprecated)
	annotate("readOnly", raw.ReadOnly, raw.ReadOnly)
	annotate("writeOnly", raw.WriteOnly, raw.WriteOnly)
	annotate("format", raw.Format, raw.Format != "")
	annotate("contentMediaType", raw.ContentMediaType, raw.ContentMediaType != "")
	annotate("contentEncoding", raw.ContentEncoding, raw.ContentEncoding != "")
	if raw.ContentSchema != nil {
		sub, err := b.child(raw.ContentSchema, "contentSchema")
		if err != nil {
			return errors.Wrap(err, "contentSchema")
		}
		b.add(&contentSchemaKeyword{schema: sub})
	}

	for name, v := range raw.Unknown {
		b.add(&annotationKeyword{name: name, val: rawToAny(v)})
	}

	sort.SliceStable(b.out.keywords, func(i, j int) bool {
		ki, kj := b.out.keywords[i], b.out.keywords[j]
		if ki.Group() != kj.Group() {
			return ki.Group() < kj.Group()
		}
		return ki.Name() < kj.Name()
	})
	return nil
}

func derefRaw(r *json.RawMessage) json.RawMessage {
	if r == nil {
		return nil
	}
	return *r
}
