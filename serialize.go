package jsonschema

import (
	"encoding/json"
	"sort"

	"github.com/go-faster/jx"
)

// OutputMode selects which of spec.md §6's two serialized shapes Serialize
// produces.
type OutputMode int

const (
	// Output2020 is the post-2020-12 {valid, evaluationPath, schemaLocation,
	// instanceLocation, annotations, errors, nested} shape.
	Output2020 OutputMode = iota
	// OutputPre2020 is the {valid, keywordLocation, absoluteKeywordLocation,
	// instanceLocation, error, errors, annotations} shape.
	OutputPre2020
)

// Serialize renders n (already shaped by ToFlag/ToBasic, or left
// Hierarchical) into its JSON wire form.
func (n *Node) Serialize(mode OutputMode) ([]byte, error) {
	var e jx.Encoder
	if mode == OutputPre2020 {
		n.encodePre2020(&e, true)
	} else {
		n.encode2020(&e, true)
	}
	return e.Bytes(), nil
}

func (n *Node) encode2020(e *jx.Encoder, isRoot bool) {
	if n.Exclude {
		return
	}
	e.ObjStart()
	e.FieldStart("valid")
	e.Bool(n.Valid)

	e.FieldStart("evaluationPath")
	e.Str(n.EvaluationPath.Fragment())
	if loc := n.SchemaLocation(); loc != "" {
		e.FieldStart("schemaLocation")
		e.Str(loc)
	}
	e.FieldStart("instanceLocation")
	e.Str(n.InstanceLocation.Fragment())

	if n.Valid && len(n.Annotations) > 0 {
		e.FieldStart("annotations")
		encodeAnyMap(e, n.Annotations)
	}
	if !n.Valid && len(n.Errors) > 0 {
		e.FieldStart("errors")
		e.ObjStart()
		for _, k := range sortedKeys(n.Errors) {
			e.FieldStart(k)
			e.Str(n.Errors[k])
		}
		e.ObjEnd()
	}

	var visible []*Node
	for _, child := range n.Nested {
		if !child.Exclude {
			visible = append(visible, child)
		}
	}
	if len(visible) > 0 {
		e.FieldStart("nested")
		e.ArrStart()
		for _, child := range visible {
			child.encode2020(e, false)
		}
		e.ArrEnd()
	}
	e.ObjEnd()
}

func (n *Node) encodePre2020(e *jx.Encoder, isRoot bool) {
	e.ObjStart()
	e.FieldStart("valid")
	e.Bool(n.Valid)

	e.FieldStart("keywordLocation")
	e.Str(n.EvaluationPath.Fragment())
	if loc := n.SchemaLocation(); loc != "" {
		e.FieldStart("absoluteKeywordLocation")
		e.Str(loc)
	}
	e.FieldStart("instanceLocation")
	e.Str(n.InstanceLocation.Fragment())

	if !n.Valid {
		if msg, ok := n.Errors[""]; ok {
			e.FieldStart("error")
			e.Str(msg)
		}

		var entries []*Node
		for _, child := range n.Nested {
			if !child.Exclude {
				entries = append(entries, child)
			}
		}
		hasLeftover := false
		for k := range n.Errors {
			if k != "" {
				hasLeftover = true
				break
			}
		}
		if len(entries) > 0 || hasLeftover {
			e.FieldStart("errors")
			e.ArrStart()
			for _, child := range entries {
				child.encodePre2020(e, false)
			}
			for _, k := range sortedKeys(n.Errors) {
				if k == "" {
					continue
				}
				e.ObjStart()
				e.FieldStart("keywordLocation")
				e.Str(n.EvaluationPath.Append(k).Fragment())
				if loc := n.SchemaLocation(); loc != "" {
					e.FieldStart("absoluteKeywordLocation")
					e.Str(loc + "/" + k)
				}
				e.FieldStart("error")
				e.Str(n.Errors[k])
				e.ObjEnd()
			}
			e.ArrEnd()
		}
	} else if len(n.Annotations) > 0 || len(n.Nested) > 0 {
		e.FieldStart("annotations")
		e.ArrStart()
		for _, child := range n.Nested {
			if child.Exclude {
				continue
			}
			child.encodePre2020(e, false)
		}
		for _, k := range sortedKeys(n.Annotations) {
			e.ObjStart()
			e.FieldStart("keywordLocation")
			e.Str(n.EvaluationPath.Append(k).Fragment())
			if loc := n.SchemaLocation(); loc != "" {
				e.FieldStart("absoluteKeywordLocation")
				e.Str(loc + "/" + k)
			}
			e.FieldStart("annotation")
			encodeAny(e, n.Annotations[k])
			e.ObjEnd()
		}
		e.ArrEnd()
	}
	e.ObjEnd()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encodeAnyMap(e *jx.Encoder, m map[string]any) {
	e.ObjStart()
	for _, k := range sortedKeys(m) {
		e.FieldStart(k)
		encodeAny(e, m[k])
	}
	e.ObjEnd()
}

func encodeAny(e *jx.Encoder, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		e.Null()
		return
	}
	e.Raw(b)
}

// ToFlag drops all nested results, annotations, and errors, retaining only
// validity (spec.md §4.4).
func (n *Node) ToFlag() *Node {
	return &Node{Valid: n.Valid, schema: n.schema}
}

// ToBasic flattens the hierarchical tree: descendants whose validity
// matches the root's and which carry either errors (invalid case) or
// annotations (valid case) are lifted into a single-level list under a
// fresh copy of the root, which becomes the first entry (spec.md §4.4 and
// the Design Notes' resolution of the ToBasic open question: root appears
// first, children follow in DFS order, not as the root's own sibling).
func (n *Node) ToBasic() *Node {
	root := &Node{
		Valid:            n.Valid,
		EvaluationPath:   n.EvaluationPath,
		InstanceLocation: n.InstanceLocation,
		Annotations:      n.Annotations,
		Errors:           n.Errors,
		schema:           n.schema,
		schemaLocation:   n.SchemaLocation(),
		schemaLocSet:     true,
	}

	var flat []*Node
	var walk func(node *Node)
	walk = func(node *Node) {
		for _, child := range node.Nested {
			if child.Exclude {
				continue
			}
			if child.Valid == n.Valid && (len(child.Errors) > 0 || len(child.Annotations) > 0) {
				flat = append(flat, &Node{
					Valid:            child.Valid,
					EvaluationPath:   child.EvaluationPath,
					InstanceLocation: child.InstanceLocation,
					Annotations:      child.Annotations,
					Errors:           child.Errors,
					Parent:           root,
					schema:           child.schema,
					schemaLocation:   child.SchemaLocation(),
					schemaLocSet:     true,
				})
			}
			walk(child)
		}
	}
	walk(n)

	root.Nested = flat
	return root
}
