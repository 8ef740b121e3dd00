package jsonschema

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/jsonschema-go/core/value"
)

type minPropertiesKeyword struct{ n uint64 }

func (k *minPropertiesKeyword) Name() string { return "minProperties" }
func (k *minPropertiesKeyword) Group() Group { return GroupStructural }
func (k *minPropertiesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Object {
		if n, err := value.Len(inst); err == nil && uint64(n) < k.n {
			child.Fail(k.Name(), fmt.Sprintf("object has %d properties, fewer than minProperties %d", n, k.n))
		}
	}
	parent.Attach(child)
}

type maxPropertiesKeyword struct{ n uint64 }

func (k *maxPropertiesKeyword) Name() string { return "maxProperties" }
func (k *maxPropertiesKeyword) Group() Group { return GroupStructural }
func (k *maxPropertiesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Object {
		if n, err := value.Len(inst); err == nil && uint64(n) > k.n {
			child.Fail(k.Name(), fmt.Sprintf("object has %d properties, more than maxProperties %d", n, k.n))
		}
	}
	parent.Attach(child)
}

type requiredKeyword struct{ names []string }

func (k *requiredKeyword) Name() string { return "required" }
func (k *requiredKeyword) Group() Group { return GroupStructural }
func (k *requiredKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Object {
		present, _, err := objectMap(inst)
		if err == nil {
			var missing []string
			for _, name := range k.names {
				if _, ok := present[name]; !ok {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				sort.Strings(missing)
				child.Fail(k.Name(), fmt.Sprintf("missing required properties: %v", missing))
			}
		}
	}
	parent.Attach(child)
}

type dependentRequiredKeyword struct {
	rules map[string][]string
}

func (k *dependentRequiredKeyword) Name() string { return "dependentRequired" }
func (k *dependentRequiredKeyword) Group() Group { return GroupStructural }
func (k *dependentRequiredKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Object {
		present, _, err := objectMap(inst)
		if err == nil {
			for trigger, deps := range k.rules {
				if _, ok := present[trigger]; !ok {
					continue
				}
				for _, dep := range deps {
					if _, ok := present[dep]; !ok {
						child.Fail(k.Name(), fmt.Sprintf("property %q requires %q", trigger, dep))
					}
				}
			}
		}
	}
	parent.Attach(child)
}

// propertiesKeyword implements "properties": each matching member is
// validated against its named subschema, one nested result per member,
// and the member names are recorded as an annotation for
// unevaluatedProperties to consume.
type propertiesKeyword struct {
	props map[string]*Schema
}

func (k *propertiesKeyword) Name() string { return "properties" }
func (k *propertiesKeyword) Group() Group { return GroupChildApplicator }
func (k *propertiesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Object {
		parent.Attach(child)
		return
	}
	members, order, err := objectMap(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	var evaluated []string
	for _, name := range order {
		sub, ok := k.props[name]
		if !ok {
			continue
		}
		res := evaluate(ctx, sub, child, myPath.Append(name), parent.InstanceLocation.Append(name), members[name])
		child.Attach(res)
		if res.Valid {
			evaluated = append(evaluated, name)
		}
	}
	if len(evaluated) > 0 {
		child.Annotate(k.Name(), evaluated)
	}
	parent.Attach(child)
}

// patternPropertiesKeyword implements "patternProperties": every member
// whose name matches any regexp is validated against that pattern's
// subschema (a member can match, and be validated by, more than one
// pattern).
type patternPropertiesKeyword struct {
	patterns []patternSchema
}

type patternSchema struct {
	re     *regexp.Regexp
	src    string
	schema *Schema
}

func (k *patternPropertiesKeyword) Name() string { return "patternProperties" }
func (k *patternPropertiesKeyword) Group() Group { return GroupChildApplicator }
func (k *patternPropertiesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Object {
		parent.Attach(child)
		return
	}
	members, order, err := objectMap(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	var evaluated []string
	matched := false
	for _, name := range order {
		for _, p := range k.patterns {
			if !p.re.MatchString(name) {
				continue
			}
			matched = true
			res := evaluate(ctx, p.schema, child, myPath.Append(p.src).Append(name), parent.InstanceLocation.Append(name), members[name])
			child.Attach(res)
			if res.Valid {
				evaluated = append(evaluated, name)
			}
		}
	}
	_ = matched
	if len(evaluated) > 0 {
		child.Annotate(k.Name(), evaluated)
	}
	parent.Attach(child)
}

// additionalPropertiesKeyword validates every member not claimed by
// "properties" or "patternProperties" on the same schema object.
type additionalPropertiesKeyword struct {
	schema       *Schema
	propNames    map[string]struct{}
	patternRegex []*regexp.Regexp
}

func (k *additionalPropertiesKeyword) Name() string { return "additionalProperties" }
func (k *additionalPropertiesKeyword) Group() Group { return GroupChildApplicator }
func (k *additionalPropertiesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Object {
		parent.Attach(child)
		return
	}
	members, order, err := objectMap(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	var evaluated []string
	for _, name := range order {
		if _, ok := k.propNames[name]; ok {
			continue
		}
		if anyMatch(k.patternRegex, name) {
			continue
		}
		res := evaluate(ctx, k.schema, child, myPath.Append(name), parent.InstanceLocation.Append(name), members[name])
		child.Attach(res)
		if res.Valid {
			evaluated = append(evaluated, name)
		}
	}
	if len(evaluated) > 0 {
		child.Annotate(k.Name(), evaluated)
	}
	parent.Attach(child)
}

func anyMatch(res []*regexp.Regexp, name string) bool {
	for _, re := range res {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// propertyNamesKeyword validates every member name, wrapped as a string
// instance, against a single subschema.
type propertyNamesKeyword struct {
	schema *Schema
}

func (k *propertyNamesKeyword) Name() string { return "propertyNames" }
func (k *propertyNamesKeyword) Group() Group { return GroupChildApplicator }
func (k *propertyNamesKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Object {
		parent.Attach(child)
		return
	}
	_, order, err := objectMap(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	for _, name := range order {
		res := evaluate(ctx, k.schema, child, myPath, parent.InstanceLocation.Append(name), stringValue(name))
		child.Attach(res)
	}
	parent.Attach(child)
}

// dependentSchemasKeyword implements "dependentSchemas": an in-place
// applicator, validated against the same instance (not a member of it).
type dependentSchemasKeyword struct {
	rules map[string]*Schema
}

func (k *dependentSchemasKeyword) Name() string { return "dependentSchemas" }
func (k *dependentSchemasKeyword) Group() Group { return GroupInPlace }
func (k *dependentSchemasKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() == value.Object {
		present, order, err := objectMap(inst)
		if err == nil {
			_ = order
			for trigger, sub := range k.rules {
				if _, ok := present[trigger]; !ok {
					continue
				}
				res := evaluate(ctx, sub, child, myPath.Append(trigger), parent.InstanceLocation, inst)
				child.Attach(res)
			}
		}
	}
	parent.Attach(child)
}
