package jsonschema

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/jsonschema-go/core/value"
)

func stringLen(inst value.Value) int {
	return utf8.RuneCountInString(inst.Str())
}

type minLengthKeyword struct{ n uint64 }

func (k *minLengthKeyword) Name() string { return "minLength" }
func (k *minLengthKeyword) Group() Group { return GroupStructural }
func (k *minLengthKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() != value.String {
		parent.Attach(child)
		return
	}
	if n := stringLen(inst); uint64(n) < k.n {
		child.Fail(k.Name(), fmt.Sprintf("length %d is less than minLength %d", n, k.n))
	}
	parent.Attach(child)
}

type maxLengthKeyword struct{ n uint64 }

func (k *maxLengthKeyword) Name() string { return "maxLength" }
func (k *maxLengthKeyword) Group() Group { return GroupStructural }
func (k *maxLengthKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() != value.String {
		parent.Attach(child)
		return
	}
	if n := stringLen(inst); uint64(n) > k.n {
		child.Fail(k.Name(), fmt.Sprintf("length %d is greater than maxLength %d", n, k.n))
	}
	parent.Attach(child)
}

type patternKeyword struct {
	re  *regexp.Regexp
	src string
}

func (k *patternKeyword) Name() string { return "pattern" }
func (k *patternKeyword) Group() Group { return GroupStructural }
func (k *patternKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() != value.String {
		parent.Attach(child)
		return
	}
	if !k.re.MatchString(inst.Str()) {
		child.Fail(k.Name(), fmt.Sprintf("value does not match pattern %q", k.src))
	}
	parent.Attach(child)
}
