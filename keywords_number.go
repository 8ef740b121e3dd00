package jsonschema

import (
	"fmt"
	"math/big"

	"github.com/jsonschema-go/core/value"
)

type minimumKeyword struct{ n *big.Rat }

func (k *minimumKeyword) Name() string { return "minimum" }
func (k *minimumKeyword) Group() Group { return GroupStructural }
func (k *minimumKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Number && inst.Number().Cmp(k.n) < 0 {
		child.Fail(k.Name(), fmt.Sprintf("%s is less than minimum %s", inst.Number().RatString(), k.n.RatString()))
	}
	parent.Attach(child)
}

type maximumKeyword struct{ n *big.Rat }

func (k *maximumKeyword) Name() string { return "maximum" }
func (k *maximumKeyword) Group() Group { return GroupStructural }
func (k *maximumKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Number && inst.Number().Cmp(k.n) > 0 {
		child.Fail(k.Name(), fmt.Sprintf("%s is greater than maximum %s", inst.Number().RatString(), k.n.RatString()))
	}
	parent.Attach(child)
}

type exclusiveMinimumKeyword struct{ n *big.Rat }

func (k *exclusiveMinimumKeyword) Name() string { return "exclusiveMinimum" }
func (k *exclusiveMinimumKeyword) Group() Group { return GroupStructural }
func (k *exclusiveMinimumKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Number && inst.Number().Cmp(k.n) <= 0 {
		child.Fail(k.Name(), fmt.Sprintf("%s is not greater than exclusiveMinimum %s", inst.Number().RatString(), k.n.RatString()))
	}
	parent.Attach(child)
}

type exclusiveMaximumKeyword struct{ n *big.Rat }

func (k *exclusiveMaximumKeyword) Name() string { return "exclusiveMaximum" }
func (k *exclusiveMaximumKeyword) Group() Group { return GroupStructural }
func (k *exclusiveMaximumKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Number && inst.Number().Cmp(k.n) >= 0 {
		child.Fail(k.Name(), fmt.Sprintf("%s is not less than exclusiveMaximum %s", inst.Number().RatString(), k.n.RatString()))
	}
	parent.Attach(child)
}

type multipleOfKeyword struct{ n *big.Rat }

func (k *multipleOfKeyword) Name() string { return "multipleOf" }
func (k *multipleOfKeyword) Group() Group { return GroupStructural }
func (k *multipleOfKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Number {
		ratio := new(big.Rat).Quo(inst.Number(), k.n)
		if !ratio.IsInt() {
			child.Fail(k.Name(), fmt.Sprintf("%s is not a multiple of %s", inst.Number().RatString(), k.n.RatString()))
		}
	}
	parent.Attach(child)
}
