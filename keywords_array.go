package jsonschema

import (
	"fmt"

	"github.com/jsonschema-go/core/value"
)

type minItemsKeyword struct{ n uint64 }

func (k *minItemsKeyword) Name() string { return "minItems" }
func (k *minItemsKeyword) Group() Group { return GroupStructural }
func (k *minItemsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Array {
		if n, err := value.Len(inst); err == nil && uint64(n) < k.n {
			child.Fail(k.Name(), fmt.Sprintf("array has %d items, fewer than minItems %d", n, k.n))
		}
	}
	parent.Attach(child)
}

type maxItemsKeyword struct{ n uint64 }

func (k *maxItemsKeyword) Name() string { return "maxItems" }
func (k *maxItemsKeyword) Group() Group { return GroupStructural }
func (k *maxItemsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Array {
		if n, err := value.Len(inst); err == nil && uint64(n) > k.n {
			child.Fail(k.Name(), fmt.Sprintf("array has %d items, more than maxItems %d", n, k.n))
		}
	}
	parent.Attach(child)
}

type uniqueItemsKeyword struct{}

func (k *uniqueItemsKeyword) Name() string { return "uniqueItems" }
func (k *uniqueItemsKeyword) Group() Group { return GroupStructural }
func (k *uniqueItemsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	child := newNode(parent, parent.schema, childPointer(parent.EvaluationPath, k.Name()), parent.InstanceLocation)
	if inst.Type() == value.Array {
		items, err := arraySlice(inst)
		if err == nil {
			for i := 0; i < len(items); i++ {
				for j := i + 1; j < len(items); j++ {
					if ok, err := ctx.Comparator.Equal(items[i], items[j]); err == nil && ok {
						child.Fail(k.Name(), fmt.Sprintf("items %d and %d are equal", i, j))
						parent.Attach(child)
						return
					}
				}
			}
		}
	}
	parent.Attach(child)
}

// prefixItemsKeyword validates each array element against the
// correspondingly-positioned subschema, leaving elements beyond the
// tuple's length to "items".
type prefixItemsKeyword struct {
	schemas []*Schema
}

func (k *prefixItemsKeyword) Name() string { return "prefixItems" }
func (k *prefixItemsKeyword) Group() Group { return GroupChildApplicator }
func (k *prefixItemsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Array {
		parent.Attach(child)
		return
	}
	items, err := arraySlice(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	n := len(k.schemas)
	if len(items) < n {
		n = len(items)
	}
	maxEvaluated := -1
	for i := 0; i < n; i++ {
		res := evaluate(ctx, k.schemas[i], child, myPath.Child(i), parent.InstanceLocation.Child(i), items[i])
		child.Attach(res)
		if res.Valid {
			maxEvaluated = i
		}
	}
	if maxEvaluated >= 0 {
		child.Annotate(k.Name(), maxEvaluated)
	}
	parent.Attach(child)
}

// itemsKeyword validates every element at or beyond the number of
// prefixItems declared on the same schema object against one subschema.
type itemsKeyword struct {
	schema      *Schema
	prefixCount int
}

func (k *itemsKeyword) Name() string { return "items" }
func (k *itemsKeyword) Group() Group { return GroupChildApplicator }
func (k *itemsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Array {
		parent.Attach(child)
		return
	}
	items, err := arraySlice(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	any := false
	for i := k.prefixCount; i < len(items); i++ {
		res := evaluate(ctx, k.schema, child, myPath, parent.InstanceLocation.Child(i), items[i])
		child.Attach(res)
		any = true
	}
	if any {
		child.Annotate(k.Name(), true)
	}
	parent.Attach(child)
}

// containsKeyword requires between minContains and maxContains elements
// (default [1, unbounded]) to validate against its subschema.
type containsKeyword struct {
	schema      *Schema
	min, max    uint64
	hasMax      bool
}

func (k *containsKeyword) Name() string { return "contains" }
func (k *containsKeyword) Group() Group { return GroupChildApplicator }
func (k *containsKeyword) Evaluate(ctx *Context, parent *Node, inst value.Value) {
	myPath := childPointer(parent.EvaluationPath, k.Name())
	child := newNode(parent, parent.schema, myPath, parent.InstanceLocation)
	if inst.Type() != value.Array {
		parent.Attach(child)
		return
	}
	items, err := arraySlice(inst)
	if err != nil {
		parent.Attach(child)
		return
	}
	var matchedIdx []int
	for i, item := range items {
		res := evaluate(ctx, k.schema, child, myPath, parent.InstanceLocation.Child(i), item)
		if res.Valid {
			matchedIdx = append(matchedIdx, i)
			child.Attach(res)
		}
	}
	count := uint64(len(matchedIdx))
	if count < k.min {
		child.Fail(k.Name(), fmt.Sprintf("only %d items match, fewer than minContains %d", count, k.min))
	}
	if k.hasMax && count > k.max {
		child.Fail(k.Name(), fmt.Sprintf("%d items match, more than maxContains %d", count, k.max))
	}
	if child.Valid {
		child.Annotate(k.Name(), matchedIdx)
	}
	parent.Attach(child)
}
