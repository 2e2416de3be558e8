// Package tree records traversal and lookup traces on a binary search tree.
package tree

import (
	"sync"

	"github.com/awmpietro/algoviz/internal/step"
)

// DemoValues builds the fixed 15-node demonstration tree when inserted in
// this order.
var DemoValues = []int{50, 25, 75, 12, 37, 62, 87, 6, 18, 31, 43, 56, 68, 81, 93}

// Range bounds the values a caller may insert or search for.
const (
	MinValue = 1
	MaxValue = 100
)

type Node struct {
	Value       int
	Left, Right *Node
}

// BST is an unbalanced binary search tree without duplicates.
type BST struct {
	Root *Node
	size int
}

// Build inserts values in order; duplicates are ignored.
func Build(values ...int) *BST {
	t := &BST{}
	for _, v := range values {
		t.insert(v)
	}
	return t
}

var demo = sync.OnceValue(func() *BST { return Build(DemoValues...) })

// Demo returns the shared demonstration tree. Callers must not modify it.
func Demo() *BST { return demo() }

func (t *BST) Len() int { return t.size }

func (t *BST) insert(v int) {
	link := &t.Root
	for *link != nil {
		switch n := *link; {
		case v < n.Value:
			link = &n.Left
		case v > n.Value:
			link = &n.Right
		default:
			return
		}
	}
	*link = &Node{Value: v}
	t.size++
}

// Order is a depth-first traversal order.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
)

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "preorder"
	case PostOrder:
		return "postorder"
	default:
		return "inorder"
	}
}

// Traverse emits a VisitNode per node in the given order and a terminal
// Complete carrying every visited value.
func Traverse(t *BST, order Order) step.Sequence {
	rec := step.NewRecorder(order.String())
	values := make([]int, 0, t.Len())

	visit := func(n *Node) {
		rec.Add(step.VisitValue(n.Value))
		values = append(values, n.Value)
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if order == PreOrder {
			visit(n)
		}
		walk(n.Left)
		if order == InOrder {
			visit(n)
		}
		walk(n.Right)
		if order == PostOrder {
			visit(n)
		}
	}
	walk(t.Root)

	rec.Add(step.Complete(values...))
	return rec.Sequence()
}

// Insert traces where value would be attached. The tree is not modified.
func Insert(t *BST, value int) step.Sequence {
	rec := step.NewRecorder("bst-insert")
	n := t.Root
	if n == nil {
		return rec.Sequence()
	}
	rec.Add(step.CurrentValue(n.Value))
	for {
		switch {
		case value < n.Value:
			if n.Left == nil {
				rec.Add(step.InsertAt(value, n.Value, step.SideLeft))
				return rec.Sequence()
			}
			n = n.Left
		case value > n.Value:
			if n.Right == nil {
				rec.Add(step.InsertAt(value, n.Value, step.SideRight))
				return rec.Sequence()
			}
			n = n.Right
		default:
			rec.Add(step.AlreadyExists(value))
			return rec.Sequence()
		}
		rec.Add(step.CurrentValue(n.Value))
	}
}

// Search walks from the root toward value.
func Search(t *BST, value int) step.Sequence {
	rec := step.NewRecorder("bst-search")
	n := t.Root
	if n != nil {
		rec.Add(step.CurrentValue(n.Value))
	}
	for n != nil {
		if value == n.Value {
			rec.Add(step.FoundValue(n.Value))
			return rec.Sequence()
		}
		if value < n.Value {
			n = n.Left
		} else {
			n = n.Right
		}
		if n != nil {
			rec.Add(step.CurrentValue(n.Value))
		}
	}
	rec.Add(step.NotFound())
	return rec.Sequence()
}
