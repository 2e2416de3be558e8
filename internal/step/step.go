package step

import (
	"fmt"
	"strconv"
	"strings"
)

// Side is the child slot used by a BST insertion.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Step is one observable operation of an algorithm. Which payload fields are
// set depends on Kind; see the constructors below. Payload slices are never
// shared with the generator that built the step.
type Step struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Indices []int  `json:"indices,omitempty" yaml:"indices,omitempty"`
	Values  []int  `json:"values,omitempty" yaml:"values,omitempty"`
	Node    string `json:"node,omitempty" yaml:"node,omitempty"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"`
	Weight  int    `json:"weight,omitempty" yaml:"weight,omitempty"`
	Side    Side   `json:"side,omitempty" yaml:"side,omitempty"`
	Args    []int  `json:"args,omitempty" yaml:"args,omitempty"`
}

func ints(v ...int) []int {
	if len(v) == 0 {
		return nil
	}
	return append(make([]int, 0, len(v)), v...)
}

func Compare(i, j int) Step { return Step{Kind: KindCompare, Indices: ints(i, j)} }

// Swap records that each indices[k] now holds values[k]. Two indices describe
// an exchange; a single index describes a write.
func Swap(indices []int, values []int) Step {
	return Step{Kind: KindSwap, Indices: ints(indices...), Values: ints(values...)}
}

// Exchange is the two-position Swap: after it, position i holds vi and j holds vj.
func Exchange(i, j, vi, vj int) Step {
	return Swap([]int{i, j}, []int{vi, vj})
}

// Write is the one-position Swap.
func Write(i, v int) Step { return Swap([]int{i}, []int{v}) }

func Select(i int) Step     { return Step{Kind: KindSelect, Indices: ints(i)} }
func MarkSorted(i int) Step { return Step{Kind: KindMarkSorted, Indices: ints(i)} }

func CheckIndex(i int) Step { return Step{Kind: KindCheckIndex, Indices: ints(i)} }

func NarrowRange(left, right int) Step {
	return Step{Kind: KindNarrowRange, Indices: ints(left, right)}
}

func Found(i int) Step { return Step{Kind: KindFound, Indices: ints(i)} }
func NotFound() Step   { return Step{Kind: KindNotFound} }

func VisitNode(node string) Step  { return Step{Kind: KindVisitNode, Node: node} }
func SetCurrent(node string) Step { return Step{Kind: KindSetCurrent, Node: node} }

func DiscoverEdge(from, to string) Step {
	return Step{Kind: KindDiscoverEdge, From: from, Node: to}
}

func AddToSpanningTree(from, to string, weight int) Step {
	return Step{Kind: KindAddToSpanningTree, From: from, Node: to, Weight: weight}
}

func UpdateDistance(node string, dist int) Step {
	return Step{Kind: KindUpdateDistance, Node: node, Values: ints(dist)}
}

func HighlightPath(node, from string) Step {
	return Step{Kind: KindHighlightPath, Node: node, From: from}
}

// Tree steps identify nodes by their decimal value.

func VisitValue(v int) Step   { return Step{Kind: KindVisitNode, Node: strconv.Itoa(v), Values: ints(v)} }
func CurrentValue(v int) Step { return Step{Kind: KindSetCurrent, Node: strconv.Itoa(v), Values: ints(v)} }

func InsertAt(value, parent int, side Side) Step {
	return Step{
		Kind:   KindInsertAt,
		Node:   strconv.Itoa(value),
		From:   strconv.Itoa(parent),
		Values: ints(value, parent),
		Side:   side,
	}
}

func AlreadyExists(v int) Step {
	return Step{Kind: KindAlreadyExists, Node: strconv.Itoa(v), Values: ints(v)}
}

func FoundValue(v int) Step {
	return Step{Kind: KindFoundValue, Node: strconv.Itoa(v), Values: ints(v)}
}

func BaseCase(args []int, result int) Step {
	return Step{Kind: KindBaseCase, Args: ints(args...), Values: ints(result)}
}

func MemoHit(args []int, result int) Step {
	return Step{Kind: KindMemoHit, Args: ints(args...), Values: ints(result)}
}

func Compute(args []int) Step { return Step{Kind: KindCompute, Args: ints(args...)} }

// MemoStore may carry extra values after the result (matrix chain stores the
// best split point).
func MemoStore(args []int, result int, extra ...int) Step {
	return Step{Kind: KindMemoStore, Args: ints(args...), Values: append([]int{result}, extra...)}
}

func Exclude(args []int, result int) Step {
	return Step{Kind: KindExclude, Args: ints(args...), Values: ints(result)}
}

// Choose records a take/skip decision: values are include, exclude, result.
func Choose(args []int, include, exclude, result int) Step {
	return Step{Kind: KindChoose, Args: ints(args...), Values: ints(include, exclude, result)}
}

// Split records one candidate split k of the chain i..j: values are left,
// right, cost, total.
func Split(i, j, k, left, right, cost, total int) Step {
	return Step{Kind: KindSplit, Args: ints(i, j, k), Values: ints(left, right, cost, total)}
}

func Place(row, col int) Step  { return Step{Kind: KindPlace, Args: ints(row, col)} }
func Remove(row, col int) Step { return Step{Kind: KindRemove, Args: ints(row, col)} }

// Complete is the terminal step; values is either the single result or the
// full traversal order.
func Complete(values ...int) Step { return Step{Kind: KindComplete, Values: ints(values...)} }

// Index returns the first index of the payload, or -1.
func (s Step) Index() int {
	if len(s.Indices) == 0 {
		return -1
	}
	return s.Indices[0]
}

// Result returns the first value of the payload and whether one exists.
func (s Step) Result() (int, bool) {
	if len(s.Values) == 0 {
		return 0, false
	}
	return s.Values[0], true
}

// Clone returns a deep copy.
func (s Step) Clone() Step {
	c := s
	c.Indices = ints(s.Indices...)
	c.Values = ints(s.Values...)
	c.Args = ints(s.Args...)
	return c
}

// String renders the step on one line, e.g. "swap idx=[0 1] val=[1 3]".
func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Kind.String())
	switch {
	case s.From != "":
		fmt.Fprintf(&b, " %s->%s", s.From, s.Node)
	case s.Node != "":
		b.WriteString(" " + s.Node)
	}
	if len(s.Args) > 0 {
		fmt.Fprintf(&b, " args=%v", s.Args)
	}
	if len(s.Indices) > 0 {
		fmt.Fprintf(&b, " idx=%v", s.Indices)
	}
	if len(s.Values) > 0 {
		fmt.Fprintf(&b, " val=%v", s.Values)
	}
	if s.Weight != 0 {
		fmt.Fprintf(&b, " w=%d", s.Weight)
	}
	if s.Side != "" {
		fmt.Fprintf(&b, " side=%s", s.Side)
	}
	return b.String()
}
