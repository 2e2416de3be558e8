// Package algo maps algorithm ids to their step generators.
package algo

import (
	"github.com/awmpietro/algoviz/internal/algo/dp"
	"github.com/awmpietro/algoviz/internal/algo/graph"
	"github.com/awmpietro/algoviz/internal/algo/searching"
	"github.com/awmpietro/algoviz/internal/algo/sorting"
	"github.com/awmpietro/algoviz/internal/algo/tree"
	"github.com/awmpietro/algoviz/internal/step"
)

// Generator builds the full step sequence for one input. Generators are
// pure: the same input always yields the same sequence.
type Generator func(in Input) step.Sequence

func array(fn func([]int) step.Sequence) Generator {
	return func(in Input) step.Sequence { return fn(in.Array) }
}

func search(fn func([]int, int) step.Sequence) Generator {
	return func(in Input) step.Sequence { return fn(in.Array, in.Target) }
}

func sample(fn func(text, pattern string) step.Sequence) Generator {
	return func(Input) step.Sequence { return fn(searching.SampleText, searching.SamplePattern) }
}

var generators = map[ID]Generator{
	BubbleSort:    array(sorting.Bubble),
	SelectionSort: array(sorting.Selection),
	InsertionSort: array(sorting.Insertion),
	MergeSort:     array(sorting.Merge),
	QuickSort:     array(sorting.Quick),
	HeapSort:      array(sorting.Heap),
	RadixSort:     array(sorting.Radix),
	CountingSort:  array(sorting.Counting),
	BucketSort:    array(sorting.Bucket),

	LinearSearch: search(searching.Linear),
	BinarySearch: search(searching.Binary),
	KMP:          sample(searching.KMP),
	RabinKarp:    sample(searching.RabinKarp),
	ZAlgorithm:   sample(searching.ZAlgorithm),

	BFS:      func(in Input) step.Sequence { return graph.BFS(graph.Demo(), in.Start) },
	DFS:      func(in Input) step.Sequence { return graph.DFS(graph.Demo(), in.Start) },
	Dijkstra: func(in Input) step.Sequence { return graph.Dijkstra(graph.Demo(), in.Start, in.End) },
	Prim:     func(Input) step.Sequence { return graph.SpanningTree(graph.Demo(), Prim.String()) },
	Kruskal:  func(Input) step.Sequence { return graph.SpanningTree(graph.Demo(), Kruskal.String()) },

	InOrder:   func(Input) step.Sequence { return tree.Traverse(tree.Demo(), tree.InOrder) },
	PreOrder:  func(Input) step.Sequence { return tree.Traverse(tree.Demo(), tree.PreOrder) },
	PostOrder: func(Input) step.Sequence { return tree.Traverse(tree.Demo(), tree.PostOrder) },
	BSTInsert: func(in Input) step.Sequence { return tree.Insert(tree.Demo(), in.Value) },
	BSTSearch: func(in Input) step.Sequence { return tree.Search(tree.Demo(), in.Value) },

	Fibonacci:   func(in Input) step.Sequence { return dp.Fibonacci(in.N) },
	Knapsack:    func(in Input) step.Sequence { return dp.Knapsack(in.Capacity) },
	MatrixChain: func(in Input) step.Sequence { return dp.MatrixChain(in.Matrices) },
	NQueens:     func(in Input) step.Sequence { return dp.NQueens(in.Queens) },
}

// Lookup returns the generator registered for id.
func Lookup(id ID) (Generator, bool) {
	g, ok := generators[id]
	return g, ok
}

// Generate runs the generator for id. Unknown ids yield an empty sequence
// so that a visualiser without an implementation renders inert.
func Generate(id ID, in Input) step.Sequence {
	g, ok := generators[id]
	if !ok {
		return step.Sequence{Algorithm: id.String(), Steps: []step.Step{}}
	}
	return g(in)
}

// GenerateByName is Generate for a raw name.
func GenerateByName(name string, in Input) step.Sequence {
	id, ok := Parse(name)
	if !ok {
		return step.Sequence{Algorithm: name, Steps: []step.Step{}}
	}
	return Generate(id, in)
}
