package algo

import (
	"fmt"

	"github.com/awmpietro/algoviz/internal/step"
)

// ID identifies one visualised algorithm. The set is closed; Parse is the
// only way to obtain an ID from user input.
type ID uint8

const (
	Unknown ID = iota

	BubbleSort
	SelectionSort
	InsertionSort
	MergeSort
	QuickSort
	HeapSort
	RadixSort
	CountingSort
	BucketSort

	LinearSearch
	BinarySearch
	KMP
	RabinKarp
	ZAlgorithm

	BFS
	DFS
	Dijkstra
	Prim
	Kruskal

	InOrder
	PreOrder
	PostOrder
	BSTInsert
	BSTSearch

	Fibonacci
	Knapsack
	MatrixChain
	NQueens

	idCount
)

var idNames = [idCount]string{
	Unknown:       "unknown",
	BubbleSort:    "bubble-sort",
	SelectionSort: "selection-sort",
	InsertionSort: "insertion-sort",
	MergeSort:     "merge-sort",
	QuickSort:     "quick-sort",
	HeapSort:      "heap-sort",
	RadixSort:     "radix-sort",
	CountingSort:  "counting-sort",
	BucketSort:    "bucket-sort",
	LinearSearch:  "linear-search",
	BinarySearch:  "binary-search",
	KMP:           "kmp",
	RabinKarp:     "rabin-karp",
	ZAlgorithm:    "z-algorithm",
	BFS:           "bfs",
	DFS:           "dfs",
	Dijkstra:      "dijkstra",
	Prim:          "prim",
	Kruskal:       "kruskal",
	InOrder:       "inorder",
	PreOrder:      "preorder",
	PostOrder:     "postorder",
	BSTInsert:     "bst-insert",
	BSTSearch:     "bst-search",
	Fibonacci:     "fibonacci",
	Knapsack:      "knapsack",
	MatrixChain:   "matrix-chain",
	NQueens:       "n-queens",
}

func (id ID) String() string {
	if id >= idCount {
		return fmt.Sprintf("algo(%d)", uint8(id))
	}
	return idNames[id]
}

// Parse resolves a kebab-case algorithm name. Unknown names, including
// catalogue entries without a visualiser, report false.
func Parse(name string) (ID, bool) {
	for id := BubbleSort; id < idCount; id++ {
		if idNames[id] == name {
			return id, true
		}
	}
	return Unknown, false
}

// All lists every known ID in catalogue order.
func All() []ID {
	out := make([]ID, 0, idCount-1)
	for id := BubbleSort; id < idCount; id++ {
		out = append(out, id)
	}
	return out
}

// Family returns the step vocabulary the algorithm draws from.
func (id ID) Family() step.Family {
	switch {
	case id >= BubbleSort && id <= BucketSort:
		return step.FamilySorting
	case id >= LinearSearch && id <= ZAlgorithm:
		return step.FamilySearching
	case id >= BFS && id <= Kruskal:
		return step.FamilyGraph
	case id >= InOrder && id <= BSTSearch:
		return step.FamilyTree
	case id >= Fibonacci && id <= NQueens:
		return step.FamilyDP
	default:
		return ""
	}
}

func (id ID) MarshalText() ([]byte, error) {
	if id == Unknown || id >= idCount {
		return nil, fmt.Errorf("invalid algorithm id %d", uint8(id))
	}
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, ok := Parse(string(b))
	if !ok {
		return fmt.Errorf("unknown algorithm %q", string(b))
	}
	*id = parsed
	return nil
}
