package step

import "fmt"

// Kind tags the operation a Step records.
type Kind uint8

const (
	KindUnknown Kind = iota

	// sorting
	KindCompare
	KindSwap
	KindSelect
	KindMarkSorted

	// searching
	KindCheckIndex
	KindNarrowRange
	KindFound
	KindNotFound

	// graph and tree
	KindVisitNode
	KindSetCurrent
	KindDiscoverEdge
	KindAddToSpanningTree
	KindUpdateDistance
	KindHighlightPath
	KindInsertAt
	KindAlreadyExists
	KindFoundValue

	// dynamic programming and backtracking
	KindBaseCase
	KindMemoHit
	KindCompute
	KindMemoStore
	KindExclude
	KindChoose
	KindSplit
	KindPlace
	KindRemove

	// terminal step shared by traversals and DP
	KindComplete

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:           "unknown",
	KindCompare:           "compare",
	KindSwap:              "swap",
	KindSelect:            "select",
	KindMarkSorted:        "mark-sorted",
	KindCheckIndex:        "check-index",
	KindNarrowRange:       "narrow-range",
	KindFound:             "found",
	KindNotFound:          "not-found",
	KindVisitNode:         "visit-node",
	KindSetCurrent:        "set-current",
	KindDiscoverEdge:      "discover-edge",
	KindAddToSpanningTree: "add-to-spanning-tree",
	KindUpdateDistance:    "update-distance",
	KindHighlightPath:     "highlight-path",
	KindInsertAt:          "insert-at",
	KindAlreadyExists:     "already-exists",
	KindFoundValue:        "found-value",
	KindBaseCase:          "base-case",
	KindMemoHit:           "memo-hit",
	KindCompute:           "compute",
	KindMemoStore:         "memo-store",
	KindExclude:           "exclude",
	KindChoose:            "choose",
	KindSplit:             "split",
	KindPlace:             "place",
	KindRemove:            "remove",
	KindComplete:          "complete",
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("invalid step kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown step kind %q", string(b))
	}
	*k = parsed
	return nil
}

// Family groups algorithms that share a step vocabulary.
type Family string

const (
	FamilySorting   Family = "sorting"
	FamilySearching Family = "searching"
	FamilyGraph     Family = "graph"
	FamilyTree      Family = "tree"
	FamilyDP        Family = "dp"
)

// Families lists every family in display order.
func Families() []Family {
	return []Family{FamilySorting, FamilySearching, FamilyGraph, FamilyTree, FamilyDP}
}

var familyKinds = map[Family][]Kind{
	FamilySorting:   {KindCompare, KindSwap, KindSelect, KindMarkSorted},
	FamilySearching: {KindCheckIndex, KindNarrowRange, KindFound, KindNotFound},
	FamilyGraph: {
		KindVisitNode, KindSetCurrent, KindDiscoverEdge, KindAddToSpanningTree,
		KindUpdateDistance, KindHighlightPath,
	},
	FamilyTree: {
		KindVisitNode, KindSetCurrent, KindInsertAt, KindAlreadyExists,
		KindFoundValue, KindNotFound, KindComplete,
	},
	FamilyDP: {
		KindBaseCase, KindMemoHit, KindCompute, KindMemoStore, KindExclude,
		KindChoose, KindSplit, KindPlace, KindRemove, KindComplete,
	},
}

// Kinds returns the closed set of kinds a family may emit.
func (f Family) Kinds() []Kind {
	return append([]Kind(nil), familyKinds[f]...)
}

// Allows reports whether k belongs to the family's vocabulary.
func (f Family) Allows(k Kind) bool {
	for _, fk := range familyKinds[f] {
		if fk == k {
			return true
		}
	}
	return false
}
