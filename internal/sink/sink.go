// Package sink holds reference consumers of applied steps: an in-memory
// recorder, an array model for sorting and searching, and a terminal
// renderer.
package sink

import (
	"sync"

	"github.com/awmpietro/algoviz/internal/step"
)

// Recorder keeps every applied step. It is safe for concurrent readers.
type Recorder struct {
	mu    sync.Mutex
	steps []step.Step
}

func (r *Recorder) Apply(s step.Step) {
	r.mu.Lock()
	r.steps = append(r.steps, s)
	r.mu.Unlock()
}

func (r *Recorder) Steps() []step.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]step.Step(nil), r.steps...)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// Array models the bar chart of the sorting and searching views. It derives
// its state from applied steps only.
type Array struct {
	mu        sync.Mutex
	values    []int
	active    []int
	sorted    map[int]bool
	lo, hi    int
	found     int
	exhausted bool
}

// Snapshot is a copy of the array state after the last applied step.
type Snapshot struct {
	Values []int
	// Active holds the indices touched by the last step.
	Active   []int
	Sorted   []int
	Lo, Hi   int
	Found    int
	NotFound bool
}

func NewArray(values []int) *Array {
	return &Array{
		values: append([]int(nil), values...),
		sorted: map[int]bool{},
		hi:     len(values) - 1,
		found:  -1,
	}
}

func (a *Array) Apply(s step.Step) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.active = append(a.active[:0], s.Indices...)
	switch s.Kind {
	case step.KindSwap:
		for k, idx := range s.Indices {
			if k < len(s.Values) && idx >= 0 && idx < len(a.values) {
				a.values[idx] = s.Values[k]
			}
		}
	case step.KindMarkSorted:
		a.sorted[s.Index()] = true
	case step.KindNarrowRange:
		if len(s.Indices) == 2 {
			a.lo, a.hi = s.Indices[0], s.Indices[1]
		}
	case step.KindFound:
		a.found = s.Index()
	case step.KindNotFound:
		a.exhausted = true
	}
}

func (a *Array) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		Values:   append([]int(nil), a.values...),
		Active:   append([]int(nil), a.active...),
		Lo:       a.lo,
		Hi:       a.hi,
		Found:    a.found,
		NotFound: a.exhausted,
	}
	for i := range a.values {
		if a.sorted[i] {
			snap.Sorted = append(snap.Sorted, i)
		}
	}
	return snap
}
