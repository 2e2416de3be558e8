// Package sorting records the step trace of the comparison and distribution
// sorts. Every generator works on a private copy of its input.
package sorting

import (
	"maps"
	"math/bits"
	"slices"

	"github.com/awmpietro/algoviz/internal/step"
)

// tracer couples the working array with the recorder so that every mutation
// is emitted together with the values it produced.
type tracer struct {
	rec *step.Recorder
	arr []int
}

func newTracer(name string, input []int) *tracer {
	return &tracer{rec: step.NewRecorder(name), arr: append([]int(nil), input...)}
}

// less emits Compare(i, j) and reports arr[i] < arr[j].
func (t *tracer) less(i, j int) bool {
	t.rec.Add(step.Compare(i, j))
	return t.arr[i] < t.arr[j]
}

// greater emits Compare(i, j) and reports arr[i] > arr[j].
func (t *tracer) greater(i, j int) bool {
	t.rec.Add(step.Compare(i, j))
	return t.arr[i] > t.arr[j]
}

func (t *tracer) swap(i, j int) {
	t.arr[i], t.arr[j] = t.arr[j], t.arr[i]
	t.rec.Add(step.Exchange(i, j, t.arr[i], t.arr[j]))
}

func (t *tracer) write(i, v int) {
	t.arr[i] = v
	t.rec.Add(step.Write(i, v))
}

func (t *tracer) sorted(i int) { t.rec.Add(step.MarkSorted(i)) }

func (t *tracer) selected(i int) { t.rec.Add(step.Select(i)) }

func (t *tracer) sortedAll() {
	for i := range t.arr {
		t.sorted(i)
	}
}

func (t *tracer) done() step.Sequence { return t.rec.Sequence() }

// Bubble compares every adjacent pair of the unsorted prefix on each pass,
// with no early exit.
func Bubble(input []int) step.Sequence {
	t := newTracer("bubble-sort", input)
	n := len(t.arr)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1-i; j++ {
			if t.greater(j, j+1) {
				t.swap(j, j+1)
			}
		}
		t.sorted(n - 1 - i)
	}
	if n > 0 {
		t.sorted(0)
	}
	return t.done()
}

// Selection scans the whole remaining suffix for the minimum on every pass.
func Selection(input []int) step.Sequence {
	t := newTracer("selection-sort", input)
	n := len(t.arr)
	for i := 0; i < n-1; i++ {
		minIdx := i
		t.selected(i)
		for j := i + 1; j < n; j++ {
			if t.less(j, minIdx) {
				minIdx = j
			}
		}
		if minIdx != i {
			t.swap(i, minIdx)
		}
		t.sorted(i)
	}
	if n > 0 {
		t.sorted(n - 1)
	}
	return t.done()
}

// Insertion moves each element left one compare-and-swap at a time.
func Insertion(input []int) step.Sequence {
	t := newTracer("insertion-sort", input)
	n := len(t.arr)
	if n > 0 {
		t.sorted(0)
	}
	for i := 1; i < n; i++ {
		t.selected(i)
		for j := i - 1; j >= 0; j-- {
			if !t.greater(j, j+1) {
				break
			}
			t.swap(j, j+1)
		}
		t.sorted(i)
	}
	return t.done()
}

// Merge is a top-down merge sort. Merged runs are written back one position
// at a time.
func Merge(input []int) step.Sequence {
	t := newTracer("merge-sort", input)
	t.mergeSort(0, len(t.arr)-1)
	t.sortedAll()
	return t.done()
}

func (t *tracer) mergeSort(lo, hi int) {
	if lo >= hi {
		return
	}
	mid := (lo + hi) / 2
	t.mergeSort(lo, mid)
	t.mergeSort(mid+1, hi)

	merged := make([]int, 0, hi-lo+1)
	i, j := lo, mid+1
	for i <= mid && j <= hi {
		// ties take the left run to keep the sort stable
		if t.greater(i, j) {
			merged = append(merged, t.arr[j])
			j++
		} else {
			merged = append(merged, t.arr[i])
			i++
		}
	}
	merged = append(merged, t.arr[i:mid+1]...)
	merged = append(merged, t.arr[j:hi+1]...)
	for k, v := range merged {
		if t.arr[lo+k] != v {
			t.write(lo+k, v)
		}
	}
}

// Quick is a Lomuto-partition quicksort using the last element as pivot.
func Quick(input []int) step.Sequence {
	t := newTracer("quick-sort", input)
	t.quickSort(0, len(t.arr)-1)
	return t.done()
}

func (t *tracer) quickSort(lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		t.sorted(lo)
		return
	}
	t.selected(hi)
	i := lo
	for j := lo; j < hi; j++ {
		if t.less(j, hi) {
			if i != j {
				t.swap(i, j)
			}
			i++
		}
	}
	if i != hi {
		t.swap(i, hi)
	}
	t.sorted(i)
	t.quickSort(lo, i-1)
	t.quickSort(i+1, hi)
}

// Heap builds a max-heap and repeatedly moves the root behind the heap.
func Heap(input []int) step.Sequence {
	t := newTracer("heap-sort", input)
	n := len(t.arr)
	for i := n/2 - 1; i >= 0; i-- {
		t.siftDown(i, n)
	}
	for end := n - 1; end > 0; end-- {
		t.swap(0, end)
		t.sorted(end)
		t.siftDown(0, end)
	}
	if n > 0 {
		t.sorted(0)
	}
	return t.done()
}

func (t *tracer) siftDown(root, size int) {
	for {
		largest := root
		left, right := 2*root+1, 2*root+2
		if left < size && t.greater(left, largest) {
			largest = left
		}
		if right < size && t.greater(right, largest) {
			largest = right
		}
		if largest == root {
			return
		}
		t.swap(root, largest)
		root = largest
	}
}

// Radix is an LSD base-10 radix sort. Each digit pass rewrites the array
// from its stable bucket order.
func Radix(input []int) step.Sequence {
	t := newTracer("radix-sort", input)
	maxVal := 0
	for _, v := range t.arr {
		maxVal = max(maxVal, v)
	}
	for exp := 1; maxVal/exp > 0; exp *= 10 {
		var buckets [10][]int
		for i, v := range t.arr {
			t.selected(i)
			d := (v / exp) % 10
			buckets[d] = append(buckets[d], v)
		}
		pos := 0
		for _, b := range buckets {
			for _, v := range b {
				if t.arr[pos] != v {
					t.write(pos, v)
				}
				pos++
			}
		}
	}
	t.sortedAll()
	return t.done()
}

// Counting tallies occurrences and writes the array back in order. Dense
// value ranges use a slice indexed by value; wide ranges count per distinct
// key instead so memory stays proportional to the input.
func Counting(input []int) step.Sequence {
	t := newTracer("counting-sort", input)
	if len(t.arr) == 0 {
		return t.done()
	}
	lo, hi := t.arr[0], t.arr[0]
	for _, v := range t.arr {
		lo, hi = min(lo, v), max(hi, v)
	}

	var (
		keys   []int
		counts []int
	)
	if uint64(hi)-uint64(lo) < uint64(4*len(t.arr)) {
		counts = make([]int, hi-lo+1)
		for i, v := range t.arr {
			t.selected(i)
			counts[v-lo]++
		}
		keys = make([]int, len(counts))
		for off := range counts {
			keys[off] = lo + off
		}
	} else {
		tally := make(map[int]int, len(t.arr))
		for i, v := range t.arr {
			t.selected(i)
			tally[v]++
		}
		keys = slices.Sorted(maps.Keys(tally))
		counts = make([]int, len(keys))
		for k, v := range keys {
			counts[k] = tally[v]
		}
	}

	pos := 0
	for k, c := range counts {
		for range c {
			t.write(pos, keys[k])
			t.sorted(pos)
			pos++
		}
	}
	return t.done()
}

// Bucket distributes values into len(input) buckets by range, writes the
// buckets back in order, and finishes each bucket's span with an insertion
// pass traced on the array itself.
func Bucket(input []int) step.Sequence {
	t := newTracer("bucket-sort", input)
	n := len(t.arr)
	if n == 0 {
		return t.done()
	}
	lo, hi := t.arr[0], t.arr[0]
	for _, v := range t.arr {
		lo, hi = min(lo, v), max(hi, v)
	}
	buckets := make([][]int, n)
	span := uint64(hi) - uint64(lo) + 1
	for i, v := range t.arr {
		t.selected(i)
		b := bucketOf(uint64(v)-uint64(lo), n, span)
		buckets[b] = append(buckets[b], v)
	}
	pos := 0
	for _, b := range buckets {
		start := pos
		for _, v := range b {
			if t.arr[pos] != v {
				t.write(pos, v)
			}
			pos++
		}
		for i := start + 1; i < pos; i++ {
			for j := i - 1; j >= start; j-- {
				if !t.greater(j, j+1) {
					break
				}
				t.swap(j, j+1)
			}
		}
	}
	t.sortedAll()
	return t.done()
}

// bucketOf returns off*n/span without overflowing for wide value ranges.
// span == 0 means the range covers every uint64.
func bucketOf(off uint64, n int, span uint64) int {
	hi, lo := bits.Mul64(off, uint64(n))
	if span == 0 {
		return int(hi)
	}
	q, _ := bits.Div64(hi, lo, span)
	return int(q)
}
