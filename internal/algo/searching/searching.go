// Package searching records the step traces of numeric and string searches.
package searching

import "github.com/awmpietro/algoviz/internal/step"

// Linear checks positions left to right and stops at the first match.
func Linear(arr []int, target int) step.Sequence {
	rec := step.NewRecorder("linear-search")
	for i, v := range arr {
		rec.Add(step.CheckIndex(i))
		if v == target {
			rec.Add(step.Found(i))
			return rec.Sequence()
		}
	}
	rec.Add(step.NotFound())
	return rec.Sequence()
}

// Binary expects arr in ascending order. Each probe emits the midpoint and
// the window it was taken from.
func Binary(arr []int, target int) step.Sequence {
	rec := step.NewRecorder("binary-search")
	left, right := 0, len(arr)-1
	for left <= right {
		mid := left + (right-left)/2
		rec.Add(step.CheckIndex(mid))
		rec.Add(step.NarrowRange(left, right))
		switch {
		case arr[mid] == target:
			rec.Add(step.Found(mid))
			return rec.Sequence()
		case arr[mid] < target:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	rec.Add(step.NotFound())
	return rec.Sequence()
}
