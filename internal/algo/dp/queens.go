package dp

import "github.com/awmpietro/algoviz/internal/step"

// NQueens enumerates every placement of n non-attacking queens row by row.
// Each tentative placement emits Place and each retreat emits Remove; a
// complete board emits BaseCase with the columns per row as args and the
// running solution count as result. The terminal Complete carries the count.
func NQueens(n int) step.Sequence {
	rec := step.NewRecorder("n-queens")
	if n <= 0 {
		rec.Add(step.Complete(0))
		return rec.Sequence()
	}

	cols := make([]int, 0, n)
	usedCol := make([]bool, n)
	usedDiag := make([]bool, 2*n-1) // row+col
	usedAnti := make([]bool, 2*n-1) // row-col+n-1
	solutions := 0

	var place func(row int)
	place = func(row int) {
		if row == n {
			solutions++
			rec.Add(step.BaseCase(cols, solutions))
			return
		}
		for col := range n {
			if usedCol[col] || usedDiag[row+col] || usedAnti[row-col+n-1] {
				continue
			}
			usedCol[col], usedDiag[row+col], usedAnti[row-col+n-1] = true, true, true
			cols = append(cols, col)
			rec.Add(step.Place(row, col))

			place(row + 1)

			rec.Add(step.Remove(row, col))
			cols = cols[:len(cols)-1]
			usedCol[col], usedDiag[row+col], usedAnti[row-col+n-1] = false, false, false
		}
	}
	place(0)

	rec.Add(step.Complete(solutions))
	return rec.Sequence()
}
