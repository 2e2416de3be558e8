// Package dp records memoized recursion and backtracking traces. Memo tables
// live for a single call and are never exposed; only the steps describe
// their mutations.
package dp

import (
	"math"

	"github.com/awmpietro/algoviz/internal/step"
)

// Knapsack items and matrix chain dimensions are fixed demo data.
var (
	KnapsackWeights = []int{2, 3, 4, 5}
	KnapsackValues  = []int{3, 4, 5, 6}
	ChainDimensions = []int{1, 2, 3, 4, 5}
)

const (
	DefaultFibonacci = 8
	DefaultCapacity  = 10
	DefaultMatrices  = 4
	DefaultQueens    = 4
)

// Fibonacci computes fib(n) top-down. Args carry n.
func Fibonacci(n int) step.Sequence {
	rec := step.NewRecorder("fibonacci")
	memo := make(map[int]int)

	var fib func(k int) int
	fib = func(k int) int {
		args := []int{k}
		if k <= 1 {
			rec.Add(step.BaseCase(args, k))
			return k
		}
		if v, ok := memo[k]; ok {
			rec.Add(step.MemoHit(args, v))
			return v
		}
		rec.Add(step.Compute(args))
		memo[k] = fib(k-1) + fib(k-2)
		rec.Add(step.MemoStore(args, memo[k]))
		return memo[k]
	}

	rec.Add(step.Complete(fib(n)))
	return rec.Sequence()
}

// Knapsack solves 0/1 knapsack over the demo items. Args carry (i, w): the
// first i items with remaining capacity w. The include branch is explored
// before the exclude branch.
func Knapsack(capacity int) step.Sequence {
	rec := step.NewRecorder("knapsack")
	type key struct{ i, w int }
	memo := make(map[key]int)

	var solve func(i, w int) int
	solve = func(i, w int) int {
		args := []int{i, w}
		if i == 0 || w == 0 {
			rec.Add(step.BaseCase(args, 0))
			return 0
		}
		if v, ok := memo[key{i, w}]; ok {
			rec.Add(step.MemoHit(args, v))
			return v
		}
		rec.Add(step.Compute(args))

		var result int
		if KnapsackWeights[i-1] > w {
			result = solve(i-1, w)
			rec.Add(step.Exclude(args, result))
		} else {
			include := KnapsackValues[i-1] + solve(i-1, w-KnapsackWeights[i-1])
			exclude := solve(i-1, w)
			result = max(include, exclude)
			rec.Add(step.Choose(args, include, exclude, result))
		}
		memo[key{i, w}] = result
		rec.Add(step.MemoStore(args, result))
		return result
	}

	rec.Add(step.Complete(solve(len(KnapsackWeights), capacity)))
	return rec.Sequence()
}

// MatrixChain finds the cheapest parenthesisation of the first n-1 matrices
// of the demo chain, where matrix i is ChainDimensions[i-1] x
// ChainDimensions[i]. Args carry (i, j); MemoStore carries the best split
// after the cost.
func MatrixChain(n int) step.Sequence {
	rec := step.NewRecorder("matrix-chain")
	if n < 2 || n > len(ChainDimensions) {
		return rec.Sequence()
	}
	type key struct{ i, j int }
	memo := make(map[key]int)
	d := ChainDimensions

	var solve func(i, j int) int
	solve = func(i, j int) int {
		args := []int{i, j}
		if i == j {
			rec.Add(step.BaseCase(args, 0))
			return 0
		}
		if v, ok := memo[key{i, j}]; ok {
			rec.Add(step.MemoHit(args, v))
			return v
		}
		rec.Add(step.Compute(args))

		best, bestK := math.MaxInt, -1
		for k := i; k < j; k++ {
			left := solve(i, k)
			right := solve(k+1, j)
			cost := d[i-1] * d[k] * d[j]
			total := left + right + cost
			rec.Add(step.Split(i, j, k, left, right, cost, total))
			if total < best {
				best, bestK = total, k
			}
		}
		memo[key{i, j}] = best
		rec.Add(step.MemoStore(args, best, bestK))
		return best
	}

	rec.Add(step.Complete(solve(1, n-1)))
	return rec.Sequence()
}
