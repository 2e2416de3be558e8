package dp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/algoviz/internal/step"
)

func result(t *testing.T, seq step.Sequence) int {
	t.Helper()
	last, ok := seq.Last()
	require.True(t, ok)
	require.Equal(t, step.KindComplete, last.Kind)
	v, ok := last.Result()
	require.True(t, ok)
	return v
}

func TestFibonacci(t *testing.T) {
	seq := Fibonacci(5)
	want := []step.Step{
		step.Compute([]int{5}),
		step.Compute([]int{4}),
		step.Compute([]int{3}),
		step.Compute([]int{2}),
		step.BaseCase([]int{1}, 1),
		step.BaseCase([]int{0}, 0),
		step.MemoStore([]int{2}, 1),
		step.BaseCase([]int{1}, 1),
		step.MemoStore([]int{3}, 2),
		step.MemoHit([]int{2}, 1),
		step.MemoStore([]int{4}, 3),
		step.MemoHit([]int{3}, 2),
		step.MemoStore([]int{5}, 5),
		step.Complete(5),
	}
	if diff := cmp.Diff(want, seq.Steps); diff != "" {
		t.Fatalf("fibonacci(5) mismatch (-want +got):\n%s", diff)
	}
}

func TestFibonacciDefault(t *testing.T) {
	seq := Fibonacci(DefaultFibonacci)
	assert.Equal(t, 21, result(t, seq))
	assert.Equal(t, 7, seq.Count(step.KindCompute))
	assert.Equal(t, 7, seq.Count(step.KindMemoStore))
	assert.Equal(t, 5, seq.Count(step.KindMemoHit))
	assert.Equal(t, 3, seq.Count(step.KindBaseCase))
}

func TestFibonacciBaseInputs(t *testing.T) {
	for n := 0; n <= 1; n++ {
		seq := Fibonacci(n)
		assert.Equal(t, []step.Step{step.BaseCase([]int{n}, n), step.Complete(n)}, seq.Steps)
	}
}

func TestKnapsack(t *testing.T) {
	seq := Knapsack(DefaultCapacity)
	assert.Equal(t, 13, result(t, seq))
	assert.Equal(t, 14, seq.Count(step.KindCompute))
	assert.Equal(t, 12, seq.Count(step.KindChoose))
	assert.Equal(t, 2, seq.Count(step.KindExclude))
	assert.Equal(t, seq.Count(step.KindCompute), seq.Count(step.KindMemoStore))

	for _, st := range seq.Filter(step.KindChoose) {
		require.Len(t, st.Values, 3)
		assert.Equal(t, max(st.Values[0], st.Values[1]), st.Values[2])
	}

	assert.Equal(t, 7, result(t, Knapsack(5)))
}

func TestMatrixChain(t *testing.T) {
	seq := MatrixChain(3)
	want := []step.Step{
		step.Compute([]int{1, 2}),
		step.BaseCase([]int{1, 1}, 0),
		step.BaseCase([]int{2, 2}, 0),
		step.Split(1, 2, 1, 0, 0, 6, 6),
		step.MemoStore([]int{1, 2}, 6, 1),
		step.Complete(6),
	}
	assert.Equal(t, want, seq.Steps)

	cases := map[int]int{2: 0, 4: 18, 5: 38}
	for n, cost := range cases {
		assert.Equal(t, cost, result(t, MatrixChain(n)), "n=%d", n)
	}
	assert.Equal(t, 4, MatrixChain(DefaultMatrices).Count(step.KindSplit))
	assert.Equal(t, 3, MatrixChain(5).Count(step.KindMemoHit))
}

func TestMatrixChainOutOfRange(t *testing.T) {
	assert.True(t, MatrixChain(1).Empty())
	assert.True(t, MatrixChain(len(ChainDimensions)+1).Empty())
}

func TestNQueens(t *testing.T) {
	cases := []struct{ n, solutions, placements int }{
		{1, 1, 1},
		{2, 0, 2},
		{3, 0, 5},
		{4, 2, 16},
		{5, 10, 53},
		{6, 4, 152},
	}
	for _, c := range cases {
		seq := NQueens(c.n)
		assert.Equal(t, c.solutions, result(t, seq), "n=%d", c.n)
		assert.Equal(t, c.solutions, seq.Count(step.KindBaseCase), "n=%d", c.n)
		assert.Equal(t, c.placements, seq.Count(step.KindPlace), "n=%d", c.n)
		assert.Equal(t, c.placements, seq.Count(step.KindRemove), "n=%d", c.n)
	}
}

func TestNQueensSolutions(t *testing.T) {
	got := NQueens(4).Filter(step.KindBaseCase)
	want := []step.Step{
		step.BaseCase([]int{1, 3, 0, 2}, 1),
		step.BaseCase([]int{2, 0, 3, 1}, 2),
	}
	assert.Equal(t, want, got)
}

func TestStepsStayInDPFamily(t *testing.T) {
	for _, seq := range []step.Sequence{Fibonacci(10), Knapsack(15), MatrixChain(5), NQueens(5)} {
		for _, st := range seq.Steps {
			assert.True(t, step.FamilyDP.Allows(st.Kind), "%s: %v", seq.Algorithm, st)
		}
	}
}
