package algo

import (
	"math/rand/v2"

	"github.com/awmpietro/algoviz/internal/algo/dp"
	"github.com/awmpietro/algoviz/internal/algo/graph"
)

// Input is the union of every generator's parameters. Each generator reads
// only the fields of its family.
type Input struct {
	// sorting and searching
	Array  []int `json:"array,omitempty" yaml:"array,omitempty" mapstructure:"array"`
	Target int   `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`

	// graph
	Start string `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	End   string `json:"end,omitempty" yaml:"end,omitempty" mapstructure:"end"`

	// tree
	Value int `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`

	// dynamic programming and backtracking
	N        int `json:"n,omitempty" yaml:"n,omitempty" mapstructure:"n"`
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty" mapstructure:"capacity"`
	Matrices int `json:"matrices,omitempty" yaml:"matrices,omitempty" mapstructure:"matrices"`
	Queens   int `json:"queens,omitempty" yaml:"queens,omitempty" mapstructure:"queens"`
}

const (
	DefaultTarget = 50
	DefaultValue  = 50

	RandomSize = 20
	RandomMin  = 10
	RandomMax  = 109

	// MaxRandom caps RandomArray sizes requested through the service.
	MaxRandom = 500
)

// DefaultInput returns the parameters the visualiser starts with. Array is
// left empty; callers supply data or use RandomArray.
func DefaultInput() Input {
	return Input{
		Target:   DefaultTarget,
		Start:    graph.DefaultStart,
		End:      graph.DefaultEnd,
		Value:    DefaultValue,
		N:        dp.DefaultFibonacci,
		Capacity: dp.DefaultCapacity,
		Matrices: dp.DefaultMatrices,
		Queens:   dp.DefaultQueens,
	}
}

// RandomArray returns n values drawn uniformly from [RandomMin, RandomMax].
func RandomArray(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = RandomMin + rng.IntN(RandomMax-RandomMin+1)
	}
	return out
}
