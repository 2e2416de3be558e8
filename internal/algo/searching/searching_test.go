package searching

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/algoviz/internal/step"
)

func indices(steps []step.Step) []int {
	out := make([]int, 0, len(steps))
	for _, st := range steps {
		out = append(out, st.Index())
	}
	return out
}

func TestLinearFindsFirstMatch(t *testing.T) {
	seq := Linear([]int{5, 3, 8, 1}, 8)
	assert.Equal(t, []int{0, 1, 2}, indices(seq.Filter(step.KindCheckIndex)))
	last, ok := seq.Last()
	require.True(t, ok)
	assert.Equal(t, step.Found(2), last)
	assert.Equal(t, 4, seq.Len())
}

func TestLinearNoMatchChecksEveryIndex(t *testing.T) {
	for n := 0; n < 10; n++ {
		arr := make([]int, n)
		for i := range arr {
			arr[i] = i + 1
		}
		seq := Linear(arr, 1000)
		assert.Equal(t, n, seq.Count(step.KindCheckIndex))
		assert.Equal(t, n+1, seq.Len())
		last, _ := seq.Last()
		assert.Equal(t, step.KindNotFound, last.Kind)
	}
}

func TestBinaryMissingTarget(t *testing.T) {
	seq := Binary([]int{1, 3, 5, 7, 9}, 4)
	want := []step.Step{
		step.CheckIndex(2), step.NarrowRange(0, 4),
		step.CheckIndex(0), step.NarrowRange(0, 1),
		step.CheckIndex(1), step.NarrowRange(1, 1),
		step.NotFound(),
	}
	assert.Equal(t, want, seq.Steps)
}

func TestBinaryCheckBound(t *testing.T) {
	for n := 1; n <= 64; n++ {
		arr := make([]int, n)
		for i := range arr {
			arr[i] = 2 * (i + 1)
		}
		limit := int(math.Ceil(math.Log2(float64(n + 1))))
		for target := 0; target <= 2*n+1; target++ {
			seq := Binary(arr, target)
			require.LessOrEqual(t, seq.Count(step.KindCheckIndex), limit, "n=%d target=%d", n, target)

			last, _ := seq.Last()
			if target%2 == 0 && target > 0 && target <= 2*n {
				require.Equal(t, step.Found(target/2-1), last)
			} else {
				require.Equal(t, step.NotFound(), last)
			}
		}
	}
}

func TestEmptyInputIsSingleNotFound(t *testing.T) {
	for _, seq := range []step.Sequence{Linear(nil, 3), Binary([]int{}, 3)} {
		assert.Equal(t, []step.Step{step.NotFound()}, seq.Steps)
	}
}

func TestStringMatchersOnSample(t *testing.T) {
	cases := []struct {
		name   string
		seq    step.Sequence
		checks int
	}{
		{"kmp", KMP(SampleText, SamplePattern), 23},
		{"rabin-karp", RabinKarp(SampleText, SamplePattern), 10},
		{"z-algorithm", ZAlgorithm(SampleText, SamplePattern), 16},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.name, c.seq.Algorithm)
			assert.Equal(t, []step.Step{step.Found(10)}, c.seq.Filter(step.KindFound))
			assert.Equal(t, c.checks, c.seq.Count(step.KindCheckIndex))
			assert.Zero(t, c.seq.Count(step.KindNotFound))
			for _, st := range c.seq.Filter(step.KindCheckIndex) {
				assert.GreaterOrEqual(t, st.Index(), 0)
				assert.Less(t, st.Index(), len(SampleText))
			}
		})
	}
}

func TestRabinKarpAnnouncesEveryWindow(t *testing.T) {
	seq := RabinKarp(SampleText, SamplePattern)
	windows := seq.Filter(step.KindNarrowRange)
	require.Len(t, windows, len(SampleText)-len(SamplePattern)+1)
	for i, w := range windows {
		assert.Equal(t, []int{i, i + len(SamplePattern) - 1}, w.Indices)
	}
}

func TestStringMatchersReportEveryMatch(t *testing.T) {
	text, pattern := "AAAAA", "AA"
	for _, seq := range []step.Sequence{KMP(text, pattern), RabinKarp(text, pattern), ZAlgorithm(text, pattern)} {
		assert.Equal(t, []int{0, 1, 2, 3}, indices(seq.Filter(step.KindFound)), seq.Algorithm)
	}
}

func TestStringMatchersNoMatch(t *testing.T) {
	for _, seq := range []step.Sequence{KMP("ABCD", "XY"), RabinKarp("ABCD", "XY"), ZAlgorithm("ABCD", "XY")} {
		last, _ := seq.Last()
		assert.Equal(t, step.NotFound(), last, seq.Algorithm)
		assert.Zero(t, seq.Count(step.KindFound))
	}
}

func TestGolden(t *testing.T) {
	datadriven.RunTest(t, "testdata/searching", func(t *testing.T, d *datadriven.TestData) string {
		var target int
		d.ScanArgs(t, "target", &target)
		var arr []int
		for _, f := range strings.Fields(d.Input) {
			v, err := strconv.Atoi(f)
			if err != nil {
				d.Fatalf(t, "bad input %q: %v", f, err)
			}
			arr = append(arr, v)
		}
		var seq step.Sequence
		switch d.Cmd {
		case "linear":
			seq = Linear(arr, target)
		case "binary":
			seq = Binary(arr, target)
		default:
			d.Fatalf(t, "unknown command %q", d.Cmd)
		}
		var b strings.Builder
		for _, st := range seq.Steps {
			b.WriteString(st.String())
			b.WriteByte('\n')
		}
		return b.String()
	})
}
