package step

// Sequence is the ordered, finite list of steps produced for one
// (algorithm, input) pair. It is not modified after generation; consumers
// that need to mutate steps should Clone first.
type Sequence struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Steps     []Step `json:"steps" yaml:"steps"`
}

// Recorder appends steps in execution order. Generators own one Recorder per
// call and hand out the finished Sequence.
type Recorder struct {
	algorithm string
	steps     []Step
}

func NewRecorder(algorithm string) *Recorder {
	return &Recorder{algorithm: algorithm}
}

func (r *Recorder) Add(s Step) { r.steps = append(r.steps, s) }

func (r *Recorder) Len() int { return len(r.steps) }

// Sequence finishes the recording. The recorder must not be used afterwards.
func (r *Recorder) Sequence() Sequence {
	steps := r.steps
	if steps == nil {
		steps = []Step{}
	}
	r.steps = nil
	return Sequence{Algorithm: r.algorithm, Steps: steps}
}

func (s Sequence) Len() int { return len(s.Steps) }

func (s Sequence) Empty() bool { return len(s.Steps) == 0 }

// At returns a copy of step i.
func (s Sequence) At(i int) Step { return s.Steps[i].Clone() }

// Last returns the terminal step, if any.
func (s Sequence) Last() (Step, bool) {
	if len(s.Steps) == 0 {
		return Step{}, false
	}
	return s.Steps[len(s.Steps)-1].Clone(), true
}

func (s Sequence) Clone() Sequence {
	out := Sequence{Algorithm: s.Algorithm, Steps: make([]Step, len(s.Steps))}
	for i, st := range s.Steps {
		out.Steps[i] = st.Clone()
	}
	return out
}

// Count returns how many steps of kind k the sequence holds.
func (s Sequence) Count(k Kind) int {
	n := 0
	for _, st := range s.Steps {
		if st.Kind == k {
			n++
		}
	}
	return n
}

// Counts tallies steps by kind name.
func (s Sequence) Counts() map[string]int {
	out := make(map[string]int)
	for _, st := range s.Steps {
		out[st.Kind.String()]++
	}
	return out
}

// Filter returns the steps of the given kinds, in order.
func (s Sequence) Filter(kinds ...Kind) []Step {
	var out []Step
	for _, st := range s.Steps {
		for _, k := range kinds {
			if st.Kind == k {
				out = append(out, st.Clone())
				break
			}
		}
	}
	return out
}

// Replay applies every Swap step, in order, to a copy of arr and returns it.
// Swap indices outside arr are ignored.
func (s Sequence) Replay(arr []int) []int {
	out := append([]int(nil), arr...)
	for _, st := range s.Steps {
		if st.Kind != KindSwap {
			continue
		}
		for k, idx := range st.Indices {
			if k < len(st.Values) && idx >= 0 && idx < len(out) {
				out[idx] = st.Values[k]
			}
		}
	}
	return out
}
