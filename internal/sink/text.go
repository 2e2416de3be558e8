package sink

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/awmpietro/algoviz/internal/step"
)

// Text prints one line per applied step, coloured by kind. With an Array
// attached each line also shows the array, highlighting the touched
// positions.
type Text struct {
	mu    sync.Mutex
	out   *termenv.Output
	array *Array
	n     int
	total int
}

type TextOption func(*Text)

// WithArray renders the array state after each step.
func WithArray(a *Array) TextOption {
	return func(t *Text) { t.array = a }
}

// WithProfile forces a colour profile; termenv.Ascii disables colour.
func WithProfile(p termenv.Profile) TextOption {
	return func(t *Text) { t.out = termenv.NewOutput(t.out.Writer(), termenv.WithProfile(p)) }
}

// WithTotal prefixes each line with its position out of total.
func WithTotal(total int) TextOption {
	return func(t *Text) { t.total = total }
}

func NewText(w io.Writer, opts ...TextOption) *Text {
	t := &Text{out: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var kindColors = map[step.Kind]string{
	step.KindCompare:           "#facc15",
	step.KindCheckIndex:        "#facc15",
	step.KindSwap:              "#f87171",
	step.KindSelect:            "#60a5fa",
	step.KindSetCurrent:        "#60a5fa",
	step.KindMarkSorted:        "#4ade80",
	step.KindFound:             "#4ade80",
	step.KindFoundValue:        "#4ade80",
	step.KindHighlightPath:     "#4ade80",
	step.KindAddToSpanningTree: "#4ade80",
	step.KindNotFound:          "#f87171",
	step.KindAlreadyExists:     "#f87171",
	step.KindMemoHit:           "#c084fc",
	step.KindMemoStore:         "#c084fc",
	step.KindComplete:          "#4ade80",
}

func (t *Text) Apply(s step.Step) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.n++
	var b strings.Builder
	if t.total > 0 {
		fmt.Fprintf(&b, "[%d/%d] ", t.n, t.total)
	}
	label := t.out.String(s.String())
	if c, ok := kindColors[s.Kind]; ok {
		label = label.Foreground(t.out.Color(c))
	}
	b.WriteString(label.String())

	if t.array != nil {
		t.array.Apply(s)
		b.WriteString("  ")
		b.WriteString(t.renderArray(t.array.Snapshot()))
	}
	b.WriteByte('\n')
	_, _ = t.out.WriteString(b.String())
}

func (t *Text) renderArray(snap Snapshot) string {
	active := make(map[int]bool, len(snap.Active))
	for _, i := range snap.Active {
		active[i] = true
	}
	sorted := make(map[int]bool, len(snap.Sorted))
	for _, i := range snap.Sorted {
		sorted[i] = true
	}

	cells := make([]string, len(snap.Values))
	for i, v := range snap.Values {
		cell := t.out.String(strconv.Itoa(v))
		switch {
		case i == snap.Found:
			cell = cell.Foreground(t.out.Color("#4ade80")).Bold()
		case active[i]:
			cell = cell.Foreground(t.out.Color("#facc15")).Underline()
		case sorted[i]:
			cell = cell.Foreground(t.out.Color("#4ade80"))
		case i < snap.Lo || i > snap.Hi:
			cell = cell.Faint()
		}
		cells[i] = cell.String()
	}
	return "[" + strings.Join(cells, " ") + "]"
}
