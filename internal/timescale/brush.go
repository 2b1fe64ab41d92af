package timescale

import (
	"math"

	"github.com/rohankatakam/codeviz/internal/tree"
)

// Brush is an interval selection on the time axis. Intermediate drag
// frames are not reported; only the end of a drag can change the range.
type Brush struct {
	ts       *Timescale
	current  tree.DateRange
	onChange func(tree.DateRange)
}

// NewBrush creates a brush showing current that reports range changes to
// onChange.
func NewBrush(ts *Timescale, current tree.DateRange, onChange func(tree.DateRange)) *Brush {
	return &Brush{ts: ts, current: current, onChange: onChange}
}

// Move repositions the brush from a stored range without reporting.
func (b *Brush) Move(r tree.DateRange) {
	b.current = r
}

// Range is the range the brush currently shows.
func (b *Brush) Range() tree.DateRange {
	return b.current
}

// Selection is the current range in pixels, clamped to the brush extent.
func (b *Brush) Selection() [2]float64 {
	return [2]float64{b.clamp(b.ts.X.Map(b.current.Earliest)), b.clamp(b.ts.X.Map(b.current.Latest))}
}

// End finishes a drag over the pixel interval [x0, x1]. The interval is
// inverted through the time scale; if either end differs from the shown
// range the new range is reported and returned with true. A nil selection
// (a click that cleared the brush) reports nothing.
func (b *Brush) End(selection *[2]float64) (tree.DateRange, bool) {
	if selection == nil {
		return b.current, false
	}

	x0, x1 := b.clamp(selection[0]), b.clamp(selection[1])
	if x1 < x0 {
		x0, x1 = x1, x0
	}

	r := tree.DateRange{Earliest: b.ts.X.Invert(x0), Latest: b.ts.X.Invert(x1)}
	if r == b.current {
		return r, false
	}
	if b.onChange != nil {
		b.onChange(r)
	}
	return r, true
}

func (b *Brush) clamp(x float64) float64 {
	lo, _, hi, _ := b.ts.BrushExtent()
	return math.Max(lo, math.Min(hi, x))
}
