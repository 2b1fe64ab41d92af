package timescale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/codeviz/internal/tree"
)

func smallDays() []tree.Day {
	return []tree.Day{{Day: 0, Commits: 2}, {Day: 100, Commits: 4}, {Day: 200, Commits: 0}}
}

func TestScale(t *testing.T) {
	s := NewScale(tree.DateRange{Earliest: 0, Latest: 200}, 5, 210)

	assert.Equal(t, 5.0, s.Map(0))
	assert.Equal(t, 107.5, s.Map(100))
	assert.Equal(t, 210.0, s.Map(200))
	assert.Equal(t, int64(100), s.Invert(107.5))
	assert.Equal(t, int64(0), s.Invert(5))
	assert.Equal(t, tree.DateRange{Earliest: 0, Latest: 200}, s.Domain())
}

func TestScale_Degenerate(t *testing.T) {
	s := NewScale(tree.DateRange{Earliest: 50, Latest: 50}, 0, 100)
	assert.Equal(t, 50.0, s.Map(50))
	assert.Equal(t, int64(50), s.Invert(10))

	flat := NewScale(tree.DateRange{Earliest: 0, Latest: 10}, 3, 3)
	assert.Equal(t, int64(0), flat.Invert(3))
}

func TestTimescale_Layout(t *testing.T) {
	ts := New(smallDays(), 215, 100)

	assert.Equal(t, 70.0, ts.Height)
	assert.Equal(t, "M5,30L107.5,10L210,50L210,50L107.5,50L5,50Z", ts.Area())

	x0, y0, x1, y1 := ts.BrushExtent()
	assert.Equal(t, []float64{5, 0.5, 210, 50.5}, []float64{x0, y0, x1, y1})

	view := ts.View([2]float64{5, 107.5}, 100)
	assert.Equal(t, 100.0, view.Height)
	require.NotNil(t, view.Selection)
	assert.Equal(t, [2]float64{5, 107.5}, *view.Selection)
	assert.Equal(t, 50.5, view.BrushBot)
}

func TestTimescale_Empty(t *testing.T) {
	ts := New(nil, 100, 80)
	assert.Equal(t, "", ts.Area())
}

func TestBrush_RoundTrip(t *testing.T) {
	days := []tree.Day{{Day: 1600000000, Commits: 1}, {Day: 1700000000, Commits: 3}}
	ts := New(days, 1000, 80)

	want := tree.DateRange{Earliest: 1620000000, Latest: 1680000000}
	b := NewBrush(ts, tree.DateRange{}, nil)
	b.Move(want)

	sel := b.Selection()
	got := tree.DateRange{Earliest: ts.X.Invert(sel[0]), Latest: ts.X.Invert(sel[1])}
	assert.InDelta(t, want.Earliest, got.Earliest, 1)
	assert.InDelta(t, want.Latest, got.Latest, 1)
}

func TestBrush_End(t *testing.T) {
	ts := New(smallDays(), 215, 100)
	var reported []tree.DateRange
	b := NewBrush(ts, tree.DateRange{Earliest: 0, Latest: 200}, func(r tree.DateRange) {
		reported = append(reported, r)
	})

	// dragging over the exact current range is a no-op
	same := b.Selection()
	_, changed := b.End(&same)
	assert.False(t, changed)
	assert.Empty(t, reported)

	// a new interval, given right to left, is ordered and reported
	r, changed := b.End(&[2]float64{107.5, 5})
	assert.True(t, changed)
	assert.Equal(t, tree.DateRange{Earliest: 0, Latest: 100}, r)
	assert.Equal(t, []tree.DateRange{r}, reported)

	// a cleared brush reports nothing
	_, changed = b.End(nil)
	assert.False(t, changed)
	assert.Len(t, reported, 1)
}

func TestBrush_ClampsToExtent(t *testing.T) {
	ts := New(smallDays(), 215, 100)
	b := NewBrush(ts, tree.DateRange{Earliest: 50, Latest: 150}, nil)

	r, changed := b.End(&[2]float64{-100, 5000})
	assert.True(t, changed)
	assert.Equal(t, tree.DateRange{Earliest: 0, Latest: 200}, r)

	b.Move(tree.DateRange{Earliest: -1000, Latest: 1000})
	assert.Equal(t, [2]float64{5, 210}, b.Selection())
	assert.Equal(t, tree.DateRange{Earliest: -1000, Latest: 1000}, b.Range())
}
