package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonPath(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   string
	}{
		{"empty", nil, ""},
		{"triangle", []Point{{0, 0}, {10, 0}, {5, 8.5}}, "M0,0L10,0L5,8.5z"},
		{"negative coordinates", []Point{{-1, -2}, {3, -4}, {0, 1}}, "M-1,-2L3,-4L0,1z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolygonPath(tt.points))
		})
	}
}

func TestArcPath(t *testing.T) {
	source := Point{0, 0}
	target := Point{3, 4}

	// radius is the chord length, 5
	assert.Equal(t, "M0,0A5,5 0,0,0 3,4", ArcPath(true, source, target))
	// right-handed arcs start from the target and sweep the other way
	assert.Equal(t, "M3,4A5,5 0,0,1 0,0", ArcPath(false, source, target))
}

func TestArcPath_OppositeDirectionsDoNotOverlap(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 0}

	// A->B and B->A drawn left-handed start at different ends
	assert.NotEqual(t, ArcPath(true, a, b), ArcPath(true, b, a))
}

func TestArcPath_Degenerate(t *testing.T) {
	p := Point{2, 2}
	assert.Equal(t, "M2,2", ArcPath(true, p, p))
	assert.Equal(t, "M2,2", ArcPath(false, p, p))
}

func TestCentroid(t *testing.T) {
	square := []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	c := Centroid(square)
	assert.InDelta(t, 1.0, c.X(), 1e-9)
	assert.InDelta(t, 1.0, c.Y(), 1e-9)

	// winding order does not matter
	reversed := []Point{{0, 2}, {2, 2}, {2, 0}, {0, 0}}
	c = Centroid(reversed)
	assert.InDelta(t, 1.0, c.X(), 1e-9)
	assert.InDelta(t, 1.0, c.Y(), 1e-9)
}

func TestCentroid_Degenerate(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))

	line := []Point{{0, 0}, {4, 0}, {2, 0}}
	c := Centroid(line)
	assert.InDelta(t, 2.0, c.X(), 1e-9)
	assert.InDelta(t, 0.0, c.Y(), 1e-9)
}

func TestTransform_ApplyInvert(t *testing.T) {
	tr := Transform{X: 10, Y: -5, K: 2}
	p := Point{3, 4}

	applied := tr.Apply(p)
	assert.Equal(t, Point{16, 3}, applied)
	assert.Equal(t, p, tr.Invert(applied))
}

func TestTransform_TranslateScale(t *testing.T) {
	tr := Identity.Scale(2).Translate(5, 5)
	assert.Equal(t, Transform{X: 10, Y: 10, K: 2}, tr)
	assert.Equal(t, "translate(10,10) scale(2)", tr.String())
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, math.Sqrt2, Distance(Point{0, 0}, Point{1, 1}), 1e-12)
}

func TestBox(t *testing.T) {
	b := Box{X: -50, Y: -25, Width: 100, Height: 50}
	assert.Equal(t, Point{50, 25}, b.Max())
	assert.Equal(t, "-50 -25 100 50", b.ViewBox())
}
