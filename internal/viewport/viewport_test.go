package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohankatakam/codeviz/internal/geometry"
)

var box = geometry.Box{X: 0, Y: 0, Width: 100, Height: 100}

func TestZoomAt_KeepsAnchorFixed(t *testing.T) {
	z := New(box, 0, 0, nil)

	tr := z.ZoomAt(geometry.Point{50, 50}, 2)
	assert.Equal(t, geometry.Transform{X: -50, Y: -50, K: 2}, tr)
	assert.Equal(t, geometry.Point{50, 50}, tr.Apply(geometry.Point{50, 50}))
}

func TestZoom_ScaleExtent(t *testing.T) {
	z := New(box, DefaultMinScale, DefaultMaxScale, nil)

	tr := z.ScaleTo(100)
	assert.Equal(t, 16.0, tr.K)

	tr = z.ScaleTo(0.01)
	assert.Equal(t, 0.5, tr.K)

	// zoomed out past the extent the map is centred
	assert.Equal(t, geometry.Transform{X: 25, Y: 25, K: 0.5}, tr)

	lo, hi := z.ScaleExtent()
	assert.Equal(t, 0.5, lo)
	assert.Equal(t, 16.0, hi)
}

func TestPan_BoundedByExtent(t *testing.T) {
	z := New(box, 0, 0, nil)

	// at scale 1 the map already fills the viewport
	assert.Equal(t, geometry.Identity, z.Pan(10, 0))

	z.ZoomAt(geometry.Point{50, 50}, 2)

	tr := z.Pan(10, 0)
	assert.Equal(t, geometry.Transform{X: -40, Y: -50, K: 2}, tr)

	// panning past the left edge stops at it
	tr = z.Pan(1000, 0)
	assert.Equal(t, 0.0, tr.X)

	tr = z.Pan(0, -1000)
	assert.Equal(t, -100.0, tr.Y)
}

func TestZoom_ReportsEveryGesture(t *testing.T) {
	var seen []geometry.Transform
	z := New(box, 0, 0, func(t geometry.Transform) { seen = append(seen, t) })

	z.ZoomAt(geometry.Point{0, 0}, 2)
	z.Pan(-5, -5)
	z.Pan(-5, -5)
	z.Reset()

	assert.Len(t, seen, 4)
	assert.Equal(t, geometry.Identity, seen[3])
	assert.Equal(t, geometry.Identity, z.Transform())
}

func TestZoom_CentredBoxExtent(t *testing.T) {
	centred := geometry.Box{X: -50, Y: -50, Width: 100, Height: 100}
	z := New(centred, 0, 0, nil)

	tr := z.ScaleTo(4)
	assert.Equal(t, geometry.Transform{X: 0, Y: 0, K: 4}, tr)
	assert.Equal(t, geometry.Point{0, 0}, tr.Apply(geometry.Point{0, 0}))
}

func TestTransformTo(t *testing.T) {
	var seen []geometry.Transform
	z := New(box, 0, 0, func(t geometry.Transform) { seen = append(seen, t) })

	assert.Equal(t, geometry.Transform{X: -50, Y: -50, K: 2}, z.TransformTo(geometry.Transform{X: -50, Y: -50, K: 2}))
	assert.Equal(t, geometry.Transform{K: 16}, z.TransformTo(geometry.Transform{K: 100}))
	assert.Equal(t, geometry.Identity, z.TransformTo(geometry.Transform{}))
	assert.Len(t, seen, 3)
}
