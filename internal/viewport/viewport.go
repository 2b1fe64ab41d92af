// Package viewport implements continuous pan and zoom for the map group.
package viewport

import (
	"math"

	"github.com/rohankatakam/codeviz/internal/geometry"
)

const (
	DefaultMinScale = 0.5
	DefaultMaxScale = 16.0
)

// Zoom tracks the map transform. Every gesture is applied immediately and
// reported through onZoom; nothing is debounced.
type Zoom struct {
	extent geometry.Box
	minK   float64
	maxK   float64
	t      geometry.Transform
	onZoom func(geometry.Transform)
}

// New creates a controller whose viewport and pan limits are both extent.
func New(extent geometry.Box, minK, maxK float64, onZoom func(geometry.Transform)) *Zoom {
	if minK <= 0 {
		minK = DefaultMinScale
	}
	if maxK < minK {
		maxK = DefaultMaxScale
	}
	return &Zoom{
		extent: extent,
		minK:   minK,
		maxK:   maxK,
		t:      geometry.Identity,
		onZoom: onZoom,
	}
}

// Transform is the current transform.
func (z *Zoom) Transform() geometry.Transform {
	return z.t
}

// ScaleExtent returns the allowed scale range.
func (z *Zoom) ScaleExtent() (float64, float64) {
	return z.minK, z.maxK
}

// Pan moves the map by (dx, dy) in viewport units.
func (z *Zoom) Pan(dx, dy float64) geometry.Transform {
	return z.set(geometry.Transform{X: z.t.X + dx, Y: z.t.Y + dy, K: z.t.K})
}

// ZoomAt scales by factor keeping the point p (viewport units) fixed.
func (z *Zoom) ZoomAt(p geometry.Point, factor float64) geometry.Transform {
	k := z.clampScale(z.t.K * factor)
	anchor := z.t.Invert(p)
	return z.set(geometry.Transform{
		X: p.X() - anchor.X()*k,
		Y: p.Y() - anchor.Y()*k,
		K: k,
	})
}

// ScaleTo zooms to an absolute scale about the viewport centre.
func (z *Zoom) ScaleTo(k float64) geometry.Transform {
	return z.ZoomAt(z.center(), k/z.t.K)
}

// TransformTo jumps to t, constrained like any other gesture.
func (z *Zoom) TransformTo(t geometry.Transform) geometry.Transform {
	if t.K == 0 {
		t = geometry.Identity
	}
	return z.set(geometry.Transform{X: t.X, Y: t.Y, K: z.clampScale(t.K)})
}

// Reset returns to the identity transform.
func (z *Zoom) Reset() geometry.Transform {
	return z.set(geometry.Identity)
}

func (z *Zoom) set(t geometry.Transform) geometry.Transform {
	z.t = constrain(t, z.extent, z.extent)
	if z.onZoom != nil {
		z.onZoom(z.t)
	}
	return z.t
}

func (z *Zoom) clampScale(k float64) float64 {
	return math.Max(z.minK, math.Min(z.maxK, k))
}

func (z *Zoom) center() geometry.Point {
	return geometry.Point{z.extent.X + z.extent.Width/2, z.extent.Y + z.extent.Height/2}
}

// constrain keeps the translate extent covering the viewport where it can,
// and centres it where it cannot, matching d3-zoom's default constraint.
func constrain(t geometry.Transform, extent, translateExtent geometry.Box) geometry.Transform {
	lo, hi := extent, extent.Max()
	tlo, thi := translateExtent, translateExtent.Max()

	dx0 := (lo.X-t.X)/t.K - tlo.X
	dx1 := (hi.X()-t.X)/t.K - thi.X()
	dy0 := (lo.Y-t.Y)/t.K - tlo.Y
	dy1 := (hi.Y()-t.Y)/t.K - thi.Y()

	return t.Translate(shift(dx0, dx1), shift(dy0, dy1))
}

func shift(d0, d1 float64) float64 {
	if d1 > d0 {
		return (d0 + d1) / 2
	}
	if m := math.Min(0, d0); m != 0 {
		return m
	}
	return math.Max(0, d1)
}
