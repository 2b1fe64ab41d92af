// Package style maps nodes and coupling edges to visual attributes.
package style

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Scale is a clamped linear colour scale over [lo, hi].
type Scale struct {
	lo, hi   float64
	from, to colorful.Color
}

// NewScale builds a scale interpolating in Lab space between two hex colours.
func NewScale(lo, hi float64, from, to string) (Scale, error) {
	f, err := colorful.Hex(from)
	if err != nil {
		return Scale{}, fmt.Errorf("scale start colour: %w", err)
	}
	t, err := colorful.Hex(to)
	if err != nil {
		return Scale{}, fmt.Errorf("scale end colour: %w", err)
	}
	return Scale{lo: lo, hi: hi, from: f, to: t}, nil
}

// Colour maps v to a hex colour. Values outside the domain are clamped to
// its ends; an empty domain maps everything to the end colour at hi.
func (s Scale) Colour(v float64) string {
	var t float64
	switch {
	case s.hi <= s.lo:
		if v >= s.hi {
			t = 1
		}
	default:
		t = (v - s.lo) / (s.hi - s.lo)
	}
	if t >= 1 {
		return s.to.Hex()
	}
	if t <= 0 {
		return s.from.Hex()
	}
	return s.from.BlendLab(s.to, t).Clamped().Hex()
}

// FillFunc returns the fill colour for a cell.
type FillFunc func(n *hierarchy.Node) string

// NewFill resolves the mode once for a render pass. Leaves use the mode's
// leaf derivation through a scale whose domain comes from global stats, so
// colours compare across the whole map. Parents use the parent derivation and
// fall back to the palette's parent fill when it has no data.
func NewFill(mode Mode, p Palette, stats tree.Stats) (FillFunc, error) {
	vis := mode.visualization()
	scale, err := NewScale(0, vis.domain(stats), p.ScaleLow, p.ScaleHigh)
	if err != nil {
		return nil, err
	}

	return func(n *hierarchy.Node) string {
		if n.IsParent() {
			if v, ok := vis.parent(n); ok {
				return scale.Colour(v)
			}
			return p.ParentFill
		}
		if v, ok := vis.leaf(n); ok {
			return scale.Colour(v)
		}
		return p.NeutralFill
	}, nil
}

// CellStrokeWidth thins borders with depth down to 1. Circle-packed layouts
// get no border at all since nesting already shows containment.
func CellStrokeWidth(n *hierarchy.Node) float64 {
	if n.Data.Layout.Algorithm == tree.AlgorithmCirclePack {
		return 0
	}
	if n.Depth < 4 {
		return float64(4 - n.Depth)
	}
	return 1
}

// Edge stroke widths.
const (
	EdgeWidthStrong = 3.0
	EdgeWidthMedium = 2.0
	EdgeWidthWeak   = 1.0
)

// EdgeWidth buckets a coupling ratio into three stroke widths.
func EdgeWidth(ratio float64) float64 {
	if ratio >= 0.95 {
		return EdgeWidthStrong
	}
	if ratio > 0.8 {
		return EdgeWidthMedium
	}
	return EdgeWidthWeak
}

// EdgeOpacity makes weaker couplings more transparent.
func EdgeOpacity(ratio float64) float64 {
	return ratio
}

// EdgeLabel is the tooltip text for a coupling edge.
func EdgeLabel(source, target string, ratio float64) string {
	return fmt.Sprintf("%s -> %s (%.3f)", source, target, ratio)
}
