package timescale

import (
	"math"

	"github.com/rohankatakam/codeviz/internal/tree"
)

// Scale maps unix timestamps linearly onto a pixel range.
type Scale struct {
	d0, d1 int64
	r0, r1 float64
}

// NewScale builds a time scale over domain with pixel range [r0, r1].
func NewScale(domain tree.DateRange, r0, r1 float64) Scale {
	return Scale{d0: domain.Earliest, d1: domain.Latest, r0: r0, r1: r1}
}

// Domain returns the scale's time domain.
func (s Scale) Domain() tree.DateRange {
	return tree.DateRange{Earliest: s.d0, Latest: s.d1}
}

// Map converts a timestamp to a pixel position. A zero-length domain maps
// everything to the middle of the range.
func (s Scale) Map(ts int64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	t := float64(ts-s.d0) / float64(s.d1-s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// Invert converts a pixel position back to a timestamp, rounded to the
// nearest second.
func (s Scale) Invert(x float64) int64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	t := (x - s.r0) / (s.r1 - s.r0)
	return s.d0 + int64(math.Round(t*float64(s.d1-s.d0)))
}
