package geometry

// Transform is a uniform-scale affine transform: p' = p*K + (X, Y).
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the transform that leaves points where they are.
var Identity = Transform{K: 1}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{p.X()*t.K + t.X, p.Y()*t.K + t.Y}
}

// Invert maps a transformed point back to its original position.
func (t Transform) Invert(p Point) Point {
	return Point{(p.X() - t.X) / t.K, (p.Y() - t.Y) / t.K}
}

// Translate moves the transform by (x, y) in untransformed units.
func (t Transform) Translate(x, y float64) Transform {
	if x == 0 && y == 0 {
		return t
	}
	return Transform{X: t.X + t.K*x, Y: t.Y + t.K*y, K: t.K}
}

// Scale multiplies the scale factor, keeping the translation.
func (t Transform) Scale(k float64) Transform {
	if k == 1 {
		return t
	}
	return Transform{X: t.X, Y: t.Y, K: t.K * k}
}

// String renders the transform as an SVG transform attribute value.
func (t Transform) String() string {
	return "translate(" + num(t.X) + "," + num(t.Y) + ") scale(" + num(t.K) + ")"
}
