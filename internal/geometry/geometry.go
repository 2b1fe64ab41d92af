package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Point is a 2D coordinate. It decodes from a JSON [x, y] pair.
type Point [2]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

// PolygonPath converts an ordered vertex list into a closed SVG path using
// straight segments and an explicit close. An empty list yields "".
func PolygonPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		sb.WriteString(num(p.X()))
		sb.WriteByte(',')
		sb.WriteString(num(p.Y()))
	}
	sb.WriteByte('z')
	return sb.String()
}

// ArcPath returns a circular arc from source to target whose radius is the
// distance between them. leftHand picks the side the arc bulges towards, so
// A->B and B->A drawn with the same flag do not overlap.
//
// Coincident points produce a bare move command, which draws nothing.
func ArcPath(leftHand bool, source, target Point) string {
	from, to := source, target
	if !leftHand {
		from, to = target, source
	}

	if from == to {
		return "M" + num(from.X()) + "," + num(from.Y())
	}

	dr := Distance(from, to)
	sweep := "1"
	if leftHand {
		sweep = "0"
	}

	var sb strings.Builder
	sb.WriteString("M")
	sb.WriteString(num(from.X()))
	sb.WriteByte(',')
	sb.WriteString(num(from.Y()))
	sb.WriteString("A")
	sb.WriteString(num(dr))
	sb.WriteByte(',')
	sb.WriteString(num(dr))
	sb.WriteString(" 0,0,")
	sb.WriteString(sweep)
	sb.WriteByte(' ')
	sb.WriteString(num(to.X()))
	sb.WriteByte(',')
	sb.WriteString(num(to.Y()))
	return sb.String()
}

// Distance is the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X()-a.X(), b.Y()-a.Y())
}

// Centroid returns the area centroid of a polygon. Polygons with zero area
// fall back to the mean of their vertices; an empty polygon yields the origin.
func Centroid(points []Point) Point {
	n := len(points)
	if n == 0 {
		return Point{}
	}

	var k, x, y float64
	b := points[n-1]
	for _, a := range points {
		c := b.X()*a.Y() - a.X()*b.Y()
		k += c
		x += (b.X() + a.X()) * c
		y += (b.Y() + a.Y()) * c
		b = a
	}

	if k == 0 {
		var sx, sy float64
		for _, p := range points {
			sx += p.X()
			sy += p.Y()
		}
		return Point{sx / float64(n), sy / float64(n)}
	}

	k *= 3
	return Point{x / k, y / k}
}

// Box is an axis-aligned rectangle given by its minimum corner and size.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Max returns the corner opposite the origin corner.
func (b Box) Max() Point { return Point{b.X + b.Width, b.Y + b.Height} }

// ViewBox renders the box as an SVG viewBox attribute value.
func (b Box) ViewBox() string {
	return num(b.X) + " " + num(b.Y) + " " + num(b.Width) + " " + num(b.Height)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
