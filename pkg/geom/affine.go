package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform in row-major order with an implicit
// bottom row of [0 0 1]:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Affine f64.Aff3

// Identity is the transform that leaves every point unchanged.
var Identity = Affine{1, 0, 0, 0, 1, 0}

// Translate returns a transform moving points by (dx, dy).
func Translate(dx, dy float64) Affine {
	return Affine{1, 0, dx, 0, 1, dy}
}

// Scale returns a transform scaling about the origin.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// ScaleAbout returns a transform scaling by (sx, sy) with origin fixed.
func ScaleAbout(sx, sy float64, origin Point) Affine {
	return Translate(-origin.X, -origin.Y).Then(Scale(sx, sy)).Then(Translate(origin.X, origin.Y))
}

// Then returns the transform that applies m first and n second.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		n[0]*m[0] + n[1]*m[3],
		n[0]*m[1] + n[1]*m[4],
		n[0]*m[2] + n[1]*m[5] + n[2],
		n[3]*m[0] + n[4]*m[3],
		n[3]*m[1] + n[4]*m[4],
		n[3]*m[2] + n[4]*m[5] + n[5],
	}
}

// Apply transforms a single point.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// ApplyRect returns the bounds of r's transformed corners.
func (m Affine) ApplyRect(r Rect) Rect {
	c := r.Corners()
	pts := make([]Point, len(c))
	for i, p := range c {
		pts[i] = m.Apply(p)
	}
	out, _ := BoundsOf(pts)
	return out
}

// MeanScale returns the geometric mean of the axis scale factors. It is used
// to scale stroke widths along with the shape.
func (m Affine) MeanScale() float64 {
	sx := math.Hypot(m[0], m[3])
	sy := math.Hypot(m[1], m[4])
	return math.Sqrt(sx * sy)
}
