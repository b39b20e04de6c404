package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Point is a 2D point or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Cross returns the z component of the 2D cross product.
func (p Point) Cross(o Point) float64 { return p.X*o.Y - p.Y*o.X }

// Dot returns the dot product.
func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// ApproxEqual compares both coordinates within tol.
func (p Point) ApproxEqual(o Point, tol float64) bool {
	return scalar.EqualWithinAbs(p.X, o.X, tol) && scalar.EqualWithinAbs(p.Y, o.Y, tol)
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
