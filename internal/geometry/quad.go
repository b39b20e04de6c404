package geometry

import "math"

// Quad is a convex four-vertex polygon: a rectangle under an affine map.
// Vertices are in order around the boundary; winding may be either direction
// because mirrored items flip it.
type Quad [4]Point

// UnitQuad maps the rectangle [0,w]×[0,h] through m.
func UnitQuad(m Matrix2D, w, h float64) Quad {
	return m.TransformQuad(Rect{Width: w, Height: h})
}

// Bounds returns the axis-aligned box around the quad.
func (q Quad) Bounds() Rect {
	return BoundsOf(q[:]...)
}

// Edge returns the i-th edge as a pair of endpoints.
func (q Quad) Edge(i int) (Point, Point) {
	return q[i], q[(i+1)%4]
}

// ContainsPoint reports whether p lies inside or on the boundary.
func (q Quad) ContainsPoint(p Point) bool {
	var pos, neg bool
	for i := range q {
		a, b := q.Edge(i)
		c := b.Sub(a).Cross(p.Sub(a))
		if c > 0 {
			pos = true
		} else if c < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	if !pos && !neg {
		// Collapsed quad: every edge is a point or lies on one line through p.
		return q.Bounds().Contains(p)
	}
	return true
}

// ContainsAny reports whether any of pts lies inside the quad.
func (q Quad) ContainsAny(pts ...Point) bool {
	for _, p := range pts {
		if q.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// EdgesIntersect reports whether any edge of q crosses or touches any edge of o.
func (q Quad) EdgesIntersect(o Quad) bool {
	for i := range q {
		a1, a2 := q.Edge(i)
		for j := range o {
			b1, b2 := o.Edge(j)
			if SegmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// Overlaps runs a separating-axis test between two convex quads. It is true
// when the quads share any area, including when one fully encloses the other.
func (q Quad) Overlaps(o Quad) bool {
	for _, poly := range [2]Quad{q, o} {
		for i := range poly {
			a, b := poly.Edge(i)
			axis := Point{X: a.Y - b.Y, Y: b.X - a.X}
			if axis.X == 0 && axis.Y == 0 {
				continue
			}
			qMin, qMax := q.project(axis)
			oMin, oMax := o.project(axis)
			if qMax < oMin || oMax < qMin {
				return false
			}
		}
	}
	return true
}

func (q Quad) project(axis Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range q {
		d := p.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// SegmentsIntersect reports whether segment p1p2 and segment p3p4 share a point.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear touching cases
	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}
	return false
}

func orientation(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment assumes c is collinear with ab.
func onSegment(a, b, c Point) bool {
	return c.X >= min(a.X, b.X) && c.X <= max(a.X, b.X) &&
		c.Y >= min(a.Y, b.Y) && c.Y <= max(a.Y, b.Y)
}
