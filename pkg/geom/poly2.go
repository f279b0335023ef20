package geom

import "math"

// Vec2 is a 2D point used for profile and pattern math. Profiles are
// computed in float64 and narrowed to float32 when triangles are emitted.
type Vec2 struct {
	X, Y float64
}

// V2 is a shorthand constructor for Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. A zero-length vector
// normalizes to the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// At3 lifts a 2D point to 3D at the given height.
func (v Vec2) At3(z float64) Point3 {
	return Point3{X: float32(v.X), Y: float32(v.Y), Z: float32(z)}
}

// PointInPolygon reports whether p lies inside the implicitly-closed
// polygon using the even-odd (ray casting) rule. The half-open edge
// comparison treats boundary points as outside.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// PolygonBounds returns the axis-aligned bounds of a polygon.
// An empty polygon yields zero bounds.
func PolygonBounds(poly []Vec2) (min, max Vec2) {
	if len(poly) == 0 {
		return Vec2{}, Vec2{}
	}
	min, max = poly[0], poly[0]
	for _, p := range poly[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// PolygonCentroid returns the arithmetic mean of the polygon's vertices.
func PolygonCentroid(poly []Vec2) Vec2 {
	if len(poly) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range poly {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(poly)))
}

// OffsetPolygon moves every vertex along the average of its two adjacent
// edge normals (left-hand perpendiculars of the edge directions) by the
// signed distance d. For a CCW polygon a positive d moves vertices inward.
// A zero-length edge or averaged normal degrades to no movement for that
// vertex instead of producing NaN coordinates.
func OffsetPolygon(poly []Vec2, d float64) []Vec2 {
	n := len(poly)
	out := make([]Vec2, n)
	for i := 0; i < n; i++ {
		prev := poly[(i-1+n)%n]
		cur := poly[i]
		next := poly[(i+1)%n]

		n1 := leftNormal(cur.Sub(prev))
		n2 := leftNormal(next.Sub(cur))
		avg := n1.Add(n2).Normalize()

		out[i] = cur.Add(avg.Scale(d))
	}
	return out
}

// leftNormal returns the unit left-hand perpendicular of an edge
// direction, or the zero vector for a zero-length edge.
func leftNormal(dir Vec2) Vec2 {
	u := dir.Normalize()
	return Vec2{X: -u.Y, Y: u.X}
}
