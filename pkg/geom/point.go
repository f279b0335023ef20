// Package geom defines the triangle-mesh data model and the small set of
// 2D polygon utilities shared by the profile, relief, and pattern builders.
package geom

import "math"

// Epsilon is the tolerance used for Point3 equality comparisons.
const Epsilon = 1e-6

// Point3 is a point or vector in 3D space. Components are float32 to match
// the precision of the STL and 3MF wire formats.
type Point3 struct {
	X, Y, Z float32
}

// P3 is a shorthand constructor for Point3.
func P3(x, y, z float32) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by s.
func (p Point3) Scale(s float32) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Cross returns the cross product p × q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Length returns the Euclidean length of p.
func (p Point3) Length() float32 {
	return float32(math.Sqrt(float64(p.X)*float64(p.X) +
		float64(p.Y)*float64(p.Y) + float64(p.Z)*float64(p.Z)))
}

// Normalize returns p scaled to unit length. A zero-length vector
// normalizes to the zero vector rather than producing NaN components.
func (p Point3) Normalize() Point3 {
	l := p.Length()
	if l == 0 {
		return Point3{}
	}
	return p.Scale(1 / l)
}

// Eq reports whether p and q are equal within Epsilon on every component.
func (p Point3) Eq(q Point3) bool {
	return abs32(p.X-q.X) < Epsilon &&
		abs32(p.Y-q.Y) < Epsilon &&
		abs32(p.Z-q.Z) < Epsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Triangle is an immutable face with a fixed winding order. Normal is
// derived from the winding at construction; a degenerate triangle carries
// a zero normal, which the mesh validator reports as a warning.
type Triangle struct {
	V1, V2, V3 Point3
	Normal     Point3
}

// NewTriangle builds a triangle from three vertices and derives its unit
// normal from cross(v2-v1, v3-v1).
func NewTriangle(v1, v2, v3 Point3) Triangle {
	n := v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()
	return Triangle{V1: v1, V2: v2, V3: v3, Normal: n}
}

// Flip returns a new triangle with reversed vertex order and therefore a
// reversed normal.
func (t Triangle) Flip() Triangle {
	return NewTriangle(t.V3, t.V2, t.V1)
}

// Area returns the triangle's surface area.
func (t Triangle) Area() float64 {
	c := t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1))
	return float64(c.Length()) / 2
}
