// Package shape generates closed 2D footprint profiles. Every generator is
// a pure function: identical inputs yield identical, identically-ordered
// CCW point lists, because downstream triangulation indexes by position.
package shape

import (
	"fmt"
	"math"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

// Circle samples a circle of the given radius at segments points,
// counter-clockwise starting at angle zero.
func Circle(radius float64, segments int) []geom.Vec2 {
	pts := make([]geom.Vec2, 0, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, geom.V2(radius*math.Cos(a), radius*math.Sin(a)))
	}
	return pts
}

// Square returns the four corners of an axis-aligned square of the given
// side length centered on the origin, counter-clockwise.
func Square(size float64) []geom.Vec2 {
	h := size / 2
	return []geom.Vec2{
		geom.V2(h, -h),
		geom.V2(h, h),
		geom.V2(-h, h),
		geom.V2(-h, -h),
	}
}

// RegularPolygon samples a regular polygon like Circle but with the angle
// offset by -pi/2 so the first vertex sits on the vertical axis.
func RegularPolygon(radius float64, sides int) []geom.Vec2 {
	pts := make([]geom.Vec2, 0, sides)
	for i := 0; i < sides; i++ {
		a := 2*math.Pi*float64(i)/float64(sides) - math.Pi/2
		pts = append(pts, geom.V2(radius*math.Cos(a), radius*math.Sin(a)))
	}
	return pts
}

// Hexagon is RegularPolygon with six sides.
func Hexagon(radius float64) []geom.Vec2 {
	return RegularPolygon(radius, 6)
}

// Octagon is RegularPolygon with eight sides.
func Octagon(radius float64) []geom.Vec2 {
	return RegularPolygon(radius, 8)
}

// RoundedSquare builds a square of the given side length whose corners are
// replaced by quarter-circle arcs. The corner radius is limited to
// size/2 - 1 so opposite arcs cannot cross; each arc is sampled at
// segmentsPerCorner+1 points and the four arcs concatenate into the loop.
func RoundedSquare(size, cornerRadius float64, segmentsPerCorner int) []geom.Vec2 {
	h := size / 2
	r := math.Min(cornerRadius, h-1)

	// Arc centers in CCW order starting at the bottom-right corner, with
	// the start angle of each quarter turn.
	corners := []struct {
		center geom.Vec2
		start  float64
	}{
		{geom.V2(h-r, -h+r), -math.Pi / 2},
		{geom.V2(h-r, h-r), 0},
		{geom.V2(-h+r, h-r), math.Pi / 2},
		{geom.V2(-h+r, -h+r), math.Pi},
	}

	pts := make([]geom.Vec2, 0, 4*(segmentsPerCorner+1))
	for _, c := range corners {
		for i := 0; i <= segmentsPerCorner; i++ {
			a := c.start + (math.Pi/2)*float64(i)/float64(segmentsPerCorner)
			pts = append(pts, geom.V2(
				c.center.X+r*math.Cos(a),
				c.center.Y+r*math.Sin(a),
			))
		}
	}
	return pts
}

// Profile generates the footprint polygon for a spec. The dispatch is
// exhaustive over the shape variants; an unhandled variant is an error
// rather than a silent fallback.
func Profile(s design.Spec) ([]geom.Vec2, error) {
	radius := s.Diameter / 2
	switch s.Shape.(type) {
	case design.Circle:
		return Circle(radius, s.CurveResolution*4), nil
	case design.Square:
		return Square(s.Diameter), nil
	case design.Hexagon:
		return Hexagon(radius), nil
	case design.Octagon:
		return Octagon(radius), nil
	case design.RoundedSquare:
		return RoundedSquare(s.Diameter, s.CornerRadius, s.CurveResolution), nil
	case design.CustomPolygon:
		return RegularPolygon(radius, s.PolygonSides), nil
	default:
		return nil, fmt.Errorf("shape: unhandled variant %T", s.Shape)
	}
}
