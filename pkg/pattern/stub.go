package pattern

import (
	"math"

	"github.com/skelhorn/coastergen/pkg/geom"
)

// Stub primitive dimensions, shared by the non-slip bottom option and the
// non-slip dots pattern.
const (
	StubSpacing = 15.0
	StubRadius  = 1.0
	StubHeight  = 0.5
	StubSides   = 8
)

// Stubs samples a uniform grid over the footprint bounds and emits a
// small downward-protruding cone at every sample point inside the
// profile. A spacing of zero or less falls back to the default.
func Stubs(m *geom.Mesh, profile []geom.Vec2, spacing float64) {
	if spacing <= 0 {
		spacing = StubSpacing
	}
	min, max := geom.PolygonBounds(profile)
	for y := min.Y; y <= max.Y; y += spacing {
		for x := min.X; x <= max.X; x += spacing {
			p := geom.V2(x, y)
			if geom.PointInPolygon(p, profile) {
				addStub(m, p)
			}
		}
	}
}

// addStub emits a faceted cone extending below z=0 at the given point.
func addStub(m *geom.Mesh, center geom.Vec2) {
	apex := center.At3(-StubHeight)
	ring := make([]geom.Point3, StubSides)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / StubSides
		ring[i] = geom.V2(
			center.X+StubRadius*math.Cos(a),
			center.Y+StubRadius*math.Sin(a),
		).At3(0)
	}
	for i := 0; i < StubSides; i++ {
		j := (i + 1) % StubSides
		m.Add(geom.NewTriangle(ring[i], apex, ring[j]))
	}
}
