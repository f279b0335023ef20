// Package pattern carves decorative and functional surface patterns.
// Patterns are additively layered shells: recess walls and protrusions
// are emitted as extra triangles on top of the solid, never subtracted
// from it, so overlapping output is an accepted limitation.
package pattern

import (
	"fmt"
	"math"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

// ringSegments is the arc resolution used for concentric grooves.
const ringSegments = 64

// endpointInset is the fraction of the bounding box trimmed from each end
// of a grid groove before the inside test.
const endpointInset = 0.1

// Carve adds one pattern layer to the mesh. topZ is the surface the
// pattern is cut into. A spacing of zero or less falls back to the
// kind's default so the sweep loops always advance.
func Carve(m *geom.Mesh, profile []geom.Vec2, ps design.PatternSpec, topZ float64) error {
	if ps.Spacing <= 0 {
		ps.Spacing = design.DefaultPattern(ps.Kind).Spacing
	}
	switch ps.Kind {
	case design.PatternHoneycomb:
		carveHoneycomb(m, profile, ps, topZ)
	case design.PatternGrid:
		carveGrid(m, profile, ps, topZ)
	case design.PatternConcentric:
		carveConcentric(m, profile, ps, topZ)
	case design.PatternDrainage:
		carveDrainage(m, profile, ps, topZ)
	case design.PatternNonSlipDots:
		Stubs(m, profile, ps.Spacing)
	default:
		return fmt.Errorf("pattern: unhandled kind %v", ps.Kind)
	}
	return nil
}

// carveHoneycomb lays out a staggered hex grid over the footprint bounds
// and emits a hexagonal recess shell at every center inside the profile.
func carveHoneycomb(m *geom.Mesh, profile []geom.Vec2, ps design.PatternSpec, topZ float64) {
	min, max := geom.PolygonBounds(profile)
	hexW := ps.Spacing
	hexH := ps.Spacing * math.Sqrt(3) / 2

	row := 0
	for y := min.Y; y <= max.Y; y += 1.5 * hexH {
		shift := 0.0
		if row%2 == 1 {
			shift = 0.75 * hexW
		}
		for x := min.X + shift; x <= max.X; x += hexW {
			c := geom.V2(x, y)
			if geom.PointInPolygon(c, profile) {
				hexRecess(m, c, ps.Spacing/2, ps.Depth, topZ)
			}
		}
		row++
	}
}

// hexRecess emits the shell of a hexagonal recess: a floor facing up and
// six walls facing into the cavity.
func hexRecess(m *geom.Mesh, center geom.Vec2, radius, depth, topZ float64) {
	zBot := topZ - depth
	pts := make([]geom.Vec2, 6)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / 6
		pts[i] = geom.V2(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}

	floor := center.At3(zBot)
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		m.Add(geom.NewTriangle(floor, pts[i].At3(zBot), pts[j].At3(zBot)))
		m.AddQuad(
			pts[j].At3(zBot), pts[i].At3(zBot),
			pts[i].At3(topZ), pts[j].At3(topZ),
		)
	}
}

// carveGrid emits horizontal and vertical grooves at the configured
// spacing. Endpoints are inset from the bounding box and a groove is
// emitted only when both endpoints test inside the profile.
func carveGrid(m *geom.Mesh, profile []geom.Vec2, ps design.PatternSpec, topZ float64) {
	min, max := geom.PolygonBounds(profile)
	size := max.Sub(min)
	x0 := min.X + endpointInset*size.X
	x1 := max.X - endpointInset*size.X
	y0 := min.Y + endpointInset*size.Y
	y1 := max.Y - endpointInset*size.Y

	for y := min.Y + ps.Spacing; y < max.Y; y += ps.Spacing {
		a := geom.V2(x0, y)
		b := geom.V2(x1, y)
		if geom.PointInPolygon(a, profile) && geom.PointInPolygon(b, profile) {
			Groove(m, a, b, ps.Width, ps.Depth, topZ)
		}
	}
	for x := min.X + ps.Spacing; x < max.X; x += ps.Spacing {
		a := geom.V2(x, y0)
		b := geom.V2(x, y1)
		if geom.PointInPolygon(a, profile) && geom.PointInPolygon(b, profile) {
			Groove(m, a, b, ps.Width, ps.Depth, topZ)
		}
	}
}

// carveConcentric emits circular grooves at increasing radius up to half
// the bounding box's smaller dimension.
func carveConcentric(m *geom.Mesh, profile []geom.Vec2, ps design.PatternSpec, topZ float64) {
	min, max := geom.PolygonBounds(profile)
	size := max.Sub(min)
	maxR := math.Min(size.X, size.Y) / 2

	for r := ps.Spacing; r < maxR; r += ps.Spacing {
		ringGroove(m, r, ps.Width, ps.Depth, topZ)
	}
}

// ringGroove emits an annular channel centered on the origin: an upward
// floor between the inner and outer radii plus the two cylindrical walls.
func ringGroove(m *geom.Mesh, radius, width, depth, topZ float64) {
	ri := radius - width/2
	ro := radius + width/2
	zBot := topZ - depth

	for i := 0; i < ringSegments; i++ {
		a0 := 2 * math.Pi * float64(i) / ringSegments
		a1 := 2 * math.Pi * float64(i+1) / ringSegments

		in0 := geom.V2(ri*math.Cos(a0), ri*math.Sin(a0))
		in1 := geom.V2(ri*math.Cos(a1), ri*math.Sin(a1))
		out0 := geom.V2(ro*math.Cos(a0), ro*math.Sin(a0))
		out1 := geom.V2(ro*math.Cos(a1), ro*math.Sin(a1))

		// Floor.
		m.AddQuad(in0.At3(zBot), out0.At3(zBot), out1.At3(zBot), in1.At3(zBot))
		// Inner wall faces into the channel.
		m.AddQuad(in0.At3(zBot), in1.At3(zBot), in1.At3(topZ), in0.At3(topZ))
		// Outer wall faces back toward the axis.
		m.AddQuad(out1.At3(zBot), out0.At3(zBot), out0.At3(topZ), out1.At3(topZ))
	}
}

// carveDrainage emits grooves radiating from the profile centroid at
// equal angular spacing, each reaching 80% of the maximum radius.
func carveDrainage(m *geom.Mesh, profile []geom.Vec2, ps design.PatternSpec, topZ float64) {
	n := ps.Count
	if n < 1 {
		n = 1
	}
	c := geom.PolygonCentroid(profile)

	maxR := 0.0
	for _, p := range profile {
		if d := p.Sub(c).Length(); d > maxR {
			maxR = d
		}
	}

	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		end := c.Add(geom.V2(math.Cos(a), math.Sin(a)).Scale(0.8 * maxR))
		Groove(m, c, end, ps.Width, ps.Depth, topZ)
	}
}

// Groove emits a straight rectangular channel between two endpoints: a
// floor at topZ-depth, two long side walls, and two end walls, all facing
// into the channel. A zero-length groove emits nothing.
func Groove(m *geom.Mesh, a, b geom.Vec2, width, depth, topZ float64) {
	dir := b.Sub(a).Normalize()
	if dir == (geom.Vec2{}) {
		return
	}
	perp := geom.V2(-dir.Y, dir.X).Scale(width / 2)
	zBot := topZ - depth

	a1 := a.Add(perp)
	a2 := a.Sub(perp)
	b1 := b.Add(perp)
	b2 := b.Sub(perp)

	// Floor.
	m.AddQuad(a2.At3(zBot), b2.At3(zBot), b1.At3(zBot), a1.At3(zBot))
	// Long walls.
	m.AddQuad(a1.At3(zBot), b1.At3(zBot), b1.At3(topZ), a1.At3(topZ))
	m.AddQuad(b2.At3(zBot), a2.At3(zBot), a2.At3(topZ), b2.At3(topZ))
	// End walls.
	m.AddQuad(b1.At3(zBot), b2.At3(zBot), b2.At3(topZ), b1.At3(topZ))
	m.AddQuad(a2.At3(zBot), a1.At3(zBot), a1.At3(topZ), a2.At3(topZ))
}
