// Package builder assembles coaster meshes: base and top caps, side
// walls, edge treatment, the relief surface, and decorative layers. A
// builder run owns its mesh exclusively; every call to Generate produces
// a fresh mesh and never mutates a previous one.
package builder

import (
	"fmt"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

// rimWidth is the fixed inward offset of the raised-rim inner profile.
const rimWidth = 3.0

// maxRimHeight caps how far a raised rim climbs above the top surface.
const maxRimHeight = 2.0

// addBaseCap fan-triangulates the footprint at z=0. The edge order is
// swapped relative to the top cap so the outward normal points -z.
func addBaseCap(m *geom.Mesh, profile []geom.Vec2) {
	center := geom.P3(0, 0, 0)
	for i := 0; i < len(profile); i++ {
		p1 := profile[i]
		p2 := profile[(i+1)%len(profile)]
		m.Add(geom.NewTriangle(center, p2.At3(0), p1.At3(0)))
	}
}

// addTopCap fan-triangulates the footprint at the given height with the
// outward normal pointing +z.
func addTopCap(m *geom.Mesh, profile []geom.Vec2, z float64) {
	center := geom.P3(0, 0, float32(z))
	for i := 0; i < len(profile); i++ {
		p1 := profile[i]
		p2 := profile[(i+1)%len(profile)]
		m.Add(geom.NewTriangle(center, p1.At3(z), p2.At3(z)))
	}
}

// addWalls emits two triangles per profile edge forming the rectangular
// wall quad between z=0 and z=height, wound so normals face away from
// the centroid.
func addWalls(m *geom.Mesh, profile []geom.Vec2, height float64) {
	for i := 0; i < len(profile); i++ {
		p1 := profile[i]
		p2 := profile[(i+1)%len(profile)]
		m.AddQuad(p1.At3(0), p2.At3(0), p2.At3(height), p1.At3(height))
	}
}

// addEdgeTreatment dispatches on the edge-style variant. Beveled and
// rounded are deliberate no-ops: they are placeholder styles that must
// not alter geometry.
func addEdgeTreatment(m *geom.Mesh, profile []geom.Vec2, spec design.Spec, topZ float64) error {
	switch spec.Edge.(type) {
	case design.EdgeFlat, design.EdgeBeveled, design.EdgeRounded:
		return nil
	case design.EdgeRaisedRim:
		addRaisedRim(m, profile, spec, topZ)
		return nil
	default:
		return fmt.Errorf("builder: unhandled edge style %T", spec.Edge)
	}
}

// addRaisedRim connects an inward-offset copy of the profile at the top
// height to the outer profile raised by the rim height.
func addRaisedRim(m *geom.Mesh, profile []geom.Vec2, spec design.Spec, topZ float64) {
	rimHeight := spec.TotalHeight - spec.BaseThickness
	if rimHeight > maxRimHeight {
		rimHeight = maxRimHeight
	}
	inner := geom.OffsetPolygon(profile, rimWidth)

	for i := 0; i < len(profile); i++ {
		j := (i + 1) % len(profile)
		m.AddQuad(
			inner[i].At3(topZ),
			inner[j].At3(topZ),
			profile[j].At3(topZ+rimHeight),
			profile[i].At3(topZ+rimHeight),
		)
	}
}
