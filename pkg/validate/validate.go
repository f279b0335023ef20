// Package validate performs printability checks on a finished mesh.
// Problems split into errors, which should block export, and warnings,
// which are informational. Degenerate triangles print fine on every
// slicer we have tried, so they are never errors.
package validate

import (
	"fmt"
	"math"

	"github.com/skelhorn/coastergen/pkg/geom"
)

// degenerateArea is the area below which a triangle counts as degenerate.
const degenerateArea = 1e-10

// Result is the outcome of a mesh check.
type Result struct {
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	TriangleCount int      `json:"triangle_count"`
	BoundingBox   geom.Box `json:"bounding_box"`
}

// IsValid reports whether the mesh may be exported. Warnings alone do
// not fail validation.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Check inspects a mesh and returns its validation result. An empty mesh
// is reported with a single error and no further analysis.
func Check(m *geom.Mesh) *Result {
	r := &Result{TriangleCount: m.TriangleCount()}
	if m.IsEmpty() {
		r.Errors = append(r.Errors, "mesh has no triangles")
		return r
	}
	r.BoundingBox = m.BoundingBox()

	degenerate := 0
	badNormals := 0
	for _, t := range m.Triangles() {
		if t.Area() < degenerateArea {
			degenerate++
		}
		if !finite(t.Normal) {
			badNormals++
		}
	}
	if degenerate > 0 {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%d degenerate triangles (area < %g)", degenerate, degenerateArea))
	}
	if badNormals > 0 {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%d triangles with non-finite normals", badNormals))
	}
	return r
}

func finite(p geom.Point3) bool {
	for _, v := range [3]float32{p.X, p.Y, p.Z} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
