package builder

import (
	"math"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

// Resampler maps a fractional grid coordinate in [0,1]² to a height
// sample. It isolates the interpolation policy from mesh assembly so a
// bilinear resampler can be swapped in without touching the builder.
type Resampler interface {
	Sample(fx, fy float64) float64
}

// NearestResampler picks the nearest height-field sample by rounding the
// fractional coordinate to the closest grid index.
type NearestResampler struct {
	Field *design.HeightField
}

// Sample implements Resampler.
func (r NearestResampler) Sample(fx, fy float64) float64 {
	ix := int(math.Round(fx * float64(r.Field.Width-1)))
	iy := int(math.Round(fy * float64(r.Field.Height-1)))
	return r.Field.At(ix, iy)
}

// addReliefTop replaces the flat top cap with a height-field-driven
// surface. Grid vertices outside the footprint sit flush at the base
// thickness, forming an implicit skirt; a cell triangle is emitted only
// when its centroid tests inside the profile. The centroid test is a
// deliberate approximation that can leave jagged boundaries; it is not
// exact polygon clipping.
func addReliefTop(m *geom.Mesh, profile []geom.Vec2, field *design.HeightField, spec design.Spec) {
	res := field.Width
	if field.Height > res {
		res = field.Height
	}

	min, max := geom.PolygonBounds(profile)
	size := max.Sub(min)
	sampler := NearestResampler{Field: field}

	// (res+1)² grid vertices spanning the profile's bounding box.
	verts := make([]geom.Point3, (res+1)*(res+1))
	for j := 0; j <= res; j++ {
		for i := 0; i <= res; i++ {
			fx := float64(i) / float64(res)
			fy := float64(j) / float64(res)
			p := geom.V2(min.X+fx*size.X, min.Y+fy*size.Y)

			z := spec.BaseThickness
			if geom.PointInPolygon(p, profile) {
				s := sampler.Sample(fx, fy)
				if spec.InvertRelief {
					z += spec.ReliefDepth - s*spec.ReliefDepth
				} else {
					z += s * spec.ReliefDepth
				}
			}
			verts[j*(res+1)+i] = p.At3(z)
		}
	}

	for j := 0; j < res; j++ {
		for i := 0; i < res; i++ {
			v00 := verts[j*(res+1)+i]
			v10 := verts[j*(res+1)+i+1]
			v01 := verts[(j+1)*(res+1)+i]
			v11 := verts[(j+1)*(res+1)+i+1]

			emitIfInside(m, profile, v00, v10, v11)
			emitIfInside(m, profile, v00, v11, v01)
		}
	}
}

// emitIfInside appends the triangle when its XY centroid lies inside the
// profile.
func emitIfInside(m *geom.Mesh, profile []geom.Vec2, a, b, c geom.Point3) {
	cx := float64(a.X+b.X+c.X) / 3
	cy := float64(a.Y+b.Y+c.Y) / 3
	if geom.PointInPolygon(geom.V2(cx, cy), profile) {
		m.Add(geom.NewTriangle(a, b, c))
	}
}
