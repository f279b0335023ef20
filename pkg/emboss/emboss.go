// Package emboss renders text blocks as extruded pixel boxes from a
// fixed 5x7 bitmap font. Each active glyph pixel becomes a closed
// rectangular box of 12 triangles sitting on (embossed) or sunk into
// (debossed) the top surface.
package emboss

import (
	"math"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

// GlyphWidth returns the rendered width of one glyph cell for a given
// glyph height. The 5:7 pixel aspect of the font is preserved.
func GlyphWidth(size float64) float64 {
	return size * glyphCols / glyphRows
}

// BlockWidth returns the total rendered width of a text block:
// n glyph cells plus n-1 inter-glyph gaps.
func BlockWidth(ts design.TextSpec) float64 {
	n := len([]rune(ts.Content))
	if n == 0 {
		return 0
	}
	gw := GlyphWidth(ts.Size)
	return float64(n)*gw + float64(n-1)*letterGap(ts)
}

// letterGap is the horizontal gap between adjacent glyph cells.
func letterGap(ts design.TextSpec) float64 {
	return GlyphWidth(ts.Size) * ts.LetterSpacing * 0.2
}

// Text renders one text block into triangles. surfaceZ is the top
// surface the block sits on; diameter positions the top-center and
// bottom-center placements. An empty string renders nothing.
//
// Rotation is applied about the global origin, not the block center, so
// a rotated off-center block orbits the coaster axis.
func Text(ts design.TextSpec, diameter, surfaceZ float64) []geom.Triangle {
	runes := []rune(ts.Content)
	if len(runes) == 0 {
		return nil
	}

	gw := GlyphWidth(ts.Size)
	gap := letterGap(ts)
	pw := gw / glyphCols
	ph := ts.Size / glyphRows

	anchorY := 0.0
	switch ts.Placement {
	case design.PlaceTopCenter:
		anchorY = 0.55 * diameter / 2
	case design.PlaceBottomCenter:
		anchorY = -0.55 * diameter / 2
	}

	z0, z1 := surfaceZ, surfaceZ+ts.Depth
	if !ts.Embossed {
		z0, z1 = surfaceZ-ts.Depth, surfaceZ
	}

	rad := ts.RotationDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	rot := func(x, y float64) geom.Vec2 {
		return geom.V2(x*cos-y*sin, x*sin+y*cos)
	}

	m := geom.NewMesh()
	startX := -BlockWidth(ts) / 2
	topY := anchorY + ts.Size/2

	for k, c := range runes {
		if c == ' ' {
			continue
		}
		glyph := glyphFor(c)
		cellX := startX + float64(k)*(gw+gap)

		for row := 0; row < glyphRows; row++ {
			for col := 0; col < glyphCols; col++ {
				if glyph[row]&(1<<(glyphCols-1-col)) == 0 {
					continue
				}
				x0 := cellX + float64(col)*pw
				y1 := topY - float64(row)*ph
				addPixelBox(m, rot, x0, y1-ph, x0+pw, y1, z0, z1)
			}
		}
	}
	return m.Triangles()
}

// addPixelBox emits the 12 triangles of one pixel's closed box: top,
// bottom, and the four side walls, all wound outward. rot maps local
// XY corners through the block rotation.
func addPixelBox(m *geom.Mesh, rot func(x, y float64) geom.Vec2, x0, y0, x1, y1, z0, z1 float64) {
	c00 := rot(x0, y0)
	c10 := rot(x1, y0)
	c11 := rot(x1, y1)
	c01 := rot(x0, y1)

	m.AddQuad(c00.At3(z1), c10.At3(z1), c11.At3(z1), c01.At3(z1))
	m.AddQuad(c00.At3(z0), c01.At3(z0), c11.At3(z0), c10.At3(z0))

	m.AddQuad(c00.At3(z0), c10.At3(z0), c10.At3(z1), c00.At3(z1))
	m.AddQuad(c10.At3(z0), c11.At3(z0), c11.At3(z1), c10.At3(z1))
	m.AddQuad(c11.At3(z0), c01.At3(z0), c01.At3(z1), c11.At3(z1))
	m.AddQuad(c01.At3(z0), c00.At3(z0), c00.At3(z1), c01.At3(z1))
}
