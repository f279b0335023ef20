package emboss

import (
	"math"
	"testing"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

func TestTextEmptyString(t *testing.T) {
	ts := design.DefaultText("")
	if tris := Text(ts, 100, 6); len(tris) != 0 {
		t.Errorf("empty string produced %d triangles, want 0", len(tris))
	}
}

func TestTextTriangleCountPerPixel(t *testing.T) {
	// Every active pixel becomes a closed box of 12 triangles.
	ts := design.DefaultText("I")
	tris := Text(ts, 100, 6)
	if want := 12 * SetBits('I'); len(tris) != want {
		t.Errorf("got %d triangles, want %d", len(tris), want)
	}
}

func TestTextSpaceAdvancesWithoutGeometry(t *testing.T) {
	with := Text(design.DefaultText("A A"), 100, 6)
	without := Text(design.DefaultText("AA"), 100, 6)
	if len(with) != len(without) {
		t.Errorf("space added geometry: %d vs %d triangles", len(with), len(without))
	}

	// The space still widens the block, pushing the glyphs apart.
	minX, maxX := blockExtent(with)
	minX2, maxX2 := blockExtent(without)
	if (maxX - minX) <= (maxX2 - minX2) {
		t.Error("space should widen the rendered block")
	}
}

func blockExtent(tris []geom.Triangle) (minX, maxX float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	for _, tri := range tris {
		for _, v := range [3]geom.Point3{tri.V1, tri.V2, tri.V3} {
			minX = math.Min(minX, float64(v.X))
			maxX = math.Max(maxX, float64(v.X))
		}
	}
	return minX, maxX
}

func centroidY(tris []geom.Triangle) float64 {
	sum, n := 0.0, 0
	for _, tri := range tris {
		for _, v := range [3]geom.Point3{tri.V1, tri.V2, tri.V3} {
			sum += float64(v.Y)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func TestTextUnknownCharFallsBack(t *testing.T) {
	tris := Text(design.DefaultText("@"), 100, 6)
	if want := 12 * glyphRows * glyphCols; len(tris) != want {
		t.Errorf("fallback block: got %d triangles, want %d", len(tris), want)
	}
}

func TestTextEmbossedAboveSurface(t *testing.T) {
	ts := design.DefaultText("A")
	tris := Text(ts, 100, 6)
	for _, tri := range tris {
		for _, v := range [3]float32{tri.V1.Z, tri.V2.Z, tri.V3.Z} {
			if float64(v) < 6-1e-6 || float64(v) > 6+ts.Depth+1e-6 {
				t.Fatalf("embossed z = %v outside [6, %v]", v, 6+ts.Depth)
			}
		}
	}
}

func TestTextDebossedBelowSurface(t *testing.T) {
	ts := design.DefaultText("A")
	ts.Embossed = false
	tris := Text(ts, 100, 6)
	for _, tri := range tris {
		for _, v := range [3]float32{tri.V1.Z, tri.V2.Z, tri.V3.Z} {
			if float64(v) < 6-ts.Depth-1e-6 || float64(v) > 6+1e-6 {
				t.Fatalf("debossed z = %v outside [%v, 6]", v, 6-ts.Depth)
			}
		}
	}
}

func TestTextPlacementOffsets(t *testing.T) {
	tests := []struct {
		placement design.Placement
		wantY     float64
	}{
		{design.PlaceCenter, 0},
		{design.PlaceTopCenter, 27.5},
		{design.PlaceBottomCenter, -27.5},
	}
	for _, tt := range tests {
		t.Run(tt.placement.String(), func(t *testing.T) {
			ts := design.DefaultText("HI")
			ts.Placement = tt.placement
			tris := Text(ts, 100, 6)
			cy := centroidY(tris)
			if math.Abs(cy-tt.wantY) > ts.Size {
				t.Errorf("centroid y = %v, want near %v", cy, tt.wantY)
			}
		})
	}
}

func TestTextRotationAboutOrigin(t *testing.T) {
	// A bottom-center block rotated 180° lands at the top: rotation is
	// about the global origin, not the block center.
	ts := design.DefaultText("X")
	ts.Placement = design.PlaceBottomCenter
	ts.RotationDeg = 180
	tris := Text(ts, 100, 6)
	cy := centroidY(tris)
	if cy < 20 {
		t.Errorf("rotated centroid y = %v, want above 20", cy)
	}
}

func TestBlockWidth(t *testing.T) {
	ts := design.DefaultText("ABC")
	gw := GlyphWidth(ts.Size)
	gap := gw * ts.LetterSpacing * 0.2
	want := 3*gw + 2*gap
	if got := BlockWidth(ts); math.Abs(got-want) > 1e-9 {
		t.Errorf("BlockWidth = %v, want %v", got, want)
	}
	if BlockWidth(design.DefaultText("")) != 0 {
		t.Error("empty block should have zero width")
	}
}

func TestSetBits(t *testing.T) {
	if SetBits('-') != 5 {
		t.Errorf("SetBits('-') = %d, want 5", SetBits('-'))
	}
	if SetBits('@') != glyphRows*glyphCols {
		t.Errorf("unknown char should use the solid block, got %d", SetBits('@'))
	}
}
