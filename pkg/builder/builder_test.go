package builder

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

func TestGenerateDefaultCoaster(t *testing.T) {
	c := design.NewCoaster()
	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}

	box := m.BoundingBox()
	if math.Abs(float64(box.Min.Z)) > 1e-6 {
		t.Errorf("min z = %v, want 0", box.Min.Z)
	}
	if math.Abs(float64(box.Max.Z)-c.Spec.TotalHeight) > 1e-6 {
		t.Errorf("max z = %v, want %v", box.Max.Z, c.Spec.TotalHeight)
	}
	width := float64(box.Max.X - box.Min.X)
	if math.Abs(width-c.Spec.Diameter) > 1e-3 {
		t.Errorf("width = %v, want %v", width, c.Spec.Diameter)
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	c := design.NewCoaster()
	c.Spec.Diameter = 5 // far below the minimum
	if _, err := Generate(c); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if c.Spec.Diameter != 5 {
		t.Errorf("caller's spec was mutated: diameter = %v", c.Spec.Diameter)
	}
}

func TestGenerateTriangleBudget(t *testing.T) {
	// A plain square coaster has a fixed triangle count: 4 base fan
	// triangles, 4 top fan triangles, and 2 per wall edge.
	c := design.NewCoaster()
	c.Spec.Shape = design.Square{}
	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := 4 + 4 + 4*2; m.TriangleCount() != want {
		t.Errorf("count = %d, want %d", m.TriangleCount(), want)
	}
}

func TestGenerateRaisedRim(t *testing.T) {
	c := design.NewCoaster()
	c.Spec.Edge = design.EdgeRaisedRim{}
	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	box := m.BoundingBox()
	want := c.Spec.TotalHeight + maxRimHeight
	if math.Abs(float64(box.Max.Z)-want) > 1e-6 {
		t.Errorf("max z = %v, want %v (top + rim)", box.Max.Z, want)
	}
}

func TestGenerateRimHeightLimitedByClearance(t *testing.T) {
	c := design.NewCoaster()
	c.Spec.Edge = design.EdgeRaisedRim{}
	c.Spec.BaseThickness = 4
	c.Spec.TotalHeight = 5 // only 1mm of headroom
	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	box := m.BoundingBox()
	if math.Abs(float64(box.Max.Z)-6) > 1e-6 {
		t.Errorf("max z = %v, want 6 (5 + 1mm rim)", box.Max.Z)
	}
}

func TestGenerateWithRelief(t *testing.T) {
	hf := design.NewHeightField(4, 4)
	for i := range hf.Values {
		hf.Values[i] = 1
	}
	c := design.NewCoaster()
	c.Relief = hf

	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	box := m.BoundingBox()
	// Walls stop at the base thickness; the relief surface rises above it
	// by at most the relief depth.
	want := c.Spec.BaseThickness + c.Spec.ReliefDepth
	if math.Abs(float64(box.Max.Z)-want) > 1e-6 {
		t.Errorf("max z = %v, want %v", box.Max.Z, want)
	}
}

func TestGenerateInvertedRelief(t *testing.T) {
	// An all-zero field inverted reads as full height everywhere.
	hf := design.NewHeightField(4, 4)
	c := design.NewCoaster()
	c.Relief = hf
	c.Spec.InvertRelief = true

	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	box := m.BoundingBox()
	want := c.Spec.BaseThickness + c.Spec.ReliefDepth
	if math.Abs(float64(box.Max.Z)-want) > 1e-6 {
		t.Errorf("max z = %v, want %v", box.Max.Z, want)
	}
}

func TestGenerateNonSlipStubs(t *testing.T) {
	c := design.NewCoaster()
	c.Spec.NonSlip = true
	m, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	box := m.BoundingBox()
	if math.Abs(float64(box.Min.Z)+0.5) > 1e-6 {
		t.Errorf("min z = %v, want -0.5 (stub height)", box.Min.Z)
	}
}

func TestGenerateWithPatternsAndText(t *testing.T) {
	c := design.NewCoaster()
	c.Patterns = append(c.Patterns, design.DefaultPattern(design.PatternGrid))
	c.Text = append(c.Text, design.DefaultText("OK"))

	plain, err := Generate(design.NewCoaster())
	if err != nil {
		t.Fatalf("Generate plain: %v", err)
	}
	decorated, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate decorated: %v", err)
	}
	if decorated.TriangleCount() <= plain.TriangleCount() {
		t.Error("patterns and text should add triangles")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := design.NewCoaster()
	c.Spec.Edge = design.EdgeRaisedRim{}
	c.Patterns = append(c.Patterns, design.DefaultPattern(design.PatternConcentric))

	a, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.TriangleCount() != b.TriangleCount() {
		t.Fatalf("counts differ: %d vs %d", a.TriangleCount(), b.TriangleCount())
	}
	for i := range a.Triangles() {
		ta, tb := a.Triangles()[i], b.Triangles()[i]
		if ta != tb {
			t.Fatalf("triangle %d differs between runs", i)
		}
	}
}

func TestNearestResampler(t *testing.T) {
	hf := design.NewHeightField(3, 3)
	hf.Set(0, 0, 0.1)
	hf.Set(1, 1, 0.5)
	hf.Set(2, 2, 0.9)
	r := NearestResampler{Field: hf}

	tests := []struct {
		fx, fy float64
		want   float64
	}{
		{0, 0, 0.1},
		{0.5, 0.5, 0.5},
		{1, 1, 0.9},
		{0.4, 0.4, 0.5}, // rounds to the middle sample
	}
	for _, tt := range tests {
		if got := r.Sample(tt.fx, tt.fy); got != tt.want {
			t.Errorf("Sample(%v, %v) = %v, want %v", tt.fx, tt.fy, got, tt.want)
		}
	}
}

func TestGenerateAll(t *testing.T) {
	designs := make([]*design.Coaster, 8)
	for i := range designs {
		c := design.NewCoaster()
		c.Spec.Diameter = 70 + float64(i*10)
		designs[i] = c
	}

	var calls atomic.Int64
	meshes, err := GenerateAll(designs, func(done int) {
		calls.Add(1)
	})
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if len(meshes) != len(designs) {
		t.Fatalf("got %d meshes, want %d", len(meshes), len(designs))
	}
	if calls.Load() != int64(len(designs)) {
		t.Errorf("progress called %d times, want %d", calls.Load(), len(designs))
	}

	// Results stay in input order: diameters were ascending but clamped
	// to the legal maximum.
	for i, m := range meshes {
		box := m.BoundingBox()
		width := float64(box.Max.X - box.Min.X)
		want := math.Min(70+float64(i*10), design.MaxDiameter)
		if math.Abs(width-want) > 1e-3 {
			t.Errorf("mesh %d width = %v, want %v", i, width, want)
		}
	}
}

func TestGenerateAllEmpty(t *testing.T) {
	meshes, err := GenerateAll(nil, nil)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("got %d meshes, want 0", len(meshes))
	}
}

func TestAddWallsWindOutward(t *testing.T) {
	m := geom.NewMesh()
	profile := []geom.Vec2{
		geom.V2(1, -1), geom.V2(1, 1), geom.V2(-1, 1), geom.V2(-1, -1),
	}
	addWalls(m, profile, 2)

	// Every wall normal must point away from the axis.
	for i, tri := range m.Triangles() {
		cx := (tri.V1.X + tri.V2.X + tri.V3.X) / 3
		cy := (tri.V1.Y + tri.V2.Y + tri.V3.Y) / 3
		dot := float64(tri.Normal.X)*float64(cx) + float64(tri.Normal.Y)*float64(cy)
		if dot <= 0 {
			t.Errorf("wall triangle %d faces inward (dot = %v)", i, dot)
		}
	}
}

func TestCapWindings(t *testing.T) {
	m := geom.NewMesh()
	profile := []geom.Vec2{
		geom.V2(1, -1), geom.V2(1, 1), geom.V2(-1, 1), geom.V2(-1, -1),
	}
	addBaseCap(m, profile)
	for i, tri := range m.Triangles() {
		if tri.Normal.Z >= 0 {
			t.Errorf("base triangle %d normal z = %v, want negative", i, tri.Normal.Z)
		}
	}

	top := geom.NewMesh()
	addTopCap(top, profile, 5)
	for i, tri := range top.Triangles() {
		if tri.Normal.Z <= 0 {
			t.Errorf("top triangle %d normal z = %v, want positive", i, tri.Normal.Z)
		}
	}
}
