package design

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestValidateClampsRanges(t *testing.T) {
	tests := []struct {
		name string
		in   Spec
		want Spec
	}{
		{
			name: "all below minimum",
			in: Spec{
				Diameter:        10,
				BaseThickness:   0.5,
				TotalHeight:     1,
				BevelAngle:      5,
				CornerRadius:    0,
				PolygonSides:    1,
				ReliefDepth:     0.1,
				CurveResolution: 2,
			},
			want: Spec{
				Diameter:        MinDiameter,
				BaseThickness:   MinBaseThickness,
				TotalHeight:     MinTotalHeight,
				BevelAngle:      MinBevelAngle,
				CornerRadius:    MinCornerRadius,
				PolygonSides:    MinPolygonSides,
				ReliefDepth:     MinReliefDepth,
				CurveResolution: MinCurveResolution,
			},
		},
		{
			name: "all above maximum",
			in: Spec{
				Diameter:        500,
				BaseThickness:   20,
				TotalHeight:     100,
				BevelAngle:      89,
				CornerRadius:    200,
				PolygonSides:    50,
				ReliefDepth:     12,
				CurveResolution: 1000,
			},
			want: Spec{
				Diameter:        MaxDiameter,
				BaseThickness:   MaxBaseThickness,
				TotalHeight:     MaxTotalHeight,
				BevelAngle:      MaxBevelAngle,
				CornerRadius:    MaxDiameter / 4,
				PolygonSides:    MaxPolygonSides,
				ReliefDepth:     MaxReliefDepth,
				CurveResolution: MaxCurveResolution,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.in
			s.Validate()
			opts := cmpopts.IgnoreFields(Spec{}, "Shape", "Edge")
			if diff := cmp.Diff(tt.want, s, opts); diff != "" {
				t.Errorf("spec mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateTopClearance(t *testing.T) {
	s := DefaultSpec()
	s.BaseThickness = 8
	s.TotalHeight = 8
	s.Validate()
	if s.TotalHeight != 8.5 {
		t.Errorf("TotalHeight = %v, want BaseThickness + 0.5", s.TotalHeight)
	}
}

func TestValidateCornerRadiusTracksDiameter(t *testing.T) {
	s := DefaultSpec()
	s.Diameter = 80
	s.CornerRadius = 30
	s.Validate()
	if s.CornerRadius != 20 {
		t.Errorf("CornerRadius = %v, want diameter/4 = 20", s.CornerRadius)
	}
}

func TestValidateFillsNilVariants(t *testing.T) {
	s := Spec{Diameter: 100, BaseThickness: 4, TotalHeight: 6}
	s.Validate()
	if _, ok := s.Shape.(Circle); !ok {
		t.Errorf("nil shape should default to circle, got %v", s.Shape)
	}
	if _, ok := s.Edge.(EdgeFlat); !ok {
		t.Errorf("nil edge should default to flat, got %v", s.Edge)
	}
}

func TestValidateLeavesInRangeAlone(t *testing.T) {
	s := DefaultSpec()
	before := s
	s.Validate()
	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("default spec should survive validation unchanged (-want +got):\n%s", diff)
	}
}

func TestShapeFromName(t *testing.T) {
	for _, name := range []string{"circle", "square", "hexagon", "octagon", "rounded-square", "polygon"} {
		sh, err := ShapeFromName(name)
		if err != nil {
			t.Errorf("ShapeFromName(%q): %v", name, err)
			continue
		}
		if sh.String() != name {
			t.Errorf("round-trip %q -> %q", name, sh.String())
		}
	}
	if _, err := ShapeFromName("triangle"); err == nil {
		t.Error("expected error for unknown shape")
	}
}

func TestPatternKindFromName(t *testing.T) {
	for _, name := range []string{"honeycomb", "grid", "concentric", "drainage", "non-slip-dots"} {
		k, err := PatternKindFromName(name)
		if err != nil {
			t.Errorf("PatternKindFromName(%q): %v", name, err)
			continue
		}
		if k.String() != name {
			t.Errorf("round-trip %q -> %q", name, k.String())
		}
	}
	if _, err := PatternKindFromName("zigzag"); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestHeightFieldAtClamps(t *testing.T) {
	hf := NewHeightField(2, 2)
	hf.Set(0, 0, 0.25)
	hf.Set(1, 1, 0.75)

	tests := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0.25},
		{1, 1, 0.75},
		{-5, 0, 0.25},  // clamped to column 0
		{10, 10, 0.75}, // clamped to the far corner
	}
	for _, tt := range tests {
		if got := hf.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHeightFieldSetOutOfRangeIgnored(t *testing.T) {
	hf := NewHeightField(2, 2)
	hf.Set(5, 5, 1)
	for _, v := range hf.Values {
		if v != 0 {
			t.Fatal("out-of-range Set should not write")
		}
	}
}
