package shape

import (
	"math"
	"testing"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/geom"
)

// signedArea is positive for CCW polygons.
func signedArea(poly []geom.Vec2) float64 {
	sum := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return sum / 2
}

func TestCircleProfile(t *testing.T) {
	pts := Circle(50, 16)
	if len(pts) != 16 {
		t.Fatalf("len = %d, want 16", len(pts))
	}
	for i, p := range pts {
		if r := p.Length(); math.Abs(r-50) > 1e-9 {
			t.Errorf("vertex %d at radius %v, want 50", i, r)
		}
	}
	if signedArea(pts) <= 0 {
		t.Error("circle should be CCW")
	}
	// First sample sits at angle zero.
	if math.Abs(pts[0].X-50) > 1e-9 || math.Abs(pts[0].Y) > 1e-9 {
		t.Errorf("first vertex = %v, want (50, 0)", pts[0])
	}
}

func TestSquareProfile(t *testing.T) {
	pts := Square(100)
	if len(pts) != 4 {
		t.Fatalf("len = %d, want 4", len(pts))
	}
	if signedArea(pts) <= 0 {
		t.Error("square should be CCW")
	}
	if math.Abs(signedArea(pts)-100*100) > 1e-9 {
		t.Errorf("area = %v, want 10000", signedArea(pts))
	}
}

func TestRegularPolygonFirstVertexAtBottom(t *testing.T) {
	pts := RegularPolygon(40, 6)
	if len(pts) != 6 {
		t.Fatalf("len = %d, want 6", len(pts))
	}
	// The angle offset puts the first vertex at -pi/2.
	if math.Abs(pts[0].X) > 1e-9 || math.Abs(pts[0].Y+40) > 1e-9 {
		t.Errorf("first vertex = %v, want (0, -40)", pts[0])
	}
	if signedArea(pts) <= 0 {
		t.Error("polygon should be CCW")
	}
}

func TestRoundedSquareProfile(t *testing.T) {
	pts := RoundedSquare(100, 10, 8)
	if want := 4 * (8 + 1); len(pts) != want {
		t.Fatalf("len = %d, want %d", len(pts), want)
	}
	if signedArea(pts) <= 0 {
		t.Error("rounded square should be CCW")
	}
	// Every vertex stays within the square's bounds.
	for i, p := range pts {
		if math.Abs(p.X) > 50+1e-9 || math.Abs(p.Y) > 50+1e-9 {
			t.Errorf("vertex %d = %v escapes the footprint", i, p)
		}
	}
}

func TestRoundedSquareCornerRadiusCapped(t *testing.T) {
	// Radius bigger than half the side must not invert the outline.
	pts := RoundedSquare(20, 50, 4)
	if signedArea(pts) <= 0 {
		t.Error("capped rounded square should remain CCW")
	}
}

func TestProfileDispatch(t *testing.T) {
	tests := []struct {
		shape design.Shape
		count int
	}{
		{design.Circle{}, 32 * 4},
		{design.Square{}, 4},
		{design.Hexagon{}, 6},
		{design.Octagon{}, 8},
		{design.RoundedSquare{}, 4 * (32 + 1)},
		{design.CustomPolygon{}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			spec := design.DefaultSpec()
			spec.Shape = tt.shape
			pts, err := Profile(spec)
			if err != nil {
				t.Fatalf("Profile: %v", err)
			}
			if len(pts) != tt.count {
				t.Errorf("len = %d, want %d", len(pts), tt.count)
			}
			if signedArea(pts) <= 0 {
				t.Error("profile should be CCW")
			}
		})
	}
}

func TestProfileScalesWithDiameter(t *testing.T) {
	spec := design.DefaultSpec()
	spec.Diameter = 120
	pts, err := Profile(spec)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	min, max := geom.PolygonBounds(pts)
	if math.Abs(max.X-min.X-120) > 1e-6 {
		t.Errorf("width = %v, want 120", max.X-min.X)
	}
}
