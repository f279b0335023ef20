package design

// Legal parameter ranges. Validate clamps into these rather than rejecting.
const (
	MinDiameter = 70
	MaxDiameter = 150

	MinBaseThickness = 2
	MaxBaseThickness = 8

	MinTotalHeight = 3
	MaxTotalHeight = 15

	MinCornerRadius = 1

	MinPolygonSides = 3
	MaxPolygonSides = 12

	MinReliefDepth = 0.5
	MaxReliefDepth = 5

	MinBevelAngle = 15
	MaxBevelAngle = 75

	MinCurveResolution = 8
	MaxCurveResolution = 64

	// MinTopClearance is the required headroom above the base slab.
	MinTopClearance = 0.5
)

// Spec is the parametric description of a coaster body. All dimensions are
// millimeters. Out-of-range values are corrected by Validate, never rejected.
type Spec struct {
	Shape           Shape     `json:"-"`
	Diameter        float64   `json:"diameter"`
	BaseThickness   float64   `json:"base_thickness"`
	TotalHeight     float64   `json:"total_height"`
	Edge            EdgeStyle `json:"-"`
	BevelAngle      float64   `json:"bevel_angle"`
	CornerRadius    float64   `json:"corner_radius"`
	PolygonSides    int       `json:"polygon_sides"`
	ReliefDepth     float64   `json:"relief_depth"`
	InvertRelief    bool      `json:"invert_relief"`
	CurveResolution int       `json:"curve_resolution"`
	NonSlip         bool      `json:"non_slip"`
}

// DefaultSpec returns a spec describing a plain 100mm circular coaster.
func DefaultSpec() Spec {
	return Spec{
		Shape:           Circle{},
		Diameter:        100,
		BaseThickness:   4,
		TotalHeight:     6,
		Edge:            EdgeFlat{},
		BevelAngle:      45,
		CornerRadius:    8,
		PolygonSides:    6,
		ReliefDepth:     2,
		CurveResolution: 32,
	}
}

// Validate clamps every field into its legal range. It corrects rather
// than rejects: a spec is always usable after validation.
func (s *Spec) Validate() {
	if s.Shape == nil {
		s.Shape = Circle{}
	}
	if s.Edge == nil {
		s.Edge = EdgeFlat{}
	}

	s.Diameter = clamp(s.Diameter, MinDiameter, MaxDiameter)
	s.BaseThickness = clamp(s.BaseThickness, MinBaseThickness, MaxBaseThickness)
	s.TotalHeight = clamp(s.TotalHeight, MinTotalHeight, MaxTotalHeight)
	if s.TotalHeight < s.BaseThickness+MinTopClearance {
		s.TotalHeight = s.BaseThickness + MinTopClearance
	}
	s.CornerRadius = clamp(s.CornerRadius, MinCornerRadius, s.Diameter/4)
	s.PolygonSides = clampInt(s.PolygonSides, MinPolygonSides, MaxPolygonSides)
	s.ReliefDepth = clamp(s.ReliefDepth, MinReliefDepth, MaxReliefDepth)
	s.BevelAngle = clamp(s.BevelAngle, MinBevelAngle, MaxBevelAngle)
	s.CurveResolution = clampInt(s.CurveResolution, MinCurveResolution, MaxCurveResolution)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
