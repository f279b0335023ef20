// Package design defines the parametric description of a coaster: the
// clamped CoasterSpec, the shape and edge-style variants, decorative
// pattern and text specifications, and the optional relief height field.
package design

import "fmt"

// ---------------------------------------------------------------------------
// Shape variants
// ---------------------------------------------------------------------------

// Shape is the closed set of footprint shapes. The marker method restricts
// implementations to this package so profile generation can type-switch
// exhaustively.
type Shape interface {
	shape()
	String() string
}

// Circle is a circular footprint sampled at CurveResolution*4 segments.
type Circle struct{}

// Square is an axis-aligned square footprint.
type Square struct{}

// Hexagon is a regular six-sided footprint.
type Hexagon struct{}

// Octagon is a regular eight-sided footprint.
type Octagon struct{}

// RoundedSquare is a square with quarter-circle corner arcs of
// CornerRadius, sampled at CurveResolution points per corner.
type RoundedSquare struct{}

// CustomPolygon is a regular polygon with PolygonSides sides.
type CustomPolygon struct{}

func (Circle) shape()        {}
func (Square) shape()        {}
func (Hexagon) shape()       {}
func (Octagon) shape()       {}
func (RoundedSquare) shape() {}
func (CustomPolygon) shape() {}

func (Circle) String() string        { return "circle" }
func (Square) String() string        { return "square" }
func (Hexagon) String() string       { return "hexagon" }
func (Octagon) String() string       { return "octagon" }
func (RoundedSquare) String() string { return "rounded-square" }
func (CustomPolygon) String() string { return "polygon" }

// ShapeFromName maps a shape name to its variant.
func ShapeFromName(name string) (Shape, error) {
	switch name {
	case "circle":
		return Circle{}, nil
	case "square":
		return Square{}, nil
	case "hexagon":
		return Hexagon{}, nil
	case "octagon":
		return Octagon{}, nil
	case "rounded-square":
		return RoundedSquare{}, nil
	case "polygon":
		return CustomPolygon{}, nil
	}
	return nil, fmt.Errorf("unknown shape %q", name)
}

// ---------------------------------------------------------------------------
// Edge-style variants
// ---------------------------------------------------------------------------

// EdgeStyle is the closed set of edge treatments applied to the top rim.
type EdgeStyle interface {
	edgeStyle()
	String() string
}

// EdgeFlat leaves the top edge untouched.
type EdgeFlat struct{}

// EdgeBeveled is a placeholder treatment that currently produces no
// geometry. Kept distinct from EdgeFlat so consumers must handle it.
type EdgeBeveled struct{}

// EdgeRounded is a placeholder treatment that currently produces no
// geometry, like EdgeBeveled.
type EdgeRounded struct{}

// EdgeRaisedRim adds an inward-offset ring of quads raised above the top
// surface.
type EdgeRaisedRim struct{}

func (EdgeFlat) edgeStyle()      {}
func (EdgeBeveled) edgeStyle()   {}
func (EdgeRounded) edgeStyle()   {}
func (EdgeRaisedRim) edgeStyle() {}

func (EdgeFlat) String() string      { return "flat" }
func (EdgeBeveled) String() string   { return "beveled" }
func (EdgeRounded) String() string   { return "rounded" }
func (EdgeRaisedRim) String() string { return "raised-rim" }

// EdgeStyleFromName maps an edge-style name to its variant.
func EdgeStyleFromName(name string) (EdgeStyle, error) {
	switch name {
	case "flat":
		return EdgeFlat{}, nil
	case "beveled":
		return EdgeBeveled{}, nil
	case "rounded":
		return EdgeRounded{}, nil
	case "raised-rim":
		return EdgeRaisedRim{}, nil
	}
	return nil, fmt.Errorf("unknown edge style %q", name)
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

// PatternKind enumerates the carved surface patterns.
type PatternKind int

const (
	PatternHoneycomb PatternKind = iota
	PatternGrid
	PatternConcentric
	PatternDrainage
	PatternNonSlipDots
)

func (k PatternKind) String() string {
	switch k {
	case PatternHoneycomb:
		return "honeycomb"
	case PatternGrid:
		return "grid"
	case PatternConcentric:
		return "concentric"
	case PatternDrainage:
		return "drainage"
	case PatternNonSlipDots:
		return "non-slip-dots"
	default:
		return "unknown"
	}
}

// PatternKindFromName maps a pattern name to its kind.
func PatternKindFromName(name string) (PatternKind, error) {
	switch name {
	case "honeycomb":
		return PatternHoneycomb, nil
	case "grid":
		return PatternGrid, nil
	case "concentric":
		return PatternConcentric, nil
	case "drainage":
		return PatternDrainage, nil
	case "non-slip-dots":
		return PatternNonSlipDots, nil
	}
	return 0, fmt.Errorf("unknown pattern %q", name)
}

// PatternSpec configures one carved pattern layer.
type PatternSpec struct {
	Kind    PatternKind `json:"kind"`
	Spacing float64     `json:"spacing"` // center-to-center distance
	Depth   float64     `json:"depth"`   // recess depth below the surface
	Width   float64     `json:"width"`   // groove width
	Count   int         `json:"count"`   // groove count (drainage only)
}

// DefaultPattern returns a PatternSpec with sensible defaults for a kind.
func DefaultPattern(kind PatternKind) PatternSpec {
	return PatternSpec{
		Kind:    kind,
		Spacing: 8,
		Depth:   1,
		Width:   2,
		Count:   6,
	}
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

// Placement positions a text block relative to the coaster center.
type Placement int

const (
	PlaceCenter Placement = iota
	PlaceTopCenter
	PlaceBottomCenter
)

func (p Placement) String() string {
	switch p {
	case PlaceCenter:
		return "center"
	case PlaceTopCenter:
		return "top-center"
	case PlaceBottomCenter:
		return "bottom-center"
	default:
		return "unknown"
	}
}

// PlacementFromName maps a placement name to its value.
func PlacementFromName(name string) (Placement, error) {
	switch name {
	case "center":
		return PlaceCenter, nil
	case "top-center":
		return PlaceTopCenter, nil
	case "bottom-center":
		return PlaceBottomCenter, nil
	}
	return 0, fmt.Errorf("unknown placement %q", name)
}

// TextSpec configures one embossed or debossed text block.
type TextSpec struct {
	Content       string    `json:"content"`
	Size          float64   `json:"size"`           // glyph height
	Depth         float64   `json:"depth"`          // extrusion depth
	LetterSpacing float64   `json:"letter_spacing"` // multiplier, 1.0 = default
	Placement     Placement `json:"placement"`
	Embossed      bool      `json:"embossed"` // raised when true, recessed otherwise
	RotationDeg   float64   `json:"rotation_deg"`
}

// DefaultText returns a TextSpec with sensible defaults for the given content.
func DefaultText(content string) TextSpec {
	return TextSpec{
		Content:       content,
		Size:          8,
		Depth:         0.8,
		LetterSpacing: 1,
		Placement:     PlaceCenter,
		Embossed:      true,
	}
}

// ---------------------------------------------------------------------------
// Coaster
// ---------------------------------------------------------------------------

// Coaster is a complete design: the clamped parametric spec plus any
// relief image, carved patterns, and text blocks. One Coaster drives one
// generation call.
type Coaster struct {
	Spec     Spec          `json:"spec"`
	Relief   *HeightField  `json:"relief,omitempty"`
	Patterns []PatternSpec `json:"patterns,omitempty"`
	Text     []TextSpec    `json:"text,omitempty"`
}

// NewCoaster returns a Coaster with the default spec and no decoration.
func NewCoaster() *Coaster {
	return &Coaster{Spec: DefaultSpec()}
}
