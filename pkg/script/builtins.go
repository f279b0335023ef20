package script

import (
	"fmt"
	"path/filepath"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/skelhorn/coastergen/pkg/design"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms design-script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: non-slip-dots -> non_slip_dots
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpCoaster wraps a design so it can flow between builtins. The wrapped
// pointer is shared: (pattern ...) and (emboss ...) mutate it in place.
type sexpCoaster struct {
	c *design.Coaster
}

func (s *sexpCoaster) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(coaster %s %.0fmm)", s.c.Spec.Shape, s.c.Spec.Diameter)
}
func (s *sexpCoaster) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toName extracts a keyword name or plain string from a Sexp. Handles
// both preprocessed keywords (__kw_grid) and plain strings ("grid"), and
// folds the preprocessor's underscore substitution back to hyphens so
// names like raised-rim resolve either way.
func toName(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	name := str.S
	name = strings.TrimPrefix(name, kwPrefix)
	return strings.ReplaceAll(name, "_", "-"), nil
}

// toCoaster extracts the design from a sexpCoaster.
func toCoaster(s zygo.Sexp) (*design.Coaster, error) {
	if c, ok := s.(*sexpCoaster); ok {
		return c.c, nil
	}
	return nil, fmt.Errorf("expected coaster, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the design-script builtins into a zygomys
// environment. The builtins append to the provided Result during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string literals.
func (e *Engine) registerBuiltins(env *zygo.Zlisp, res *Result) {

	// -----------------------------------------------------------------------
	// (coaster :shape :hexagon :diameter 90 :thickness 4 :height 6
	//          :edge :raised-rim :corner-radius 8 :sides 6 :curve-res 32
	//          :relief-depth 2 :invert-relief true :non-slip true)
	// -----------------------------------------------------------------------
	env.AddFunction("coaster", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		c := design.NewCoaster()

		if v, ok := pa.kw["shape"]; ok {
			n, err := toName(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("coaster: shape: %w", err)
			}
			sh, err := design.ShapeFromName(n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("coaster: %w", err)
			}
			c.Spec.Shape = sh
		}
		if v, ok := pa.kw["edge"]; ok {
			n, err := toName(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("coaster: edge: %w", err)
			}
			es, err := design.EdgeStyleFromName(n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("coaster: %w", err)
			}
			c.Spec.Edge = es
		}

		for kw, dst := range map[string]*float64{
			"diameter":      &c.Spec.Diameter,
			"thickness":     &c.Spec.BaseThickness,
			"height":        &c.Spec.TotalHeight,
			"bevel-angle":   &c.Spec.BevelAngle,
			"corner-radius": &c.Spec.CornerRadius,
			"relief-depth":  &c.Spec.ReliefDepth,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("coaster: %s: %w", kw, err)
				}
				*dst = f
			}
		}
		for kw, dst := range map[string]*int{
			"sides":     &c.Spec.PolygonSides,
			"curve-res": &c.Spec.CurveResolution,
		} {
			if v, ok := pa.kw[kw]; ok {
				n, err := toInt(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("coaster: %s: %w", kw, err)
				}
				*dst = n
			}
		}
		for kw, dst := range map[string]*bool{
			"invert-relief": &c.Spec.InvertRelief,
			"non-slip":      &c.Spec.NonSlip,
		} {
			if v, ok := pa.kw[kw]; ok {
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("coaster: %s: %w", kw, err)
				}
				*dst = b
			}
		}

		res.Designs = append(res.Designs, c)
		return &sexpCoaster{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (pattern c :kind :honeycomb :spacing 8 :depth 1 :width 2 :count 6)
	// -----------------------------------------------------------------------
	env.AddFunction("pattern", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("pattern requires a coaster as first argument")
		}
		c, err := toCoaster(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pattern: %w", err)
		}

		kind := design.PatternHoneycomb
		if v, ok := pa.kw["kind"]; ok {
			n, err := toName(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: kind: %w", err)
			}
			kind, err = design.PatternKindFromName(n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: %w", err)
			}
		}
		ps := design.DefaultPattern(kind)

		for kw, dst := range map[string]*float64{
			"spacing": &ps.Spacing,
			"depth":   &ps.Depth,
			"width":   &ps.Width,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("pattern: %s: %w", kw, err)
				}
				*dst = f
			}
		}
		if v, ok := pa.kw["count"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: count: %w", err)
			}
			ps.Count = n
		}

		c.Patterns = append(c.Patterns, ps)
		return pa.positional[0], nil
	})

	// -----------------------------------------------------------------------
	// (emboss c "CHEERS!" :size 8 :depth 0.8 :spacing 1.2
	//         :placement :bottom-center :debossed true :rotation 45)
	// -----------------------------------------------------------------------
	env.AddFunction("emboss", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("emboss requires a coaster and a text string")
		}
		c, err := toCoaster(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emboss: %w", err)
		}
		content, err := toString(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emboss: text: %w", err)
		}
		ts := design.DefaultText(content)

		for kw, dst := range map[string]*float64{
			"size":     &ts.Size,
			"depth":    &ts.Depth,
			"spacing":  &ts.LetterSpacing,
			"rotation": &ts.RotationDeg,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("emboss: %s: %w", kw, err)
				}
				*dst = f
			}
		}
		if v, ok := pa.kw["placement"]; ok {
			n, err := toName(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("emboss: placement: %w", err)
			}
			p, err := design.PlacementFromName(n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("emboss: %w", err)
			}
			ts.Placement = p
		}
		if v, ok := pa.kw["debossed"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("emboss: debossed: %w", err)
			}
			ts.Embossed = !b
		}

		c.Text = append(c.Text, ts)
		return pa.positional[0], nil
	})

	// -----------------------------------------------------------------------
	// (relief c "logo.png" :depth 2 :invert true)
	// -----------------------------------------------------------------------
	env.AddFunction("relief", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("relief requires a coaster and an image path")
		}
		c, err := toCoaster(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("relief: %w", err)
		}
		path, err := toString(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("relief: path: %w", err)
		}

		hf, err := e.LoadHeightField(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("relief: %w", err)
		}
		c.Relief = hf

		if v, ok := pa.kw["depth"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("relief: depth: %w", err)
			}
			c.Spec.ReliefDepth = f
		}
		if v, ok := pa.kw["invert"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("relief: invert: %w", err)
			}
			c.Spec.InvertRelief = b
		}
		return pa.positional[0], nil
	})

	// -----------------------------------------------------------------------
	// (export c "out.3mf") / (export c "out.stl" :ascii true)
	// -----------------------------------------------------------------------
	env.AddFunction("export", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("export requires a coaster and an output path")
		}
		c, err := toCoaster(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export: %w", err)
		}
		path, err := toString(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export: path: %w", err)
		}

		var format string
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".stl":
			format = "stl"
		case ".3mf":
			format = "3mf"
		default:
			return zygo.SexpNull, fmt.Errorf("export: unsupported extension %q", ext)
		}
		if v, ok := pa.kw["ascii"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("export: ascii: %w", err)
			}
			if b && format == "stl" {
				format = "stl-ascii"
			}
		}

		res.Exports = append(res.Exports, ExportRequest{Design: c, Path: path, Format: format})
		return pa.positional[0], nil
	})
}
