// Command coastergen generates 3D-printable drink coasters. A single
// design is described with flags, or a batch of designs with a Lisp
// design script. Output format follows the file extension: .stl or .3mf.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/skelhorn/coastergen/pkg/builder"
	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/export/stl"
	"github.com/skelhorn/coastergen/pkg/export/threemf"
	"github.com/skelhorn/coastergen/pkg/geom"
	"github.com/skelhorn/coastergen/pkg/heightmap"
	"github.com/skelhorn/coastergen/pkg/script"
	"github.com/skelhorn/coastergen/pkg/validate"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("coastergen: ")

	var (
		shapeName  = flag.String("shape", "circle", "footprint shape: circle, square, hexagon, octagon, rounded-square, polygon")
		diameter   = flag.Float64("diameter", 100, "coaster diameter in mm")
		thickness  = flag.Float64("thickness", 4, "base thickness in mm")
		height     = flag.Float64("height", 6, "total height in mm")
		edgeName   = flag.String("edge", "flat", "edge style: flat, beveled, rounded, raised-rim")
		sides      = flag.Int("sides", 6, "side count for the polygon shape")
		cornerRad  = flag.Float64("corner-radius", 8, "corner radius for the rounded-square shape")
		curveRes   = flag.Int("curve-res", 32, "curve resolution for round shapes")
		nonSlip    = flag.Bool("non-slip", false, "add non-slip stubs to the underside")
		patterns   = flag.String("pattern", "", "comma-separated surface patterns: honeycomb, grid, concentric, drainage, non-slip-dots")
		text       = flag.String("text", "", "text to emboss on the top surface")
		textDeboss = flag.Bool("deboss", false, "recess the text instead of raising it")
		imagePath  = flag.String("image", "", "heightmap image for a relief top surface")
		reliefDep  = flag.Float64("relief-depth", 2, "relief displacement depth in mm")
		invert     = flag.Bool("invert", false, "invert the relief heightmap")
		scriptPath = flag.String("script", "", "evaluate a design script instead of flag-driven generation")
		infoPath   = flag.String("info", "", "print stats for an existing binary STL file and exit")
		outPath    = flag.String("o", "coaster.stl", "output path; format follows the extension (.stl, .3mf)")
		ascii      = flag.Bool("ascii", false, "write ASCII STL instead of binary")
		title      = flag.String("title", "Coaster", "model title for 3MF metadata")
		color      = flag.String("color", "", "3MF material color, e.g. #D2B48C")
	)
	flag.Parse()

	if *infoPath != "" {
		if err := printInfo(*infoPath); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *scriptPath != "" {
		if err := runScript(*scriptPath, *title, *color); err != nil {
			log.Fatal(err)
		}
		return
	}

	c := design.NewCoaster()
	c.Spec.Diameter = *diameter
	c.Spec.BaseThickness = *thickness
	c.Spec.TotalHeight = *height
	c.Spec.PolygonSides = *sides
	c.Spec.CornerRadius = *cornerRad
	c.Spec.CurveResolution = *curveRes
	c.Spec.NonSlip = *nonSlip
	c.Spec.ReliefDepth = *reliefDep
	c.Spec.InvertRelief = *invert

	var err error
	if c.Spec.Shape, err = design.ShapeFromName(*shapeName); err != nil {
		log.Fatal(err)
	}
	if c.Spec.Edge, err = design.EdgeStyleFromName(*edgeName); err != nil {
		log.Fatal(err)
	}

	for _, name := range splitList(*patterns) {
		kind, err := design.PatternKindFromName(name)
		if err != nil {
			log.Fatal(err)
		}
		c.Patterns = append(c.Patterns, design.DefaultPattern(kind))
	}
	if *text != "" {
		ts := design.DefaultText(*text)
		ts.Embossed = !*textDeboss
		c.Text = append(c.Text, ts)
	}
	if *imagePath != "" {
		if c.Relief, err = heightmap.Load(*imagePath); err != nil {
			log.Fatal(err)
		}
	}

	m, err := builder.Generate(c)
	if err != nil {
		log.Fatal(err)
	}
	if err := export(m, *outPath, *ascii, *title, *color); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d triangles)", *outPath, m.TriangleCount())
}

// printInfo reads a binary STL and reports its stats and validation state.
func printInfo(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := stl.ReadBinary(f)
	if err != nil {
		return err
	}
	result := validate.Check(m)
	box := result.BoundingBox
	size := box.Size()

	log.Printf("%s: %d triangles", path, result.TriangleCount)
	log.Printf("bounds: %.2f x %.2f x %.2f mm", size.X, size.Y, size.Z)
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("error: %s", e)
	}
	return nil
}

// runScript evaluates a design script and serves its export requests.
func runScript(path, title, color string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	eng := script.NewEngine()
	res, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("%s: %s", path, e.Error())
		}
		return fmt.Errorf("%d script errors", len(evalErrs))
	}

	for _, req := range res.Exports {
		m, err := builder.Generate(req.Design)
		if err != nil {
			return err
		}
		if err := export(m, req.Path, req.Format == "stl-ascii", title, color); err != nil {
			return err
		}
		log.Printf("wrote %s (%d triangles)", req.Path, m.TriangleCount())
	}
	return nil
}

// export validates the mesh and writes it in the format implied by the
// path's extension. Validation errors block the write; warnings only log.
func export(m *geom.Mesh, path string, asciiSTL bool, title, color string) error {
	result := validate.Check(m)
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	if !result.IsValid() {
		return fmt.Errorf("refusing to export: %s", strings.Join(result.Errors, "; "))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		if asciiSTL {
			return stl.WriteASCII(f, m, solidName(path))
		}
		return stl.WriteBinary(f, m)
	case ".3mf":
		return threemf.Write(f, m, threemf.Options{
			Title:       title,
			Designer:    "coastergen",
			Description: "Parametric drink coaster",
			Color:       color,
		})
	default:
		return fmt.Errorf("unsupported output extension %q", ext)
	}
}

func solidName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
