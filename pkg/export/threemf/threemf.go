// Package threemf packages a mesh as a minimal 3MF archive: the OPC
// content types, the package relationships, and a single model part.
// Triangles are written against a deduplicated vertex table.
package threemf

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/skelhorn/coastergen/pkg/geom"
)

const (
	coreNamespace = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"
	modelRelType  = "http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"

	contentTypesPart = "[Content_Types].xml"
	relsPart         = "_rels/.rels"
	modelPart        = "3D/3dmodel.model"
)

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>` +
	`</Types>`

const relsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rel0" Type="` + modelRelType + `" Target="/` + modelPart + `"/>` +
	`</Relationships>`

// Options carries the model metadata and the optional material color.
// An empty Color omits the basematerials resource entirely.
type Options struct {
	Title       string
	Designer    string
	Description string
	Color       string // sRGB hex like "#D2B48C"
}

// Write encodes the mesh as a 3MF archive with exactly three parts.
func Write(w io.Writer, m *geom.Mesh, opts Options) error {
	zw := zip.NewWriter(w)

	if err := writePart(zw, contentTypesPart, []byte(contentTypesXML)); err != nil {
		return err
	}
	if err := writePart(zw, relsPart, []byte(relsXML)); err != nil {
		return err
	}

	body, err := modelXML(m, opts)
	if err != nil {
		return err
	}
	if err := writePart(zw, modelPart, body); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("threemf: close archive: %w", err)
	}
	return nil
}

func writePart(zw *zip.Writer, name string, body []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("threemf: create %s: %w", name, err)
	}
	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("threemf: write %s: %w", name, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Model part
// ---------------------------------------------------------------------------

type xmlModel struct {
	XMLName   xml.Name      `xml:"model"`
	Unit      string        `xml:"unit,attr"`
	Namespace string        `xml:"xmlns,attr"`
	Metadata  []xmlMetadata `xml:"metadata"`
	Resources xmlResources  `xml:"resources"`
	Build     xmlBuild      `xml:"build"`
}

type xmlMetadata struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlResources struct {
	Materials *xmlBaseMaterials `xml:"basematerials,omitempty"`
	Objects   []xmlObject       `xml:"object"`
}

type xmlBaseMaterials struct {
	ID    int       `xml:"id,attr"`
	Bases []xmlBase `xml:"base"`
}

type xmlBase struct {
	Name  string `xml:"name,attr"`
	Color string `xml:"displaycolor,attr"`
}

type xmlObject struct {
	ID     int     `xml:"id,attr"`
	Type   string  `xml:"type,attr"`
	PID    int     `xml:"pid,attr,omitempty"`
	PIndex int     `xml:"pindex,attr,omitempty"`
	Mesh   xmlMesh `xml:"mesh"`
}

type xmlMesh struct {
	Vertices  []xmlVertex   `xml:"vertices>vertex"`
	Triangles []xmlTriangle `xml:"triangles>triangle"`
}

type xmlVertex struct {
	X float32 `xml:"x,attr"`
	Y float32 `xml:"y,attr"`
	Z float32 `xml:"z,attr"`
}

type xmlTriangle struct {
	V1 int `xml:"v1,attr"`
	V2 int `xml:"v2,attr"`
	V3 int `xml:"v3,attr"`
}

func modelXML(m *geom.Mesh, opts Options) ([]byte, error) {
	verts, tris := indexMesh(m)

	model := xmlModel{
		Unit:      "millimeter",
		Namespace: coreNamespace,
		Metadata: []xmlMetadata{
			{Name: "Title", Value: opts.Title},
			{Name: "Designer", Value: opts.Designer},
			{Name: "Description", Value: opts.Description},
			{Name: "CreationDate", Value: time.Now().UTC().Format("2006-01-02")},
			{Name: "Application", Value: "coastergen"},
		},
	}

	obj := xmlObject{ID: 1, Type: "model", Mesh: xmlMesh{Vertices: verts, Triangles: tris}}
	if opts.Color != "" {
		model.Resources.Materials = &xmlBaseMaterials{
			ID:    2,
			Bases: []xmlBase{{Name: "Coaster", Color: opts.Color}},
		}
		obj.PID = 2
	}
	model.Resources.Objects = []xmlObject{obj}
	model.Build = xmlBuild{Items: []xmlItem{{ObjectID: 1}}}

	body, err := xml.MarshalIndent(model, "", " ")
	if err != nil {
		return nil, fmt.Errorf("threemf: marshal model: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

type xmlBuild struct {
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	ObjectID int `xml:"objectid,attr"`
}

// ---------------------------------------------------------------------------
// Vertex dedup
// ---------------------------------------------------------------------------

// vertexKey quantizes coordinates to 1/1000mm for hashing. Lookups still
// confirm with the exact epsilon test, so the quantization only buckets.
type vertexKey struct {
	x, y, z int64
}

func keyOf(p geom.Point3) vertexKey {
	return vertexKey{
		x: int64(math.Round(float64(p.X) * 1000)),
		y: int64(math.Round(float64(p.Y) * 1000)),
		z: int64(math.Round(float64(p.Z) * 1000)),
	}
}

// indexMesh flattens the mesh into a deduplicated vertex table and index
// triples. The first occurrence of a position wins; later vertices within
// epsilon reuse its index. A bucket may hold several distinct positions
// that quantize alike, so lookups scan the bucket's index list.
func indexMesh(m *geom.Mesh) ([]xmlVertex, []xmlTriangle) {
	seen := make(map[vertexKey][]int)
	var verts []xmlVertex
	var points []geom.Point3

	indexOf := func(p geom.Point3) int {
		k := keyOf(p)
		for _, i := range seen[k] {
			if points[i].Eq(p) {
				return i
			}
		}
		i := len(verts)
		verts = append(verts, xmlVertex{X: p.X, Y: p.Y, Z: p.Z})
		points = append(points, p)
		seen[k] = append(seen[k], i)
		return i
	}

	tris := make([]xmlTriangle, 0, m.TriangleCount())
	for _, t := range m.Triangles() {
		tris = append(tris, xmlTriangle{
			V1: indexOf(t.V1),
			V2: indexOf(t.V2),
			V3: indexOf(t.V3),
		})
	}
	return verts, tris
}
