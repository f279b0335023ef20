// Package stl encodes meshes as binary or ASCII STL and decodes the
// binary form for round-trips. Binary output is little-endian with a
// zero attribute word, which is what every slicer expects.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/skelhorn/coastergen/pkg/geom"
)

// headerSize and recordSize fix the binary layout: an 80-byte header, a
// uint32 triangle count, then 50 bytes per triangle.
const (
	headerSize = 80
	recordSize = 50
)

// defaultHeader fills the 80-byte binary header. Kept ASCII and free of
// the word "solid" so readers never mistake the file for ASCII STL.
const defaultHeader = "coastergen binary stl"

// WriteBinary encodes the mesh in binary STL: the 80-byte header, a
// little-endian triangle count, and one 50-byte record per triangle.
func WriteBinary(w io.Writer, m *geom.Mesh) error {
	var header [headerSize]byte
	copy(header[:], defaultHeader)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}

	tris := m.Triangles()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("stl: write count: %w", err)
	}

	bw := bufio.NewWriter(w)
	var rec [recordSize]byte
	for _, t := range tris {
		putPoint(rec[0:], t.Normal)
		putPoint(rec[12:], t.V1)
		putPoint(rec[24:], t.V2)
		putPoint(rec[36:], t.V3)
		rec[48], rec[49] = 0, 0
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("stl: write triangle: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: flush: %w", err)
	}
	return nil
}

func putPoint(b []byte, p geom.Point3) {
	le := binary.LittleEndian
	le.PutUint32(b[0:], math.Float32bits(p.X))
	le.PutUint32(b[4:], math.Float32bits(p.Y))
	le.PutUint32(b[8:], math.Float32bits(p.Z))
}

// WriteASCII encodes the mesh in ASCII STL under the given solid name.
// Coordinates use 6-digit scientific notation.
func WriteASCII(w io.Writer, m *geom.Mesh, name string) error {
	return writeASCII(w, m, name, false)
}

// WriteASCIIStats is WriteASCII plus comment lines carrying the triangle
// count and bounding box before the first facet. Slicers skip them.
func WriteASCIIStats(w io.Writer, m *geom.Mesh, name string) error {
	return writeASCII(w, m, name, true)
}

func writeASCII(w io.Writer, m *geom.Mesh, name string, stats bool) error {
	bw := bufio.NewWriter(w)
	tris := m.Triangles()

	fmt.Fprintf(bw, "solid %s\n", name)
	if stats {
		box := m.BoundingBox()
		size := box.Size()
		fmt.Fprintf(bw, "  ; %d triangles\n", len(tris))
		fmt.Fprintf(bw, "  ; bounds min %e %e %e max %e %e %e\n",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
		fmt.Fprintf(bw, "  ; size %e %e %e\n", size.X, size.Y, size.Z)
	}
	for _, t := range tris {
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3]geom.Point3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: flush: %w", err)
	}
	return nil
}

// ReadBinary decodes a binary STL stream. Stored normals are discarded
// and rederived from the vertex winding, so a round-trip normalizes any
// inconsistent input normals.
func ReadBinary(r io.Reader) (*geom.Mesh, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("stl: read header: %w", err)
	}
	if strings.HasPrefix(string(header[:5]), "solid") {
		return nil, fmt.Errorf("stl: ascii input, binary expected")
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl: read count: %w", err)
	}

	m := geom.NewMesh()
	br := bufio.NewReader(r)
	var rec [recordSize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, fmt.Errorf("stl: read triangle %d: %w", i, err)
		}
		v1 := getPoint(rec[12:])
		v2 := getPoint(rec[24:])
		v3 := getPoint(rec[36:])
		m.Add(geom.NewTriangle(v1, v2, v3))
	}
	return m, nil
}

func getPoint(b []byte) geom.Point3 {
	le := binary.LittleEndian
	return geom.P3(
		math.Float32frombits(le.Uint32(b[0:])),
		math.Float32frombits(le.Uint32(b[4:])),
		math.Float32frombits(le.Uint32(b[8:])),
	)
}
