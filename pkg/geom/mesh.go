package geom

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point3
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Point3 {
	return b.Max.Sub(b.Min)
}

// Mesh is an ordered, append-only sequence of triangles. It owns its
// storage exclusively; no vertex or triangle deduplication happens at
// this layer.
type Mesh struct {
	triangles []Triangle
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// Add appends a single triangle.
func (m *Mesh) Add(t Triangle) {
	m.triangles = append(m.triangles, t)
}

// AddAll appends a slice of triangles in order.
func (m *Mesh) AddAll(ts []Triangle) {
	m.triangles = append(m.triangles, ts...)
}

// AddQuad appends the quad (a, b, c, d) as two triangles sharing the
// diagonal a-c.
func (m *Mesh) AddQuad(a, b, c, d Point3) {
	m.Add(NewTriangle(a, b, c))
	m.Add(NewTriangle(a, c, d))
}

// Merge appends every triangle of other to m. other is not modified.
func (m *Mesh) Merge(other *Mesh) {
	m.triangles = append(m.triangles, other.triangles...)
}

// Triangles returns the mesh's triangle storage. Callers must treat the
// returned slice as read-only.
func (m *Mesh) Triangles() []Triangle {
	return m.triangles
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.triangles) == 0
}

// BoundingBox computes the axis-aligned bounding box over all vertices.
// An empty mesh yields the zero box at the origin.
func (m *Mesh) BoundingBox() Box {
	if len(m.triangles) == 0 {
		return Box{}
	}
	min := m.triangles[0].V1
	max := min
	for _, t := range m.triangles {
		for _, v := range [3]Point3{t.V1, t.V2, t.V3} {
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.Z < min.Z {
				min.Z = v.Z
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
			if v.Z > max.Z {
				max.Z = v.Z
			}
		}
	}
	return Box{Min: min, Max: max}
}
