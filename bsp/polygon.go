package bsp

import (
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/vec3"
)

// Polygon is a convex ring of 3+ vertices sharing a common supporting
// plane. Triangles entering the BSP are 3-vertex polygons; splitting can
// lift them to 4-vertex fragments, which are fan-triangulated on exit.
type Polygon struct {
	Vertices []mesh.Vertex
	Plane    Plane

	// SourceMeshID and SourceArea carry through splits from the
	// originating triangle, for the §4.4.4 dedup tie-break (lower mesh
	// ID wins; ties break on larger area, then first-encounter).
	SourceMeshID string
	SourceArea   float64
}

// NewPolygon builds a triangle polygon from three mesh vertices, deriving
// its plane from their positions.
func NewPolygon(a, b, c mesh.Vertex, sourceMeshID string, sourceArea float64) Polygon {
	return Polygon{
		Vertices:     []mesh.Vertex{a, b, c},
		Plane:        NewPlane(a.Position, b.Position, c.Position),
		SourceMeshID: sourceMeshID,
		SourceArea:   sourceArea,
	}
}

// Flip reverses vertex order (winding) and negates every vertex normal
// and the supporting plane, producing the polygon's facing on the
// complement solid.
func (p Polygon) Flip() Polygon {
	n := len(p.Vertices)
	verts := make([]mesh.Vertex, n)
	for i, v := range p.Vertices {
		verts[n-1-i] = mesh.Vertex{Position: v.Position, Normal: v.Normal.Scale(-1)}
	}
	return Polygon{
		Vertices:     verts,
		Plane:        p.Plane.Flip(),
		SourceMeshID: p.SourceMeshID,
		SourceArea:   p.SourceArea,
	}
}

// Centroid returns the unweighted average of the polygon's vertex
// positions (barycenter). Clip classification does not use it; it tests
// each vertex against the splitting plane.
func (p Polygon) Centroid() vec3.Vec {
	var sum vec3.Vec
	for _, v := range p.Vertices {
		sum = sum.Add(v.Position)
	}
	return sum.Scale(1 / float64(len(p.Vertices)))
}

// Triangles fan-triangulates the polygon (k-2 triangles from a k-gon,
// sharing the first vertex) into a flat list of mesh triangles.
func (p Polygon) Triangles() [][3]mesh.Vertex {
	out := make([][3]mesh.Vertex, 0, len(p.Vertices)-2)
	for i := 1; i < len(p.Vertices)-1; i++ {
		out = append(out, [3]mesh.Vertex{p.Vertices[0], p.Vertices[i], p.Vertices[i+1]})
	}
	return out
}

// FromMesh converts every triangle of m into a Polygon.
func FromMesh(m *mesh.Mesh) []Polygon {
	polys := make([]Polygon, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		a := m.Vertices[t[0]]
		b := m.Vertices[t[1]]
		c := m.Vertices[t[2]]
		area := m.TriangleArea(t)
		polys = append(polys, NewPolygon(a, b, c, m.ID, area))
	}
	return polys
}

// ToMesh fan-triangulates every polygon and assembles a new Mesh,
// followed by a normal recomputation.
func ToMesh(polys []Polygon) *mesh.Mesh {
	m := mesh.New()
	for _, p := range polys {
		for _, tri := range p.Triangles() {
			i0 := m.AddVertex(tri[0])
			i1 := m.AddVertex(tri[1])
			i2 := m.AddVertex(tri[2])
			if m.TriangleArea(mesh.Triangle{i0, i1, i2}) < 1e-10 {
				// Drop degenerate slivers produced by near-tangential splits.
				m.Vertices = m.Vertices[:len(m.Vertices)-3]
				continue
			}
			m.AddTriangle(i0, i1, i2)
		}
	}
	m.RecomputeNormals()
	return m
}
