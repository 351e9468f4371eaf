// Package mesh implements the triangle-mesh data model: vertices, indexed
// triangles, the bounding box, and the structural operations (welding,
// normal recomputation, merge) that every CSG stage operates on.
package mesh

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/polyframe-ai/csgkernel/vec3"
)

// degenerateAreaEpsilon is the minimum triangle area considered non-degenerate.
const degenerateAreaEpsilon = 1e-10

// Vertex is a position paired with a unit normal. Two vertices at the same
// position with different normals are legal and expected at hard edges.
type Vertex struct {
	Position vec3.Vec
	Normal   vec3.Vec
}

// Triangle is three indices into the owning Mesh's vertex list, in
// counter-clockwise order as viewed from outside the solid.
type Triangle [3]int

// Degenerate reports whether the triangle's indices repeat.
func (t Triangle) Degenerate() bool {
	return t[0] == t[1] || t[1] == t[2] || t[0] == t[2]
}

// BoundingBox is an axis-aligned box, closed under expansion. An empty box
// has Min at +Inf and Max at -Inf in every component.
type BoundingBox struct {
	Min, Max vec3.Vec
}

// EmptyBox returns the identity bounding box for expansion.
func EmptyBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: vec3.Vec{X: inf, Y: inf, Z: inf},
		Max: vec3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// Empty reports whether the box has never been expanded.
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExpandPoint returns the box expanded to include p.
func (b BoundingBox) ExpandPoint(p vec3.Vec) BoundingBox {
	return BoundingBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return BoundingBox{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersect returns the box common to b and o; may be empty.
func (b BoundingBox) Intersect(o BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}

// Contains reports whether p lies within the box, inclusive of the faces.
func (b BoundingBox) Contains(p vec3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Mesh exclusively owns an ordered vertex list and an ordered triangle
// list. AddVertex, AddTriangle, Merge, WeldVertices,
// RemoveDuplicateTriangles, RemoveOrphanedVertices and RecomputeNormals
// mutate the receiver in place; Transform and Clone return a new Mesh.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle

	// ID is a stable per-mesh identifier, assigned once at construction,
	// used only as the tie-break key in coplanar-triangle deduplication
	// (lower ID wins) — it carries no other semantics.
	ID string
}

// New returns an empty mesh with a fresh identifier.
func New() *Mesh {
	return &Mesh{ID: uuid.NewString()}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v Vertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle referencing vertex indices a, b, c (must
// already be CCW-ordered by the caller) and returns its index.
func (m *Mesh) AddTriangle(a, b, c int) int {
	m.Triangles = append(m.Triangles, Triangle{a, b, c})
	return len(m.Triangles) - 1
}

// TriangleArea returns the geometric area of tri.
func (m *Mesh) TriangleArea(tri Triangle) float64 {
	a := m.Vertices[tri[0]].Position
	b := m.Vertices[tri[1]].Position
	c := m.Vertices[tri[2]].Position
	return b.Sub(a).Cross(c.Sub(a)).Length() * 0.5
}

// TriangleNormal returns the unweighted CCW face normal of tri.
func (m *Mesh) TriangleNormal(tri Triangle) vec3.Vec {
	a := m.Vertices[tri[0]].Position
	b := m.Vertices[tri[1]].Position
	c := m.Vertices[tri[2]].Position
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// BoundingBox returns the min/max of every vertex position. O(n).
func (m *Mesh) BoundingBox() BoundingBox {
	box := EmptyBox()
	for _, v := range m.Vertices {
		box = box.ExpandPoint(v.Position)
	}
	return box
}

// Transform applies apply to every vertex position and applyNormal
// (followed by renormalization) to every normal, and returns the result
// as a new Mesh with a fresh identifier; the receiver is unchanged.
func (m *Mesh) Transform(apply func(p vec3.Vec) vec3.Vec, applyNormal func(n vec3.Vec) vec3.Vec) *Mesh {
	out := &Mesh{
		Vertices:  make([]Vertex, len(m.Vertices)),
		Triangles: append([]Triangle(nil), m.Triangles...),
		ID:        uuid.NewString(),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = Vertex{
			Position: apply(v.Position),
			Normal:   applyNormal(v.Normal).Normalize(),
		}
	}
	return out
}

// Merge appends other's vertices and triangles (index-offset) onto m,
// in place. It does not weld or deduplicate; callers that need a merged
// solid typically follow with WeldVertices and RemoveDuplicateTriangles.
func (m *Mesh) Merge(other *Mesh) {
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, t := range other.Triangles {
		m.Triangles = append(m.Triangles, Triangle{t[0] + offset, t[1] + offset, t[2] + offset})
	}
}

// Clone returns a deep copy with a fresh identifier.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices:  append([]Vertex(nil), m.Vertices...),
		Triangles: append([]Triangle(nil), m.Triangles...),
		ID:        uuid.NewString(),
	}
	return out
}

// WeldVertices collapses positions within eps of each other to a single
// representative vertex, re-indexes every triangle, and returns the number
// of vertices removed. Quadratic in vertex count; intended for bounded
// post-boolean output, not bulk import meshes.
func (m *Mesh) WeldVertices(eps float64) int {
	eps2 := eps * eps
	n := len(m.Vertices)
	rep := make([]int, n)
	for i := range rep {
		rep[i] = -1
	}
	kept := make([]Vertex, 0, n)
	for i := 0; i < n; i++ {
		if rep[i] != -1 {
			continue
		}
		idx := len(kept)
		kept = append(kept, m.Vertices[i])
		rep[i] = idx
		for j := i + 1; j < n; j++ {
			if rep[j] != -1 {
				continue
			}
			if m.Vertices[i].Position.Sub(m.Vertices[j].Position).Length2() <= eps2 {
				rep[j] = idx
			}
		}
	}
	removed := n - len(kept)
	newTris := make([]Triangle, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		nt := Triangle{rep[t[0]], rep[t[1]], rep[t[2]]}
		newTris = append(newTris, nt)
	}
	m.Vertices = kept
	m.Triangles = newTris
	return removed
}

// RemoveDuplicateTriangles drops triangles whose ordered index triple
// repeats, or that are degenerate (two indices equal).
func (m *Mesh) RemoveDuplicateTriangles() int {
	seen := make(map[Triangle]struct{}, len(m.Triangles))
	out := make([]Triangle, 0, len(m.Triangles))
	removed := 0
	for _, t := range m.Triangles {
		if t.Degenerate() {
			removed++
			continue
		}
		if _, ok := seen[t]; ok {
			removed++
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	m.Triangles = out
	return removed
}

// RemoveOrphanedVertices drops any vertex not referenced by a triangle and
// re-indexes. Returns the number removed.
func (m *Mesh) RemoveOrphanedVertices() int {
	used := make([]bool, len(m.Vertices))
	for _, t := range m.Triangles {
		used[t[0]] = true
		used[t[1]] = true
		used[t[2]] = true
	}
	remap := make([]int, len(m.Vertices))
	kept := make([]Vertex, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, v)
	}
	removed := len(m.Vertices) - len(kept)
	for i, t := range m.Triangles {
		m.Triangles[i] = Triangle{remap[t[0]], remap[t[1]], remap[t[2]]}
	}
	m.Vertices = kept
	return removed
}

// sentinelNormal is assigned to vertices with no surviving adjacent face.
var sentinelNormal = vec3.Vec{X: 0, Y: 0, Z: 1}

// RecomputeNormals assigns each vertex the area-weighted sum of its
// adjacent face normals, renormalized. Sub-epsilon-area triangles
// contribute nothing; vertices left with zero accumulated weight receive
// sentinelNormal.
func (m *Mesh) RecomputeNormals() {
	acc := make([]vec3.Vec, len(m.Vertices))
	for _, t := range m.Triangles {
		if t.Degenerate() {
			continue
		}
		a := m.Vertices[t[0]].Position
		b := m.Vertices[t[1]].Position
		c := m.Vertices[t[2]].Position
		cr := b.Sub(a).Cross(c.Sub(a))
		area := cr.Length() * 0.5
		if area < degenerateAreaEpsilon {
			continue
		}
		n := cr.Normalize()
		acc[t[0]] = acc[t[0]].Add(n.Scale(area))
		acc[t[1]] = acc[t[1]].Add(n.Scale(area))
		acc[t[2]] = acc[t[2]].Add(n.Scale(area))
	}
	for i := range m.Vertices {
		if acc[i].Length2() < 1e-20 {
			m.Vertices[i].Normal = sentinelNormal
			continue
		}
		m.Vertices[i].Normal = acc[i].Normalize()
	}
}

// Validate checks the structural invariants from the spec: in-range,
// distinct, non-degenerate-area triangle indices.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return fmt.Errorf("mesh: triangle %d index %d out of range [0,%d)", i, idx, n)
			}
		}
		if t.Degenerate() {
			return fmt.Errorf("mesh: triangle %d has repeated indices %v", i, t)
		}
		if m.TriangleArea(t) < degenerateAreaEpsilon {
			return fmt.Errorf("mesh: triangle %d area below degeneracy epsilon", i)
		}
	}
	return nil
}
