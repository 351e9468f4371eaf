// Package bvh provides a bounding-volume hierarchy over a mesh's
// triangles, used to accelerate the winding engine's ray queries during
// the robust CSG path's triangle classification. It is pure performance
// machinery: it changes no observable result, only how many triangles
// get tested against a given ray directly.
package bvh

import (
	"github.com/dhconnelly/rtreego"

	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/vec3"
)

const dims = 3

// leaf wraps one triangle's index and precomputed AABB so it can be
// inserted into an rtreego.Rtree, which indexes by rtreego.Spatial.
type leaf struct {
	index int
	rect  *rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (l *leaf) Bounds() *rtreego.Rect {
	return l.rect
}

// Tree indexes the triangles of a single mesh snapshot for spatial
// queries. It does not track mutation of the underlying mesh; build a new
// Tree if the mesh changes.
type Tree struct {
	rt *rtreego.Rtree
	m  *mesh.Mesh
}

// Build constructs a BVH over every triangle of m.
func Build(m *mesh.Mesh) *Tree {
	rt := rtreego.NewTree(dims, 8, 32)
	for i, t := range m.Triangles {
		a := m.Vertices[t[0]].Position
		b := m.Vertices[t[1]].Position
		c := m.Vertices[t[2]].Position
		box := aabb(a, b, c)
		rt.Insert(&leaf{index: i, rect: box})
	}
	return &Tree{rt: rt, m: m}
}

// aabb returns the rtreego bounding rectangle for a triangle, inflated by
// a small epsilon so degenerate (near-planar) triangles still have a
// representable, non-empty rectangle on every axis.
func aabb(a, b, c vec3.Vec) *rtreego.Rect {
	const pad = 1e-9
	min := a.Min(b).Min(c)
	max := a.Max(b).Max(c)
	lengths := []float64{
		max.X - min.X + pad,
		max.Y - min.Y + pad,
		max.Z - min.Z + pad,
	}
	p := rtreego.Point{min.X - pad/2, min.Y - pad/2, min.Z - pad/2}
	rect, err := rtreego.NewRect(p, lengths)
	if err != nil {
		// NewRect only errors on non-positive lengths, which pad rules out.
		panic(err)
	}
	return rect
}

// CandidatesForRay returns the indices of triangles whose bounding box
// could be hit by a ray from origin in direction dir, over a bounding
// query box spanning from origin out to maxT along dir. Conservative: it
// may return more triangles than actually intersect.
func (t *Tree) CandidatesForRay(origin, dir vec3.Vec, maxT float64) []int {
	far := origin.Add(dir.Scale(maxT))
	min := origin.Min(far)
	max := origin.Max(far)
	const pad = 1e-6
	lengths := []float64{max.X - min.X + pad, max.Y - min.Y + pad, max.Z - min.Z + pad}
	p := rtreego.Point{min.X - pad/2, min.Y - pad/2, min.Z - pad/2}
	rect, err := rtreego.NewRect(p, lengths)
	if err != nil {
		return t.AllIndices()
	}
	results := t.rt.SearchIntersect(rect)
	out := make([]int, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*leaf).index)
	}
	return out
}

// AllIndices returns every triangle index, used as a fallback when a
// query rectangle cannot be built (degenerate ray).
func (t *Tree) AllIndices() []int {
	out := make([]int, len(t.m.Triangles))
	for i := range out {
		out[i] = i
	}
	return out
}
