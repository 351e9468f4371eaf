// Package validate checks mesh-level structural soundness beyond the
// per-triangle checks in mesh.Validate: manifoldness and closedness,
// adapted from the core checks of a larger validation/fuzzing harness that
// sits out of this kernel's scope.
package validate

import (
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/vec3"
)

// positionEpsilon is the distance below which two vertex positions are
// treated as the same point for edge adjacency, independent of whether
// they carry different normals (hard edges duplicate a position's vertex
// per adjoining face, so edge detection must key on geometry, not index).
const positionEpsilon = 1e-9

// Edge is an undirected edge between two canonical vertex positions,
// reported as non-manifold when its triangle refcount isn't exactly 2.
type Edge struct {
	A, B vec3.Vec
}

// Manifold returns every edge shared by a triangle count other than
// exactly two, and reports whether the mesh is manifold (no such edges).
func Manifold(m *mesh.Mesh) ([]Edge, bool) {
	canon := canonicalPositions(m, positionEpsilon)

	type key struct{ a, b int }
	refcount := make(map[key]int)
	edgeOf := make(map[key][2]int)
	edgeKey := func(i, j int) key {
		a, b := canon[i], canon[j]
		if a > b {
			a, b = b, a
		}
		return key{a, b}
	}
	for _, t := range m.Triangles {
		for _, pair := range [][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
			k := edgeKey(pair[0], pair[1])
			refcount[k]++
			edgeOf[k] = pair
		}
	}

	var bad []Edge
	for k, c := range refcount {
		if c != 2 {
			pair := edgeOf[k]
			bad = append(bad, Edge{A: m.Vertices[pair[0]].Position, B: m.Vertices[pair[1]].Position})
		}
	}
	return bad, len(bad) == 0
}

// Closed reports whether m has no non-manifold edges and at least one
// triangle. An empty mesh is not closed.
func Closed(m *mesh.Mesh) bool {
	if len(m.Triangles) == 0 {
		return false
	}
	_, ok := Manifold(m)
	return ok
}

// canonicalPositions assigns each vertex index the id of its position
// cluster (positions within eps of each other share an id), independent of
// normal, so hard-edge duplicate vertices still merge for adjacency
// purposes. Quadratic in vertex count, matching mesh.WeldVertices's cost
// discipline for bounded post-boolean output.
func canonicalPositions(m *mesh.Mesh, eps float64) []int {
	eps2 := eps * eps
	n := len(m.Vertices)
	canon := make([]int, n)
	var reps []vec3.Vec
	for i, v := range m.Vertices {
		found := -1
		for r, rp := range reps {
			if dist2(v.Position, rp) <= eps2 {
				found = r
				break
			}
		}
		if found == -1 {
			found = len(reps)
			reps = append(reps, v.Position)
		}
		canon[i] = found
	}
	return canon
}

func dist2(a, b vec3.Vec) float64 {
	return a.Sub(b).Length2()
}
