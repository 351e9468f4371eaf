package boolean

import "github.com/polyframe-ai/csgkernel/mesh"

// sampleLimit bounds how many vertices the curvature probe inspects per
// mesh, keeping the heuristic O(1) in practice on large meshes.
const sampleLimit = 100

// normalClusterEpsilon is the dot-product-complement tolerance (1 - cos)
// below which two normals are considered the same facet direction.
const normalClusterEpsilon = 1e-2

// distinctNormalThreshold is the cluster count above which a mesh is
// considered curved rather than faceted.
const distinctNormalThreshold = 12

// complexityScore estimates how likely the fast BSP path is to misbehave on
// a and b: flat, box-like solids have few distinct face normals and split
// cleanly; curved surfaces (spheres, cones) generate many near-tangential
// splits where the BSP path's classification epsilon becomes unreliable.
// Returns a value in [0, 1]; callers route to the robust path above 0.5.
func complexityScore(a, b *mesh.Mesh) float64 {
	if isCurved(a) || isCurved(b) {
		return 1
	}
	return 0
}

// isCurved samples up to sampleLimit vertex normals and reports whether
// more than distinctNormalThreshold distinct directions appear among them.
func isCurved(m *mesh.Mesh) bool {
	n := len(m.Vertices)
	if n == 0 {
		return false
	}
	step := 1
	if n > sampleLimit {
		step = (n + sampleLimit - 1) / sampleLimit
	}

	var clusters []mesh.Vertex // reuse Vertex just for its Normal field as a cluster mean
	for i := 0; i < n; i += step {
		normal := m.Vertices[i].Normal
		matched := false
		for _, c := range clusters {
			if normal.Dot(c.Normal) > 1-normalClusterEpsilon {
				matched = true
				break
			}
		}
		if !matched {
			clusters = append(clusters, mesh.Vertex{Normal: normal})
			if len(clusters) > distinctNormalThreshold {
				return true
			}
		}
	}
	return false
}
