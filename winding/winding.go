// Package winding implements the mesh-centric point-in-solid test used as
// the boolean engine's fallback classifier: ray casting with parity
// counting via the Möller-Trumbore algorithm, accelerated by a BVH over
// the target mesh's triangles.
package winding

import (
	"math"

	"github.com/polyframe-ai/csgkernel/bvh"
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/predicate"
	"github.com/polyframe-ai/csgkernel/vec3"
)

// Classification is the outcome of testing a point or fragment against a
// mesh: strictly inside, strictly outside, or too close to the surface to
// be sure.
type Classification int

const (
	Outside Classification = iota
	Inside
	OnBoundary
)

// boundaryEpsilon is the distance within which a ray/triangle hit is
// treated as lying on the surface rather than strictly crossing it.
const boundaryEpsilon = 1e-7

// rayDirection is the fixed +X probe direction spec §4.4.2 specifies.
var rayDirection = vec3.Vec{X: 1, Y: 0, Z: 0}

// Centroid returns a triangle's centroid via Kahan summation on each axis,
// matching the precision discipline predicate.go uses elsewhere.
func Centroid(a, b, c vec3.Vec) vec3.Vec {
	return vec3.Vec{
		X: predicate.KahanSum([]float64{a.X, b.X, c.X}) / 3,
		Y: predicate.KahanSum([]float64{a.Y, b.Y, c.Y}) / 3,
		Z: predicate.KahanSum([]float64{a.Z, b.Z, c.Z}) / 3,
	}
}

// ClassifyPoint casts a ray from p in rayDirection against tree's mesh and
// returns Inside when the ray crosses an odd number of triangles strictly
// ahead of p (t > rayEps), OnBoundary when any crossing lands within
// boundaryEpsilon of the origin, and Outside otherwise. Hits at the same
// distance (within boundaryEpsilon), as at an edge or vertex shared by
// several triangles, count as one crossing.
func ClassifyPoint(m *mesh.Mesh, tree *bvh.Tree, p vec3.Vec, rayEps float64) Classification {
	const maxT = 1e12
	var crossings []float64
	onBoundary := false

	for _, idx := range tree.CandidatesForRay(p, rayDirection, maxT) {
		t := m.Triangles[idx]
		a := m.Vertices[t[0]].Position
		b := m.Vertices[t[1]].Position
		c := m.Vertices[t[2]].Position
		hit, dist := mollerTrumbore(p, rayDirection, a, b, c)
		if !hit {
			continue
		}
		if dist < rayEps {
			// Ray origin lies essentially on the surface.
			onBoundary = true
			continue
		}
		if math.Abs(dist) < boundaryEpsilon {
			onBoundary = true
		}
		counted := false
		for _, d := range crossings {
			if math.Abs(d-dist) < boundaryEpsilon {
				counted = true
				break
			}
		}
		if !counted {
			crossings = append(crossings, dist)
		}
	}
	if onBoundary {
		return OnBoundary
	}
	if len(crossings)%2 == 1 {
		return Inside
	}
	return Outside
}

// mollerTrumbore tests ray (origin, dir) against triangle (a,b,c),
// accepting forward intersections and those within boundaryEpsilon behind
// the origin (t > -boundaryEpsilon), so a ray that starts on a triangle
// still reports it. Returns whether it hit and the hit distance along dir.
func mollerTrumbore(origin, dir, a, b, c vec3.Vec) (bool, float64) {
	const eps = 1e-12
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	h := dir.Cross(e2)
	det := e1.Dot(h)
	if math.Abs(det) < eps {
		return false, 0
	}
	invDet := 1 / det
	s := origin.Sub(a)
	u := s.Dot(h) * invDet
	if u < -eps || u > 1+eps {
		return false, 0
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * invDet
	if v < -eps || u+v > 1+eps {
		return false, 0
	}
	t := e2.Dot(q) * invDet
	if t <= -boundaryEpsilon {
		return false, 0
	}
	return true, t
}

// ClassifyFragment classifies a triangle fragment (a,b,c) against m by
// probing its three vertices and its Kahan-summed centroid. The fragment
// is Inside only when every probe agrees it is inside; any boundary vote
// forces OnBoundary; otherwise it is Outside. The robust boolean path
// keeps the first operand's OnBoundary fragments and drops the second
// operand's.
func ClassifyFragment(m *mesh.Mesh, tree *bvh.Tree, a, b, c vec3.Vec, rayEps float64) Classification {
	probes := []vec3.Vec{a, b, c, Centroid(a, b, c)}
	allInside := true
	for _, p := range probes {
		switch ClassifyPoint(m, tree, p, rayEps) {
		case OnBoundary:
			return OnBoundary
		case Outside:
			allInside = false
		}
	}
	if allInside {
		return Inside
	}
	return Outside
}
