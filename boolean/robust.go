package boolean

import (
	"github.com/polyframe-ai/csgkernel/bvh"
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/winding"
)

// robustRayEpsilon is the ray-origin tolerance passed to the winding
// engine: hits closer than this to the probe point are treated as lying on
// the surface rather than a genuine crossing.
const robustRayEpsilon = 1e-9

// evaluateRobust classifies every whole triangle of each operand against
// the other mesh via the BVH-accelerated winding engine, then keeps the
// subset each operation needs. Unlike the BSP path it never splits a
// triangle at the true intersection curve with the other solid, so a seam
// that cuts through a triangle's interior leaves that triangle's whole-face
// classification governing its fate; this trades exact boundary conformity
// for immunity to the BSP path's near-tangential plane-classification
// failures, which is what makes it the fallback for curved/suspect input.
func evaluateRobust(a, b *mesh.Mesh, op Op) (*mesh.Mesh, error) {
	treeA := bvh.Build(a)
	treeB := bvh.Build(b)

	aClass := classifyTriangles(a, treeB, b)
	bClass := classifyTriangles(b, treeA, a)

	out := mesh.New()
	switch op {
	case Union:
		appendMatching(out, a, aClass, winding.Outside, false)
		appendMatching(out, a, aClass, winding.OnBoundary, false)
		appendMatching(out, b, bClass, winding.Outside, false)
	case Difference:
		appendMatching(out, a, aClass, winding.Outside, false)
		appendMatching(out, a, aClass, winding.OnBoundary, false)
		appendMatching(out, b, bClass, winding.Inside, true)
	case Intersection:
		appendMatching(out, a, aClass, winding.Inside, false)
		appendMatching(out, a, aClass, winding.OnBoundary, false)
		appendMatching(out, b, bClass, winding.Inside, false)
	}
	return out, nil
}

// classifyTriangles returns, for every triangle of src, its classification
// against target (accelerated by targetTree).
func classifyTriangles(src *mesh.Mesh, targetTree *bvh.Tree, target *mesh.Mesh) []winding.Classification {
	out := make([]winding.Classification, len(src.Triangles))
	for i, t := range src.Triangles {
		a := src.Vertices[t[0]].Position
		b := src.Vertices[t[1]].Position
		c := src.Vertices[t[2]].Position
		out[i] = winding.ClassifyFragment(target, targetTree, a, b, c, robustRayEpsilon)
	}
	return out
}

// appendMatching copies every triangle of src whose classification equals
// want into out, reversing winding and negating normals when flip is set
// (for faces that become a cavity wall, as in difference).
func appendMatching(out, src *mesh.Mesh, classes []winding.Classification, want winding.Classification, flip bool) {
	for i, t := range src.Triangles {
		if classes[i] != want {
			continue
		}
		va, vb, vc := src.Vertices[t[0]], src.Vertices[t[1]], src.Vertices[t[2]]
		if flip {
			va.Normal = va.Normal.Scale(-1)
			vb.Normal = vb.Normal.Scale(-1)
			vc.Normal = vc.Normal.Scale(-1)
			va, vc = vc, va
		}
		i0 := out.AddVertex(va)
		i1 := out.AddVertex(vb)
		i2 := out.AddVertex(vc)
		out.AddTriangle(i0, i1, i2)
	}
}
