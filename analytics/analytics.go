// Package analytics computes scalar and derived measurements over a
// finished mesh: volume, surface area, bounding box, centroid, and (via the
// validate package) a watertightness check, using the signed-tetrahedron
// volume and Kahan-summation algorithms of the analysis this kernel
// replaces.
package analytics

import (
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/predicate"
	"github.com/polyframe-ai/csgkernel/validate"
	"github.com/polyframe-ai/csgkernel/vec3"
)

// Report is the result of analyzing a mesh.
type Report struct {
	Volume        float64
	SurfaceArea   float64
	BoundingBox   mesh.BoundingBox
	Centroid      vec3.Vec
	VertexCount   int
	TriangleCount int
	IsWatertight  bool
}

// Analyze computes a Report for m.
func Analyze(m *mesh.Mesh) Report {
	return Report{
		Volume:        signedVolume(m),
		SurfaceArea:   surfaceArea(m),
		BoundingBox:   m.BoundingBox(),
		Centroid:      areaWeightedCentroid(m),
		VertexCount:   len(m.Vertices),
		TriangleCount: len(m.Triangles),
		IsWatertight:  validate.Closed(m),
	}
}

// signedVolume sums the signed volume of the tetrahedron from the origin
// to each triangle (divergence theorem); correct regardless of the mesh's
// position relative to the origin as long as it is closed.
func signedVolume(m *mesh.Mesh) float64 {
	terms := make([]float64, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		a := m.Vertices[t[0]].Position
		b := m.Vertices[t[1]].Position
		c := m.Vertices[t[2]].Position
		terms = append(terms, a.Dot(b.Cross(c))/6)
	}
	return predicate.KahanSum(terms)
}

// surfaceArea is the Kahan-summed total triangle area.
func surfaceArea(m *mesh.Mesh) float64 {
	terms := make([]float64, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		terms = append(terms, m.TriangleArea(t))
	}
	return predicate.KahanSum(terms)
}

// areaWeightedCentroid is the area-weighted average of every triangle's
// centroid, which (unlike an unweighted vertex average) doesn't bias toward
// regions with denser tessellation.
func areaWeightedCentroid(m *mesh.Mesh) vec3.Vec {
	var totalArea float64
	var acc vec3.Vec
	for _, t := range m.Triangles {
		a := m.Vertices[t[0]].Position
		b := m.Vertices[t[1]].Position
		c := m.Vertices[t[2]].Position
		area := m.TriangleArea(t)
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		acc = acc.Add(centroid.Scale(area))
		totalArea += area
	}
	if totalArea < 1e-300 {
		return vec3.Zero
	}
	return acc.Scale(1 / totalArea)
}
