package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyframe-ai/csgkernel/vec3"
)

const tolerance = 1e-9

func triMesh() *Mesh {
	m := New()
	m.AddVertex(Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: 0}})
	m.AddVertex(Vertex{Position: vec3.Vec{X: 1, Y: 0, Z: 0}})
	m.AddVertex(Vertex{Position: vec3.Vec{X: 0, Y: 1, Z: 0}})
	m.AddTriangle(0, 1, 2)
	return m
}

func TestTriangleAreaAndNormal(t *testing.T) {
	m := triMesh()
	area := m.TriangleArea(m.Triangles[0])
	assert.InDelta(t, 0.5, area, tolerance)
	n := m.TriangleNormal(m.Triangles[0])
	assert.InDelta(t, 0, n.X, tolerance)
	assert.InDelta(t, 0, n.Y, tolerance)
	assert.InDelta(t, 1, n.Z, tolerance)
}

func TestBoundingBox(t *testing.T) {
	m := triMesh()
	bb := m.BoundingBox()
	assert.Equal(t, vec3.Vec{X: 0, Y: 0, Z: 0}, bb.Min)
	assert.Equal(t, vec3.Vec{X: 1, Y: 1, Z: 0}, bb.Max)
}

func TestEmptyBoxUnion(t *testing.T) {
	empty := EmptyBox()
	require.True(t, empty.Empty())
	m := triMesh()
	bb := m.BoundingBox()
	assert.Equal(t, bb, empty.Union(bb))
}

func TestWeldVertices(t *testing.T) {
	m := New()
	m.AddVertex(Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: 0}, Normal: vec3.Vec{Z: 1}})
	m.AddVertex(Vertex{Position: vec3.Vec{X: 1e-9, Y: 0, Z: 0}, Normal: vec3.Vec{Z: 1}})
	m.AddVertex(Vertex{Position: vec3.Vec{X: 5, Y: 0, Z: 0}, Normal: vec3.Vec{Z: 1}})
	m.AddTriangle(0, 1, 2)
	removed := m.WeldVertices(1e-6)
	assert.Equal(t, 1, removed)
	assert.Len(t, m.Vertices, 2)
}

func TestRemoveDuplicateTriangles(t *testing.T) {
	m := triMesh()
	m.AddTriangle(0, 1, 2)
	m.AddTriangle(0, 0, 1)
	removed := m.RemoveDuplicateTriangles()
	assert.Equal(t, 2, removed)
	assert.Len(t, m.Triangles, 1)
}

func TestRemoveOrphanedVertices(t *testing.T) {
	m := triMesh()
	m.AddVertex(Vertex{Position: vec3.Vec{X: 9, Y: 9, Z: 9}})
	removed := m.RemoveOrphanedVertices()
	assert.Equal(t, 1, removed)
	assert.Len(t, m.Vertices, 3)
}

func TestRecomputeNormalsSentinel(t *testing.T) {
	m := New()
	m.AddVertex(Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: 0}})
	m.RecomputeNormals()
	assert.Equal(t, sentinelNormal, m.Vertices[0].Normal)
}

func TestRecomputeNormalsAgreesWithFace(t *testing.T) {
	m := triMesh()
	m.RecomputeNormals()
	want := m.TriangleNormal(m.Triangles[0])
	for _, v := range m.Vertices {
		assert.InDelta(t, want.X, v.Normal.X, 1e-6)
		assert.InDelta(t, want.Y, v.Normal.Y, 1e-6)
		assert.InDelta(t, want.Z, v.Normal.Z, 1e-6)
	}
}

func TestValidateCatchesOutOfRange(t *testing.T) {
	m := triMesh()
	m.Triangles[0][0] = 99
	err := m.Validate()
	require.Error(t, err)
}

func TestMergeAppendsWithOffset(t *testing.T) {
	a := triMesh()
	b := triMesh()
	a.Merge(b)
	assert.Len(t, a.Vertices, 6)
	assert.Len(t, a.Triangles, 2)
	assert.Equal(t, Triangle{3, 4, 5}, a.Triangles[1])
}
