package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/primitive"
	"github.com/polyframe-ai/csgkernel/vec3"
)

func TestAnalyzeCube(t *testing.T) {
	m, err := primitive.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, true)
	require.NoError(t, err)

	r := Analyze(m)
	assert.InDelta(t, 8.0, r.Volume, 1e-9)
	assert.InDelta(t, 24.0, r.SurfaceArea, 1e-9)
	assert.InDelta(t, 0, r.Centroid.X, 1e-9)
	assert.InDelta(t, 0, r.Centroid.Y, 1e-9)
	assert.InDelta(t, 0, r.Centroid.Z, 1e-9)
	assert.Equal(t, 36, r.VertexCount)
	assert.Equal(t, 12, r.TriangleCount)
	assert.True(t, r.IsWatertight)
}

func TestAnalyzeCubeOffCenterVolumeInvariant(t *testing.T) {
	m, err := primitive.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, false)
	require.NoError(t, err)
	r := Analyze(m)
	assert.InDelta(t, 8.0, r.Volume, 1e-9)
	assert.InDelta(t, 1, r.Centroid.X, 1e-9)
}

func TestIsWatertightEmptyMesh(t *testing.T) {
	assert.False(t, Analyze(mesh.New()).IsWatertight)
}

func TestIsWatertightOpenMesh(t *testing.T) {
	m := mesh.New()
	i0 := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: 0}})
	i1 := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 1, Y: 0, Z: 0}})
	i2 := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 0, Y: 1, Z: 0}})
	m.AddTriangle(i0, i1, i2)

	assert.False(t, Analyze(m).IsWatertight)
}

func TestAnalyzeSphereVolumeApproximatesIdeal(t *testing.T) {
	m, err := primitive.Sphere(1, 64)
	require.NoError(t, err)
	r := Analyze(m)
	ideal := 4.0 / 3.0 * 3.14159265358979 * 1 * 1 * 1
	assert.InDelta(t, ideal, r.Volume, ideal*0.01)
	assert.True(t, r.IsWatertight)
}
