package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/primitive"
	"github.com/polyframe-ai/csgkernel/vec3"
)

func TestManifoldCube(t *testing.T) {
	m, err := primitive.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true)
	require.NoError(t, err)

	bad, ok := Manifold(m)
	assert.True(t, ok)
	assert.Empty(t, bad)
	assert.True(t, Closed(m))
}

func TestManifoldOpenMeshReportsBoundaryEdges(t *testing.T) {
	m := mesh.New()
	i0 := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: 0}})
	i1 := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 1, Y: 0, Z: 0}})
	i2 := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 0, Y: 1, Z: 0}})
	m.AddTriangle(i0, i1, i2)

	bad, ok := Manifold(m)
	assert.False(t, ok)
	assert.Len(t, bad, 3)
	assert.False(t, Closed(m))
}

func TestClosedEmptyMesh(t *testing.T) {
	assert.False(t, Closed(mesh.New()))
}
