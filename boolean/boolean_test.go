package boolean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/primitive"
	"github.com/polyframe-ai/csgkernel/vec3"
)

func signedVolume(m *mesh.Mesh) float64 {
	var vol float64
	for _, t := range m.Triangles {
		a := m.Vertices[t[0]].Position
		b := m.Vertices[t[1]].Position
		c := m.Vertices[t[2]].Position
		vol += a.Dot(b.Cross(c)) / 6
	}
	return vol
}

func cubeAt(t *testing.T, size float64, origin vec3.Vec) *mesh.Mesh {
	t.Helper()
	m, err := primitive.Cube(vec3.Vec{X: size, Y: size, Z: size}, true)
	require.NoError(t, err)
	apply := func(p vec3.Vec) vec3.Vec { return p.Add(origin) }
	identity := func(n vec3.Vec) vec3.Vec { return n }
	return m.Transform(apply, identity)
}

func TestUnionDisjointCubesConcatenates(t *testing.T) {
	a := cubeAt(t, 1, vec3.Vec{})
	b := cubeAt(t, 1, vec3.Vec{X: 10})

	result, err := Evaluate(a, b, Union, Auto)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, signedVolume(result), 1e-6)
}

func TestUnionOverlappingCubesVolumeBounded(t *testing.T) {
	a := cubeAt(t, 2, vec3.Vec{})
	b := cubeAt(t, 2, vec3.Vec{X: 1})

	result, err := Evaluate(a, b, Union, Fast)
	require.NoError(t, err)
	vol := signedVolume(result)
	assert.Greater(t, vol, 8.0)
	assert.Less(t, vol, 16.0)
}

func TestDifferenceIdenticalCubesIsEmpty(t *testing.T) {
	a := cubeAt(t, 2, vec3.Vec{})
	b := cubeAt(t, 2, vec3.Vec{})

	result, err := Evaluate(a, b, Difference, Fast)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, signedVolume(result), 1e-3)
}

func TestDifferenceDisjointCubesReturnsA(t *testing.T) {
	a := cubeAt(t, 2, vec3.Vec{})
	b := cubeAt(t, 2, vec3.Vec{X: 10})

	result, err := Evaluate(a, b, Difference, Auto)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, signedVolume(result), 1e-6)
}

func TestIntersectionDisjointCubesIsEmpty(t *testing.T) {
	a := cubeAt(t, 2, vec3.Vec{})
	b := cubeAt(t, 2, vec3.Vec{X: 10})

	result, err := Evaluate(a, b, Intersection, Auto)
	require.NoError(t, err)
	assert.Empty(t, result.Triangles)
}

func TestIntersectionOverlappingCubesVolumeBounded(t *testing.T) {
	a := cubeAt(t, 2, vec3.Vec{})
	b := cubeAt(t, 2, vec3.Vec{X: 1})

	result, err := Evaluate(a, b, Intersection, Fast)
	require.NoError(t, err)
	vol := signedVolume(result)
	assert.Greater(t, vol, 0.0)
	assert.Less(t, vol, 8.0)
}

func TestEvaluateNilOperandsTreatedAsEmpty(t *testing.T) {
	b := cubeAt(t, 1, vec3.Vec{})
	result, err := Evaluate(nil, b, Union, Auto)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, signedVolume(result), 1e-6)
}

func TestComplexityScoreFlagsSphere(t *testing.T) {
	cube, err := primitive.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true)
	require.NoError(t, err)
	sphere, err := primitive.Sphere(1, 32)
	require.NoError(t, err)

	assert.False(t, isCurved(cube))
	assert.True(t, isCurved(sphere))
	assert.Greater(t, complexityScore(cube, sphere), 0.5)
}
