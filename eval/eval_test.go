package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyframe-ai/csgkernel/ast"
	"github.com/polyframe-ai/csgkernel/boolean"
	"github.com/polyframe-ai/csgkernel/kernelerr"
	"github.com/polyframe-ai/csgkernel/vec3"
)

func TestEvaluateCube(t *testing.T) {
	n := ast.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, true)
	m, err := Evaluate(n, Options{})
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 12)
}

func TestEvaluateUnionOfTwoCubes(t *testing.T) {
	a := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true)
	b := ast.Transform(ast.TransformOp{Kind: ast.OpTranslate, V: vec3.Vec{X: 10}},
		ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true))
	n := ast.Union(a, b)

	m, err := Evaluate(n, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, m.Triangles)
}

func TestEvaluateTransformTranslatesBoundingBox(t *testing.T) {
	n := ast.Transform(ast.TransformOp{Kind: ast.OpTranslate, V: vec3.Vec{X: 5}},
		ast.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, true))
	m, err := Evaluate(n, Options{})
	require.NoError(t, err)
	box := m.BoundingBox()
	assert.InDelta(t, 4.0, box.Min.X, 1e-9)
	assert.InDelta(t, 6.0, box.Max.X, 1e-9)
}

func TestEvaluateEmptyNode(t *testing.T) {
	m, err := Evaluate(ast.Empty(), Options{})
	require.NoError(t, err)
	assert.Empty(t, m.Triangles)
}

func TestEvaluateNilNode(t *testing.T) {
	m, err := Evaluate(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, m.Triangles)
}

func TestEvaluateIntersectionWithNoChildrenErrorsEmptyOperand(t *testing.T) {
	_, err := Evaluate(ast.Intersection(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, kernelerr.ErrEmptyOperand))
}

func TestIncrementalEvaluatorCachesIdentifiedSubtrees(t *testing.T) {
	cube := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("cube-a")
	root := ast.Union(cube)

	e := NewIncrementalEvaluator(root, Options{})
	_, err := e.Render()
	require.NoError(t, err)
	first := e.CacheStats()
	assert.Equal(t, 1, first.Misses)

	_, err = e.Render()
	require.NoError(t, err)
	second := e.CacheStats()
	assert.Equal(t, 1, second.Hits)
}

func TestIncrementalEvaluatorCacheStatsReportsOccupancy(t *testing.T) {
	a := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("a")
	b := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("b")
	root := ast.Union(a, b).WithID("root")

	e := NewIncrementalEvaluator(root, Options{})
	_, err := e.Render()
	require.NoError(t, err)

	stats := e.CacheStats()
	assert.Equal(t, 3, stats.TotalIdentified)
	assert.Equal(t, 3, stats.CachedCount)

	require.NoError(t, e.Invalidate("a"))
	stats = e.CacheStats()
	assert.Equal(t, 3, stats.TotalIdentified)
	assert.Equal(t, 1, stats.CachedCount) // only b's entry survives; a and root were invalidated
}

func TestIncrementalEvaluatorInvalidateUnknownIDIsNoOp(t *testing.T) {
	root := ast.Union(ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("a")).WithID("root")
	e := NewIncrementalEvaluator(root, Options{})
	_, err := e.Render()
	require.NoError(t, err)

	before := e.CacheStats()
	require.NoError(t, e.Invalidate("does-not-exist"))
	after := e.CacheStats()
	assert.Equal(t, before, after)
}

func TestIncrementalEvaluatorUpdateSubtreeInvalidatesCache(t *testing.T) {
	cube := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("cube-a")
	root := ast.Union(cube)

	e := NewIncrementalEvaluator(root, Options{})
	_, err := e.Render()
	require.NoError(t, err)

	bigger := ast.Cube(vec3.Vec{X: 4, Y: 4, Z: 4}, true).WithID("cube-a")
	require.NoError(t, e.UpdateSubtree("cube-a", bigger))

	m, err := e.Render()
	require.NoError(t, err)
	box := m.BoundingBox()
	assert.InDelta(t, 4.0, box.Max.X-box.Min.X, 1e-9)

	stats := e.CacheStats()
	assert.Equal(t, 2, stats.Misses) // cube-a recomputed once before, once after invalidation
}

func TestIncrementalEvaluatorUpdateSubtreeUnknownID(t *testing.T) {
	root := ast.Union(ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true))
	e := NewIncrementalEvaluator(root, Options{})
	err := e.UpdateSubtree("missing", ast.Empty())
	assert.Error(t, err)
}

func TestParallelEvaluateMatchesSerial(t *testing.T) {
	a := ast.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, true)
	b := ast.Transform(ast.TransformOp{Kind: ast.OpTranslate, V: vec3.Vec{X: 1}},
		ast.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, true))
	n := ast.Union(a, b)

	serial, err := Evaluate(n, Options{Quality: boolean.Fast})
	require.NoError(t, err)
	parallel, err := ParallelEvaluate(context.Background(), n, ParallelOptions{Options: Options{Quality: boolean.Fast}, MaxConcurrency: 2})
	require.NoError(t, err)

	assert.Equal(t, len(serial.Triangles), len(parallel.Triangles))
}
