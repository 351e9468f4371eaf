package kernel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyframe-ai/csgkernel/ast"
	"github.com/polyframe-ai/csgkernel/boolean"
	"github.com/polyframe-ai/csgkernel/vec3"
)

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, boolean.Robust, cfg.BoolQuality)
	assert.Equal(t, 50, cfg.BSPMaxDepth)
	assert.Equal(t, 0.95, cfg.CoplanarNormalThreshold)
	assert.Equal(t, 0.90, cfg.CoplanarAreaThreshold)
	assert.Equal(t, 1e-9, cfg.WindingRayEpsilon)
	assert.Equal(t, 1e-5, cfg.ClassificationEpsilon)
	assert.False(t, cfg.Parallel)
}

func TestKernelRenderIncremental(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoolQuality = boolean.Fast
	root := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true)
	k := New(root, cfg)

	m, err := k.Render(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 12)
}

func TestKernelRenderParallel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoolQuality = boolean.Fast
	cfg.Parallel = true
	cfg.MaxConcurrency = 2

	a := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true)
	b := ast.Transform(ast.TransformOp{Kind: ast.OpTranslate, V: vec3.Vec{X: 5}},
		ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true))
	root := ast.Union(a, b)
	k := New(root, cfg)

	m, err := k.Render(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, m.Triangles)
}

func TestKernelUpdateSubtreeAndCacheStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoolQuality = boolean.Fast
	cube := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("c1")
	root := ast.Union(cube)
	k := New(root, cfg)

	_, err := k.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, k.CacheStats().Misses)

	_, err = k.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, k.CacheStats().Hits)

	bigger := ast.Cube(vec3.Vec{X: 2, Y: 2, Z: 2}, true).WithID("c1")
	require.NoError(t, k.UpdateSubtree("c1", bigger))

	m, err := k.Render(context.Background())
	require.NoError(t, err)
	box := m.BoundingBox()
	assert.InDelta(t, 2.0, box.Max.X-box.Min.X, 1e-9)
}

func TestKernelSetASTResetsCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoolQuality = boolean.Fast
	cube := ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true).WithID("c1")
	k := New(ast.Union(cube), cfg)

	_, err := k.Render(context.Background())
	require.NoError(t, err)

	sphere := ast.Sphere(1, 16).WithID("s1")
	k.SetAST(ast.Union(sphere))

	m, err := k.Render(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, m.Triangles)
	assert.Equal(t, 1, k.CacheStats().Misses)
}

func TestKernelUpdateSubtreeUnknownIDErrors(t *testing.T) {
	cfg := DefaultConfig()
	k := New(ast.Union(ast.Cube(vec3.Vec{X: 1, Y: 1, Z: 1}, true)), cfg)
	err := k.UpdateSubtree("nope", ast.Empty())
	assert.Error(t, err)
}
