package vec3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestDotCross(t *testing.T) {
	testSet := []struct {
		a, b Vec
		dot  float64
		crs  Vec
	}{
		{Vec{1, 0, 0}, Vec{0, 1, 0}, 0, Vec{0, 0, 1}},
		{Vec{1, 2, 3}, Vec{4, 5, 6}, 32, Vec{-3, 6, -3}},
	}
	for i, ts := range testSet {
		assert.InDelta(t, ts.dot, ts.a.Dot(ts.b), tolerance, "test %d dot", i)
		got := ts.a.Cross(ts.b)
		assert.InDelta(t, ts.crs.X, got.X, tolerance, "test %d cross.X", i)
		assert.InDelta(t, ts.crs.Y, got.Y, tolerance, "test %d cross.Y", i)
		assert.InDelta(t, ts.crs.Z, got.Z, tolerance, "test %d cross.Z", i)
	}
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Zero, Zero.Normalize())
}

func TestLerp(t *testing.T) {
	a := Vec{0, 0, 0}
	b := Vec{10, 10, 10}
	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, 5, mid.X, tolerance)
	assert.InDelta(t, 5, mid.Y, tolerance)
	assert.InDelta(t, 5, mid.Z, tolerance)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, Vec{1, 2, 3}.IsFinite())
	assert.False(t, Vec{math.NaN(), 2, 3}.IsFinite())
	assert.False(t, Vec{math.Inf(1), 2, 3}.IsFinite())
}
