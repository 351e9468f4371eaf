// Package transform converts the CSG AST's TransformOp variants into 4x4
// homogeneous matrices, and applies those matrices to points and normals.
package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/polyframe-ai/csgkernel/vec3"
)

// Matrix is a 4x4 homogeneous transform (row-major).
type Matrix struct {
	m *mat.Dense
}

// Identity returns the identity transform.
func Identity() Matrix {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		d.Set(i, i, 1)
	}
	return Matrix{m: d}
}

func fromRows(rows [4][4]float64) Matrix {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d.Set(i, j, rows[i][j])
		}
	}
	return Matrix{m: d}
}

// Translate returns the translation matrix for v.
func Translate(v vec3.Vec) Matrix {
	m := Identity()
	m.m.Set(0, 3, v.X)
	m.m.Set(1, 3, v.Y)
	m.m.Set(2, 3, v.Z)
	return m
}

// Scale returns the diagonal scale matrix for v.
func Scale(v vec3.Vec) Matrix {
	m := Identity()
	m.m.Set(0, 0, v.X)
	m.m.Set(1, 1, v.Y)
	m.m.Set(2, 2, v.Z)
	return m
}

// Mirror returns a diagonal matrix with -1 on any non-zero axis-mask
// component and 1 elsewhere.
func Mirror(axis vec3.Vec) Matrix {
	f := func(a float64) float64 {
		if a != 0 {
			return -1
		}
		return 1
	}
	return Scale(vec3.Vec{X: f(axis.X), Y: f(axis.Y), Z: f(axis.Z)})
}

// rotateAxis returns the homogeneous rotation matrix for angle radians
// about the given unit axis, via Rodrigues' formula (equivalent to the
// axis-angle form a quaternion composition would produce, avoiding gimbal
// lock when composed below).
func rotateAxis(axis vec3.Vec, angle float64) Matrix {
	axis = axis.Normalize()
	s, c := math.Sin(angle), math.Cos(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z
	return fromRows([4][4]float64{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	})
}

// RotateX returns the rotation matrix for angleDeg degrees about X.
func RotateX(angleDeg float64) Matrix {
	return rotateAxis(vec3.Vec{X: 1}, angleDeg*math.Pi/180)
}

// RotateY returns the rotation matrix for angleDeg degrees about Y.
func RotateY(angleDeg float64) Matrix {
	return rotateAxis(vec3.Vec{Y: 1}, angleDeg*math.Pi/180)
}

// RotateZ returns the rotation matrix for angleDeg degrees about Z.
func RotateZ(angleDeg float64) Matrix {
	return rotateAxis(vec3.Vec{Z: 1}, angleDeg*math.Pi/180)
}

// Rotate composes the Euler-degrees rotation v = (x, y, z) in Z . Y . X
// order, as required by spec §4.3.
func Rotate(v vec3.Vec) Matrix {
	return RotateZ(v.Z).Mul(RotateY(v.Y)).Mul(RotateX(v.X))
}

// FromRowMajor16 builds a Matrix from a caller-supplied 16-element
// row-major array, passed through verbatim for Multmatrix.
func FromRowMajor16(m [16]float64) Matrix {
	var rows [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			rows[i][j] = m[i*4+j]
		}
	}
	return fromRows(rows)
}

// Mul returns m * o (apply o first, then m).
func (m Matrix) Mul(o Matrix) Matrix {
	var out mat.Dense
	out.Mul(m.m, o.m)
	return Matrix{m: &out}
}

// ApplyPoint transforms a position by the full affine matrix.
func (m Matrix) ApplyPoint(p vec3.Vec) vec3.Vec {
	x := m.m.At(0, 0)*p.X + m.m.At(0, 1)*p.Y + m.m.At(0, 2)*p.Z + m.m.At(0, 3)
	y := m.m.At(1, 0)*p.X + m.m.At(1, 1)*p.Y + m.m.At(1, 2)*p.Z + m.m.At(1, 3)
	z := m.m.At(2, 0)*p.X + m.m.At(2, 1)*p.Y + m.m.At(2, 2)*p.Z + m.m.At(2, 3)
	return vec3.Vec{X: x, Y: y, Z: z}
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 block,
// for transforming normals correctly under non-uniform scale. Falls back
// to the 3x3 block itself when the block is singular.
func (m Matrix) NormalMatrix() Matrix {
	var upper mat.Dense
	upper.CloneFrom(m.m.Slice(0, 3, 0, 3))

	var inv mat.Dense
	if err := inv.Inverse(&upper); err != nil {
		// Singular: fall back to the original linear part unchanged.
		d := mat.NewDense(4, 4, nil)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				d.Set(i, j, upper.At(i, j))
			}
		}
		d.Set(3, 3, 1)
		return Matrix{m: d}
	}
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Set(i, j, inv.At(j, i)) // transpose of inverse
		}
	}
	d.Set(3, 3, 1)
	return Matrix{m: d}
}

// ApplyDirection transforms a direction (no translation component).
func (m Matrix) ApplyDirection(v vec3.Vec) vec3.Vec {
	x := m.m.At(0, 0)*v.X + m.m.At(0, 1)*v.Y + m.m.At(0, 2)*v.Z
	y := m.m.At(1, 0)*v.X + m.m.At(1, 1)*v.Y + m.m.At(1, 2)*v.Z
	z := m.m.At(2, 0)*v.X + m.m.At(2, 1)*v.Y + m.m.At(2, 2)*v.Z
	return vec3.Vec{X: x, Y: y, Z: z}
}

// Row16 returns the matrix flattened row-major, mostly for tests.
func (m Matrix) Row16() [16]float64 {
	var out [16]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = m.m.At(i, j)
		}
	}
	return out
}
