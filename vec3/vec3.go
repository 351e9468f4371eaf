// Package vec3 provides the three-scalar position and direction type shared
// by every other package in the kernel.
package vec3

import "math"

// Vec is a point or direction in 3D space. Point3 and Vector3 in the
// specification are the same shape, distinguished only by role; the kernel
// uses a single type for both.
type Vec struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = Vec{}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the scalar product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector product v x o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Length2 returns the squared Euclidean norm of v, avoiding the sqrt.
func (v Vec) Length2() float64 {
	return v.Dot(v)
}

// Normalize returns v scaled to unit length. The zero vector normalizes to
// itself rather than producing NaNs.
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l < 1e-300 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v and o at parameter t in [0, 1].
func (v Vec) Lerp(o Vec, t float64) Vec {
	return v.Add(o.Sub(v).Scale(t))
}

// Min returns the component-wise minimum of v and o.
func (v Vec) Min(o Vec) Vec {
	return Vec{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec) Max(o Vec) Vec {
	return Vec{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// Component returns the i'th component (0=X, 1=Y, 2=Z).
func (v Vec) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IsFinite reports whether all components are finite (not NaN or Inf).
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
