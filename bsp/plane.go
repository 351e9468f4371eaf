package bsp

import "github.com/polyframe-ai/csgkernel/vec3"

// Plane is a splitting plane: unit normal and signed offset, satisfying
// n.p == offset for every point p on the plane.
type Plane struct {
	Normal vec3.Vec
	Offset float64
}

// NewPlane returns the plane through a, b, c with CCW-outward normal
// (b-a) x (c-a).
func NewPlane(a, b, c vec3.Vec) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: n, Offset: n.Dot(a)}
}

// Flip returns the plane with normal and offset negated (same plane, the
// other side called "front").
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Scale(-1), Offset: -p.Offset}
}

// Distance returns the signed distance of point from the plane: positive
// in front, negative behind, zero on the plane.
func (p Plane) Distance(point vec3.Vec) float64 {
	return p.Normal.Dot(point) - p.Offset
}

// Valid reports whether the plane has a well-formed (non-zero) normal; a
// plane built from three near-collinear points degenerates to this.
func (p Plane) Valid() bool {
	return p.Normal.Length2() > 1e-20
}
