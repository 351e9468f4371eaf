// Package predicate implements robust geometric predicates: oriented
// volume, signed point-plane distance, and triangle area, each with an
// adaptive-precision fallback for near-degenerate inputs. The BSP splitter
// and the coplanar-triangle dedup pass do not call these predicates; they
// evaluate plane distances directly. KahanSum is used by the winding
// engine and mesh analytics.
package predicate

import (
	"math"

	"github.com/polyframe-ai/csgkernel/vec3"
)

// adaptiveThreshold is the magnitude below which the straightforward
// evaluation is considered unreliable and the Kahan-summed recomputation
// is used instead.
const adaptiveThreshold = 1e-9

// KahanSum adds terms with a running compensation term (Neumaier's variant
// of Kahan summation, which also corrects for a new term outweighing the
// accumulator), canceling the rounding error a naive running sum
// accumulates. Shared by every package in this kernel that needs a
// numerically robust reduction: predicate's own adaptive fallbacks, the
// winding engine's centroid, and the mesh analytics volume/area totals.
func KahanSum(terms []float64) float64 {
	var sum, c float64
	for _, t := range terms {
		s := sum + t
		if math.Abs(sum) >= math.Abs(t) {
			c += (sum - s) + t
		} else {
			c += (t - s) + sum
		}
		sum = s
	}
	return sum + c
}

// OrientedVolume returns (b-a) . ((c-a) x (d-a)), the signed volume of the
// tetrahedron abcd scaled by 6. Values of matching sign on either side of
// a triangle indicate which side of its plane a point falls on.
func OrientedVolume(a, b, c, d vec3.Vec) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	direct := ab.Dot(ac.Cross(ad))
	if math.Abs(direct) >= adaptiveThreshold {
		return direct
	}
	return orientedVolumeAdaptive(ab, ac, ad)
}

// orientedVolumeAdaptive recomputes the scalar triple product as a sum of
// six signed products, combined with Kahan summation to control
// cancellation error near-degenerate inputs otherwise suffer from.
func orientedVolumeAdaptive(ab, ac, ad vec3.Vec) float64 {
	terms := []float64{
		ab.X * ac.Y * ad.Z,
		-ab.X * ac.Z * ad.Y,
		-ab.Y * ac.X * ad.Z,
		ab.Y * ac.Z * ad.X,
		ab.Z * ac.X * ad.Y,
		-ab.Z * ac.Y * ad.X,
	}
	return KahanSum(terms)
}

// PointPlane returns n.p - d, the signed distance (scaled by |n|) of p
// from the plane with unit normal n and offset d.
func PointPlane(p, n vec3.Vec, d float64) float64 {
	direct := n.Dot(p) - d
	if math.Abs(direct) >= adaptiveThreshold {
		return direct
	}
	terms := []float64{n.X * p.X, n.Y * p.Y, n.Z * p.Z, -d}
	return KahanSum(terms)
}

// TriangleArea returns the geometric area of triangle abc, via the
// adaptive path when the direct cross-product magnitude is unreliable.
func TriangleArea(a, b, c vec3.Vec) float64 {
	cr := b.Sub(a).Cross(c.Sub(a))
	direct := cr.Length()
	if direct >= adaptiveThreshold {
		return direct * 0.5
	}
	terms := []float64{cr.X * cr.X, cr.Y * cr.Y, cr.Z * cr.Z}
	sum := KahanSum(terms)
	return math.Sqrt(math.Max(sum, 0)) * 0.5
}
