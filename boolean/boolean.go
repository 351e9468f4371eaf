// Package boolean orchestrates the CSG boolean engine: it always runs the
// fast BSP path, whose output goes through coplanar-face deduplication, and
// replaces that result with the robust winding-number path's when Robust
// quality is selected or the BSP result looks suspect. The robust path's
// result is not passed through coplanar-face deduplication.
package boolean

import (
	"fmt"

	"github.com/polyframe-ai/csgkernel/bsp"
	"github.com/polyframe-ai/csgkernel/kernelerr"
	"github.com/polyframe-ai/csgkernel/mesh"
)

// Op identifies which boolean operation to perform.
type Op int

const (
	Union Op = iota
	Difference
	Intersection
)

func (o Op) String() string {
	switch o {
	case Union:
		return "union"
	case Difference:
		return "difference"
	case Intersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// Quality selects which evaluation path an operation takes.
type Quality int

const (
	// Auto picks Fast or Robust per-call using the curvature heuristic.
	Auto Quality = iota
	Fast
	Robust
)

// weldEpsilon collapses coincident seam vertices produced by BSP splitting
// or fragment reassembly before the result leaves the engine.
const weldEpsilon = 1e-9

// Evaluate runs op on a and b at the requested quality, returning a fresh
// mesh. Either operand may be nil or empty, handled per spec §4.4's
// identity rules (union with empty returns the other operand unchanged,
// intersection with empty is empty, etc.) before any tree is built.
func Evaluate(a, b *mesh.Mesh, op Op, quality Quality) (*mesh.Mesh, error) {
	if a == nil {
		a = mesh.New()
	}
	if b == nil {
		b = mesh.New()
	}

	if quality == Auto {
		if complexityScore(a, b) > 0.5 {
			quality = Robust
		} else {
			quality = Fast
		}
	}

	result, bspErr := evaluateBSP(a, b, op)
	needsRobust := quality == Robust || (bspErr == nil && bspResultSuspect(op, a, b, result))

	if needsRobust || bspErr != nil {
		robustResult, robustErr := evaluateRobust(a, b, op)
		if robustErr != nil {
			if bspErr != nil {
				// Both paths failed: surface the taxonomy sentinel with
				// both attempts' causes rather than just the last one.
				return nil, kernelerr.Wrapf(kernelerr.ErrBooleanFailure, "boolean %s: bsp: %v, robust: %v", op, bspErr, robustErr)
			}
			return nil, kernelerr.Wrapf(kernelerr.ErrBooleanFailure, "boolean %s (robust)", op)
		}
		result = robustResult
	}

	result.WeldVertices(weldEpsilon)
	result.RemoveDuplicateTriangles()
	result.RemoveOrphanedVertices()
	result.RecomputeNormals()
	if err := result.Validate(); err != nil {
		return nil, kernelerr.Wrapf(err, "boolean %s produced invalid mesh", op)
	}
	return result, nil
}

// evaluateBSP runs the BSP-form algorithm and dedups coplanar faces before
// reassembling triangles.
func evaluateBSP(a, b *mesh.Mesh, op Op) (*mesh.Mesh, error) {
	aPolys := bsp.FromMesh(a)
	bPolys := bsp.FromMesh(b)

	var out []bsp.Polygon
	switch op {
	case Union:
		out = bsp.Union(aPolys, bPolys)
	case Difference:
		out = bsp.Difference(aPolys, bPolys)
	case Intersection:
		out = bsp.Intersection(aPolys, bPolys)
	default:
		return nil, fmt.Errorf("boolean: unknown op %v", op)
	}

	out = DedupCoplanar(out)
	return bsp.ToMesh(out), nil
}

// bspResultSuspect flags cases where the fast path is known to misbehave:
// an empty result from a union with a non-empty operand, or from a
// difference with a non-empty first operand, usually signals a degenerate
// BSP split rather than a genuinely empty solid. The robust path is retried
// in that case rather than returning an empty mesh. An empty intersection
// is never flagged.
func bspResultSuspect(op Op, a, b, result *mesh.Mesh) bool {
	if len(result.Triangles) > 0 {
		return false
	}
	switch op {
	case Union:
		return len(a.Triangles) > 0 || len(b.Triangles) > 0
	case Difference:
		return len(a.Triangles) > 0
	case Intersection:
		return false // legitimately empty when operands don't overlap
	default:
		return false
	}
}
