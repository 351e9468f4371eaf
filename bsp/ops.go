package bsp

// flipAll returns a new slice with every polygon flipped.
func flipAll(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.Flip()
	}
	return out
}

// invertedTree builds a tree from polys and inverts it, for use as an
// "is this point inside the original solid" clipping tree (outside the
// inverted tree == inside the original).
func invertedTree(polys []Polygon) *Node {
	t := Build(polys)
	t.Invert()
	return t
}

// Union returns A's polygons outside B concatenated with B's polygons
// outside A, per spec §4.4.1. B's clip uses clip_polygons_front_only so
// that B's faces exactly coplanar with a surviving A face are dropped
// rather than duplicated; any residual near-duplicate is left for the
// caller's coplanar-dedup pass (spec §4.4.4).
func Union(aPolys, bPolys []Polygon) []Polygon {
	if len(aPolys) == 0 {
		return append([]Polygon(nil), bPolys...)
	}
	if len(bPolys) == 0 {
		return append([]Polygon(nil), aPolys...)
	}
	treeA := Build(aPolys)
	treeB := Build(bPolys)
	aOut := treeB.ClipPolygons(aPolys, false)
	bOut := treeA.ClipPolygons(bPolys, true)
	return append(aOut, bOut...)
}

// Difference returns A \ B: A's polygons outside B, plus the faces of
// inverted B that lie inside A (kept with their reversed winding), which
// close the cavity left by removing B. Per spec §4.4.1.
func Difference(aPolys, bPolys []Polygon) []Polygon {
	if len(bPolys) == 0 {
		return append([]Polygon(nil), aPolys...)
	}
	if len(aPolys) == 0 {
		return nil
	}
	treeB := Build(bPolys)
	aOut := treeB.ClipPolygons(aPolys, false)

	invB := flipAll(bPolys)
	treeAInv := invertedTree(aPolys)
	closingFaces := treeAInv.ClipPolygons(invB, false)

	return append(aOut, closingFaces...)
}

// Intersection returns A ∩ B: the polygons of each operand that lie
// inside the other, found by clipping each against an inverted copy of
// the other's tree (outside-inverted == inside-original). Per spec
// §4.4.1.
func Intersection(aPolys, bPolys []Polygon) []Polygon {
	if len(aPolys) == 0 || len(bPolys) == 0 {
		return nil
	}
	treeBInv := invertedTree(bPolys)
	aInsideB := treeBInv.ClipPolygons(aPolys, false)

	treeAInv := invertedTree(aPolys)
	bInsideA := treeAInv.ClipPolygons(bPolys, false)

	return append(aInsideB, bInsideA...)
}
