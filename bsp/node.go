// Package bsp implements the binary space partition used to clip and
// combine polygon sets for CSG boolean operations: recursive plane-based
// partitioning, polygon splitting along crossed edges, inversion to the
// complement solid, and the union/difference/intersection algorithms
// built on those primitives.
package bsp

import "github.com/polyframe-ai/csgkernel/mesh"

// MaxDepth bounds BSP recursion. Deeper subtrees store their residual
// polygons as an unsplit leaf, trading exact clipping for termination on
// pathological inputs.
const MaxDepth = 50

// ClassificationEpsilon is the plane-distance tolerance used to classify
// a polygon as coplanar, front, back, or spanning.
const ClassificationEpsilon = 1e-5

type planeSide int

const (
	coplanarSide planeSide = iota
	frontSide
	backSide
	spanningSide
)

// Node is a recursive polygon partition: an optional splitting plane,
// the polygons coplanar with it, and two optional child partitions.
type Node struct {
	Plane    *Plane
	Coplanar []Polygon
	Front    *Node
	Back     *Node
}

// Build constructs a BSP tree from polys, picking the first polygon's
// plane at each level and recursing depth-first, bounded by MaxDepth.
func Build(polys []Polygon) *Node {
	n := &Node{}
	n.build(polys, 0)
	return n
}

func (n *Node) build(polys []Polygon, depth int) {
	if len(polys) == 0 {
		return
	}
	if n.Plane == nil {
		pl := polys[0].Plane
		n.Plane = &pl
	}
	if depth >= MaxDepth {
		// Residual leaf: keep everything coplanar without further splitting.
		n.Coplanar = append(n.Coplanar, polys...)
		return
	}

	var front, back []Polygon
	for _, p := range polys {
		side, fp, bp := classify(*n.Plane, p)
		switch side {
		case coplanarSide:
			n.Coplanar = append(n.Coplanar, p)
		case frontSide:
			front = append(front, p)
		case backSide:
			back = append(back, p)
		case spanningSide:
			front = append(front, fp)
			back = append(back, bp)
		}
	}
	if len(front) > 0 {
		if n.Front == nil {
			n.Front = &Node{}
		}
		n.Front.build(front, depth+1)
	}
	if len(back) > 0 {
		if n.Back == nil {
			n.Back = &Node{}
		}
		n.Back.build(back, depth+1)
	}
}

// classify determines where polygon p sits relative to plane, splitting
// it into front/back fragments when it spans the plane.
func classify(plane Plane, p Polygon) (planeSide, Polygon, Polygon) {
	const (
		onPlane = 0
		inFront = 1
		inBack  = 2
	)
	types := make([]int, len(p.Vertices))
	var numFront, numBack int
	for i, v := range p.Vertices {
		d := plane.Distance(v.Position)
		switch {
		case d > ClassificationEpsilon:
			types[i] = inFront
			numFront++
		case d < -ClassificationEpsilon:
			types[i] = inBack
			numBack++
		default:
			types[i] = onPlane
		}
	}

	if numFront == 0 && numBack == 0 {
		return coplanarSide, Polygon{}, Polygon{}
	}
	if numBack == 0 {
		return frontSide, Polygon{}, Polygon{}
	}
	if numFront == 0 {
		return backSide, Polygon{}, Polygon{}
	}

	// Spanning: walk the ring, emitting each vertex to the matching
	// output(s) and splitting every front/back edge at its parametric
	// plane intersection.
	var frontVerts, backVerts []mesh.Vertex
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		ti, tj := types[i], types[j]
		vi, vj := p.Vertices[i], p.Vertices[j]

		if ti != inBack {
			frontVerts = append(frontVerts, vi)
		}
		if ti != inFront {
			backVerts = append(backVerts, vi)
		}
		if (ti == inFront && tj == inBack) || (ti == inBack && tj == inFront) {
			di := plane.Distance(vi.Position)
			dj := plane.Distance(vj.Position)
			t := di / (di - dj)
			mid := mesh.Vertex{
				Position: vi.Position.Lerp(vj.Position, t),
				Normal:   vi.Normal.Lerp(vj.Normal, t).Normalize(),
			}
			frontVerts = append(frontVerts, mid)
			backVerts = append(backVerts, mid)
		}
	}

	front := Polygon{Vertices: frontVerts, Plane: p.Plane, SourceMeshID: p.SourceMeshID, SourceArea: p.SourceArea}
	back := Polygon{Vertices: backVerts, Plane: p.Plane, SourceMeshID: p.SourceMeshID, SourceArea: p.SourceArea}
	return spanningSide, front, back
}

// AllPolygons returns every polygon stored in the tree, depth-first.
func (n *Node) AllPolygons() []Polygon {
	if n == nil {
		return nil
	}
	out := append([]Polygon(nil), n.Coplanar...)
	out = append(out, n.Front.AllPolygons()...)
	out = append(out, n.Back.AllPolygons()...)
	return out
}

// Invert flips winding/normals of every stored polygon, negates every
// plane, and swaps Front/Back recursively, producing the complement
// solid's tree.
func (n *Node) Invert() {
	if n == nil {
		return
	}
	for i := range n.Coplanar {
		n.Coplanar[i] = n.Coplanar[i].Flip()
	}
	if n.Plane != nil {
		flipped := n.Plane.Flip()
		n.Plane = &flipped
	}
	n.Front.Invert()
	n.Back.Invert()
	n.Front, n.Back = n.Back, n.Front
}

// ClipPolygons partitions polys against n, keeping the subset outside the
// solid n represents. When frontOnly is true, polygons coplanar with a
// node's plane are discarded outright rather than bucketed by alignment,
// which is how union suppresses interior coincident faces (spec
// §4.4.1's clip_polygons_front_only).
func (n *Node) ClipPolygons(polys []Polygon, frontOnly bool) []Polygon {
	if n == nil || n.Plane == nil {
		return append([]Polygon(nil), polys...)
	}
	var front, back []Polygon
	for _, p := range polys {
		side, fp, bp := classify(*n.Plane, p)
		switch side {
		case coplanarSide:
			if frontOnly {
				continue
			}
			if n.Plane.Normal.Dot(p.Plane.Normal) > 0 {
				front = append(front, p)
			} else {
				back = append(back, p)
			}
		case frontSide:
			front = append(front, p)
		case backSide:
			back = append(back, p)
		case spanningSide:
			front = append(front, fp)
			back = append(back, bp)
		}
	}
	if n.Front != nil {
		front = n.Front.ClipPolygons(front, frontOnly)
	}
	if n.Back != nil {
		back = n.Back.ClipPolygons(back, frontOnly)
	} else {
		back = nil
	}
	return append(front, back...)
}

// ClipTo replaces n's own stored polygons (and those of every descendant)
// with their clip against other, in place.
func (n *Node) ClipTo(other *Node) {
	if n == nil {
		return
	}
	n.Coplanar = other.ClipPolygons(n.Coplanar, false)
	n.Front.ClipTo(other)
	n.Back.ClipTo(other)
}
