package boolean

import (
	"math"
	"sort"

	"github.com/polyframe-ai/csgkernel/bsp"
	"github.com/polyframe-ai/csgkernel/vec3"
)

const (
	// normalAlignmentCosine is the minimum normal-direction cosine for two
	// polygons to be considered candidates for the same supporting plane.
	normalAlignmentCosine = 0.95

	// coplanarOffsetEpsilon bounds how far a candidate's reference vertex
	// may sit off a group's plane and still be treated as coplanar.
	coplanarOffsetEpsilon = 1e-6

	// barycentricEpsilon is the 2D point-in-polygon tolerance used to
	// decide whether one polygon's footprint covers another's centroid.
	barycentricEpsilon = 1e-5

	// vertexCoincidenceEpsilon is the 2D distance below which two
	// projected vertices are treated as the same point, the fallback
	// overlap test for polygons too small for the centroid test to be
	// reliable.
	vertexCoincidenceEpsilon = 1e-5
)

// DedupCoplanar removes polygons whose footprint duplicates another
// polygon's on the same supporting plane, per the kernel's coplanar-face
// dedup pass: polygons are grouped by normal alignment and plane offset,
// then within each group the lower-priority duplicate of an overlapping
// pair is dropped. Priority is lower source mesh ID, then larger area, then
// first-encounter order.
func DedupCoplanar(polys []bsp.Polygon) []bsp.Polygon {
	removed := make([]bool, len(polys))
	for _, idxs := range groupByPlane(polys) {
		dedupGroup(polys, idxs, removed)
	}
	out := make([]bsp.Polygon, 0, len(polys))
	for i, p := range polys {
		if !removed[i] {
			out = append(out, p)
		}
	}
	return out
}

type planeGroup struct {
	normal  vec3.Vec
	point   vec3.Vec
	indices []int
}

// groupByPlane buckets polygon indices by approximate shared supporting
// plane: same-facing normal (cosine above normalAlignmentCosine) and a
// reference vertex within coplanarOffsetEpsilon of the group's plane.
func groupByPlane(polys []bsp.Polygon) [][]int {
	var groups []planeGroup
	for i, p := range polys {
		if len(p.Vertices) == 0 {
			continue
		}
		matched := -1
		for gi := range groups {
			g := &groups[gi]
			if p.Plane.Normal.Dot(g.normal) < normalAlignmentCosine {
				continue
			}
			dist := g.normal.Dot(p.Vertices[0].Position) - g.normal.Dot(g.point)
			if math.Abs(dist) < coplanarOffsetEpsilon {
				matched = gi
				break
			}
		}
		if matched == -1 {
			groups = append(groups, planeGroup{normal: p.Plane.Normal, point: p.Vertices[0].Position, indices: []int{i}})
		} else {
			groups[matched].indices = append(groups[matched].indices, i)
		}
	}
	out := make([][]int, len(groups))
	for i, g := range groups {
		out[i] = g.indices
	}
	return out
}

// dominantAxis returns the index (0=X, 1=Y, 2=Z) to drop when projecting
// onto the 2D plane most aligned with normal.
func dominantAxis(normal vec3.Vec) int {
	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= ax && ay >= az:
		return 1
	default:
		return 2
	}
}

func project2D(p vec3.Vec, drop int) [2]float64 {
	switch drop {
	case 0:
		return [2]float64{p.Y, p.Z}
	case 1:
		return [2]float64{p.X, p.Z}
	default:
		return [2]float64{p.X, p.Y}
	}
}

type projectedPolygon struct {
	idx      int
	verts2D  [][2]float64
	centroid [2]float64
	area     float64
}

func projectPolygon(p bsp.Polygon, idx, drop int) projectedPolygon {
	verts := make([][2]float64, len(p.Vertices))
	var cx, cy float64
	for i, v := range p.Vertices {
		pv := project2D(v.Position, drop)
		verts[i] = pv
		cx += pv[0]
		cy += pv[1]
	}
	n := float64(len(verts))
	pp := projectedPolygon{idx: idx, verts2D: verts, centroid: [2]float64{cx / n, cy / n}, area: shoelaceArea(verts)}
	return pp
}

func shoelaceArea(v [][2]float64) float64 {
	sum := 0.0
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += v[i][0]*v[j][1] - v[j][0]*v[i][1]
	}
	return math.Abs(sum) / 2
}

// pointInPolygon2D is a crossing-number test with barycentricEpsilon slack
// on the boundary.
func pointInPolygon2D(p [2]float64, poly [][2]float64) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i][0], poly[i][1]
		xj, yj := poly[j][0], poly[j][1]
		if math.Abs(p[0]-xi) < barycentricEpsilon && math.Abs(p[1]-yi) < barycentricEpsilon {
			return true
		}
		if (yi > p[1]) != (yj > p[1]) {
			xIntersect := xi + (p[1]-yi)/(yj-yi)*(xj-xi)
			if p[0] < xIntersect+barycentricEpsilon {
				inside = !inside
			}
		}
	}
	return inside
}

// verticesCoincide reports whether every vertex of a has a matching vertex
// in b within vertexCoincidenceEpsilon, the fallback test for polygons
// whose centroid-in-polygon test is unreliable (slivers, shared edges).
func verticesCoincide(a, b [][2]float64) bool {
	for _, pa := range a {
		matched := false
		for _, pb := range b {
			dx, dy := pa[0]-pb[0], pa[1]-pb[1]
			if dx*dx+dy*dy < vertexCoincidenceEpsilon*vertexCoincidenceEpsilon {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func overlaps(a, b projectedPolygon) bool {
	if pointInPolygon2D(a.centroid, b.verts2D) || pointInPolygon2D(b.centroid, a.verts2D) {
		return true
	}
	return verticesCoincide(a.verts2D, b.verts2D) || verticesCoincide(b.verts2D, a.verts2D)
}

func dedupGroup(polys []bsp.Polygon, idxs []int, removed []bool) {
	if len(idxs) < 2 {
		return
	}
	drop := dominantAxis(polys[idxs[0]].Plane.Normal)
	projected := make([]projectedPolygon, len(idxs))
	for k, i := range idxs {
		projected[k] = projectPolygon(polys[i], i, drop)
	}

	sort.SliceStable(projected, func(x, y int) bool {
		px, py := polys[projected[x].idx], polys[projected[y].idx]
		if px.SourceMeshID != py.SourceMeshID {
			return px.SourceMeshID < py.SourceMeshID
		}
		if projected[x].area != projected[y].area {
			return projected[x].area > projected[y].area
		}
		return projected[x].idx < projected[y].idx
	})

	for a := 0; a < len(projected); a++ {
		if removed[projected[a].idx] {
			continue
		}
		for b := a + 1; b < len(projected); b++ {
			if removed[projected[b].idx] {
				continue
			}
			if overlaps(projected[a], projected[b]) {
				removed[projected[b].idx] = true
			}
		}
	}
}
