// Package primitive generates deterministic, closed triangle meshes for
// the kernel's four parametric solids: cube, sphere, cylinder, and cone.
package primitive

import (
	"fmt"
	"math"

	"github.com/polyframe-ai/csgkernel/kernelerr"
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/vec3"
)

// defaultFacets is used whenever a curved primitive's facet count is zero.
const defaultFacets = 32

func resolveFacets(fn int) int {
	if fn == 0 {
		return defaultFacets
	}
	return fn
}

func validateFinite(name string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return kernelerr.Wrapf(kernelerr.ErrInvalidMeshInput, "%s: non-finite dimension", name)
		}
	}
	return nil
}

// Cube generates 8 canonical corners across 6 faces, each face split into
// 2 triangles with duplicated corner vertices so every face carries a
// distinct hard normal.
func Cube(size vec3.Vec, center bool) (*mesh.Mesh, error) {
	if err := validateFinite("cube", size.X, size.Y, size.Z); err != nil {
		return nil, err
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, kernelerr.Wrapf(kernelerr.ErrInvalidMeshInput, "cube: size must be positive, got %v", size)
	}

	var origin vec3.Vec
	if center {
		origin = vec3.Vec{X: -size.X / 2, Y: -size.Y / 2, Z: -size.Z / 2}
	}

	corner := func(x, y, z float64) vec3.Vec {
		return vec3.Vec{X: origin.X + x*size.X, Y: origin.Y + y*size.Y, Z: origin.Z + z*size.Z}
	}

	// Each face: 4 corners in CCW order as seen from outside, plus outward normal.
	type face struct {
		corners [4]vec3.Vec
		normal  vec3.Vec
	}
	faces := []face{
		{[4]vec3.Vec{corner(0, 0, 0), corner(0, 1, 0), corner(1, 1, 0), corner(1, 0, 0)}, vec3.Vec{Z: -1}}, // bottom
		{[4]vec3.Vec{corner(0, 0, 1), corner(1, 0, 1), corner(1, 1, 1), corner(0, 1, 1)}, vec3.Vec{Z: 1}},  // top
		{[4]vec3.Vec{corner(0, 0, 0), corner(1, 0, 0), corner(1, 0, 1), corner(0, 0, 1)}, vec3.Vec{Y: -1}}, // front
		{[4]vec3.Vec{corner(0, 1, 0), corner(0, 1, 1), corner(1, 1, 1), corner(1, 1, 0)}, vec3.Vec{Y: 1}},  // back
		{[4]vec3.Vec{corner(0, 0, 0), corner(0, 0, 1), corner(0, 1, 1), corner(0, 1, 0)}, vec3.Vec{X: -1}}, // left
		{[4]vec3.Vec{corner(1, 0, 0), corner(1, 1, 0), corner(1, 1, 1), corner(1, 0, 1)}, vec3.Vec{X: 1}},  // right
	}

	// Every triangle gets its own vertices, duplicated even within a face
	// (not just across faces), so each of the 6 faces contributes 6
	// vertices and 2 triangles: 36 vertices, 12 triangles total.
	m := mesh.New()
	addTri := func(p0, p1, p2 vec3.Vec, n vec3.Vec) {
		i0 := m.AddVertex(mesh.Vertex{Position: p0, Normal: n})
		i1 := m.AddVertex(mesh.Vertex{Position: p1, Normal: n})
		i2 := m.AddVertex(mesh.Vertex{Position: p2, Normal: n})
		m.AddTriangle(i0, i1, i2)
	}
	for _, f := range faces {
		addTri(f.corners[0], f.corners[1], f.corners[2], f.normal)
		addTri(f.corners[0], f.corners[2], f.corners[3], f.normal)
	}
	return m, nil
}

// Sphere generates a UV-tessellated sphere with fn stacks and fn slices
// (defaulting to 32 when fn is zero). Poles collapse to real vertices, not
// zero-area triangle fans. Vertex normals equal the normalized position.
func Sphere(r float64, fn int) (*mesh.Mesh, error) {
	if err := validateFinite("sphere", r); err != nil {
		return nil, err
	}
	if r <= 0 {
		return nil, kernelerr.Wrapf(kernelerr.ErrInvalidMeshInput, "sphere: radius must be positive, got %v", r)
	}
	facets := resolveFacets(fn)
	if facets < 3 {
		return nil, fmt.Errorf("sphere: facet count %d below minimum 3: %w", facets, kernelerr.ErrInvalidMeshInput)
	}

	stacks, slices := facets, facets
	m := mesh.New()

	// ring[i][j] holds the vertex index at stack i, slice j (0 <= i <= stacks).
	ring := make([][]int, stacks+1)
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks) // 0 at north pole, pi at south
		y := math.Cos(phi)
		rad := math.Sin(phi)
		if i == 0 || i == stacks {
			p := vec3.Vec{X: 0, Y: y * r, Z: 0}
			n := vec3.Vec{X: 0, Y: y, Z: 0}
			idx := m.AddVertex(mesh.Vertex{Position: p, Normal: n})
			ring[i] = []int{idx}
			continue
		}
		row := make([]int, slices)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			x := rad * math.Cos(theta)
			z := rad * math.Sin(theta)
			n := vec3.Vec{X: x, Y: y, Z: z}
			row[j] = m.AddVertex(mesh.Vertex{Position: n.Scale(r), Normal: n})
		}
		ring[i] = row
	}

	for i := 0; i < stacks; i++ {
		top := ring[i]
		bot := ring[i+1]
		switch {
		case i == 0:
			// top is the single north-pole vertex; fan to the first real ring.
			pole := top[0]
			for j := 0; j < slices; j++ {
				jn := (j + 1) % slices
				m.AddTriangle(pole, bot[jn], bot[j])
			}
		case i == stacks-1:
			// bot is the single south-pole vertex; fan from the last real ring.
			pole := bot[0]
			for j := 0; j < slices; j++ {
				jn := (j + 1) % slices
				m.AddTriangle(top[jn], pole, top[j])
			}
		default:
			for j := 0; j < slices; j++ {
				jn := (j + 1) % slices
				m.AddTriangle(top[j], bot[jn], bot[j])
				m.AddTriangle(top[j], top[jn], bot[jn])
			}
		}
	}
	return m, nil
}

// Cylinder generates a cylinder of height h and radius r as a cone with
// equal radii.
func Cylinder(h, r float64, fn int) (*mesh.Mesh, error) {
	return cylinderOrCone(h, r, r, fn)
}

// Cone generates a cone of height h from radius r1 (bottom, z=0) to radius
// r2 (top, z=h); r2 may be zero (a true point apex) but not both radii.
func Cone(h, r1, r2 float64, fn int) (*mesh.Mesh, error) {
	return cylinderOrCone(h, r1, r2, fn)
}

// cylinderOrCone builds the shared topology for Cylinder/Cone: one vertex
// each for the bottom/top cap centers, then two vertex rings generated
// twice at each circumference level — once with axial normals for the cap
// triangles, once with flank-derived side normals for the side triangles —
// which doubles the circle vertex count but preserves sharp edges between
// cap and side.
func cylinderOrCone(h, r1, r2 float64, fn int) (*mesh.Mesh, error) {
	if err := validateFinite("cylinder/cone", h, r1, r2); err != nil {
		return nil, err
	}
	if h <= 0 {
		return nil, kernelerr.Wrapf(kernelerr.ErrInvalidMeshInput, "cylinder/cone: height must be positive, got %v", h)
	}
	if r1 < 0 || r2 < 0 || (r1 == 0 && r2 == 0) {
		return nil, kernelerr.Wrapf(kernelerr.ErrInvalidMeshInput, "cylinder/cone: radii must be non-negative and not both zero")
	}
	slices := resolveFacets(fn)
	if slices < 3 {
		return nil, fmt.Errorf("cylinder/cone: facet count %d below minimum 3: %w", slices, kernelerr.ErrInvalidMeshInput)
	}

	m := mesh.New()
	bottomCenter := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: 0}, Normal: vec3.Vec{Z: -1}})
	topCenter := m.AddVertex(mesh.Vertex{Position: vec3.Vec{X: 0, Y: 0, Z: h}, Normal: vec3.Vec{Z: 1}})

	// Side-normal slope: the flank makes angle atan((r1-r2)/h) with the
	// vertical, tilting the outward normal accordingly.
	slope := math.Atan2(r1-r2, h)
	sinSlope, cosSlope := math.Sin(slope), math.Cos(slope)

	bottomCap := make([]int, slices)
	topCap := make([]int, slices)
	bottomSide := make([]int, slices)
	topSide := make([]int, slices)

	for j := 0; j < slices; j++ {
		theta := 2 * math.Pi * float64(j) / float64(slices)
		c, s := math.Cos(theta), math.Sin(theta)

		bp := vec3.Vec{X: r1 * c, Y: r1 * s, Z: 0}
		tp := vec3.Vec{X: r2 * c, Y: r2 * s, Z: h}

		bottomCap[j] = m.AddVertex(mesh.Vertex{Position: bp, Normal: vec3.Vec{Z: -1}})
		topCap[j] = m.AddVertex(mesh.Vertex{Position: tp, Normal: vec3.Vec{Z: 1}})

		sideNormal := vec3.Vec{X: c * cosSlope, Y: s * cosSlope, Z: sinSlope}
		bottomSide[j] = m.AddVertex(mesh.Vertex{Position: bp, Normal: sideNormal})
		topSide[j] = m.AddVertex(mesh.Vertex{Position: tp, Normal: sideNormal})
	}

	if r1 > 0 {
		for j := 0; j < slices; j++ {
			jn := (j + 1) % slices
			m.AddTriangle(bottomCenter, bottomCap[jn], bottomCap[j])
		}
	}
	if r2 > 0 {
		for j := 0; j < slices; j++ {
			jn := (j + 1) % slices
			m.AddTriangle(topCenter, topCap[j], topCap[jn])
		}
	}
	for j := 0; j < slices; j++ {
		jn := (j + 1) % slices
		if r1 > 0 && r2 > 0 {
			m.AddTriangle(bottomSide[j], bottomSide[jn], topSide[jn])
			m.AddTriangle(bottomSide[j], topSide[jn], topSide[j])
		} else if r2 == 0 {
			// true apex at top: single triangle per slice to topSide[j] (shared apex position).
			m.AddTriangle(bottomSide[j], bottomSide[jn], topSide[j])
		} else {
			m.AddTriangle(bottomSide[j], topSide[jn], topSide[j])
		}
	}
	return m, nil
}
