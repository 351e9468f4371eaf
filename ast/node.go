// Package ast defines the CSG expression tree: the Node sum type, its
// TransformOp variants, and the conversion of a TransformOp to a 4x4
// matrix.
package ast

import (
	"github.com/polyframe-ai/csgkernel/transform"
	"github.com/polyframe-ai/csgkernel/vec3"
)

// Kind tags the variant carried by a Node.
type Kind int

const (
	KindEmpty Kind = iota
	KindCube
	KindSphere
	KindCylinder
	KindCone
	KindUnion
	KindDifference
	KindIntersection
	KindTransform
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindCube:
		return "Cube"
	case KindSphere:
		return "Sphere"
	case KindCylinder:
		return "Cylinder"
	case KindCone:
		return "Cone"
	case KindUnion:
		return "Union"
	case KindDifference:
		return "Difference"
	case KindIntersection:
		return "Intersection"
	case KindTransform:
		return "Transform"
	default:
		return "Unknown"
	}
}

// CubeParams carries Cube{size, center} parameters.
type CubeParams struct {
	Size   vec3.Vec
	Center bool
}

// SphereParams carries Sphere{r, fn_} parameters.
type SphereParams struct {
	R  float64
	Fn int
}

// CylinderParams carries Cylinder{h, r, fn_} parameters.
type CylinderParams struct {
	H  float64
	R  float64
	Fn int
}

// ConeParams carries Cone{h, r1, r2, fn_} parameters.
type ConeParams struct {
	H, R1, R2 float64
	Fn        int
}

// TransformOpKind tags a TransformOp variant.
type TransformOpKind int

const (
	OpTranslate TransformOpKind = iota
	OpRotate
	OpScale
	OpMirror
	OpMultmatrix
)

// TransformOp is one of Translate(v), Rotate(euler-degrees v, Z.Y.X),
// Scale(v), Mirror(axis-mask v), Multmatrix(m).
type TransformOp struct {
	Kind   TransformOpKind
	V      vec3.Vec  // Translate/Rotate/Scale/Mirror operand
	Matrix [16]float64 // Multmatrix operand, row-major
}

// ToMatrix converts the op to a 4x4 matrix per spec §4.3.
func (op TransformOp) ToMatrix() transform.Matrix {
	switch op.Kind {
	case OpTranslate:
		return transform.Translate(op.V)
	case OpRotate:
		return transform.Rotate(op.V)
	case OpScale:
		return transform.Scale(op.V)
	case OpMirror:
		return transform.Mirror(op.V)
	case OpMultmatrix:
		return transform.FromRowMajor16(op.Matrix)
	default:
		return transform.Identity()
	}
}

// Node is a tagged CSG expression, optionally carrying a stable identity
// string for caching and dependency tracking. Nodes without an identity
// are transparent to the dependency graph.
type Node struct {
	Kind Kind
	ID   string // optional stable identity

	Cube     CubeParams
	Sphere   SphereParams
	Cylinder CylinderParams
	Cone     ConeParams

	Op TransformOp // valid when Kind == KindTransform

	Children []*Node // Union/Difference/Intersection/Transform
}

// Identified reports whether the node carries a stable identity.
func (n *Node) Identified() bool {
	return n != nil && n.ID != ""
}

// Empty returns the Empty node.
func Empty() *Node { return &Node{Kind: KindEmpty} }

// Cube returns a Cube node.
func Cube(size vec3.Vec, center bool) *Node {
	return &Node{Kind: KindCube, Cube: CubeParams{Size: size, Center: center}}
}

// Sphere returns a Sphere node.
func Sphere(r float64, fn int) *Node {
	return &Node{Kind: KindSphere, Sphere: SphereParams{R: r, Fn: fn}}
}

// Cylinder returns a Cylinder node.
func Cylinder(h, r float64, fn int) *Node {
	return &Node{Kind: KindCylinder, Cylinder: CylinderParams{H: h, R: r, Fn: fn}}
}

// Cone returns a Cone node.
func Cone(h, r1, r2 float64, fn int) *Node {
	return &Node{Kind: KindCone, Cone: ConeParams{H: h, R1: r1, R2: r2, Fn: fn}}
}

// Union returns a Union node over children.
func Union(children ...*Node) *Node { return &Node{Kind: KindUnion, Children: children} }

// Difference returns a Difference node over children.
func Difference(children ...*Node) *Node { return &Node{Kind: KindDifference, Children: children} }

// Intersection returns an Intersection node over children.
func Intersection(children ...*Node) *Node {
	return &Node{Kind: KindIntersection, Children: children}
}

// Transform returns a Transform node applying op to children.
func Transform(op TransformOp, children ...*Node) *Node {
	return &Node{Kind: KindTransform, Op: op, Children: children}
}

// WithID sets the node's stable identity and returns the same node.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}
