// Package eval walks a CSG expression tree and produces a mesh: a plain
// recursive evaluator, an incremental variant that memoizes identified
// subtrees against a dependency graph, and a parallel executor that fans
// sibling subtrees out across a worker pool.
package eval

import (
	"fmt"

	"github.com/polyframe-ai/csgkernel/ast"
	"github.com/polyframe-ai/csgkernel/boolean"
	"github.com/polyframe-ai/csgkernel/kernelerr"
	"github.com/polyframe-ai/csgkernel/mesh"
	"github.com/polyframe-ai/csgkernel/primitive"
)

// Options controls tree evaluation.
type Options struct {
	// Quality selects the boolean engine's path (boolean.Auto picks per
	// operation from the operands' curvature).
	Quality boolean.Quality
}

// childEval recursively evaluates a child node; Evaluate passes itself,
// IncrementalEvaluator passes its cache-checking method.
type childEval func(*ast.Node) (*mesh.Mesh, error)

// Evaluate walks n serially and returns the resulting mesh.
func Evaluate(n *ast.Node, opts Options) (*mesh.Mesh, error) {
	var eval childEval
	eval = func(n *ast.Node) (*mesh.Mesh, error) { return evalNode(n, opts, eval) }
	return eval(n)
}

// evalNode dispatches on n.Kind, using next to recurse into children. Both
// Evaluate and IncrementalEvaluator share this dispatch; they differ only
// in what next does for an identified child.
func evalNode(n *ast.Node, opts Options, next childEval) (*mesh.Mesh, error) {
	if n == nil {
		return mesh.New(), nil
	}
	switch n.Kind {
	case ast.KindEmpty:
		return mesh.New(), nil
	case ast.KindCube:
		return primitive.Cube(n.Cube.Size, n.Cube.Center)
	case ast.KindSphere:
		return primitive.Sphere(n.Sphere.R, n.Sphere.Fn)
	case ast.KindCylinder:
		return primitive.Cylinder(n.Cylinder.H, n.Cylinder.R, n.Cylinder.Fn)
	case ast.KindCone:
		return primitive.Cone(n.Cone.H, n.Cone.R1, n.Cone.R2, n.Cone.Fn)
	case ast.KindUnion:
		return foldBoolean(n, opts, next, boolean.Union)
	case ast.KindDifference:
		return foldBoolean(n, opts, next, boolean.Difference)
	case ast.KindIntersection:
		if len(n.Children) == 0 {
			return nil, kernelerr.Wrap("intersection: no children", kernelerr.ErrEmptyOperand)
		}
		return foldBoolean(n, opts, next, boolean.Intersection)
	case ast.KindTransform:
		return evalTransform(n, opts, next)
	default:
		return nil, fmt.Errorf("eval: unknown node kind %v", n.Kind)
	}
}

// foldBoolean evaluates n's children via next and left-folds them through
// op. An n-ary boolean node folds in source order, so e.g. a 3-child
// Difference node computes (child0 - child1) - child2.
func foldBoolean(n *ast.Node, opts Options, next childEval, op boolean.Op) (*mesh.Mesh, error) {
	if len(n.Children) == 0 {
		return mesh.New(), nil
	}
	acc, err := next(n.Children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range n.Children[1:] {
		m, err := next(c)
		if err != nil {
			return nil, err
		}
		acc, err = boolean.Evaluate(acc, m, op, opts.Quality)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// evalTransform unions n's children (typically exactly one) then applies
// n.Op's matrix to positions and its normal-matrix to normals.
func evalTransform(n *ast.Node, opts Options, next childEval) (*mesh.Mesh, error) {
	var child *mesh.Mesh
	var err error
	if len(n.Children) == 0 {
		child = mesh.New()
	} else {
		child, err = next(n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, c := range n.Children[1:] {
			m, err := next(c)
			if err != nil {
				return nil, err
			}
			child, err = boolean.Evaluate(child, m, boolean.Union, opts.Quality)
			if err != nil {
				return nil, err
			}
		}
	}
	matrix := n.Op.ToMatrix()
	normalMatrix := matrix.NormalMatrix()
	return child.Transform(matrix.ApplyPoint, normalMatrix.ApplyDirection), nil
}
