package eval

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/polyframe-ai/csgkernel/ast"
	"github.com/polyframe-ai/csgkernel/boolean"
	"github.com/polyframe-ai/csgkernel/mesh"
)

// defaultConcurrency bounds fan-out when ParallelOptions.MaxConcurrency is
// left at zero.
const defaultConcurrency = 4

// ParallelOptions extends Options with a concurrency cap for evaluating
// sibling subtrees.
type ParallelOptions struct {
	Options
	MaxConcurrency int64
}

// ParallelEvaluate walks n like Evaluate, but a boolean or transform node's
// children are evaluated concurrently (bounded by a weighted semaphore)
// before being folded together serially in source order. Folding stays
// serial and ordered because difference and (after dedup) union are not
// commutative in general; fan-out buys concurrent descent into independent
// subtrees, not a different combination order.
func ParallelEvaluate(ctx context.Context, n *ast.Node, opts ParallelOptions) (*mesh.Mesh, error) {
	if n == nil {
		return mesh.New(), nil
	}
	switch n.Kind {
	case ast.KindUnion, ast.KindDifference, ast.KindIntersection, ast.KindTransform:
		if len(n.Children) == 0 {
			return evalNode(n, opts.Options, func(*ast.Node) (*mesh.Mesh, error) { return mesh.New(), nil })
		}
		results, err := evalChildrenParallel(ctx, n.Children, opts)
		if err != nil {
			return nil, err
		}
		return foldResults(n, results, opts.Options)
	default:
		return Evaluate(n, opts.Options)
	}
}

func evalChildrenParallel(ctx context.Context, children []*ast.Node, opts ParallelOptions) ([]*mesh.Mesh, error) {
	results := make([]*mesh.Mesh, len(children))
	sem := semaphore.NewWeighted(concurrencyLimit(opts.MaxConcurrency))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			m, err := ParallelEvaluate(gctx, c, opts)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func concurrencyLimit(n int64) int64 {
	if n <= 0 {
		return defaultConcurrency
	}
	return n
}

// foldResults combines a node's already-evaluated children per its kind,
// mirroring foldBoolean/evalTransform but over precomputed results rather
// than a recursive childEval.
func foldResults(n *ast.Node, results []*mesh.Mesh, opts Options) (*mesh.Mesh, error) {
	if n.Kind == ast.KindTransform {
		acc := results[0]
		var err error
		for _, r := range results[1:] {
			acc, err = boolean.Evaluate(acc, r, boolean.Union, opts.Quality)
			if err != nil {
				return nil, err
			}
		}
		matrix := n.Op.ToMatrix()
		normalMatrix := matrix.NormalMatrix()
		return acc.Transform(matrix.ApplyPoint, normalMatrix.ApplyDirection), nil
	}

	var op boolean.Op
	switch n.Kind {
	case ast.KindUnion:
		op = boolean.Union
	case ast.KindDifference:
		op = boolean.Difference
	case ast.KindIntersection:
		op = boolean.Intersection
	}
	acc := results[0]
	var err error
	for _, r := range results[1:] {
		acc, err = boolean.Evaluate(acc, r, op, opts.Quality)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
