// Package kernel is the top-level entry point: it pairs a CSG tree with its
// run-time configuration and an incremental evaluator, exposing render,
// edit, and cache-introspection operations.
package kernel

import (
	"context"
	"log/slog"

	"github.com/polyframe-ai/csgkernel/ast"
	"github.com/polyframe-ai/csgkernel/boolean"
	"github.com/polyframe-ai/csgkernel/eval"
	"github.com/polyframe-ai/csgkernel/mesh"
)

// Config is the kernel's run-time configuration.
type Config struct {
	// BoolQuality selects Fast or Robust for every boolean operation the
	// kernel evaluates. Defaults to Robust.
	BoolQuality boolean.Quality

	// BSPMaxDepth bounds BSP recursion depth. Defaults to 50.
	//
	// Not currently threaded through to the bsp package, which uses a
	// fixed internal constant of the same default value; see DESIGN.md.
	BSPMaxDepth int

	// CoplanarNormalThreshold is the minimum normal-direction cosine for
	// two polygons to be considered for coplanar dedup. Defaults to 0.95.
	//
	// Not currently threaded through to boolean.DedupCoplanar, which uses
	// a fixed internal constant of the same default value; see DESIGN.md.
	CoplanarNormalThreshold float64

	// CoplanarAreaThreshold is the minimum area-ratio for two overlapping
	// coplanar polygons to be treated as duplicates. Defaults to 0.90.
	//
	// Not currently threaded through to boolean.DedupCoplanar, which
	// decides duplication by footprint overlap rather than area ratio;
	// see DESIGN.md.
	CoplanarAreaThreshold float64

	// WindingRayEpsilon is the ray-origin tolerance the winding engine
	// uses to treat a hit as lying on the surface. Defaults to 1e-9.
	//
	// Not currently threaded through to the robust boolean path, which
	// uses a fixed internal constant of the same default value; see
	// DESIGN.md.
	WindingRayEpsilon float64

	// ClassificationEpsilon is the BSP plane-distance tolerance for
	// coplanar/front/back classification. Defaults to 1e-5.
	//
	// Not currently threaded through to the bsp package; see DESIGN.md.
	ClassificationEpsilon float64

	// Parallel selects the parallel executor over the incremental
	// evaluator for Render. Defaults to false.
	Parallel bool

	// MaxConcurrency bounds the parallel executor's fan-out when Parallel
	// is set. Defaults to 4.
	MaxConcurrency int64
}

// DefaultConfig returns the kernel's documented default configuration.
func DefaultConfig() Config {
	return Config{
		BoolQuality:             boolean.Robust,
		BSPMaxDepth:             50,
		CoplanarNormalThreshold: 0.95,
		CoplanarAreaThreshold:   0.90,
		WindingRayEpsilon:       1e-9,
		ClassificationEpsilon:   1e-5,
		Parallel:                false,
		MaxConcurrency:          4,
	}
}

// Option configures a Kernel at construction.
type Option func(*Kernel)

// WithLogger overrides the kernel's structured logger, which otherwise
// defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) { k.log = l }
}

// Kernel holds a CSG tree, its run-time configuration, and the incremental
// evaluator tracking its cached subtree results.
type Kernel struct {
	cfg  Config
	log  *slog.Logger
	root *ast.Node
	incr *eval.IncrementalEvaluator
}

// New builds a Kernel over root with cfg, applying opts.
func New(root *ast.Node, cfg Config, opts ...Option) *Kernel {
	k := &Kernel{cfg: cfg, log: slog.Default(), root: root}
	for _, opt := range opts {
		opt(k)
	}
	k.incr = eval.NewIncrementalEvaluator(root, eval.Options{Quality: cfg.BoolQuality})
	return k
}

// Render evaluates the current tree. When cfg.Parallel is set it uses the
// parallel executor (no incremental caching); otherwise it uses the
// incremental evaluator, reusing any unaffected cached subtrees.
func (k *Kernel) Render(ctx context.Context) (*mesh.Mesh, error) {
	if k.cfg.Parallel {
		k.log.Debug("kernel render", "mode", "parallel")
		return eval.ParallelEvaluate(ctx, k.root, eval.ParallelOptions{
			Options:        eval.Options{Quality: k.cfg.BoolQuality},
			MaxConcurrency: k.cfg.MaxConcurrency,
		})
	}
	k.log.Debug("kernel render", "mode", "incremental")
	return k.incr.Render()
}

// SetAST replaces the kernel's whole tree and discards the incremental
// cache, since nothing in the new tree can be assumed to match the old
// tree's node identities.
func (k *Kernel) SetAST(root *ast.Node) {
	k.root = root
	k.incr = eval.NewIncrementalEvaluator(root, eval.Options{Quality: k.cfg.BoolQuality})
	k.log.Debug("kernel set_ast", "kind", root.Kind.String())
}

// UpdateSubtree replaces the identified node id with replacement in place,
// invalidating id's cached result and its identified ancestors'.
func (k *Kernel) UpdateSubtree(id string, replacement *ast.Node) error {
	k.log.Debug("kernel update_subtree", "id", id)
	return k.incr.UpdateSubtree(id, replacement)
}

// Invalidate drops the cached result for id and its identified ancestors
// without altering the tree, for callers that mutate a node's fields
// directly rather than swapping it via UpdateSubtree. An unknown id is a
// silent no-op.
func (k *Kernel) Invalidate(id string) error {
	return k.incr.Invalidate(id)
}

// CacheStats reports the incremental evaluator's current cache occupancy
// (cached entry count against the tree's total identified-node count)
// alongside cumulative hit/miss counts.
func (k *Kernel) CacheStats() eval.CacheStats {
	return k.incr.CacheStats()
}
