package eval

import (
	"sync"

	"github.com/polyframe-ai/csgkernel/ast"
	"github.com/polyframe-ai/csgkernel/dep"
	"github.com/polyframe-ai/csgkernel/kernelerr"
	"github.com/polyframe-ai/csgkernel/mesh"
)

// CacheStats reports the incremental evaluator's cache occupancy —
// CachedCount entries live against TotalIdentified nodes that could hold
// one — plus the cumulative hit/miss counts observed along the way.
type CacheStats struct {
	CachedCount     int
	TotalIdentified int
	Hits            int
	Misses          int
}

// IncrementalEvaluator re-evaluates a CSG tree while memoizing every
// identified node's resulting mesh, keyed by node ID. A call to
// UpdateSubtree invalidates that node, the identified nodes inside the
// subtree it replaces, and its identified ancestors (via the dependency
// graph), leaving sibling subtrees' cache entries intact for the next
// Render.
type IncrementalEvaluator struct {
	mu     sync.Mutex
	root   *ast.Node
	graph  *dep.Graph
	cache  map[string]*mesh.Mesh
	hits   int
	misses int
	opts   Options
}

// NewIncrementalEvaluator builds an evaluator over root.
func NewIncrementalEvaluator(root *ast.Node, opts Options) *IncrementalEvaluator {
	return &IncrementalEvaluator{
		root:  root,
		graph: dep.Build(root),
		cache: make(map[string]*mesh.Mesh),
		opts:  opts,
	}
}

// Render evaluates the whole tree, reusing any cached identified subtree's
// result instead of recomputing it.
func (e *IncrementalEvaluator) Render() (*mesh.Mesh, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var eval childEval
	eval = func(n *ast.Node) (*mesh.Mesh, error) { return e.evalCached(n, eval) }
	return eval(e.root)
}

func (e *IncrementalEvaluator) evalCached(n *ast.Node, next childEval) (*mesh.Mesh, error) {
	if n == nil {
		return mesh.New(), nil
	}
	if n.Identified() {
		if m, ok := e.cache[n.ID]; ok {
			e.hits++
			return m, nil
		}
		e.misses++
	}
	m, err := evalNode(n, e.opts, next)
	if err != nil {
		return nil, err
	}
	if n.Identified() {
		e.cache[n.ID] = m
	}
	return m, nil
}

// CacheStats returns the evaluator's current cache occupancy (how many of
// the tree's identified nodes presently have a cached result) alongside the
// cumulative hit/miss counts observed so far.
func (e *IncrementalEvaluator) CacheStats() CacheStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CacheStats{
		CachedCount:     len(e.cache),
		TotalIdentified: len(e.graph.IDs()),
		Hits:            e.hits,
		Misses:          e.misses,
	}
}

// UpdateSubtree replaces the node identified by id with replacement,
// invalidating id's cache entry and every identified ancestor's (their
// resulting mesh depends on the replaced subtree), and the identified
// descendants of the node being replaced (whose cache entries are stale
// wherever they don't recur identically in replacement). The dependency
// graph is rebuilt against the new tree shape.
func (e *IncrementalEvaluator) UpdateSubtree(id string, replacement *ast.Node) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.graph.Contains(id) {
		return kernelerr.Wrapf(kernelerr.ErrNodeIDNotFound, "update_subtree: id %q", id)
	}

	target, found := findByID(e.root, id)
	if !found {
		return kernelerr.Wrapf(kernelerr.ErrNodeIDNotFound, "update_subtree: id %q", id)
	}

	for _, staleID := range identifiedIDs(target) {
		delete(e.cache, staleID)
	}
	*target = *replacement

	ancestors, _ := e.graph.Ancestors(id)
	delete(e.cache, id)
	for _, a := range ancestors {
		delete(e.cache, a)
	}

	e.graph = dep.Build(e.root)
	return nil
}

// Invalidate drops id's cached result and every identified ancestor's,
// without altering the tree. Use this when a node's parameters were
// mutated in place (rather than swapped via UpdateSubtree) and its cached
// mesh is now stale. An unknown id is a silent no-op: unlike UpdateSubtree,
// there is no replacement tree shape to fail to apply.
func (e *IncrementalEvaluator) Invalidate(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.graph.Contains(id) {
		return nil
	}
	delete(e.cache, id)
	ancestors, _ := e.graph.Ancestors(id)
	for _, a := range ancestors {
		delete(e.cache, a)
	}
	return nil
}

// findByID locates the node with the given ID within n's subtree (root
// included) and returns a pointer usable to overwrite it in place.
func findByID(n *ast.Node, id string) (*ast.Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.ID == id {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := findByID(c, id); ok {
			return found, ok
		}
	}
	return nil, false
}

// identifiedIDs collects every identified node's ID within n's subtree.
func identifiedIDs(n *ast.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	if n.Identified() {
		out = append(out, n.ID)
	}
	for _, c := range n.Children {
		out = append(out, identifiedIDs(c)...)
	}
	return out
}
