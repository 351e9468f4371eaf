// Package dep builds and queries the dependency graph mirroring a CSG AST,
// keyed by node identity, used only for cache invalidation on edit.
package dep

import "github.com/polyframe-ai/csgkernel/ast"

// Graph records, for every identified node, its identified parent and
// identified children. Nodes without an identity are transparent: their
// identified descendants attach directly to the nearest identified
// ancestor. Immutable once built.
type Graph struct {
	parent   map[string]string   // id -> parent id ("" if root-level)
	children map[string][]string // id -> child ids, in source order
	nodes    map[string]*ast.Node
}

// Build performs a single recursive walk of root and returns the graph.
func Build(root *ast.Node) *Graph {
	g := &Graph{
		parent:   make(map[string]string),
		children: make(map[string][]string),
		nodes:    make(map[string]*ast.Node),
	}
	g.walk(root, "")
	return g
}

// walk recurses through n, passing down the nearest identified ancestor id
// (empty string if none yet).
func (g *Graph) walk(n *ast.Node, nearestAncestor string) {
	if n == nil {
		return
	}
	effectiveAncestor := nearestAncestor
	if n.Identified() {
		g.nodes[n.ID] = n
		if _, ok := g.parent[n.ID]; !ok {
			g.parent[n.ID] = nearestAncestor
		}
		if nearestAncestor != "" {
			g.children[nearestAncestor] = append(g.children[nearestAncestor], n.ID)
		}
		effectiveAncestor = n.ID
	}
	for _, c := range n.Children {
		g.walk(c, effectiveAncestor)
	}
}

// Ancestors returns every identified ancestor of id, nearest first, and a
// bool reporting whether id is known to the graph at all.
func (g *Graph) Ancestors(id string) ([]string, bool) {
	if _, ok := g.nodes[id]; !ok {
		return nil, false
	}
	var out []string
	cur := g.parent[id]
	for cur != "" {
		out = append(out, cur)
		cur = g.parent[cur]
	}
	return out, true
}

// Children returns the identified children of id in source order.
func (g *Graph) Children(id string) []string {
	return g.children[id]
}

// Contains reports whether id is a known identified node.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// IDs returns every identified node id in the graph, order unspecified.
func (g *Graph) IDs() []string {
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	return out
}
