package graph

import (
	"errors"
	"sync"
)

// ErrNodeNotFound is returned when a path names no registered file.
var ErrNodeNotFound = errors.New("node not found")

// nodeSet is a set of node handles.
type nodeSet map[NodeID]struct{}

// Graph is the directed include graph over the nodes of a Registry. An edge
// A->B means A includes B. Both directions of every edge are stored, and
// they are only ever written together by Link.
type Graph struct {
	mu         sync.RWMutex
	reg        *Registry
	deps       map[NodeID]nodeSet
	dependents map[NodeID]nodeSet
	edges      int
}

// New returns an empty graph over reg.
func New(reg *Registry) *Graph {
	return &Graph{
		reg:        reg,
		deps:       make(map[NodeID]nodeSet),
		dependents: make(map[NodeID]nodeSet),
	}
}

// Registry returns the registry that owns the graph's nodes.
func (g *Graph) Registry() *Registry {
	return g.reg
}

// Link records that source includes target. Linking an existing pair, a
// self-loop included, is a no-op.
func (g *Graph) Link(source, target NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.deps[source]
	if out == nil {
		out = make(nodeSet)
		g.deps[source] = out
	}
	if _, ok := out[target]; ok {
		return
	}
	in := g.dependents[target]
	if in == nil {
		in = make(nodeSet)
		g.dependents[target] = in
	}
	out[target] = struct{}{}
	in[source] = struct{}{}
	g.edges++
}

// HasEdge reports whether source includes target.
func (g *Graph) HasEdge(source, target NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.deps[source][target]
	return ok
}

// Dependencies returns the nodes id includes, sorted by path.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sorted(g.deps[id])
}

// Dependents returns the nodes that include id, sorted by path.
func (g *Graph) Dependents(id NodeID) []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sorted(g.dependents[id])
}

// Edges returns every edge ordered by source path, then target path.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edges)
	for _, src := range g.reg.SortedIDs() {
		for _, dst := range g.sorted(g.deps[src]) {
			out = append(out, g.edge(src, dst))
		}
	}
	return out
}

// Neighborhood returns the one-hop edges of id: first id->dependency for each
// dependency, then X->id for each other node X that includes id.
func (g *Graph) Neighborhood(id NodeID) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for _, dst := range g.sorted(g.deps[id]) {
		out = append(out, g.edge(id, dst))
	}
	for _, src := range g.sorted(g.dependents[id]) {
		if src == id {
			continue // already emitted as a dependency
		}
		out = append(out, g.edge(src, id))
	}
	return out
}

// Stats returns node and edge counts.
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return GraphStats{
		FileCount: g.reg.Len(),
		EdgeCount: g.edges,
	}
}

func (g *Graph) edge(src, dst NodeID) Edge {
	return Edge{
		SourceID: g.reg.Node(src).Path,
		TargetID: g.reg.Node(dst).Path,
		Kind:     EdgeKindIncludes,
	}
}

// sorted converts a node set to a slice ordered by path. Callers hold g.mu.
func (g *Graph) sorted(s nodeSet) []NodeID {
	if len(s) == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	g.reg.sortIDs(out)
	return out
}
