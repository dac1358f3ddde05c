package graph

import (
	"path"
	"sort"
	"strings"
)

// Registry owns the set of discovered files for one run. Nodes are stored in
// an arena and addressed by NodeID; the lookup key is the absolute path and
// matching is exact.
type Registry struct {
	nodes  []FileNode
	byKey  map[string]NodeID
	byPath map[string]NodeID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]NodeID),
		byPath: make(map[string]NodeID),
	}
}

// Register creates a node labelled path and indexed by key. Registering a key
// that already exists returns the existing node unchanged.
func (r *Registry) Register(path, key string) NodeID {
	if id, ok := r.byKey[key]; ok {
		return id
	}
	id := NodeID(len(r.nodes))
	r.nodes = append(r.nodes, FileNode{Path: path, Key: key})
	r.byKey[key] = id
	if _, ok := r.byPath[path]; !ok {
		r.byPath[path] = id
	}
	return id
}

// Lookup returns the node registered under the absolute path key.
func (r *Registry) Lookup(key string) (NodeID, bool) {
	id, ok := r.byKey[key]
	return id, ok
}

// LookupPath returns the first node registered with the display label path.
func (r *Registry) LookupPath(path string) (NodeID, bool) {
	id, ok := r.byPath[path]
	return id, ok
}

// Node returns the file node for id. It panics if id was not issued by r.
func (r *Registry) Node(id NodeID) FileNode {
	return r.nodes[id]
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// IDs returns every node ID in registration order.
func (r *Registry) IDs() []NodeID {
	out := make([]NodeID, len(r.nodes))
	for i := range r.nodes {
		out[i] = NodeID(i)
	}
	return out
}

// SortedIDs returns every node ID ordered by display path, then by key.
func (r *Registry) SortedIDs() []NodeID {
	out := r.IDs()
	r.sortIDs(out)
	return out
}

func (r *Registry) sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.nodes[ids[i]], r.nodes[ids[j]]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Key < b.Key
	})
}

// CleanPath normalizes a user-supplied root-relative path to the
// slash-separated form used for display labels.
func CleanPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}
