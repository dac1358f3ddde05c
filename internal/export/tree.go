package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/dusk-indust/asptree/internal/graph"
)

// GenerateTree renders the include hierarchy as an indented text tree under
// the base name of root. The top level holds every file that no other file
// includes, followed by one entry for each group of files reachable only
// through a cycle. With a target only that file is expanded.
//
// Each file is expanded at most once per render, so the output grows with
// the number of edges. A file that already appears among its own ancestors is
// printed marked "(cycle)". A file with includes that was expanded earlier is
// printed marked "(see above)". Neither is expanded again.
func GenerateTree(g *graph.Graph, root, target string) (string, error) {
	reg := g.Registry()

	var tops []graph.NodeID
	if target != "" {
		if id, ok := reg.LookupPath(target); ok {
			tops = []graph.NodeID{id}
		}
	} else {
		tops = topLevel(g)
	}

	tree := gtree.NewRoot(filepath.Base(root))
	w := &treeWalk{
		g:        g,
		onPath:   make(map[graph.NodeID]bool),
		expanded: make(map[graph.NodeID]bool, reg.Len()),
	}
	for _, id := range tops {
		w.addIncludes(tree.Add(reg.Node(id).Path), id)
	}

	var sb strings.Builder
	if err := gtree.OutputFromRoot(&sb, tree); err != nil {
		return "", fmt.Errorf("render tree: %w", err)
	}
	return sb.String(), nil
}

// treeWalk carries the expansion state of one GenerateTree call.
type treeWalk struct {
	g        *graph.Graph
	onPath   map[graph.NodeID]bool // ancestors of the file being expanded
	expanded map[graph.NodeID]bool
}

// addIncludes adds the dependencies of id below parent.
func (w *treeWalk) addIncludes(parent *gtree.Node, id graph.NodeID) {
	reg := w.g.Registry()
	w.expanded[id] = true
	w.onPath[id] = true
	defer delete(w.onPath, id)

	for _, dep := range w.g.Dependencies(id) {
		label := reg.Node(dep).Path
		switch {
		case w.onPath[dep]:
			parent.Add(label + " (cycle)")
		case w.expanded[dep] && len(w.g.Dependencies(dep)) > 0:
			parent.Add(label + " (see above)")
		default:
			w.addIncludes(parent.Add(label), dep)
		}
	}
}

// topLevel returns the files nothing else includes in path order, then the
// first file of every part of the graph those files do not reach.
func topLevel(g *graph.Graph) []graph.NodeID {
	reg := g.Registry()
	reached := make(map[graph.NodeID]bool, reg.Len())
	var mark func(id graph.NodeID)
	mark = func(id graph.NodeID) {
		if reached[id] {
			return
		}
		reached[id] = true
		for _, dep := range g.Dependencies(id) {
			mark(dep)
		}
	}

	var tops []graph.NodeID
	for _, id := range reg.SortedIDs() {
		if includedByOther(g, id) {
			continue
		}
		tops = append(tops, id)
		mark(id)
	}
	for _, id := range reg.SortedIDs() {
		if !reached[id] {
			tops = append(tops, id)
			mark(id)
		}
	}
	return tops
}

func includedByOther(g *graph.Graph, id graph.NodeID) bool {
	for _, src := range g.Dependents(id) {
		if src != id {
			return true
		}
	}
	return false
}
