package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/asptree/internal/graph"
)

const (
	dotHeader = "digraph asptree {\n"
	dotFooter = "}\n"
)

// GenerateDOT renders g as a Graphviz digraph. With an empty target every edge
// is emitted. Otherwise only the one-hop neighborhood of the node labelled
// target is emitted; an unknown target yields an empty digraph.
//
// Paths are quoted verbatim. A path containing a double quote produces
// invalid DOT.
func GenerateDOT(g *graph.Graph, target string) string {
	var sb strings.Builder
	sb.WriteString(dotHeader)
	for _, e := range selectEdges(g, target) {
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\";\n", e.SourceID, e.TargetID))
	}
	sb.WriteString(dotFooter)
	return sb.String()
}

// selectEdges returns all edges for an empty target, the target's
// neighborhood otherwise, or nil when the target is not registered.
func selectEdges(g *graph.Graph, target string) []graph.Edge {
	if target == "" {
		return g.Edges()
	}
	id, ok := g.Registry().LookupPath(target)
	if !ok {
		return nil
	}
	return g.Neighborhood(id)
}
