package export

import (
	"encoding/json"
	"fmt"

	"github.com/dusk-indust/asptree/internal/graph"
)

// GraphExport is the top-level JSON export structure.
type GraphExport struct {
	Root       string             `json:"root"`
	Target     string             `json:"target,omitempty"`
	Stats      graph.GraphStats   `json:"stats"`
	Nodes      []NodeExport       `json:"nodes"`
	Edges      []graph.Edge       `json:"edges"`
	Unresolved []graph.Unresolved `json:"unresolved,omitempty"`
}

// NodeExport describes one file and its direct neighbors.
type NodeExport struct {
	Path         string   `json:"path"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

// ExportGraph builds a GraphExport from g. With a non-empty target only that
// node and its one-hop edges are included; an unknown target yields no nodes
// and no edges.
func ExportGraph(g *graph.Graph, root, target string, unresolved []graph.Unresolved) *GraphExport {
	reg := g.Registry()
	out := &GraphExport{
		Root:       root,
		Target:     target,
		Stats:      g.Stats(),
		Nodes:      []NodeExport{},
		Edges:      selectEdges(g, target),
		Unresolved: unresolved,
	}
	if out.Edges == nil {
		out.Edges = []graph.Edge{}
	}

	ids := reg.SortedIDs()
	if target != "" {
		id, ok := reg.LookupPath(target)
		if !ok {
			return out
		}
		ids = []graph.NodeID{id}
	}

	for _, id := range ids {
		out.Nodes = append(out.Nodes, NodeExport{
			Path:         reg.Node(id).Path,
			Dependencies: paths(reg, g.Dependencies(id)),
			Dependents:   paths(reg, g.Dependents(id)),
		})
	}
	return out
}

// GenerateJSON renders ExportGraph as indented JSON with a trailing newline.
func GenerateJSON(g *graph.Graph, root, target string, unresolved []graph.Unresolved) (string, error) {
	data, err := json.MarshalIndent(ExportGraph(g, root, target, unresolved), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func paths(reg *graph.Registry, ids []graph.NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, reg.Node(id).Path)
	}
	return out
}
