package export

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dusk-indust/asptree/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram of the same edges
// GenerateDOT would emit. Files are grouped into one subgraph per directory;
// files at the scan root are emitted outside any subgraph.
func GenerateMermaid(g *graph.Graph, target string) string {
	edges := selectEdges(g, target)

	// Build node → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(p string) string {
		if id, ok := nodeIDs[p]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[p] = id
		return id
	}

	// Collect the files that take part in an edge, grouped by directory.
	byDir := make(map[string][]string)
	seen := make(map[string]bool)
	for _, e := range edges {
		for _, p := range []string{e.SourceID, e.TargetID} {
			if seen[p] {
				continue
			}
			seen[p] = true
			dir := path.Dir(p)
			byDir[dir] = append(byDir[dir], p)
		}
	}
	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, dir := range dirs {
		members := byDir[dir]
		sort.Strings(members)

		indent := "  "
		if dir != "." {
			sb.WriteString(fmt.Sprintf("  subgraph %s[\"%s\"]\n", getID(dir+"/"), dir))
			indent = "    "
		}
		for _, member := range members {
			sb.WriteString(fmt.Sprintf("%s%s[\"%s\"]\n", indent, getID(member), path.Base(member)))
		}
		if dir != "." {
			sb.WriteString("  end\n")
		}
	}

	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", getID(e.SourceID), getID(e.TargetID)))
	}

	return sb.String()
}
