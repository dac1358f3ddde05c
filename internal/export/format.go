package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/asptree/internal/graph"
)

// Format names an output rendering.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatJSON    Format = "json"
	FormatTree    Format = "tree"
)

// ParseFormat accepts a case-insensitive format name. Empty means DOT.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDOT, nil
	case FormatDOT, FormatMermaid, FormatJSON, FormatTree:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want dot, mermaid, json or tree)", s)
	}
}

// Render produces the requested rendering of a build result.
func Render(format Format, res *graph.BuildResult, root, target string) (string, error) {
	switch format {
	case FormatDOT, "":
		return GenerateDOT(res.Graph, target), nil
	case FormatMermaid:
		return GenerateMermaid(res.Graph, target), nil
	case FormatJSON:
		return GenerateJSON(res.Graph, root, target, res.Unresolved)
	case FormatTree:
		return GenerateTree(res.Graph, root, target)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
