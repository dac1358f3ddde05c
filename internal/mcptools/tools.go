package mcptools

import "github.com/dusk-indust/asptree/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// BuildGraphInput is the input for the build_graph MCP tool.
type BuildGraphInput struct {
	Root    string   `json:"root" jsonschema:"the absolute path of the directory tree to scan"`
	Pattern string   `json:"pattern,omitempty" jsonschema:"glob of files to scan, relative to root (default: **/*.asp)"`
	Exclude []string `json:"exclude,omitempty" jsonschema:"gitignore-style patterns to skip (e.g. legacy/)"`
}

// BuildGraphOutput is the result of the build_graph MCP tool.
type BuildGraphOutput struct {
	Stats      graph.GraphStats   `json:"stats"`
	Resolved   int                `json:"resolved"`
	Unresolved []graph.Unresolved `json:"unresolved,omitempty"`
}

// GetDependenciesInput is the input for the get_dependencies MCP tool.
type GetDependenciesInput struct {
	Path      string `json:"path" jsonschema:"file path relative to the scanned root"`
	Direction string `json:"direction,omitempty" jsonschema:"upstream (what it includes) or downstream (what includes it). Default: upstream"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetDependenciesOutput is the result of the get_dependencies MCP tool.
type GetDependenciesOutput struct {
	Chains []graph.DependencyChain `json:"chains"`
}

// RenderGraphInput is the input for the render_graph MCP tool.
type RenderGraphInput struct {
	Target string `json:"target,omitempty" jsonschema:"file path whose one-hop neighborhood to render; empty renders the whole graph"`
	Format string `json:"format,omitempty" jsonschema:"dot, mermaid, json or tree (default: dot)"`
}

// RenderGraphOutput is the result of the render_graph MCP tool.
type RenderGraphOutput struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

// GetClustersInput is the input for the get_clusters MCP tool.
type GetClustersInput struct{}

// GetClustersOutput is the result of the get_clusters MCP tool.
type GetClustersOutput struct {
	Clusters []graph.Cluster `json:"clusters"`
}
