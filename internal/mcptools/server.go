package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewIncludeGraphMCPServer creates an MCP server with the include graph tools
// registered.
func NewIncludeGraphMCPServer(svc *IncludeGraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "asptree",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_graph",
		Description: "Scan a directory tree for server pages, parse their #include virtual and #include file directives, and build the include graph. Replaces any previously built graph.",
	}, svc.BuildGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "Traverse the include graph from a file. Upstream lists what the file includes, downstream lists what includes it, up to the given depth.",
	}, svc.GetDependencies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_graph",
		Description: "Render the whole include graph, or one file's direct includes and includers, as Graphviz DOT, Mermaid, JSON or an indented text tree.",
	}, svc.RenderGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_clusters",
		Description: "Group the include graph into families of files connected by include edges, with the pages at the top of each family.",
	}, svc.GetClusters)

	return server
}

// RunMCPServer starts an HTTP server exposing the include graph MCP tools.
func RunMCPServer(ctx context.Context, svc *IncludeGraphService, addr string) error {
	server := NewIncludeGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
