package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/asptree/internal/export"
	"github.com/dusk-indust/asptree/internal/graph"
	"github.com/dusk-indust/asptree/internal/scan"
)

// errNoGraph is returned by query tools before build_graph has succeeded.
var errNoGraph = errors.New("no graph built yet; call build_graph first")

// resetter is implemented by stores that can drop their contents.
type resetter interface {
	Reset()
}

// IncludeGraphService holds the most recent build and the store used for
// traversal queries.
type IncludeGraphService struct {
	store   graph.Store
	workers int
	logger  *log.Logger

	// mu guards root and last, and the store contents: writers hold it across
	// reset and persist, readers across their store queries.
	mu   sync.RWMutex
	root string
	last *graph.BuildResult
}

// NewIncludeGraphService creates a service that persists builds into store.
func NewIncludeGraphService(store graph.Store, workers int, logger *log.Logger) *IncludeGraphService {
	return &IncludeGraphService{store: store, workers: workers, logger: logger}
}

// SetResult installs an already built graph, as the CLI does when it serves
// the tree it was started with.
func (s *IncludeGraphService) SetResult(ctx context.Context, root string, res *graph.BuildResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.store.(resetter); ok {
		r.Reset()
	}
	if err := graph.Persist(ctx, res.Graph, s.store); err != nil {
		s.root, s.last = "", nil
		return fmt.Errorf("persist graph: %w", err)
	}
	s.root = root
	s.last = res
	return nil
}

// BuildGraph scans a directory tree and builds its include graph.
func (s *IncludeGraphService) BuildGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildGraphInput,
) (*mcp.CallToolResult, BuildGraphOutput, error) {
	if input.Root == "" {
		return nil, BuildGraphOutput{}, fmt.Errorf("root is required")
	}

	refs, err := scan.Discover(input.Root, scan.Options{Pattern: input.Pattern, Exclude: input.Exclude})
	if err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("discover: %w", err)
	}

	b := &graph.Builder{Root: input.Root, Workers: s.workers, Logger: s.logger}
	res, err := b.Build(ctx, refs, scan.ReadFile)
	if err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("build: %w", err)
	}

	if err := s.SetResult(ctx, input.Root, res); err != nil {
		return nil, BuildGraphOutput{}, err
	}

	return nil, BuildGraphOutput{
		Stats:      res.Graph.Stats(),
		Resolved:   res.Resolved,
		Unresolved: res.Unresolved,
	}, nil
}

// GetDependencies traverses the include graph from a given file.
func (s *IncludeGraphService) GetDependencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	if input.Path == "" {
		return nil, GetDependenciesOutput{}, fmt.Errorf("path is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, GetDependenciesOutput{}, errNoGraph
	}

	direction := graph.DirectionUpstream
	if strings.EqualFold(input.Direction, string(graph.DirectionDownstream)) {
		direction = graph.DirectionDownstream
	}

	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	p := graph.CleanPath(input.Path)
	f, err := s.store.GetFile(ctx, p)
	if err != nil {
		return nil, GetDependenciesOutput{}, fmt.Errorf("get file: %w", err)
	}
	if f == nil {
		return nil, GetDependenciesOutput{}, fmt.Errorf("%s: %w", p, graph.ErrNodeNotFound)
	}

	chains, err := s.store.GetDependencies(ctx, p, direction, maxDepth)
	if err != nil {
		return nil, GetDependenciesOutput{}, fmt.Errorf("get dependencies: %w", err)
	}
	if chains == nil {
		chains = []graph.DependencyChain{}
	}

	return nil, GetDependenciesOutput{Chains: chains}, nil
}

// RenderGraph renders the last built graph.
func (s *IncludeGraphService) RenderGraph(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderGraphInput,
) (*mcp.CallToolResult, RenderGraphOutput, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, RenderGraphOutput{}, err
	}

	s.mu.RLock()
	root, res := s.root, s.last
	s.mu.RUnlock()
	if res == nil {
		return nil, RenderGraphOutput{}, errNoGraph
	}

	target := ""
	if input.Target != "" {
		target = graph.CleanPath(input.Target)
	}
	content, err := export.Render(format, res, root, target)
	if err != nil {
		return nil, RenderGraphOutput{}, err
	}

	return nil, RenderGraphOutput{Format: string(format), Content: content}, nil
}

// GetClusters groups the stored graph into families of files joined by
// include edges.
func (s *IncludeGraphService) GetClusters(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetClustersInput,
) (*mcp.CallToolResult, GetClustersOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, GetClustersOutput{}, errNoGraph
	}

	clusters, err := graph.ComputeClusters(ctx, s.store)
	if err != nil {
		return nil, GetClustersOutput{}, fmt.Errorf("compute clusters: %w", err)
	}
	if clusters == nil {
		clusters = []graph.Cluster{}
	}
	return nil, GetClustersOutput{Clusters: clusters}, nil
}
