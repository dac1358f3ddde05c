package graph

import (
	"context"
	"fmt"
	"io"
)

// Store persists an include graph for later traversal queries.
// Implementations: KuzuStore (on disk, cgo), MemStore (in process).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddFile(ctx context.Context, node FileNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetFile(ctx context.Context, path string) (*FileNode, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// Graph traversal.
	GetDependencies(ctx context.Context, path string, direction Direction, maxDepth int) ([]DependencyChain, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}

// Direction controls dependency traversal direction.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"   // what does this include?
	DirectionDownstream Direction = "downstream" // what includes this?
)

// Persist copies every node and edge of g into store. The schema is
// initialized first.
func Persist(ctx context.Context, g *Graph, store Store) error {
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	reg := g.Registry()
	for _, id := range reg.SortedIDs() {
		node := reg.Node(id)
		if err := store.AddFile(ctx, node); err != nil {
			return fmt.Errorf("add file %s: %w", node.Path, err)
		}
	}
	for _, e := range g.Edges() {
		if err := store.AddEdge(ctx, e); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", e.SourceID, e.TargetID, err)
		}
	}
	return nil
}
