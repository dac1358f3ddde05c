//go:build cgo

package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/asptree/internal/graph"
)

// persistGraph writes g into the Kuzu database at dbPath, replacing any file
// keys already stored for the same paths.
func persistGraph(ctx context.Context, dbPath string, g *graph.Graph) error {
	store, err := graph.NewKuzuFileStore(dbPath)
	if err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	defer store.Close()

	if err := graph.Persist(ctx, g, store); err != nil {
		return fmt.Errorf("persist graph: %w", err)
	}
	return nil
}
