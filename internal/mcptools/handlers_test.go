package mcptools

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/asptree/internal/graph"
)

// linkedResult builds a BuildResult over paths with the given label pairs
// linked in order.
func linkedResult(paths []string, links ...[2]string) *graph.BuildResult {
	reg := graph.NewRegistry()
	ids := make(map[string]graph.NodeID, len(paths))
	for _, p := range paths {
		ids[p] = reg.Register(p, "/srv/site/"+p)
	}
	g := graph.New(reg)
	for _, l := range links {
		g.Link(ids[l[0]], ids[l[1]])
	}
	return &graph.BuildResult{Graph: g, Resolved: len(links)}
}

func TestSetResult_ReplacesStore(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemStore()
	svc := NewIncludeGraphService(store, 1, nil)

	first := linkedResult([]string{"a.asp", "b.asp", "c.asp"}, [2]string{"a.asp", "b.asp"}, [2]string{"b.asp", "c.asp"})
	second := linkedResult([]string{"a.asp", "x.asp"}, [2]string{"a.asp", "x.asp"})

	require.NoError(t, svc.SetResult(ctx, "/srv/site", first))
	require.NoError(t, svc.SetResult(ctx, "/srv/site", second))

	edges, err := store.GetAllEdges(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Graph.Edges(), edges)

	f, err := store.GetFile(ctx, "c.asp")
	require.NoError(t, err)
	assert.Nil(t, f, "files from the previous build should be gone")
}

// TestSetResult_ConcurrentWithQueries swaps two graphs while readers
// traverse. Every read must see one whole graph, never a store that is
// half reset or half persisted.
func TestSetResult_ConcurrentWithQueries(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemStore()
	svc := NewIncludeGraphService(store, 1, nil)

	chain := linkedResult([]string{"a.asp", "b.asp", "c.asp"}, [2]string{"a.asp", "b.asp"}, [2]string{"b.asp", "c.asp"})
	single := linkedResult([]string{"a.asp", "x.asp"}, [2]string{"a.asp", "x.asp"})
	require.NoError(t, svc.SetResult(ctx, "/srv/site", chain))

	wantChain := []graph.DependencyChain{
		{Nodes: []string{"a.asp", "b.asp"}, Depth: 1},
		{Nodes: []string{"a.asp", "b.asp", "c.asp"}, Depth: 2},
	}
	wantSingle := []graph.DependencyChain{
		{Nodes: []string{"a.asp", "x.asp"}, Depth: 1},
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := chain
			if i%2 == 1 {
				res = single
			}
			for range 50 {
				assert.NoError(t, svc.SetResult(ctx, "/srv/site", res))
			}
		}()
	}
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, out, err := svc.GetDependencies(ctx, nil, GetDependenciesInput{Path: "a.asp"})
				if !assert.NoError(t, err) {
					return
				}
				if len(out.Chains) == 1 {
					assert.Equal(t, wantSingle, out.Chains)
				} else {
					assert.Equal(t, wantChain, out.Chains)
				}
			}
		}()
	}
	wg.Wait()

	svc.mu.RLock()
	last := svc.last
	svc.mu.RUnlock()

	edges, err := store.GetAllEdges(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.Graph.Edges(), edges, "store must hold exactly the last installed graph")
}
