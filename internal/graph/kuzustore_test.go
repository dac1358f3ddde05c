//go:build cgo

package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
// It registers a cleanup function to close the store when the test finishes.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(context.Background()), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema(t *testing.T) {
	s := newTestStore(t)

	// Second call should be idempotent (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestKuzuStore_FileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	file := FileNode{Path: "inc/header.asp", Key: "/srv/site/inc/header.asp"}
	require.NoError(t, s.AddFile(ctx, file))

	got, err := s.GetFile(ctx, file.Path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, file, *got)
}

func TestKuzuStore_GetFile_NotFound(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetFile(context.Background(), "nonexistent.asp")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKuzuStore_Persist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	g := chainGraph(t)

	require.NoError(t, Persist(ctx, g, s))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &GraphStats{FileCount: 5, EdgeCount: 4}, stats)

	edges, err := s.GetAllEdges(ctx)
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), edges)

	// Persisting again must not duplicate anything.
	require.NoError(t, Persist(ctx, g, s))
	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.EdgeCount)
}

func TestKuzuStore_GetDependencies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, Persist(ctx, chainGraph(t), s))

	up, err := s.GetDependencies(ctx, "b.asp", DirectionUpstream, 5)
	require.NoError(t, err)
	assert.Equal(t, []DependencyChain{
		{Nodes: []string{"b.asp", "c.asp"}, Depth: 1},
		{Nodes: []string{"b.asp", "c.asp", "d.asp"}, Depth: 2},
	}, up)

	down, err := s.GetDependencies(ctx, "c.asp", DirectionDownstream, 1)
	require.NoError(t, err)
	assert.Equal(t, []DependencyChain{
		{Nodes: []string{"c.asp", "b.asp"}, Depth: 1},
		{Nodes: []string{"c.asp", "x.asp"}, Depth: 1},
	}, down)
}

func TestKuzuStore_FileStorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graph")
	ctx := context.Background()

	s, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, Persist(ctx, chainGraph(t), s))
	require.NoError(t, s.Close())

	reopened, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	stats, err := reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.FileCount)
	assert.Equal(t, 4, stats.EdgeCount)
}
