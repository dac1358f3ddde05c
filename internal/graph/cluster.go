package graph

import (
	"context"
	"sort"
	"strings"
)

// Cluster is a family of files joined by include edges in either direction.
type Cluster struct {
	Name    string   `json:"name"`    // longest common directory prefix of the members
	Members []string `json:"members"` // sorted
	Roots   []string `json:"roots"`   // members no other member includes
	Edges   int      `json:"edges"`
}

// ComputeClusters finds the weakly connected components of the stored
// INCLUDES edges. Files with no edges form no cluster. Clusters are ordered by
// their first member.
//
// Algorithm:
//  1. Build an undirected adjacency list from INCLUDES edges.
//  2. Find connected components via BFS from each unvisited path in sorted order.
//  3. Count the directed edges and find the roots of each component.
func ComputeClusters(ctx context.Context, store Store) ([]Cluster, error) {
	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, err
	}

	adj := make(map[string]map[string]bool)
	included := make(map[string]bool)
	link := func(a, b string) {
		if adj[a] == nil {
			adj[a] = make(map[string]bool)
		}
		adj[a][b] = true
	}
	for _, e := range edges {
		if e.Kind != EdgeKindIncludes {
			continue
		}
		link(e.SourceID, e.TargetID)
		link(e.TargetID, e.SourceID)
		if e.SourceID != e.TargetID {
			included[e.TargetID] = true
		}
	}

	paths := make([]string, 0, len(adj))
	for p := range adj {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	visited := make(map[string]bool, len(adj))
	index := make(map[string]int, len(adj))
	var clusters []Cluster
	for _, p := range paths {
		if visited[p] {
			continue
		}
		members := bfsComponent(p, adj, visited)
		sort.Strings(members)

		c := Cluster{Name: longestCommonPrefix(members), Members: members, Roots: []string{}}
		for _, m := range members {
			index[m] = len(clusters)
			if !included[m] {
				c.Roots = append(c.Roots, m)
			}
		}
		clusters = append(clusters, c)
	}

	for _, e := range edges {
		if e.Kind == EdgeKindIncludes {
			clusters[index[e.SourceID]].Edges++
		}
	}
	return clusters, nil
}

// bfsComponent performs BFS from start on the adjacency list and returns
// all reachable nodes. It marks visited nodes as it goes.
func bfsComponent(start string, adj map[string]map[string]bool, visited map[string]bool) []string {
	var component []string
	queue := []string{start}
	visited[start] = true

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		component = append(component, node)
		for neighbor := range adj[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return component
}

// longestCommonPrefix finds the longest common directory prefix among a set
// of slash-separated paths, keeping the trailing slash. It returns "" when
// the paths share no directory.
func longestCommonPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	prefix := dirPrefix(paths[0])
	for _, p := range paths[1:] {
		for !strings.HasPrefix(p, prefix) {
			prefix = dirPrefix(strings.TrimSuffix(prefix, "/"))
		}
	}
	return prefix
}

// dirPrefix returns everything up to and including the last slash in p.
func dirPrefix(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx+1]
}
