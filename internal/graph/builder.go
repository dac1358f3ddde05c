package graph

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// ContentLoader returns the full raw text of the file at the absolute path
// key. An error aborts the build.
type ContentLoader func(ctx context.Context, key string) (string, error)

// Builder populates an include graph from discovered files.
type Builder struct {
	// Root is the scan root that virtual includes resolve against.
	Root string

	// Workers bounds how many files are read and scanned at once. Values
	// below 2 scan sequentially. Edges are always linked by one goroutine
	// in discovery order.
	Workers int

	// Logger receives progress output. Nil discards it.
	Logger *log.Logger
}

// BuildResult is the outcome of a successful build.
type BuildResult struct {
	Graph      *Graph
	Resolved   int          // include directives that matched a registered file
	Unresolved []Unresolved // include directives that did not
}

// fileScan holds the per-file output of the read+extract+resolve step.
type fileScan struct {
	targets    []NodeID
	unresolved []Unresolved
}

// Build registers files in the order given, reads each through load, and
// links every include that resolves to a registered file. Includes that do
// not resolve are reported in the result and otherwise ignored.
func (b *Builder) Build(ctx context.Context, files []SourceRef, load ContentLoader) (*BuildResult, error) {
	reg := NewRegistry()
	var order []NodeID
	for _, f := range files {
		before := reg.Len()
		id := reg.Register(f.Path, f.Key)
		if reg.Len() > before {
			order = append(order, id)
		}
	}
	b.logf("found %d files", reg.Len())

	resolver := NewResolver(b.Root)
	scans := make([]fileScan, len(order))

	scanOne := func(ctx context.Context, i int) error {
		node := reg.Node(order[i])
		b.logf("opening %s to scan for dependencies", node.Path)

		text, err := load(ctx, node.Key)
		if err != nil {
			return fmt.Errorf("read %s: %w", node.Path, err)
		}
		scans[i] = b.scanText(reg, resolver, node, text)
		return nil
	}

	if b.Workers < 2 {
		for i := range order {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := scanOne(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		eg, egctx := errgroup.WithContext(ctx)
		eg.SetLimit(b.Workers)
		for i := range order {
			eg.Go(func() error {
				if err := egctx.Err(); err != nil {
					return err
				}
				return scanOne(egctx, i)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	g := New(reg)
	result := &BuildResult{Graph: g}
	for i, id := range order {
		for _, target := range scans[i].targets {
			g.Link(id, target)
		}
		result.Resolved += len(scans[i].targets)
		result.Unresolved = append(result.Unresolved, scans[i].unresolved...)
	}
	return result, nil
}

// scanText extracts the includes in text and resolves each against reg.
func (b *Builder) scanText(reg *Registry, resolver *Resolver, node FileNode, text string) fileScan {
	var out fileScan
	for inc := range ExtractIncludes(text) {
		base := resolver.BaseDir(inc.Kind, node.Key)
		abs := resolver.Resolve(base, inc.Ref)
		b.logf("full path from %s and %s: %s", base, inc.Ref, abs)

		target, ok := reg.Lookup(abs)
		if !ok {
			out.unresolved = append(out.unresolved, Unresolved{
				SourcePath: node.Path,
				Kind:       inc.Kind,
				Ref:        inc.Raw,
				LookupKey:  abs,
			})
			continue
		}
		out.targets = append(out.targets, target)
	}
	return out
}

func (b *Builder) logf(format string, args ...any) {
	if b.Logger == nil {
		return
	}
	b.Logger.Printf("builder: "+format, args...)
}
