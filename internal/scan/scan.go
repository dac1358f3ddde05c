// Package scan discovers server-page sources under a directory and reads
// their contents for the graph builder.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dusk-indust/asptree/internal/graph"
)

// DefaultPattern matches classic ASP pages anywhere under the root.
const DefaultPattern = "**/*.asp"

// IgnoreFile is read from the scan root when present. It uses gitignore
// syntax.
const IgnoreFile = ".asptreeignore"

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Options controls discovery.
type Options struct {
	// Pattern is a doublestar glob matched against slash-separated paths
	// relative to the root. Empty means DefaultPattern.
	Pattern string

	// Exclude holds extra gitignore-style lines.
	Exclude []string
}

// Discover walks root and returns every regular file matching opts, in
// lexical walk order. Each SourceRef carries the slash-separated path
// relative to root as its label and the absolute path as its key.
func Discover(root string, opts Options) ([]graph.SourceRef, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	ignorer, err := loadIgnore(absRoot, opts.Exclude)
	if err != nil {
		return nil, err
	}

	var refs []graph.SourceRef
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if ignorer.MatchesPath(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ignorer.MatchesPath(rel) {
			return nil
		}
		ok, err := doublestar.Match(pattern, rel)
		if err != nil || !ok {
			return err
		}
		refs = append(refs, graph.SourceRef{Path: rel, Key: path})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk: %w", walkErr)
	}
	return refs, nil
}

// loadIgnore compiles the root's ignore file, if any, together with extra.
func loadIgnore(absRoot string, extra []string) (*ignore.GitIgnore, error) {
	path := filepath.Join(absRoot, IgnoreFile)
	if _, err := os.Stat(path); err == nil {
		gi, err := ignore.CompileIgnoreFileAndLines(path, extra...)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", IgnoreFile, err)
		}
		return gi, nil
	}
	return ignore.CompileIgnoreLines(extra...), nil
}

// ReadFile returns the full text of the file at key. The handle is closed
// before returning whether or not the read succeeded.
func ReadFile(_ context.Context, key string) (string, error) {
	f, err := os.Open(key)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Compile-time check that ReadFile is a graph.ContentLoader.
var _ graph.ContentLoader = ReadFile
