package graph

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// resolveCacheSize bounds the number of memoized (baseDir, ref) pairs. Include
// trees tend to reference the same few headers from every page.
const resolveCacheSize = 4096

// Resolver turns include references into absolute paths suitable as Registry
// lookup keys. It performs no filesystem I/O and is safe for concurrent use.
type Resolver struct {
	root  string
	cache *lru.Cache[string, string]
}

// NewResolver returns a Resolver for the scan root. A relative root is made
// absolute against the working directory.
func NewResolver(root string) *Resolver {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, string](resolveCacheSize)
	return &Resolver{root: absPath(root), cache: cache}
}

// Root returns the absolute scan root.
func (r *Resolver) Root() string {
	return r.root
}

// BaseDir returns the directory an include of the given kind is resolved
// against: the scan root for virtual includes, the directory containing
// fileKey for file includes.
func (r *Resolver) BaseDir(kind IncludeKind, fileKey string) string {
	if kind == IncludeVirtual {
		return r.root
	}
	return filepath.Dir(fileKey)
}

// Resolve joins baseDir and ref with the usual cleaning rules and returns the
// absolute result. It never fails; a nonsensical combination simply yields a
// path no file is registered under.
func (r *Resolver) Resolve(baseDir, ref string) string {
	if r.cache == nil {
		return absPath(filepath.Join(baseDir, ref))
	}
	ck := baseDir + "\x00" + ref
	if p, ok := r.cache.Get(ck); ok {
		return p
	}
	p := absPath(filepath.Join(baseDir, ref))
	r.cache.Add(ck, p)
	return p
}

// ResolveInclude resolves inc as found in the file registered under fileKey.
func (r *Resolver) ResolveInclude(inc Include, fileKey string) string {
	return r.Resolve(r.BaseDir(inc.Kind, fileKey), inc.Ref)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
