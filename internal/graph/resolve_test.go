package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("/srv/site")

	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"simple join", "/srv/site", "a.asp", "/srv/site/a.asp"},
		{"nested", "/srv/site/sub", "b.asp", "/srv/site/sub/b.asp"},
		{"parent segment", "/srv/site/sub", "../c.asp", "/srv/site/c.asp"},
		{"dot segment", "/srv/site", "./inc/./h.asp", "/srv/site/inc/h.asp"},
		{"redundant separators", "/srv/site/", "inc//h.asp", "/srv/site/inc/h.asp"},
		{"escapes the root", "/srv/site", "../../etc/x.asp", "/etc/x.asp"},
		{"absolute ref is joined", "/srv/site", "/abs.asp", "/srv/site/abs.asp"},
		{"empty ref", "/srv/site/sub", "", "/srv/site/sub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.base, tt.ref))
			// Second call is served from the cache and must agree.
			assert.Equal(t, tt.want, r.Resolve(tt.base, tt.ref), "cached")
		})
	}
}

func TestResolver_BaseDir(t *testing.T) {
	r := NewResolver("/srv/site")

	assert.Equal(t, "/srv/site", r.BaseDir(IncludeVirtual, "/srv/site/dir/a.asp"))
	assert.Equal(t, "/srv/site/dir", r.BaseDir(IncludeFile, "/srv/site/dir/a.asp"))
}

func TestResolver_ResolveInclude(t *testing.T) {
	r := NewResolver("/srv/site")

	fileInc := Include{Kind: IncludeFile, Ref: "b.asp"}
	assert.Equal(t, "/srv/site/dir/b.asp", r.ResolveInclude(fileInc, "/srv/site/dir/a.asp"))

	virtualInc := Include{Kind: IncludeVirtual, Ref: "c.asp"}
	assert.Equal(t, "/srv/site/c.asp", r.ResolveInclude(virtualInc, "/srv/site/dir/a.asp"))
}

func TestResolver_RelativeRoot(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	r := NewResolver("testdata/../site")

	assert.Equal(t, filepath.Join(wd, "site"), r.Root())
}
