package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/asptree/internal/graph"
)

// writeTree creates files (slash-separated relative paths) under a temp root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func labels(refs []graph.SourceRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Path)
	}
	return out
}

func TestDiscover_DefaultPattern(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.asp":           "",
		"b.asp":           "",
		"sub/c.asp":       "",
		"sub/deep/d.asp":  "",
		"readme.txt":      "",
		"inc/header.inc":  "",
		"sub/notasp.aspx": "",
	})

	refs, err := Discover(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.asp", "b.asp", "sub/c.asp", "sub/deep/d.asp"}, labels(refs))
	for _, r := range refs {
		assert.True(t, filepath.IsAbs(r.Key), "key %q must be absolute", r.Key)
		assert.Equal(t, filepath.Join(root, filepath.FromSlash(r.Path)), r.Key)
	}
}

func TestDiscover_CustomPattern(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.asp":          "",
		"inc/header.inc": "",
		"inc/footer.inc": "",
	})

	refs, err := Discover(root, Options{Pattern: "**/*.{asp,inc}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.asp", "inc/footer.inc", "inc/header.inc"}, labels(refs))
}

func TestDiscover_Exclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.asp":             "",
		"legacy/old.asp":    "",
		"backup/a.asp":      "",
		"sub/draft_x.asp":   "",
		"sub/keep.asp":      "",
		IgnoreFile:          "backup/\n",
		"legacy/nested.asp": "",
	})

	refs, err := Discover(root, Options{Exclude: []string{"legacy/", "draft_*.asp"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.asp", "sub/keep.asp"}, labels(refs))
}

func TestDiscover_InvalidPattern(t *testing.T) {
	root := writeTree(t, map[string]string{"a.asp": ""})

	_, err := Discover(root, Options{Pattern: "[*.asp"})
	assert.Error(t, err)
}

func TestDiscover_NotADirectory(t *testing.T) {
	root := writeTree(t, map[string]string{"a.asp": ""})

	_, err := Discover(filepath.Join(root, "a.asp"), Options{})
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.asp": "<%= 1 %>\n"})

	text, err := ReadFile(context.Background(), filepath.Join(root, "a.asp"))
	require.NoError(t, err)
	assert.Equal(t, "<%= 1 %>\n", text)

	_, err = ReadFile(context.Background(), filepath.Join(root, "missing.asp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverAndBuild(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.asp":     `<!--#include file="b.asp"-->`,
		"b.asp":     `<!--#include virtual="/sub/c.asp"-->`,
		"sub/c.asp": ``,
	})

	refs, err := Discover(root, Options{})
	require.NoError(t, err)

	res, err := (&graph.Builder{Root: root}).Build(context.Background(), refs, ReadFile)
	require.NoError(t, err)

	var got [][2]string
	for _, e := range res.Graph.Edges() {
		got = append(got, [2]string{e.SourceID, e.TargetID})
	}
	assert.Equal(t, [][2]string{{"a.asp", "b.asp"}, {"b.asp", "sub/c.asp"}}, got)
}
