package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ASPTREE_OUTPUT", "ASPTREE_FORMAT", "ASPTREE_DB", "ASPTREE_WORKERS"} {
		t.Setenv(k, "")
	}
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{
		Pattern: DefaultPattern,
		Output:  DefaultOutput,
		Format:  DefaultFormat,
		Workers: DefaultWorkers,
	}, cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := `pattern: "**/*.{asp,inc}"
exclude:
  - legacy/
  - "*.bak.asp"
output: graph.dot
format: mermaid
workers: 4
verbose: true
dbPath: .asptree/graph
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asptree.yml"), []byte(yml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{
		Pattern: "**/*.{asp,inc}",
		Exclude: []string{"legacy/", "*.bak.asp"},
		Output:  "graph.dot",
		Format:  "mermaid",
		Workers: 4,
		Verbose: true,
		DBPath:  ".asptree/graph",
	}, cfg)
}

func TestLoad_YAMLAlternateExtension(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asptree.yaml"), []byte("format: json\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asptree.yml"), []byte("workers: [oops\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asptree.yml"), []byte("output: file.txt\nworkers: 2\n"), 0o644))

	t.Setenv("ASPTREE_OUTPUT", "env.txt")
	t.Setenv("ASPTREE_WORKERS", "8")
	t.Setenv("ASPTREE_FORMAT", "json")
	t.Setenv("ASPTREE_DB", "/tmp/db")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "env.txt", cfg.Output)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/tmp/db", cfg.DBPath)
}

func TestLoad_BadWorkersEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASPTREE_WORKERS", "many")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
