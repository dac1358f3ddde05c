package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dusk-indust/asptree/internal/config"
	"github.com/dusk-indust/asptree/internal/export"
	"github.com/dusk-indust/asptree/internal/graph"
	"github.com/dusk-indust/asptree/internal/mcptools"
	"github.com/dusk-indust/asptree/internal/scan"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Pattern  string
	Output   string
	Format   string
	Workers  int
	DBPath   string
	Verbose  bool
	ServeMCP string
	Version  bool
}

// version is set by goreleaser at build time.
var version = "dev"

// errUsage marks a command line that cannot be run.
var errUsage = errors.New("usage: asptree [flags] <root> [target]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("asptree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.Pattern, "pattern", "", "glob of files to scan, relative to root (default \""+config.DefaultPattern+"\")")
	fs.StringVar(&flags.Output, "output", "", "output file, - for stdout (default \""+config.DefaultOutput+"\")")
	fs.StringVar(&flags.Format, "format", "", "output format: dot, mermaid, json or tree (default \""+config.DefaultFormat+"\")")
	fs.IntVar(&flags.Workers, "workers", 0, "files scanned concurrently (default 1)")
	fs.StringVar(&flags.DBPath, "db", "", "persist the graph into a Kuzu database at this path")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.StringVar(&flags.ServeMCP, "serve-mcp", "", "serve MCP tools over HTTP on this address after building")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		return errUsage
	}
	root, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	target := ""
	if fs.NArg() == 2 {
		target = graph.CleanPath(fs.Arg(1))
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags.override(cfg)

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var logger *log.Logger
	if cfg.Verbose {
		logger = log.New(stderr, "", log.LstdFlags)
	}

	refs, err := scan.Discover(root, scan.Options{Pattern: cfg.Pattern, Exclude: cfg.Exclude})
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	b := &graph.Builder{Root: root, Workers: cfg.Workers, Logger: logger}
	res, err := b.Build(ctx, refs, scan.ReadFile)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if target != "" {
		if _, ok := res.Graph.Registry().LookupPath(target); !ok && logger != nil {
			logger.Printf("target %s is not a scanned file", target)
		}
	}

	content, err := export.Render(format, res, root, target)
	if err != nil {
		return err
	}
	if err := writeOutput(cfg.Output, content, stdout); err != nil {
		return err
	}

	if cfg.DBPath != "" {
		if err := persistGraph(ctx, cfg.DBPath, res.Graph); err != nil {
			return err
		}
	}

	if flags.ServeMCP != "" {
		svc := mcptools.NewIncludeGraphService(graph.NewMemStore(), cfg.Workers, logger)
		if err := svc.SetResult(ctx, root, res); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "serving MCP on %s\n", flags.ServeMCP)
		return mcptools.RunMCPServer(ctx, svc, flags.ServeMCP)
	}
	return nil
}

// override copies every flag that was set on the command line into cfg.
func (f *cliFlags) override(cfg *config.ProjectConfig) {
	if f.Pattern != "" {
		cfg.Pattern = f.Pattern
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.DBPath != "" {
		cfg.DBPath = f.DBPath
	}
	if f.Verbose {
		cfg.Verbose = true
	}
}

// writeOutput writes content to path, or to stdout when path is "-". The
// file is replaced if it exists.
func writeOutput(path, content string, stdout io.Writer) error {
	if path == "-" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
