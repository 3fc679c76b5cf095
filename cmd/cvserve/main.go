// Command cvserve loads OBO controlled-vocabulary files into a term graph and
// serves it as MCP tools over HTTP for interactive term queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/openmsio/cvgen/internal/graph"
	"github.com/openmsio/cvgen/internal/mcptools"
	"github.com/openmsio/cvgen/internal/obo"
)

// version is set by the linker at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		addr          string
		dbPath        string
		primaryPrefix string
		showVersion   bool
	)

	fs := flag.NewFlagSet("cvserve", flag.ContinueOnError)
	fs.StringVar(&addr, "addr", ":8137", "listen address for the MCP HTTP endpoint")
	fs.StringVar(&dbPath, "db", "", "path to a file-backed graph database (default: in-memory)")
	fs.StringVar(&primaryPrefix, "primary-prefix", "MS", "vocabulary whose synonyms are propagated")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if showVersion {
		fmt.Println(version)
		return nil
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("usage: cvserve [flags] <file.obo> [file.obo ...]")
	}

	// Parse the ontology files concurrently. Results land at the argument's
	// index so namespace block order stays the argument order.
	files := make([]*obo.File, len(paths))
	var eg errgroup.Group
	for i, path := range paths {
		eg.Go(func() error {
			f, err := obo.Parse(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	g, err := graph.Build(files)
	if err != nil {
		return err
	}

	var store graph.Store
	if dbPath != "" {
		s, err := openFileStore(dbPath)
		if err != nil {
			return err
		}
		store = s
	} else {
		store = graph.NewMemStore()
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Load(ctx, store); err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	log.Printf("cvserve %s: loaded %d sources, %d terms, %d edges; listening on %s",
		version, stats.SourceCount, stats.TermCount, stats.EdgeCount, addr)

	svc := mcptools.NewCVService(store, g.Database(primaryPrefix))
	return mcptools.RunMCPServer(ctx, svc, addr)
}
