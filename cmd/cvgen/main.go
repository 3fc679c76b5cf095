// Command cvgen generates Go controlled-vocabulary artifacts from OBO files.
//
// Usage: cvgen <file.obo> [file.obo ...]
//
// Arguments are ontology files; their order fixes each vocabulary's code
// block. Output settings come from cvgen.yml in the working directory when
// present.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/openmsio/cvgen/internal/config"
	"github.com/openmsio/cvgen/internal/export"
	"github.com/openmsio/cvgen/internal/gen"
	"github.com/openmsio/cvgen/internal/graph"
	"github.com/openmsio/cvgen/internal/obo"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: cvgen <file.obo> [file.obo ...]")
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	files := make([]*obo.File, 0, len(args))
	for _, path := range args {
		f, err := obo.Parse(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	g, err := graph.Build(files)
	if err != nil {
		return err
	}

	paths, err := gen.Emit(g, gen.Options{
		OutputDir:     cfg.OutputDir,
		Basename:      cfg.Basename,
		PrimaryPrefix: cfg.PrimaryPrefix,
	})
	if err != nil {
		return err
	}

	if cfg.GraphExport.Path != "" {
		if err := exportGraph(g, cfg.GraphExport); err != nil {
			return err
		}
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

// exportGraph writes the optional term-graph side output.
func exportGraph(g *graph.TermGraph, opt config.GraphExport) error {
	ctx := context.Background()

	store := graph.NewMemStore()
	if err := g.Load(ctx, store); err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	if dir := filepath.Dir(opt.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("graph export: %w", err)
		}
	}

	out, err := os.Create(opt.Path)
	if err != nil {
		return fmt.Errorf("graph export: %w", err)
	}
	defer out.Close()

	switch opt.Format {
	case "", "json":
		vx, err := export.ExportVocabulary(ctx, store)
		if err != nil {
			return fmt.Errorf("graph export: %w", err)
		}
		return vx.WriteJSON(out)
	case "mermaid":
		diagram, err := export.GenerateMermaid(ctx, store)
		if err != nil {
			return fmt.Errorf("graph export: %w", err)
		}
		_, err = io.WriteString(out, diagram)
		return err
	default:
		return fmt.Errorf("unknown graph export format %q", opt.Format)
	}
}
