package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/graph"
)

// VocabularyExport is the top-level JSON export structure.
type VocabularyExport struct {
	ExportedAt string         `json:"exportedAt"`
	Sources    []SourceExport `json:"sources"`
	Terms      []TermExport   `json:"terms"`
	Edges      []EdgeExport   `json:"edges,omitempty"`
}

// SourceExport describes one loaded vocabulary.
type SourceExport struct {
	Prefix    string `json:"prefix"`
	Filename  string `json:"filename,omitempty"`
	Version   string `json:"version"`
	TermCount int    `json:"termCount"`
}

// TermExport is the reduced per-term record carried in the export.
type TermExport struct {
	Code     cvterm.CVID `json:"code"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Obsolete bool        `json:"obsolete,omitempty"`
}

// EdgeExport is one parent relationship.
type EdgeExport struct {
	Child  cvterm.CVID `json:"child"`
	Parent cvterm.CVID `json:"parent"`
	Kind   string      `json:"kind"`
}

// ExportVocabulary builds a VocabularyExport from a graph store. Terms and
// edges keep the store's insertion order.
func ExportVocabulary(ctx context.Context, store graph.Store) (*VocabularyExport, error) {
	out := &VocabularyExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	sources, err := store.GetSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	for _, s := range sources {
		out.Sources = append(out.Sources, SourceExport{
			Prefix:    s.Prefix,
			Filename:  s.Filename,
			Version:   s.Version,
			TermCount: s.TermCount,
		})
	}

	terms, err := store.QueryTerms(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}
	for _, t := range terms {
		out.Terms = append(out.Terms, TermExport{
			Code:     t.Code,
			ID:       t.ID,
			Name:     t.Name,
			Obsolete: t.Obsolete,
		})
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}
	for _, e := range edges {
		out.Edges = append(out.Edges, EdgeExport{
			Child:  e.Child,
			Parent: e.Parent,
			Kind:   string(e.Kind),
		})
	}

	return out, nil
}

// WriteJSON renders the export as indented JSON.
func (v *VocabularyExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
