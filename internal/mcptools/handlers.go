package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/graph"
)

// CVService holds the graph store and term database used by MCP tool
// handlers.
type CVService struct {
	store graph.Store
	db    *cvterm.Database
}

// NewCVService creates a CVService over the given store and database.
func NewCVService(store graph.Store, db *cvterm.Database) *CVService {
	return &CVService{store: store, db: db}
}

// LookupTerm resolves an accession string or searches terms by name
// substring.
func (s *CVService) LookupTerm(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupTermInput,
) (*mcp.CallToolResult, LookupTermOutput, error) {
	if input.ID == "" && input.Query == "" {
		return nil, LookupTermOutput{}, fmt.Errorf("one of id or query is required")
	}

	if input.ID != "" {
		term, err := s.store.GetTermByID(ctx, input.ID)
		if err != nil {
			return nil, LookupTermOutput{}, fmt.Errorf("get term: %w", err)
		}
		if term == nil {
			return nil, LookupTermOutput{}, nil
		}
		return nil, LookupTermOutput{Terms: []graph.TermNode{*term}, Total: 1}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	terms, err := s.store.QueryTerms(ctx, input.Query, limit)
	if err != nil {
		return nil, LookupTermOutput{}, fmt.Errorf("query terms: %w", err)
	}

	return nil, LookupTermOutput{Terms: terms, Total: len(terms)}, nil
}

// IsA reports whether child descends from parent over is_a relations.
func (s *CVService) IsA(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input IsAInput,
) (*mcp.CallToolResult, IsAOutput, error) {
	if input.Child == "" || input.Parent == "" {
		return nil, IsAOutput{}, fmt.Errorf("child and parent are required")
	}

	child, err := s.db.TermInfoFromID(input.Child)
	if err != nil {
		return nil, IsAOutput{}, fmt.Errorf("resolve child: %w", err)
	}
	parent, err := s.db.TermInfoFromID(input.Parent)
	if err != nil {
		return nil, IsAOutput{}, fmt.Errorf("resolve parent: %w", err)
	}

	return nil, IsAOutput{
		IsA:    s.db.IsA(child.CVID, parent.CVID),
		Child:  child.CVID,
		Parent: parent.CVID,
	}, nil
}

// ListSources returns the loaded vocabularies.
func (s *CVService) ListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	sources, err := s.store.GetSources(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, fmt.Errorf("get sources: %w", err)
	}

	return nil, ListSourcesOutput{Sources: sources}, nil
}

// GraphStats returns counts of sources, terms and edges in the graph.
func (s *CVService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, fmt.Errorf("stats: %w", err)
	}

	return nil, GraphStatsOutput{Stats: *stats}, nil
}
