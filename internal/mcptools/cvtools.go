package mcptools

import (
	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/graph"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// LookupTermInput is the input for the lookup_term MCP tool.
type LookupTermInput struct {
	ID    string `json:"id,omitempty" jsonschema:"accession string to resolve, e.g. MS:0000082"`
	Query string `json:"query,omitempty" jsonschema:"name substring to search for when no accession is given"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// LookupTermOutput is the result of the lookup_term MCP tool.
type LookupTermOutput struct {
	Terms []graph.TermNode `json:"terms"`
	Total int              `json:"total"`
}

// IsAInput is the input for the is_a MCP tool.
type IsAInput struct {
	Child  string `json:"child" jsonschema:"accession string of the candidate descendant, e.g. MS:0000082"`
	Parent string `json:"parent" jsonschema:"accession string of the candidate ancestor, e.g. MS:0000264"`
}

// IsAOutput is the result of the is_a MCP tool.
type IsAOutput struct {
	IsA    bool        `json:"isA"`
	Child  cvterm.CVID `json:"childCode"`
	Parent cvterm.CVID `json:"parentCode"`
}

// ListSourcesInput is the input for the list_sources MCP tool.
type ListSourcesInput struct{}

// ListSourcesOutput is the result of the list_sources MCP tool.
type ListSourcesOutput struct {
	Sources []graph.SourceNode `json:"sources"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Stats graph.GraphStats `json:"stats"`
}
