package graph

import "github.com/openmsio/cvgen/cvterm"

// --- Enums ---

// EdgeKind classifies parent relationships between terms.
type EdgeKind string

const (
	EdgeKindIsA    EdgeKind = "IS_A"
	EdgeKindPartOf EdgeKind = "PART_OF"
)

// --- Models ---

// TermNode represents one vocabulary term in the graph store.
type TermNode struct {
	Code     cvterm.CVID `json:"code"`
	ID       string      `json:"id"` // accession string, e.g. "MS:0000082"
	Name     string      `json:"name"`
	Def      string      `json:"def"`
	Prefix   string      `json:"prefix"`
	Obsolete bool        `json:"obsolete,omitempty"`
}

// SourceNode describes one loaded ontology namespace.
type SourceNode struct {
	Prefix    string `json:"prefix"`
	Filename  string `json:"filename"`
	Version   string `json:"version"`
	TermCount int    `json:"termCount"`
}

// Edge represents a child→parent relationship between two terms.
type Edge struct {
	Child  cvterm.CVID `json:"child"`
	Parent cvterm.CVID `json:"parent"`
	Kind   EdgeKind    `json:"kind"`
}

// GraphStats summarizes a loaded term graph.
type GraphStats struct {
	SourceCount int `json:"sourceCount"`
	TermCount   int `json:"termCount"`
	EdgeCount   int `json:"edgeCount"`
}

// AncestryChain is an ordered code path from a term up through its parents.
type AncestryChain struct {
	Nodes []cvterm.CVID `json:"nodes"` // codes in order, starting at the queried term
	Depth int           `json:"depth"`
}
