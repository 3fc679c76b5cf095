package graph

import (
	"context"
	"io"

	"github.com/openmsio/cvgen/cvterm"
)

// Store is the interface for the term graph backend.
// Implementations: MemStore (always available), KuzuStore (cgo builds).
type Store interface {
	io.Closer

	// Schema setup — called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddSource(ctx context.Context, node SourceNode) error
	AddTerm(ctx context.Context, node TermNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetTerm(ctx context.Context, code cvterm.CVID) (*TermNode, error)
	GetTermByID(ctx context.Context, id string) (*TermNode, error)
	QueryTerms(ctx context.Context, query string, limit int) ([]TermNode, error)
	GetSources(ctx context.Context) ([]SourceNode, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// Graph traversal.
	Ancestors(ctx context.Context, code cvterm.CVID, kind EdgeKind, maxDepth int) ([]AncestryChain, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}
