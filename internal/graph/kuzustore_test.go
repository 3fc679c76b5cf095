//go:build cgo

package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmsio/cvgen/cvterm"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
// It registers a cleanup function to close the store when the test finishes.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()

	// First call creates the tables.
	require.NoError(t, s.InitSchema(ctx))

	// Second call should be idempotent (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(ctx))
}

func TestKuzuStore_TermRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	term := TermNode{
		Code:   82,
		ID:     "MS:0000082",
		Name:   "quadrupole ion trap",
		Def:    "Quadrupole electric field trap.",
		Prefix: "MS",
	}

	require.NoError(t, s.AddTerm(ctx, term))

	got, err := s.GetTerm(ctx, term.Code)
	require.NoError(t, err)
	require.NotNil(t, got, "GetTerm should return a non-nil result")
	assert.Equal(t, term, *got)

	byID, err := s.GetTermByID(ctx, term.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, term.Code, byID.Code)
}

func TestKuzuStore_GetTerm_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.GetTerm(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKuzuStore_SourceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	src := SourceNode{Prefix: "MS", Filename: "psi-ms.obo", Version: "3.1.0", TermCount: 3}
	require.NoError(t, s.AddSource(ctx, src))

	sources, err := s.GetSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, src, sources[0])
}

func TestKuzuStore_EdgesAndAncestors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	terms := []TermNode{
		{Code: 1, ID: "MS:0000001", Name: "mass spectrum", Prefix: "MS"},
		{Code: 264, ID: "MS:0000264", Name: "ion trap", Prefix: "MS"},
		{Code: 82, ID: "MS:0000082", Name: "quadrupole ion trap", Prefix: "MS"},
	}
	for _, tm := range terms {
		require.NoError(t, s.AddTerm(ctx, tm))
	}
	edges := []Edge{
		{Child: 264, Parent: 1, Kind: EdgeKindIsA},
		{Child: 82, Parent: 264, Kind: EdgeKindIsA},
		{Child: 82, Parent: 1, Kind: EdgeKindPartOf},
	}
	for _, e := range edges {
		require.NoError(t, s.AddEdge(ctx, e))
	}

	chains, err := s.Ancestors(ctx, 82, EdgeKindIsA, 10)
	require.NoError(t, err)
	require.Len(t, chains, 2)
	assert.Equal(t, []cvterm.CVID{82, 264}, chains[0].Nodes)
	assert.Equal(t, []cvterm.CVID{82, 264, 1}, chains[1].Nodes)

	all, err := s.GetAllEdges(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &GraphStats{SourceCount: 0, TermCount: 3, EdgeCount: 3}, stats)
}

func TestKuzuStore_QueryTerms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTerm(ctx, TermNode{Code: 264, ID: "MS:0000264", Name: "ion trap", Prefix: "MS"}))
	require.NoError(t, s.AddTerm(ctx, TermNode{Code: 82, ID: "MS:0000082", Name: "quadrupole ion trap", Prefix: "MS"}))

	got, err := s.QueryTerms(ctx, "trap", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	limited, err := s.QueryTerms(ctx, "trap", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
