package mcptools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/graph"
	"github.com/openmsio/cvgen/internal/obo"
)

// newTestService loads a small two-vocabulary graph into a MemStore and wraps
// it in a CVService.
func newTestService(t *testing.T) *CVService {
	t.Helper()

	files := []*obo.File{
		{
			Filename: "psi-ms.obo",
			Prefix:   "MS",
			Header:   []string{"remark: version: 3.1.0"},
			Terms: []obo.Term{
				{Prefix: "MS", ID: 1, Name: "mass spectrum"},
				{Prefix: "MS", ID: 264, Name: "ion trap", ParentsIsA: []uint32{1}},
				{Prefix: "MS", ID: 82, Name: "quadrupole ion trap", ParentsIsA: []uint32{264}},
			},
		},
		{
			Filename: "unit.obo",
			Prefix:   "UO",
			Header:   []string{"date: 01:01:2020 00:00"},
			Terms: []obo.Term{
				{Prefix: "UO", ID: 1, Name: "second"},
			},
		},
	}

	g, err := graph.Build(files)
	require.NoError(t, err)

	store := graph.NewMemStore()
	require.NoError(t, g.Load(context.Background(), store))

	return NewCVService(store, g.Database("MS"))
}

func TestLookupTerm(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("by accession", func(t *testing.T) {
		_, out, err := svc.LookupTerm(ctx, nil, LookupTermInput{ID: "MS:0000082"})
		require.NoError(t, err)
		require.Equal(t, 1, out.Total)
		assert.Equal(t, "quadrupole ion trap", out.Terms[0].Name)
		assert.Equal(t, cvterm.CVID(82), out.Terms[0].Code)
	})

	t.Run("unknown accession returns empty", func(t *testing.T) {
		_, out, err := svc.LookupTerm(ctx, nil, LookupTermInput{ID: "MS:9999999"})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Total)
		assert.Empty(t, out.Terms)
	})

	t.Run("by name substring", func(t *testing.T) {
		_, out, err := svc.LookupTerm(ctx, nil, LookupTermInput{Query: "trap"})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Total)
	})

	t.Run("limit is respected", func(t *testing.T) {
		_, out, err := svc.LookupTerm(ctx, nil, LookupTermInput{Query: "trap", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Total)
	})

	t.Run("empty input returns error", func(t *testing.T) {
		_, _, err := svc.LookupTerm(ctx, nil, LookupTermInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id or query")
	})
}

func TestIsA(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("transitive descendant", func(t *testing.T) {
		_, out, err := svc.IsA(ctx, nil, IsAInput{Child: "MS:0000082", Parent: "MS:0000001"})
		require.NoError(t, err)
		assert.True(t, out.IsA)
		assert.Equal(t, cvterm.CVID(82), out.Child)
		assert.Equal(t, cvterm.CVID(1), out.Parent)
	})

	t.Run("not related", func(t *testing.T) {
		_, out, err := svc.IsA(ctx, nil, IsAInput{Child: "MS:0000001", Parent: "MS:0000082"})
		require.NoError(t, err)
		assert.False(t, out.IsA, "is_a is directional")
	})

	t.Run("malformed accession returns error", func(t *testing.T) {
		_, _, err := svc.IsA(ctx, nil, IsAInput{Child: "MS0000082", Parent: "MS:0000001"})
		require.Error(t, err)
	})

	t.Run("missing arguments return error", func(t *testing.T) {
		_, _, err := svc.IsA(ctx, nil, IsAInput{Child: "MS:0000082"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})
}

func TestListSources(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.ListSources(context.Background(), nil, ListSourcesInput{})
	require.NoError(t, err)

	require.Len(t, out.Sources, 2)
	assert.Equal(t, "MS", out.Sources[0].Prefix)
	assert.Equal(t, "3.1.0", out.Sources[0].Version)
	assert.Equal(t, "UO", out.Sources[1].Prefix)
	assert.Equal(t, 1, out.Sources[1].TermCount)
}

func TestGraphStats(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.GraphStats(context.Background(), nil, GraphStatsInput{})
	require.NoError(t, err)

	assert.Equal(t, graph.GraphStats{SourceCount: 2, TermCount: 4, EdgeCount: 2}, out.Stats)
}
