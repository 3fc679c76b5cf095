package graph

import (
	"context"
	"strings"
	"sync"

	"github.com/openmsio/cvgen/cvterm"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu      sync.RWMutex
	sources []SourceNode
	terms   map[cvterm.CVID]TermNode
	byID    map[string]cvterm.CVID
	order   []cvterm.CVID // insertion order, for deterministic enumeration
	edges   []Edge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		terms: make(map[cvterm.CVID]TermNode),
		byID:  make(map[string]cvterm.CVID),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddSource appends a namespace descriptor in load order.
func (m *MemStore) AddSource(_ context.Context, node SourceNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, node)
	return nil
}

// AddTerm stores a term node keyed by its global code.
func (m *MemStore) AddTerm(_ context.Context, node TermNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.terms[node.Code]; !exists {
		m.order = append(m.order, node.Code)
	}
	m.terms[node.Code] = node
	m.byID[node.ID] = node.Code
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetTerm returns the term node for the given code, or nil if not found.
func (m *MemStore) GetTerm(_ context.Context, code cvterm.CVID) (*TermNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.terms[code]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// GetTermByID returns the term node for the given accession string, or nil
// if not found.
func (m *MemStore) GetTermByID(_ context.Context, id string) (*TermNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	t := m.terms[code]
	return &t, nil
}

// QueryTerms returns terms whose name contains query (case-insensitive) in
// insertion order, up to limit results. A limit <= 0 returns all matches.
func (m *MemStore) QueryTerms(_ context.Context, query string, limit int) ([]TermNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []TermNode
	for _, code := range m.order {
		t := m.terms[code]
		if strings.Contains(strings.ToLower(t.Name), lowerQuery) {
			results = append(results, t)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

// GetSources returns all namespace descriptors in load order.
func (m *MemStore) GetSources(_ context.Context) ([]SourceNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SourceNode, len(m.sources))
	copy(out, m.sources)
	return out, nil
}

// GetAllEdges returns a copy of all edges in the store.
func (m *MemStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Ancestors performs a BFS along edges of the given kind from code up
// through its parents, up to maxDepth hops. It returns one AncestryChain
// per reachable ancestor.
func (m *MemStore) Ancestors(_ context.Context, code cvterm.CVID, kind EdgeKind, maxDepth int) ([]AncestryChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		return nil, nil
	}

	type bfsEntry struct {
		code cvterm.CVID
		path []cvterm.CVID
	}

	visited := map[cvterm.CVID]bool{code: true}
	queue := []bfsEntry{{code: code, path: []cvterm.CVID{code}}}
	var chains []AncestryChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, parent := range m.parents(entry.code, kind) {
				if visited[parent] {
					continue
				}
				visited[parent] = true
				newPath := make([]cvterm.CVID, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, parent)
				chains = append(chains, AncestryChain{
					Nodes: newPath,
					Depth: len(newPath) - 1,
				})
				nextQueue = append(nextQueue, bfsEntry{code: parent, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// parents returns codes reachable from code in one hop along kind edges.
func (m *MemStore) parents(code cvterm.CVID, kind EdgeKind) []cvterm.CVID {
	var result []cvterm.CVID
	for _, e := range m.edges {
		if e.Kind == kind && e.Child == code {
			result = append(result, e.Parent)
		}
	}
	return result
}

// Stats returns counts of sources, terms, and edges in the graph.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		SourceCount: len(m.sources),
		TermCount:   len(m.terms),
		EdgeCount:   len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
