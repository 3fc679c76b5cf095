//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/openmsio/cvgen/cvterm"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend, giving developers a Cypher-queryable view of the loaded
// ontologies. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path, so a loaded term graph survives across sessions.
// KuzuDB creates the leaf directory itself for new databases.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Source(
		prefix STRING,
		filename STRING,
		version STRING,
		term_count INT64,
		PRIMARY KEY(prefix)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Term(
		code INT64,
		id STRING,
		name STRING,
		def STRING,
		prefix STRING,
		obsolete BOOLEAN,
		PRIMARY KEY(code)
	)`,
	`CREATE REL TABLE IF NOT EXISTS IS_A(FROM Term TO Term)`,
	`CREATE REL TABLE IF NOT EXISTS PART_OF(FROM Term TO Term)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddSource inserts a Source node.
func (s *KuzuStore) AddSource(_ context.Context, node SourceNode) error {
	return s.exec(
		"CREATE (s:Source {prefix: $prefix, filename: $filename, version: $version, term_count: $tc})",
		map[string]any{
			"prefix":   node.Prefix,
			"filename": node.Filename,
			"version":  node.Version,
			"tc":       int64(node.TermCount),
		},
	)
}

// AddTerm inserts a Term node.
func (s *KuzuStore) AddTerm(_ context.Context, node TermNode) error {
	return s.exec(
		`CREATE (t:Term {
			code: $code,
			id: $id,
			name: $name,
			def: $def,
			prefix: $prefix,
			obsolete: $obsolete
		})`,
		map[string]any{
			"code":     int64(node.Code),
			"id":       node.ID,
			"name":     node.Name,
			"def":      node.Def,
			"prefix":   node.Prefix,
			"obsolete": node.Obsolete,
		},
	)
}

// AddEdge inserts a parent relationship between two terms.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	cypher, err := edgeCypher(edge.Kind)
	if err != nil {
		return err
	}
	return s.exec(cypher, map[string]any{
		"child":  int64(edge.Child),
		"parent": int64(edge.Parent),
	})
}

// edgeCypher returns the MATCH-CREATE Cypher for the given edge kind.
func edgeCypher(kind EdgeKind) (string, error) {
	switch kind {
	case EdgeKindIsA:
		return `MATCH (a:Term {code: $child}), (b:Term {code: $parent})
				CREATE (a)-[:IS_A]->(b)`, nil
	case EdgeKindPartOf:
		return `MATCH (a:Term {code: $child}), (b:Term {code: $parent})
				CREATE (a)-[:PART_OF]->(b)`, nil
	default:
		return "", fmt.Errorf("kuzu: unsupported edge kind: %s", kind)
	}
}

// ---------- Read operations ----------

// GetTerm retrieves a single Term node by code, or nil if not found.
func (s *KuzuStore) GetTerm(_ context.Context, code cvterm.CVID) (*TermNode, error) {
	rows, err := s.query(
		"MATCH (t:Term {code: $code}) RETURN t.code, t.id, t.name, t.def, t.prefix, t.obsolete",
		map[string]any{"code": int64(code)},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToTerm(rows[0]), nil
}

// GetTermByID retrieves a single Term node by accession string, or nil if
// not found.
func (s *KuzuStore) GetTermByID(_ context.Context, id string) (*TermNode, error) {
	rows, err := s.query(
		"MATCH (t:Term {id: $id}) RETURN t.code, t.id, t.name, t.def, t.prefix, t.obsolete",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToTerm(rows[0]), nil
}

// QueryTerms returns terms whose name contains the query string.
func (s *KuzuStore) QueryTerms(_ context.Context, queryStr string, limit int) ([]TermNode, error) {
	q := `MATCH (t:Term) WHERE lower(t.name) CONTAINS lower($q)
		 RETURN t.code, t.id, t.name, t.def, t.prefix, t.obsolete`
	params := map[string]any{"q": queryStr}
	if limit > 0 {
		q += " LIMIT $lim"
		params["lim"] = int64(limit)
	}
	rows, err := s.query(q, params)
	if err != nil {
		return nil, err
	}
	out := make([]TermNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToTerm(r))
	}
	return out, nil
}

// GetSources returns all Source nodes.
func (s *KuzuStore) GetSources(_ context.Context) ([]SourceNode, error) {
	rows, err := s.query(
		"MATCH (s:Source) RETURN s.prefix, s.filename, s.version, s.term_count",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]SourceNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, SourceNode{
			Prefix:    toString(r[0]),
			Filename:  toString(r[1]),
			Version:   toString(r[2]),
			TermCount: toInt(r[3]),
		})
	}
	return out, nil
}

// GetAllEdges returns all edges across both relationship tables.
func (s *KuzuStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	type relQuery struct {
		cypher string
		kind   EdgeKind
	}

	queries := []relQuery{
		{"MATCH (a:Term)-[:IS_A]->(b:Term) RETURN a.code, b.code", EdgeKindIsA},
		{"MATCH (a:Term)-[:PART_OF]->(b:Term) RETURN a.code, b.code", EdgeKindPartOf},
	}

	var edges []Edge
	for _, q := range queries {
		rows, err := s.query(q.cypher, nil)
		if err != nil {
			// Table may not exist yet; skip.
			continue
		}
		for _, r := range rows {
			edges = append(edges, Edge{
				Child:  cvterm.CVID(toInt(r[0])),
				Parent: cvterm.CVID(toInt(r[1])),
				Kind:   q.kind,
			})
		}
	}
	return edges, nil
}

// ---------- Graph traversal ----------

// Ancestors performs a BFS along edges of the given kind from code up
// through its parents. It returns one AncestryChain per reachable ancestor.
func (s *KuzuStore) Ancestors(_ context.Context, code cvterm.CVID, kind EdgeKind, maxDepth int) ([]AncestryChain, error) {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	type bfsEntry struct {
		path  []cvterm.CVID
		depth int
	}
	visited := map[cvterm.CVID]bool{code: true}
	queue := []bfsEntry{{path: []cvterm.CVID{code}, depth: 0}}
	var chains []AncestryChain

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		tip := cur.path[len(cur.path)-1]
		parents, err := s.termParents(tip, kind)
		if err != nil {
			return nil, err
		}
		for _, parent := range parents {
			if visited[parent] {
				continue
			}
			visited[parent] = true
			newPath := make([]cvterm.CVID, len(cur.path)+1)
			copy(newPath, cur.path)
			newPath[len(cur.path)] = parent
			chains = append(chains, AncestryChain{
				Nodes: newPath,
				Depth: cur.depth + 1,
			})
			queue = append(queue, bfsEntry{path: newPath, depth: cur.depth + 1})
		}
	}
	return chains, nil
}

// termParents returns immediate parents along edges of the given kind.
func (s *KuzuStore) termParents(code cvterm.CVID, kind EdgeKind) ([]cvterm.CVID, error) {
	var cypher string
	switch kind {
	case EdgeKindIsA:
		cypher = "MATCH (a:Term {code: $code})-[:IS_A]->(b:Term) RETURN b.code"
	case EdgeKindPartOf:
		cypher = "MATCH (a:Term {code: $code})-[:PART_OF]->(b:Term) RETURN b.code"
	default:
		return nil, fmt.Errorf("kuzu: unsupported edge kind: %s", kind)
	}
	rows, err := s.query(cypher, map[string]any{"code": int64(code)})
	if err != nil {
		return nil, err
	}
	out := make([]cvterm.CVID, 0, len(rows))
	for _, r := range rows {
		out = append(out, cvterm.CVID(toInt(r[0])))
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of all node and edge tables.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	sources, err := s.countTable("Source")
	if err != nil {
		return nil, err
	}
	terms, err := s.countTable("Term")
	if err != nil {
		return nil, err
	}
	edges, err := s.countEdges()
	if err != nil {
		return nil, err
	}
	return &GraphStats{
		SourceCount: sources,
		TermCount:   terms,
		EdgeCount:   edges,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// countEdges returns the total number of edges across both relationship tables.
func (s *KuzuStore) countEdges() (int, error) {
	tables := []string{"IS_A", "PART_OF"}
	total := 0
	for _, t := range tables {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", t)
		rows, err := s.query(cypher, nil)
		if err != nil {
			// Table may not exist yet; treat as zero.
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += toInt(rows[0][0])
		}
	}
	return total, nil
}

// rowToTerm converts a 6-column result row into a TermNode.
// Column order: code, id, name, def, prefix, obsolete.
func rowToTerm(r []any) *TermNode {
	return &TermNode{
		Code:     cvterm.CVID(toInt(r[0])),
		ID:       toString(r[1]),
		Name:     toString(r[2]),
		Def:      toString(r[3]),
		Prefix:   toString(r[4]),
		Obsolete: toBool(r[5]),
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
