package graph

import (
	"context"
	"fmt"

	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/obo"
)

// DanglingReferenceError reports a parent relationship that references a
// local id with no matching term in the same namespace. It is fatal:
// generation aborts rather than emitting an inconsistent artifact.
type DanglingReferenceError struct {
	Prefix  string
	TermID  uint32
	Missing uint32
	Kind    EdgeKind
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s: %s reference to nonexistent term %s",
		Accession(e.Prefix, e.TermID), e.Kind, Accession(e.Prefix, e.Missing))
}

// TermGraph consolidates the parsed input files into per-namespace term maps.
// Namespace order equals input file order and determines each namespace's
// code block index.
type TermGraph struct {
	Files []*obo.File
	maps  []map[uint32]*obo.Term // parallel to Files
}

// Build indexes every namespace by local id and verifies that all parent
// references resolve within their own namespace.
func Build(files []*obo.File) (*TermGraph, error) {
	g := &TermGraph{
		Files: files,
		maps:  make([]map[uint32]*obo.Term, len(files)),
	}

	for i, f := range files {
		m := make(map[uint32]*obo.Term, len(f.Terms))
		for j := range f.Terms {
			m[f.Terms[j].ID] = &f.Terms[j]
		}
		g.maps[i] = m
	}

	for i, f := range files {
		for _, t := range f.Terms {
			for _, pid := range t.ParentsIsA {
				if _, ok := g.maps[i][pid]; !ok {
					return nil, &DanglingReferenceError{Prefix: f.Prefix, TermID: t.ID, Missing: pid, Kind: EdgeKindIsA}
				}
			}
			for _, pid := range t.ParentsPartOf {
				if _, ok := g.maps[i][pid]; !ok {
					return nil, &DanglingReferenceError{Prefix: f.Prefix, TermID: t.ID, Missing: pid, Kind: EdgeKindPartOf}
				}
			}
		}
	}

	return g, nil
}

// Term returns the term with the given local id in namespace nsIndex.
func (g *TermGraph) Term(nsIndex int, localID uint32) (*obo.Term, bool) {
	if nsIndex < 0 || nsIndex >= len(g.maps) {
		return nil, false
	}
	t, ok := g.maps[nsIndex][localID]
	return t, ok
}

// Sources describes every loaded namespace in input order.
func (g *TermGraph) Sources() []SourceNode {
	out := make([]SourceNode, 0, len(g.Files))
	for _, f := range g.Files {
		out = append(out, SourceNode{
			Prefix:    f.Prefix,
			Filename:  f.Filename,
			Version:   obo.ExtractVersion(f.Header),
			TermCount: len(f.Terms),
		})
	}
	return out
}

// Load populates a Store with one node per term and one edge per parent
// relationship. Nodes are inserted before edges so backends that MATCH both
// endpoints (Kuzu) see them.
func (g *TermGraph) Load(ctx context.Context, store Store) error {
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	for i, f := range g.Files {
		src := g.Sources()[i]
		if err := store.AddSource(ctx, src); err != nil {
			return fmt.Errorf("add source %s: %w", f.Prefix, err)
		}
		for _, t := range f.Terms {
			node := TermNode{
				Code:     Allocate(i, t.ID),
				ID:       Accession(t.Prefix, t.ID),
				Name:     t.Name,
				Def:      t.Def,
				Prefix:   t.Prefix,
				Obsolete: t.IsObsolete,
			}
			if err := store.AddTerm(ctx, node); err != nil {
				return fmt.Errorf("add term %s: %w", node.ID, err)
			}
		}
	}

	for i, f := range g.Files {
		for _, t := range f.Terms {
			child := Allocate(i, t.ID)
			for _, pid := range t.ParentsIsA {
				e := Edge{Child: child, Parent: Allocate(i, pid), Kind: EdgeKindIsA}
				if err := store.AddEdge(ctx, e); err != nil {
					return fmt.Errorf("add is_a edge from %s: %w", Accession(f.Prefix, t.ID), err)
				}
			}
			for _, pid := range t.ParentsPartOf {
				e := Edge{Child: child, Parent: Allocate(i, pid), Kind: EdgeKindPartOf}
				if err := store.AddEdge(ctx, e); err != nil {
					return fmt.Errorf("add part_of edge from %s: %w", Accession(f.Prefix, t.ID), err)
				}
			}
		}
	}

	return nil
}

// Database assembles a cvterm.Database directly from the graph, bypassing
// the generated artifact. Used by cvserve for interactive queries.
// primaryPrefix selects the vocabulary whose synonyms are propagated.
func (g *TermGraph) Database(primaryPrefix string) *cvterm.Database {
	return cvterm.NewDatabase(g.Tables(primaryPrefix))
}

// Tables flattens the graph into generation-ordered runtime tables. The
// emitter serializes exactly this data, so cvserve and generated artifacts
// agree by construction.
func (g *TermGraph) Tables(primaryPrefix string) cvterm.Tables {
	t := cvterm.Tables{
		BlockSize: BlockSize,
		Terms: []cvterm.TermRecord{
			{Code: cvterm.CVIDUnknown, ID: "??:0000000", Name: "CVID_Unknown", Def: "CVID_Unknown"},
		},
		Synonyms: []cvterm.SynonymRecord{
			{Code: cvterm.CVIDUnknown, Name: "Unknown"},
		},
	}

	for i, f := range g.Files {
		src := g.Sources()[i]
		t.Sources = append(t.Sources, cvterm.CV{
			ID:       f.Prefix,
			URI:      KnownSourceURI(f.Prefix),
			FullName: KnownSourceFullName(f.Prefix),
			Version:  src.Version,
		})
		for _, term := range f.Terms {
			code := Allocate(i, term.ID)
			t.Terms = append(t.Terms, cvterm.TermRecord{
				Code: code,
				ID:   Accession(term.Prefix, term.ID),
				Name: term.Name,
				Def:  term.Def,
			})
			for _, pid := range term.ParentsIsA {
				t.IsA = append(t.IsA, cvterm.Pair{Child: code, Parent: Allocate(i, pid)})
			}
			for _, pid := range term.ParentsPartOf {
				t.PartOf = append(t.PartOf, cvterm.Pair{Child: code, Parent: Allocate(i, pid)})
			}
			if f.Prefix == primaryPrefix {
				for _, syn := range term.ExactSynonyms {
					t.Synonyms = append(t.Synonyms, cvterm.SynonymRecord{Code: code, Name: syn})
				}
			}
		}
	}

	return t
}

// Full names and URIs for the supported vocabularies. The OBO headers do not
// carry these, so they are fixed here the same way the ontology files
// themselves are fixed inputs.
var knownSources = map[string][2]string{
	"MS": {
		"Proteomics Standards Initiative Mass Spectrometry Ontology",
		"http://psidev.cvs.sourceforge.net/*checkout*/psidev/psi/psi-ms/mzML/controlledVocabulary/psi-ms.obo",
	},
	"UO": {
		"Unit Ontology",
		"http://obo.cvs.sourceforge.net/*checkout*/obo/obo/ontology/phenotype/unit.obo",
	},
}

// KnownSourceFullName returns the registered full name for a prefix, or "".
func KnownSourceFullName(prefix string) string {
	return knownSources[prefix][0]
}

// KnownSourceURI returns the registered source URI for a prefix, or "".
func KnownSourceURI(prefix string) string {
	return knownSources[prefix][1]
}
