// Package gen renders a term graph into the two generated Go artifacts: a
// declarations file carrying the CVID enumeration and a definitions file
// carrying the flat data tables and accessor routines. Output is a pure
// function of the input graph; identical inputs produce byte-identical
// artifacts.
package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/graph"
)

// Options controls where the artifacts go and how they are named.
type Options struct {
	// OutputDir receives the generated files. Created if missing.
	OutputDir string

	// Basename names the artifacts: <Basename>.go and <Basename>_data.go.
	// Defaults to "cv".
	Basename string

	// Package is the package clause of the generated files. Defaults to the
	// sanitized Basename.
	Package string

	// PrimaryPrefix selects the vocabulary whose exact synonyms become
	// enumeration aliases and synonym-table rows. Defaults to "MS".
	PrimaryPrefix string
}

func (o *Options) setDefaults() {
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Basename == "" {
		o.Basename = "cv"
	}
	if o.Package == "" {
		o.Package = identifier(o.Basename)
	}
	if o.PrimaryPrefix == "" {
		o.PrimaryPrefix = "MS"
	}
}

// Emit writes both artifacts into opts.OutputDir and returns their paths in
// declarations, definitions order.
func Emit(g *graph.TermGraph, opts Options) ([]string, error) {
	opts.setDefaults()

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("gen: create output dir: %w", err)
	}

	artifacts := []struct {
		name string
		data []byte
	}{
		{opts.Basename + ".go", declarations(g, opts)},
		{opts.Basename + "_data.go", definitions(g, opts)},
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(opts.OutputDir, a.name)
		if err := os.WriteFile(path, a.data, 0o644); err != nil {
			return nil, fmt.Errorf("gen: write %s: %w", a.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// EnumName builds the constant identifier for a term: the namespace prefix,
// an underscore, then the term name with every byte outside [0-9A-Za-z]
// replaced by an underscore.
func EnumName(prefix, name string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + len(name))
	b.WriteString(prefix)
	b.WriteByte('_')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// identifier sanitizes s into a usable Go package name.
func identifier(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 || s[0] >= '0' && s[0] <= '9' {
		return "_" + b.String()
	}
	return b.String()
}

// writeHeader emits the fixed attribution block. It is identical across runs
// except for the artifact filename.
func writeHeader(buf *bytes.Buffer, filename string) {
	fmt.Fprintf(buf, "// Code generated by cvgen. DO NOT EDIT.\n//\n// %s\n//\n// Controlled-vocabulary artifact generated from OBO source files.\n// Regenerate with cvgen instead of editing.\n\n", filename)
}

// declarations renders the enumeration artifact: one CVID constant per term
// in generation order, plus synonym aliases for the primary vocabulary.
func declarations(g *graph.TermGraph, opts Options) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, opts.Basename+".go")

	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	buf.WriteString("import \"github.com/openmsio/cvgen/cvterm\"\n\n")
	buf.WriteString("// CVID identifies a controlled-vocabulary term by its globally unique code.\ntype CVID = cvterm.CVID\n\n")
	buf.WriteString("// Enumeration of controlled vocabulary (CV) terms, generated from OBO file(s).\nconst (\n")
	buf.WriteString("\tCVID_Unknown CVID = -1\n")

	for i, f := range g.Files {
		for _, t := range f.Terms {
			fmt.Fprintf(&buf, "\n\t// %s: %s\n\t%s CVID = %d\n",
				t.Name, t.Def, EnumName(t.Prefix, t.Name), graph.Allocate(i, t.ID))

			if f.Prefix != opts.PrimaryPrefix {
				continue
			}
			for _, syn := range t.ExactSynonyms {
				fmt.Fprintf(&buf, "\n\t// %s: %s\n\t%s CVID = %s\n",
					t.Name, t.Def, EnumName(t.Prefix, syn), EnumName(t.Prefix, t.Name))
			}
		}
	}

	buf.WriteString(")\n")
	return buf.Bytes()
}

// definitions renders the data artifact: flat tables in generation order and
// the once-initialized accessor routines delegating into cvterm.
func definitions(g *graph.TermGraph, opts Options) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, opts.Basename+"_data.go")

	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	buf.WriteString("import (\n\t\"sync\"\n\n\t\"github.com/openmsio/cvgen/cvterm\"\n)\n\n")
	fmt.Fprintf(&buf, "// enumBlockSize separates the code blocks of the loaded vocabularies.\nconst enumBlockSize = %d\n\n", graph.BlockSize)

	tables := g.Tables(opts.PrimaryPrefix)

	// Table rows reference terms by constant name so the two artifacts can
	// only drift apart by failing to compile.
	names := map[cvterm.CVID]string{cvterm.CVIDUnknown: "CVID_Unknown"}
	for i, f := range g.Files {
		for _, t := range f.Terms {
			names[graph.Allocate(i, t.ID)] = EnumName(t.Prefix, t.Name)
		}
	}

	buf.WriteString("var sources = []cvterm.CV{\n")
	for _, cv := range tables.Sources {
		fmt.Fprintf(&buf, "\t{ID: %s, URI: %s, FullName: %s, Version: %s},\n",
			strconv.Quote(cv.ID), strconv.Quote(cv.URI), strconv.Quote(cv.FullName), strconv.Quote(cv.Version))
	}
	buf.WriteString("}\n\n")

	buf.WriteString("var termInfos = []cvterm.TermRecord{\n")
	for _, rec := range tables.Terms {
		fmt.Fprintf(&buf, "\t{Code: %s, ID: %s, Name: %s, Def: %s},\n",
			names[rec.Code], strconv.Quote(rec.ID), strconv.Quote(rec.Name), strconv.Quote(rec.Def))
	}
	buf.WriteString("}\n\n")

	writePairs(&buf, "relationsIsA", tables.IsA, names)
	writePairs(&buf, "relationsPartOf", tables.PartOf, names)

	buf.WriteString("var relationsExactSynonym = []cvterm.SynonymRecord{\n")
	for _, s := range tables.Synonyms {
		fmt.Fprintf(&buf, "\t{Code: %s, Name: %s},\n", names[s.Code], strconv.Quote(s.Name))
	}
	buf.WriteString("}\n\n")

	buf.WriteString(accessorTrailer)
	return buf.Bytes()
}

func writePairs(buf *bytes.Buffer, name string, pairs []cvterm.Pair, names map[cvterm.CVID]string) {
	if len(pairs) == 0 {
		fmt.Fprintf(buf, "var %s = []cvterm.Pair{}\n\n", name)
		return
	}
	fmt.Fprintf(buf, "var %s = []cvterm.Pair{\n", name)
	for _, p := range pairs {
		fmt.Fprintf(buf, "\t{Child: %s, Parent: %s},\n", names[p.Child], names[p.Parent])
	}
	buf.WriteString("}\n\n")
}

// accessorTrailer is the fixed tail of the definitions artifact. The database
// is built from the tables at most once, on first use, however many
// goroutines race to be first.
const accessorTrailer = `var db = sync.OnceValue(func() *cvterm.Database {
	return cvterm.NewDatabase(cvterm.Tables{
		BlockSize: enumBlockSize,
		Sources:   sources,
		Terms:     termInfos,
		IsA:       relationsIsA,
		PartOf:    relationsPartOf,
		Synonyms:  relationsExactSynonym,
	})
})

// CV returns the descriptor of the vocabulary identified by prefix, or a
// zero-value descriptor when the prefix is not a loaded vocabulary.
func CV(prefix string) cvterm.CV { return db().CV(prefix) }

// TermInfo returns the detail record for cvid, or the CVID_Unknown sentinel
// record when cvid is not a generated code.
func TermInfo(cvid CVID) cvterm.TermInfo { return db().TermInfo(cvid) }

// TermInfoFromID resolves an accession string such as "MS:0000082" to its
// detail record.
func TermInfoFromID(id string) (cvterm.TermInfo, error) { return db().TermInfoFromID(id) }

// IsA reports whether child is parent or descends from it over is_a
// relations.
func IsA(child, parent CVID) bool { return db().IsA(child, parent) }

// CVIDs returns every generated code, CVID_Unknown first, in generation
// order. Synonym aliases are excluded.
func CVIDs() []CVID { return db().Codes() }
`
