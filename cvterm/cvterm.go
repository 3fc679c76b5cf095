// Package cvterm provides the runtime lookup structures behind generated
// controlled-vocabulary artifacts. The generator emits flat tables in
// generation order; a Database builds the in-memory maps from those tables
// exactly once and is immutable afterwards, so no synchronization is needed
// after construction.
package cvterm

// CVID is the globally unique integer code of a controlled-vocabulary term.
// Codes combine the term's local accession with a per-namespace block offset
// (local id + block size * namespace index).
type CVID int64

// CVIDUnknown is the sentinel code returned when a lookup cannot resolve to
// a real term.
const CVIDUnknown CVID = -1

// CV describes one controlled-vocabulary source and the short tag used to
// refer to it.
type CV struct {
	// ID is the short reference tag, e.g. "MS".
	ID string

	// URI locates the ontology resource.
	URI string

	// FullName is the usual name of the resource.
	FullName string

	// Version is the ontology release the terms were drawn from.
	Version string
}

// Empty reports whether every field of the CV is empty.
func (cv CV) Empty() bool {
	return cv.ID == "" && cv.URI == "" && cv.FullName == "" && cv.Version == ""
}

// TermInfo is the full detail record of one vocabulary term.
type TermInfo struct {
	CVID          CVID
	ID            string // accession string, e.g. "MS:0000082"
	Name          string
	Def           string
	ParentsIsA    []CVID
	ParentsPartOf []CVID
	ExactSynonyms []string
}

// ShortName returns the shortest of the term's name and exact synonyms.
func (t TermInfo) ShortName() string {
	result := t.Name
	for _, syn := range t.ExactSynonyms {
		if len(syn) < len(result) {
			result = syn
		}
	}
	return result
}

// Prefix returns the namespace portion of the term's accession string.
func (t TermInfo) Prefix() string {
	for i := 0; i < len(t.ID); i++ {
		if t.ID[i] == ':' {
			return t.ID[:i]
		}
	}
	return t.ID
}

// TermRecord is one row of the generated flat term table.
type TermRecord struct {
	Code CVID
	ID   string
	Name string
	Def  string
}

// Pair is one child→parent relationship edge in a generated table.
type Pair struct {
	Child  CVID
	Parent CVID
}

// SynonymRecord links an exact synonym string to its canonical term code.
type SynonymRecord struct {
	Code CVID
	Name string
}

// Tables is the flat data a generated definitions artifact feeds into
// NewDatabase. All slices are in generation order; Sources is indexed by
// namespace block index.
type Tables struct {
	// BlockSize is the per-namespace code block size used at generation
	// time. It is emitted into the artifact so code assembly and code
	// splitting stay in sync by construction.
	BlockSize int64

	Sources  []CV
	Terms    []TermRecord
	IsA      []Pair
	PartOf   []Pair
	Synonyms []SynonymRecord
}
