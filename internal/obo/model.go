package obo

// Term is one controlled-vocabulary concept parsed from a [Term] stanza.
type Term struct {
	Prefix        string // namespace prefix, e.g. "MS"
	ID            uint32 // numeric accession, unique within the namespace
	Name          string
	Def           string
	ExactSynonyms []string
	ParentsIsA    []uint32 // local ids within the same namespace
	ParentsPartOf []uint32
	IsObsolete    bool
}

// File is the parsed content of one OBO input file. Header lines and terms
// are kept in source order; the emitter depends on that order for
// reproducible output.
type File struct {
	Filename string
	Prefix   string   // namespace prefix shared by every term in the file
	Header   []string // raw header lines preceding the first stanza
	Terms    []Term
}
