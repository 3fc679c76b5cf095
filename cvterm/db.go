package cvterm

import (
	"strconv"
	"strings"
)

// Database holds the in-memory lookup maps built from generated flat tables.
// It is immutable after NewDatabase returns; generated artifacts wrap
// construction in sync.OnceValue so process-wide state is populated at most
// once even under concurrent first access.
type Database struct {
	blockSize int64
	prefixes  []string // generation order, index = namespace block index
	cvs       map[string]CV
	terms     map[CVID]*TermInfo
	codes     []CVID
	unknown   TermInfo
}

// NewDatabase builds the lookup maps from flat tables.
func NewDatabase(t Tables) *Database {
	db := &Database{
		blockSize: t.BlockSize,
		prefixes:  make([]string, 0, len(t.Sources)),
		cvs:       make(map[string]CV, len(t.Sources)),
		terms:     make(map[CVID]*TermInfo, len(t.Terms)),
		codes:     make([]CVID, 0, len(t.Terms)),
		unknown: TermInfo{
			CVID: CVIDUnknown,
			ID:   "??:0000000",
			Name: "CVID_Unknown",
			Def:  "CVID_Unknown",
		},
	}

	for _, src := range t.Sources {
		db.prefixes = append(db.prefixes, src.ID)
		db.cvs[src.ID] = src
	}

	for _, rec := range t.Terms {
		info := &TermInfo{CVID: rec.Code, ID: rec.ID, Name: rec.Name, Def: rec.Def}
		db.terms[rec.Code] = info
		db.codes = append(db.codes, rec.Code)
	}

	for _, p := range t.IsA {
		if info, ok := db.terms[p.Child]; ok {
			info.ParentsIsA = append(info.ParentsIsA, p.Parent)
		}
	}
	for _, p := range t.PartOf {
		if info, ok := db.terms[p.Child]; ok {
			info.ParentsPartOf = append(info.ParentsPartOf, p.Parent)
		}
	}
	for _, s := range t.Synonyms {
		if info, ok := db.terms[s.Code]; ok {
			info.ExactSynonyms = append(info.ExactSynonyms, s.Name)
		}
	}

	return db
}

// CV returns the source descriptor for the given namespace prefix, or a
// zero-value CV when the prefix is unknown. It never fails.
func (db *Database) CV(prefix string) CV {
	return db.cvs[prefix]
}

// TermInfo returns the detail record for code, or the sentinel record when
// the code is unrecognized.
func (db *Database) TermInfo(code CVID) TermInfo {
	if info, ok := db.terms[code]; ok {
		return *info
	}
	return db.unknown
}

// TermInfoFromID parses an accession string such as "MS:0000082" and returns
// the matching detail record. An unknown prefix resolves to the sentinel
// record; a string that does not split into exactly two colon-separated
// tokens is a FormatError, and a non-numeric or overflowing accession under
// a known prefix is a ConversionError.
func (db *Database) TermInfoFromID(id string) (TermInfo, error) {
	tokens := strings.Split(id, ":")
	if len(tokens) != 2 {
		return TermInfo{}, &FormatError{ID: id}
	}
	prefix, digits := tokens[0], tokens[1]

	// Linear scan is fine: the namespace count is small and fixed at
	// generation time.
	nsIndex := -1
	for i, p := range db.prefixes {
		if p == prefix {
			nsIndex = i
			break
		}
	}
	if nsIndex < 0 {
		return db.TermInfo(CVIDUnknown), nil
	}

	localID, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return TermInfo{}, &ConversionError{ID: id, Err: err}
	}

	code := CVID(int64(localID) + db.blockSize*int64(nsIndex))
	return db.TermInfo(code), nil
}

// IsA reports whether child is the same term as parent or a transitive is-a
// descendant of it. Traversal carries a visited set so a cyclic is-a graph
// terminates instead of recursing forever.
func (db *Database) IsA(child, parent CVID) bool {
	return db.isA(child, parent, make(map[CVID]bool))
}

func (db *Database) isA(child, parent CVID, visited map[CVID]bool) bool {
	if child == parent {
		return true
	}
	if visited[child] {
		return false
	}
	visited[child] = true

	info, ok := db.terms[child]
	if !ok {
		return false
	}
	for _, p := range info.ParentsIsA {
		if db.isA(p, parent, visited) {
			return true
		}
	}
	return false
}

// Codes returns every code in the term table in generation order, synonyms
// excluded. The returned slice is a copy.
func (db *Database) Codes() []CVID {
	out := make([]CVID, len(db.codes))
	copy(out, db.codes)
	return out
}

// BlockSize returns the per-namespace code block size the database was
// generated with.
func (db *Database) BlockSize() int64 {
	return db.blockSize
}
