package obo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniMS = `format-version: 1.2
date: 19:12:2008 14:37
saved-by: deutsch
default-namespace: PSI-MS

[Term]
id: MS:0000000
name: Proteomics Standards Initiative Mass Spectrometry Vocabularies
def: "PSI MS controlled vocabularies." [PSI:MS]

[Term]
id: MS:0000264
name: ion trap
def: "A device which traps ions." [PSI:MS]
is_a: MS:0000000 ! Proteomics Standards Initiative Mass Spectrometry Vocabularies

[Term]
id: MS:0000082
name: quadrupole ion trap
def: "Quadrupole electric field trap." [PSI:MS]
synonym: "QIT" EXACT []
synonym: "Paul Trap" RELATED []
is_a: MS:0000264 ! ion trap
relationship: part_of MS:0000000 ! Proteomics Standards Initiative Mass Spectrometry Vocabularies
`

func parseMini(t *testing.T) *File {
	t.Helper()
	f, err := ParseReader("psi-ms.obo", strings.NewReader(miniMS))
	require.NoError(t, err)
	return f
}

func TestParse_HeaderAndOrder(t *testing.T) {
	f := parseMini(t)

	assert.Equal(t, "MS", f.Prefix)
	assert.Equal(t, []string{
		"format-version: 1.2",
		"date: 19:12:2008 14:37",
		"saved-by: deutsch",
		"default-namespace: PSI-MS",
	}, f.Header)

	require.Len(t, f.Terms, 3)
	assert.Equal(t, uint32(0), f.Terms[0].ID)
	assert.Equal(t, uint32(264), f.Terms[1].ID)
	assert.Equal(t, uint32(82), f.Terms[2].ID)
}

func TestParse_TermFields(t *testing.T) {
	f := parseMini(t)

	trap := f.Terms[2]
	assert.Equal(t, "quadrupole ion trap", trap.Name)
	assert.Equal(t, "Quadrupole electric field trap.", trap.Def)
	assert.Equal(t, []uint32{264}, trap.ParentsIsA)
	assert.Equal(t, []uint32{0}, trap.ParentsPartOf)
	assert.Equal(t, []string{"QIT"}, trap.ExactSynonyms, "RELATED synonyms must be dropped")
	assert.False(t, trap.IsObsolete)
}

func TestParse_MalformedID(t *testing.T) {
	src := `[Term]
id: MS:0000category
`
	_, err := ParseReader("bad.obo", strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "bad.obo", perr.Filename)
}

func TestParse_ObsoleteTerm(t *testing.T) {
	src := `[Term]
id: MS:0000195
name: retired term
is_obsolete: true
`
	f, err := ParseReader("ms.obo", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Terms, 1)
	assert.True(t, f.Terms[0].IsObsolete)
}

func TestParse_MalformedReference(t *testing.T) {
	src := `[Term]
id: MS:0000001
name: sample
is_a: MS:notanumber ! broken
`
	_, err := ParseReader("ms.obo", strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Line)
	assert.Contains(t, perr.Msg, "non-numeric")
}

func TestParse_EmptySynonymValue(t *testing.T) {
	src := "[Term]\nid: MS:0000001\nname: sample\nsynonym: \n"
	f, err := ParseReader("ms.obo", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Terms, 1)
	assert.Empty(t, f.Terms[0].ExactSynonyms)
}

func TestParse_SynonymExtraLeadingSpace(t *testing.T) {
	src := `[Term]
id: MS:0000082
name: quadrupole ion trap
synonym:  "QIT" EXACT []
`
	f, err := ParseReader("ms.obo", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Terms, 1)
	assert.Equal(t, []string{"QIT"}, f.Terms[0].ExactSynonyms)
}

func TestParse_EscapedQuoteInDef(t *testing.T) {
	src := `[Term]
id: MS:0000082
name: quadrupole ion trap
def: "A \"Paul trap\" analyzer." [PSI:MS]
synonym: "\"paul\" trap" EXACT []
`
	f, err := ParseReader("ms.obo", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Terms, 1)
	assert.Equal(t, `A \"Paul trap\" analyzer.`, f.Terms[0].Def)
	assert.Equal(t, []string{`\"paul\" trap`}, f.Terms[0].ExactSynonyms)
}

func TestParse_CrossNamespaceReferenceRejected(t *testing.T) {
	src := `[Term]
id: MS:0000001
name: sample
is_a: UO:0000001 ! second
`
	_, err := ParseReader("ms.obo", strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "cross-namespace")
}

func TestParse_MissingIDLine(t *testing.T) {
	src := `[Term]
name: anonymous
`
	_, err := ParseReader("ms.obo", strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "without id")
}

func TestParse_NonTermStanzasSkipped(t *testing.T) {
	src := `format-version: 1.2

[Typedef]
id: part_of
name: part of

[Term]
id: UO:0000001
name: second
`
	f, err := ParseReader("unit.obo", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Terms, 1)
	assert.Equal(t, "UO", f.Prefix)
	assert.Equal(t, "second", f.Terms[0].Name)
}

func TestParse_EscapesPreserved(t *testing.T) {
	src := `[Term]
id: MS:0000011
name: ratio m\:z
def: "mass \: charge, a.k.a. m/z \(Th\)" [PSI:MS]
`
	f, err := ParseReader("ms.obo", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Terms, 1)
	assert.Equal(t, `ratio m\:z`, f.Terms[0].Name, "OBO escapes pass through untouched")
	assert.Equal(t, `mass \: charge, a.k.a. m/z \(Th\)`, f.Terms[0].Def)
}
