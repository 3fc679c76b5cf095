package obo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseError reports a line that violates the supported OBO subset grammar.
// Generation aborts on the first ParseError; partial files are not salvaged.
type ParseError struct {
	Filename string
	Line     int
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Msg)
}

// Parse reads and parses the OBO file at path. The file is fully consumed
// and closed before Parse returns.
func Parse(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obo: open: %w", err)
	}
	defer f.Close()
	return ParseReader(filepath.Base(path), f)
}

// ParseReader parses OBO content from r. filename is used in error messages
// and recorded on the returned File.
func ParseReader(filename string, r io.Reader) (*File, error) {
	p := &parser{
		filename: filename,
		scanner:  bufio.NewScanner(r),
		file:     &File{Filename: filename},
	}
	p.scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.file, nil
}

const scannerBufferSize = 1 << 20

type parser struct {
	filename string
	scanner  *bufio.Scanner
	line     int
	file     *File
	cur      *Term // term being assembled, nil outside [Term] stanzas
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Filename: p.filename, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) run() error {
	inHeader := true

	for p.scanner.Scan() {
		p.line++
		line := strings.TrimRight(p.scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			inHeader = false
			if err := p.flush(); err != nil {
				return err
			}
			if line == "[Term]" {
				p.cur = &Term{}
			}
			continue
		}

		switch {
		case inHeader:
			p.file.Header = append(p.file.Header, line)
		case p.cur != nil:
			if err := p.termLine(line); err != nil {
				return err
			}
		}
	}
	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("obo: read %s: %w", p.filename, err)
	}
	return p.flush()
}

// flush appends the in-progress term, validating that it carried an id line.
func (p *parser) flush() error {
	if p.cur == nil {
		return nil
	}
	if p.cur.Prefix == "" {
		return p.errf("[Term] stanza without id: line")
	}
	p.file.Terms = append(p.file.Terms, *p.cur)
	p.cur = nil
	return nil
}

// termLine dispatches one tagged line inside a [Term] stanza.
func (p *parser) termLine(line string) error {
	key, val, ok := strings.Cut(line, ": ")
	if !ok {
		// Tag with an empty value (e.g. "comment:"); nothing to extract.
		return nil
	}

	switch key {
	case "id":
		prefix, id, err := p.accession(val)
		if err != nil {
			return err
		}
		if p.file.Prefix == "" {
			p.file.Prefix = prefix
		} else if prefix != p.file.Prefix {
			return p.errf("term prefix %q does not match file prefix %q", prefix, p.file.Prefix)
		}
		p.cur.Prefix = prefix
		p.cur.ID = id
	case "name":
		p.cur.Name = val
	case "def":
		p.cur.Def = quoted(val)
	case "synonym":
		if text, exact := exactSynonym(val); exact {
			p.cur.ExactSynonyms = append(p.cur.ExactSynonyms, text)
		}
	case "is_a":
		id, err := p.reference(val)
		if err != nil {
			return err
		}
		p.cur.ParentsIsA = append(p.cur.ParentsIsA, id)
	case "relationship":
		qualifier, rest, ok := strings.Cut(val, " ")
		if !ok {
			return p.errf("malformed relationship line %q", line)
		}
		if qualifier != "part_of" {
			return nil // only part_of is tracked
		}
		id, err := p.reference(rest)
		if err != nil {
			return err
		}
		p.cur.ParentsPartOf = append(p.cur.ParentsPartOf, id)
	case "is_obsolete":
		p.cur.IsObsolete = val == "true"
	}
	return nil
}

// accession splits a "<prefix>:<digits>" token into its parts.
func (p *parser) accession(val string) (string, uint32, error) {
	prefix, digits, ok := strings.Cut(val, ":")
	if !ok || prefix == "" {
		return "", 0, p.errf("malformed id %q", val)
	}
	id, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return "", 0, p.errf("malformed id %q: non-numeric accession", val)
	}
	return prefix, uint32(id), nil
}

// reference parses a parent reference such as "MS:0000010 ! ion trap",
// enforcing that the reference stays within the file's namespace.
func (p *parser) reference(val string) (uint32, error) {
	ref, _, _ := strings.Cut(val, " ! ")
	ref = strings.TrimSpace(ref)
	prefix, id, err := p.accession(ref)
	if err != nil {
		return 0, err
	}
	if p.file.Prefix != "" && prefix != p.file.Prefix {
		return 0, p.errf("cross-namespace reference %q is not supported", ref)
	}
	return id, nil
}

// quotedSpan locates the first complete quoted region of s, honoring
// backslash escapes so an embedded \" does not terminate the scan. It
// returns the text between the quotes (escapes kept verbatim) and the index
// one past the closing quote.
func quotedSpan(s string) (text string, end int, ok bool) {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return "", 0, false
	}
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[start+1 : i], i + 1, true
		}
	}
	return "", 0, false
}

// quoted extracts the text between the first pair of double quotes,
// returning the input unchanged when it carries no quotes.
func quoted(s string) string {
	if text, _, ok := quotedSpan(s); ok {
		return text
	}
	if start := strings.IndexByte(s, '"'); start >= 0 {
		return s[start+1:] // unterminated quote; take the remainder
	}
	return s
}

// exactSynonym parses `"text" SCOPE [xrefs]`, reporting whether the scope
// qualifier is EXACT. Other scopes (RELATED, NARROW, ...) are ignored, as
// are values with no complete quoted text.
func exactSynonym(s string) (string, bool) {
	text, end, ok := quotedSpan(s)
	if !ok {
		return "", false
	}
	rest := strings.Fields(s[end:])
	if len(rest) == 0 || rest[0] != "EXACT" {
		return "", false
	}
	return text, true
}
