package obo

import "regexp"

var (
	// Matches a whole header line carrying a version field. The [^-] guard
	// rejects "format-version:" and "data-version:" style fields.
	versionRe = regexp.MustCompile(`^.*?[^-]version: (\S+)$`)

	// Fallback: the first token of a "date:" header line.
	dateRe = regexp.MustCompile(`^\s*date: (\S+).*$`)
)

// ExtractVersion scans header lines in order and returns the ontology
// version string: the first "version:" field if present, else the first
// "date:" field, else "unknown". A version field on a later line still wins
// over an earlier date fallback.
func ExtractVersion(header []string) string {
	version := ""
	for _, line := range header {
		if m := versionRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
		if version == "" {
			if m := dateRe.FindStringSubmatch(line); m != nil {
				version = m[1]
			}
		}
	}
	if version == "" {
		return "unknown"
	}
	return version
}
