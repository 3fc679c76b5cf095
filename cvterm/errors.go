package cvterm

import "fmt"

// FormatError reports an accession string that does not split into exactly
// one "<prefix>:<digits>" pair.
type FormatError struct {
	ID string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cvterm: cannot split id %q into prefix and numeric components", e.ID)
}

// ConversionError reports an accession whose numeric portion is not an
// unsigned integer or overflows the accession range.
type ConversionError struct {
	ID  string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cvterm: invalid numeric accession in %q: %v", e.ID, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
