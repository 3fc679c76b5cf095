package graph

import (
	"fmt"

	"github.com/openmsio/cvgen/cvterm"
)

// BlockSize is the contiguous code block reserved per namespace. It exceeds
// any real local accession, which is what makes Allocate injective across
// every namespace loaded in one run. The constant is emitted into the
// definitions artifact so the runtime's inverse mapping uses the same value
// by construction.
const BlockSize = 100000000

// Allocate maps a namespace block index and local accession to the term's
// globally unique code. Pure function, no state.
func Allocate(nsIndex int, localID uint32) cvterm.CVID {
	return cvterm.CVID(int64(localID) + BlockSize*int64(nsIndex))
}

// Split inverts Allocate by integer division and modulo.
func Split(code cvterm.CVID) (nsIndex int, localID uint32) {
	return int(int64(code) / BlockSize), uint32(int64(code) % BlockSize)
}

// Accession formats the canonical "<prefix>:<7-digit id>" accession string.
func Accession(prefix string, localID uint32) string {
	return fmt.Sprintf("%s:%07d", prefix, localID)
}
