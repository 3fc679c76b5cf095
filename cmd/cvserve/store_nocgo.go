//go:build !cgo

package main

import (
	"fmt"

	"github.com/openmsio/cvgen/internal/graph"
)

// openFileStore reports that the Kuzu backend is unavailable without cgo.
func openFileStore(string) (graph.Store, error) {
	return nil, fmt.Errorf("the file-backed graph store requires a cgo-enabled build")
}
