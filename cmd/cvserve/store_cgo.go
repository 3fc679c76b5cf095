//go:build cgo

package main

import "github.com/openmsio/cvgen/internal/graph"

// openFileStore opens a file-backed Kuzu graph store.
func openFileStore(path string) (graph.Store, error) {
	return graph.NewKuzuFileStore(path)
}
