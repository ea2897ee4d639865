// Package diagnostics builds and reports on the block-adjacency graph a
// completed job produced, for verbose job reporting (the ghost-cell
// generator's analogue of a mesh partitioner's post-partition report).
package diagnostics

import (
	"log"

	"github.com/james-bowman/sparse"

	"github.com/notargets/ghostgrid/block"
)

// AdjacencyMatrix builds a sparse block-adjacency matrix over every
// block across every peer's store: entry (i, j) is 1 if block i retained
// an adjacency to block j after the adjacency solver ran, indexed by the
// order gids are first seen while scanning stores. gidToRow gives the
// caller the row/column a given gid landed on.
func AdjacencyMatrix(stores []*block.Store) (matrix *sparse.CSR, gidToRow map[block.GID]int) {
	gidToRow = make(map[block.GID]int)
	for _, store := range stores {
		for _, b := range store.All() {
			if _, ok := gidToRow[b.GID]; !ok {
				gidToRow[b.GID] = len(gidToRow)
			}
		}
	}

	n := len(gidToRow)
	dok := sparse.NewDOK(n, n)
	for _, store := range stores {
		for _, b := range store.All() {
			row := gidToRow[b.GID]
			for gid := range b.Structures {
				col, ok := gidToRow[gid]
				if !ok {
					continue
				}
				dok.Set(row, col, 1)
			}
		}
	}
	return dok.ToCSR(), gidToRow
}

// Report logs a summary of the job's block counts, per-peer load, and
// adjacency graph density, in the style of
// DG3D/mesh/mesh_partitioner.go's analyzePartition.
func Report(stores []*block.Store) {
	total := 0
	for p, store := range stores {
		log.Printf("ghostgrid: peer %d owns %d blocks", p, store.Len())
		total += store.Len()
	}

	matrix, _ := AdjacencyMatrix(stores)
	r, c := matrix.Dims()
	nnz := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if matrix.At(i, j) != 0 {
				nnz++
			}
		}
	}

	log.Printf("ghostgrid: %d blocks total across %d peers", total, len(stores))
	log.Printf("ghostgrid: adjacency graph %dx%d, %d retained contacts", r, c, nnz)
}
