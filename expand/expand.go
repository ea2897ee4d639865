// Package expand implements the extent expander (§4.5): finalizing a
// block's output extent from its accumulated per-side ghost thickness,
// allocating the ghost-flag and attribute arrays sized to it, and
// delegating coordinate/point materialization to the flavor solver.
package expand

import "github.com/notargets/ghostgrid/block"

// Coordinates is the narrow capability expand needs from a flavor
// solver: materializing the output coordinate/point arrays once
// thickness has settled. adjacency.Solver satisfies this directly; kept
// as its own interface here so this package does not need to import
// adjacency (which would gain nothing and only add an import edge).
type Coordinates interface {
	MaterializeGhostCoordinates(b *block.Block)
}

// Expand finalizes b's output extent, allocates its ghost-flag arrays,
// and asks the flavor solver to materialize output coordinate/point
// arrays (§4.5). Must run after every remote descriptor for b has been
// classified by the adjacency solver (§5's ordering guarantee).
func Expand(b *block.Block, solver Coordinates) {
	b.OutputExtent = b.Info.OutputExtent()

	n := b.OutputExtent.NumPoints()
	c := b.OutputExtent.NumCells()
	b.GhostPointArray = make([]uint8, n[0]*n[1]*n[2])
	b.GhostCellArray = make([]uint8, c[0]*c[1]*c[2])

	solver.MaterializeGhostCoordinates(b)
}

// AllocateArrays creates output cell/point arrays with the same
// name/component layout as the input block's, sized to b's now-final
// output extent, ready to receive values from CopyOwnData and later from
// fieldexchange.Exchange.
func AllocateArrays(b *block.Block) {
	outCells := b.OutputExtent.NumCells()
	numOutCells := outCells[0] * outCells[1] * outCells[2]
	outPoints := b.OutputExtent.NumPoints()
	numOutPoints := outPoints[0] * outPoints[1] * outPoints[2]

	b.CellArrays = make([]*block.Array, len(b.Input.CellArrays))
	for i, a := range b.Input.CellArrays {
		b.CellArrays[i] = a.CloneEmpty(numOutCells)
	}
	b.PointArrays = make([]*block.Array, len(b.Input.PointArrays))
	for i, a := range b.Input.PointArrays {
		b.PointArrays[i] = a.CloneEmpty(numOutPoints)
	}
}

// CopyOwnData copies this block's own true-extent (already-peeled)
// attribute tuples from the input arrays into the output arrays at their
// new, expanded-extent offsets. This is the block's own authoritative
// interior data, not a ghost fill: every true cell and point keeps
// exactly the value the host pipeline gave it, just relocated.
func CopyOwnData(b *block.Block) {
	trueExtent := b.Info.Extent
	rawExtent := b.Input.Extent
	outExtent := b.OutputExtent

	trueExtent.EachCell(func(i, j, k int) {
		src := rawExtent.CellIndex(i, j, k)
		dst := outExtent.CellIndex(i, j, k)
		for ai, a := range b.Input.CellArrays {
			copy(b.CellArrays[ai].Tuple(dst), a.Tuple(src))
		}
	})
	trueExtent.EachPoint(func(i, j, k int) {
		src := rawExtent.PointIndex(i, j, k)
		dst := outExtent.PointIndex(i, j, k)
		for ai, a := range b.Input.PointArrays {
			copy(b.PointArrays[ai].Tuple(dst), a.Tuple(src))
		}
	})
}

// IsDonorSide reports whether side s is the donor side of its axis for a
// shared-interface point: per §4.5, the participant whose own adjacency
// bit for that axis is Right/Back/Top is the donor and every other
// participant marks the point DUPLICATE instead.
func IsDonorSide(s block.Side) bool {
	return s.IsHigh()
}
