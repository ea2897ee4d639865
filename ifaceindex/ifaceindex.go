// Package ifaceindex implements the interface index builder (§4.6): for
// each retained (local block, neighbor) contact, the cell-id and point-id
// lists that say what to send from the input block and where to place
// what arrives in the output block.
package ifaceindex

import "github.com/notargets/ghostgrid/block"

// Pair holds the four index lists needed to route field data across one
// (local block, neighbor) contact.
type Pair struct {
	GID block.GID

	// InputCellIDs/InputPointIDs index into the local block's own input
	// arrays (Input.Extent-relative) — what this block sends.
	InputCellIDs  []int
	InputPointIDs []int

	// OutputCellIDs/OutputPointIDs index into the local block's output
	// (expanded) arrays — where this block places what it receives.
	OutputCellIDs  []int
	OutputPointIDs []int
}

// Build computes the four index lists for local block b against one
// retained remote descriptor (already classified true-adjacent by the
// adjacency solver, with remote.Extent overwritten to the shifted extent
// and remote.ExtentWithNewGhosts/AdjacencyMask filled in per
// adjacency.ProcessContact's contract).
func Build(b *block.Block, remote *block.Structure) Pair {
	p := Pair{GID: remote.GID}

	if region, ok := b.Info.Extent.Intersect(remote.ExtentWithNewGhosts); ok {
		p.InputCellIDs = cellIDs(region, b.Input.Extent)
		trimmed := trimNonDonor(region, remote.AdjacencyMask)
		p.InputPointIDs = pointIDs(trimmed, b.Input.Extent)
	}

	if region, ok := b.OutputExtent.Intersect(remote.Extent); ok {
		p.OutputCellIDs = cellIDs(region, b.OutputExtent)
		trimmed := trimNonDonor(region, shiftMask(remote.AdjacencyMask))
		p.OutputPointIDs = pointIDs(trimmed, b.OutputExtent)
	}

	return p
}

// trimNonDonor shrinks region inward by one layer on every side whose
// adjacency bit is set in mask and is not a donor side (§4.5): the
// participant whose bit is Left/Front/Bottom for a touched axis excludes
// that boundary plane from what it enumerates, leaving exactly the donor
// participant (Right/Back/Top bit) to include it.
func trimNonDonor(region block.Extent, mask uint8) block.Extent {
	out := region
	for s := block.Side(0); s < 6; s++ {
		if mask&block.AdjacencyBit(s) == 0 {
			continue
		}
		if s.IsHigh() {
			continue
		}
		axis := s.Axis()
		out[2*axis]++
	}
	return out
}

// shiftMask flips every set bit to its opposite side, matching §4.6's
// "one-bit shift of the adjacency mask" rule for the output interface
// lists: the roles of donor/duplicate flip between what we send and what
// we receive on the same contact.
func shiftMask(m uint8) uint8 {
	var out uint8
	for s := block.Side(0); s < 6; s++ {
		if m&block.AdjacencyBit(s) != 0 {
			out |= block.AdjacencyBit(s.Opposite())
		}
	}
	return out
}

func cellIDs(region, indexExtent block.Extent) []int {
	if !region.Valid() {
		return nil
	}
	var ids []int
	region.EachCell(func(i, j, k int) {
		ids = append(ids, indexExtent.CellIndex(i, j, k))
	})
	return ids
}

func pointIDs(region, indexExtent block.Extent) []int {
	if !region.Valid() {
		return nil
	}
	var ids []int
	region.EachPoint(func(i, j, k int) {
		ids = append(ids, indexExtent.PointIndex(i, j, k))
	})
	return ids
}
