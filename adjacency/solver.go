// Package adjacency implements the per-flavor adjacency solvers (§4.4)
// and the flavor-independent contact classification they share.
package adjacency

import (
	"log"

	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/mask"
)

// Solver is the narrow capability set each grid flavor implements,
// per the Design Notes: build this block's own outgoing descriptor,
// decide adjacency against one remote descriptor, and materialize the
// ghost coordinate/point data once the extent expander has settled the
// final thickness (§4.5).
type Solver interface {
	BuildDescriptor(b *block.Block) *block.Structure
	IsAdjacent(local *block.Block, remote *block.Structure) (shifted block.Extent, ok bool)
	MaterializeGhostCoordinates(b *block.Block)
}

// ProcessContact is the flavor-independent second half of §4.4: given a
// local block and a remote descriptor already known to be geometrically
// adjacent with shifted extent `shifted`, it computes masks, classifies
// the contact, grows ExtentGhostThickness / ExtentWithNewGhosts on every
// contact side, and reports whether the descriptor should be kept.
//
// On entry remote.Extent is still the remote's own native extent; on a
// true-adjacent return, ProcessContact overwrites remote.Extent with
// `shifted` (the remote re-expressed in local's frame) and initializes
// remote.ExtentWithNewGhosts to the same value before growing it, matching
// how thickness growth is recorded against the shifted frame.
func ProcessContact(local *block.Block, remote *block.Structure, shifted block.Extent, userGhostLevels int) bool {
	adjacencyMask, overlapMask := mask.Compute(local.Info.Extent, shifted)

	dataDimension := remote.DataDimension
	if !mask.DimensionConsistent(adjacencyMask, dataDimension) {
		log.Printf("ghostgrid: adjacency mask %#x inconsistent with grid dimension %d for block %d vs remote %d, discarding",
			adjacencyMask, dataDimension, local.GID, remote.GID)
		return false
	}

	kind, sides := mask.Classify(local.Info.Extent, adjacencyMask, overlapMask)
	if kind == mask.NotAdjacent {
		return false
	}

	remote.Extent = shifted
	remote.ExtentWithNewGhosts = shifted
	remote.AdjacencyMask = adjacencyMask
	remote.OverlapMask = overlapMask

	for _, s := range sides {
		mask.GrowThickness(&local.Info, remote, s, userGhostLevels)
	}
	return true
}
