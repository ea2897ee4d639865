// Package ghostgen orchestrates the full ghost-cell generation pipeline
// end to end (§2, §5): self-consistency, peel, descriptor exchange,
// per-flavor adjacency solving, extent expansion, interface index
// building, and the field exchange plus hidden-ghost fill.
package ghostgen

import (
	"github.com/notargets/ghostgrid/adjacency"
	"github.com/notargets/ghostgrid/adjacency/curvilinear"
	"github.com/notargets/ghostgrid/adjacency/image"
	"github.com/notargets/ghostgrid/adjacency/rectilinear"
	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/exchange"
	"github.com/notargets/ghostgrid/expand"
	"github.com/notargets/ghostgrid/fieldexchange"
	"github.com/notargets/ghostgrid/ifaceindex"
	"github.com/notargets/ghostgrid/peel"
)

// Job describes one invocation's parameters (§6).
type Job struct {
	// OutputGhostLevel is the number of ghost layers to grow at each
	// contact, capped by whatever thickness the neighbor can actually
	// supply.
	OutputGhostLevel int
	// InputGhostLevel is how many pre-existing ghost layers, if any, the
	// host pipeline says its input blocks already carry (§4.2).
	InputGhostLevel int
}

// Generate runs the full pipeline across every peer's store at once.
// stores is indexed by peer id; on return every surviving block in
// every store has its Output* fields populated per §6, ready for the
// host pipeline to read back.
func Generate(stores []*block.Store, job Job) {
	for _, store := range stores {
		selfConsistencyPass(store, job.InputGhostLevel)
	}

	exchange.Round(stores)

	peerOf := buildPeerIndex(stores)
	linksByPeer := make([][]fieldexchange.Link, len(stores))

	for peer, store := range stores {
		for _, b := range store.All() {
			solver := solverFor(b.Flavor)

			for gid, remote := range b.Structures {
				shifted, ok := solver.IsAdjacent(b, remote)
				if !ok {
					b.DeleteStructure(gid)
					continue
				}
				if !adjacency.ProcessContact(b, remote, shifted, job.OutputGhostLevel) {
					b.DeleteStructure(gid)
					continue
				}
				if b.Flavor == block.Rectilinear {
					materializeRectilinearGhostSegments(b, remote)
				}
			}

			expand.Expand(b, solver)
			expand.AllocateArrays(b)
			expand.CopyOwnData(b)
			fieldexchange.FillHidden(b)

			for gid, remote := range b.Structures {
				linksByPeer[peer] = append(linksByPeer[peer], fieldexchange.Link{
					LocalGID:  b.GID,
					RemoteGID: gid,
					Pair:      ifaceindex.Build(b, remote),
				})
			}
		}
	}

	fieldexchange.Exchange(stores, linksByPeer, peerOf)
}

// materializeRectilinearGhostSegments extracts, for every contact side a
// remote descriptor grew thickness on, the ghost coordinate segment that
// neighbor contributes. If more than one neighbor ever touches the same
// side, the last one processed wins; a job's blocks normally have at
// most one neighbor per side, so this is not resolved further.
func materializeRectilinearGhostSegments(b *block.Block, remote *block.Structure) {
	for s := block.Side(0); s < 6; s++ {
		if remote.AdjacencyMask&block.AdjacencyBit(s) != 0 {
			rectilinear.ExtractGhostSegment(&b.Info, remote, s)
		}
	}
}

func solverFor(f block.Flavor) adjacency.Solver {
	switch f {
	case block.Image:
		return image.Solver{}
	case block.Rectilinear:
		return rectilinear.Solver{}
	case block.Curvilinear:
		return curvilinear.Solver{}
	default:
		panic("ghostgen: unknown grid flavor")
	}
}

// buildPeerIndex scans every store once to build the gid->peer map that
// fieldexchange.Exchange needs to route cross-peer transfers. The
// descriptor exchange round doesn't record this mapping itself since it
// only cares about all-to-all distribution, not routing.
func buildPeerIndex(stores []*block.Store) func(block.GID) int {
	index := make(map[block.GID]int)
	for p, store := range stores {
		for _, b := range store.All() {
			index[b.GID] = p
		}
	}
	return func(gid block.GID) int { return index[gid] }
}

// selfConsistencyPass runs §4.1/§4.2 for every locally owned block:
// dropping blocks with an invalid raw extent before they can poison
// later stages, then peeling every survivor's true extent from its
// pre-existing ghost marker array.
func selfConsistencyPass(store *block.Store, inputGhostLevel int) {
	var invalid []block.GID
	for _, b := range store.All() {
		if !b.Input.Extent.Valid() {
			invalid = append(invalid, b.GID)
			continue
		}
		peelBlock(b, inputGhostLevel)
	}
	for _, gid := range invalid {
		store.Remove(gid)
	}
}

func peelBlock(b *block.Block, inputGhostLevel int) {
	trueExtent := peel.Peel(b.Input.Extent, b.Input.GhostCellArray, inputGhostLevel)
	b.Info.Extent = trueExtent

	switch b.Flavor {
	case block.Rectilinear:
		b.Info.Coordinates[0] = sliceAxis(b.Input.XCoordinates, b.Input.Extent, trueExtent, 0)
		b.Info.Coordinates[1] = sliceAxis(b.Input.YCoordinates, b.Input.Extent, trueExtent, 1)
		b.Info.Coordinates[2] = sliceAxis(b.Input.ZCoordinates, b.Input.Extent, trueExtent, 2)
	case block.Curvilinear:
		truePoints := slicePoints(b.Input.Points, b.Input.Extent, trueExtent)
		b.Info.OuterLayers, b.Info.OuterLayerExtent = peel.ExtractOuterLayers(trueExtent, truePoints)
	}
}

func sliceAxis(coords []float64, rawExtent, trueExtent block.Extent, axis int) []float64 {
	if coords == nil {
		return nil
	}
	lo := trueExtent.Lo(axis) - rawExtent.Lo(axis)
	hi := trueExtent.Hi(axis) - rawExtent.Lo(axis)
	return append([]float64{}, coords[lo:hi+1]...)
}

func slicePoints(points []block.Point3, rawExtent, trueExtent block.Extent) []block.Point3 {
	if points == nil {
		return nil
	}
	n := trueExtent.NumPoints()
	out := make([]block.Point3, n[0]*n[1]*n[2])
	trueExtent.EachPoint(func(i, j, k int) {
		out[trueExtent.PointIndex(i, j, k)] = points[rawExtent.PointIndex(i, j, k)]
	})
	return out
}
