package fieldexchange

import (
	"testing"

	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/ifaceindex"
)

func newTestBlock(gid block.GID, extent block.Extent, ghostRight int, val float64) *block.Block {
	ib := &block.InputBlock{
		GID: gid, Flavor: block.Image, Extent: extent,
		CellArrays: []*block.Array{{Name: "rho", NumComponents: 1}},
	}
	n := extent.NumCells()
	numCells := n[0] * n[1] * n[2]
	data := make([]float64, numCells)
	for i := range data {
		data[i] = val
	}
	ib.CellArrays[0].Data = data

	b := block.NewBlock(ib)
	b.Info.Extent = extent
	if ghostRight > 0 {
		b.Info.ExtentGhostThickness[block.Right] = ghostRight
	}
	b.OutputExtent = b.Info.OutputExtent()

	b.GhostCellArray = make([]uint8, b.OutputExtent.NumCells()[0]*b.OutputExtent.NumCells()[1]*b.OutputExtent.NumCells()[2])
	b.GhostPointArray = make([]uint8, b.OutputExtent.NumPoints()[0]*b.OutputExtent.NumPoints()[1]*b.OutputExtent.NumPoints()[2])
	b.CellArrays = []*block.Array{ib.CellArrays[0].CloneEmpty(b.OutputExtent.NumCells()[0] * b.OutputExtent.NumCells()[1] * b.OutputExtent.NumCells()[2])}

	trueExtent := b.Info.Extent
	trueExtent.EachCell(func(i, j, k int) {
		src := ib.Extent.CellIndex(i, j, k)
		dst := b.OutputExtent.CellIndex(i, j, k)
		copy(b.CellArrays[0].Tuple(dst), ib.CellArrays[0].Tuple(src))
	})
	return b
}

func TestExchange_SamePeerDirectApply(t *testing.T) {
	left := newTestBlock(1, block.Extent{0, 4, 0, 4, 0, 4}, 1, 1.0)
	right := newTestBlock(2, block.Extent{4, 8, 0, 4, 0, 4}, 0, 2.0)

	store := block.NewStore()
	store.Add(left)
	store.Add(right)

	remoteOnLeft := &block.Structure{
		GID: 2, Extent: block.Extent{4, 8, 0, 4, 0, 4},
		ExtentWithNewGhosts: block.Extent{3, 8, 0, 4, 0, 4},
		AdjacencyMask:       block.AdjacencyBit(block.Right),
	}
	remoteOnRight := &block.Structure{
		GID: 1, Extent: block.Extent{0, 4, 0, 4, 0, 4},
		ExtentWithNewGhosts: block.Extent{3, 4, 0, 4, 0, 4},
		AdjacencyMask:       block.AdjacencyBit(block.Left),
	}

	leftPair := ifaceindex.Build(left, remoteOnLeft)
	rightPair := ifaceindex.Build(right, remoteOnRight)

	FillHidden(left)

	stores := []*block.Store{store}
	links := []Link{
		{LocalGID: 1, RemoteGID: 2, Pair: leftPair},
		{LocalGID: 2, RemoteGID: 1, Pair: rightPair},
	}
	linksByPeer := [][]Link{links}

	peerOf := func(gid block.GID) int { return 0 }

	Exchange(stores, linksByPeer, peerOf)

	if len(leftPair.OutputCellIDs) == 0 {
		t.Fatal("expected left block to have a ghost region to receive into")
	}
	for _, id := range leftPair.OutputCellIDs {
		got := left.CellArrays[0].Tuple(id)[0]
		if got != 2.0 {
			t.Errorf("expected ghost cell %d to receive value 2.0 from right block, got %v", id, got)
		}
		if left.GhostCellArray[id]&block.DuplicateCell == 0 {
			t.Errorf("expected ghost cell %d to be marked DuplicateCell after receiving", id)
		}
	}
}

func TestFillHidden_MarksOnlyGhostRegion(t *testing.T) {
	b := newTestBlock(1, block.Extent{0, 4, 0, 4, 0, 4}, 1, 1.0)
	FillHidden(b)

	trueExtent := b.Info.Extent
	outExtent := b.OutputExtent
	sawHidden := false
	outExtent.EachCell(func(i, j, k int) {
		id := outExtent.CellIndex(i, j, k)
		isHidden := b.GhostCellArray[id]&block.HiddenCell != 0
		if trueExtent.ContainsCell(i, j, k) {
			if isHidden {
				t.Errorf("did not expect true cell (%d,%d,%d) to be marked hidden", i, j, k)
			}
		} else if isHidden {
			sawHidden = true
		}
	})
	if !sawHidden {
		t.Error("expected at least one ghost cell to be marked hidden")
	}
}
