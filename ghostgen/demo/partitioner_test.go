package demo

import (
	"testing"

	"github.com/notargets/ghostgrid/block"
)

func TestBuildMetisGraph_TouchingBlocksAreAdjacent(t *testing.T) {
	blocks := []*block.InputBlock{
		{GID: 1, Flavor: block.Image, Extent: block.Extent{0, 4, 0, 4, 0, 4}},
		{GID: 2, Flavor: block.Image, Extent: block.Extent{4, 8, 0, 4, 0, 4}},
		{GID: 3, Flavor: block.Image, Extent: block.Extent{100, 104, 0, 4, 0, 4}},
	}
	bp := NewBlockPartitioner(blocks, DefaultPartitionConfig(2))

	xadj, adjncy := bp.buildMetisGraph()

	if len(xadj) != len(blocks)+1 {
		t.Fatalf("xadj should have %d entries, got %d", len(blocks)+1, len(xadj))
	}
	if xadj[0] != 0 {
		t.Errorf("xadj[0] should be 0, got %d", xadj[0])
	}
	for i := 1; i < len(xadj); i++ {
		if xadj[i] < xadj[i-1] {
			t.Errorf("xadj should be monotonically increasing, got %v", xadj)
		}
	}

	// Block 0 (gid 1) and block 1 (gid 2) touch at i=4; block 2 (gid 3) is
	// far away and should have no edges.
	edgesOfBlock2 := xadj[3] - xadj[2]
	if edgesOfBlock2 != 0 {
		t.Errorf("expected block 2 (gid 3) to have no candidate neighbors, got %d", edgesOfBlock2)
	}
	edgesOfBlock0 := xadj[1] - xadj[0]
	if edgesOfBlock0 == 0 {
		t.Error("expected block 0 (gid 1) to have at least one candidate neighbor")
	}
}

func TestBoundingBoxesTouch(t *testing.T) {
	a := block.Extent{0, 4, 0, 4, 0, 4}
	b := block.Extent{4, 8, 0, 4, 0, 4}
	if !boundingBoxesTouch(a, b) {
		t.Error("expected touching extents to be reported as adjacent candidates")
	}

	c := block.Extent{100, 104, 0, 4, 0, 4}
	if boundingBoxesTouch(a, c) {
		t.Error("expected far-apart extents to not be candidates")
	}
}
