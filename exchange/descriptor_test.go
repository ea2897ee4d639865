package exchange

import (
	"testing"

	"github.com/notargets/ghostgrid/block"
)

func newImageBlock(gid block.GID, extent block.Extent) *block.Block {
	ib := &block.InputBlock{
		GID:     gid,
		Flavor:  block.Image,
		Extent:  extent,
		Spacing: [3]float64{1, 1, 1},
	}
	b := block.NewBlock(ib)
	b.Info.Extent = extent
	return b
}

func TestBuildDescriptor_Image(t *testing.T) {
	b := newImageBlock(1, block.Extent{0, 4, 0, 4, 0, 4})
	desc := BuildDescriptor(b)

	if desc.GID != b.GID {
		t.Errorf("GID = %d, want %d", desc.GID, b.GID)
	}
	if desc.Flavor != block.Image {
		t.Errorf("Flavor = %v, want Image", desc.Flavor)
	}
	if desc.Extent != b.Info.Extent {
		t.Errorf("Extent = %v, want %v", desc.Extent, b.Info.Extent)
	}
	if desc.DataDimension != 3 {
		t.Errorf("DataDimension = %d, want 3", desc.DataDimension)
	}
	if desc.Spacing != b.Input.Spacing {
		t.Errorf("Spacing = %v, want %v", desc.Spacing, b.Input.Spacing)
	}
}

func TestBuildDescriptor_DegenerateAxisDimension(t *testing.T) {
	b := newImageBlock(1, block.Extent{0, 4, 0, 4, 0, 0})
	desc := BuildDescriptor(b)
	if desc.DataDimension != 2 {
		t.Errorf("DataDimension = %d, want 2", desc.DataDimension)
	}
}

func TestRound_DistributesToEveryOtherPeerAndEveryLocalBlock(t *testing.T) {
	// Three peers, one block each. After Round, each block's Structures
	// map holds the other two blocks' descriptors, keyed by gid.
	stores := make([]*block.Store, 3)
	for p := 0; p < 3; p++ {
		s := block.NewStore()
		b := newImageBlock(block.GID(p), block.Extent{0, 4, 0, 4, 0, 4})
		s.Add(b)
		stores[p] = s
	}

	Round(stores)

	for p := 0; p < 3; p++ {
		b := stores[p].LocalBlock(0)
		if len(b.Structures) != 2 {
			t.Fatalf("peer %d: got %d structures, want 2", p, len(b.Structures))
		}
		for gid, desc := range b.Structures {
			if gid == b.GID {
				t.Errorf("peer %d: received its own descriptor", p)
			}
			if desc.GID != gid {
				t.Errorf("peer %d: structure keyed %d holds descriptor for %d", p, gid, desc.GID)
			}
		}
	}
}

func TestRound_MultipleLocalBlocksAllReceiveCopies(t *testing.T) {
	// Peer 0 owns two blocks; peer 1 owns one. Both of peer 0's blocks
	// should receive peer 1's descriptor.
	store0 := block.NewStore()
	store0.Add(newImageBlock(0, block.Extent{0, 4, 0, 4, 0, 4}))
	store0.Add(newImageBlock(1, block.Extent{4, 8, 0, 4, 0, 4}))

	store1 := block.NewStore()
	store1.Add(newImageBlock(2, block.Extent{0, 4, 4, 8, 0, 4}))

	stores := []*block.Store{store0, store1}
	Round(stores)

	for localID := 0; localID < 2; localID++ {
		b := store0.LocalBlock(localID)
		desc, ok := b.Structures[2]
		if !ok {
			t.Fatalf("block %d: missing descriptor for gid 2", b.GID)
		}
		if desc.GID != 2 {
			t.Errorf("block %d: descriptor GID = %d, want 2", b.GID, desc.GID)
		}
		// Peer 0's two blocks should not have received each other's
		// descriptors, since both are local to the same peer.
		if _, ok := b.Structures[block.GID(1-localID)]; ok {
			t.Errorf("block %d: unexpectedly received descriptor for its peer-sibling", b.GID)
		}
	}

	b2 := store1.LocalBlock(0)
	if len(b2.Structures) != 2 {
		t.Errorf("block 2: got %d structures, want 2", len(b2.Structures))
	}
}
