// Package exchange implements the descriptor exchange of §4.3: one
// all-to-all round that distributes a small fixed-size BlockStructure
// descriptor of every block to every peer.
package exchange

import (
	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/transport"
)

// descriptorMsg is what actually rides the wire: the sender's descriptor,
// whose GID is the key BlockStructures is keyed by on the receiving end.
type descriptorMsg struct {
	Structure *block.Structure
}

// Round performs the descriptor exchange for every peer at once: stores
// is indexed by peer id and holds that peer's local block.Store. On
// return, every block in every store has had remote descriptors for
// every adjacent-in-job block installed into its Structures map — the
// adjacency solver (§4.4) is what actually decides which of those
// descriptors describe a real geometric neighbor; this round only
// performs raw distribution.
//
// A peer never enqueues to itself (§4.3); Round enforces this by simply
// never posting a local block's own descriptor into its own store.
func Round(stores []*block.Store) {
	numPeers := len(stores)

	results := transport.Exchange[descriptorMsg](numPeers, func(peer int, mb *transport.MailBox[descriptorMsg]) {
		store := stores[peer]
		for _, b := range store.All() {
			desc := BuildDescriptor(b)
			for target := 0; target < numPeers; target++ {
				if target == peer {
					continue
				}
				mb.PostMessage(peer, target, descriptorMsg{Structure: desc})
			}
		}
	})

	for peer, received := range results {
		store := stores[peer]
		for _, msg := range received {
			installDescriptor(store, msg.Structure)
		}
	}
}

// installDescriptor inserts a received descriptor into every local block
// of store that is meant to receive it. Since blocks don't yet know which
// remote gids are theirs to care about, every local block receives a copy
// keyed by the descriptor's own gid; the adjacency solver is responsible
// for discarding the ones that aren't actually adjacent (§4.4, §7).
func installDescriptor(store *block.Store, desc *block.Structure) {
	for _, b := range store.All() {
		if b.GID == desc.GID {
			continue
		}
		b.Structures[desc.GID] = desc.Clone()
	}
}

// BuildDescriptor produces the BlockStructure for b that gets sent to
// every other peer: exactly the fields listed in §3 for b's flavor, no
// more.
func BuildDescriptor(b *block.Block) *block.Structure {
	s := &block.Structure{
		GID:    b.GID,
		Flavor: b.Flavor,
		Extent: b.Info.Extent,
	}
	switch b.Flavor {
	case block.Image:
		s.DataDimension = dataDimension(b.Info.Extent)
		s.Origin = b.Input.Origin
		s.Spacing = b.Input.Spacing
		s.OrientationQuaternion = b.Input.OrientationQuaternion
	case block.Rectilinear:
		s.DataDimension = dataDimension(b.Info.Extent)
		s.XCoordinates = b.Info.Coordinates[0]
		s.YCoordinates = b.Info.Coordinates[1]
		s.ZCoordinates = b.Info.Coordinates[2]
	case block.Curvilinear:
		s.DataDimension = dataDimension(b.Info.Extent)
		s.OuterFaces = b.Info.OuterLayers
		s.OuterFaceExtent = b.Info.OuterLayerExtent
	}
	return s
}

func dataDimension(e block.Extent) int {
	dim := 0
	for axis := 0; axis < 3; axis++ {
		if !e.Degenerate(axis) {
			dim++
		}
	}
	return dim
}
