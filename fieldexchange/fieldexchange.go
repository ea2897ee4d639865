// Package fieldexchange implements the second half of §4.6 (the
// point-to-point transfer of attribute tuples across the interface index
// lists ifaceindex builds) and the hidden-ghost fill of §4.7.
package fieldexchange

import (
	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/ifaceindex"
	"github.com/notargets/ghostgrid/transport"
)

// Link is one retained (local block, neighbor) contact together with the
// interface index lists ifaceindex.Build computed for it, from the local
// block's own point of view.
type Link struct {
	LocalGID  block.GID
	RemoteGID block.GID
	Pair      ifaceindex.Pair
}

type kind int

const (
	cellKind kind = iota
	pointKind
)

// tupleMsg is what actually rides the wire (§6: "buffers carry only
// their length; no schema metadata is on the wire"). ArrayIndex assumes
// every block in the job shares the same cell/point array schema, in the
// same order, which expand.AllocateArrays preserves from the input.
type tupleMsg struct {
	FromGID    block.GID
	ToGID      block.GID
	Kind       kind
	ArrayIndex int
	Tuples     []float64
}

// FillHidden marks every allocated ghost cell and ghost point HIDDEN
// (§4.7), before Exchange runs. Exchange overwrites the flag to
// DUPLICATE for any that actually receive a tuple; anything left HIDDEN
// after Exchange had no donor.
func FillHidden(b *block.Block) {
	trueExtent := b.Info.Extent
	outExtent := b.OutputExtent

	outExtent.EachCell(func(i, j, k int) {
		if trueExtent.ContainsCell(i, j, k) {
			return
		}
		b.GhostCellArray[outExtent.CellIndex(i, j, k)] |= block.HiddenCell
	})
	outExtent.EachPoint(func(i, j, k int) {
		if trueExtent.ContainsPoint(i, j, k) {
			return
		}
		b.GhostPointArray[outExtent.PointIndex(i, j, k)] |= block.HiddenPoint
	})
}

// Exchange runs the point-to-point tuple transfer for every peer's links
// at once (§4.6, §5) and writes received tuples into each receiving
// block's output arrays at the positions its own Link.Pair recorded.
// stores is indexed by peer id; linksByPeer[p] holds every link for
// blocks locally owned by peer p; peerOf maps a gid to its owning peer.
//
// A neighbor on the same peer is applied directly, without a wire
// round-trip, since transport.MailBox forbids a peer posting to itself.
func Exchange(stores []*block.Store, linksByPeer [][]Link, peerOf func(block.GID) int) {
	numPeers := len(stores)

	linkIndex := make([]map[block.GID]map[block.GID]Link, numPeers)
	for p, links := range linksByPeer {
		m := make(map[block.GID]map[block.GID]Link)
		for _, l := range links {
			if m[l.LocalGID] == nil {
				m[l.LocalGID] = make(map[block.GID]Link)
			}
			m[l.LocalGID][l.RemoteGID] = l
		}
		linkIndex[p] = m
	}

	results := transport.Exchange[tupleMsg](numPeers, func(peer int, mb *transport.MailBox[tupleMsg]) {
		store := stores[peer]
		for _, link := range linksByPeer[peer] {
			localID, ok := store.LocalIDOf(link.LocalGID)
			if !ok {
				continue
			}
			sender := store.LocalBlock(localID)
			target := peerOf(link.RemoteGID)

			if target == peer {
				receiverID, ok := store.LocalIDOf(link.RemoteGID)
				if !ok {
					continue
				}
				receiverLink, ok := linkIndex[peer][link.RemoteGID][link.LocalGID]
				if !ok {
					continue
				}
				applyDirect(store.LocalBlock(receiverID), receiverLink, sender, link)
				continue
			}
			postLinkTuples(mb, peer, target, link, sender)
		}
	})

	for peer, received := range results {
		store := stores[peer]
		for _, msg := range received {
			localID, ok := store.LocalIDOf(msg.ToGID)
			if !ok {
				continue
			}
			link, ok := linkIndex[peer][msg.ToGID][msg.FromGID]
			if !ok {
				continue
			}
			writeTuples(store.LocalBlock(localID), link, msg)
		}
	}
}

func postLinkTuples(mb *transport.MailBox[tupleMsg], peer, target int, link Link, sender *block.Block) {
	if len(link.Pair.InputCellIDs) > 0 {
		for ai, a := range sender.Input.CellArrays {
			mb.PostMessage(peer, target, tupleMsg{
				FromGID: link.LocalGID, ToGID: link.RemoteGID,
				Kind: cellKind, ArrayIndex: ai,
				Tuples: gather(a, link.Pair.InputCellIDs),
			})
		}
	}
	if len(link.Pair.InputPointIDs) > 0 {
		for ai, a := range sender.Input.PointArrays {
			mb.PostMessage(peer, target, tupleMsg{
				FromGID: link.LocalGID, ToGID: link.RemoteGID,
				Kind: pointKind, ArrayIndex: ai,
				Tuples: gather(a, link.Pair.InputPointIDs),
			})
		}
	}
}

func applyDirect(receiver *block.Block, receiverLink Link, sender *block.Block, senderLink Link) {
	if len(senderLink.Pair.InputCellIDs) > 0 {
		for ai, a := range sender.Input.CellArrays {
			writeDirect(receiver, receiverLink.Pair.OutputCellIDs, ai, gather(a, senderLink.Pair.InputCellIDs), cellKind)
		}
	}
	if len(senderLink.Pair.InputPointIDs) > 0 {
		for ai, a := range sender.Input.PointArrays {
			writeDirect(receiver, receiverLink.Pair.OutputPointIDs, ai, gather(a, senderLink.Pair.InputPointIDs), pointKind)
		}
	}
}

func gather(a *block.Array, ids []int) []float64 {
	out := make([]float64, 0, len(ids)*a.NumComponents)
	for _, id := range ids {
		out = append(out, a.Tuple(id)...)
	}
	return out
}

func writeTuples(b *block.Block, link Link, msg tupleMsg) {
	var ids []int
	if msg.Kind == cellKind {
		ids = link.Pair.OutputCellIDs
	} else {
		ids = link.Pair.OutputPointIDs
	}
	writeDirect(b, ids, msg.ArrayIndex, msg.Tuples, msg.Kind)
}

func writeDirect(b *block.Block, ids []int, arrayIndex int, tuples []float64, k kind) {
	var arrs []*block.Array
	var flags []uint8
	if k == cellKind {
		arrs, flags = b.CellArrays, b.GhostCellArray
	} else {
		arrs, flags = b.PointArrays, b.GhostPointArray
	}
	if arrayIndex < 0 || arrayIndex >= len(arrs) {
		return
	}
	arr := arrs[arrayIndex]
	nc := arr.NumComponents
	for i, id := range ids {
		if (i+1)*nc > len(tuples) {
			break
		}
		copy(arr.Tuple(id), tuples[i*nc:(i+1)*nc])
		markReceived(flags, id, k)
	}
}

func markReceived(flags []uint8, id int, k kind) {
	if k == cellKind {
		flags[id] &^= block.HiddenCell
		flags[id] |= block.DuplicateCell
	} else {
		flags[id] &^= block.HiddenPoint
		flags[id] |= block.DuplicatePoint
	}
}
