package block

import "fmt"

// Store is a peer's container of its locally owned blocks. It provides
// O(1) lookup in both directions between a block's dense local index and
// its process-wide global id (§4.1).
type Store struct {
	blocks  []*Block
	gidToID map[GID]int
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{gidToID: make(map[GID]int)}
}

// Add appends a block, assigning it the next local id.
func (s *Store) Add(b *Block) int {
	id := len(s.blocks)
	s.blocks = append(s.blocks, b)
	s.gidToID[b.GID] = id
	return id
}

// LocalBlock returns the block at the given dense local index.
func (s *Store) LocalBlock(localID int) *Block {
	return s.blocks[localID]
}

// LocalIDOf returns the dense local index of gid, and whether it is owned
// by this peer at all.
func (s *Store) LocalIDOf(gid GID) (int, bool) {
	id, ok := s.gidToID[gid]
	return id, ok
}

// Len returns the number of locally owned blocks.
func (s *Store) Len() int {
	return len(s.blocks)
}

// All returns the local blocks in local-id order.
func (s *Store) All() []*Block {
	return s.blocks
}

// Remove drops the block with the given gid from the store. Removal
// reassigns local ids for every block after the removed one, matching the
// spec's "invalid input is removed from consideration" rule (§7); callers
// that care about stable local ids should call this only before any local
// id is handed out to other components.
func (s *Store) Remove(gid GID) error {
	id, ok := s.gidToID[gid]
	if !ok {
		return fmt.Errorf("block: no local block with gid %d", gid)
	}
	s.blocks = append(s.blocks[:id], s.blocks[id+1:]...)
	delete(s.gidToID, gid)
	for i := id; i < len(s.blocks); i++ {
		s.gidToID[s.blocks[i].GID] = i
	}
	return nil
}
