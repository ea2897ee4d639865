package block

// Block is one locally owned block, carried through the whole pipeline:
// input geometry, the authoritative Information record, the map of
// remote descriptors, and (once §4.5-§4.7 run) the expanded output.
type Block struct {
	GID    GID
	Flavor Flavor
	Input  *InputBlock

	Info       Information
	Structures map[GID]*Structure

	// Output, filled by expand/ifaceindex/fieldexchange.
	OutputExtent    Extent
	OutputCoords    [3][]float64 // rectilinear
	OutputPoints    []Point3     // curvilinear
	GhostCellArray  []uint8
	GhostPointArray []uint8
	CellArrays      []*Array
	PointArrays     []*Array
}

// NewBlock allocates a Block wrapping ib, with an empty Structures map and
// Info left zero-valued; the caller (typically peel.Peel via the
// orchestrator) fills Info.Extent and any flavor-specific trimmed
// coordinate/point data before the block is used further.
func NewBlock(ib *InputBlock) *Block {
	return &Block{
		GID:        ib.GID,
		Flavor:     ib.Flavor,
		Input:      ib,
		Structures: make(map[GID]*Structure),
	}
}

// DeleteStructure erases a remote descriptor. Safe to call while ranging
// over Structures, per the Design Notes' iteration-with-erasure contract.
func (b *Block) DeleteStructure(gid GID) {
	delete(b.Structures, gid)
}

// CellArray looks up a cell attribute array by name.
func (b *Block) CellArray(name string) *Array {
	for _, a := range b.CellArrays {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// PointArray looks up a point attribute array by name.
func (b *Block) PointArray(name string) *Array {
	for _, a := range b.PointArrays {
		if a.Name == name {
			return a
		}
	}
	return nil
}
