package block

// InputBlock is what the host pipeline hands us for one locally owned
// block: one grid flavor's worth of geometry plus whatever ghost-cell
// marker array and attribute arrays it already carries. Nothing here is
// mutated; Generate only ever reads InputBlock.
type InputBlock struct {
	GID    GID
	Flavor Flavor
	Extent Extent

	// GhostCellArray is the pre-existing ghost marker used by the peeler
	// (§4.2); nil means the block carries no ghosts yet.
	GhostCellArray []uint8

	// Image grid fields.
	Origin                [3]float64
	Spacing               [3]float64
	OrientationQuaternion [4]float64

	// Rectilinear grid fields: tick positions, one array per axis, length
	// equal to Extent's point count on that axis.
	XCoordinates, YCoordinates, ZCoordinates []float64

	// Curvilinear grid fields: explicit point positions, row-major over
	// (k, j, i) matching Extent's point box.
	Points []Point3

	CellArrays  []*Array
	PointArrays []*Array
}

// PointIndex computes the flattened offset of point ijk within an extent's
// point box, matching vtkStructuredData::ComputePointIdForExtent.
func (e Extent) PointIndex(i, j, k int) int {
	nx := e[1] - e[0] + 1
	ny := e[3] - e[2] + 1
	return (k-e[4])*nx*ny + (j-e[2])*nx + (i - e[0])
}

// CellIndex computes the flattened offset of cell ijk (the cell whose low
// corner is ijk) within an extent's cell box, matching
// vtkStructuredData::ComputeCellIdForExtent. Degenerate axes contribute a
// cell width of 1.
func (e Extent) CellIndex(i, j, k int) int {
	n := e.NumCells()
	ci, cj, ck := i, j, k
	if e.Degenerate(0) {
		ci = 0
	} else {
		ci -= e[0]
	}
	if e.Degenerate(1) {
		cj = 0
	} else {
		cj -= e[2]
	}
	if e.Degenerate(2) {
		ck = 0
	} else {
		ck -= e[4]
	}
	return ck*n[0]*n[1] + cj*n[0] + ci
}
