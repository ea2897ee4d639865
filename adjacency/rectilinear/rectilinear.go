// Package rectilinear implements the rectilinear-grid flavor of the
// adjacency solver (§4.4): a per-axis one-dimensional array-fitting
// procedure run independently on the x, y, and z coordinate arrays.
package rectilinear

import (
	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/floatcmp"
)

// Solver is the rectilinear-grid adjacency.Solver.
type Solver struct{}

// BuildDescriptor fills the rectilinear-specific fields of a block's
// outgoing descriptor.
func (Solver) BuildDescriptor(b *block.Block) *block.Structure {
	return &block.Structure{
		GID:           b.GID,
		Flavor:        block.Rectilinear,
		Extent:        b.Info.Extent,
		DataDimension: dataDimension(b.Info.Extent),
		XCoordinates:  b.Info.Coordinates[0],
		YCoordinates:  b.Info.Coordinates[1],
		ZCoordinates:  b.Info.Coordinates[2],
	}
}

// IsAdjacent runs the per-axis array-fitting procedure against each of the
// x, y, z coordinate arrays and, if all three fit (or at most the overlap
// is degenerate on every axis), produces the shifted extent.
func (Solver) IsAdjacent(local *block.Block, remote *block.Structure) (shifted block.Extent, ok bool) {
	localDim := dataDimension(local.Info.Extent)
	if localDim != remote.DataDimension || !remote.Extent.Valid() {
		return block.Extent{}, false
	}

	localExtent := local.Info.Extent
	remoteExtent := remote.Extent

	fx := fitAxis(local.Info.Coordinates[0], remote.XCoordinates)
	fy := fitAxis(local.Info.Coordinates[1], remote.YCoordinates)
	fz := fitAxis(local.Info.Coordinates[2], remote.ZCoordinates)

	if (!fx.overlaps || !fy.overlaps || !fz.overlaps) &&
		(fx.minID != fx.maxID || fy.minID != fy.maxID || fz.minID != fz.maxID) {
		return block.Extent{}, false
	}

	originDiff := [3]int{
		remoteExtent[0] + fx.minID - localExtent[0] - fx.localMinID,
		remoteExtent[2] + fy.minID - localExtent[2] - fy.localMinID,
		remoteExtent[4] + fz.minID - localExtent[4] - fz.localMinID,
	}

	shifted = block.Extent{
		remoteExtent[0] - originDiff[0], remoteExtent[1] - originDiff[0],
		remoteExtent[2] - originDiff[1], remoteExtent[3] - originDiff[1],
		remoteExtent[4] - originDiff[2], remoteExtent[5] - originDiff[2],
	}
	return shifted, true
}

// MaterializeGhostCoordinates builds, for each axis side that grew ghost
// thickness, a segment pulled from the owning neighbor's coordinate array
// (§4.5), then concatenates pre/true/post into b.OutputCoords.
func (Solver) MaterializeGhostCoordinates(b *block.Block) {
	for axis := 0; axis < 3; axis++ {
		trueCoords := b.Info.Coordinates[axis]
		loSide := block.Side(2 * axis)
		hiSide := loSide + 1

		loSeg := b.Info.CoordinateGhosts[loSide]
		hiSeg := b.Info.CoordinateGhosts[hiSide]

		out := make([]float64, 0, len(loSeg)+len(trueCoords)+len(hiSeg))
		out = append(out, loSeg...)
		out = append(out, trueCoords...)
		out = append(out, hiSeg...)
		b.OutputCoords[axis] = out
	}
}

// ExtractGhostSegment fills info.CoordinateGhosts[s] with the thickness
// many coordinate values a neighbor contributes on side s, read out of
// remote's coordinate array at the positions implied by remote.Extent
// (already expressed in the local frame by the time this runs, per
// adjacency.ProcessContact's contract). Called once per contact side
// during §4.4/§4.5, ahead of MaterializeGhostCoordinates.
func ExtractGhostSegment(info *block.Information, remote *block.Structure, s block.Side) {
	axis := s.Axis()
	thickness := info.ExtentGhostThickness[s]
	if thickness == 0 {
		return
	}

	var remoteArr []float64
	switch axis {
	case 0:
		remoteArr = remote.XCoordinates
	case 1:
		remoteArr = remote.YCoordinates
	case 2:
		remoteArr = remote.ZCoordinates
	}
	remoteLo := remote.Extent.Lo(axis)

	seg := make([]float64, thickness)
	if !s.IsHigh() {
		start := info.Extent.Lo(axis) - thickness
		for n := 0; n < thickness; n++ {
			pos := start + n
			idx := pos - remoteLo
			if idx >= 0 && idx < len(remoteArr) {
				seg[n] = remoteArr[idx]
			}
		}
	} else {
		start := info.Extent.Hi(axis) + 1
		for n := 0; n < thickness; n++ {
			pos := start + n
			idx := pos - remoteLo
			if idx >= 0 && idx < len(remoteArr) {
				seg[n] = remoteArr[idx]
			}
		}
	}
	info.CoordinateGhosts[s] = seg
}

// fitResult mirrors the original's RectilinearGridFittingWorker fields:
// minID/maxID track the remote array's matched range, localMinID/localMaxID
// the local array's.
type fitResult struct {
	minID, maxID           int
	localMinID, localMaxID int
	overlaps               bool
}

// fitAxis runs the array-fitting procedure of §4.4/Supplemented Feature 2:
// the array with the smaller last value is always fitted into the one with
// the larger last value, with MinId/MaxId/LocalMinId/LocalMaxId tracked so
// that, on return, minID/maxID refer to indices into remoteArr and
// localMinID/localMaxID into localArr, whichever array had the larger
// final tick (see fitArrays below for the swap logic this reproduces).
func fitAxis(localArr, remoteArr []float64) fitResult {
	r := fitResult{maxID: -1, localMaxID: -1}
	if len(localArr) == 0 || len(remoteArr) == 0 {
		r.overlaps = true
		return r
	}

	if localArr[len(localArr)-1] > remoteArr[len(remoteArr)-1] {
		fitArrays(remoteArr, localArr, &r)
	} else {
		fitArrays(localArr, remoteArr, &r)
		r.minID, r.localMinID = r.localMinID, r.minID
		r.maxID, r.localMaxID = r.localMaxID, r.maxID
	}
	return r
}

// fitArrays is a direct port of RectilinearGridFittingWorker::FitArrays.
func fitArrays(lowerMaxArray, upperMaxArray []float64, r *fitResult) {
	var lowerMinArray, upperMinArray []float64
	if lowerMaxArray[0] > upperMaxArray[0] {
		lowerMinArray = upperMaxArray
	} else {
		lowerMinArray = lowerMaxArray
	}
	if lowerMaxArray[0] < upperMaxArray[0] {
		upperMinArray = upperMaxArray
	} else {
		upperMinArray = lowerMaxArray
	}

	id := 0
	for id < len(lowerMinArray) && lowerMinArray[id] < upperMinArray[0] && !floatcmp.EqualValue(lowerMinArray[id], upperMinArray[0]) {
		id++
	}

	if subArraysAreEqual(lowerMinArray, upperMinArray, id, r) {
		r.localMinID = 0
		r.minID = id
		if lowerMaxArray[0] > upperMaxArray[0] {
			r.maxID, r.localMaxID = r.localMaxID, r.maxID
		}
	}
}

// subArraysAreEqual is a direct port of
// RectilinearGridFittingWorker::SubArraysAreEqual.
func subArraysAreEqual(lowerArray, upperArray []float64, lowerID int, r *fitResult) bool {
	upperID := 0
	for lowerID < len(lowerArray) && upperID < len(upperArray) && floatcmp.EqualValue(lowerArray[lowerID], upperArray[upperID]) {
		lowerID++
		upperID++
	}
	if lowerID == len(lowerArray) {
		r.maxID = lowerID - 1
		r.localMaxID = upperID - 1
		r.overlaps = true
		return true
	}
	return false
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
