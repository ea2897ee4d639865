// Package peel implements the ghost peeler (§4.2): recovering a block's
// true, non-ghost extent by walking from the declared ghost depth back
// toward each corner along the pre-existing ghost-cell marker array.
package peel

import "github.com/notargets/ghostgrid/block"

// Peel returns the true extent of a block given its raw extent, its
// existing cell-ghost marker array (nil if it has none), and the input
// ghost level the host pipeline declared. Marker values follow the usual
// ghost-flag convention: non-zero means "this cell is a ghost".
//
// Each walk starts ghostLevel cells in from a corner (clamped to the
// extent) and moves back toward that corner on each non-degenerate axis
// independently, stopping a per-axis walk the step before it would cross
// into a marked cell; degenerate axes are locked from the start and never
// move, so a block with two degenerate axes (1D data) peels correctly.
func Peel(extent block.Extent, ghostCellArray []uint8, ghostLevel int) block.Extent {
	if ghostCellArray == nil {
		return extent
	}

	imin, imax := extent[0], maxInt(extent[1], extent[0]+1)
	jmin, jmax := extent[2], maxInt(extent[3], extent[2]+1)
	kmin, kmax := extent[4], maxInt(extent[5], extent[4]+1)

	isGhost := func(i, j, k int) bool {
		return ghostCellArray[extent.CellIndex(i, j, k)] != 0
	}

	var out block.Extent

	// Lower corner: walk from ghostLevel cells in back toward the low end.
	{
		ijk := [3]int{minInt(imin+ghostLevel, imax-1), minInt(jmin+ghostLevel, jmax-1), minInt(kmin+ghostLevel, kmax-1)}
		lock := [3]bool{extent[0] == extent[1], extent[2] == extent[3], extent[4] == extent[5]}
		lo := [3]int{imin, jmin, kmin}

		for (!lock[0] || !lock[1] || !lock[2]) &&
			(lock[0] || ijk[0] > lo[0]) && (lock[1] || ijk[1] > lo[1]) && (lock[2] || ijk[2] > lo[2]) &&
			!isGhost(ijk[0], ijk[1], ijk[2]) {
			for dim := 0; dim < 3; dim++ {
				if lock[dim] {
					continue
				}
				ijk[dim]--
				if isGhost(ijk[0], ijk[1], ijk[2]) {
					ijk[dim]++
					lock[dim] = true
				}
			}
		}
		out[0], out[2], out[4] = ijk[0], ijk[1], ijk[2]
	}

	// Upper corner: walk from ghostLevel cells in back toward the high end.
	{
		ijk := [3]int{maxInt(imax-1-ghostLevel, imin), maxInt(jmax-1-ghostLevel, jmin), maxInt(kmax-1-ghostLevel, kmin)}
		lock := [3]bool{extent[0] == extent[1], extent[2] == extent[3], extent[4] == extent[5]}
		hi := [3]int{imax - 1, jmax - 1, kmax - 1}

		for (!lock[0] || !lock[1] || !lock[2]) &&
			(lock[0] || ijk[0] < hi[0]) && (lock[1] || ijk[1] < hi[1]) && (lock[2] || ijk[2] < hi[2]) &&
			!isGhost(ijk[0], ijk[1], ijk[2]) {
			for dim := 0; dim < 3; dim++ {
				if lock[dim] {
					continue
				}
				ijk[dim]++
				if isGhost(ijk[0], ijk[1], ijk[2]) {
					ijk[dim]--
					lock[dim] = true
				}
			}
		}
		degenI, degenJ, degenK := 0, 0, 0
		if extent[0] != extent[1] {
			degenI = 1
		}
		if extent[2] != extent[3] {
			degenJ = 1
		}
		if extent[4] != extent[5] {
			degenK = 1
		}
		out[1] = ijk[0] + degenI
		out[3] = ijk[1] + degenJ
		out[5] = ijk[2] + degenK
	}

	return out
}

// ExtractOuterLayers builds the six boundary-face point patches of a
// curvilinear block (§4.2): for each side, the 2D (possibly 1D or 0D, on a
// degenerate grid) layer of points lying on that face's plane, plus the
// degenerate extent it was extracted from.
func ExtractOuterLayers(extent block.Extent, points []block.Point3) (layers [6][]block.Point3, layerExtents [6]block.Extent) {
	for s := block.Side(0); s < 6; s++ {
		axis := s.Axis()
		faceExtent := extent
		val := extent.At(s)
		faceExtent[2*axis] = val
		faceExtent[2*axis+1] = val

		n := faceExtent.NumPoints()
		layer := make([]block.Point3, n[0]*n[1]*n[2])
		for k := faceExtent[4]; k <= faceExtent[5]; k++ {
			for j := faceExtent[2]; j <= faceExtent[3]; j++ {
				for i := faceExtent[0]; i <= faceExtent[1]; i++ {
					layer[faceExtent.PointIndex(i, j, k)] = points[extent.PointIndex(i, j, k)]
				}
			}
		}
		layers[s] = layer
		layerExtents[s] = faceExtent
	}
	return layers, layerExtents
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
