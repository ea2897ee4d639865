// Package curvilinear implements the curvilinear-grid flavor of the
// adjacency solver (§4.4): the only signal available is point coincidence
// on the six boundary faces of each block, probed pairwise and then swept
// to the largest matching 2D sub-grid.
package curvilinear

import (
	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/floatcmp"
)

// Solver is the curvilinear-grid adjacency.Solver.
type Solver struct{}

// BuildDescriptor fills the curvilinear-specific fields of a block's
// outgoing descriptor: the six boundary-face point patches and the
// degenerate extent each was taken from.
func (Solver) BuildDescriptor(b *block.Block) *block.Structure {
	return &block.Structure{
		GID:             b.GID,
		Flavor:          block.Curvilinear,
		Extent:          b.Info.Extent,
		DataDimension:   dataDimension(b.Info.Extent),
		OuterFaces:      b.Info.OuterLayers,
		OuterFaceExtent: b.Info.OuterLayerExtent,
	}
}

// IsAdjacent runs the 36-ordered-face-pair point locator search of §4.4
// and Supplemented Feature 3, returning the shifted extent derived from
// the best (largest) 2D grid match found.
func (Solver) IsAdjacent(local *block.Block, remote *block.Structure) (shifted block.Extent, ok bool) {
	if dataDimension(local.Info.Extent) != remote.DataDimension || !remote.Extent.Valid() {
		return block.Extent{}, false
	}

	var localGrid, grid block.GridInterface
	connected := false

outer:
	for localFace := block.Side(0); localFace < 6; localFace++ {
		localFaceExtent := local.Info.OuterLayerExtent[localFace]
		localFacePoints := local.Info.OuterLayers[localFace]
		if len(localFacePoints) == 0 {
			continue
		}

		for remoteFace := block.Side(0); remoteFace < 6; remoteFace++ {
			remoteFaceExtent := remote.OuterFaceExtent[remoteFace]
			remoteFacePoints := remote.OuterFaces[remoteFace]
			if len(remoteFacePoints) == 0 {
				continue
			}

			if gridsFit(localFacePoints, localFaceExtent, int(localFace),
				remoteFacePoints, remoteFaceExtent, int(remoteFace), &localGrid, &grid) {
				connected = true
			} else if gridsFit(remoteFacePoints, remoteFaceExtent, int(remoteFace),
				localFacePoints, localFaceExtent, int(localFace), &localGrid, &grid) {
				connected = true
				localGrid, grid = grid, localGrid
			} else {
				continue
			}

			canonicalize(&localGrid, &grid)

			if (grid.EndX-grid.StartX) != 0 && (grid.EndY-grid.StartY) != 0 {
				break outer
			}
		}
	}

	if !connected {
		return block.Extent{}, false
	}

	gridCopy := grid
	remote.Interface = &gridCopy

	return shiftedExtentFromGrid(local.Info.Extent, remote.Extent, localGrid, grid), true
}

// MaterializeGhostCoordinates allocates the expanded point array and
// copies the true-extent points into it at their new offset (§4.5); ghost
// points themselves are filled from neighbors during the field exchange
// (§4.6).
func (Solver) MaterializeGhostCoordinates(b *block.Block) {
	outExtent := b.Info.OutputExtent()
	n := outExtent.NumPoints()
	out := make([]block.Point3, n[0]*n[1]*n[2])

	trueExtent := b.Info.Extent
	for k := trueExtent[4]; k <= trueExtent[5]; k++ {
		for j := trueExtent[2]; j <= trueExtent[3]; j++ {
			for i := trueExtent[0]; i <= trueExtent[1]; i++ {
				srcIdx := b.Input.Extent.PointIndex(i, j, k)
				dstIdx := outExtent.PointIndex(i, j, k)
				out[dstIdx] = b.Input.Points[srcIdx]
			}
		}
	}
	b.OutputPoints = out
}

// canonicalize flips the local grid so it sweeps in +x, +y order, negating
// orientation and mirroring the swap onto the remote grid descriptor so
// the two stay consistent (§4.4).
func canonicalize(localGrid, grid *block.GridInterface) {
	if localGrid.StartX > localGrid.EndX {
		localGrid.StartX, localGrid.EndX = localGrid.EndX, localGrid.StartX
		localGrid.XOrientation *= -1
		grid.StartX, grid.EndX = grid.EndX, grid.StartX
		grid.XOrientation *= -1
	}
	if localGrid.StartY > localGrid.EndY {
		localGrid.StartY, localGrid.EndY = localGrid.EndY, localGrid.StartY
		localGrid.YOrientation *= -1
		grid.StartY, grid.EndY = grid.EndY, grid.StartY
		grid.YOrientation *= -1
	}
}

// shiftedExtentFromGrid produces the shifted extent by copying the remote
// extent, overwriting the in-plane axes with the local sub-grid's
// start/end, and setting the out-of-plane pair so it runs from the local
// face's plane outward, away from the local block, by the remote's own
// depth along its face normal (§4.4).
func shiftedExtentFromGrid(localExtent, remoteExtent block.Extent, localGrid, grid block.GridInterface) block.Extent {
	shifted := remoteExtent

	xDim, yDim := faceAxes(localGrid.FaceIndex)
	shifted[xDim] = localGrid.StartX
	shifted[xDim+1] = localGrid.EndX
	shifted[yDim] = localGrid.StartY
	shifted[yDim+1] = localGrid.EndY

	faceIdx := grid.FaceIndex
	oppositeFaceIdx := faceIdx + 1
	if faceIdx%2 == 1 {
		oppositeFaceIdx = faceIdx - 1
	}
	delta := abs(remoteExtent[faceIdx] - remoteExtent[oppositeFaceIdx])
	if localGrid.FaceIndex%2 == 0 {
		delta = -delta
	}

	normalHi := localGrid.FaceIndex + 1
	if localGrid.FaceIndex%2 == 1 {
		normalHi = localGrid.FaceIndex - 1
	}
	shifted[normalHi] = localExtent[localGrid.FaceIndex]
	shifted[localGrid.FaceIndex] = localExtent[localGrid.FaceIndex] + delta

	return shifted
}

// faceAxes returns the extent component indices (lo slot) of the two
// in-plane axes for a given face index, matching the original's
// `(faceIndex+2)%6` / `(faceIndex+4)%6` rotation.
func faceAxes(faceIndex int) (xDim, yDim int) {
	xDim = (faceIndex + 2) % 6
	xDim -= xDim % 2
	yDim = (faceIndex + 4) % 6
	yDim -= yDim % 2
	return xDim, yDim
}

// gridsFit probes the four corners of queryExtent's face against target's
// point set: for each corner that lands on a coincident target point, it
// sweeps outward (sweepGrids) to find the largest connected 2D match.
// Matches and their extents are recorded into localGrid/grid — always the
// query side into localGrid and the target side into grid — regardless of
// which of the two faces is logically "local"; the caller swaps them back
// when it called gridsFit with the roles reversed.
func gridsFit(queryPoints []block.Point3, queryExtent block.Extent, queryFaceIndex int,
	targetPoints []block.Point3, targetExtent block.Extent, targetFaceIndex int,
	localGrid, grid *block.GridInterface) bool {
	retVal := false

	queryXDim, queryYDim := faceAxes(queryFaceIndex)
	var queryijk [3]int
	queryijk[queryFaceIndex/2] = queryExtent[queryFaceIndex]

	xCorners := [2]int{queryExtent[queryXDim], queryExtent[queryXDim+1]}
	yCorners := [2]int{queryExtent[queryYDim], queryExtent[queryYDim+1]}
	sweepDirection := [2]int{1, -1}

	for xCornerID := 0; xCornerID < 2; xCornerID++ {
		queryijk[queryXDim/2] = xCorners[xCornerID]
		for yCornerID := 0; yCornerID < 2; yCornerID++ {
			queryijk[queryYDim/2] = yCorners[yCornerID]

			queryPointID := queryExtent.PointIndex(queryijk[0], queryijk[1], queryijk[2])
			queryPoint := queryPoints[queryPointID]

			targetPointID := findClosestPoint(targetPoints, queryPoint)
			targetPoint := targetPoints[targetPointID]

			if pointsCoincide(queryPoint, targetPoint) {
				if sweepGrids(queryPoints, queryFaceIndex, queryExtent, queryXDim,
					xCorners[xCornerID], xCorners[(xCornerID+1)%2], sweepDirection[xCornerID],
					queryYDim, yCorners[yCornerID], yCorners[(yCornerID+1)%2], sweepDirection[yCornerID],
					targetPoints, targetPointID, targetFaceIndex, targetExtent, localGrid, grid) {
					retVal = true
				}
			}
		}
	}
	return retVal
}

// sweepGrids is called once a single coincident corner point has been
// found; it sweeps both grids outward in all four in-plane direction
// combinations and records the largest rectangular match against the
// current best-so-far held in localGrid/grid.
func sweepGrids(queryPoints []block.Point3, queryFaceIndex int, queryExtent block.Extent,
	queryXDim, queryXBegin, queryXEnd, directionX int,
	queryYDim, queryYBegin, queryYEnd, directionY int,
	targetPoints []block.Point3, targetPointID, targetFaceIndex int, targetExtent block.Extent,
	localGrid, grid *block.GridInterface) bool {
	sweepDirection := [2]int{1, -1}
	retVal := false

	var queryijk, ijk [3]int
	queryijk[queryFaceIndex/2] = queryExtent[queryFaceIndex]
	ijk[0], ijk[1], ijk[2] = pointStructuredCoords(targetExtent, targetPointID)

	xDim, yDim := faceAxes(targetFaceIndex)
	xCorners := [2]int{targetExtent[xDim], targetExtent[xDim+1]}
	yCorners := [2]int{targetExtent[yDim], targetExtent[yDim+1]}

	xBegin := ijk[xDim/2]
	yBegin := ijk[yDim/2]

	for xCornerID := 0; xCornerID < 2; xCornerID++ {
		for yCornerID := 0; yCornerID < 2; yCornerID++ {
			gridsAreFitting := true
			queryX, queryY := queryXBegin, queryYBegin
			x, y := xBegin, yBegin

			for queryX, x = queryXBegin, xBegin; gridsAreFitting &&
				queryX != queryXEnd+directionX &&
				x != xCorners[(xCornerID+1)%2]+sweepDirection[xCornerID]; queryX, x = queryX+directionX, x+sweepDirection[xCornerID] {
				queryijk[queryXDim/2] = queryX
				ijk[xDim/2] = x

				for queryY, y = queryYBegin, yBegin; gridsAreFitting &&
					queryY != queryYEnd+directionY &&
					y != yCorners[(yCornerID+1)%2]+sweepDirection[yCornerID]; queryY, y = queryY+directionY, y+sweepDirection[yCornerID] {
					queryijk[queryYDim/2] = queryY
					ijk[yDim/2] = y

					queryPointID := queryExtent.PointIndex(queryijk[0], queryijk[1], queryijk[2])
					targetID := targetExtent.PointIndex(ijk[0], ijk[1], ijk[2])

					if !pointsCoincide(queryPoints[queryPointID], targetPoints[targetID]) {
						gridsAreFitting = false
					}
				}
			}
			queryX -= directionX
			queryY -= directionY
			x -= sweepDirection[xCornerID]
			y -= sweepDirection[yCornerID]

			if gridsAreFitting &&
				(abs(localGrid.EndX-localGrid.StartX) <= abs(queryX-queryXBegin) ||
					abs(localGrid.EndY-localGrid.StartY) <= abs(queryY-queryYBegin)) {
				localGrid.StartX = queryXBegin
				localGrid.StartY = queryYBegin
				localGrid.EndX = queryX
				localGrid.EndY = queryY
				localGrid.XOrientation = directionX
				localGrid.YOrientation = directionY
				localGrid.FaceIndex = queryFaceIndex

				grid.StartX = xBegin
				grid.StartY = yBegin
				grid.EndX = x
				grid.EndY = y
				grid.XOrientation = sweepDirection[xCornerID]
				grid.YOrientation = sweepDirection[yCornerID]
				grid.FaceIndex = targetFaceIndex

				retVal = true
			}
		}
	}
	return retVal
}

// pointStructuredCoords is the inverse of Extent.PointIndex.
func pointStructuredCoords(e block.Extent, id int) (i, j, k int) {
	nx := e[1] - e[0] + 1
	ny := e[3] - e[2] + 1
	k = id / (nx * ny)
	rem := id % (nx * ny)
	j = rem / nx
	i = rem % nx
	return e[0] + i, e[2] + j, e[4] + k
}

// findClosestPoint does a linear nearest-point scan over a face's point
// patch. Face patches are small 2D boundary layers, not the full volume,
// so a brute-force scan is the right cost/complexity tradeoff rather than
// standing up a spatial index for this one narrow use.
func findClosestPoint(points []block.Point3, query block.Point3) int {
	best := 0
	bestDist := distSquared(points[0], query)
	for i := 1; i < len(points); i++ {
		d := distSquared(points[i], query)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func distSquared(a, b block.Point3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

func pointsCoincide(a, b block.Point3) bool {
	return floatcmp.EqualValue(a.X, b.X) && floatcmp.EqualValue(a.Y, b.Y) && floatcmp.EqualValue(a.Z, b.Z)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
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
