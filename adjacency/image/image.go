// Package image implements the image-grid flavor of the adjacency solver
// (§4.4): equal spacing, coincident orientation quaternion, and an origin
// offset that lands on the integer lattice.
package image

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/floatcmp"
)

// Solver is the image-grid adjacency.Solver.
type Solver struct{}

// quaternionEpsilonULPs bounds how far a quaternion dot product may sit
// from 1 and still be considered the same orientation (§3: "within 4·ULP
// of 1").
const quaternionEpsilonULPs = 4

// BuildDescriptor fills the image-specific fields of a block's outgoing
// descriptor.
func (Solver) BuildDescriptor(b *block.Block) *block.Structure {
	return &block.Structure{
		GID:                   b.GID,
		Flavor:                block.Image,
		Extent:                b.Info.Extent,
		DataDimension:         dataDimension(b.Info.Extent),
		Origin:                b.Input.Origin,
		Spacing:               b.Input.Spacing,
		OrientationQuaternion: b.Input.OrientationQuaternion,
	}
}

// IsAdjacent implements §4.4's image-grid rule: reject on spacing,
// orientation, or dimension mismatch, otherwise compute the origin offset
// in world units, divide by spacing, and round to the nearest integer
// lattice offset.
func (Solver) IsAdjacent(local *block.Block, remote *block.Structure) (shifted block.Extent, ok bool) {
	localDim := dataDimension(local.Info.Extent)
	if localDim != remote.DataDimension {
		return block.Extent{}, false
	}

	localSpacing := local.Input.Spacing[:]
	remoteSpacing := remote.Spacing[:]
	for axis := 0; axis < 3; axis++ {
		if !spacingEqual(localSpacing[axis], remoteSpacing[axis]) {
			return block.Extent{}, false
		}
	}

	if !quaternionsCoincide(local.Input.OrientationQuaternion, remote.OrientationQuaternion) {
		return block.Extent{}, false
	}

	var offset [3]int
	for axis := 0; axis < 3; axis++ {
		worldOffset := remote.Origin[axis] - local.Input.Origin[axis]
		spacing := local.Input.Spacing[axis]
		if spacing == 0 {
			if worldOffset != 0 {
				return block.Extent{}, false
			}
			offset[axis] = 0
			continue
		}
		offset[axis] = int(math.Round(worldOffset / spacing))
	}

	shifted = remote.Extent.Translate(offset[0], offset[1], offset[2])
	return shifted, true
}

// MaterializeGhostCoordinates is a no-op for image grids: coordinates are
// implicit in Origin/Spacing and never materialized per block (§4.5).
func (Solver) MaterializeGhostCoordinates(b *block.Block) {}

func spacingEqual(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, 1e-12, 1e-9)
}

// quaternionsCoincide reports whether two orientation quaternions describe
// the same orientation via |dot(q1,q2)| within 4 ULP of 1 (the sign
// ambiguity of quaternion rotation means -q and q are the same
// orientation, so the comparison uses the absolute value of the dot
// product).
func quaternionsCoincide(q1, q2 [4]float64) bool {
	dot := floats.Dot(q1[:], q2[:])
	return math.Abs(math.Abs(dot)-1.0) <= quaternionEpsilonULPs*floatcmp.Epsilon
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
