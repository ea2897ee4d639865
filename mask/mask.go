// Package mask implements the extent/mask arithmetic shared by all three
// grid-flavor adjacency solvers (§4.4): the adjacency mask, the overlap
// mask, contact classification, and per-side ghost thickness growth.
// Nothing here is flavor-specific; each adjacency solver computes a
// shifted remote extent its own way and then hands both extents here.
package mask

import "github.com/notargets/ghostgrid/block"

// Kind classifies the geometric contact between a local extent and a
// shifted remote extent.
type Kind int

const (
	NotAdjacent Kind = iota
	FaceContact
	EdgeContact
	CornerContact
)

// Compute returns the adjacency mask and overlap mask for local against
// shifted (the remote extent re-expressed in local's frame), per the
// bit arithmetic of §4.4. Bits on degenerate local axes are always
// cleared.
func Compute(local, shifted block.Extent) (adjacency, overlap uint8) {
	for s := block.Side(0); s < 6; s++ {
		axis := s.Axis()
		if local.Degenerate(axis) {
			continue
		}
		opp := s.Opposite()
		if local.At(s) == shifted.At(opp) {
			adjacency |= block.AdjacencyBit(s)
		}
	}
	for axis := 0; axis < 3; axis++ {
		if local.IntersectsAxis(shifted, axis) {
			overlap |= block.OverlapBit(axis)
		}
	}
	return adjacency, overlap
}

// sidesSet returns the sides whose adjacency bit is set, and the set of
// axes they touch.
func sidesSet(adjacency uint8) (sides []block.Side, axes map[int]bool) {
	axes = make(map[int]bool)
	for s := block.Side(0); s < 6; s++ {
		if adjacency&block.AdjacencyBit(s) != 0 {
			sides = append(sides, s)
			axes[s.Axis()] = true
		}
	}
	return sides, axes
}

// Classify decides whether the adjacency/overlap mask pair describes a
// face, edge, or corner contact, per the rules of §4.4. local is used to
// know which axes are degenerate (a degenerate axis can never require
// overlap and never contributes a bit).
func Classify(local block.Extent, adjacency, overlap uint8) (kind Kind, sides []block.Side) {
	sides, touchedAxes := sidesSet(adjacency)
	if len(touchedAxes) != len(sides) {
		// Two bits on the same axis (both Left and Right set) cannot be a
		// real contact: a block cannot be simultaneously above and below
		// the same neighbor on one axis.
		return NotAdjacent, nil
	}

	nonDegenerateOtherAxesOverlap := func(skip map[int]bool) bool {
		for axis := 0; axis < 3; axis++ {
			if skip[axis] || local.Degenerate(axis) {
				continue
			}
			if overlap&block.OverlapBit(axis) == 0 {
				return false
			}
		}
		return true
	}

	switch len(sides) {
	case 1:
		if nonDegenerateOtherAxesOverlap(touchedAxes) {
			return FaceContact, sides
		}
	case 2:
		if nonDegenerateOtherAxesOverlap(touchedAxes) {
			return EdgeContact, sides
		}
	case 3:
		return CornerContact, sides
	}
	return NotAdjacent, nil
}

// DimensionConsistent reports whether the number of distinct axes touched
// by the adjacency mask is compatible with dataDimension (the number of
// non-degenerate axes the grid actually has). An inconsistency (e.g. a
// 3-axis corner mask on a 2D grid) is the one condition the spec (§7)
// requires a warning-level diagnostic for.
func DimensionConsistent(adjacency uint8, dataDimension int) bool {
	_, axes := sidesSet(adjacency)
	return len(axes) <= dataDimension
}

// GrowThickness applies the per-side ghost-thickness growth rule of §4.4
// for one contact side: localThickness = min(userGhostLevels,
// |L.side-L.opposite|, |R.side-R.opposite|); info's accumulated thickness
// on that side is raised to at least localThickness, and remote's
// opposite-side ExtentWithNewGhosts is grown by the same amount (so the
// remote knows how much we will send it back).
func GrowThickness(info *block.Information, remote *block.Structure, s block.Side, userGhostLevels int) {
	opp := s.Opposite()
	localWidth := abs(info.Extent.At(s) - info.Extent.At(opp))
	remoteWidth := abs(remote.Extent.At(s) - remote.Extent.At(opp))
	thickness := min3(userGhostLevels, localWidth, remoteWidth)
	info.GrowGhostThickness(s, thickness)
	remote.ExtentWithNewGhosts = remote.ExtentWithNewGhosts.GrowSide(opp, thickness)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
