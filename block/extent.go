// Package block defines the core geometric and structural types shared by
// every grid flavor: extents, global block ids, the per-peer block store,
// and the Information/Structure records described in the ghost-cell
// generator's data model.
package block

import "fmt"

// Side indexes an extent axis end. The ordering matches the six-integer
// extent layout [iLo, iHi, jLo, jHi, kLo, kHi] so that a Side's value is
// the extent slot for that bound, and the adjacency bit for a side is
// 1<<side (see AdjacencyBit).
type Side int

const (
	Left Side = iota
	Right
	Front
	Back
	Bottom
	Top
)

func (s Side) String() string {
	return [...]string{"Left", "Right", "Front", "Back", "Bottom", "Top"}[s]
}

// Opposite returns the side on the other end of the same axis.
func (s Side) Opposite() Side {
	if s%2 == 0 {
		return s + 1
	}
	return s - 1
}

// Axis returns 0, 1, or 2 for i, j, k.
func (s Side) Axis() int {
	return int(s) / 2
}

// IsHigh reports whether this side is the high (hi) end of its axis.
func (s Side) IsHigh() bool {
	return int(s)%2 == 1
}

// Extent is an inclusive integer point-index box [iLo, iHi, jLo, jHi, kLo, kHi].
type Extent [6]int

// Valid reports whether lo <= hi on every axis.
func (e Extent) Valid() bool {
	return e[0] <= e[1] && e[2] <= e[3] && e[4] <= e[5]
}

// Degenerate reports whether the given axis (0, 1, or 2) has lo == hi.
func (e Extent) Degenerate(axis int) bool {
	return e[2*axis] == e[2*axis+1]
}

// Lo returns the lower index on the given side's axis.
func (e Extent) Lo(axis int) int { return e[2*axis] }

// Hi returns the upper index on the given side's axis.
func (e Extent) Hi(axis int) int { return e[2*axis+1] }

// At returns the extent component for a given side (iLo, iHi, jLo, ...).
func (e Extent) At(s Side) int { return e[s] }

// NumPoints returns the number of points on each axis.
func (e Extent) NumPoints() [3]int {
	return [3]int{e[1] - e[0] + 1, e[3] - e[2] + 1, e[5] - e[4] + 1}
}

// NumCells returns the number of cells on each axis. A degenerate axis has
// one "virtual" cell, matching the original's std::max(hi, lo+1) convention.
func (e Extent) NumCells() [3]int {
	n := [3]int{e[1] - e[0], e[3] - e[2], e[5] - e[4]}
	for i := range n {
		if n[i] == 0 {
			n[i] = 1
		}
	}
	return n
}

// GrowSide returns a copy of e with the given side moved outward by amount
// (amount is always non-negative; moving Left/Front/Bottom decreases the lo
// bound, moving Right/Back/Top increases the hi bound).
func (e Extent) GrowSide(s Side, amount int) Extent {
	out := e
	if amount == 0 {
		return out
	}
	if s.IsHigh() {
		out[s] += amount
	} else {
		out[s] -= amount
	}
	return out
}

// Translate shifts the extent by a per-axis integer offset.
func (e Extent) Translate(di, dj, dk int) Extent {
	return Extent{e[0] + di, e[1] + di, e[2] + dj, e[3] + dj, e[4] + dk, e[5] + dk}
}

// IntersectsAxis reports whether e and other have a strictly positive
// intersection on the given axis (used for the overlap mask, §4.4).
func (e Extent) IntersectsAxis(other Extent, axis int) bool {
	return e.Lo(axis) < other.Hi(axis) && other.Lo(axis) < e.Hi(axis)
}

// IntersectAxis returns the closed intersection [lo, hi] of e and other on
// the given axis, and whether it is non-empty.
func (e Extent) IntersectAxis(other Extent, axis int) (lo, hi int, ok bool) {
	lo = max(e.Lo(axis), other.Lo(axis))
	hi = min(e.Hi(axis), other.Hi(axis))
	return lo, hi, lo <= hi
}

// Intersect returns the per-axis closed box intersection of e and other. ok
// is false if any axis fails to overlap.
func (e Extent) Intersect(other Extent) (result Extent, ok bool) {
	ok = true
	for axis := 0; axis < 3; axis++ {
		lo, hi, axisOK := e.IntersectAxis(other, axis)
		if !axisOK {
			ok = false
		}
		result[2*axis], result[2*axis+1] = lo, hi
	}
	return result, ok
}

// EachCell calls fn once for every cell ijk in e, honoring the
// one-virtual-cell convention on degenerate axes (§3).
func (e Extent) EachCell(fn func(i, j, k int)) {
	ir, jr, kr := axisCellRange(e, 0), axisCellRange(e, 1), axisCellRange(e, 2)
	for _, k := range kr {
		for _, j := range jr {
			for _, i := range ir {
				fn(i, j, k)
			}
		}
	}
}

func axisCellRange(e Extent, axis int) []int {
	lo, hi := e.Lo(axis), e.Hi(axis)
	if lo == hi {
		return []int{lo}
	}
	out := make([]int, 0, hi-lo)
	for v := lo; v < hi; v++ {
		out = append(out, v)
	}
	return out
}

// EachPoint calls fn once for every point ijk in e.
func (e Extent) EachPoint(fn func(i, j, k int)) {
	for k := e[4]; k <= e[5]; k++ {
		for j := e[2]; j <= e[3]; j++ {
			for i := e[0]; i <= e[1]; i++ {
				fn(i, j, k)
			}
		}
	}
}

// ContainsCell reports whether cell ijk lies inside e, honoring the
// one-virtual-cell convention on degenerate axes.
func (e Extent) ContainsCell(i, j, k int) bool {
	return axisContainsCell(e, 0, i) && axisContainsCell(e, 1, j) && axisContainsCell(e, 2, k)
}

func axisContainsCell(e Extent, axis, v int) bool {
	lo, hi := e.Lo(axis), e.Hi(axis)
	if lo == hi {
		return v == lo
	}
	return v >= lo && v < hi
}

// ContainsPoint reports whether point ijk lies inside e.
func (e Extent) ContainsPoint(i, j, k int) bool {
	return i >= e[0] && i <= e[1] && j >= e[2] && j <= e[3] && k >= e[4] && k <= e[5]
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d,%d,%d]", e[0], e[1], e[2], e[3], e[4], e[5])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
