package image

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/ghostgrid/block"
)

func newLocal(extent block.Extent, origin, spacing [3]float64) *block.Block {
	ib := &block.InputBlock{
		GID:                   1,
		Flavor:                block.Image,
		Extent:                extent,
		Origin:                origin,
		Spacing:               spacing,
		OrientationQuaternion: [4]float64{1, 0, 0, 0},
	}
	b := block.NewBlock(ib)
	b.Info.Extent = extent
	return b
}

func remoteDescriptor(extent block.Extent, origin, spacing [3]float64) *block.Structure {
	return &block.Structure{
		GID:                   2,
		Flavor:                block.Image,
		Extent:                extent,
		DataDimension:         3,
		Origin:                origin,
		Spacing:               spacing,
		OrientationQuaternion: [4]float64{1, 0, 0, 0},
	}
}

func TestIsAdjacent_SideBySideAlongX(t *testing.T) {
	s := Solver{}
	local := newLocal(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	remote := remoteDescriptor(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{4, 0, 0}, [3]float64{1, 1, 1})

	shifted, ok := s.IsAdjacent(local, remote)
	if !assert.True(t, ok, "expected adjacency") {
		t.FailNow()
	}
	assert.Equal(t, block.Extent{4, 8, 0, 4, 0, 4}, shifted)
}

func TestIsAdjacent_SpacingMismatchRejected(t *testing.T) {
	s := Solver{}
	local := newLocal(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	remote := remoteDescriptor(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{4, 0, 0}, [3]float64{2, 1, 1})

	_, ok := s.IsAdjacent(local, remote)
	assert.False(t, ok, "expected rejection on spacing mismatch")
}

func TestIsAdjacent_OrientationMismatchRejected(t *testing.T) {
	s := Solver{}
	local := newLocal(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	remote := remoteDescriptor(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{4, 0, 0}, [3]float64{1, 1, 1})
	remote.OrientationQuaternion = [4]float64{0, 1, 0, 0}

	_, ok := s.IsAdjacent(local, remote)
	assert.False(t, ok, "expected rejection on orientation mismatch")
}

func TestIsAdjacent_NonLatticeOffsetRoundedToNearest(t *testing.T) {
	// An offset of 4.4999 in spacing-1 units rounds to 4, so this should
	// still match; verifying the rounding behavior rather than rejecting.
	s := Solver{}
	local := newLocal(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	remote := remoteDescriptor(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{4.4999, 0, 0}, [3]float64{1, 1, 1})

	shifted, ok := s.IsAdjacent(local, remote)
	if !assert.True(t, ok, "expected adjacency via rounding") {
		t.FailNow()
	}
	assert.Equal(t, 4, shifted[0])
}

func TestIsAdjacent_DimensionMismatchRejected(t *testing.T) {
	s := Solver{}
	local := newLocal(block.Extent{0, 4, 0, 4, 0, 0}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	remote := remoteDescriptor(block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{4, 0, 0}, [3]float64{1, 1, 1})
	remote.DataDimension = 3

	_, ok := s.IsAdjacent(local, remote)
	assert.False(t, ok, "expected rejection on dimension mismatch")
}
