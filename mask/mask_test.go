package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/ghostgrid/block"
)

func TestCompute_FaceContactAlongX(t *testing.T) {
	local := block.Extent{0, 4, 0, 4, 0, 4}
	shifted := block.Extent{4, 8, 0, 4, 0, 4}

	adjacency, overlap := Compute(local, shifted)
	assert.Equal(t, block.AdjacencyBit(block.Right), adjacency)
	assert.Equal(t, block.OverlapBit(1)|block.OverlapBit(2), overlap)
}

func TestCompute_DegenerateAxisNeverSetsBit(t *testing.T) {
	local := block.Extent{0, 4, 0, 4, 0, 0}
	shifted := block.Extent{4, 8, 0, 4, 0, 0}

	adjacency, _ := Compute(local, shifted)
	assert.Equal(t, block.AdjacencyBit(block.Right), adjacency)
}

func TestClassify_SingleSideOverlapIsFaceContact(t *testing.T) {
	local := block.Extent{0, 4, 0, 4, 0, 4}
	shifted := block.Extent{4, 8, 0, 4, 0, 4}
	adjacency, overlap := Compute(local, shifted)

	kind, sides := Classify(local, adjacency, overlap)
	assert.Equal(t, FaceContact, kind)
	assert.Equal(t, []block.Side{block.Right}, sides)
}

func TestClassify_TwoSidesOnSameAxisIsNotAdjacent(t *testing.T) {
	adjacency := block.AdjacencyBit(block.Left) | block.AdjacencyBit(block.Right)

	kind, sides := Classify(block.Extent{0, 4, 0, 4, 0, 4}, adjacency, 0)
	assert.Equal(t, NotAdjacent, kind)
	assert.Nil(t, sides)
}

func TestClassify_CornerContactAlwaysThreeSides(t *testing.T) {
	adjacency := block.AdjacencyBit(block.Right) | block.AdjacencyBit(block.Back) | block.AdjacencyBit(block.Top)

	kind, sides := Classify(block.Extent{0, 4, 0, 4, 0, 4}, adjacency, 0)
	assert.Equal(t, CornerContact, kind)
	assert.Len(t, sides, 3)
}

func TestDimensionConsistent(t *testing.T) {
	adjacency := block.AdjacencyBit(block.Right) | block.AdjacencyBit(block.Back)
	assert.True(t, DimensionConsistent(adjacency, 3))
	assert.False(t, DimensionConsistent(adjacency, 1))
}

func TestGrowThickness_CapsAtUserLevelAndNarrowestBlock(t *testing.T) {
	info := &block.Information{Extent: block.Extent{0, 4, 0, 4, 0, 4}}
	remote := &block.Structure{Extent: block.Extent{4, 6, 0, 4, 0, 4}}
	remote.ExtentWithNewGhosts = remote.Extent

	GrowThickness(info, remote, block.Right, 5)

	assert.Equal(t, 2, info.GhostThickness(block.Right), "capped by remote's own width (|4-6|=2)")
	assert.Equal(t, 2, remote.ExtentWithNewGhosts.Lo(0), "remote's opposite side grown by the same amount")
}

func TestGrowThickness_NeverShrinksAccumulatedThickness(t *testing.T) {
	info := &block.Information{Extent: block.Extent{0, 4, 0, 4, 0, 4}}
	info.GrowGhostThickness(block.Right, 3)
	remote := &block.Structure{Extent: block.Extent{4, 8, 0, 4, 0, 4}}
	remote.ExtentWithNewGhosts = remote.Extent

	GrowThickness(info, remote, block.Right, 1)

	assert.Equal(t, 3, info.GhostThickness(block.Right))
}
