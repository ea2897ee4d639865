// Package demo provides a reference block-to-peer assignment step for
// driving ghostgen.Generate end to end, in the style of
// DG3D/mesh/mesh_partitioner.go's METIS-based mesh partitioner. It is
// not part of the ghost-cell generation algorithm itself: a host
// pipeline is free to supply its own peer assignment (§6) and skip this
// package entirely.
package demo

import (
	"fmt"
	"log"

	metis "github.com/notargets/go-metis"

	"github.com/notargets/ghostgrid/block"
)

// PartitionConfig mirrors DG3D/mesh's PartitionConfig, scaled down to
// the knobs that make sense for a block-count-sized graph rather than
// an element-count-sized one.
type PartitionConfig struct {
	NumPeers        int32
	ImbalanceFactor float32
	Objective       string // "cut" or "vol"
}

// DefaultPartitionConfig returns a reasonable default: 5% imbalance,
// minimizing communication volume.
func DefaultPartitionConfig(numPeers int32) *PartitionConfig {
	return &PartitionConfig{
		NumPeers:        numPeers,
		ImbalanceFactor: 1.05,
		Objective:       "vol",
	}
}

// BlockPartitioner assigns input blocks to peers by running METIS over
// a candidate adjacency graph built from bounding-box overlap: two
// blocks are graph-adjacent here if their raw extents' bounding boxes
// touch or overlap, a cheap superset of true geometric adjacency good
// enough to drive partitioning (the real adjacency solver runs later,
// after peers are already assigned, and is the source of truth).
type BlockPartitioner struct {
	blocks []*block.InputBlock
	config *PartitionConfig
}

// NewBlockPartitioner builds a partitioner over the given input blocks.
func NewBlockPartitioner(blocks []*block.InputBlock, config *PartitionConfig) *BlockPartitioner {
	return &BlockPartitioner{blocks: blocks, config: config}
}

// Partition runs METIS graph partitioning and returns a peer assignment
// keyed by gid, and the resulting per-peer block.Store slice ready to
// hand to ghostgen.Generate.
func (bp *BlockPartitioner) Partition() (assignment map[block.GID]int, stores []*block.Store, err error) {
	n := len(bp.blocks)
	log.Printf("ghostgrid: partitioning %d blocks into %d peers", n, bp.config.NumPeers)

	xadj, adjncy := bp.buildMetisGraph()

	opts := make([]int32, metis.NoOptions)
	if err := metis.SetDefaultOptions(opts); err != nil {
		return nil, nil, fmt.Errorf("demo: setting METIS options: %w", err)
	}
	if bp.config.Objective == "vol" {
		opts[metis.OptionObjType] = metis.ObjTypeVol
	} else {
		opts[metis.OptionObjType] = metis.ObjTypeCut
	}
	ubvec := []float32{bp.config.ImbalanceFactor}

	part, objval, err := metis.PartGraphKwayWeighted(xadj, adjncy, nil, nil, bp.config.NumPeers, nil, ubvec, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("demo: METIS partitioning failed: %w", err)
	}
	log.Printf("ghostgrid: partition objective value %d", objval)

	assignment = make(map[block.GID]int, n)
	stores = make([]*block.Store, bp.config.NumPeers)
	for p := range stores {
		stores[p] = block.NewStore()
	}
	for i, ib := range bp.blocks {
		peer := int(part[i])
		assignment[ib.GID] = peer
		stores[peer].Add(block.NewBlock(ib))
	}
	return assignment, stores, nil
}

func (bp *BlockPartitioner) buildMetisGraph() (xadj, adjncy []int32) {
	n := len(bp.blocks)
	xadj = make([]int32, n+1)
	adjncy = []int32{}

	xadj[0] = 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if boundingBoxesTouch(bp.blocks[i].Extent, bp.blocks[j].Extent) {
				adjncy = append(adjncy, int32(j))
			}
		}
		xadj[i+1] = int32(len(adjncy))
	}
	return xadj, adjncy
}

// boundingBoxesTouch is a coarse pre-filter, not the true adjacency
// rule: it only checks index-range overlap or exact touch on every
// axis, ignoring origin/spacing/orientation entirely.
func boundingBoxesTouch(a, b block.Extent) bool {
	for axis := 0; axis < 3; axis++ {
		if a.Hi(axis) < b.Lo(axis) || b.Hi(axis) < a.Lo(axis) {
			return false
		}
	}
	return true
}
