package curvilinear

import (
	"testing"

	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/peel"
)

// buildUnitGrid returns a 5x5x5-point curvilinear block (a 4-cell cube per
// axis) with coordinates equal to point indices, offset by origin.
func buildUnitGrid(gid block.GID, extent block.Extent, origin [3]float64) *block.Block {
	n := extent.NumPoints()
	pts := make([]block.Point3, n[0]*n[1]*n[2])
	for k := extent[4]; k <= extent[5]; k++ {
		for j := extent[2]; j <= extent[3]; j++ {
			for i := extent[0]; i <= extent[1]; i++ {
				pts[extent.PointIndex(i, j, k)] = block.Point3{
					X: origin[0] + float64(i),
					Y: origin[1] + float64(j),
					Z: origin[2] + float64(k),
				}
			}
		}
	}
	ib := &block.InputBlock{GID: gid, Flavor: block.Curvilinear, Extent: extent, Points: pts}
	b := block.NewBlock(ib)
	b.Info.Extent = extent
	b.Info.OuterLayers, b.Info.OuterLayerExtent = peel.ExtractOuterLayers(extent, pts)
	return b
}

func TestIsAdjacent_SideBySideAlongX(t *testing.T) {
	local := buildUnitGrid(1, block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{0, 0, 0})
	remoteBlock := buildUnitGrid(2, block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{4, 0, 0})

	s := Solver{}
	remoteDesc := s.BuildDescriptor(remoteBlock)

	shifted, ok := s.IsAdjacent(local, remoteDesc)
	if !ok {
		t.Fatal("expected adjacency")
	}
	want := block.Extent{4, 8, 0, 4, 0, 4}
	if shifted != want {
		t.Errorf("shifted = %v, want %v", shifted, want)
	}
	if remoteDesc.Interface == nil {
		t.Fatal("expected remoteDesc.Interface to be populated once adjacency is decided")
	}
	if remoteDesc.Interface.XOrientation != 1 && remoteDesc.Interface.XOrientation != -1 {
		t.Errorf("Interface.XOrientation = %d, want +1 or -1", remoteDesc.Interface.XOrientation)
	}
	if remoteDesc.Interface.YOrientation != 1 && remoteDesc.Interface.YOrientation != -1 {
		t.Errorf("Interface.YOrientation = %d, want +1 or -1", remoteDesc.Interface.YOrientation)
	}
}

func TestIsAdjacent_NoCoincidentPointsRejected(t *testing.T) {
	local := buildUnitGrid(1, block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{0, 0, 0})
	remoteBlock := buildUnitGrid(2, block.Extent{0, 4, 0, 4, 0, 4}, [3]float64{100, 100, 100})

	s := Solver{}
	remoteDesc := s.BuildDescriptor(remoteBlock)

	_, ok := s.IsAdjacent(local, remoteDesc)
	if ok {
		t.Error("expected rejection: blocks share no coincident boundary points")
	}
}
