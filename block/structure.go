package block

// GridInterface is the 2D sub-grid descriptor that locates where two
// curvilinear blocks meet: start/end indices in the local block's two
// in-plane axes, their orientation relative to the remote block's axes,
// and which local face (0-5) the interface lies on.
type GridInterface struct {
	StartX, EndX int
	StartY, EndY int
	XOrientation int // +1 or -1
	YOrientation int
	FaceIndex    int
}

// Structure is the BlockStructure descriptor of a remote neighbor, as
// received during the descriptor exchange (§4.3). One flavor's worth of
// fields is populated depending on the owning block's Flavor; the rest
// are left zero.
type Structure struct {
	GID    GID
	Flavor Flavor

	Extent              Extent
	DataDimension       int
	AdjacencyMask       uint8
	OverlapMask         uint8
	ExtentWithNewGhosts Extent

	// Image.
	Origin                [3]float64
	Spacing               [3]float64
	OrientationQuaternion [4]float64

	// Rectilinear.
	XCoordinates, YCoordinates, ZCoordinates []float64

	// Curvilinear: six boundary-face point patches (mirrors
	// Information.OuterLayers of the sender) plus the face's own local
	// extent so a point locator can map a found point back to ijk.
	OuterFaces      [6][]Point3
	OuterFaceExtent [6]Extent
	Interface       *GridInterface
}

// Clone returns a deep-enough copy for safe mutation of ExtentWithNewGhosts
// and Interface without aliasing the original descriptor (slices are
// shared since they are read-only after §4.3 per the concurrency model).
func (s *Structure) Clone() *Structure {
	c := *s
	return &c
}
