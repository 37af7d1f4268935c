package urbangraph

import (
	"github.com/voidshard/urbangraph/internal/geom"
)

// ModelStats holds generic stats about the generated layout
type ModelStats struct {
	// RoadAttempts counts every road the generator tried to place,
	// RoadMisses the ones whose ray met nothing.
	RoadAttempts int
	RoadMisses   int `json:",omitempty"`

	// Count of blocks of a given type
	BlocksByType map[BlockType]int

	Plots     int
	Buildings int
	Units     int
}

// newModelStats returns blank ModelStats
func newModelStats() *ModelStats {
	return &ModelStats{BlocksByType: map[BlockType]int{}}
}

// increment BlocksByType by 1
func (s *ModelStats) increment(t BlockType) {
	count, _ := s.BlocksByType[t]
	s.BlocksByType[t] = count + 1
}

// Precinct is the boundary everything is laid out within.
type Precinct struct {
	Boundary geom.Polygon
}

// Curves returns the boundary edges in order
func (p *Precinct) Curves() []geom.Curve {
	return p.Boundary.Edges()
}

// Area of the precinct
func (p *Precinct) Area() float64 {
	return p.Boundary.Area()
}

// Road is one generated road centerline.
type Road struct {
	Centerline geom.Curve
	HalfWidth  float64

	// Depth is the remaining recursion depth when the road was placed;
	// the first road has the configured depth, its branches one less etc.
	Depth int
}

// RoadNetwork is the result of road generation.
type RoadNetwork struct {
	// Obstacles holds the precinct boundary curves followed by every road
	// centerline in creation order.
	Obstacles []geom.Curve

	// BoundaryCount is how many leading Obstacles are boundary curves
	BoundaryCount int

	// Kerbs are the curves offset either side of each road, in creation order
	Kerbs []geom.Curve

	Roads []*Road

	Attempts int `json:",omitempty"`
	Misses   int `json:",omitempty"`
}

// Curves returns every curve that divides the precinct: road
// centerlines followed by kerbs.
func (r *RoadNetwork) Curves() []geom.Curve {
	out := []geom.Curve{}
	for _, road := range r.Roads {
		out = append(out, road.Centerline)
	}
	return append(out, r.Kerbs...)
}

// Block is a region of the precinct enclosed by roads.
type Block struct {
	// ID for this block
	ID int

	// Type see block_types.go
	Type BlockType

	// Face is the block boundary
	Face geom.Polygon

	// Marker is a flat solid covering park blocks
	Marker *geom.Prism `json:",omitempty"`

	Plots []*Plot `json:",omitempty"`
}

// Area of the block
func (b *Block) Area() float64 {
	return b.Face.Area()
}

// Plot is a parcel of land within a block.
type Plot struct {
	// ID for this plot, unique within the model
	ID int

	// Type is always the type of the owning block
	Type BlockType

	Face geom.Polygon

	Building *Building `json:",omitempty"`
}

// Area of the plot
func (p *Plot) Area() float64 {
	return p.Face.Area()
}

// Building is the massing placed on a plot: a stack of equal storeys over
// a footprint set back from the plot boundary.
type Building struct {
	Footprint    geom.Polygon
	Height       float64
	StoreyCount  int
	StoreyHeight float64

	// Envelope is the whole building as one solid
	Envelope *geom.Prism

	// Units from the ground storey up
	Units []*Unit
}

// Unit is a single storey of a building.
type Unit struct {
	Level  int
	Volume *geom.Prism
}

// Elevation of the unit's floor
func (u *Unit) Elevation() float64 {
	return u.Volume.Base
}
