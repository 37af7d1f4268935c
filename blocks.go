package urbangraph

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/voidshard/urbangraph/internal/geom"
)

// ExtractBlocks splits the precinct by every road centerline and kerb and
// keeps the faces large enough to be blocks. The thin faces between a road
// and its kerbs are the road surface itself; they fail the size check.
//
// Each block gets a random type, parks also get a flat marker solid.
// Returns ErrNoBlocks if no face is kept.
func ExtractBlocks(precinct geom.Polygon, roads *RoadNetwork, maxRoadHalfWidth, parkMarkerHeight float64, rng *rand.Rand) ([]*Block, error) {
	faces := geom.SplitFace(precinct, roads.Curves())

	blocks := []*Block{}
	for _, face := range faces {
		if !isBlock(face, maxRoadHalfWidth) {
			continue
		}

		b := &Block{
			ID:    len(blocks),
			Type:  randomBlockType(rng),
			Face:  face,
			Plots: []*Plot{},
		}
		if b.Type == Park {
			b.Marker = geom.Extrude(face, parkMarkerHeight)
		}
		blocks = append(blocks, b)
	}

	if len(blocks) == 0 {
		return nil, errors.Wrapf(ErrNoBlocks, "%d faces, none wider than %.2f", len(faces), 4*maxRoadHalfWidth)
	}
	return blocks, nil
}

// isBlock returns if the face has at least four edges and its four longest
// edges are all longer than two maximum road widths.
func isBlock(face geom.Polygon, maxRoadHalfWidth float64) bool {
	lens := face.EdgeLengths()
	if len(lens) < 4 {
		return false
	}
	threshold := 2 * (2 * maxRoadHalfWidth)
	for _, l := range lens[:4] {
		if l <= threshold {
			return false
		}
	}
	return true
}
