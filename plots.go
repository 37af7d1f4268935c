package urbangraph

import (
	"math"

	"github.com/voidshard/urbangraph/internal/geom"
)

// SubdividePlots splits a block into plots.
//
// The block is measured over its bounding rectangle. If the block is deep
// enough across its short side, it is bisected along its long axis and
// then cut across the bisector every maxPlotWidth or so, giving two rows of
// plots back to back. Blocks too shallow to bisect become a single plot.
//
// Plot IDs are numbered from 0 within the block; every plot takes the
// block's type.
func SubdividePlots(b *Block, minPlotDepth, maxPlotWidth float64) []*Plot {
	faces := []geom.Polygon{b.Face}

	cuts := plotCuts(b.Face, minPlotDepth, maxPlotWidth)
	if len(cuts) > 0 {
		split := geom.SplitFace(b.Face, cuts)
		if len(split) > 0 {
			faces = split
		}
	}

	plots := make([]*Plot, len(faces))
	for i, f := range faces {
		plots[i] = &Plot{ID: i, Type: b.Type, Face: f}
	}
	return plots
}

// plotCuts returns the bisector of the face followed by the cross lines
// along it, or nothing if the face is too small to divide.
func plotCuts(face geom.Polygon, minPlotDepth, maxPlotWidth float64) []geom.Curve {
	s := face.Patch()
	length := s.At(0, 0).Dist(s.At(0, 1))
	width := s.At(0, 0).Dist(s.At(1, 0))

	// the bisector runs along the long side, halving the short side
	from, to := s.At(0.5, 0), s.At(0.5, 1)
	depth := width
	if length <= width {
		from, to = s.At(0, 0.5), s.At(1, 0.5)
		depth = length
	}
	if depth <= 2*minPlotDepth {
		return nil
	}

	bisector, ok := face.Chord(from, to.Sub(from))
	if !ok {
		return nil
	}
	cuts := []geom.Curve{bisector}

	strips := math.Floor(bisector.Length() / maxPlotWidth)
	border := geom.NewObstacles(face.Edges()...)
	for i := 0; i < int(strips); i++ {
		frame := bisector.FrameAt(float64(i) / strips)
		for _, side := range []float64{1, -1} {
			cut, ok := border.Extend(frame.Origin, frame.Lateral.Scale(side))
			if ok {
				cuts = append(cuts, cut)
			}
		}
	}
	return cuts
}
