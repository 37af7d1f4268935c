package urbangraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/urbangraph/internal/geom"
)

func rect(w, h float64) geom.Polygon {
	return geom.NewPolygon([]model2d.Coord{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}})
}

func TestSubdividePlotsRows(t *testing.T) {
	block := &Block{ID: 0, Type: MidRise, Face: rect(100, 60)}

	plots := SubdividePlots(block, 20, 25)

	// bisected along y=30, cut across every 25
	require.Len(t, plots, 8)
	total := 0.0
	for i, p := range plots {
		assert.Equal(t, i, p.ID)
		assert.Equal(t, BlockType(MidRise), p.Type)
		assert.InDelta(t, 750, p.Area(), 1e-6)
		assert.Len(t, p.Face, 4)
		assert.Nil(t, p.Building)
		total += p.Area()
	}
	assert.InDelta(t, block.Area(), total, 1e-6*block.Area())
}

func TestSubdividePlotsLongSideVertical(t *testing.T) {
	block := &Block{Type: LowRise, Face: rect(60, 100)}

	plots := SubdividePlots(block, 20, 25)

	require.Len(t, plots, 8)
	for _, p := range plots {
		b := p.Face.Bounds()
		assert.InDelta(t, 30, b.Size().X, 1e-6)
		assert.InDelta(t, 25, b.Size().Y, 1e-6)
	}
}

func TestSubdividePlotsDegenerate(t *testing.T) {
	cases := []struct {
		Name  string
		Face  geom.Polygon
		Depth float64
	}{
		{"too shallow", rect(80, 60), 45},
		{"square", rect(30, 30), 45},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			block := &Block{Type: HighRise, Face: c.Face}

			plots := SubdividePlots(block, c.Depth, 25)

			require.Len(t, plots, 1)
			assert.Equal(t, c.Face, plots[0].Face)
			assert.Equal(t, BlockType(HighRise), plots[0].Type)
		})
	}
}

func TestSubdividePlotsAreaConservedOnSkewedBlock(t *testing.T) {
	face := geom.NewPolygon([]model2d.Coord{{X: 0, Y: 0}, {X: 120, Y: 10}, {X: 110, Y: 90}, {X: -5, Y: 70}})
	block := &Block{Type: LowRise, Face: face}

	plots := SubdividePlots(block, 15, 20)

	assert.Greater(t, len(plots), 1)
	total := 0.0
	for _, p := range plots {
		assert.Greater(t, p.Area(), 0.0)
		total += p.Area()
	}
	assert.InDelta(t, face.Area(), total, 1e-6*face.Area())
}

func TestPlotCutsNarrowBlock(t *testing.T) {
	assert.Empty(t, plotCuts(rect(100, 40), 20, 25))
	assert.NotEmpty(t, plotCuts(rect(100, 41), 20, 25))
}
