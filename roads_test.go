package urbangraph

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/urbangraph/internal/geom"
)

func squarePolygon(size float64) geom.Polygon {
	return geom.NewPolygon([]model2d.Coord{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}})
}

func TestGenerateRoadsBoundedGrowth(t *testing.T) {
	for _, depth := range []int{1, 2, 3, 6} {
		t.Run("depth", func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(depth)))

			net, err := GenerateRoads(squarePolygon(100).Edges(), depth, 3, 6, rng)
			require.NoError(t, err)

			assert.LessOrEqual(t, net.Attempts, (1<<(depth+1))-1)
			assert.LessOrEqual(t, len(net.Roads), net.Attempts)
			assert.LessOrEqual(t, len(net.Kerbs), 2*len(net.Roads))
			assert.Equal(t, 4, net.BoundaryCount)
			assert.Len(t, net.Obstacles, 4+len(net.Roads))
		})
	}
}

func TestGenerateRoadsZeroDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	net, err := GenerateRoads(squarePolygon(100).Edges(), 0, 3, 6, rng)

	assert.True(t, errors.Is(err, ErrNoRoads))
	require.NotNil(t, net)
	assert.Empty(t, net.Roads)
	assert.Equal(t, 0, net.Attempts)
}

func TestGenerateRoadsStayInside(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	square := squarePolygon(100)

	net, err := GenerateRoads(square.Edges(), 4, 3, 6, rng)
	require.NoError(t, err)

	for i, r := range net.Roads {
		for _, c := range []model2d.Coord{r.Centerline.Start, r.Centerline.End} {
			assert.True(t, square.Contains(c) || square.OnBoundary(c, 1e-6), "road %d end %v", i, c)
		}
		assert.GreaterOrEqual(t, r.HalfWidth, 3.0)
		assert.LessOrEqual(t, r.HalfWidth, 6.0)
		assert.Greater(t, r.Centerline.Length(), 0.0)
	}
}

func TestGenerateRoadsFirstRoadCrossesSquare(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	net, err := GenerateRoads(squarePolygon(100).Edges(), 1, 3, 6, rng)
	require.NoError(t, err)

	require.Len(t, net.Roads, 1)
	assert.InDelta(t, 100, net.Roads[0].Centerline.Length(), 1e-6)
	assert.Equal(t, 1, net.Roads[0].Depth)
	assert.Len(t, net.Kerbs, 2)
	for _, k := range net.Kerbs {
		assert.InDelta(t, 100, k.Length(), 1e-6)
	}
}

func TestGenerateRoadsDeterministic(t *testing.T) {
	a, err := GenerateRoads(squarePolygon(100).Edges(), 5, 3, 6, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	b, err := GenerateRoads(squarePolygon(100).Edges(), 5, 3, 6, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateRoadsInvalidBoundary(t *testing.T) {
	_, err := GenerateRoads(nil, 3, 3, 6, rand.New(rand.NewSource(1)))

	assert.True(t, errors.Is(err, ErrInvalidPrecinct))
}
