package urbangraph

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/voidshard/urbangraph/internal/geom"
)

// roadGrower holds the state shared by every branch of road generation.
// Branches add to the same obstacle set so later roads stop at earlier ones.
type roadGrower struct {
	obstacles *geom.Obstacles
	kerbs     []geom.Curve
	roads     []*Road
	rng       *rand.Rand

	halfMin float64
	halfMax float64

	attempts int
	misses   int
}

// GenerateRoads grows a road network inside a counter clockwise boundary.
//
// A random boundary curve seeds the growth. From a random point along a
// curve a road is cast perpendicular to it until it meets the boundary or
// an existing road, then roads are grown off both sides of the new road
// with one less depth. Each road also gets a kerb on either side, cast
// along the road from its start.
//
// Returns ErrNoRoads if no road could be placed (including depth < 1).
func GenerateRoads(boundary []geom.Curve, depth int, halfMin, halfMax float64, rng *rand.Rand) (*RoadNetwork, error) {
	if len(boundary) < 3 {
		return nil, errors.Wrapf(ErrInvalidPrecinct, "boundary has %d curves", len(boundary))
	}

	g := &roadGrower{
		obstacles: geom.NewObstacles(boundary...),
		kerbs:     []geom.Curve{},
		roads:     []*Road{},
		rng:       rng,
		halfMin:   halfMin,
		halfMax:   halfMax,
	}

	seed := boundary[rng.Intn(len(boundary))]
	g.grow(seed, -1, depth)

	net := &RoadNetwork{
		Obstacles:     g.obstacles.Curves(),
		BoundaryCount: len(boundary),
		Kerbs:         g.kerbs,
		Roads:         g.roads,
		Attempts:      g.attempts,
		Misses:        g.misses,
	}
	if len(net.Roads) == 0 {
		return net, errors.Wrapf(ErrNoRoads, "depth %d, %d attempts", depth, g.attempts)
	}
	return net, nil
}

// grow places one road off curve on the given side (-1 or +1 along the
// curve's lateral axis) and recurses off the new road.
func (g *roadGrower) grow(curve geom.Curve, direction float64, depth int) {
	if depth < 1 {
		return
	}
	g.attempts++

	t := 0.2 + g.rng.Float64()*0.6
	frame := curve.FrameAt(t)

	road, ok := g.obstacles.Extend(frame.Origin, frame.Lateral.Scale(direction))
	if !ok {
		g.misses++
		return
	}
	g.obstacles.Add(road)

	halfWidth := g.halfMin + g.rng.Float64()*(g.halfMax-g.halfMin)
	g.roads = append(g.roads, &Road{Centerline: road, HalfWidth: halfWidth, Depth: depth})
	g.addKerbs(road, halfWidth)

	g.grow(road, 1, depth-1)
	g.grow(road, -1, depth-1)
}

// addKerbs casts a curve along the road from halfWidth either side of its
// start. Kerbs are not obstacles; a kerb that meets nothing is dropped.
func (g *roadGrower) addKerbs(road geom.Curve, halfWidth float64) {
	frame := road.FrameAt(0)
	for _, side := range []float64{1, -1} {
		origin := frame.Origin.Add(frame.Lateral.Scale(side * halfWidth))
		kerb, ok := g.obstacles.Extend(origin, frame.Normal)
		if !ok {
			continue
		}
		g.kerbs = append(g.kerbs, kerb)
	}
}
