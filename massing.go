package urbangraph

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/voidshard/urbangraph/internal/geom"
)

// setbackAttempts is how many times the setback is halved before a plot
// is built on with no setback at all.
const setbackAttempts = 3

// MassBuilding places a building on the plot.
//
// The height is drawn from the plot type's range and split into equal
// storeys of at least cfg.StoreyHeight (rounding the storey count down).
// The footprint is the plot pulled in by cfg.Setback; on plots too small
// for the full setback it is halved until a footprint fits, or dropped
// entirely.
//
// Returns ErrNoBuilding for parks and plots under cfg.MinPlotArea.
func MassBuilding(p *Plot, cfg *MassingConfig, rng *rand.Rand) (*Building, error) {
	if !p.Type.Buildable() {
		return nil, errors.Wrapf(ErrNoBuilding, "plot %d is %s", p.ID, p.Type)
	}
	area := p.Area()
	if area < cfg.MinPlotArea {
		return nil, errors.Wrapf(ErrNoBuilding, "plot %d area %.2f under %.2f", p.ID, area, cfg.MinPlotArea)
	}

	hr, ok := cfg.Heights[p.Type]
	if !ok || hr == nil {
		return nil, errors.Errorf("no height range for block type %s", p.Type)
	}
	height := hr.Min + rng.Float64()*(hr.Max-hr.Min)

	footprint, ok := setbackFootprint(p.Face, cfg.Setback)
	if !ok {
		return nil, errors.Wrapf(ErrNoBuilding, "plot %d has no usable footprint", p.ID)
	}

	return stackStoreys(footprint, height, cfg.StoreyHeight)
}

// setbackFootprint offsets the face inward by setback, halving the setback
// when the face is too small for it.
func setbackFootprint(face geom.Polygon, setback float64) (geom.Polygon, bool) {
	for i := 0; i < setbackAttempts && setback > 0; i++ {
		footprint, ok := geom.Offset(face, setback)
		if ok {
			return footprint, true
		}
		setback /= 2
	}
	return geom.Offset(face, 0)
}

// stackStoreys builds the storeys of a building of the given height.
// Each storey is the previous one moved up by one storey height.
func stackStoreys(footprint geom.Polygon, height, storeyHeight float64) (*Building, error) {
	count := int(math.Floor(height / storeyHeight))
	if count < 1 {
		return nil, errors.Wrapf(ErrNoBuilding, "height %.2f is under one storey", height)
	}
	actual := height / float64(count)

	b := &Building{
		Footprint:    footprint,
		Height:       height,
		StoreyCount:  count,
		StoreyHeight: actual,
		Envelope:     geom.Extrude(footprint, height),
		Units:        make([]*Unit, 0, count),
	}

	unit := geom.Extrude(footprint, actual)
	for i := 0; i < count; i++ {
		if i > 0 {
			unit = unit.Translate(actual)
		}
		b.Units = append(b.Units, &Unit{Level: i, Volume: unit})
	}
	return b, nil
}
