package urbangraph

import (
	"math"

	"github.com/pkg/errors"
)

// areaTolerance is relative to the area being compared against
const areaTolerance = 1e-6

// Validate re-checks the structural guarantees of a built model:
//   - every block is large enough relative to the widest road
//   - plots of a block tile it (areas sum to the block area)
//   - plots carry their block's type
//   - buildings only sit on buildable plots of at least MinPlotArea
//   - storeys are equal and stack to the building height
func (m *Model) Validate() error {
	if m.Precinct == nil || m.Roads == nil {
		return errors.New("model is not built")
	}

	for _, b := range m.Blocks {
		if !isBlock(b.Face, m.cfg.HalfMaxRoadWidth) {
			return errors.Errorf("block %d is narrower than two road widths", b.ID)
		}
		if len(b.Plots) == 0 {
			return errors.Errorf("block %d has no plots", b.ID)
		}
		if (b.Type == Park) != (b.Marker != nil) {
			return errors.Errorf("block %d of type %s has wrong park marker", b.ID, b.Type)
		}

		sum := 0.0
		for _, p := range b.Plots {
			if p.Type != b.Type {
				return errors.Errorf("plot %d has type %s in %s block %d", p.ID, p.Type, b.Type, b.ID)
			}
			sum += p.Area()

			err := validateBuilding(p, m.cfg.Massing)
			if err != nil {
				return err
			}
		}
		if math.Abs(sum-b.Area()) > areaTolerance*b.Area() {
			return errors.Errorf("plots of block %d cover %.6f of %.6f", b.ID, sum, b.Area())
		}
	}
	return nil
}

// validateBuilding checks the building (if any) on a plot
func validateBuilding(p *Plot, cfg *MassingConfig) error {
	b := p.Building
	if b == nil {
		return nil
	}
	if !p.Type.Buildable() || p.Area() < cfg.MinPlotArea {
		return errors.Errorf("plot %d (%s, area %.2f) should not have a building", p.ID, p.Type, p.Area())
	}
	if b.StoreyCount < 1 || len(b.Units) != b.StoreyCount {
		return errors.Errorf("plot %d building has %d units for %d storeys", p.ID, len(b.Units), b.StoreyCount)
	}

	sum := 0.0
	for i, u := range b.Units {
		if u.Level != i {
			return errors.Errorf("plot %d unit %d has level %d", p.ID, i, u.Level)
		}
		if math.Abs(u.Volume.Height-b.StoreyHeight) > 1e-9 {
			return errors.Errorf("plot %d unit %d is %.6f high, expected %.6f", p.ID, i, u.Volume.Height, b.StoreyHeight)
		}
		if math.Abs(u.Volume.Base-sum) > 1e-6 {
			return errors.Errorf("plot %d unit %d starts at %.6f, expected %.6f", p.ID, i, u.Volume.Base, sum)
		}
		sum += u.Volume.Height
	}
	if math.Abs(sum-b.Height) > 1e-6 {
		return errors.Errorf("plot %d storeys sum to %.6f of %.6f", p.ID, sum, b.Height)
	}
	return nil
}
