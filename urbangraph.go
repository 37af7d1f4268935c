package urbangraph

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPrecinct implies the precinct boundary is not a usable polygon
	ErrInvalidPrecinct = errors.New("precinct boundary is not a valid polygon")

	// ErrNoRoads implies no road could be grown inside the precinct
	ErrNoRoads = errors.New("no roads could be placed")

	// ErrNoBlocks implies every face between roads was too small to be a block
	ErrNoBlocks = errors.New("no blocks survived filtering")

	// ErrNoPlots implies subdivision produced no plots at all
	ErrNoPlots = errors.New("no plots produced")

	// ErrNoBuilding is returned by MassBuilding when a plot is left empty.
	// It never aborts a model build.
	ErrNoBuilding = errors.New("plot gets no building")
)

// Model holds a generated layout: the precinct, its roads, and the blocks
// between them broken into plots with buildings.
type Model struct {
	cfg *Config
	rng *rand.Rand

	Precinct *Precinct
	Roads    *RoadNetwork
	Blocks   []*Block
	Stats    *ModelStats `json:",omitempty"`
	Seed     int64

	pmap *imageMap
}

// New generates a layout for the given config.
// The config's Seed is set if it was zero.
func New(cfg *Config) (*Model, error) {
	m := &Model{cfg: cfg}
	return m, m.build()
}

// JSON returns the model as json.
func (m *Model) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// SaveJSON writes a json file to the given path.
func (m *Model) SaveJSON(fpath string) error {
	return writeFile(fpath, m.JSON)
}

// Map returns a raster PlanMap of the model, rendered on first use.
func (m *Model) Map() PlanMap {
	if m.pmap == nil {
		m.pmap = newMap(m, m.cfg.MapScale)
	}
	return m.pmap
}

// Plots returns every plot in block order
func (m *Model) Plots() []*Plot {
	out := []*Plot{}
	for _, b := range m.Blocks {
		out = append(out, b.Plots...)
	}
	return out
}

// Buildings returns every building in plot order
func (m *Model) Buildings() []*Building {
	out := []*Building{}
	for _, p := range m.Plots() {
		if p.Building != nil {
			out = append(out, p.Building)
		}
	}
	return out
}

// build runs the pipeline stages in order; each reads what the previous
// one wrote. The first failing stage stops the build.
func (m *Model) build() error {
	err := m.init()
	if err != nil {
		return err
	}

	err = m.addRoads()
	if err != nil {
		return err
	}

	err = m.addBlocks()
	if err != nil {
		return err
	}

	err = m.addPlots()
	if err != nil {
		return err
	}

	return m.addBuildings()
}

// init validates config & sets up the rng & precinct
func (m *Model) init() error {
	if m.cfg == nil {
		m.cfg = DefaultConfig()
	}
	if m.cfg.Massing != nil {
		m.cfg.Massing.fillDefaults()
	}
	if m.cfg.MapScale <= 0 {
		m.cfg.MapScale = 1
	}

	err := m.cfg.validate()
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}

	boundary, err := m.cfg.precinct()
	if err != nil {
		return err
	}

	if m.cfg.Seed == 0 {
		m.cfg.Seed = time.Now().UnixNano()
	}
	m.Seed = m.cfg.Seed
	m.rng = rand.New(rand.NewSource(m.cfg.Seed))

	m.Precinct = &Precinct{Boundary: boundary}
	m.Blocks = []*Block{}
	m.Stats = newModelStats()

	m.logf("init seed=%d precinct area=%.2f vertices=%d", m.Seed, m.Precinct.Area(), len(boundary))
	return nil
}

// addRoads grows the road network
func (m *Model) addRoads() error {
	net, err := GenerateRoads(m.Precinct.Curves(), m.cfg.RoadDepth, m.cfg.HalfMinRoadWidth, m.cfg.HalfMaxRoadWidth, m.rng)
	if net != nil {
		m.Stats.RoadAttempts = net.Attempts
		m.Stats.RoadMisses = net.Misses
	}
	if err != nil {
		return errors.Wrap(err, "roads")
	}
	m.Roads = net

	m.logf("roads placed=%d attempts=%d misses=%d kerbs=%d", len(net.Roads), net.Attempts, net.Misses, len(net.Kerbs))
	return nil
}

// addBlocks splits the precinct into blocks
func (m *Model) addBlocks() error {
	blocks, err := ExtractBlocks(m.Precinct.Boundary, m.Roads, m.cfg.HalfMaxRoadWidth, m.cfg.ParkMarkerHeight, m.rng)
	if err != nil {
		return errors.Wrap(err, "blocks")
	}
	m.Blocks = blocks
	for _, b := range blocks {
		m.Stats.increment(b.Type)
	}

	m.logf("blocks count=%d by type=%v", len(blocks), m.Stats.BlocksByType)
	return nil
}

// addPlots subdivides every block. Plot IDs are made unique across the model.
func (m *Model) addPlots() error {
	next := 0
	for _, b := range m.Blocks {
		b.Plots = SubdividePlots(b, m.cfg.MinPlotDepth, m.cfg.MaxPlotWidth)
		for _, p := range b.Plots {
			p.ID = next
			next++
		}
	}
	if next == 0 {
		return errors.Wrapf(ErrNoPlots, "%d blocks", len(m.Blocks))
	}
	m.Stats.Plots = next

	m.logf("plots count=%d", next)
	return nil
}

// addBuildings masses a building on each plot that supports one
func (m *Model) addBuildings() error {
	for _, p := range m.Plots() {
		b, err := MassBuilding(p, m.cfg.Massing, m.rng)
		if errors.Is(err, ErrNoBuilding) {
			continue
		} else if err != nil {
			return errors.Wrap(err, "buildings")
		}
		p.Building = b
		m.Stats.Buildings++
		m.Stats.Units += len(b.Units)
	}

	m.logf("buildings count=%d units=%d", m.Stats.Buildings, m.Stats.Units)
	return nil
}

// logf writes a line to the configured logger, if any
func (m *Model) logf(format string, args ...interface{}) {
	if m.cfg.Logger == nil {
		return
	}
	m.cfg.Logger.Printf("[urbangraph] "+format, args...)
}
