package urbangraph

import (
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/urbangraph/internal/geom"
)

// Config holds everything needed to lay out one precinct.
// Zero values are mostly not sensible; start from DefaultConfig().
type Config struct {
	// Precinct boundary vertices in order, required. Either winding
	// is accepted; a repeated closing vertex is ignored.
	Precinct [][2]float64 `yaml:"precinct"`

	// Seed for rng (random number chosen if not set)
	Seed int64 `yaml:"seed"`

	// RoadDepth is how many times roads branch off roads.
	// At most 2^(RoadDepth+1) - 1 roads are attempted.
	RoadDepth int `yaml:"roadDepth"`

	// Half widths of roads; each road picks a half width in this range.
	// HalfMaxRoadWidth also sets how small a block may be.
	HalfMinRoadWidth float64 `yaml:"halfMinRoadWidth"`
	HalfMaxRoadWidth float64 `yaml:"halfMaxRoadWidth"`

	// MinPlotDepth; blocks narrower than twice this are not bisected
	MinPlotDepth float64 `yaml:"minPlotDepth"`

	// MaxPlotWidth roughly sets plot frontage along a block's bisector
	MaxPlotWidth float64 `yaml:"maxPlotWidth"`

	// Massing settings for buildings
	Massing *MassingConfig `yaml:"massing"`

	// ParkMarkerHeight is the height of the flat solid placed on parks
	ParkMarkerHeight float64 `yaml:"parkMarkerHeight"`

	// MapScale is pixels per unit when rendering the PlanMap
	MapScale float64 `yaml:"mapScale"`

	// Logger, if set, gets one line per pipeline stage
	Logger *log.Logger `yaml:"-"`
}

// MassingConfig controls how buildings are placed on plots.
type MassingConfig struct {
	MinPlotArea  float64 `yaml:"minPlotArea"`  // plots smaller than this get no building
	StoreyHeight float64 `yaml:"storeyHeight"` // nominal height of one storey
	Setback      float64 `yaml:"setback"`      // inward offset from the plot boundary

	// Heights by block type, Park is ignored
	Heights map[BlockType]*HeightRange `yaml:"heights"`
}

// HeightRange is a [Min, Max) range of building heights.
type HeightRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DefaultConfig returns a config for a 400 x 300 precinct with sensible settings.
// Smaller precincts need a lower RoadDepth, or every face between roads is
// too narrow to be a block.
func DefaultConfig() *Config {
	return &Config{
		Precinct:         [][2]float64{{0, 0}, {400, 0}, {400, 300}, {0, 300}},
		RoadDepth:        6,
		HalfMinRoadWidth: 3,
		HalfMaxRoadWidth: 6,
		MinPlotDepth:     45,
		MaxPlotWidth:     25,
		Massing:          DefaultMassingConfig(),
		ParkMarkerHeight: 0.1,
		MapScale:         4,
	}
}

// DefaultMassingConfig returns the standard massing settings
func DefaultMassingConfig() *MassingConfig {
	return &MassingConfig{
		MinPlotArea:  50,
		StoreyHeight: 3.6,
		Setback:      4,
		Heights: map[BlockType]*HeightRange{
			LowRise:  {Min: 12, Max: 24},
			MidRise:  {Min: 36, Max: 72},
			HighRise: {Min: 84, Max: 120},
		},
	}
}

// LoadConfig reads a YAML config file. Settings missing from the file
// keep their DefaultConfig() values.
func LoadConfig(fpath string) (*Config, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config over DefaultConfig()
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if cfg.Massing == nil {
		cfg.Massing = DefaultMassingConfig()
	}
	cfg.Massing.fillDefaults()
	return cfg, nil
}

// fillDefaults sets unset (zero) fields and missing height ranges to their
// defaults. Setback is left alone as zero is a valid setback.
func (m *MassingConfig) fillDefaults() {
	def := DefaultMassingConfig()
	if m.MinPlotArea == 0 {
		m.MinPlotArea = def.MinPlotArea
	}
	if m.StoreyHeight == 0 {
		m.StoreyHeight = def.StoreyHeight
	}
	if m.Heights == nil {
		m.Heights = map[BlockType]*HeightRange{}
	}
	for typ, hr := range def.Heights {
		if got, ok := m.Heights[typ]; !ok || got == nil {
			m.Heights[typ] = hr
		}
	}
}

// precinct returns the configured boundary as a polygon
func (c *Config) precinct() (geom.Polygon, error) {
	pts := make([]model2d.Coord, len(c.Precinct))
	for i, p := range c.Precinct {
		pts[i] = model2d.Coord{X: p[0], Y: p[1]}
	}
	poly := geom.NewPolygon(pts)
	if !poly.Valid() {
		return nil, errors.Wrapf(ErrInvalidPrecinct, "%d vertices, area %.3f", len(poly), poly.Area())
	}
	return poly, nil
}

// validate checks settings that would otherwise fail deep in the pipeline
func (c *Config) validate() error {
	if c.HalfMinRoadWidth <= 0 || c.HalfMaxRoadWidth < c.HalfMinRoadWidth {
		return errors.Errorf("road half widths must satisfy 0 < min <= max, got %v, %v", c.HalfMinRoadWidth, c.HalfMaxRoadWidth)
	}
	if c.RoadDepth < 0 {
		return errors.Errorf("road depth must not be negative, got %d", c.RoadDepth)
	}
	if c.MinPlotDepth <= 0 || c.MaxPlotWidth <= 0 {
		return errors.Errorf("plot depth and width must be positive, got %v, %v", c.MinPlotDepth, c.MaxPlotWidth)
	}
	if c.Massing == nil {
		return errors.New("massing config is required")
	}
	return c.Massing.validate()
}

func (m *MassingConfig) validate() error {
	if m.StoreyHeight <= 0 {
		return errors.Errorf("storey height must be positive, got %v", m.StoreyHeight)
	}
	if m.Setback < 0 {
		return errors.Errorf("setback must not be negative, got %v", m.Setback)
	}
	for _, typ := range allBlockTypes {
		if !typ.Buildable() {
			continue
		}
		hr, ok := m.Heights[typ]
		if !ok || hr == nil {
			return errors.Errorf("no height range for block type %s", typ)
		}
		if hr.Min < 0 || hr.Max < hr.Min {
			return errors.Errorf("bad height range for %s: [%v, %v)", typ, hr.Min, hr.Max)
		}
	}
	return nil
}
