package urbangraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/urbangraph/internal/geom"
)

func TestValidateCatchesTampering(t *testing.T) {
	cases := []struct {
		Name   string
		Modify func(m *Model)
	}{
		{"empty block", func(m *Model) {
			m.Blocks[0].Plots = nil
		}},
		{"plot type mismatch", func(m *Model) {
			b := m.Blocks[0]
			for _, typ := range AllBlockTypes() {
				if typ != b.Type {
					b.Plots[0].Type = typ
					return
				}
			}
		}},
		{"lost plot", func(m *Model) {
			b := m.Blocks[0]
			b.Plots[0].Face = b.Plots[0].Face[:3]
		}},
		{"missing park marker", func(m *Model) {
			b := m.Blocks[0]
			if b.Type == Park {
				b.Marker = nil
				return
			}
			b.Marker = geom.Extrude(b.Face, 1)
		}},
		{"building on park", func(m *Model) {
			b := m.Blocks[0]
			b.Type = Park
			b.Marker = geom.Extrude(b.Face, 1)
			for _, p := range b.Plots {
				p.Type = Park
				p.Building = &Building{Footprint: p.Face, Height: 4, StoreyCount: 1, StoreyHeight: 4}
			}
		}},
		{"unit height", func(m *Model) {
			for _, b := range m.Buildings() {
				b.Units[0].Volume.Height += 1
				return
			}
		}},
		{"storey count", func(m *Model) {
			for _, b := range m.Buildings() {
				b.StoreyCount++
				return
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			m := builtModel(t)
			require.NoError(t, m.Validate())

			c.Modify(m)

			assert.Error(t, m.Validate())
		})
	}
}

func TestValidateUnbuilt(t *testing.T) {
	assert.Error(t, (&Model{}).Validate())
}

// builtModel returns a valid model with at least one building
func builtModel(t *testing.T) *Model {
	for seed := int64(21); seed < 40; seed++ {
		m, err := New(testConfig(seed))
		require.NoError(t, err)
		if len(m.Buildings()) > 0 {
			return m
		}
	}
	t.Fatal("no seed produced a building")
	return nil
}
