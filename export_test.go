package urbangraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoJSON(t *testing.T) {
	m, err := New(testConfig(11))
	require.NoError(t, err)

	data, err := m.GeoJSON()
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")]++
	}

	assert.Equal(t, 1, kinds[kindPrecinct])
	assert.Equal(t, len(m.Roads.Roads), kinds[kindRoad])
	assert.Equal(t, len(m.Roads.Kerbs), kinds[kindKerb])
	assert.Equal(t, len(m.Blocks), kinds[kindBlock])
	assert.Equal(t, len(m.Plots()), kinds[kindPlot])
	assert.Equal(t, len(m.Buildings()), kinds[kindBuilding])

	for _, f := range fc.Features {
		if f.Properties.MustString("kind") != kindBlock {
			continue
		}
		id := f.Properties.MustInt("id")
		assert.InDelta(t, m.Blocks[id].Area(), f.Properties.MustFloat64("area"), 1e-6)
	}
}

func TestSTL(t *testing.T) {
	m, err := New(testConfig(11))
	require.NoError(t, err)

	tris := m.Mesh().TriangleSlice()
	require.NotEmpty(t, tris)

	data, err := m.STL()
	require.NoError(t, err)

	// 80 byte header, triangle count, 50 bytes per triangle
	assert.Len(t, data, 84+50*len(tris))
}

func TestSaveExports(t *testing.T) {
	m, err := New(testConfig(12))
	require.NoError(t, err)
	dir := t.TempDir()

	for name, save := range map[string]func(string) error{
		"model.json":    m.SaveJSON,
		"model.geojson": m.SaveGeoJSON,
		"model.stl":     m.SaveSTL,
	} {
		fpath := filepath.Join(dir, name)
		require.NoError(t, save(fpath), name)

		info, err := os.Stat(fpath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}
