package urbangraph

import (
	"bytes"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/urbangraph/internal/geom"
)

// feature kinds written to GeoJSON
const (
	kindPrecinct = "precinct"
	kindRoad     = "road"
	kindKerb     = "kerb"
	kindBlock    = "block"
	kindPlot     = "plot"
	kindBuilding = "building"
)

// FeatureCollection returns the model as GeoJSON features in plan
// coordinates. Every feature has a "kind" property; blocks, plots &
// buildings also carry their ids, type and area, buildings their height.
func (m *Model) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	f := geojson.NewFeature(toOrbPolygon(m.Precinct.Boundary))
	f.Properties["kind"] = kindPrecinct
	fc.Append(f)

	if m.Roads != nil {
		for i, r := range m.Roads.Roads {
			f := geojson.NewFeature(toOrbLine(r.Centerline))
			f.Properties["kind"] = kindRoad
			f.Properties["id"] = i
			f.Properties["half_width"] = r.HalfWidth
			f.Properties["depth"] = r.Depth
			fc.Append(f)
		}
		for _, k := range m.Roads.Kerbs {
			f := geojson.NewFeature(toOrbLine(k))
			f.Properties["kind"] = kindKerb
			fc.Append(f)
		}
	}

	for _, b := range m.Blocks {
		poly := toOrbPolygon(b.Face)
		f := geojson.NewFeature(poly)
		f.Properties["kind"] = kindBlock
		f.Properties["id"] = b.ID
		f.Properties["type"] = string(b.Type)
		f.Properties["area"] = planar.Area(poly)
		fc.Append(f)

		for _, p := range b.Plots {
			poly := toOrbPolygon(p.Face)
			f := geojson.NewFeature(poly)
			f.Properties["kind"] = kindPlot
			f.Properties["id"] = p.ID
			f.Properties["block"] = b.ID
			f.Properties["type"] = string(p.Type)
			f.Properties["area"] = planar.Area(poly)
			fc.Append(f)

			if p.Building == nil {
				continue
			}
			fp := toOrbPolygon(p.Building.Footprint)
			f = geojson.NewFeature(fp)
			f.Properties["kind"] = kindBuilding
			f.Properties["plot"] = p.ID
			f.Properties["type"] = string(p.Type)
			f.Properties["area"] = planar.Area(fp)
			f.Properties["height"] = p.Building.Height
			f.Properties["storeys"] = p.Building.StoreyCount
			f.Properties["storey_height"] = p.Building.StoreyHeight
			fc.Append(f)
		}
	}

	return fc
}

// GeoJSON returns the model as a GeoJSON feature collection.
func (m *Model) GeoJSON() ([]byte, error) {
	return m.FeatureCollection().MarshalJSON()
}

// SaveGeoJSON writes a GeoJSON file to the given path.
func (m *Model) SaveGeoJSON(fpath string) error {
	return writeFile(fpath, m.GeoJSON)
}

// Mesh returns every building unit and park marker as one triangle mesh.
func (m *Model) Mesh() *model3d.Mesh {
	mesh := model3d.NewMesh()
	for _, b := range m.Blocks {
		if b.Marker != nil {
			mesh.AddMesh(b.Marker.Mesh())
		}
		for _, p := range b.Plots {
			if p.Building == nil {
				continue
			}
			for _, u := range p.Building.Units {
				mesh.AddMesh(u.Volume.Mesh())
			}
		}
	}
	return mesh
}

// STL returns the model's Mesh() encoded as binary STL.
func (m *Model) STL() ([]byte, error) {
	buf := new(bytes.Buffer)
	err := model3d.WriteSTL(buf, m.Mesh().TriangleSlice())
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveSTL writes an STL file to the given path.
func (m *Model) SaveSTL(fpath string) error {
	return writeFile(fpath, m.STL)
}

// toOrbPolygon returns a closed orb ring for the polygon
func toOrbPolygon(p geom.Polygon) orb.Polygon {
	ring := make(orb.Ring, 0, len(p)+1)
	for _, c := range p {
		ring = append(ring, orb.Point{c.X, c.Y})
	}
	if len(p) > 0 {
		ring = append(ring, orb.Point{p[0].X, p[0].Y})
	}
	return orb.Polygon{ring}
}

func toOrbLine(c geom.Curve) orb.LineString {
	return orb.LineString{{c.Start.X, c.Start.Y}, {c.End.X, c.End.Y}}
}
