package geom

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Prism is a closed solid made by sweeping Profile straight up from
// elevation Base by Height.
type Prism struct {
	Profile Polygon
	Base    float64
	Height  float64
}

// Extrude sweeps the profile from z=0 up by height
func Extrude(profile Polygon, height float64) *Prism {
	return &Prism{Profile: NewPolygon(profile), Base: 0, Height: height}
}

// Translate returns a copy of the prism moved up by dz
func (p *Prism) Translate(dz float64) *Prism {
	return &Prism{Profile: p.Profile, Base: p.Base + dz, Height: p.Height}
}

// Top elevation of the prism
func (p *Prism) Top() float64 {
	return p.Base + p.Height
}

// Volume of the prism
func (p *Prism) Volume() float64 {
	return p.Profile.Area() * p.Height
}

// Mesh returns a closed, outward facing triangle mesh of the prism.
func (p *Prism) Mesh() *model3d.Mesh {
	mesh := model3d.NewMesh()
	ring := p.Profile
	if len(ring) < 3 {
		return mesh
	}
	lo, hi := p.Base, p.Top()

	for _, t := range Triangulate(ring) {
		// caps: counter clockwise from above is up, so the floor is flipped
		mesh.Add(&model3d.Triangle{
			model3d.XYZ(t[0].X, t[0].Y, hi),
			model3d.XYZ(t[1].X, t[1].Y, hi),
			model3d.XYZ(t[2].X, t[2].Y, hi),
		})
		mesh.Add(&model3d.Triangle{
			model3d.XYZ(t[0].X, t[0].Y, lo),
			model3d.XYZ(t[2].X, t[2].Y, lo),
			model3d.XYZ(t[1].X, t[1].Y, lo),
		})
	}

	for _, e := range ring.Edges() {
		a0 := model3d.XYZ(e.Start.X, e.Start.Y, lo)
		b0 := model3d.XYZ(e.End.X, e.End.Y, lo)
		a1 := model3d.XYZ(e.Start.X, e.Start.Y, hi)
		b1 := model3d.XYZ(e.End.X, e.End.Y, hi)
		mesh.Add(&model3d.Triangle{a0, b0, b1})
		mesh.Add(&model3d.Triangle{a0, b1, a1})
	}
	return mesh
}

// Triangulate splits a simple polygon into counter clockwise triangles by
// ear clipping.
func Triangulate(p Polygon) [][3]model2d.Coord {
	ring := NewPolygon(p)
	if len(ring) < 3 {
		return nil
	}

	idx := make([]int, len(ring))
	for i := range idx {
		idx[i] = i
	}

	tris := [][3]model2d.Coord{}
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			prev := ring[idx[(i+len(idx)-1)%len(idx)]]
			cur := ring[idx[i]]
			next := ring[idx[(i+1)%len(idx)]]
			if cross(cur.Sub(prev), next.Sub(cur)) <= 0 {
				continue // reflex or flat
			}
			if anyInside(ring, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]model2d.Coord{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// numerically degenerate leftovers; fan what remains
			for i := 1; i+1 < len(idx); i++ {
				tris = append(tris, [3]model2d.Coord{ring[idx[0]], ring[idx[i]], ring[idx[i+1]]})
			}
			return tris
		}
	}
	return append(tris, [3]model2d.Coord{ring[idx[0]], ring[idx[1]], ring[idx[2]]})
}

func anyInside(ring Polygon, idx []int, a, b, c model2d.Coord) bool {
	for _, i := range idx {
		p := ring[i]
		if p == a || p == b || p == c {
			continue
		}
		if cross(b.Sub(a), p.Sub(a)) >= 0 && cross(c.Sub(b), p.Sub(b)) >= 0 && cross(a.Sub(c), p.Sub(c)) >= 0 {
			return true
		}
	}
	return false
}
