package geom

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// Polygon is a simple closed planar region given by its vertices in order.
// The closing edge (last vertex back to the first) is implied.
type Polygon []model2d.Coord

// NewPolygon builds a polygon from the given points, dropping repeated
// vertices (including a repeated closing point) and orienting the result
// counter clockwise.
func NewPolygon(pts []model2d.Coord) Polygon {
	out := Polygon{}
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Dist(p) <= Epsilon {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Dist(out[len(out)-1]) <= Epsilon {
		out = out[:len(out)-1]
	}
	return out.EnsureCCW()
}

// Valid returns if the polygon has at least 3 vertices and a non zero area.
func (p Polygon) Valid() bool {
	return len(p) >= 3 && p.Area() > Epsilon
}

// SignedArea is positive for counter clockwise polygons.
func (p Polygon) SignedArea() float64 {
	sum := 0.0
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area enclosed by the polygon
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// EnsureCCW returns the polygon with counter clockwise winding.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() >= 0 {
		return p
	}
	out := make(Polygon, len(p))
	for i := range p {
		out[i] = p[len(p)-1-i]
	}
	return out
}

// Edges returns the polygon's boundary curves in vertex order.
func (p Polygon) Edges() []Curve {
	if len(p) < 2 {
		return nil
	}
	edges := make([]Curve, len(p))
	for i := range p {
		edges[i] = Curve{Start: p[i], End: p[(i+1)%len(p)]}
	}
	return edges
}

// EdgeLengths returns edge lengths, longest first.
func (p Polygon) EdgeLengths() []float64 {
	lens := []float64{}
	for _, e := range p.Edges() {
		lens = append(lens, e.Length())
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(lens)))
	return lens
}

// Perimeter of the polygon
func (p Polygon) Perimeter() float64 {
	sum := 0.0
	for _, e := range p.Edges() {
		sum += e.Length()
	}
	return sum
}

// Bounds returns the axis aligned bounding box.
func (p Polygon) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for _, c := range p {
		rect = rect.AddPoint(r2.Point{X: c.X, Y: c.Y})
	}
	return rect
}

// Centroid returns the area weighted centre of the polygon.
func (p Polygon) Centroid() model2d.Coord {
	a := p.SignedArea()
	if math.Abs(a) <= Epsilon {
		sum := model2d.Coord{}
		for _, c := range p {
			sum = sum.Add(c)
		}
		return sum.Scale(1 / float64(len(p)))
	}
	cx, cy := 0.0, 0.0
	for i := range p {
		v0 := p[i]
		v1 := p[(i+1)%len(p)]
		f := v0.X*v1.Y - v1.X*v0.Y
		cx += (v0.X + v1.X) * f
		cy += (v0.Y + v1.Y) * f
	}
	return model2d.Coord{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Contains returns whether the point lies inside the polygon.
// Points on the boundary may go either way; see OnBoundary.
func (p Polygon) Contains(c model2d.Coord) bool {
	if len(p) < 3 {
		return false
	}

	contains := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		if intersectsWithRaycast(c, p[j], p[i]) {
			contains = !contains
		}
		j = i
	}
	return contains
}

// intersectsWithRaycast reports whether a horizontal ray cast from c
// towards +X crosses the edge a-b.
func intersectsWithRaycast(c, a, b model2d.Coord) bool {
	if (a.Y > c.Y) == (b.Y > c.Y) {
		return false
	}
	x := a.X + (c.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
	return c.X < x
}

// OnBoundary returns whether c is within tol of any polygon edge.
func (p Polygon) OnBoundary(c model2d.Coord, tol float64) bool {
	for _, e := range p.Edges() {
		if e.DistTo(c) <= tol {
			return true
		}
	}
	return false
}

// Simplify merges runs of collinear vertices so each edge of the result
// is a maximal straight run.
func (p Polygon) Simplify() Polygon {
	pts := append(Polygon{}, p...)
	changed := true
	for changed && len(pts) > 3 {
		changed = false
		for i := 0; i < len(pts); i++ {
			prev := pts[(i+len(pts)-1)%len(pts)]
			next := pts[(i+1)%len(pts)]
			if (Curve{Start: prev, End: next}).DistTo(pts[i]) <= Epsilon*10 {
				pts = append(pts[:i], pts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return pts
}

// Translate moves every vertex by d
func (p Polygon) Translate(d model2d.Coord) Polygon {
	out := make(Polygon, len(p))
	for i, c := range p {
		out[i] = c.Add(d)
	}
	return out
}

// Chord intersects the infinite line through origin with direction dir
// against the polygon and returns the curve between the first and last
// crossing. For a convex polygon this is exactly the part of the line
// inside it.
func (p Polygon) Chord(origin, dir model2d.Coord) (Curve, bool) {
	dir = dir.Normalize()
	if dir.Norm() == 0 {
		return Curve{}, false
	}

	found := false
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range p.Edges() {
		s, ok := rayHit(origin, dir, e)
		if !ok {
			continue
		}
		found = true
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if !found || hi-lo <= Epsilon {
		return Curve{}, false
	}
	return Curve{Start: origin.Add(dir.Scale(lo)), End: origin.Add(dir.Scale(hi))}, true
}

// Patch is a parallelogram parameterisation of the plane,
// At(u, v) = Origin + u*U + v*V.
type Patch struct {
	Origin model2d.Coord
	U      model2d.Coord
	V      model2d.Coord
}

// At returns the point at patch coordinates (u, v).
func (s Patch) At(u, v float64) model2d.Coord {
	return s.Origin.Add(s.U.Scale(u)).Add(s.V.Scale(v))
}

// Patch returns the minimum area bounding rectangle of the polygon aligned
// to one of its edges. U runs along that edge and V is perpendicular, so
// At(0..1, 0..1) spans the rectangle. Ties keep the earliest edge.
func (p Polygon) Patch() Patch {
	best := Patch{}
	bestArea := math.Inf(1)

	for _, e := range p.Edges() {
		u := e.Tangent()
		if u.Norm() == 0 {
			continue
		}
		v := counterClockwise(u)

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, c := range p {
			d := c.Sub(e.Start)
			pu, pv := d.Dot(u), d.Dot(v)
			minU, maxU = math.Min(minU, pu), math.Max(maxU, pu)
			minV, maxV = math.Min(minV, pv), math.Max(maxV, pv)
		}

		area := (maxU - minU) * (maxV - minV)
		if area < bestArea-Epsilon {
			bestArea = area
			best = Patch{
				Origin: e.Start.Add(u.Scale(minU)).Add(v.Scale(minV)),
				U:      u.Scale(maxU - minU),
				V:      v.Scale(maxV - minV),
			}
		}
	}
	return best
}
