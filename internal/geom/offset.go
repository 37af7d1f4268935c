package geom

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/unixpickle/model3d/model2d"
)

// Offset shrinks the polygon by moving every edge inward by d and keeping
// what is left. The result is exact for convex polygons; for concave ones
// the inner corners are clipped more than a true offset would.
// ok is false when nothing is left.
func Offset(p Polygon, d float64) (Polygon, bool) {
	p = NewPolygon(p)
	if !p.Valid() {
		return nil, false
	}
	if d <= 0 {
		return p, true
	}

	size := p.Bounds().Size()
	reach := 4*(size.X+size.Y) + d + 1

	subject := polyclip.Polygon{toContour(p)}
	for _, e := range p.Edges() {
		t := e.Tangent()
		if t.Norm() == 0 {
			continue
		}
		n := clockwise(t) // outward for counter clockwise polygons
		q := e.Start.Sub(n.Scale(d))

		clip := polyclip.Polygon{toContour(Polygon{
			q.Sub(t.Scale(reach)),
			q.Add(t.Scale(reach)),
			q.Add(t.Scale(reach)).Sub(n.Scale(reach)),
			q.Sub(t.Scale(reach)).Sub(n.Scale(reach)),
		})}
		subject = subject.Construct(polyclip.INTERSECTION, clip)
		if len(subject) == 0 {
			return nil, false
		}
	}

	var best Polygon
	for _, contour := range subject {
		cand := fromContour(contour)
		if cand.Area() > best.Area() {
			best = cand
		}
	}
	best = NewPolygon(best).Simplify()
	if !best.Valid() {
		return nil, false
	}
	return best, true
}

func toContour(p Polygon) polyclip.Contour {
	c := make(polyclip.Contour, len(p))
	for i, v := range p {
		c[i] = polyclip.Point{X: v.X, Y: v.Y}
	}
	return c
}

func fromContour(c polyclip.Contour) Polygon {
	p := make(Polygon, len(c))
	for i, v := range c {
		p[i] = model2d.Coord{X: v.X, Y: v.Y}
	}
	return p
}
