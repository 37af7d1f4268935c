package geom

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

const (
	// Epsilon is the absolute tolerance used when comparing positions.
	Epsilon = 1e-7

	// MinExtension is how far a ray must travel before a hit counts. Rays
	// usually start on the curve they were sampled from; we don't want
	// that curve to stop them.
	MinExtension = 1e-6
)

// Curve is a straight planar curve running from Start to End.
// Every curve the pipeline produces (boundary edges, roads, kerbs, cuts)
// is a line segment.
type Curve struct {
	Start model2d.Coord
	End   model2d.Coord
}

// Frame is the perpendicular frame of a curve at some parameter.
// Normal runs along the curve (the direction of travel), Lateral is the
// clockwise perpendicular of Normal.
type Frame struct {
	Origin  model2d.Coord
	Lateral model2d.Coord
	Normal  model2d.Coord
}

// NewCurve returns the curve from a to b
func NewCurve(a, b model2d.Coord) Curve {
	return Curve{Start: a, End: b}
}

// Length of the curve
func (c Curve) Length() float64 {
	return c.Start.Dist(c.End)
}

// Tangent returns the unit direction from Start to End. A zero length
// curve has a zero tangent.
func (c Curve) Tangent() model2d.Coord {
	return c.End.Sub(c.Start).Normalize()
}

// PointAt returns the point at normalised length t (0 = Start, 1 = End).
func (c Curve) PointAt(t float64) model2d.Coord {
	return c.Start.Add(c.End.Sub(c.Start).Scale(t))
}

// Mid point of the curve
func (c Curve) Mid() model2d.Coord {
	return c.Start.Mid(c.End)
}

// FrameAt returns the perpendicular frame at normalised length t.
func (c Curve) FrameAt(t float64) Frame {
	n := c.Tangent()
	return Frame{
		Origin:  c.PointAt(t),
		Lateral: clockwise(n),
		Normal:  n,
	}
}

// Segment returns the curve as a model2d segment
func (c Curve) Segment() *model2d.Segment {
	return &model2d.Segment{c.Start, c.End}
}

// Reverse returns the curve running End to Start
func (c Curve) Reverse() Curve {
	return Curve{Start: c.End, End: c.Start}
}

// DistTo returns the shortest distance from p to any point on the curve.
func (c Curve) DistTo(p model2d.Coord) float64 {
	return p.Dist(c.closest(p))
}

// closest point on the curve to p
func (c Curve) closest(p model2d.Coord) model2d.Coord {
	d := c.End.Sub(c.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return c.Start
	}
	t := p.Sub(c.Start).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return c.Start.Add(d.Scale(t))
}

// Intersect returns the parameters (along c and along o, both 0-1) at which
// the two curves cross. Parallel curves never intersect here; overlapping
// collinear curves are handled by callers via endpoint checks.
func (c Curve) Intersect(o Curve) (float64, float64, bool) {
	r := c.End.Sub(c.Start)
	s := o.End.Sub(o.Start)
	denom := cross(r, s)
	if math.Abs(denom) <= Epsilon*r.Norm()*s.Norm() {
		return 0, 0, false
	}

	w := o.Start.Sub(c.Start)
	t := cross(w, s) / denom
	u := cross(w, r) / denom

	tolT := Epsilon / r.Norm()
	tolU := Epsilon / s.Norm()
	if t < -tolT || t > 1+tolT || u < -tolU || u > 1+tolU {
		return 0, 0, false
	}
	return clamp01(t), clamp01(u), true
}

// paramOf returns the normalised parameter of p projected onto c and
// whether p sits on c (within Epsilon).
func (c Curve) paramOf(p model2d.Coord) (float64, bool) {
	d := c.End.Sub(c.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return 0, false
	}
	t := p.Sub(c.Start).Dot(d) / l2
	l := math.Sqrt(l2)
	if t < -Epsilon/l || t > 1+Epsilon/l {
		return 0, false
	}
	if math.Abs(cross(d, p.Sub(c.Start)))/l > Epsilon {
		return 0, false
	}
	return clamp01(t), true
}

// rayHit returns the distance s along the unit direction dir at which the
// ray origin + s*dir meets c.
func rayHit(origin, dir model2d.Coord, c Curve) (float64, bool) {
	e := c.End.Sub(c.Start)
	el := e.Norm()
	if el == 0 {
		return 0, false
	}
	denom := cross(dir, e)
	if math.Abs(denom) <= Epsilon*el {
		return 0, false
	}
	w := c.Start.Sub(origin)
	s := cross(w, e) / denom
	u := cross(w, dir) / denom
	if u < -Epsilon/el || u > 1+Epsilon/el {
		return 0, false
	}
	return s, true
}

func cross(a, b model2d.Coord) float64 {
	return a.X*b.Y - a.Y*b.X
}

func clockwise(v model2d.Coord) model2d.Coord {
	return model2d.Coord{X: v.Y, Y: -v.X}
}

func counterClockwise(v model2d.Coord) model2d.Coord {
	return model2d.Coord{X: -v.Y, Y: v.X}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
