package geom

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// obstacle is a curve held in the spatial index
type obstacle struct {
	idx   int
	curve Curve
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (o *obstacle) Bounds() rtreego.Rect {
	return o.rect
}

// Obstacles is an ordered, growable set of curves that rays can be
// extended against. Order is insertion order and breaks ties between hits
// at the same distance.
type Obstacles struct {
	curves []Curve
	tree   *rtreego.Rtree
	extent r2.Rect
}

// NewObstacles returns a set holding the given curves
func NewObstacles(curves ...Curve) *Obstacles {
	o := &Obstacles{
		curves: []Curve{},
		tree:   rtreego.NewTree(2, 4, 16),
		extent: r2.EmptyRect(),
	}
	for _, c := range curves {
		o.Add(c)
	}
	return o
}

// Add appends a curve
func (o *Obstacles) Add(c Curve) {
	lo := rtreego.Point{math.Min(c.Start.X, c.End.X) - Epsilon, math.Min(c.Start.Y, c.End.Y) - Epsilon}
	hi := rtreego.Point{math.Max(c.Start.X, c.End.X) + Epsilon, math.Max(c.Start.Y, c.End.Y) + Epsilon}
	rect, err := rtreego.NewRectFromPoints(lo, hi)
	if err != nil {
		// lo < hi on both axes, so this cannot happen
		panic(err)
	}

	o.tree.Insert(&obstacle{idx: len(o.curves), curve: c, rect: rect})
	o.curves = append(o.curves, c)
	o.extent = o.extent.AddPoint(r2.Point{X: c.Start.X, Y: c.Start.Y})
	o.extent = o.extent.AddPoint(r2.Point{X: c.End.X, Y: c.End.Y})
}

// Len returns the number of curves held
func (o *Obstacles) Len() int {
	return len(o.curves)
}

// Curves returns all curves in insertion order
func (o *Obstacles) Curves() []Curve {
	return append([]Curve{}, o.curves...)
}

// Extend casts a ray from origin along dir and returns the curve from
// origin to the nearest obstacle it meets. Hits closer than MinExtension
// are ignored. If the ray meets nothing, ok is false.
func (o *Obstacles) Extend(origin, dir model2d.Coord) (Curve, bool) {
	dir = dir.Normalize()
	if dir.Norm() == 0 || len(o.curves) == 0 {
		return Curve{}, false
	}

	// far enough to leave the extent from anywhere we could start
	centre := o.extent.Center()
	reach := o.extent.Size().Norm() + origin.Dist(model2d.Coord{X: centre.X, Y: centre.Y}) + 1
	far := origin.Add(dir.Scale(reach))

	window, err := rtreego.NewRectFromPoints(
		rtreego.Point{math.Min(origin.X, far.X) - Epsilon, math.Min(origin.Y, far.Y) - Epsilon},
		rtreego.Point{math.Max(origin.X, far.X) + Epsilon, math.Max(origin.Y, far.Y) + Epsilon},
	)
	if err != nil {
		return Curve{}, false
	}

	bestIdx := -1
	bestDist := math.Inf(1)
	for _, sp := range o.tree.SearchIntersect(window) {
		ob := sp.(*obstacle)
		s, ok := rayHit(origin, dir, ob.curve)
		if !ok || s <= MinExtension {
			continue
		}
		if s < bestDist-Epsilon || (math.Abs(s-bestDist) <= Epsilon && ob.idx < bestIdx) {
			bestDist = s
			bestIdx = ob.idx
		}
	}
	if bestIdx < 0 {
		return Curve{}, false
	}
	return Curve{Start: origin, End: origin.Add(dir.Scale(bestDist))}, true
}
