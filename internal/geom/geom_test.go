package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"
)

func xy(x, y float64) model2d.Coord {
	return model2d.Coord{X: x, Y: y}
}

func square(size float64) Polygon {
	return NewPolygon([]model2d.Coord{xy(0, 0), xy(size, 0), xy(size, size), xy(0, size)})
}

func TestCurveFrame(t *testing.T) {
	c := NewCurve(xy(0, 0), xy(10, 0))

	f := c.FrameAt(0.25)

	assert.InDelta(t, 2.5, f.Origin.X, 1e-9)
	assert.InDelta(t, 0, f.Origin.Y, 1e-9)
	assert.InDelta(t, 1, f.Normal.X, 1e-9)
	assert.InDelta(t, 0, f.Lateral.X, 1e-9)
	assert.InDelta(t, -1, f.Lateral.Y, 1e-9)
	assert.InDelta(t, 10, c.Length(), 1e-9)
}

func TestCurveIntersect(t *testing.T) {
	a := NewCurve(xy(0, 0), xy(10, 0))
	b := NewCurve(xy(5, -5), xy(5, 5))
	c := NewCurve(xy(0, 1), xy(10, 1))

	ta, tb, ok := a.Intersect(b)
	require.True(t, ok)
	assert.InDelta(t, 0.5, ta, 1e-9)
	assert.InDelta(t, 0.5, tb, 1e-9)

	_, _, ok = a.Intersect(c)
	assert.False(t, ok)
}

func TestNewPolygon(t *testing.T) {
	cw := NewPolygon([]model2d.Coord{xy(0, 0), xy(0, 10), xy(10, 10), xy(10, 0), xy(0, 0)})

	assert.Len(t, cw, 4)
	assert.Greater(t, cw.SignedArea(), 0.0)
	assert.InDelta(t, 100, cw.Area(), 1e-9)
	assert.True(t, cw.Valid())
	assert.False(t, NewPolygon([]model2d.Coord{xy(0, 0), xy(1, 1), xy(2, 2)}).Valid())
}

func TestPolygonContains(t *testing.T) {
	p := square(10)

	assert.True(t, p.Contains(xy(5, 5)))
	assert.False(t, p.Contains(xy(15, 5)))
	assert.False(t, p.Contains(xy(-1, -1)))
	assert.True(t, p.OnBoundary(xy(10, 3), 1e-9))
}

func TestPolygonSimplify(t *testing.T) {
	p := NewPolygon([]model2d.Coord{xy(0, 0), xy(5, 0), xy(10, 0), xy(10, 10), xy(0, 10), xy(0, 5)})

	s := p.Simplify()

	assert.Len(t, s, 4)
	assert.InDelta(t, 100, s.Area(), 1e-9)
	assert.Equal(t, []float64{10, 10, 10, 10}, s.EdgeLengths())
}

func TestPolygonChord(t *testing.T) {
	p := square(10)

	c, ok := p.Chord(xy(5, 5), xy(1, 0))
	require.True(t, ok)

	assert.InDelta(t, 10, c.Length(), 1e-9)
	assert.InDelta(t, 0, c.Start.X, 1e-9)
	assert.InDelta(t, 10, c.End.X, 1e-9)

	_, ok = p.Chord(xy(50, 50), xy(1, 0))
	assert.False(t, ok)
}

func TestPolygonPatch(t *testing.T) {
	// 20 x 10 rectangle rotated by 30 degrees
	a := math.Pi / 6
	u := xy(math.Cos(a), math.Sin(a))
	v := xy(-math.Sin(a), math.Cos(a))
	p := NewPolygon([]model2d.Coord{
		xy(0, 0),
		u.Scale(20),
		u.Scale(20).Add(v.Scale(10)),
		v.Scale(10),
	})

	s := p.Patch()

	lens := []float64{s.U.Norm(), s.V.Norm()}
	assert.ElementsMatch(t, []float64{20, 10}, []float64{math.Round(lens[0]*1e6) / 1e6, math.Round(lens[1]*1e6) / 1e6})
	for _, c := range []model2d.Coord{s.At(0, 0), s.At(1, 0), s.At(0, 1), s.At(1, 1)} {
		assert.True(t, p.OnBoundary(c, 1e-6), "corner %v", c)
	}
}

func TestObstaclesExtend(t *testing.T) {
	obs := NewObstacles(square(10).Edges()...)
	obs.Add(NewCurve(xy(7, 0), xy(7, 10)))

	hit, ok := obs.Extend(xy(2, 5), xy(1, 0))
	require.True(t, ok)
	assert.InDelta(t, 7, hit.End.X, 1e-9)
	assert.InDelta(t, 5, hit.Length(), 1e-9)

	// starting on an obstacle it isn't hit
	hit, ok = obs.Extend(xy(7, 5), xy(1, 0))
	require.True(t, ok)
	assert.InDelta(t, 10, hit.End.X, 1e-9)

	_, ok = obs.Extend(xy(10, 5), xy(1, 0))
	assert.False(t, ok)
	assert.Equal(t, 5, obs.Len())
}

func TestSplitFaceCross(t *testing.T) {
	cuts := []Curve{
		NewCurve(xy(5, -2), xy(5, 12)),
		NewCurve(xy(0, 5), xy(10, 5)),
	}

	faces := SplitFace(square(10), cuts)

	require.Len(t, faces, 4)
	total := 0.0
	for _, f := range faces {
		assert.InDelta(t, 25, f.Area(), 1e-6)
		assert.Len(t, f, 4)
		assert.Greater(t, f.SignedArea(), 0.0)
		total += f.Area()
	}
	assert.InDelta(t, 100, total, 1e-6)
}

func TestSplitFaceIgnoresDanglingAndBoundaryCuts(t *testing.T) {
	cuts := []Curve{
		NewCurve(xy(3, 0), xy(3, 10)),   // divides
		NewCurve(xy(6, 0), xy(6, 4)),    // dangles
		NewCurve(xy(0, 10), xy(10, 10)), // on the boundary
		NewCurve(xy(20, 0), xy(20, 10)), // outside
	}

	faces := SplitFace(square(10), cuts)

	require.Len(t, faces, 2)
	areas := []float64{math.Round(faces[0].Area()), math.Round(faces[1].Area())}
	assert.ElementsMatch(t, []float64{30, 70}, areas)
}

func TestSplitFaceNoCuts(t *testing.T) {
	faces := SplitFace(square(10), nil)

	require.Len(t, faces, 1)
	assert.InDelta(t, 100, faces[0].Area(), 1e-9)
}

func TestSplitFaceDeterministic(t *testing.T) {
	cuts := []Curve{
		NewCurve(xy(2, 0), xy(2, 10)),
		NewCurve(xy(2, 6), xy(10, 6)),
		NewCurve(xy(6, 6), xy(6, 0)),
	}

	a := SplitFace(square(10), cuts)
	b := SplitFace(square(10), cuts)

	assert.Len(t, a, 4)
	assert.Equal(t, a, b)
}

func TestOffset(t *testing.T) {
	out, ok := Offset(square(20), 4)
	require.True(t, ok)

	assert.InDelta(t, 144, out.Area(), 1e-6)
	b := out.Bounds()
	assert.InDelta(t, 4, b.Lo().X, 1e-6)
	assert.InDelta(t, 16, b.Hi().Y, 1e-6)

	_, ok = Offset(square(6), 4)
	assert.False(t, ok)
}

func TestPrism(t *testing.T) {
	p := Extrude(square(10), 3)

	up := p.Translate(3).Translate(3)

	assert.InDelta(t, 300, p.Volume(), 1e-9)
	assert.InDelta(t, 6, up.Base, 1e-9)
	assert.InDelta(t, 9, up.Top(), 1e-9)
	assert.Equal(t, 0.0, p.Base)
	assert.Len(t, p.Mesh().TriangleSlice(), 12)
}

func TestTriangulateConcave(t *testing.T) {
	l := NewPolygon([]model2d.Coord{xy(0, 0), xy(10, 0), xy(10, 4), xy(4, 4), xy(4, 10), xy(0, 10)})

	tris := Triangulate(l)

	require.Len(t, tris, 4)
	total := 0.0
	for _, tr := range tris {
		a := Polygon{tr[0], tr[1], tr[2]}.SignedArea()
		assert.Greater(t, a, 0.0)
		total += a
	}
	assert.InDelta(t, l.Area(), total, 1e-9)
}
