package geom

import (
	"math"
	"sort"

	"github.com/boljen/go-bitmap"
	"github.com/golang/geo/r2"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

const (
	// snapTolerance merges arrangement vertices closer than this
	snapTolerance = 1e-6

	// minFaceArea drops slivers produced by numerical noise
	minFaceArea = 1e-6
)

// SplitFace divides face by the given cuts and returns every bounded region
// of the resulting arrangement that lies inside face.
//
// Cuts may run past the face or lie partly along its boundary; anything
// outside the face or on its boundary is discarded. Cut pieces that dangle
// (do not close off a region) are ignored. Output faces are counter
// clockwise with collinear vertices merged, in a deterministic order for
// a given input.
//
// Cuts are expected not to form islands strictly inside the face; every
// cut network should reach the face boundary.
func SplitFace(face Polygon, cuts []Curve) []Polygon {
	face = NewPolygon(face)
	if !face.Valid() {
		return nil
	}

	pieces := arrangementPieces(face, cuts)
	verts, edges := snapEdges(pieces)
	edges = pruneDangling(len(verts), edges)

	return walkFaces(verts, edges)
}

// arrangementPieces breaks the boundary and the cuts at every crossing and
// returns the pieces that could form face edges.
func arrangementPieces(face Polygon, cuts []Curve) []Curve {
	boundary := face.Edges()
	segs := append([]Curve{}, boundary...)
	for _, c := range cuts {
		if c.Length() > snapTolerance {
			segs = append(segs, c)
		}
	}

	boxes := make([]r2.Rect, len(segs))
	for i, s := range segs {
		boxes[i] = paddedBounds(s, snapTolerance)
	}

	pieces := []Curve{}
	for i, s := range segs {
		params := []float64{0, 1}
		for j, o := range segs {
			if i == j || !boxes[i].Intersects(boxes[j]) {
				continue
			}
			if t, _, ok := s.Intersect(o); ok {
				params = append(params, t)
			}
			for _, p := range []model2d.Coord{o.Start, o.End} {
				if t, ok := s.paramOf(p); ok {
					params = append(params, t)
				}
			}
		}
		sort.Float64s(params)

		length := s.Length()
		prev := params[0]
		for _, t := range params[1:] {
			if (t-prev)*length <= snapTolerance {
				continue
			}
			piece := Curve{Start: s.PointAt(prev), End: s.PointAt(t)}
			prev = t

			if i >= len(boundary) {
				mid := piece.Mid()
				if !face.Contains(mid) || face.OnBoundary(mid, snapTolerance) {
					continue
				}
			}
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

// snapEdges merges nearly identical piece endpoints into shared vertices
// and returns the unique undirected edges between them.
func snapEdges(pieces []Curve) ([]model2d.Coord, [][2]int) {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, p := range pieces {
		for _, c := range []model2d.Coord{p.Start, p.End} {
			if !coordSet[c] {
				coordSet[c] = true
				coordSlice = append(coordSlice, c)
			}
		}
	}
	if len(coordSlice) == 0 {
		return nil, nil
	}

	tree := model2d.NewCoordTree(coordSlice)
	ids := map[model2d.Coord]int{}
	verts := []model2d.Coord{}
	for _, c := range coordSlice {
		if _, ok := ids[c]; ok {
			continue
		}
		id := len(verts)
		verts = append(verts, c)
		for _, n := range neighborsInDistance(tree, c, snapTolerance) {
			if _, ok := ids[n]; !ok {
				ids[n] = id
			}
		}
		ids[c] = id
	}

	type key struct{ a, b int }
	seen := map[key]bool{}
	edges := [][2]int{}
	for _, p := range pieces {
		a, b := ids[p.Start], ids[p.End]
		if a == b {
			continue
		}
		k := key{min(a, b), max(a, b)}
		if seen[k] {
			continue
		}
		seen[k] = true
		edges = append(edges, [2]int{a, b})
	}
	return verts, edges
}

// neighborsInDistance returns all coords in the tree within epsilon of c
func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}

// pruneDangling repeatedly removes edges hanging off degree one vertices.
// What remains only contains edges that bound some region.
func pruneDangling(numVerts int, edges [][2]int) [][2]int {
	adj := make([][]int, numVerts)
	for i, e := range edges {
		adj[e[0]] = append(adj[e[0]], i)
		adj[e[1]] = append(adj[e[1]], i)
	}

	removed := make([]bool, len(edges))
	queue := []int{}
	for v := range adj {
		if len(adj[v]) == 1 {
			queue = append(queue, v)
		}
	}

	dropEdge := func(v, ei int) {
		for i, x := range adj[v] {
			if x == ei {
				essentials.UnorderedDelete(&adj[v], i)
				return
			}
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if len(adj[v]) != 1 {
			continue
		}
		ei := adj[v][0]
		removed[ei] = true

		other := edges[ei][0]
		if other == v {
			other = edges[ei][1]
		}
		dropEdge(v, ei)
		dropEdge(other, ei)
		if len(adj[other]) == 1 {
			queue = append(queue, other)
		}
	}

	kept := [][2]int{}
	for i, e := range edges {
		if !removed[i] {
			kept = append(kept, e)
		}
	}
	return kept
}

// walkFaces traces the bounded faces of a planar graph. Each undirected
// edge i yields half edges 2i (a->b) and 2i+1 (b->a). Following "next" keeps
// the face on the left, so bounded faces come out counter clockwise and the
// unbounded one clockwise.
func walkFaces(verts []model2d.Coord, edges [][2]int) []Polygon {
	if len(edges) == 0 {
		return nil
	}

	from := func(h int) int {
		if h%2 == 0 {
			return edges[h/2][0]
		}
		return edges[h/2][1]
	}
	to := func(h int) int {
		return from(h ^ 1)
	}

	out := make([][]int, len(verts))
	for h := 0; h < 2*len(edges); h++ {
		out[from(h)] = append(out[from(h)], h)
	}

	angle := func(h int) float64 {
		d := verts[to(h)].Sub(verts[from(h)])
		return math.Atan2(d.Y, d.X)
	}
	pos := make([]int, 2*len(edges))
	for v := range out {
		hs := out[v]
		sort.SliceStable(hs, func(i, j int) bool {
			return angle(hs[i]) < angle(hs[j])
		})
		for i, h := range hs {
			pos[h] = i
		}
	}

	next := func(h int) int {
		twin := h ^ 1
		hs := out[to(h)]
		return hs[(pos[twin]-1+len(hs))%len(hs)]
	}

	visited := bitmap.New(2 * len(edges))
	faces := []Polygon{}
	for start := 0; start < 2*len(edges); start++ {
		if visited.Get(start) {
			continue
		}

		ring := Polygon{}
		h := start
		for steps := 0; steps <= 2*len(edges); steps++ {
			if visited.Get(h) {
				break
			}
			visited.Set(h, true)
			ring = append(ring, verts[from(h)])
			h = next(h)
		}
		if h != start || len(ring) < 3 {
			continue
		}
		if ring.SignedArea() <= minFaceArea {
			continue
		}
		faces = append(faces, NewPolygon(ring).Simplify())
	}
	return faces
}

// paddedBounds returns the curve's bounding box grown by pad
func paddedBounds(c Curve, pad float64) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: c.Start.X, Y: c.Start.Y},
		r2.Point{X: c.End.X, Y: c.End.Y},
	).ExpandedByMargin(pad)
}
