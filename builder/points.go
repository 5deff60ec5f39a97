// SPDX-License-Identifier: MIT
// Package: spweights/builder
//
// points.go: coordinate sets indexed by a k-d tree.
//
// Every query returns hits ordered by (distance, index) so that callers
// break ties by input order without further work.

package builder

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is a coordinate tagged with its input position. The tree reorders
// its backing slice, so the position must travel with the coordinate.
type point struct {
	idx int
	c   []float64
}

// Compare implements kdtree.Comparable.
func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.c[d] - q.c[d]
}

// Dims implements kdtree.Comparable.
func (p point) Dims() int { return len(p.c) }

// Distance implements kdtree.Comparable; it returns the SQUARED distance.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var s float64
	for i, v := range p.c {
		d := v - q.c[i]
		s += d * d
	}
	return s
}

// pointSet implements kdtree.Interface.
type pointSet []point

func (s pointSet) Index(i int) kdtree.Comparable { return s[i] }
func (s pointSet) Len() int                      { return len(s) }
func (s pointSet) Slice(start, end int) kdtree.Interface {
	return s[start:end]
}
func (s pointSet) Pivot(d kdtree.Dim) int {
	p := plane{pointSet: s, Dim: d}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// plane sorts a pointSet along one dimension.
type plane struct {
	pointSet
	kdtree.Dim
}

func (p plane) Less(i, j int) bool { return p.pointSet[i].c[p.Dim] < p.pointSet[j].c[p.Dim] }
func (p plane) Swap(i, j int)      { p.pointSet[i], p.pointSet[j] = p.pointSet[j], p.pointSet[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{pointSet: p.pointSet[start:end], Dim: p.Dim}
}

// Points is an immutable coordinate set with a spatial index.
type Points struct {
	byIdx pointSet // input order
	tree  *kdtree.Tree
}

// hit is one query result: input position and Euclidean distance.
type hit struct {
	idx  int
	dist float64
}

// NewPoints copies coords and indexes them. All coordinates must share the
// same non-zero dimension and be finite.
//
// Errors: ErrTooFewPoints on empty input, ErrDimensionMismatch otherwise.
// Complexity: O(n log n) time, O(n·dims) space.
func NewPoints(coords [][]float64) (*Points, error) {
	if len(coords) == 0 {
		return nil, builderErrorf(MethodPoints, ErrTooFewPoints, "no coordinates")
	}
	dims := len(coords[0])
	if dims == 0 {
		return nil, builderErrorf(MethodPoints, ErrDimensionMismatch, "point 0 has no coordinates")
	}
	set := make(pointSet, len(coords))
	for i, c := range coords {
		if len(c) != dims {
			return nil, builderErrorf(MethodPoints, ErrDimensionMismatch,
				"point %d has %d coordinates, want %d", i, len(c), dims)
		}
		for _, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, builderErrorf(MethodPoints, ErrDimensionMismatch, "point %d is not finite", i)
			}
		}
		set[i] = point{idx: i, c: append([]float64(nil), c...)}
	}

	indexed := append(pointSet(nil), set...)

	return &Points{byIdx: set, tree: kdtree.New(indexed, true)}, nil
}

// Planar is NewPoints for (x, y) pairs such as lattice centroids.
func Planar(xy [][2]float64) (*Points, error) {
	coords := make([][]float64, len(xy))
	for i := range xy {
		coords[i] = []float64{xy[i][0], xy[i][1]}
	}
	return NewPoints(coords)
}

// Len returns the number of points.
func (p *Points) Len() int { return len(p.byIdx) }

// Dims returns the coordinate dimension.
func (p *Points) Dims() int { return p.byIdx[0].Dims() }

// Coord returns a copy of the i-th coordinate.
func (p *Points) Coord(i int) []float64 {
	return append([]float64(nil), p.byIdx[i].c...)
}

// kthDistance returns the distance from point i to its k-th nearest other
// point. The caller guarantees 1 ≤ k ≤ n-1.
func (p *Points) kthDistance(i, k int) float64 {
	// k+1 slots so that self, or a coincident twin kept instead of self,
	// never pushes the k-th neighbor out.
	keep := kdtree.NewNKeeper(k + 1)
	p.tree.NearestSet(keep, p.byIdx[i])
	hits := collect(keep.Heap, i, false)

	return hits[k-1].dist
}

// nearest returns the k nearest other points of i, ties broken by index.
func (p *Points) nearest(i, k int) []hit {
	dk := p.kthDistance(i, k)
	hits := p.within(i, dk, false)
	return hits[:k]
}

// within returns every point at distance ≤ r from i, self included only
// when withSelf is set.
func (p *Points) within(i int, r float64, withSelf bool) []hit {
	r2 := r * r
	keep := kdtree.NewDistKeeper(r2 * (1 + 1e-12))
	p.tree.NearestSet(keep, p.byIdx[i])
	hits := collect(keep.Heap, i, withSelf)

	out := hits[:0]
	for _, h := range hits {
		if h.dist <= r {
			out = append(out, h)
		}
	}
	return out
}

// collect drains a keeper heap into hits sorted by (dist, idx).
func collect(heap kdtree.Heap, self int, withSelf bool) []hit {
	out := make([]hit, 0, len(heap))
	for _, cd := range heap {
		if cd.Comparable == nil {
			continue
		}
		q := cd.Comparable.(point)
		if q.idx == self && !withSelf {
			continue
		}
		out = append(out, hit{idx: q.idx, dist: math.Sqrt(cd.Dist)})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].dist != out[b].dist {
			return out[a].dist < out[b].dist
		}
		return out[a].idx < out[b].idx
	})
	return out
}
