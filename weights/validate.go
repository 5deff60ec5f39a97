package weights

import (
	"math"
	"sort"
)

// Dangling returns, ascending and de-duplicated, every neighbor ID that is
// not itself a domain key. A dangling-free W is "complete".
func (w *W) Dangling() []int {
	seen := make(map[int]struct{})
	for _, id := range w.ids {
		for _, nb := range w.neighbors[id] {
			if _, ok := w.neighbors[nb]; !ok {
				seen[nb] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}

// RequireComplete fails with ErrMalformedWeights when any referenced
// neighbor is missing from the domain, naming the first few offenders.
func (w *W) RequireComplete() error {
	d := w.Dangling()
	if len(d) == 0 {
		return nil
	}
	const show = 5
	head := d
	if len(head) > show {
		head = head[:show]
	}

	return weightsErrorf(methodRequireComplete, ErrMalformedWeights,
		"%d referenced ids are not rows, first %v", len(d), head)
}

// Equal reports whether a and b hold the same domain and, per row, the same
// neighbor set with weights matching within tol. Neighbor order is ignored.
func Equal(a, b *W, tol float64) bool {
	return equal(a, b, tol, true)
}

// EqualNeighbors compares only the neighbor sets, ignoring weights.
func EqualNeighbors(a, b *W) bool {
	return equal(a, b, 0, false)
}

func equal(a, b *W, tol float64, withWeights bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.ids) != len(b.ids) {
		return false
	}
	for _, id := range a.ids {
		bn, ok := b.neighbors[id]
		if !ok {
			return false
		}
		an := a.neighbors[id]
		if len(an) != len(bn) {
			return false
		}
		bw := make(map[int]float64, len(bn))
		for i, nb := range bn {
			bw[nb] = b.weights[id][i]
		}
		for i, nb := range an {
			v, ok := bw[nb]
			if !ok {
				return false
			}
			if withWeights && math.Abs(v-a.weights[id][i]) > tol {
				return false
			}
		}
	}

	return true
}
