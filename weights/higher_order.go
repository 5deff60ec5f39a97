// SPDX-License-Identifier: MIT

package weights

import (
	"fmt"
	"sort"
)

// levelItem pairs a vertex with its hop distance from the BFS root.
type levelItem struct {
	id    int
	depth int
}

// HigherOrder returns the order-k contiguity matrix of w: j is a neighbor of
// i iff the shortest hop path from i to j in w has exactly k edges. Self and
// all lower orders are therefore excluded. Weights are binary and neighbor
// lists are ascending.
//
// w must be complete (no dangling references). k == 1 yields the binary
// version of w with sorted rows.
//
// Errors: ErrNilWeights, ErrInvalidOrder, ErrMalformedWeights (dangling).
// Complexity: O(n·(n+nnz)) worst case; each BFS stops at depth k.
func HigherOrder(w *W, k int) (*W, error) {
	if w == nil {
		return nil, weightsErrorf(methodHigherOrder, ErrNilWeights, "k=%d", k)
	}
	if k < 1 {
		return nil, weightsErrorf(methodHigherOrder, ErrInvalidOrder, "got %d", k)
	}
	if err := w.RequireComplete(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodHigherOrder, err)
	}

	out := make(map[int][]int, len(w.ids))
	for _, root := range w.ids {
		out[root] = w.ring(root, k)
	}

	return New(out, nil, WithIDField(w.idField))
}

// ring collects the IDs whose hop distance from root is exactly k.
func (w *W) ring(root, k int) []int {
	visited := map[int]bool{root: true}
	queue := []levelItem{{id: root}}
	ring := make([]int, 0)
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.depth == k {
			ring = append(ring, item.id)
			continue // never expand past the requested order
		}
		for _, nb := range w.neighbors[item.id] {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, levelItem{id: nb, depth: item.depth + 1})
		}
	}
	sort.Ints(ring)

	return ring
}

// Union merges the neighbor sets of a and b with binary weights: an edge
// present on either side gets weight 1. The domain is the union of both
// domains, rows are ascending, and the ID field of a wins when set.
// Union is idempotent: Union(Union(a, b), b) equals Union(a, b).
//
// Complexity: O(n + nnz·log d) for the per-row sort.
func Union(a, b *W) (*W, error) {
	if a == nil || b == nil {
		return nil, weightsErrorf(methodUnion, ErrNilWeights, "a=%v b=%v", a != nil, b != nil)
	}
	sets := make(map[int]map[int]struct{}, len(a.ids)+len(b.ids))
	add := func(w *W) {
		for _, id := range w.ids {
			set, ok := sets[id]
			if !ok {
				set = make(map[int]struct{}, len(w.neighbors[id]))
				sets[id] = set
			}
			for _, nb := range w.neighbors[id] {
				set[nb] = struct{}{}
			}
		}
	}
	add(a)
	add(b)

	out := make(map[int][]int, len(sets))
	for id, set := range sets {
		row := make([]int, 0, len(set))
		for nb := range set {
			row = append(row, nb)
		}
		sort.Ints(row)
		out[id] = row
	}
	field := a.idField
	if field == "" {
		field = b.idField
	}
	opts := []Option{WithIDField(field)}
	if a.diagonal || b.diagonal {
		opts = append(opts, WithDiagonal())
	}

	return New(out, nil, opts...)
}

// UpToOrder builds order-k contiguity from first-order w. With includeLower
// the result is the union of orders 1..k, otherwise only order k is kept.
//
// Errors: as HigherOrder.
func UpToOrder(w *W, k int, includeLower bool) (*W, error) {
	high, err := HigherOrder(w, k)
	if err != nil {
		return nil, weightsErrorf(methodUpToOrder, err, "order %d", k)
	}
	if !includeLower || k == 1 {
		return high, nil
	}
	for order := k - 1; order >= 2; order-- {
		lower, err := HigherOrder(w, order)
		if err != nil {
			return nil, weightsErrorf(methodUpToOrder, err, "order %d", order)
		}
		if high, err = Union(high, lower); err != nil {
			return nil, err
		}
	}

	return Union(high, w)
}
