package builder

import (
	"sort"

	"github.com/katalvlaran/spweights/weights"
)

// Contiguity builds binary weights from an adjacency source such as
// lattice.Adjacency or a polygon topology tool.
//
// The adjacency is normalized first: neighbors missing from the key set get
// empty rows, self references and repeats are dropped, and each row is
// sorted. For order > 1 the result holds neighbors at exactly that order, or
// at orders 1..order when includeLower is set.
//
// Errors: weights.ErrInvalidOrder when order < 1.
// Complexity: O(n + nnz) for order 1; see weights.HigherOrder beyond.
func Contiguity(adj map[int][]int, order int, includeLower bool, opts ...BuilderOption) (*weights.W, error) {
	if order < MinOrder {
		return nil, builderErrorf(MethodContiguity, weights.ErrInvalidOrder, "order=%d", order)
	}
	cfg := newBuilderConfig(opts...)

	nb := make(map[int][]int, len(adj))
	for id := range adj {
		nb[id] = nil
	}
	for id, row := range adj {
		seen := make(map[int]bool, len(row))
		clean := make([]int, 0, len(row))
		for _, j := range row {
			if j == id || seen[j] {
				continue
			}
			seen[j] = true
			clean = append(clean, j)
			if _, ok := nb[j]; !ok {
				nb[j] = nil
			}
		}
		sort.Ints(clean)
		nb[id] = append(nb[id], clean...)
	}
	for id, row := range nb {
		if row == nil {
			nb[id] = make([]int, 0)
		}
	}

	w, err := weights.New(nb, nil, weights.WithIDField(cfg.idField))
	if err != nil {
		return nil, builderErrorf(MethodContiguity, err, "normalized adjacency")
	}
	if order > 1 {
		if w, err = weights.UpToOrder(w, order, includeLower); err != nil {
			return nil, builderErrorf(MethodContiguity, err, "order=%d", order)
		}
	}

	return cfg.finish(w), nil
}
