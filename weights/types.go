// SPDX-License-Identifier: MIT

package weights

import (
	"sort"
	"strings"
)

// UnknownIDField is the on-disk sentinel meaning "no ID field".
// W never stores it; IDField returns "" instead.
const UnknownIDField = "UNKNOWN"

// W is a weighted neighbor graph over a domain of observation IDs.
//
// The domain is the key set of the row maps; ids caches it in ascending
// order so iteration (and therefore every writer) is deterministic.
type W struct {
	ids       []int             // domain, ascending
	neighbors map[int][]int     // id -> ordered neighbor IDs
	weights   map[int][]float64 // id -> weights, index-aligned with neighbors
	rowStd    bool              // rows sum to 1 (or are empty)
	idField   string            // "" when unknown
	diagonal  bool              // self references permitted (kernel weights)
	rawSums   map[int]float64   // pre-standardization row sums, when known
}

// Option configures a W at construction time.
type Option func(*config)

type config struct {
	idField  string
	rowStd   bool
	diagonal bool
	rawSums  map[int]float64
}

// WithIDField records the name of the ID field the row keys come from.
// The on-disk sentinel UNKNOWN (any case) and "" both mean "none".
func WithIDField(name string) Option {
	return func(c *config) {
		if strings.EqualFold(name, UnknownIDField) {
			name = ""
		}
		c.idField = name
	}
}

// WithRowStandardized marks the rows as row-standardized.
// The flag is recorded only; use RowStandardize to rescale weights.
func WithRowStandardized(on bool) Option {
	return func(c *config) { c.rowStd = on }
}

// WithDiagonal permits a self-weighted diagonal entry in each row,
// as required by kernel weights used for HAC estimation.
func WithDiagonal() Option {
	return func(c *config) { c.diagonal = true }
}

// WithRawSums records the row sums each row had before it was
// standardized. Keys outside the domain are ignored; rows without an entry
// report their current sum from RawSum.
func WithRawSums(sums map[int]float64) Option {
	return func(c *config) { c.rawSums = sums }
}

// New validates and copies the row maps into a W.
//
// If ws is nil every edge receives weight 1 (binary contiguity). Otherwise
// the key sets of neighbors and ws must be identical and every row must be
// index-aligned. Rows may not repeat a neighbor, nor reference themselves
// unless WithDiagonal is given. Neighbor IDs outside the domain are allowed
// here (see Dangling); writers that need completeness call RequireComplete.
//
// Errors: ErrMalformedWeights with the offending key and both lengths.
// Complexity: O(n + nnz) time and space.
func New(neighbors map[int][]int, ws map[int][]float64, opts ...Option) (*W, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if ws != nil && len(ws) != len(neighbors) {
		return nil, weightsErrorf(methodNew, ErrMalformedWeights,
			"neighbors has %d rows, weights has %d", len(neighbors), len(ws))
	}

	w := &W{
		ids:       make([]int, 0, len(neighbors)),
		neighbors: make(map[int][]int, len(neighbors)),
		weights:   make(map[int][]float64, len(neighbors)),
		rowStd:    cfg.rowStd,
		idField:   cfg.idField,
		diagonal:  cfg.diagonal,
	}
	for id, nbrs := range neighbors {
		var row []float64
		if ws == nil {
			row = ones(len(nbrs))
		} else {
			var ok bool
			if row, ok = ws[id]; !ok {
				return nil, weightsErrorf(methodNew, ErrMalformedWeights, "row %d has neighbors but no weights", id)
			}
		}
		if len(row) != len(nbrs) {
			return nil, weightsErrorf(methodNew, ErrMalformedWeights,
				"row %d: %d neighbors but %d weights", id, len(nbrs), len(row))
		}
		if err := checkRow(id, nbrs, cfg.diagonal); err != nil {
			return nil, err
		}
		w.ids = append(w.ids, id)
		w.neighbors[id] = append(make([]int, 0, len(nbrs)), nbrs...)
		w.weights[id] = append(make([]float64, 0, len(row)), row...)
	}
	sort.Ints(w.ids)
	for id, sum := range cfg.rawSums {
		if _, ok := w.neighbors[id]; !ok {
			continue
		}
		if w.rawSums == nil {
			w.rawSums = make(map[int]float64, len(cfg.rawSums))
		}
		w.rawSums[id] = sum
	}

	return w, nil
}

// checkRow rejects duplicate neighbors and, unless allowed, self references.
func checkRow(id int, nbrs []int, diagonal bool) error {
	seen := make(map[int]struct{}, len(nbrs))
	for _, nb := range nbrs {
		if nb == id && !diagonal {
			return weightsErrorf(methodNew, ErrMalformedWeights, "row %d references itself", id)
		}
		if _, dup := seen[nb]; dup {
			return weightsErrorf(methodNew, ErrMalformedWeights, "row %d lists neighbor %d twice", id, nb)
		}
		seen[nb] = struct{}{}
	}
	return nil
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// N returns the number of observations (rows) in the domain.
func (w *W) N() int { return len(w.ids) }

// IDs returns the domain in ascending order.
func (w *W) IDs() []int {
	out := make([]int, len(w.ids))
	copy(out, w.ids)
	return out
}

// Has reports whether id is a domain key.
func (w *W) Has(id int) bool {
	_, ok := w.neighbors[id]
	return ok
}

// Neighbors returns a copy of the neighbor list of id and whether id is a key.
func (w *W) Neighbors(id int) ([]int, bool) {
	nbrs, ok := w.neighbors[id]
	if !ok {
		return nil, false
	}
	return append(make([]int, 0, len(nbrs)), nbrs...), true
}

// Weights returns a copy of the weight list of id and whether id is a key.
func (w *W) Weights(id int) ([]float64, bool) {
	row, ok := w.weights[id]
	if !ok {
		return nil, false
	}
	return append(make([]float64, 0, len(row)), row...), true
}

// Row returns the aligned neighbor and weight lists for id without copying.
// Callers must treat both slices as read-only.
func (w *W) Row(id int) ([]int, []float64) {
	return w.neighbors[id], w.weights[id]
}

// Cardinality returns the neighbor count of id (0 for unknown IDs).
func (w *W) Cardinality(id int) int { return len(w.neighbors[id]) }

// Cardinalities returns id -> neighbor count for the whole domain.
func (w *W) Cardinalities() map[int]int {
	out := make(map[int]int, len(w.ids))
	for _, id := range w.ids {
		out[id] = len(w.neighbors[id])
	}
	return out
}

// NonZero returns the total number of stored edges.
func (w *W) NonZero() int {
	total := 0
	for _, id := range w.ids {
		total += len(w.neighbors[id])
	}
	return total
}

// RowStandardized reports whether rows are recorded as row-standardized.
func (w *W) RowStandardized() bool { return w.rowStd }

// IDField returns the ID field name, or "" when unknown.
func (w *W) IDField() string { return w.idField }

// HasDiagonal reports whether self references are permitted.
func (w *W) HasDiagonal() bool { return w.diagonal }

// options reproduces the construction options of w, used by transforms.
func (w *W) options() []Option {
	opts := []Option{WithIDField(w.idField), WithRowStandardized(w.rowStd)}
	if w.diagonal {
		opts = append(opts, WithDiagonal())
	}
	return opts
}

// maps returns deep copies of the row maps.
func (w *W) maps() (map[int][]int, map[int][]float64) {
	nb := make(map[int][]int, len(w.ids))
	ws := make(map[int][]float64, len(w.ids))
	for _, id := range w.ids {
		nb[id] = append([]int(nil), w.neighbors[id]...)
		ws[id] = append([]float64(nil), w.weights[id]...)
	}
	return nb, ws
}

// Maps exposes deep copies of the neighbor and weight maps.
func (w *W) Maps() (map[int][]int, map[int][]float64) { return w.maps() }
