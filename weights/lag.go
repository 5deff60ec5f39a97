package weights

import "fmt"

// ErrNotOrderIndexed indicates an operation that needs keys 0..n-1 received
// a W keyed by master IDs.
var ErrNotOrderIndexed = fmt.Errorf("weights: matrix is not keyed by order positions: %w", ErrMalformedWeights)

// OrderIndexed reports whether the domain is exactly 0..N()-1 and complete,
// which is what estimators require.
func (w *W) OrderIndexed() bool {
	for i, id := range w.ids {
		if id != i {
			return false
		}
	}
	return len(w.Dangling()) == 0
}

// Lag returns the spatial lag Wx, where x is indexed by order position.
// Complexity: O(nnz).
func (w *W) Lag(x []float64) ([]float64, error) {
	if len(x) != len(w.ids) {
		return nil, weightsErrorf(methodLag, ErrMalformedWeights, "vector has %d entries, matrix %d rows", len(x), len(w.ids))
	}
	if !w.OrderIndexed() {
		return nil, fmt.Errorf("%s: %w", methodLag, ErrNotOrderIndexed)
	}
	out := make([]float64, len(x))
	for i := range out {
		var s float64
		for k, j := range w.neighbors[i] {
			s += w.weights[i][k] * x[j]
		}
		out[i] = s
	}

	return out, nil
}

// Transpose returns W' over the same domain; rows of the result may be empty.
func (w *W) Transpose() *W {
	nb := make(map[int][]int, len(w.ids))
	ws := make(map[int][]float64, len(w.ids))
	for _, id := range w.ids {
		nb[id] = make([]int, 0)
		ws[id] = make([]float64, 0)
	}
	for _, i := range w.ids {
		for k, j := range w.neighbors[i] {
			if _, ok := nb[j]; !ok {
				continue
			}
			nb[j] = append(nb[j], i)
			ws[j] = append(ws[j], w.weights[i][k])
		}
	}
	out, _ := New(nb, ws, w.options()...) // transposing a valid W keeps rows unique

	return out
}
