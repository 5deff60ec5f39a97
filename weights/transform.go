package weights

// RowSum returns the sum of the weights stored in the row of id.
func (w *W) RowSum(id int) float64 {
	var s float64
	for _, v := range w.weights[id] {
		s += v
	}
	return s
}

// RawSum returns the sum of the row of id before standardization: the
// recorded value when there is one, the current row sum otherwise.
func (w *W) RawSum(id int) float64 {
	if s, ok := w.rawSums[id]; ok {
		return s
	}
	return w.RowSum(id)
}

// RowStandardize returns a copy of w whose rows sum to 1. Empty rows and
// rows summing to zero are left unchanged. The result is flagged
// row-standardized and remembers each row's RawSum; applying it twice is a
// no-op up to rounding.
func (w *W) RowStandardize() *W {
	nb, ws := w.maps()
	raw := make(map[int]float64, len(ws))
	for id, row := range ws {
		raw[id] = w.RawSum(id)
		var s float64
		for _, v := range row {
			s += v
		}
		if s == 0 {
			continue
		}
		for i := range row {
			row[i] /= s
		}
		ws[id] = row
	}
	out, _ := New(nb, ws, append(w.options(), WithRowStandardized(true), WithRawSums(raw))...) // rows come from a valid W

	return out
}

// Restandardize rescales a filtered row-standardized row back to raw weights
// (each value × rawSum, the pre-normalization row sum) and renormalizes it by
// the surviving sum. It returns a new slice; an empty input yields an empty
// slice and a zero surviving sum leaves the raw values in place.
func Restandardize(ws []float64, rawSum float64) []float64 {
	out := make([]float64, len(ws))
	var s float64
	for i, v := range ws {
		out[i] = v * rawSum
		s += out[i]
	}
	if s == 0 {
		return out
	}
	for i := range out {
		out[i] /= s
	}

	return out
}

// Remap translates every row key and neighbor through fn. A key or neighbor
// for which fn reports false makes the whole remap fail with
// ErrMalformedWeights; two keys mapping onto one target fail the same way.
func (w *W) Remap(fn func(id int) (int, bool)) (*W, error) {
	nb := make(map[int][]int, len(w.ids))
	ws := make(map[int][]float64, len(w.ids))
	var raw map[int]float64
	for _, id := range w.ids {
		to, ok := fn(id)
		if !ok {
			return nil, weightsErrorf(methodRemap, ErrMalformedWeights, "row key %d has no mapping", id)
		}
		if _, dup := nb[to]; dup {
			return nil, weightsErrorf(methodRemap, ErrMalformedWeights, "row keys collide on %d", to)
		}
		src := w.neighbors[id]
		row := make([]int, len(src))
		for i, n := range src {
			t, ok := fn(n)
			if !ok {
				return nil, weightsErrorf(methodRemap, ErrMalformedWeights, "row %d: neighbor %d has no mapping", id, n)
			}
			row[i] = t
		}
		nb[to] = row
		ws[to] = append([]float64(nil), w.weights[id]...)
		if sum, ok := w.rawSums[id]; ok {
			if raw == nil {
				raw = make(map[int]float64, len(w.rawSums))
			}
			raw[to] = sum
		}
	}

	return New(nb, ws, append(w.options(), WithRawSums(raw))...)
}

// WithField returns a copy of w carrying a different ID field name.
func (w *W) WithField(name string) *W {
	nb, ws := w.maps()
	out, _ := New(nb, ws, append(w.options(), WithIDField(name), WithRawSums(w.rawSums))...) // rows come from a valid W

	return out
}
