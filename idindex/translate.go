package idindex

import "github.com/katalvlaran/spweights/weights"

// Mode selects how unresolved IDs are handled while translating a row.
type Mode int

const (
	// Strict treats any unresolved ID as a malformed weights file.
	Strict Mode = iota
	// Adjust drops unresolved neighbors and restandardizes the survivors.
	Adjust
)

// String renders the mode for log attributes.
func (m Mode) String() string {
	if m == Adjust {
		return "adjust"
	}
	return "strict"
}

// ModeFor returns Adjust when the resolver knows fewer observations than the
// weights file declares, Strict otherwise. A nil resolver is always Strict.
func ModeFor(r Resolver, declared int) Mode {
	if r != nil && r.Len() < declared {
		return Adjust
	}
	return Strict
}

// TranslateRow maps one weights row from file IDs into the resolver's space.
//
// Strict: every neighbor must resolve, otherwise weights.ErrMalformedWeights.
// Adjust: unresolved neighbors are dropped. If rowStd is set the surviving
// weights are scaled back to raw values by rawSum and renormalized by their
// new sum; a row left without neighbors becomes an empty (non-nil) pair.
//
// The input slices are never modified.
// Complexity: O(len(neighbors)).
func TranslateRow(r Resolver, neighbors []int, ws []float64, mode Mode, rowStd bool, rawSum float64) ([]int, []float64, error) {
	if len(neighbors) != len(ws) {
		return nil, nil, indexErrorf(methodTranslateRow, weights.ErrMalformedWeights,
			"%d neighbors but %d weights", len(neighbors), len(ws))
	}
	outN := make([]int, 0, len(neighbors))
	outW := make([]float64, 0, len(ws))
	for i, nb := range neighbors {
		t, ok := r.Resolve(nb)
		if !ok {
			if mode == Strict {
				return nil, nil, indexErrorf(methodTranslateRow, weights.ErrMalformedWeights,
					"neighbor id %d not present in index", nb)
			}
			continue
		}
		outN = append(outN, t)
		outW = append(outW, ws[i])
	}
	if mode == Adjust && rowStd && len(outW) > 0 {
		outW = weights.Restandardize(outW, rawSum)
	}

	return outN, outW, nil
}
