// SPDX-License-Identifier: MIT

package builder

import "github.com/katalvlaran/spweights/weights"

// DistanceBand links every pair of points at Euclidean distance ≤ threshold.
//
// Weights are binary by default. WithInverseDistance(power) switches to
// d^alpha with alpha = -power; two coincident points then have no finite
// weight and the call fails with ErrCoincidentPoints.
//
// Errors: ErrInvalidThreshold, ErrCoincidentPoints.
// Complexity: O(n log n + nnz) expected with the k-d tree.
func DistanceBand(pts *Points, threshold float64, opts ...BuilderOption) (*weights.W, error) {
	if err := validateThreshold(MethodDistanceBand, threshold); err != nil {
		return nil, err
	}
	cfg := newBuilderConfig(opts...)

	n := pts.Len()
	nb := make(map[int][]int, n)
	ws := make(map[int][]float64, n)
	for i := 0; i < n; i++ {
		hits := pts.within(i, threshold, false)
		row := make([]int, len(hits))
		wrow := make([]float64, len(hits))
		for k, h := range hits {
			row[k] = h.idx
			switch {
			case !cfg.inverse:
				wrow[k] = DefaultEdgeWeight
			case h.dist == 0:
				return nil, builderErrorf(MethodDistanceBand, ErrCoincidentPoints, "points %d and %d", i, h.idx)
			default:
				wrow[k] = inverseDistance(h.dist, cfg.alpha)
			}
		}
		nb[i], ws[i] = row, wrow
	}

	w, err := weights.New(nb, ws, weights.WithIDField(cfg.idField))
	if err != nil {
		return nil, builderErrorf(MethodDistanceBand, err, "threshold=%g", threshold)
	}
	return cfg.finish(w), nil
}

// KNN links every point to its k nearest other points. Rows are asymmetric
// in general; equidistant candidates are taken in input order.
//
// Errors: ErrTooFewPoints, ErrInvalidK (k outside [1, n-1]).
// Complexity: O(n·(k + log n)) expected.
func KNN(pts *Points, k int, opts ...BuilderOption) (*weights.W, error) {
	n := pts.Len()
	if err := validateK(MethodKNN, k, n); err != nil {
		return nil, err
	}
	cfg := newBuilderConfig(opts...)

	nb := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		hits := pts.nearest(i, k)
		row := make([]int, len(hits))
		for j, h := range hits {
			row[j] = h.idx
		}
		nb[i] = row
	}

	w, err := weights.New(nb, nil, weights.WithIDField(cfg.idField))
	if err != nil {
		return nil, builderErrorf(MethodKNN, err, "k=%d", k)
	}
	return cfg.finish(w), nil
}

// ThresholdForConnectivity returns the smallest band that leaves no point
// without a neighbor: the largest nearest-neighbor distance.
//
// Errors: ErrTooFewPoints when fewer than two points exist.
func ThresholdForConnectivity(pts *Points) (float64, error) {
	n := pts.Len()
	if err := validateK(MethodDistanceBand, 1, n); err != nil {
		return 0, err
	}
	var best float64
	for i := 0; i < n; i++ {
		if d := pts.kthDistance(i, 1); d > best {
			best = d
		}
	}
	return best, nil
}
