package builder

import "github.com/katalvlaran/spweights/weights"

// Kernel builds kernel weights: every point within the bandwidth h of i is a
// neighbor with weight fn(d/h).
//
// Bandwidths, in order of precedence:
//   - WithFixedBandwidth(h): h for every point.
//   - WithAdaptiveBandwidth(): h_i = d_k(i)·BandwidthInflation, where d_k(i)
//     is the distance from i to its k-th nearest neighbor.
//   - default: one fixed h = max_i d_k(i)·BandwidthInflation, so every point
//     has at least k neighbors.
//
// Self is excluded unless WithDiagonal is given, in which case each row also
// carries (i, DiagonalWeight).
//
// Errors: ErrTooFewPoints, ErrInvalidK, ErrInvalidBandwidth (every point
// coincides, so the derived bandwidth is 0).
// Complexity: O(n·(k + log n) + nnz) expected.
func Kernel(pts *Points, fn KernelFunc, k int, opts ...BuilderOption) (*weights.W, error) {
	n := pts.Len()
	if err := validateK(MethodKernel, k, n); err != nil {
		return nil, err
	}
	if fn == nil {
		fn = Triangular
	}
	cfg := newBuilderConfig(opts...)

	bw, err := bandwidths(pts, k, cfg)
	if err != nil {
		return nil, err
	}

	nb := make(map[int][]int, n)
	ws := make(map[int][]float64, n)
	for i := 0; i < n; i++ {
		h := bw[i]
		hits := pts.within(i, h, false)
		row := make([]int, 0, len(hits)+1)
		wrow := make([]float64, 0, len(hits)+1)
		if cfg.diagonal {
			row = append(row, i)
			wrow = append(wrow, DiagonalWeight)
		}
		for _, hi := range hits {
			row = append(row, hi.idx)
			wrow = append(wrow, fn(hi.dist/h))
		}
		nb[i], ws[i] = row, wrow
	}

	w, err := weights.New(nb, ws, cfg.weightsOptions()...)
	if err != nil {
		return nil, builderErrorf(MethodKernel, err, "k=%d", k)
	}
	return cfg.finish(w), nil
}

// Bandwidths exposes the per-point bandwidths Kernel would use.
func Bandwidths(pts *Points, k int, opts ...BuilderOption) ([]float64, error) {
	if err := validateK(MethodKernel, k, pts.Len()); err != nil {
		return nil, err
	}
	return bandwidths(pts, k, newBuilderConfig(opts...))
}

func bandwidths(pts *Points, k int, cfg builderConfig) ([]float64, error) {
	n := pts.Len()
	bw := make([]float64, n)
	if cfg.bandwidth > 0 {
		for i := range bw {
			bw[i] = cfg.bandwidth
		}
		return bw, nil
	}

	var hmax float64
	for i := range bw {
		bw[i] = pts.kthDistance(i, k) * BandwidthInflation
		if bw[i] > hmax {
			hmax = bw[i]
		}
	}
	if !cfg.adaptive {
		for i := range bw {
			bw[i] = hmax
		}
	}
	for i, h := range bw {
		if h == 0 {
			return nil, builderErrorf(MethodKernel, ErrInvalidBandwidth, "point %d has zero bandwidth", i)
		}
	}
	return bw, nil
}
