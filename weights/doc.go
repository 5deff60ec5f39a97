// Package weights defines W, the canonical in-memory spatial weights matrix:
// a weighted neighbor graph over a domain of observation IDs.
//
// Every key of the domain owns a row: an ordered, duplicate-free list of
// neighbor IDs and an index-aligned list of float64 weights. The alignment
// invariant len(Neighbors(id)) == len(Weights(id)) holds for every key at all
// times; New refuses anything else with ErrMalformedWeights.
//
// IDs are either master IDs from a feature dataset or order positions
// 0..n-1 when the dataset has no ID field. The package never translates
// between the two; that is the job of package idindex.
//
// Quick sketch (rook contiguity on a 1×3 strip):
//
//	0───1───2
//
//	w, _ := weights.New(map[int][]int{0: {1}, 1: {0, 2}, 2: {1}}, nil)
//	w2, _ := weights.HigherOrder(w, 2) // 0 ↔ 2
//
// Higher-order neighbors are computed by breadth-first level expansion: the
// order-k neighbors of i are exactly those IDs whose shortest hop distance
// from i is k. Union merges neighbor sets with binary weights, and UpToOrder
// composes both to build "orders 1..k" contiguity.
//
// A W is built once, optionally transformed (RowStandardize, Remap), and is
// read-only once handed to a writer or an estimator. Methods that change
// structure always return a new W.
package weights
