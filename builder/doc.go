// Package builder constructs weights matrices from neighbor rules: polygon
// contiguity, distance bands, k nearest neighbors and kernels.
//
// The package offers the following key components:
//
//   - Contiguity:   binary weights from an external adjacency source, with
//     optional higher orders (and their union with lower orders).
//   - Points:       a coordinate set indexed by a k-d tree
//     (gonum.org/v1/gonum/spatial/kdtree) for radius and k-nearest queries.
//   - DistanceBand: neighbors within a Euclidean threshold, binary or with
//     inverse-distance decay d^alpha, alpha = -power.
//   - KNN:          k nearest neighbors, ties broken by input order.
//   - Kernel:       k-nearest or fixed-bandwidth neighborhoods weighted by a
//     KernelFunc of d/h, optionally with a unit diagonal for HAC estimation.
//
// Guarantees:
//
//   - Every builder returns a W keyed by order positions 0..n-1 (Contiguity
//     keeps the keys of its adjacency source). Translating to master IDs is
//     the job of idindex and weights.Remap.
//   - Every unit gets a row; isolates map to empty rows, never omitted.
//   - Neighbor rows are ordered by (distance, index) for point builders and
//     ascending for Contiguity, so output files are deterministic.
//   - Option constructors panic on meaningless values (negative bandwidth,
//     non-positive power); builders themselves return wrapped sentinels.
package builder
