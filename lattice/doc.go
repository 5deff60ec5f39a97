// Package lattice produces polygon adjacency for regular rectangular
// lattices of cells, the adjacency source consumed by builder.Contiguity in
// tests, examples and the CLI.
//
// What:
//
//   - Lattice wraps a Width×Height block of square cells, optionally masked
//     so that cells with value < 1 are holes (no observation).
//   - Cell IDs are row-major: id = y*Width + x.
//   - Rook contiguity joins cells sharing an edge (N, E, S, W).
//   - Queen contiguity also joins cells sharing a vertex (diagonals).
//
// Complexity:
//
//   - Adjacency: O(W×H×d), Memory: O(W×H×d)    (d = 4 or 8).
//   - Centroids: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: no rows or no columns.
//   - ErrNonRectangular: mask rows have differing lengths.
package lattice
