// Package spweights builds, stores and converts spatial weights matrices and
// uses them to pick a regression specification for spatially dependent data.
//
// 🚀 What is in spweights?
//
//	• Weights model: neighbor lists with aligned weights, higher orders, unions,
//	  row-standardization, components and islands
//	• Codecs: GAL (legacy and named), GWT/KWT, binary SWM, text triples, with
//	  master-ID remapping and adjust mode for partial feature sets
//	• Builders: contiguity, distance band, k-nearest neighbors, kernels
//	• Converter: read → remap → write, byte copy when nothing changes
//	• Model search: OLS diagnostics, LM tests and the lag/error decision tree
//
// Packages, leaves first:
//
//	idindex/    master ID ⇄ order position bijection and resolvers
//	weights/    the W type and its transforms
//	codec/      file formats
//	lattice/    rook/queen adjacency of regular grids
//	builder/    contiguity, distance, KNN and kernel weights (k-d tree search)
//	converter/  format conversion
//	matrix/     dense helpers over gonum/mat
//	regress/    Engine contract and the built-in OLS / spatial lag engine
//	automodel/  LMChoice and Select
//	features/   datasets from JSON or SQLite, output fields back to SQLite
//	config/     YAML settings
//	logger/     slog-backed message sink
//
// Quick example, rook contiguity on a 2×2 grid:
//
//	    0───1
//	    │   │
//	    2───3
//
//	adj, _ := lattice.Adjacency(2, 2, lattice.Rook)
//	w, _ := builder.Contiguity(adj, 1, false)
//	_ = codec.Write("grid.gal", w)
//
// The spweights command (cmd/spweights) exposes the same operations.
package spweights
