// Package idindex maps caller-domain master IDs onto the dense, 0-based order
// positions used by every weights builder and estimator.
//
// An Index is built once per dataset load from the ordered sequence of master
// IDs and is strictly bijective: the i-th master ID owns order position i and
// no master ID may appear twice.
//
// Codecs consume an Index (or any Resolver) to translate the IDs stored in a
// weights file into the ID space of the feature dataset. Two translation modes
// exist:
//
//	Strict  - every ID must resolve; a miss is a malformed weights file.
//	Adjust  - selected when the dataset holds fewer observations than the
//	          file declares. Unresolved neighbors are dropped and the surviving
//	          weights are restandardized so that row-stochastic rows stay
//	          row-stochastic on the reduced graph.
//
// Relabel wraps an Index so that IDs resolve to an arbitrary label column
// instead of order positions; the converter uses it to rewrite a weights file
// keyed by one ID field into another.
package idindex
