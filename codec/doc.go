// Package codec reads and writes weights matrices in the four on-disk
// encodings: GAL, GWT/KWT, SWM and generic text triples.
//
// Encodings:
//
//	GAL   text, unweighted. Header "n" (legacy) or "0 n IDFIELD UNKNOWN"
//	      (named), then line pairs "masterID count" / "nb1 nb2 ...".
//	GWT   text, one "masterID neighborID weight" edge per line after a
//	      "0 n IDFIELD UNKNOWN" header. KWT is GWT with kernel diagonals.
//	SWM   binary little-endian with an ASCII header line, then n records
//	      {masterID, count, neighbors, weights, unstandardized row sum}.
//	TXT   GWT grammar with an optional header.
//
// Read translates file IDs through an optional idindex.Resolver. When the
// resolver knows fewer observations than the file declares the reader
// switches to adjust mode: unresolved neighbors are dropped, surviving
// weights are restandardized and a warning goes to the logger. Outside adjust
// mode an unresolved ID is weights.ErrMalformedWeights.
//
// Readers and writers hold a single file each and release it on every path.
// The SWM writer needs n and the standardization flag before the first
// record; Close verifies that exactly n records were appended.
package codec
