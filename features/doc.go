// Package features holds the observation data that weights are built for
// and regressions are fitted on: IDs, numeric fields, optional centroid
// coordinates and an optional polygon adjacency.
//
// Datasets come from JSON documents (github.com/goccy/go-json) or from a
// SQLite store (modernc.org/sqlite, pure Go). Output fields computed by a
// model run are written back to the store with WriteFields, and run
// reports are kept alongside with SaveRun.
package features
