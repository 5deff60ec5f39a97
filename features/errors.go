package features

import "errors"

var (
	// ErrInvalidDataset indicates a structurally inconsistent dataset:
	// duplicate IDs, a column of the wrong length, a record missing a field
	// or an adjacency referencing an unknown ID.
	ErrInvalidDataset = errors.New("features: invalid dataset")

	// ErrUnknownField indicates a field name the dataset does not carry.
	ErrUnknownField = errors.New("features: unknown field")

	// ErrNotFound indicates a dataset name absent from the store.
	ErrNotFound = errors.New("features: dataset not found")

	// ErrNoGeometry indicates coordinates or adjacency were required but the
	// dataset has none.
	ErrNoGeometry = errors.New("features: dataset has no geometry")
)
