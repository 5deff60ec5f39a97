// SPDX-License-Identifier: MIT

package features

import (
	"fmt"
	"math"

	"github.com/katalvlaran/spweights/builder"
	"github.com/katalvlaran/spweights/idindex"
)

// Column is a named numeric field aligned with a dataset's IDs.
type Column struct {
	Name   string    `json:"name"`
	Alias  string    `json:"alias,omitempty"`
	Values []float64 `json:"values"`
}

// Dataset is a set of observations in a fixed order. Position i of every
// column, of Coords and of IDs describes the same observation.
type Dataset struct {
	Name    string
	IDField string
	IDs     []int

	// Coords holds one centroid per observation, or nil.
	Coords [][2]float64
	// Adjacency is keyed by ID, or nil when the source carries none.
	Adjacency map[int][]int

	order   []string
	columns map[string][]float64
}

// NewDataset starts a dataset over ids.
func NewDataset(name, idField string, ids []int) *Dataset {
	return &Dataset{
		Name:    name,
		IDField: idField,
		IDs:     append([]int(nil), ids...),
		columns: make(map[string][]float64),
	}
}

// N returns the number of observations.
func (d *Dataset) N() int { return len(d.IDs) }

// AddField adds or replaces a numeric column.
func (d *Dataset) AddField(name string, values []float64) error {
	if len(values) != len(d.IDs) {
		return fmt.Errorf("%w: field %q has %d values for %d observations", ErrInvalidDataset, name, len(values), len(d.IDs))
	}
	if _, ok := d.columns[name]; !ok {
		d.order = append(d.order, name)
	}
	d.columns[name] = append([]float64(nil), values...)
	return nil
}

// FieldNames lists the numeric fields in declaration order.
func (d *Dataset) FieldNames() []string { return append([]string(nil), d.order...) }

// HasField reports whether name is a numeric field.
func (d *Dataset) HasField(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// Field returns a copy of a numeric column.
func (d *Dataset) Field(name string) ([]float64, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return append([]float64(nil), col...), nil
}

// Rows returns the named columns as one row per observation.
func (d *Dataset) Rows(names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for j, name := range names {
		col, ok := d.columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		cols[j] = col
	}
	rows := make([][]float64, len(d.IDs))
	for i := range rows {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	return rows, nil
}

// Index returns the ID ⇄ order bijection for the dataset.
func (d *Dataset) Index() (*idindex.Index, error) {
	ix, err := idindex.New(d.IDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return ix, nil
}

// Points indexes the centroids for the distance and kernel builders.
func (d *Dataset) Points() (*builder.Points, error) {
	if d.Coords == nil {
		return nil, fmt.Errorf("%w: no coordinates in %q", ErrNoGeometry, d.Name)
	}
	return builder.Planar(d.Coords)
}

// OrderAdjacency translates Adjacency from IDs to order positions, the
// input builder.Contiguity expects.
func (d *Dataset) OrderAdjacency() (map[int][]int, error) {
	if d.Adjacency == nil {
		return nil, fmt.Errorf("%w: no adjacency in %q", ErrNoGeometry, d.Name)
	}
	ix, err := d.Index()
	if err != nil {
		return nil, err
	}
	out := make(map[int][]int, len(d.IDs))
	for i := range d.IDs {
		out[i] = []int{}
	}
	for id, nbs := range d.Adjacency {
		o, err := ix.Order(id)
		if err != nil {
			return nil, fmt.Errorf("%w: adjacency row %d: %w", ErrInvalidDataset, id, err)
		}
		row := make([]int, 0, len(nbs))
		for _, nb := range nbs {
			j, err := ix.Order(nb)
			if err != nil {
				return nil, fmt.Errorf("%w: adjacency %d -> %d: %w", ErrInvalidDataset, id, nb, err)
			}
			row = append(row, j)
		}
		out[o] = row
	}
	return out, nil
}

// Validate checks the dataset invariants: unique IDs, aligned columns and
// coordinates, finite coordinates.
func (d *Dataset) Validate() error {
	if _, err := d.Index(); err != nil {
		return err
	}
	for _, name := range d.order {
		if len(d.columns[name]) != len(d.IDs) {
			return fmt.Errorf("%w: field %q misaligned", ErrInvalidDataset, name)
		}
	}
	if d.Coords != nil {
		if len(d.Coords) != len(d.IDs) {
			return fmt.Errorf("%w: %d coordinates for %d observations", ErrInvalidDataset, len(d.Coords), len(d.IDs))
		}
		for i, c := range d.Coords {
			if math.IsNaN(c[0]) || math.IsNaN(c[1]) || math.IsInf(c[0], 0) || math.IsInf(c[1], 0) {
				return fmt.Errorf("%w: coordinate %d is not finite", ErrInvalidDataset, i)
			}
		}
	}
	return nil
}
