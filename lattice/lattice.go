// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"strings"
)

// Contiguity selects the neighbor rule between cells.
type Contiguity int

const (
	// Rook joins cells sharing an edge: N, E, S, W.
	Rook Contiguity = iota
	// Queen joins cells sharing an edge or a corner.
	Queen
)

// String returns "rook" or "queen".
func (c Contiguity) String() string {
	if c == Queen {
		return "queen"
	}
	return "rook"
}

// ParseContiguity accepts "rook" or "queen", case-insensitively.
func ParseContiguity(s string) (Contiguity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rook":
		return Rook, nil
	case "queen":
		return Queen, nil
	}
	return Rook, fmt.Errorf("lattice: unknown contiguity %q (want rook or queen)", s)
}

// Lattice is an immutable rectangular block of cells.
type Lattice struct {
	Width, Height int
	Conn          Contiguity
	present       []bool // row-major; false marks a hole
	offsets       [][2]int
}

// New returns a rows×cols lattice with every cell present.
// Complexity: O(rows×cols).
func New(rows, cols int, conn Contiguity) (*Lattice, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrEmptyGrid)
	}
	present := make([]bool, rows*cols)
	for i := range present {
		present[i] = true
	}
	return build(cols, rows, conn, present), nil
}

// FromMask builds a lattice from a 2D mask; cells with value < 1 are holes
// and carry no observation. The mask is copied.
func FromMask(mask [][]int, conn Contiguity) (*Lattice, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(mask), len(mask[0])
	present := make([]bool, 0, w*h)
	for _, row := range mask {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for _, v := range row {
			present = append(present, v >= 1)
		}
	}
	return build(w, h, conn, present), nil
}

func build(w, h int, conn Contiguity, present []bool) *Lattice {
	offsets := [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	if conn == Queen {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}
	return &Lattice{Width: w, Height: h, Conn: conn, present: present, offsets: offsets}
}

// InBounds reports whether (x,y) lies within the lattice.
func (l *Lattice) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Index maps (x,y) to its row-major cell ID.
func (l *Lattice) Index(x, y int) int { return y*l.Width + x }

// Coordinate converts a row-major cell ID back to (x,y).
func (l *Lattice) Coordinate(id int) (x, y int) {
	return id % l.Width, id / l.Width
}

// IDs returns the IDs of present cells, ascending.
func (l *Lattice) IDs() []int {
	ids := make([]int, 0, len(l.present))
	for i, ok := range l.present {
		if ok {
			ids = append(ids, i)
		}
	}
	return ids
}

// Adjacency returns id -> ascending neighbor IDs for every present cell.
// A present cell without present neighbors maps to an empty list.
func (l *Lattice) Adjacency() map[int][]int {
	adj := make(map[int][]int, len(l.present))
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			id := l.Index(x, y)
			if !l.present[id] {
				continue
			}
			row := make([]int, 0, len(l.offsets))
			for _, d := range l.offsets {
				nx, ny := x+d[0], y+d[1]
				if !l.InBounds(nx, ny) || !l.present[l.Index(nx, ny)] {
					continue
				}
				row = append(row, l.Index(nx, ny))
			}
			sortInts(row)
			adj[id] = row
		}
	}
	return adj
}

// Centroids returns the cell centers of present cells in IDs() order,
// with unit cells and the origin at the corner of cell 0.
func (l *Lattice) Centroids() [][2]float64 {
	ids := l.IDs()
	out := make([][2]float64, len(ids))
	for i, id := range ids {
		x, y := l.Coordinate(id)
		out[i] = [2]float64{float64(x) + 0.5, float64(y) + 0.5}
	}
	return out
}

// Adjacency is shorthand for New(rows, cols, conn).Adjacency().
func Adjacency(rows, cols int, conn Contiguity) (map[int][]int, error) {
	l, err := New(rows, cols, conn)
	if err != nil {
		return nil, err
	}
	return l.Adjacency(), nil
}

// sortInts is an insertion sort; rows hold at most eight entries.
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}
