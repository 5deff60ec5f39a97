package builder_test

import (
	"fmt"

	"github.com/katalvlaran/spweights/builder"
	"github.com/katalvlaran/spweights/lattice"
)

// ExampleContiguity builds rook contiguity on a 3×3 lattice.
func ExampleContiguity() {
	adj, _ := lattice.Adjacency(3, 3, lattice.Rook)
	w, _ := builder.Contiguity(adj, 1, false)

	nb, _ := w.Neighbors(4)
	fmt.Println(w.N(), nb)
	// Output: 9 [1 3 5 7]
}

// ExampleKNN links each point to its nearest neighbor.
func ExampleKNN() {
	pts, _ := builder.NewPoints([][]float64{{0, 0}, {1, 0}, {5, 0}})
	w, _ := builder.KNN(pts, 1)

	for _, id := range w.IDs() {
		nb, _ := w.Neighbors(id)
		fmt.Println(id, nb)
	}
	// Output:
	// 0 [1]
	// 1 [0]
	// 2 [1]
}

// ExampleKernel shows the unit diagonal used for HAC estimation.
func ExampleKernel() {
	pts, _ := builder.NewPoints([][]float64{{0, 0}, {1, 0}, {3, 0}})
	w, _ := builder.Kernel(pts, builder.Triangular, 1, builder.WithDiagonal())

	nb, ws := w.Row(0)
	fmt.Println(nb, len(ws), ws[0])
	// Output: [0 1] 2 1
}
