package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spweights/lattice"
)

func TestNewErrors(t *testing.T) {
	cases := []struct {
		name string
		mask [][]int
		err  error
	}{
		{"EmptyRows", [][]int{}, lattice.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, lattice.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 1}, {1}}, lattice.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lattice.FromMask(tc.mask, lattice.Rook)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	_, err := lattice.New(0, 3, lattice.Queen)
	assert.ErrorIs(t, err, lattice.ErrEmptyGrid)
}

func TestRookAdjacency5x5(t *testing.T) {
	adj, err := lattice.Adjacency(5, 5, lattice.Rook)
	require.NoError(t, err)
	require.Len(t, adj, 25)

	assert.Equal(t, []int{1, 5}, adj[0])
	assert.Equal(t, []int{7, 11, 13, 17}, adj[12])
	assert.Equal(t, []int{19, 23}, adj[24])
	assert.Equal(t, []int{0, 2, 6}, adj[1])
}

func TestQueenAdjacency(t *testing.T) {
	adj, err := lattice.Adjacency(3, 3, lattice.Queen)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, adj[0])
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, adj[4])
}

func TestMaskedLatticeKeepsIsolates(t *testing.T) {
	l, err := lattice.FromMask([][]int{
		{1, 1, 0},
		{0, 0, 0},
		{0, 0, 1},
	}, lattice.Rook)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 8}, l.IDs())
	adj := l.Adjacency()
	assert.Equal(t, []int{1}, adj[0])
	assert.Equal(t, []int{0}, adj[1])
	nb, ok := adj[8]
	require.True(t, ok)
	assert.Empty(t, nb)
}

func TestCoordinatesAndCentroids(t *testing.T) {
	l, err := lattice.New(2, 3, lattice.Rook)
	require.NoError(t, err)

	x, y := l.Coordinate(4)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, 4, l.Index(1, 1))
	assert.False(t, l.InBounds(3, 0))

	c := l.Centroids()
	require.Len(t, c, 6)
	assert.Equal(t, [2]float64{0.5, 0.5}, c[0])
	assert.Equal(t, [2]float64{2.5, 1.5}, c[5])
}

func TestParseContiguity(t *testing.T) {
	c, err := lattice.ParseContiguity(" Queen ")
	require.NoError(t, err)
	assert.Equal(t, lattice.Queen, c)
	assert.Equal(t, "rook", lattice.Rook.String())

	_, err = lattice.ParseContiguity("bishop")
	assert.Error(t, err)
}
