package idindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spweights/idindex"
	"github.com/katalvlaran/spweights/weights"
)

func TestIndexBijection(t *testing.T) {
	t.Parallel()

	ix, err := idindex.New([]int{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())

	for i, m := range []int{10, 20, 30} {
		o, err := ix.Order(m)
		require.NoError(t, err)
		assert.Equal(t, i, o)

		back, err := ix.Master(o)
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
	assert.Equal(t, []int{0, 1, 2}, ix.Keys())
	assert.Equal(t, []int{10, 20, 30}, ix.Masters())
}

func TestIndexErrors(t *testing.T) {
	t.Parallel()

	_, err := idindex.New([]int{1, 2, 1})
	assert.ErrorIs(t, err, idindex.ErrDuplicateID)

	ix, err := idindex.New([]int{5})
	require.NoError(t, err)
	_, err = ix.Order(6)
	assert.ErrorIs(t, err, idindex.ErrKeyNotFound)
	_, err = ix.Master(1)
	assert.ErrorIs(t, err, idindex.ErrKeyNotFound)
	_, err = ix.Master(-1)
	assert.ErrorIs(t, err, idindex.ErrKeyNotFound)
}

func TestSequential(t *testing.T) {
	t.Parallel()

	ix := idindex.Sequential(4)
	o, ok := ix.Resolve(3)
	require.True(t, ok)
	assert.Equal(t, 3, o)
	_, ok = ix.Resolve(4)
	assert.False(t, ok)
}

func TestRelabel(t *testing.T) {
	t.Parallel()

	ix, err := idindex.New([]int{1, 2, 3})
	require.NoError(t, err)

	r, err := idindex.Relabel(ix, []int{101, 102, 103})
	require.NoError(t, err)
	got, ok := r.Resolve(2)
	require.True(t, ok)
	assert.Equal(t, 102, got)
	assert.Equal(t, []int{101, 102, 103}, r.Keys())

	_, err = idindex.Relabel(ix, []int{1, 2})
	assert.ErrorIs(t, err, idindex.ErrLabelCount)
	_, err = idindex.Relabel(ix, []int{7, 7, 8})
	assert.ErrorIs(t, err, idindex.ErrDuplicateID)
}

func TestModeFor(t *testing.T) {
	t.Parallel()

	ix := idindex.Sequential(3)
	assert.Equal(t, idindex.Strict, idindex.ModeFor(ix, 3))
	assert.Equal(t, idindex.Strict, idindex.ModeFor(ix, 2))
	assert.Equal(t, idindex.Adjust, idindex.ModeFor(ix, 4))
	assert.Equal(t, idindex.Strict, idindex.ModeFor(nil, 10))
	assert.Equal(t, "adjust", idindex.Adjust.String())
}

func TestTranslateRow(t *testing.T) {
	t.Parallel()

	// File holds 4 observations; the dataset only knows masters 1..3.
	ix, err := idindex.New([]int{1, 2, 3})
	require.NoError(t, err)

	tests := []struct {
		name    string
		nb      []int
		ws      []float64
		mode    idindex.Mode
		rowStd  bool
		rawSum  float64
		wantN   []int
		wantW   []float64
		wantErr bool
	}{
		{
			name: "strict all resolve", nb: []int{2, 3}, ws: []float64{0.5, 0.5},
			mode: idindex.Strict, wantN: []int{1, 2}, wantW: []float64{0.5, 0.5},
		},
		{
			name: "strict miss", nb: []int{2, 4}, ws: []float64{0.5, 0.5},
			mode: idindex.Strict, wantErr: true,
		},
		{
			name: "adjust renormalizes", nb: []int{2, 3, 4}, ws: []float64{0.2, 0.3, 0.5},
			mode: idindex.Adjust, rowStd: true, rawSum: 10,
			wantN: []int{1, 2}, wantW: []float64{0.4, 0.6},
		},
		{
			name: "adjust raw weights kept", nb: []int{2, 4}, ws: []float64{3, 1},
			mode: idindex.Adjust, wantN: []int{1}, wantW: []float64{3},
		},
		{
			name: "adjust drops everything", nb: []int{4}, ws: []float64{1},
			mode: idindex.Adjust, rowStd: true, rawSum: 1,
			wantN: []int{}, wantW: []float64{},
		},
		{
			name: "misaligned", nb: []int{2}, ws: []float64{1, 2},
			mode: idindex.Adjust, wantErr: true,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n, w, err := idindex.TranslateRow(ix, tc.nb, tc.ws, tc.mode, tc.rowStd, tc.rawSum)
			if tc.wantErr {
				assert.ErrorIs(t, err, weights.ErrMalformedWeights)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantN, n)
			assert.InDeltaSlice(t, tc.wantW, w, 1e-12)
		})
	}
}
