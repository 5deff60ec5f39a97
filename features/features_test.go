package features_test

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spweights/features"
)

const tracts = `{
  "name": "tracts",
  "id_field": "TRACT",
  "records": [
    {"id": 10, "x": 0, "y": 0, "values": {"INC": 1.5, "CRIME": 3}, "neighbors": [20]},
    {"id": 20, "x": 1, "y": 0, "values": {"INC": 2.5, "CRIME": 4}, "neighbors": [10, 30]},
    {"id": 30, "x": 2, "y": 0, "values": {"INC": 3.5, "CRIME": 5}, "neighbors": [20]}
  ]
}`

func decode(t *testing.T) *features.Dataset {
	t.Helper()
	ds, err := features.DecodeJSON(strings.NewReader(tracts))
	require.NoError(t, err)
	return ds
}

func openStore(t *testing.T) *features.Store {
	t.Helper()
	s, err := features.OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	ds := decode(t)
	assert.Equal(t, 3, ds.N())
	assert.Equal(t, "TRACT", ds.IDField)
	assert.Equal(t, []int{10, 20, 30}, ds.IDs)
	assert.Equal(t, []string{"CRIME", "INC"}, ds.FieldNames())
	assert.Equal(t, [2]float64{1, 0}, ds.Coords[1])

	inc, err := ds.Field("INC")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, inc)

	rows, err := ds.Rows([]string{"INC", "CRIME"})
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 4}, rows[1])

	_, err = ds.Field("POP")
	assert.ErrorIs(t, err, features.ErrUnknownField)
}

func TestDecodeJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", `{"records": [`},
		{"duplicate id", `{"records": [{"id": 1, "values": {}}, {"id": 1, "values": {}}]}`},
		{"missing field", `{"fields": ["A"], "records": [{"id": 1, "values": {"A": 1}}, {"id": 2, "values": {}}]}`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := features.DecodeJSON(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, features.ErrInvalidDataset)
		})
	}
}

func TestPartialCoordinatesDropped(t *testing.T) {
	t.Parallel()

	ds, err := features.DecodeJSON(strings.NewReader(
		`{"records": [{"id": 1, "x": 0, "y": 0, "values": {}}, {"id": 2, "values": {}}]}`))
	require.NoError(t, err)
	assert.Nil(t, ds.Coords)
	assert.Nil(t, ds.Adjacency)

	_, err = ds.Points()
	assert.ErrorIs(t, err, features.ErrNoGeometry)
	_, err = ds.OrderAdjacency()
	assert.ErrorIs(t, err, features.ErrNoGeometry)
}

func TestOrderAdjacency(t *testing.T) {
	t.Parallel()

	ds := decode(t)
	adj, err := ds.OrderAdjacency()
	require.NoError(t, err)
	assert.Equal(t, map[int][]int{0: {1}, 1: {0, 2}, 2: {1}}, adj)

	ds.Adjacency[30] = []int{99}
	_, err = ds.OrderAdjacency()
	assert.ErrorIs(t, err, features.ErrInvalidDataset)
}

func TestPoints(t *testing.T) {
	t.Parallel()

	pts, err := decode(t).Points()
	require.NoError(t, err)
	assert.Equal(t, 3, pts.Len())
}

func TestJSONFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tracts.json")
	ds := decode(t)
	require.NoError(t, features.SaveJSONFile(path, ds))

	back, err := features.LoadJSONFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds.IDs, back.IDs)
	assert.Equal(t, ds.Coords, back.Coords)
	assert.Equal(t, ds.Adjacency, back.Adjacency)
	assert.Equal(t, ds.FieldNames(), back.FieldNames())
}

func TestAddFieldLength(t *testing.T) {
	t.Parallel()

	ds := features.NewDataset("d", "", []int{1, 2})
	assert.ErrorIs(t, ds.AddField("A", []float64{1}), features.ErrInvalidDataset)
	require.NoError(t, ds.AddField("A", []float64{1, 2}))
	require.NoError(t, ds.AddField("A", []float64{3, 4}))
	assert.Equal(t, []string{"A"}, ds.FieldNames())
}

func TestStoreSaveLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)
	ds := decode(t)
	require.NoError(t, s.Save(ctx, ds))

	back, err := s.Load(ctx, "tracts")
	require.NoError(t, err)
	assert.Equal(t, "TRACT", back.IDField)
	assert.Equal(t, ds.IDs, back.IDs)
	assert.Equal(t, ds.Coords, back.Coords)
	assert.Equal(t, ds.Adjacency, back.Adjacency)
	assert.Equal(t, ds.FieldNames(), back.FieldNames())
	inc, err := back.Field("INC")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, inc)

	// Saving again replaces rather than duplicates.
	require.NoError(t, s.Save(ctx, ds))
	names, err := s.Datasets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tracts"}, names)

	_, err = s.Load(ctx, "nope")
	assert.ErrorIs(t, err, features.ErrNotFound)
}

func TestStoreWriteFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.Save(ctx, decode(t)))

	err := s.WriteFields(ctx, "tracts", []features.Column{
		{Name: "Predy", Alias: "Predicted CRIME", Values: []float64{3.1, 3.9, 5.2}},
		{Name: "e_Pred", Values: []float64{math.NaN(), 1, 2}},
	})
	require.NoError(t, err)

	back, err := s.Load(ctx, "tracts")
	require.NoError(t, err)
	assert.Equal(t, []string{"CRIME", "INC", "Predy", "e_Pred"}, back.FieldNames())
	ep, err := back.Field("e_Pred")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(ep[0]))
	assert.Equal(t, []float64{1, 2}, ep[1:])

	// Overwrite keeps the field position.
	require.NoError(t, s.WriteFields(ctx, "tracts", []features.Column{{Name: "Predy", Values: []float64{0, 0, 0}}}))
	back, err = s.Load(ctx, "tracts")
	require.NoError(t, err)
	assert.Equal(t, []string{"CRIME", "INC", "Predy", "e_Pred"}, back.FieldNames())

	err = s.WriteFields(ctx, "tracts", []features.Column{{Name: "Bad", Values: []float64{1}}})
	assert.ErrorIs(t, err, features.ErrInvalidDataset)
	err = s.WriteFields(ctx, "missing", nil)
	assert.ErrorIs(t, err, features.ErrNotFound)
}

func TestStoreRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.SaveRun(ctx, features.Run{ID: "r1", Dataset: "tracts", Label: "No Space - Homoskedastic"}))
	require.NoError(t, s.SaveRun(ctx, features.Run{ID: "r2", Dataset: "tracts", Report: []byte(`{"label":"x"}`)}))

	runs, err := s.Runs(ctx, "tracts")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{"r1", "r2"}, ids)

	assert.ErrorIs(t, s.SaveRun(ctx, features.Run{}), features.ErrInvalidDataset)
	assert.Error(t, s.SaveRun(ctx, features.Run{ID: "r1", Dataset: "tracts"}))
}
