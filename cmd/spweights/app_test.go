package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spweights/automodel"
	"github.com/katalvlaran/spweights/codec"
	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/lattice"
	"github.com/katalvlaran/spweights/weights"
)

// run executes the CLI with an isolated config file and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(dir, "spweights.yaml")
	if _, err := os.Stat(cfg); err != nil {
		require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\n"), 0o644))
	}
	var out bytes.Buffer
	argv := append([]string{"spweights", "--config", cfg}, args...)
	err := newApp(&out).Run(context.Background(), argv)
	return out.String(), err
}

func firstLines(t *testing.T, path string, n int) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for len(lines) < n && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// grid writes a 5×5 dataset keyed 0..24 with centroids and one regressor.
func grid(t *testing.T, dir string) string {
	t.Helper()
	l, err := lattice.New(5, 5, lattice.Rook)
	require.NoError(t, err)
	ids := l.IDs()
	ds := features.NewDataset("grid", "CELL", ids)
	ds.Coords = l.Centroids()
	x := make([]float64, len(ids))
	y := make([]float64, len(ids))
	for i := range ids {
		x[i] = float64((i*7)%11) + float64(i)/3
		y[i] = 1 + 2*x[i] + float64(i%3)
	}
	require.NoError(t, ds.AddField("X", x))
	require.NoError(t, ds.AddField("Y", y))
	path := filepath.Join(dir, "grid.json")
	require.NoError(t, features.SaveJSONFile(path, ds))
	return path
}

func TestContiguityLatticeGAL(t *testing.T) {
	dir := t.TempDir()
	gal := filepath.Join(dir, "rook.gal")

	out, err := run(t, dir, "contiguity", "--rows", "5", "--cols", "5", "--out", gal)
	require.NoError(t, err)
	assert.Contains(t, out, "25 observations")

	assert.Equal(t, []string{"25", "0 2", "1 5"}, firstLines(t, gal, 3))
}

func TestConvertRoundTripThroughSWM(t *testing.T) {
	dir := t.TempDir()
	data := grid(t, dir)
	gal := filepath.Join(dir, "rook.gal")
	swm := filepath.Join(dir, "rook.swm")
	back := filepath.Join(dir, "back.gal")

	_, err := run(t, dir, "contiguity", "--rows", "5", "--cols", "5", "--out", gal)
	require.NoError(t, err)

	// A legacy GAL needs a dataset to supply the ID field.
	_, err = run(t, dir, "convert", "--in", gal, "--out", swm)
	assert.ErrorIs(t, err, codec.ErrConfiguration)

	_, err = run(t, dir, "convert", "--features", data, "--in", gal, "--out", swm, "--spatial-ref", "GRID")
	require.NoError(t, err)
	_, err = run(t, dir, "convert", "--in", swm, "--out", back)
	require.NoError(t, err)

	a, err := codec.Read(gal)
	require.NoError(t, err)
	b, err := codec.Read(back)
	require.NoError(t, err)
	assert.True(t, weights.EqualNeighbors(a, b))
	assert.Equal(t, "CELL", b.IDField())
	assert.Equal(t, "0 25 CELL UNKNOWN", firstLines(t, back, 1)[0])
}

func TestConvertWithDatasetKeepsIDs(t *testing.T) {
	dir := t.TempDir()
	ds := features.NewDataset("tracts", "FIPS", []int{101, 102, 103})
	require.NoError(t, ds.AddField("POP", []float64{1, 2, 3}))
	data := filepath.Join(dir, "tracts.json")
	require.NoError(t, features.SaveJSONFile(data, ds))

	gwt := filepath.Join(dir, "tracts.gwt")
	require.NoError(t, os.WriteFile(gwt, []byte("0 3 FIPS UNKNOWN\n101 102 1\n102 101 1\n103 101 1\n"), 0o644))
	swm := filepath.Join(dir, "tracts.swm")

	_, err := run(t, dir, "convert", "--features", data, "--in", gwt, "--out", swm)
	require.NoError(t, err)

	w, err := codec.Read(swm)
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 103}, w.IDs())
	assert.Equal(t, "FIPS", w.IDField())
	nb, _ := w.Neighbors(103)
	assert.Equal(t, []int{101}, nb)
}

func TestAutomodelUsageNamesBuiltinModels(t *testing.T) {
	cmd := automodelCmd(&runtime{})
	assert.Contains(t, cmd.Description, "spatial error or combined GMM models")
	assert.Contains(t, cmd.Description, "GMM_HAC")
}

func TestInspectJSON(t *testing.T) {
	dir := t.TempDir()
	gal := filepath.Join(dir, "queen.gal")
	_, err := run(t, dir, "contiguity", "--rows", "3", "--cols", "3", "--conn", "queen", "--out", gal)
	require.NoError(t, err)

	out, err := run(t, dir, "inspect", "--in", gal, "--json")
	require.NoError(t, err)
	var r inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 9, r.N)
	assert.Equal(t, 3, r.MinNeighbors)
	assert.Equal(t, 8, r.MaxNeighbors)
	assert.Equal(t, 40, r.Links)
	assert.Equal(t, 1, r.Components)
	assert.Empty(t, r.Islands)
}

func TestDistanceAndKernel(t *testing.T) {
	dir := t.TempDir()
	data := grid(t, dir)

	gwt := filepath.Join(dir, "band.gwt")
	_, err := run(t, dir, "distance", "--features", data, "--out", gwt)
	require.NoError(t, err)
	band, err := codec.Read(gwt)
	require.NoError(t, err)
	assert.Equal(t, "CELL", band.IDField())
	assert.Empty(t, band.Islands())

	kwt := filepath.Join(dir, "kernel.kwt")
	_, err = run(t, dir, "kernel", "--features", data, "--function", "triangular", "--k", "3", "--diagonal", "--out", kwt)
	require.NoError(t, err)
	kw, err := codec.Read(kwt)
	require.NoError(t, err)
	assert.Equal(t, 25, kw.N())

	_, err = run(t, dir, "kernel", "--features", data, "--function", "cosine", "--out", kwt)
	assert.Error(t, err)
}

func TestAutomodelCommand(t *testing.T) {
	dir := t.TempDir()
	data := grid(t, dir)
	gal := filepath.Join(dir, "rook.gal")
	db := filepath.Join(dir, "runs.db")
	_, err := run(t, dir, "contiguity", "--rows", "5", "--cols", "5", "--out", gal)
	require.NoError(t, err)

	out, err := run(t, dir, "automodel", "--features", data, "--weights", gal,
		"--y", "Y", "--x", "X", "--x", "CELL", "-r", "--json", "--out-store", db)
	if err != nil {
		// Spatial error and combo estimators are not built in.
		assert.ErrorIs(t, err, automodel.ErrEngineFailure)
		return
	}
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "label")

	st, err := features.OpenStore(context.Background(), db)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.Runs(context.Background(), "grid")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, doc["run_id"], runs[0].ID)
}
