package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/weights"
)

// source selects a feature dataset from a JSON file or a SQLite store.
type source struct {
	features string
	store    string
	dataset  string
}

func (s *source) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "features",
			Aliases:     []string{"f"},
			Usage:       "feature dataset JSON file",
			Destination: &s.features,
		},
		&cli.StringFlag{
			Name:        "store",
			Usage:       "SQLite feature store",
			Destination: &s.store,
		},
		&cli.StringFlag{
			Name:        "dataset",
			Usage:       "dataset name inside --store",
			Destination: &s.dataset,
		},
	}
}

func (s *source) given() bool { return s.features != "" || s.store != "" }

func (s *source) load(ctx context.Context, rt *runtime) (*features.Dataset, error) {
	switch {
	case s.features != "" && s.store != "":
		return nil, fmt.Errorf("use either --features or --store, not both")
	case s.features != "":
		ds, err := features.LoadJSONFile(s.features)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", s.features, err)
		}
		return ds, nil
	case s.store != "":
		if s.dataset == "" {
			return nil, fmt.Errorf("--dataset is required with --store")
		}
		st, err := features.OpenStore(ctx, s.store, features.WithStoreLogger(rt.log))
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Load(ctx, s.dataset)
	default:
		return nil, fmt.Errorf("a feature dataset is required (--features or --store)")
	}
}

// toMasters rekeys an order-indexed W with the dataset IDs.
func toMasters(w *weights.W, ds *features.Dataset) (*weights.W, error) {
	return w.Remap(func(o int) (int, bool) {
		if o < 0 || o >= len(ds.IDs) {
			return 0, false
		}
		return ds.IDs[o], true
	})
}
