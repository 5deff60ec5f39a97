package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/spweights/builder"
	"github.com/katalvlaran/spweights/codec"
	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/lattice"
	"github.com/katalvlaran/spweights/weights"
)

// target is where a built matrix is written.
type target struct {
	out        string
	idField    string
	spatialRef string
	rowStd     bool
}

func (t *target) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "output weights file (.gal, .gwt, .kwt, .swm, .txt)",
			Destination: &t.out,
			Required:    true,
		},
		&cli.StringFlag{Name: "id-field", Usage: "ID field written to the header", Destination: &t.idField},
		&cli.StringFlag{Name: "spatial-ref", Usage: "spatial reference label for .swm", Destination: &t.spatialRef},
		&cli.BoolFlag{Name: "row-standardize", Aliases: []string{"r"}, Usage: "row-standardize the weights", Destination: &t.rowStd},
	}
}

func (t *target) options(c *cli.Command, rt *runtime) []builder.BuilderOption {
	if !c.IsSet("row-standardize") {
		t.rowStd = rt.cfg.Weights.RowStandardize
	}
	var opts []builder.BuilderOption
	if t.rowStd {
		opts = append(opts, builder.WithRowStandardize())
	}
	return opts
}

// write rekeys w by ds when given and encodes it.
func (t *target) write(rt *runtime, w *weights.W, ds *features.Dataset) error {
	idField := t.idField
	if ds != nil {
		var err error
		if w, err = toMasters(w, ds); err != nil {
			return err
		}
		if idField == "" {
			idField = ds.IDField
		}
	}
	if idField == "" {
		idField = rt.cfg.Weights.IDField
	}
	opts := []codec.Option{codec.WithLogger(rt.log)}
	if idField != "" {
		opts = append(opts, codec.WithIDField(idField))
	}
	if t.spatialRef != "" {
		opts = append(opts, codec.WithSpatialRef(t.spatialRef))
	}
	if err := codec.Write(t.out, w, opts...); err != nil {
		return err
	}
	rt.log.Info("weights written", "path", t.out, "n", w.N(), "nonzero", w.NonZero(), "islands", len(w.Islands()))
	rt.printf("%s: %d observations, %d links\n", t.out, w.N(), w.NonZero())
	return nil
}

func contiguityCmd(rt *runtime) *cli.Command {
	var (
		src          source
		dst          target
		rows, cols   int
		conn         string
		order        int
		includeLower bool
	)
	flags := append(src.flags(), dst.flags()...)
	flags = append(flags,
		&cli.IntFlag{Name: "rows", Usage: "lattice rows (instead of a dataset)", Destination: &rows},
		&cli.IntFlag{Name: "cols", Usage: "lattice columns", Destination: &cols},
		&cli.StringFlag{Name: "conn", Usage: "lattice contiguity (rook, queen)", Value: "rook", Destination: &conn},
		&cli.IntFlag{Name: "order", Usage: "contiguity order", Value: 1, Destination: &order},
		&cli.BoolFlag{Name: "include-lower", Usage: "include all orders up to --order", Destination: &includeLower},
	)

	return &cli.Command{
		Name:  "contiguity",
		Usage: "Build contiguity weights from dataset adjacency or a regular lattice",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			opts := dst.options(c, rt)

			var (
				adj map[int][]int
				ds  *features.Dataset
				err error
			)
			if src.given() {
				if ds, err = src.load(ctx, rt); err != nil {
					return err
				}
				if adj, err = ds.OrderAdjacency(); err != nil {
					return err
				}
			} else {
				if rows <= 0 || cols <= 0 {
					return fmt.Errorf("either a dataset or --rows and --cols are required")
				}
				ct, err := lattice.ParseContiguity(conn)
				if err != nil {
					return err
				}
				if adj, err = lattice.Adjacency(rows, cols, ct); err != nil {
					return err
				}
			}

			w, err := builder.Contiguity(adj, order, includeLower, opts...)
			if err != nil {
				return err
			}
			return dst.write(rt, w, ds)
		},
	}
}

func distanceCmd(rt *runtime) *cli.Command {
	var (
		src       source
		dst       target
		threshold float64
		knn       int
		inverse   float64
	)
	flags := append(src.flags(), dst.flags()...)
	flags = append(flags,
		&cli.FloatFlag{Name: "threshold", Usage: "distance band (default: smallest band leaving no island)", Destination: &threshold},
		&cli.IntFlag{Name: "knn", Aliases: []string{"k"}, Usage: "use the k nearest neighbors instead of a band", Destination: &knn},
		&cli.FloatFlag{Name: "inverse", Usage: "inverse distance weights with this power", Destination: &inverse},
	)

	return &cli.Command{
		Name:  "distance",
		Usage: "Build distance band or k-nearest-neighbor weights from dataset centroids",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			opts := dst.options(c, rt)
			ds, err := src.load(ctx, rt)
			if err != nil {
				return err
			}
			pts, err := ds.Points()
			if err != nil {
				return err
			}

			var w *weights.W
			if c.IsSet("knn") {
				w, err = builder.KNN(pts, knn, opts...)
			} else {
				if c.IsSet("inverse") {
					if inverse <= 0 {
						return fmt.Errorf("--inverse must be positive, got %v", inverse)
					}
					opts = append(opts, builder.WithInverseDistance(inverse))
				}
				if !c.IsSet("threshold") {
					if threshold, err = builder.ThresholdForConnectivity(pts); err != nil {
						return err
					}
					rt.log.Info("distance band chosen for connectivity", "threshold", threshold)
				}
				w, err = builder.DistanceBand(pts, threshold, opts...)
			}
			if err != nil {
				return err
			}
			return dst.write(rt, w, ds)
		},
	}
}

func kernelCmd(rt *runtime) *cli.Command {
	var (
		src       source
		dst       target
		function  string
		k         int
		bandwidth float64
		adaptive  bool
		diagonal  bool
	)
	flags := append(src.flags(), dst.flags()...)
	flags = append(flags,
		&cli.StringFlag{Name: "function", Usage: "kernel function (uniform, triangular, quadratic, quartic, gaussian)", Destination: &function},
		&cli.IntFlag{Name: "k", Usage: "neighbors used to derive the bandwidth", Destination: &k},
		&cli.FloatFlag{Name: "bandwidth", Usage: "fixed bandwidth", Destination: &bandwidth},
		&cli.BoolFlag{Name: "adaptive", Usage: "per-point bandwidth from the k-th neighbor", Destination: &adaptive},
		&cli.BoolFlag{Name: "diagonal", Usage: "include a unit diagonal", Destination: &diagonal},
	)

	return &cli.Command{
		Name:  "kernel",
		Usage: "Build kernel weights from dataset centroids",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !c.IsSet("function") {
				function = rt.cfg.Kernel.Function
			}
			if !c.IsSet("k") {
				k = rt.cfg.Kernel.K
			}
			fn, err := builder.ParseKernel(function)
			if err != nil {
				return err
			}

			opts := dst.options(c, rt)
			switch {
			case c.IsSet("bandwidth") && adaptive:
				return fmt.Errorf("--bandwidth and --adaptive are exclusive")
			case c.IsSet("bandwidth"):
				if bandwidth <= 0 {
					return fmt.Errorf("--bandwidth must be positive, got %v", bandwidth)
				}
				opts = append(opts, builder.WithFixedBandwidth(bandwidth))
			case adaptive:
				opts = append(opts, builder.WithAdaptiveBandwidth())
			}
			if diagonal {
				opts = append(opts, builder.WithDiagonal())
			}

			ds, err := src.load(ctx, rt)
			if err != nil {
				return err
			}
			pts, err := ds.Points()
			if err != nil {
				return err
			}
			w, err := builder.Kernel(pts, fn, k, opts...)
			if err != nil {
				return err
			}
			return dst.write(rt, w, ds)
		},
	}
}
