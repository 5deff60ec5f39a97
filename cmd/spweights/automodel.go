package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/spweights/automodel"
	"github.com/katalvlaran/spweights/codec"
	"github.com/katalvlaran/spweights/features"
	"github.com/katalvlaran/spweights/regress"
)

func automodelCmd(rt *runtime) *cli.Command {
	var (
		src         source
		weightsPath string
		depVar      string
		indVars     []string
		pValue      float64
		modelType   string
		kernel      string
		kernelK     int
		rowStd      bool
		asJSON      bool
		outFeatures string
		storeOut    string
	)
	flags := append(src.flags(),
		&cli.StringFlag{Name: "weights", Aliases: []string{"w"}, Usage: "spatial weights file keyed by dataset IDs", Destination: &weightsPath, Required: true},
		&cli.StringFlag{Name: "y", Usage: "dependent variable", Destination: &depVar, Required: true},
		&cli.StringSliceFlag{Name: "x", Usage: "independent variable (repeatable)", Destination: &indVars, Required: true},
		&cli.FloatFlag{Name: "p", Usage: "significance level", Destination: &pValue},
		&cli.StringFlag{Name: "model-type", Usage: "model for MIXED dependence: GMM_COMBO or GMM_HAC (the built-in engine supports GMM_HAC only)", Destination: &modelType},
		&cli.StringFlag{Name: "kernel", Usage: "HAC kernel function", Destination: &kernel},
		&cli.IntFlag{Name: "kernel-k", Usage: "HAC kernel neighbors", Destination: &kernelK},
		&cli.BoolFlag{Name: "row-standardize", Aliases: []string{"r"}, Usage: "row-standardize the weights before fitting", Destination: &rowStd},
		&cli.BoolFlag{Name: "json", Usage: "print the decision report as JSON", Destination: &asJSON},
		&cli.StringFlag{Name: "out-features", Usage: "write the dataset with output fields to this JSON file", Destination: &outFeatures},
		&cli.StringFlag{Name: "out-store", Usage: "SQLite store receiving output fields and the run report", Destination: &storeOut},
	)

	return &cli.Command{
		Name:  "automodel",
		Usage: "Choose between OLS, spatial lag, spatial error and combined models",
		Description: "The built-in engine fits OLS and the spatial lag model (classical, White or\n" +
			"HAC errors). It cannot fit the spatial error or combined GMM models, so a\n" +
			"dataset classified ERROR fails, and so does MIXED unless --model-type\n" +
			"GMM_HAC selects the lag model with HAC errors instead of GMM_COMBO.",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := rt.cfg
			if !c.IsSet("p") {
				pValue = cfg.Significance
			}
			if !c.IsSet("model-type") {
				modelType = cfg.ModelType
			}
			if !c.IsSet("kernel") {
				kernel = cfg.Kernel.Function
			}
			if !c.IsSet("kernel-k") {
				kernelK = cfg.Kernel.K
			}
			if !c.IsSet("row-standardize") {
				rowStd = cfg.Weights.RowStandardize
			}
			if !c.IsSet("json") {
				asJSON = cfg.Output.JSON
			}
			if !c.IsSet("out-store") {
				storeOut = cfg.Output.Store
			}
			mt, err := automodel.ParseModelType(modelType)
			if err != nil {
				return err
			}

			ds, err := src.load(ctx, rt)
			if err != nil {
				return err
			}
			if ds.Name == "" && src.features != "" {
				ds.Name = strings.TrimSuffix(filepath.Base(src.features), filepath.Ext(src.features))
			}
			in, err := automodel.FromDataset(ds, depVar, indVars, rt.log)
			if err != nil {
				return err
			}
			in.P, in.Combo = pValue, mt.Combo()

			ix, err := ds.Index()
			if err != nil {
				return err
			}
			if in.W, err = codec.Read(weightsPath, codec.WithResolver(ix), codec.WithLogger(rt.log)); err != nil {
				return err
			}
			if rowStd {
				in.W = in.W.RowStandardize()
			}
			if !in.Combo {
				pts, err := ds.Points()
				if err != nil {
					return fmt.Errorf("HAC kernel weights need centroids: %w", err)
				}
				if in.GWK, err = automodel.KernelWeights(pts, kernel, kernelK); err != nil {
					return err
				}
			}

			engine := regress.NewBuiltin(regress.WithLogger(rt.log))
			d, err := automodel.Select(ctx, engine, in, automodel.WithLogger(rt.log), automodel.WithRunID(rt.runID))
			if err != nil {
				return err
			}

			report, err := d.ReportJSON()
			if err != nil {
				return err
			}
			if asJSON {
				rt.printf("%s\n", report)
			} else {
				if d.Final != d.Base {
					rt.printf("OLS diagnostics:\n%s\n", d.Base.Summary)
				}
				rt.printf("Final model: %s\n%s\n", d.Label, d.Final.Summary)
			}

			if outFeatures != "" {
				for _, col := range d.Fields {
					if err := ds.AddField(col.Name, col.Values); err != nil {
						return err
					}
				}
				if err := features.SaveJSONFile(outFeatures, ds); err != nil {
					return err
				}
				rt.log.Info("output fields written", "path", outFeatures, "fields", len(d.Fields))
			}
			if storeOut != "" {
				return saveRun(ctx, rt, storeOut, src.store != storeOut, ds, d, report)
			}
			return nil
		},
	}
}

// saveRun writes the output fields and the report to the store at path,
// saving the dataset there first when it came from elsewhere.
func saveRun(ctx context.Context, rt *runtime, path string, copyDataset bool, ds *features.Dataset, d *automodel.Decision, report []byte) error {
	st, err := features.OpenStore(ctx, path, features.WithStoreLogger(rt.log))
	if err != nil {
		return err
	}
	defer st.Close()

	if copyDataset {
		if err := st.Save(ctx, ds); err != nil {
			return err
		}
	}
	if err := st.WriteFields(ctx, ds.Name, d.Fields); err != nil {
		return err
	}
	return st.SaveRun(ctx, features.Run{ID: d.RunID, Dataset: ds.Name, Label: string(d.Label), Report: report})
}
