package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/spweights/codec"
	"github.com/katalvlaran/spweights/converter"
)

func convertCmd(rt *runtime) *cli.Command {
	var (
		src        source
		in, out    string
		idField    string
		spatialRef string
	)
	flags := append(src.flags(),
		&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "source weights file", Destination: &in, Required: true},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "target weights file", Destination: &out, Required: true},
		&cli.StringFlag{Name: "id-field", Usage: "ID field of the target", Destination: &idField},
		&cli.StringFlag{Name: "spatial-ref", Usage: "spatial reference label for .swm", Destination: &spatialRef},
	)

	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a weights file between GAL, GWT, KWT, SWM and text",
		Description: "With a feature dataset, file IDs are checked against the dataset IDs and\n" +
			"unknown observations are dropped (adjust mode). A legacy GAL file is\n" +
			"keyed by position and relabeled with the dataset IDs.",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			req := converter.Request{Src: in, Dst: out, IDField: idField, SpatialRef: spatialRef}
			if src.given() {
				ds, err := src.load(ctx, rt)
				if err != nil {
					return err
				}
				if req.IDField == "" {
					req.IDField = ds.IDField
				}
				if h, err := codec.ReadHeader(in); err == nil && h.Format == codec.FormatGAL && h.LegacyGAL {
					req.Labels = ds.IDs
				} else {
					req.Keys = ds.IDs
				}
			}

			res, err := converter.Convert(ctx, req, converter.WithLogger(rt.log))
			if err != nil {
				return err
			}
			if res.Copied {
				rt.printf("%s -> %s: copied\n", in, out)
				return nil
			}
			rt.printf("%s -> %s: %d observations, %s mode, id field %q\n", in, out, res.N, res.Mode, res.IDField)
			return nil
		},
	}
}
