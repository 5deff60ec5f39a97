package main

import (
	"context"
	"sort"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/spweights/codec"
)

type inspectReport struct {
	Path            string  `json:"path"`
	Format          string  `json:"format"`
	DeclaredN       int     `json:"declared_n"`
	N               int     `json:"n"`
	IDField         string  `json:"id_field"`
	LegacyGAL       bool    `json:"legacy_gal,omitempty"`
	SpatialRef      string  `json:"spatial_ref,omitempty"`
	RowStandardized bool    `json:"row_standardized"`
	Links           int     `json:"links"`
	MinNeighbors    int     `json:"min_neighbors"`
	MaxNeighbors    int     `json:"max_neighbors"`
	MeanNeighbors   float64 `json:"mean_neighbors"`
	Islands         []int   `json:"islands"`
	Components      int     `json:"components"`
	Dangling        []int   `json:"dangling,omitempty"`
}

func inspectCmd(rt *runtime) *cli.Command {
	var (
		path   string
		asJSON bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Summarize a weights file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "weights file", Destination: &path, Required: true},
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if !c.IsSet("json") {
				asJSON = rt.cfg.Output.JSON
			}
			w, h, err := codec.ReadWithHeader(path, codec.WithLogger(rt.log))
			if err != nil {
				return err
			}

			r := inspectReport{
				Path:            path,
				Format:          h.Format.String(),
				DeclaredN:       h.N,
				N:               w.N(),
				IDField:         w.IDField(),
				LegacyGAL:       h.LegacyGAL,
				SpatialRef:      h.SpatialRef,
				RowStandardized: h.RowStandardized || w.RowStandardized(),
				Links:           w.NonZero(),
				Islands:         w.Islands(),
				Components:      len(w.Components()),
				Dangling:        w.Dangling(),
			}
			cards := make([]int, 0, w.N())
			for _, card := range w.Cardinalities() {
				cards = append(cards, card)
			}
			if len(cards) > 0 {
				sort.Ints(cards)
				r.MinNeighbors, r.MaxNeighbors = cards[0], cards[len(cards)-1]
				r.MeanNeighbors = float64(r.Links) / float64(len(cards))
			}

			if asJSON {
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				rt.printf("%s\n", data)
				return nil
			}
			rt.printf("file:        %s (%s)\n", r.Path, r.Format)
			rt.printf("n:           %d (declared %d)\n", r.N, r.DeclaredN)
			rt.printf("id field:    %s\n", orUnknown(r.IDField))
			if r.SpatialRef != "" {
				rt.printf("spatial ref: %s\n", r.SpatialRef)
			}
			rt.printf("row std:     %t\n", r.RowStandardized)
			rt.printf("links:       %d\n", r.Links)
			rt.printf("neighbors:   min %d, max %d, mean %.3f\n", r.MinNeighbors, r.MaxNeighbors, r.MeanNeighbors)
			rt.printf("islands:     %d\n", len(r.Islands))
			rt.printf("components:  %d\n", r.Components)
			if len(r.Dangling) > 0 {
				rt.printf("dangling:    %v\n", r.Dangling)
			}
			return nil
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}
