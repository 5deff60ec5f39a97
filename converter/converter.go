// SPDX-License-Identifier: MIT

package converter

import (
	"context"
	"os"

	"github.com/katalvlaran/spweights/codec"
	"github.com/katalvlaran/spweights/idindex"
	"github.com/katalvlaran/spweights/logger"
)

// Request describes one conversion.
type Request struct {
	Src string
	Dst string

	// Keys are the file IDs known to the feature set, in order position
	// order. Nil with Labels set means the file is keyed 0..len(Labels)-1.
	Keys []int

	// Labels holds the target ID for each key. Nil keeps the keys, so the
	// output is keyed by the same master IDs as the source.
	Labels []int

	// IDField names the target ID column. It overrides the source field in
	// the output header and stands in for it when a GAL source has none.
	IDField string

	// SpatialRef labels SWM output.
	SpatialRef string
}

func (r Request) remaps() bool { return len(r.Keys) > 0 || len(r.Labels) > 0 }

// Result reports what Convert did.
type Result struct {
	Copied  bool
	Source  codec.Header
	Target  codec.Format
	N       int
	IDField string
	Mode    idindex.Mode
}

// Convert reads req.Src, translates its IDs when asked, and writes req.Dst.
//
// Every precondition is checked before the target is touched: both
// extensions must be known, the source non-empty, the ID field requirement
// met and the key/label columns consistent.
//
// Errors: codec.ErrConfiguration (and ErrMissingIDField, ErrEmptySource
// which wrap it), idindex.ErrDuplicateID / ErrLabelCount, codec read errors,
// or ctx.Err().
func Convert(ctx context.Context, req Request, opts ...Option) (Result, error) {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	srcFormat, err := codec.DetectFormat(req.Src)
	if err != nil {
		return Result{}, convertErrorf(err, "source")
	}
	dstFormat, err := codec.DetectFormat(req.Dst)
	if err != nil {
		return Result{}, convertErrorf(err, "target")
	}
	if fi, err := os.Stat(req.Src); err != nil || fi.Size() == 0 {
		return Result{}, convertErrorf(ErrEmptySource, "%s", req.Src)
	}

	if srcFormat == dstFormat && !req.remaps() && req.IDField == "" {
		o.log.Info("copying weights file", "src", req.Src, "dst", req.Dst, "format", srcFormat.String())
		if err := codec.CopyFile(req.Src, req.Dst); err != nil {
			return Result{}, convertErrorf(err, "copy")
		}
		return Result{Copied: true, Target: dstFormat, Source: codec.Header{Format: srcFormat, N: -1}}, nil
	}

	h, err := codec.ReadHeader(req.Src)
	if err != nil {
		return Result{}, convertErrorf(err, "header")
	}
	if err := requireIDField(h, req); err != nil {
		return Result{}, err
	}

	resolver, err := resolverFor(req)
	if err != nil {
		return Result{}, convertErrorf(err, "index")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	readOpts := []codec.Option{codec.WithLogger(o.log)}
	mode := idindex.Strict
	if resolver != nil {
		readOpts = append(readOpts, codec.WithResolver(resolver))
		mode = idindex.ModeFor(resolver, h.N)
	}
	w, _, err := codec.ReadWithHeader(req.Src, readOpts...)
	if err != nil {
		return Result{}, convertErrorf(err, "read")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	field := w.IDField()
	if req.IDField != "" {
		field = req.IDField
	}
	writeOpts := []codec.Option{codec.WithLogger(o.log), codec.WithIDField(field)}
	if req.SpatialRef != "" {
		writeOpts = append(writeOpts, codec.WithSpatialRef(req.SpatialRef))
	}
	if err := codec.Write(req.Dst, w, writeOpts...); err != nil {
		return Result{}, convertErrorf(err, "write")
	}
	o.log.Info("weights converted",
		"src", req.Src, "dst", req.Dst, "from", srcFormat.String(), "to", dstFormat.String(),
		"n", w.N(), "mode", mode.String())

	return Result{Source: h, Target: dstFormat, N: w.N(), IDField: field, Mode: mode}, nil
}

// requireIDField enforces the ID field rules: SWM and headed text formats
// need one in the source; GAL and headerless text may instead rely on a
// feature-level index plus a target field name.
func requireIDField(h codec.Header, req Request) error {
	if h.IDField != "" {
		return nil
	}
	switch h.Format {
	case codec.FormatGWT, codec.FormatKWT, codec.FormatSWM:
		return convertErrorf(ErrMissingIDField, "%s declares no ID field", req.Src)
	default:
		if !req.remaps() || req.IDField == "" {
			return convertErrorf(ErrMissingIDField,
				"%s declares no ID field; supply the feature index and an ID field", req.Src)
		}
		return nil
	}
}

func resolverFor(req Request) (idindex.Resolver, error) {
	if !req.remaps() {
		return nil, nil
	}
	var ix *idindex.Index
	if req.Keys == nil {
		ix = idindex.Sequential(len(req.Labels))
	} else {
		var err error
		if ix, err = idindex.New(req.Keys); err != nil {
			return nil, err
		}
	}
	if req.Labels == nil {
		// keys stay master IDs; the index only decides strict or adjust
		return idindex.Relabel(ix, req.Keys)
	}
	return idindex.Relabel(ix, req.Labels)
}
