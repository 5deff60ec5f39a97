// SPDX-License-Identifier: MIT

package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/spweights/weights"
)

// Read decodes the weights file at path, choosing the codec by extension.
//
// Without WithResolver the row keys are the master IDs stored in the file.
// With a resolver they are translated (strict or adjust mode, see package
// doc) and every resolver key is present in the result.
//
// Errors: ErrConfiguration (extension), *FormatError wrapping
// weights.ErrMalformedWeights (grammar, unresolved IDs, duplicate rows),
// or the underlying I/O error.
func Read(path string, opts ...Option) (*weights.W, error) {
	w, _, err := ReadWithHeader(path, opts...)
	return w, err
}

// ReadWithHeader is Read that also returns the parsed file header.
func ReadWithHeader(path string, opts ...Option) (*weights.W, Header, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, Header{}, err
	}
	o := newOptions(opts)
	o.log.Debug("reading weights", "path", path, "format", format.String())

	var (
		w *weights.W
		h Header
	)
	switch format {
	case FormatGAL:
		w, h, err = readGAL(path, o)
	case FormatSWM:
		w, h, err = readSWM(path, o)
	default:
		w, h, err = readTriples(path, format, o)
	}
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", methodRead, err)
	}

	return w, h, nil
}

// Write encodes w at path in the format named by its extension. The target
// is written to a temporary sibling and renamed into place only on success.
func Write(path string, w *weights.W, opts ...Option) error {
	if w == nil {
		return codecErrorf(methodWrite, weights.ErrNilWeights, "%s", path)
	}
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	o := newOptions(opts)
	o.log.Debug("writing weights", "path", path, "format", format.String(), "n", w.N())

	switch format {
	case FormatGAL:
		err = writeGAL(path, w, o)
	case FormatSWM:
		err = writeSWM(path, w, o)
	default:
		err = writeTriples(path, w, o)
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", methodWrite, path, err)
	}

	return nil
}

func readSWM(path string, o options) (*weights.W, Header, error) {
	r, err := OpenSWM(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer r.Close()

	sh := r.Header()
	h := Header{
		Format:          FormatSWM,
		N:               sh.N,
		IDField:         sh.IDField,
		SpatialRef:      sh.SpatialRef,
		RowStandardized: sh.RowStandardized,
	}
	sink := newRowSink(path, o.resolver, sh.N, o.log)
	for rec := 1; ; rec++ {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, h, err
		}
		if err := sink.addRow(rec, e.MasterID, e.Neighbors, e.Weights, sh.RowStandardized, e.RawSum); err != nil {
			return nil, h, err
		}
	}

	nb, ws := sink.finish()
	w, err := weights.New(nb, ws, rowOptions(h, nb, sh.RowStandardized, sink.raw)...)
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", path, err)
	}

	return w, h, nil
}

func writeSWM(path string, w *weights.W, o options) error {
	field := w.IDField()
	if o.idFieldSet {
		field = o.idField
	}
	sw, err := CreateSWM(path, SWMHeader{
		IDField:         field,
		SpatialRef:      o.spatialRef,
		N:               w.N(),
		RowStandardized: w.RowStandardized(),
	})
	if err != nil {
		return err
	}
	for _, id := range w.IDs() {
		nbs, ws := w.Row(id)
		if err := sw.Write(Entry{MasterID: id, Neighbors: nbs, Weights: ws, RawSum: w.RawSum(id)}); err != nil {
			_ = sw.Close() // discards the partial file
			return err
		}
	}

	return sw.Close()
}

// MigrateGAL rewrites the GAL file src at dst in the named header form,
// recording the ID field given through WithIDField. Sources already in the
// named form are rewritten with the new field name.
func MigrateGAL(src, dst string, opts ...Option) error {
	o := newOptions(opts)
	for _, p := range []string{src, dst} {
		if f, err := DetectFormat(p); err != nil || f != FormatGAL {
			return codecErrorf(methodMigrateGAL, ErrConfiguration, "%s is not a GAL path", p)
		}
	}
	if !o.idFieldSet || o.idField == "" || strings.EqualFold(o.idField, weights.UnknownIDField) {
		return codecErrorf(methodMigrateGAL, ErrConfiguration, "an ID field is required for the named GAL form")
	}

	first, err := firstLine(src)
	if err != nil {
		return fmt.Errorf("%s: %w", methodMigrateGAL, err)
	}
	o.log.Info("migrating GAL header", "src", src, "dst", dst, "legacy", IsLegacyGAL(first), "id_field", o.idField)

	w, err := Read(src, WithLogger(o.log))
	if err != nil {
		return fmt.Errorf("%s: %w", methodMigrateGAL, err)
	}

	return Write(dst, w.WithField(o.idField), WithLogger(o.log))
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return sc.Text(), nil
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", lineError(path, 1, weights.ErrMalformedWeights, "empty weights file")
}
