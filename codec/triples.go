package codec

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/spweights/weights"
)

// readTriples decodes GWT, KWT and generic text files: one
// "masterID neighborID weight" edge per line. Only .txt may omit the header.
// In adjust mode every surviving row is renormalized by its sum.
func readTriples(path string, format Format, o options) (*weights.W, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer f.Close()

	sc := newScanner(f)
	if !sc.Scan() {
		return nil, Header{}, scanEnd(path, sc, 1, "empty weights file")
	}
	first := sc.Text()
	h, consumed, err := parseTextHeader(path, format, first)
	if err != nil {
		return nil, Header{}, err
	}

	sink := newRowSink(path, o.resolver, h.N, o.log)
	parse := func(line int, text string) error {
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			return nil
		}
		if len(tokens) != 3 {
			return lineError(path, line, weights.ErrMalformedWeights, "expected \"id neighbor weight\", got %q", text)
		}
		master, err1 := strconv.Atoi(tokens[0])
		nb, err2 := strconv.Atoi(tokens[1])
		v, err3 := strconv.ParseFloat(tokens[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return lineError(path, line, weights.ErrMalformedWeights, "bad edge %q", text)
		}
		return sink.addEdge(line, master, nb, v)
	}

	line := 1
	if !consumed {
		if err := parse(line, first); err != nil {
			return nil, h, err
		}
	}
	for sc.Scan() {
		line++
		if err := parse(line, sc.Text()); err != nil {
			return nil, h, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, h, &FormatError{Path: path, Line: line, Err: err}
	}
	if h.N >= 0 && sink.res == nil && len(sink.nb) > h.N {
		return nil, h, lineError(path, line, weights.ErrMalformedWeights,
			"header declares %d observations, file has %d source ids", h.N, len(sink.nb))
	}

	if sink.adjusting() {
		sink.normalizeRows()
	}
	nb, ws := sink.finish()
	w, err := weights.New(nb, ws, rowOptions(h, nb, sink.adjusting(), sink.raw)...)
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", path, err)
	}

	return w, h, nil
}

// writeTriples encodes w as "0 n IDFIELD UNKNOWN" followed by one line per
// edge, rows ascending. Weights use the shortest exact decimal form.
func writeTriples(path string, w *weights.W, o options) error {
	field := w.IDField()
	if o.idFieldSet {
		field = o.idField
	}
	if field == "" {
		field = weights.UnknownIDField
	}
	out, err := createPending(path)
	if err != nil {
		return err
	}
	bw := out.w
	fmt.Fprintf(bw, "0 %d %s %s\n", w.N(), field, weights.UnknownIDField)
	for _, id := range w.IDs() {
		nbs, ws := w.Row(id)
		for i, nb := range nbs {
			if _, err := fmt.Fprintf(bw, "%d %d %s\n", id, nb, strconv.FormatFloat(ws[i], 'g', -1, 64)); err != nil {
				_ = out.abort()
				return err
			}
		}
	}

	return out.commit()
}
