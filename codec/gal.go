package codec

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/spweights/weights"
)

const scanBufMax = 16 << 20

func newScanner(f *os.File) *bufio.Scanner {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), scanBufMax)
	return sc
}

// readGAL decodes a GAL file. Weights are 1; in adjust mode each surviving
// row is re-expressed as 1/k and the result is flagged row-standardized.
func readGAL(path string, o options) (*weights.W, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer f.Close()

	sc := newScanner(f)
	if !sc.Scan() {
		return nil, Header{}, scanEnd(path, sc, 1, "empty weights file")
	}
	h, _, err := parseTextHeader(path, FormatGAL, sc.Text())
	if err != nil {
		return nil, Header{}, err
	}
	if h.Format != FormatGAL {
		o.log.Warn("GAL file starts with an edge; reading it as id/neighbor/weight triples", "path", path)
		return readTriples(path, h.Format, o)
	}

	sink := newRowSink(path, o.resolver, h.N, o.log)
	line, records := 1, 0
	for sc.Scan() {
		line++
		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) != 2 {
			return nil, h, lineError(path, line, weights.ErrMalformedWeights, "expected \"id count\", got %q", sc.Text())
		}
		master, err1 := strconv.Atoi(tokens[0])
		count, err2 := strconv.Atoi(tokens[1])
		if err1 != nil || err2 != nil || count < 0 {
			return nil, h, lineError(path, line, weights.ErrMalformedWeights, "bad record header %q", sc.Text())
		}
		recLine := line

		var nbTokens []string
		if sc.Scan() {
			line++
			nbTokens = strings.Fields(sc.Text())
		}
		if len(nbTokens) != count {
			return nil, h, lineError(path, line, weights.ErrMalformedWeights,
				"id %d declares %d neighbors, found %d", master, count, len(nbTokens))
		}
		nbs := make([]int, count)
		for i, tok := range nbTokens {
			if nbs[i], err = strconv.Atoi(tok); err != nil {
				return nil, h, lineError(path, line, weights.ErrMalformedWeights, "bad neighbor id %q", tok)
			}
		}
		ws := make([]float64, count)
		for i := range ws {
			ws[i] = 1
		}
		if err := sink.addRow(recLine, master, nbs, ws, false, 0); err != nil {
			return nil, h, err
		}
		records++
	}
	if err := sc.Err(); err != nil {
		return nil, h, &FormatError{Path: path, Line: line, Err: err}
	}
	if records != h.N {
		return nil, h, lineError(path, line, weights.ErrMalformedWeights, "header declares %d records, file holds %d", h.N, records)
	}

	if sink.adjusting() {
		// binary rows: each neighbor gets 1/k and the raw sum is k
		sink.normalizeRows()
	}
	nb, ws := sink.finish()
	w, err := weights.New(nb, ws, rowOptions(h, nb, sink.adjusting(), sink.raw)...)
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", path, err)
	}

	return w, h, nil
}

// writeGAL encodes w as GAL: the named header when an ID field is known,
// the legacy bare count otherwise. Weights are not stored.
func writeGAL(path string, w *weights.W, o options) error {
	field := w.IDField()
	if o.idFieldSet {
		field = o.idField
	}
	if strings.EqualFold(field, weights.UnknownIDField) {
		field = ""
	}
	out, err := createPending(path)
	if err != nil {
		return err
	}
	bw := out.w
	if field == "" {
		fmt.Fprintf(bw, "%d\n", w.N())
	} else {
		fmt.Fprintf(bw, "0 %d %s %s\n", w.N(), field, weights.UnknownIDField)
	}
	for _, id := range w.IDs() {
		nbs, _ := w.Row(id)
		fmt.Fprintf(bw, "%d %d\n", id, len(nbs))
		for i, nb := range nbs {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(nb))
		}
		if _, err := bw.WriteString("\n"); err != nil {
			_ = out.abort()
			return err
		}
	}

	return out.commit()
}

// scanEnd reports why a scanner stopped before a required line.
func scanEnd(path string, sc *bufio.Scanner, line int, msg string) error {
	if err := sc.Err(); err != nil {
		return &FormatError{Path: path, Line: line, Err: err}
	}
	return lineError(path, line, weights.ErrMalformedWeights, "%s", msg)
}
