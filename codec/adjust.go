package codec

import (
	"github.com/katalvlaran/spweights/idindex"
	"github.com/katalvlaran/spweights/logger"
	"github.com/katalvlaran/spweights/weights"
)

// rowSink accumulates translated rows for every reader. It owns the
// strict/adjust decision, duplicate-row detection and the final fill of
// resolver keys.
type rowSink struct {
	path     string
	res      idindex.Resolver
	mode     idindex.Mode
	declared int
	log      logger.Logger

	nb map[int][]int
	ws map[int][]float64
	// raw holds pre-standardization sums of standardized rows.
	raw map[int]float64
	// edges tracks (row, neighbor) pairs for triple formats.
	edges map[[2]int]struct{}

	droppedRows  int
	droppedEdges int
}

func newRowSink(path string, res idindex.Resolver, declared int, log logger.Logger) *rowSink {
	s := &rowSink{
		path:     path,
		res:      res,
		mode:     idindex.ModeFor(res, declared),
		declared: declared,
		log:      logger.OrNop(log),
		nb:       make(map[int][]int),
		ws:       make(map[int][]float64),
		raw:      make(map[int]float64),
		edges:    make(map[[2]int]struct{}),
	}
	if s.mode == idindex.Adjust {
		s.log.Warn("dataset has fewer observations than the weights file; weights will be adjusted",
			"path", path, "declared", declared, "index", res.Len())
	}
	return s
}

func (s *rowSink) adjusting() bool { return s.mode == idindex.Adjust }

// key resolves a row key. ok is false when adjust mode skips the row.
func (s *rowSink) key(line, master int) (int, bool, error) {
	if s.res == nil {
		return master, true, nil
	}
	k, found := s.res.Resolve(master)
	if found {
		return k, true, nil
	}
	if s.adjusting() {
		s.droppedRows++
		return 0, false, nil
	}

	return 0, false, lineError(s.path, line, weights.ErrMalformedWeights, "row id %d not present in index", master)
}

// translate maps a neighbor row; with no resolver it is returned as is.
func (s *rowSink) translate(line int, nbs []int, ws []float64, rowStd bool, rawSum float64) ([]int, []float64, error) {
	if s.res == nil {
		return nbs, ws, nil
	}
	outN, outW, err := idindex.TranslateRow(s.res, nbs, ws, s.mode, rowStd, rawSum)
	if err != nil {
		return nil, nil, &FormatError{Path: s.path, Line: line, Err: err}
	}
	s.droppedEdges += len(nbs) - len(outN)

	return outN, outW, nil
}

// addRow stores a complete row (GAL, SWM). Every key, including 0, may
// appear at most once.
func (s *rowSink) addRow(line, master int, nbs []int, ws []float64, rowStd bool, rawSum float64) error {
	k, ok, err := s.key(line, master)
	if err != nil || !ok {
		return err
	}
	if _, dup := s.nb[k]; dup {
		return lineError(s.path, line, weights.ErrMalformedWeights, "row id %d appears more than once", master)
	}
	outN, outW, err := s.translate(line, nbs, ws, rowStd, rawSum)
	if err != nil {
		return err
	}
	s.nb[k] = outN
	s.ws[k] = outW
	if rowStd {
		s.raw[k] = rawSum * s.keptShare(nbs, ws)
	}

	return nil
}

// keptShare is the part of a standardized row whose neighbors survive
// translation; 1 unless adjust mode dropped some.
func (s *rowSink) keptShare(nbs []int, ws []float64) float64 {
	if s.res == nil || !s.adjusting() {
		return 1
	}
	var kept float64
	for i, nb := range nbs {
		if _, ok := s.res.Resolve(nb); ok {
			kept += ws[i]
		}
	}
	return kept
}

// addEdge stores one weighted edge (GWT, KWT, TXT).
func (s *rowSink) addEdge(line, master, neighbor int, w float64) error {
	k, ok, err := s.key(line, master)
	if err != nil || !ok {
		return err
	}
	if _, exists := s.nb[k]; !exists {
		s.nb[k] = make([]int, 0, 4)
		s.ws[k] = make([]float64, 0, 4)
	}
	outN, outW, err := s.translate(line, []int{neighbor}, []float64{w}, false, 0)
	if err != nil {
		return err
	}
	if len(outN) == 0 {
		return nil
	}
	edge := [2]int{k, outN[0]}
	if _, dup := s.edges[edge]; dup {
		return lineError(s.path, line, weights.ErrMalformedWeights, "edge %d -> %d appears more than once", master, neighbor)
	}
	s.edges[edge] = struct{}{}
	s.nb[k] = append(s.nb[k], outN[0])
	s.ws[k] = append(s.ws[k], outW[0])

	return nil
}

// normalizeRows divides every non-empty row by its sum, recording the sum.
func (s *rowSink) normalizeRows() {
	for k, row := range s.ws {
		var sum float64
		for _, v := range row {
			sum += v
		}
		s.raw[k] = sum
		if sum == 0 {
			continue
		}
		for i := range row {
			row[i] /= sum
		}
		s.ws[k] = row
	}
}

// finish gives every resolver key a row and returns the maps.
func (s *rowSink) finish() (map[int][]int, map[int][]float64) {
	if s.res != nil {
		for _, k := range s.res.Keys() {
			if _, ok := s.nb[k]; !ok {
				s.nb[k] = []int{}
				s.ws[k] = []float64{}
			}
		}
	}
	if s.adjusting() {
		s.log.Warn("weights adjusted to dataset",
			"path", s.path, "rows_dropped", s.droppedRows, "neighbors_dropped", s.droppedEdges, "rows", len(s.nb))
	}

	return s.nb, s.ws
}

// rowOptions derives the weights.W options for a decoded file.
func rowOptions(h Header, nb map[int][]int, rowStd bool, raw map[int]float64) []weights.Option {
	opts := []weights.Option{weights.WithIDField(h.IDField), weights.WithRowStandardized(rowStd)}
	if rowStd && len(raw) > 0 {
		opts = append(opts, weights.WithRawSums(raw))
	}
	if h.Format == FormatGAL || h.Format == FormatGWT {
		return opts
	}
	for k, row := range nb {
		for _, j := range row {
			if j == k {
				return append(opts, weights.WithDiagonal())
			}
		}
	}
	return opts
}
