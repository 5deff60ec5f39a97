// SPDX-License-Identifier: MIT

package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/spweights/weights"
)

const (
	swmVersion       = "10.1"
	swmMaxHeaderLine = 4096
)

// SWMHeader is the fixed prefix of an SWM file.
type SWMHeader struct {
	IDField         string // "" is written as UNKNOWN
	SpatialRef      string
	N               int
	RowStandardized bool
}

// Entry is one SWM record. RawSum is the row sum before standardization, so a
// standardized row can be restored to raw weights after subsetting.
type Entry struct {
	MasterID  int
	Neighbors []int
	Weights   []float64
	RawSum    float64
}

// SWMReader iterates the records of an SWM file exactly once, in file order.
type SWMReader struct {
	path   string
	f      *os.File
	r      *binReader
	header SWMHeader
	read   int
}

// OpenSWM opens path and parses its header. The caller must Close the reader.
func OpenSWM(path string) (*SWMReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &SWMReader{path: path, f: f, r: newBinReader(f)}
	if err := r.readHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return r, nil
}

func (r *SWMReader) readHeader() error {
	line, err := r.r.readLine(swmMaxHeaderLine)
	if err != nil {
		return lineError(r.path, 0, weights.ErrMalformedWeights, "reading header line: %v", err)
	}
	fields := parseSWMHeaderLine(line)
	if _, ok := fields["VERSION"]; !ok {
		return lineError(r.path, 0, weights.ErrMalformedWeights, "header %q has no VERSION", line)
	}
	n, err := r.r.readI32()
	if err != nil {
		return lineError(r.path, 0, weights.ErrMalformedWeights, "reading observation count: %v", err)
	}
	std, err := r.r.readI32()
	if err != nil {
		return lineError(r.path, 0, weights.ErrMalformedWeights, "reading standardization flag: %v", err)
	}
	if n < 0 {
		return lineError(r.path, 0, weights.ErrMalformedWeights, "negative observation count %d", n)
	}
	id := fields["UNIQUEID"]
	if strings.EqualFold(id, weights.UnknownIDField) {
		id = ""
	}
	r.header = SWMHeader{
		IDField:         id,
		SpatialRef:      fields["SPATIALREFNAME"],
		N:               int(n),
		RowStandardized: std != 0,
	}

	return nil
}

// parseSWMHeaderLine splits "KEY@value;KEY@value;" into a map.
func parseSWMHeaderLine(line string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(strings.TrimSpace(line), ";") {
		key, val, ok := strings.Cut(part, "@")
		if !ok {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(key))] = val
	}
	return out
}

// Header returns the parsed SWM header.
func (r *SWMReader) Header() SWMHeader { return r.header }

// Next returns the next record, or io.EOF once N records have been read.
// A short file is reported as weights.ErrMalformedWeights.
func (r *SWMReader) Next() (Entry, error) {
	if r.read >= r.header.N {
		return Entry{}, io.EOF
	}
	rec := r.read + 1
	truncated := func(what string, err error) error {
		return lineError(r.path, rec, weights.ErrMalformedWeights, "record %d of %d: %s: %v", rec, r.header.N, what, err)
	}

	id, err := r.r.readI32()
	if err != nil {
		return Entry{}, truncated("master id", err)
	}
	count, err := r.r.readI32()
	if err != nil {
		return Entry{}, truncated("neighbor count", err)
	}
	if count < 0 || int(count) > r.header.N {
		return Entry{}, lineError(r.path, rec, weights.ErrMalformedWeights,
			"record %d: neighbor count %d outside [0,%d]", rec, count, r.header.N)
	}
	e := Entry{MasterID: int(id), Neighbors: make([]int, count), Weights: make([]float64, count)}
	if count > 0 {
		for i := range e.Neighbors {
			v, err := r.r.readI32()
			if err != nil {
				return Entry{}, truncated("neighbors", err)
			}
			e.Neighbors[i] = int(v)
		}
		for i := range e.Weights {
			if e.Weights[i], err = r.r.readF64(); err != nil {
				return Entry{}, truncated("weights", err)
			}
		}
		if e.RawSum, err = r.r.readF64(); err != nil {
			return Entry{}, truncated("row sum", err)
		}
	}
	r.read++

	return e, nil
}

// Close releases the file. Safe to call more than once.
func (r *SWMReader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// SWMWriter streams records into an SWM file. The header is written first,
// so N and the standardization flag must be known up front; Close checks
// that exactly N records arrived and only then publishes the file.
type SWMWriter struct {
	out     *pendingFile
	header  SWMHeader
	written int
	err     error // first write failure, sticky
	closed  bool
}

// CreateSWM starts a new SWM file at path.
func CreateSWM(path string, h SWMHeader) (*SWMWriter, error) {
	if h.N < 0 || h.N > math.MaxInt32 {
		return nil, codecErrorf(methodSWMWriter, weights.ErrMalformedWeights, "observation count %d out of range", h.N)
	}
	out, err := createPending(path)
	if err != nil {
		return nil, err
	}
	w := &SWMWriter{out: out, header: h}
	id := h.IDField
	if id == "" {
		id = weights.UnknownIDField
	}
	line := fmt.Sprintf("VERSION@%s;UNIQUEID@%s;SPATIALREFNAME@%s;\n", swmVersion, id, h.SpatialRef)
	if _, err := out.w.WriteString(line); err != nil {
		_ = out.abort()
		return nil, err
	}
	std := int32(0)
	if h.RowStandardized {
		std = 1
	}
	w.putI32(int32(h.N))
	w.putI32(std)
	if w.err != nil {
		_ = out.abort()
		return nil, w.err
	}

	return w, nil
}

// Write appends one record.
func (w *SWMWriter) Write(e Entry) error {
	if w.closed {
		return codecErrorf(methodSWMWriter, os.ErrClosed, "write after close")
	}
	if w.err != nil {
		return w.err
	}
	if len(e.Neighbors) != len(e.Weights) {
		w.err = codecErrorf(methodSWMWriter, weights.ErrMalformedWeights,
			"record %d (id %d): %d neighbors but %d weights", w.written+1, e.MasterID, len(e.Neighbors), len(e.Weights))
		return w.err
	}
	if w.written >= w.header.N {
		w.err = codecErrorf(methodSWMWriter, weights.ErrMalformedWeights, "more than %d records", w.header.N)
		return w.err
	}
	if !fitsInt32(e.MasterID) {
		w.err = codecErrorf(methodSWMWriter, weights.ErrMalformedWeights,
			"record %d: id %d does not fit in 32 bits", w.written+1, e.MasterID)
		return w.err
	}
	for _, nb := range e.Neighbors {
		if !fitsInt32(nb) {
			w.err = codecErrorf(methodSWMWriter, weights.ErrMalformedWeights,
				"record %d (id %d): neighbor id %d does not fit in 32 bits", w.written+1, e.MasterID, nb)
			return w.err
		}
	}
	w.putI32(int32(e.MasterID))
	w.putI32(int32(len(e.Neighbors)))
	if len(e.Neighbors) > 0 {
		for _, nb := range e.Neighbors {
			w.putI32(int32(nb))
		}
		for _, v := range e.Weights {
			w.putF64(v)
		}
		w.putF64(e.RawSum)
	}
	if w.err != nil {
		return w.err
	}
	w.written++

	return nil
}

// Close finishes the file. When fewer than N records were written, or any
// earlier write failed, the partial file is discarded and an error returned.
// The underlying file is released in every case.
func (w *SWMWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.err == nil && w.written != w.header.N {
		w.err = codecErrorf(methodSWMWriter, weights.ErrMalformedWeights,
			"header declares %d records, %d written", w.header.N, w.written)
	}
	if w.err != nil {
		return errors.Join(w.err, w.out.abort())
	}

	return w.out.commit()
}

func fitsInt32(v int) bool { return v >= math.MinInt32 && v <= math.MaxInt32 }

func (w *SWMWriter) putI32(v int32) {
	if w.err != nil {
		return
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, w.err = w.out.w.Write(buf[:])
}

func (w *SWMWriter) putF64(v float64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, w.err = w.out.w.Write(buf[:])
}

// binReader decodes little-endian primitives from a buffered stream.
type binReader struct {
	r   *bufio.Reader
	off int64
}

func newBinReader(rd io.Reader) *binReader {
	return &binReader{r: bufio.NewReader(rd)}
}

func (r *binReader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.off += int64(n)
	return buf, nil
}

func (r *binReader) readI32() (int32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *binReader) readF64() (float64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// readLine reads up to and excluding '\n', failing past limit bytes.
func (r *binReader) readLine(limit int) (string, error) {
	var sb strings.Builder
	for sb.Len() <= limit {
		b, err := r.r.ReadByte()
		if err != nil {
			return "", err
		}
		r.off++
		if b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
	return "", fmt.Errorf("header line longer than %d bytes", limit)
}
