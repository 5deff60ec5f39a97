package codec

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/spweights/weights"
)

// Header is what a weights file declares about itself before its records.
type Header struct {
	Format Format
	// N is the declared observation count, or -1 for a headerless text file.
	N int
	// IDField is "" when the file names no ID field (UNKNOWN or legacy GAL).
	IDField string
	// LegacyGAL is true for a GAL file whose header is a bare count.
	LegacyGAL bool
	// SpatialRef and RowStandardized are only carried by SWM.
	SpatialRef      string
	RowStandardized bool
}

// IsLegacyGAL reports whether a GAL first line is the legacy bare-count form.
// Reader, writer and MigrateGAL all classify headers through this function.
func IsLegacyGAL(firstLine string) bool {
	return len(strings.Fields(firstLine)) == 1
}

// ReadHeader detects the format of path and parses only its header.
func ReadHeader(path string) (Header, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Header{}, err
	}
	if format == FormatSWM {
		r, err := OpenSWM(path)
		if err != nil {
			return Header{}, err
		}
		defer r.Close()
		h := r.Header()
		return Header{
			Format:          FormatSWM,
			N:               h.N,
			IDField:         h.IDField,
			SpatialRef:      h.SpatialRef,
			RowStandardized: h.RowStandardized,
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", methodReadHeader, err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Header{}, fmt.Errorf("%s: %w", methodReadHeader, err)
		}
		return Header{}, lineError(path, 1, weights.ErrMalformedWeights, "empty weights file")
	}
	h, _, err := parseTextHeader(path, format, sc.Text())

	return h, err
}

// parseTextHeader interprets the first line of a text file. consumed is false
// when the file starts directly with an edge, in which case the caller must
// parse that line as data. A .gal file starting with an edge is not GAL; its
// header is reported as FormatText and it is read as generic triples.
func parseTextHeader(path string, format Format, line string) (h Header, consumed bool, err error) {
	h = Header{Format: format, N: -1}
	tokens := strings.Fields(line)
	if (format == FormatText || format == FormatGAL) && isTriple(tokens) {
		h.Format = FormatText
		return h, false, nil
	}
	if len(tokens) == 0 {
		return h, false, lineError(path, 1, weights.ErrMalformedWeights, "blank header")
	}

	countTok := 1
	if format == FormatGAL && IsLegacyGAL(line) {
		h.LegacyGAL = true
		countTok = 0
	}
	if countTok >= len(tokens) {
		return h, false, lineError(path, 1, weights.ErrMalformedWeights, "header %q has no observation count", line)
	}
	n, perr := strconv.Atoi(tokens[countTok])
	if perr != nil || n < 0 {
		return h, false, lineError(path, 1, weights.ErrMalformedWeights, "header %q: bad observation count %q", line, tokens[countTok])
	}
	h.N = n
	if !h.LegacyGAL {
		h.IDField = headerIDField(tokens)
	}

	return h, true, nil
}

// headerIDField returns the first token that is neither all digits nor the
// UNKNOWN sentinel.
func headerIDField(tokens []string) string {
	for _, tok := range tokens {
		if isDigits(tok) || strings.EqualFold(tok, weights.UnknownIDField) {
			continue
		}
		return tok
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isTriple reports whether tokens look like "int int float".
func isTriple(tokens []string) bool {
	if len(tokens) != 3 {
		return false
	}
	if _, err := strconv.Atoi(tokens[0]); err != nil {
		return false
	}
	if _, err := strconv.Atoi(tokens[1]); err != nil {
		return false
	}
	_, err := strconv.ParseFloat(tokens[2], 64)
	return err == nil
}
