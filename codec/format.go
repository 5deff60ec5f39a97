package codec

import (
	"path/filepath"
	"strings"
)

// Format identifies an on-disk weights encoding.
type Format int

const (
	// FormatUnknown is the zero value; never returned without an error.
	FormatUnknown Format = iota
	FormatGAL
	FormatGWT
	FormatKWT
	FormatSWM
	FormatText
)

var formatExt = map[Format]string{
	FormatGAL:  ".gal",
	FormatGWT:  ".gwt",
	FormatKWT:  ".kwt",
	FormatSWM:  ".swm",
	FormatText: ".txt",
}

// String returns the upper-case format tag, e.g. "GWT".
func (f Format) String() string {
	if ext, ok := formatExt[f]; ok {
		return strings.ToUpper(ext[1:])
	}
	return "UNKNOWN"
}

// Ext returns the canonical lower-case extension including the dot.
func (f Format) Ext() string { return formatExt[f] }

// Text reports whether the format is line oriented.
func (f Format) Text() bool { return f != FormatSWM && f != FormatUnknown }

// Triples reports whether the format stores one weighted edge per line.
func (f Format) Triples() bool { return f == FormatGWT || f == FormatKWT || f == FormatText }

// DetectFormat classifies path by its extension, case-insensitively.
// Unknown or missing extensions fail with ErrConfiguration; no file is opened.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, e := range formatExt {
		if e == ext {
			return f, nil
		}
	}

	return FormatUnknown, codecErrorf(methodDetect, ErrConfiguration, "unsupported weights file extension %q in %s", ext, path)
}
