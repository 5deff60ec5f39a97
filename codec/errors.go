// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates a request the codecs cannot serve before any
// I/O happens: an unknown extension or a missing required ID field.
var ErrConfiguration = errors.New("codec: configuration error")

// FormatError locates a parse failure inside a weights file.
// Line is 1-based for text formats and the record number for SWM.
type FormatError struct {
	Path string
	Line int
	Err  error
}

// Error renders "path:line: cause".
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

// Unwrap exposes the cause so errors.Is reaches the sentinel.
func (e *FormatError) Unwrap() error { return e.Err }

// Method tokens for codecErrorf.
const (
	methodDetect     = "DetectFormat"
	methodReadHeader = "ReadHeader"
	methodRead       = "Read"
	methodWrite      = "Write"
	methodSWMWriter  = "SWMWriter"
	methodMigrateGAL = "MigrateGAL"
)

// codecErrorf returns "<method>: <message>: <sentinel>" with err wrapped.
func codecErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}

// lineError wraps a sentinel with a formatted message and its file location.
func lineError(path string, line int, err error, format string, args ...interface{}) error {
	return &FormatError{Path: path, Line: line, Err: fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)}
}
