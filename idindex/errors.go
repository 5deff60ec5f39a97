// SPDX-License-Identifier: MIT

package idindex

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound indicates a master ID or order position absent from the index.
	ErrKeyNotFound = errors.New("idindex: key not found")

	// ErrDuplicateID indicates the master ID sequence is not unique, so no bijection exists.
	ErrDuplicateID = errors.New("idindex: duplicate master id")

	// ErrLabelCount indicates Relabel received a label slice whose length differs from the index.
	ErrLabelCount = errors.New("idindex: label count does not match index length")
)

// indexErrorf prefixes err with the calling method, keeping the sentinel reachable via errors.Is.
func indexErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
