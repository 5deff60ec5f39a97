package converter

import (
	"fmt"

	"github.com/katalvlaran/spweights/codec"
)

// ErrMissingIDField indicates the source carries no ID field and the request
// does not supply one. Text formats with a header and SWM always need it;
// GAL only when no feature-level index is supplied.
var ErrMissingIDField = fmt.Errorf("converter: missing ID field: %w", codec.ErrConfiguration)

// ErrEmptySource indicates the source file is missing or zero bytes long.
var ErrEmptySource = fmt.Errorf("converter: empty source weights file: %w", codec.ErrConfiguration)

const methodConvert = "Convert"

func convertErrorf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", methodConvert, fmt.Sprintf(format, args...), err)
}
