package converter

import "github.com/katalvlaran/spweights/logger"

// Option customizes Convert.
type Option func(*options)

type options struct {
	log logger.Logger
}

// WithLogger routes progress and adjust-mode warnings to l.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = logger.OrNop(l) }
}
