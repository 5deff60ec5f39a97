package automodel

import "github.com/katalvlaran/spweights/logger"

// Option customizes Select.
type Option func(*options)

type options struct {
	log   logger.Logger
	runID string
}

// WithLogger routes progress messages and warnings to l.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = logger.OrNop(l) }
}

// WithRunID sets the run identifier recorded in the Decision and attached
// to every log record. A random UUID is used otherwise.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}
