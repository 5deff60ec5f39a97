package codec

import (
	"github.com/katalvlaran/spweights/idindex"
	"github.com/katalvlaran/spweights/logger"
)

// Option customizes Read, Write and MigrateGAL.
type Option func(*options)

type options struct {
	resolver   idindex.Resolver
	log        logger.Logger
	idField    string
	idFieldSet bool
	spatialRef string
}

func newOptions(opts []Option) options {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithResolver translates file IDs through r while reading. A resolver that
// knows fewer IDs than the file declares switches the reader to adjust mode.
func WithResolver(r idindex.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithLogger routes adjust-mode warnings and progress to l.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = logger.OrNop(l) }
}

// WithIDField overrides the ID field written into the header.
func WithIDField(name string) Option {
	return func(o *options) {
		o.idField = name
		o.idFieldSet = true
	}
}

// WithSpatialRef sets the spatial reference label of an SWM header.
func WithSpatialRef(label string) Option {
	return func(o *options) { o.spatialRef = label }
}
