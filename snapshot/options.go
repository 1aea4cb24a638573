package snapshot

import (
	"log/slog"

	"github.com/hupe1980/particlestore/internal/resource"
)

type options struct {
	compression Compression
	resources   *resource.Controller
	logger      *slog.Logger
}

// Option configures Write and Read.
type Option func(*options)

// WithCompression sets the chunk compression used by Write.
// Read detects the compression from the stream.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController throttles stream IO through rc's IO limiter.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{compression: CompressionNone}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
