package container

import (
	"log/slog"

	"github.com/hupe1980/particlestore/internal/resource"
)

type options struct {
	resources *resource.Controller
	offHeap   bool
	logger    *slog.Logger
}

// Option configures a Container.
type Option func(*options)

// WithResourceController accounts block memory against rc.
// NewBlock fails with resource.ErrMemoryLimitExceeded when the budget is exhausted.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithOffHeap places block columns in anonymous memory mappings outside the
// Go heap.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

// WithLogger sets the logger for block lifecycle events.
// If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
