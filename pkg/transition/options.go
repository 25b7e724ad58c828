package transition

import (
	"log/slog"
)

// Option is a functional option for configuring a collection.
type Option func(*options)

type options struct {
	actions     bool
	after       bool
	transaction bool
	logger      *slog.Logger
}

func defaultOptions() *options {
	return &options{
		actions:     true,
		after:       true,
		transaction: true,
		logger:      slog.Default(),
	}
}

// WithoutActions skips invoking transition actions; the action phase then
// succeeds vacuously.
func WithoutActions() Option {
	return func(o *options) { o.actions = false }
}

// WithoutAfterCallbacks skips after callbacks on successful runs only; failing
// runs always receive them.
func WithoutAfterCallbacks() Option {
	return func(o *options) { o.after = false }
}

// WithoutTransaction runs the pipeline without the subject's transactional
// scope.
func WithoutTransaction() Option {
	return func(o *options) { o.transaction = false }
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
