package chash

import (
	"github.com/go-kit/log"
)

// Option configures a Table at construction
type Option func(*options)

type options struct {
	logger   log.Logger
	capacity int
}

func defaultOptions() *options {
	return &options{
		logger: log.NewNopLogger(),
	}
}

// WithLogger sets the logger used to report growth. Growth is logged at
// debug level.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCapacity reserves room for n entries, as if Reserve(n) was called
// right after New
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}
