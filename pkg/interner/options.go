package interner

import "github.com/Sumatoshi-tech/interner/pkg/hashing"

// options collects construction settings.
type options struct {
	capacity int
	hasher   hashing.Hasher
}

// Option configures a new Interner.
type Option func(*options)

// WithCapacity reserves room for n values. It changes performance only.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(n, 0)
	}
}

// WithHasher sets the hash strategy. The default is a randomly seeded
// hashing.Maphash.
func WithHasher(h hashing.Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

func newOptions(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	if o.hasher == nil {
		o.hasher = hashing.Default()
	}

	return o
}

// withMinCapacity appends a capacity option of at least n.
func withMinCapacity(opts []Option, n int) []Option {
	requested := newOptions(opts).capacity

	return append(opts[:len(opts):len(opts)], WithCapacity(max(requested, n)))
}
