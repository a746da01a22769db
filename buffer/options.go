// SPDX-License-Identifier: MIT

package buffer

// Options configures the buffer a container allocates at construction.
type Options struct {
	Name    string
	Kind    Kind
	kindSet bool
}

// Option mutates Options. Containers accept a variadic list of them.
type Option func(*Options)

// WithName names the buffer for move logs.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithKind selects the backend, overriding DefaultKind.
func WithKind(k Kind) Option {
	return func(o *Options) { o.Kind, o.kindSet = k, true }
}

// WithSpaces selects the multi-space backend.
func WithSpaces() Option { return WithKind(KindSpaces) }

// Make applies opts and returns the configured empty buffer.
func Make[T any](opts ...Option) Buffer[T] {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.kindSet {
		o.Kind = DefaultKind()
	}
	b := New[T](o.Kind)
	b.SetName(o.Name)
	return b
}
