package assets

import "log/slog"

// Option configures a Cache or Library during creation.
// Use functional options to customize cache behavior.
//
// Example:
//
//	// Default: entries live as long as some caller holds a resource
//	textures := assets.New(root, texture.Decode)
//
//	// Pinned entries with a dedicated logger
//	textures := assets.New(root, texture.Decode,
//	    assets.WithRetain(),
//	    assets.WithLogger(logger))
type Option func(*options)

// options holds optional configuration for Cache and Library creation.
type options struct {
	logger *slog.Logger
	retain RetainPolicy
}

// defaultOptions returns the default cache options.
func defaultOptions() options {
	return options{
		logger: nil, // Falls back to Logger() at call time
		retain: RetainNone,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RetainPolicy controls whether a cache owns a unit of each entry's count.
type RetainPolicy int

const (
	// RetainNone keeps non-owning entries. RefCount reports caller handles
	// only, and an entry disappears when its last caller releases it.
	RetainNone RetainPolicy = iota

	// RetainAll makes the cache one more owner of every entry. Entries
	// persist until Unload or Clear, and RefCount includes the cache's unit.
	RetainAll
)

// String returns the policy name.
func (p RetainPolicy) String() string {
	switch p {
	case RetainNone:
		return "none"
	case RetainAll:
		return "all"
	default:
		return "unknown"
	}
}

// WithLogger sets the logger used by the cache instead of the package
// Logger. Passing nil restores the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRetain makes the cache hold its own reference to every loaded entry
// (RetainAll). Entries then survive their callers and persist until Unload
// or Clear.
func WithRetain() Option {
	return WithRetainPolicy(RetainAll)
}

// WithRetainPolicy sets the retain policy explicitly.
func WithRetainPolicy(p RetainPolicy) Option {
	return func(o *options) {
		o.retain = p
	}
}
