package slicemap

import (
	"log/slog"
	"math"
)

// MaxItems is the largest number of items a container can address.
// Ranges are stored as uint32 bounds.
const MaxItems = math.MaxUint32

// maxItemsInt is MaxItems clamped to the platform int.
const maxItemsInt = min(MaxItems, math.MaxInt)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	maxItems         int
	itemCapacity     int
	sliceCapacity    int
}

// Option configures a SliceMap.
type Option func(*options)

// WithLogger sets the logger used for structured operation logs.
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the collector notified after every add, remove
// and clear. If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMaxItems lowers the item ceiling below MaxItems.
//
// An add that would push the item count past n fails with a CapacityError.
// Values outside [0, MaxItems] are clamped.
func WithMaxItems(n int) Option {
	return func(o *options) {
		o.maxItems = min(max(n, 0), maxItemsInt)
	}
}

// WithItemCapacity pre-allocates room for n items in growable item buffers.
// Ignored by fixed-capacity constructors.
func WithItemCapacity(n int) Option {
	return func(o *options) {
		o.itemCapacity = n
	}
}

// WithSliceCapacity pre-allocates room for n slices in growable registries.
// Ignored by fixed-capacity constructors.
func WithSliceCapacity(n int) Option {
	return func(o *options) {
		o.sliceCapacity = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		maxItems:         maxItemsInt,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
