package polyvec

import (
	"log/slog"

	"github.com/hupe1980/polyvec/internal/layout"
	"github.com/hupe1980/polyvec/resource"
)

// Footprint selects how many arena bytes each element reserves.
type Footprint = layout.Footprint

const (
	// FootprintPadded reserves size + alignment, rounded up to 8 bytes.
	// Consecutive elements are at least size+alignment apart.
	FootprintPadded = layout.Padded
	// FootprintCompact reserves the size rounded up to 8 bytes.
	FootprintCompact = layout.Compact
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	offHeap          bool
	footprint        Footprint
}

// Option configures a container.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for arena events.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &polyvec.BasicMetricsCollector{}
//	v := polyvec.New[fmt.Stringer](polyvec.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
//	fmt.Printf("Grows: %d, Shifted: %d bytes\n", stats.GrowCount, stats.ShiftedBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for arena events.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := polyvec.NewJSONLogger(slog.LevelDebug)
//	v := polyvec.New[fmt.Stringer](polyvec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithMemoryController charges the arena capacity against c. Growth beyond
// the controller's limit fails with an error matching
// resource.ErrMemoryLimitExceeded; infallible growth panics with it.
// One controller may be shared by many containers.
func WithMemoryController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithOffHeap backs the arena with anonymous memory mappings instead of the
// Go heap. The garbage collector never scans or moves off-heap storage.
// Call Free when done; mappings are not reclaimed by the garbage collector.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

// WithFootprint selects the per-element reservation policy.
// The default is FootprintPadded.
func WithFootprint(f Footprint) Option {
	return func(o *options) {
		o.footprint = f
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		footprint:        FootprintPadded,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
