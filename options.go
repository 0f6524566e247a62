package mirrormap

import (
	"log/slog"

	"github.com/hupe1980/mirrormap/internal/resource"
	"github.com/hupe1980/mirrormap/internal/shm"
)

// Backing selects the kernel mechanism behind a mirror's storage.
type Backing = shm.Backing

const (
	// BackingNamed is an exclusively-created named object on the
	// shared-memory filesystem, unlinked once the mirror is established.
	// The default.
	BackingNamed = shm.BackingNamed
	// BackingMemfd is an anonymous Linux memfd. It never has a name in any
	// filesystem, so the unlink step is a recorded no-op.
	BackingMemfd = shm.BackingMemfd
)

// ResourceConfig re-exports the resource controller configuration.
type ResourceConfig = resource.Config

// ResourceController governs process-wide mapping budgets. A single
// controller can be shared by any number of mirrors.
type ResourceController = resource.Controller

// NewResourceController creates a controller for use with
// WithResourceController.
func NewResourceController(cfg ResourceConfig) *ResourceController {
	return resource.NewController(cfg)
}

type options struct {
	name             string
	backing          Backing
	dir              string
	prefault         bool
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *ResourceController
}

// Option configures mirror construction.
//
// Options exist to avoid exploding the API surface with constructor
// variants; the zero configuration is always valid.
type Option func(*options)

// WithName pins the backing object name instead of generating one.
//
// Named objects are created exclusively: if the name already exists,
// construction fails with ErrObjectCreate. A single leading slash is
// accepted for shm_open familiarity.
//
// Example:
//
//	m, err := mirrormap.New(length, mirrormap.WithName("/mmap4fun_mirror"))
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithBacking selects the kernel mechanism behind the mirror's storage.
//
// Example:
//
//	m, err := mirrormap.New(length, mirrormap.WithBacking(mirrormap.BackingMemfd))
func WithBacking(backing Backing) Option {
	return func(o *options) {
		o.backing = backing
	}
}

// WithDir overrides the directory named backing objects are created in.
// The default is the platform shared-memory directory (/dev/shm on Linux).
// Ignored for memfd backing.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithPrefault pre-faults the views at establish time, so first access
// never takes a page fault. Linux only; a no-op elsewhere.
func WithPrefault(prefault bool) Option {
	return func(o *options) {
		o.prefault = prefault
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. If nil is passed, NoopMetricsCollector is used.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mirrormap.BasicMetricsCollector{}
//	m, _ := mirrormap.New(length, mirrormap.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Maps: %d, Avg latency: %dns\n", stats.MapCount, stats.MapAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// If nil is passed, logging is disabled.
//
// Example with JSON logging:
//
//	logger := mirrormap.NewJSONLogger(slog.LevelInfo)
//	m, _ := mirrormap.New(length, mirrormap.WithLogger(logger))
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

// WithResourceController attaches a shared resource controller. The
// mirror's combined span is charged against the controller's memory
// budget for its lifetime, and Wipe obeys the controller's throughput
// limit. A nil controller means no limits.
func WithResourceController(rc *ResourceController) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
