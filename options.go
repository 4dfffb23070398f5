package fastbump

import "time"

const (
	// DefaultCapacity is the capacity NewConcurrent uses when given a
	// non-positive one.
	DefaultCapacity = 64

	// DefaultPressureThreshold is the fill ratio at which a concurrent arena
	// warns that it is about to run out of slots.
	DefaultPressureThreshold = 0.875

	// DefaultPressureInterval is the minimum time between two pressure
	// warnings of the same arena.
	DefaultPressureInterval = time.Second
)

// MemoryAcquirer is charged for the slot storage of a ConcurrentArena.
//
// TryAcquireMemory must not block: it is called from NewConcurrent and Grow,
// and a refusal surfaces as an error from those calls. *resource.Controller
// implements it.
type MemoryAcquirer interface {
	TryAcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

type options struct {
	logger            *Logger
	name              string
	metricsCollector  MetricsCollector
	acquirer          MemoryAcquirer
	pressureThreshold float64
	pressureInterval  time.Duration
}

func defaultOptions() options {
	return options{
		logger:            NoopLogger(),
		metricsCollector:  NoopMetricsCollector{},
		pressureThreshold: DefaultPressureThreshold,
		pressureInterval:  DefaultPressureInterval,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.name != "" {
		o.logger = o.logger.WithArena(o.name)
	}
	return o
}

// Option configures an arena.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithName tags log records and String output with the arena's name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetricsCollector sets the metrics collector for lifecycle events.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryAcquirer charges the slot storage of a ConcurrentArena to acq.
// The sequential Arena grows through append and ignores it.
func WithMemoryAcquirer(acq MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acq
	}
}

// WithPressureThreshold sets the fill ratio in (0, 1] at which a concurrent
// arena reports capacity pressure. Any other value disables the warning.
func WithPressureThreshold(ratio float64) Option {
	return func(o *options) {
		o.pressureThreshold = ratio
	}
}

// WithPressureInterval sets the minimum time between pressure warnings.
// Zero or negative reports every crossing.
func WithPressureInterval(d time.Duration) Option {
	return func(o *options) {
		o.pressureInterval = d
	}
}
