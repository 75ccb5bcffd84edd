package geoquad

import (
	"log/slog"

	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index/quadtree"
)

type options struct {
	capacity      int
	maxDepth      int
	engine        geometry.Engine
	logger        *Logger
	metrics       MetricsCollector
	propertyIndex bool
}

// Option configures QuadTree construction behavior.
type Option func(*options)

// WithCapacity configures the leaf capacity threshold: a leaf holding
// this many points subdivides on the next insertion. Default: 4.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithMaxDepth configures the subdivision depth cap. A leaf at this
// depth accepts points past the capacity threshold instead of splitting,
// which keeps construction terminating for coincident points and
// degenerate bounding boxes. Default: 32.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithGeometryEngine configures the engine answering geometric
// predicates during overlap queries. Default: geometry.Default, an
// orb-backed engine with the exclusive boundary policy.
//
// Example with boundary points included:
//
//	qt, _ := geoquad.New(points,
//	    geoquad.WithGeometryEngine(geometry.NewOrbEngine(geometry.WithIncludeBoundary(true))),
//	)
func WithGeometryEngine(engine geometry.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithPropertyIndex controls whether a Roaring-bitmap inverted index is
// built over point properties at construction time. The index
// accelerates property-filtered overlap queries; disable it when points
// carry no properties. Default: enabled.
func WithPropertyIndex(enabled bool) Option {
	return func(o *options) {
		o.propertyIndex = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
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

func applyOptions(optFns []Option) options {
	o := options{
		capacity:      quadtree.DefaultOptions.Capacity,
		maxDepth:      quadtree.DefaultOptions.MaxDepth,
		metrics:       NoopMetricsCollector{},
		logger:        NoopLogger(),
		propertyIndex: true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
