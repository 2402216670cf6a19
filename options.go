package respool

import (
	"log/slog"
	"time"

	"github.com/hupe1980/respool/codec"
	"github.com/hupe1980/respool/internal/record"
	"github.com/hupe1980/respool/internal/throttle"
)

// Compression selects the payload compression of stored records.
type Compression = record.Compression

// Supported compressions.
const (
	CompressionNone = record.CompressionNone
	CompressionLZ4  = record.CompressionLZ4
	CompressionZSTD = record.CompressionZSTD
)

// ThrottleConfig bounds remote calls and cached bytes.
type ThrottleConfig = throttle.Config

// DefaultRemoteTimeout bounds each remote call unless configured otherwise.
const DefaultRemoteTimeout = 5 * time.Second

type options struct {
	codec            codec.Codec
	compression      Compression
	remoteTimeout    time.Duration
	metricsCollector MetricsCollector
	logger           *Logger
	cacheBytes       int64
	throttle         ThrottleConfig
}

func defaultOptions() options {
	return options{
		codec:            codec.Default,
		compression:      CompressionNone,
		remoteTimeout:    DefaultRemoteTimeout,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures a Pool.
type Option func(*options)

// WithCodec configures the codec used for new records.
// Records written with any built-in codec remain readable.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures payload compression for new records.
// Payloads that do not shrink are stored uncompressed.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithRemoteTimeout bounds every remote call. A call that does not finish in
// time counts as a miss; if the connector ignores cancellation the call is
// abandoned.
//
// Zero or negative values restore DefaultRemoteTimeout.
func WithRemoteTimeout(d time.Duration) Option {
	return func(o *options) {
		if d <= 0 {
			d = DefaultRemoteTimeout
		}
		o.remoteTimeout = d
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &respool.BasicMetricsCollector{}
//	p, _ := respool.New("worker-1", blobs, conn, respool.WithMetricsCollector(metrics))
//	// ... use p ...
//	stats := metrics.GetStats()
//	fmt.Printf("Gets: %d, remote hits: %d\n", stats.GetCount, stats.GetRemoteHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := respool.NewJSONLogger(slog.LevelInfo)
//	p, _ := respool.New("worker-1", blobs, conn, respool.WithLogger(logger))
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

// WithCache puts a read-through LRU of the given byte capacity in front of
// the backing medium. Only use it when this pool is the sole writer of its
// records on that medium.
func WithCache(bytes int64) Option {
	return func(o *options) {
		o.cacheBytes = bytes
	}
}

// WithThrottle limits concurrent remote calls, their start rate and the
// memory charged by the read cache.
func WithThrottle(cfg ThrottleConfig) Option {
	return func(o *options) {
		o.throttle = cfg
	}
}
