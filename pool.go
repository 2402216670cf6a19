package respool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hupe1980/respool/backend"
	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/codec"
	"github.com/hupe1980/respool/config"
	"github.com/hupe1980/respool/connector/hub"
	"github.com/hupe1980/respool/internal/cache"
	"github.com/hupe1980/respool/internal/record"
	"github.com/hupe1980/respool/internal/throttle"
	"github.com/hupe1980/respool/resource"
	"github.com/hupe1980/respool/store"
	"golang.org/x/sync/singleflight"
)

// Pool is a named resource pool: a durable local store plus transparent
// lookup of names held by peer pools through a connector.
//
// A Pool is safe for concurrent use. It holds no lock across remote calls.
type Pool struct {
	name      string
	store     *store.Store
	connector resource.Connector
	opts      options
	logger    *Logger
	throttle  *throttle.Controller

	directory singleflight.Group
	closers   []io.Closer
	closed    atomic.Bool
}

var _ hub.Member = (*Pool)(nil)

// New creates the pool name on blobs. connector may be nil for a pool
// without peers.
//
// Records already on blobs under name become visible immediately, which is
// how a pool recovers its contents after a restart.
func New(name string, blobs blobstore.BlobStore, connector resource.Connector, opts ...Option) (*Pool, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty pool name", ErrInvalidName)
	}
	if blobs == nil {
		return nil, errors.New("nil blob store")
	}

	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	p := &Pool{
		name:      name,
		connector: connector,
		opts:      o,
		logger:    o.logger.WithPool(name),
		throttle:  throttle.NewController(o.throttle),
	}

	if o.cacheBytes > 0 {
		cs := blobstore.NewCachingStore(blobs, cache.NewLRU(o.cacheBytes, p.throttle))
		p.closers = append(p.closers, cs)
		blobs = cs
	}

	st, err := store.New(blobs, name,
		store.WithCodec(o.codec),
		store.WithCompression(o.compression),
		store.WithLogger(p.logger.Logger),
	)
	if err != nil {
		for _, c := range p.closers {
			_ = c.Close()
		}
		return nil, translateError(err)
	}
	p.store = st
	return p, nil
}

// Open creates a pool from configuration, building the backing medium it
// names. Options are applied after the configured settings.
func Open(ctx context.Context, cfg config.Config, connector resource.Connector, opts ...Option) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, _ := codec.ByName(cfg.Codec)
	comp, _ := record.ParseCompression(cfg.Compression)

	blobs, closer, err := backend.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithLogLevel(ParseLevel(cfg.LogLevel)),
		WithCodec(c),
		WithCompression(comp),
		WithRemoteTimeout(cfg.RemoteTimeout),
		WithCache(cfg.CacheBytes),
		WithThrottle(ThrottleConfig{
			MemoryLimitBytes:  cfg.CacheBytes,
			MaxRemoteCalls:    cfg.MaxRemoteCalls,
			RemoteCallsPerSec: cfg.RemoteCallsPerSec,
		}),
	}
	p, err := New(cfg.PoolName, blobs, connector, append(base, opts...)...)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	p.closers = append(p.closers, closer)
	return p, nil
}

// Name returns the pool name.
func (p *Pool) Name() string {
	return p.name
}

// Put stores value under name, replacing any previous value. The write is
// durable when Put returns nil.
func (p *Pool) Put(ctx context.Context, name string, value any) error {
	if p.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := translateError(p.store.Put(ctx, name, value))
	p.opts.metricsCollector.RecordPut(time.Since(start), err)
	p.logger.LogPut(ctx, name, err)
	return err
}

// Get returns the value of name, looking in the local store first and then
// in the connector's directory.
//
// On a local miss an entry of this pool wins over entries of other pools;
// otherwise the first entry with the same name in directory order is read.
// Any failure, including a remote timeout, is reported as a miss.
func (p *Pool) Get(ctx context.Context, name string) (any, bool) {
	start := time.Now()
	v, lookup := p.get(ctx, name)
	p.recordGet(ctx, name, start, lookup)
	return v, lookup != LookupMiss
}

func (p *Pool) get(ctx context.Context, name string) (any, Lookup) {
	if p.closed.Load() || name == "" {
		return nil, LookupMiss
	}
	if v, ok := p.ReadLocal(ctx, name); ok {
		return v, LookupLocal
	}
	if v, ok := p.getRemote(ctx, name); ok {
		return v, LookupRemote
	}
	return nil, LookupMiss
}

// GetFrom reads name from the pool called pool. For this pool's own name
// only the local store is consulted.
func (p *Pool) GetFrom(ctx context.Context, pool, name string) (any, bool) {
	start := time.Now()
	v, lookup := p.getFrom(ctx, pool, name)
	p.recordGet(ctx, name, start, lookup)
	return v, lookup != LookupMiss
}

func (p *Pool) getFrom(ctx context.Context, pool, name string) (any, Lookup) {
	if p.closed.Load() || pool == "" || name == "" {
		return nil, LookupMiss
	}
	if pool == p.name {
		if v, ok := p.ReadLocal(ctx, name); ok {
			return v, LookupLocal
		}
		return nil, LookupMiss
	}
	if p.connector == nil {
		return nil, LookupMiss
	}
	if v, ok := p.resolve(ctx, resource.NewRemote(resource.NewID(pool, name), p.connector)); ok {
		return v, LookupRemote
	}
	return nil, LookupMiss
}

// GetAs is Get converted to T.
//
// A value stored as T is returned as is. Other values are converted with
// resource.As, so a struct can be read as a compatible struct or a map.
func GetAs[T any](ctx context.Context, p *Pool, name string) (T, bool) {
	var zero T
	start := time.Now()

	v, lookup := p.get(ctx, name)
	if lookup == LookupMiss {
		p.recordGet(ctx, name, start, LookupMiss)
		return zero, false
	}
	out, err := resource.As[T](v)
	if err != nil {
		p.logger.DebugContext(ctx, "value does not convert", "name", name, "lookup", lookup.String(), "error", err)
		p.recordGet(ctx, name, start, LookupMiss)
		return zero, false
	}
	p.recordGet(ctx, name, start, lookup)
	return out, true
}

func (p *Pool) recordGet(ctx context.Context, name string, start time.Time, lookup Lookup) {
	p.opts.metricsCollector.RecordGet(time.Since(start), lookup)
	p.logger.LogGet(ctx, name, lookup)
}

// Remove deletes name from the local store. Removing a missing name is not
// an error. Copies held by other pools are untouched.
func (p *Pool) Remove(ctx context.Context, name string) error {
	if p.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := translateError(p.store.Remove(ctx, name))
	p.opts.metricsCollector.RecordRemove(time.Since(start), err)
	p.logger.LogRemove(ctx, name, err)
	return err
}

// GetAll returns the local resources followed by the connector's directory.
// Local entries win over remote entries with the same ID. Failures degrade
// to a partial result: unreadable local records and an unreachable
// connector are left out.
func (p *Pool) GetAll(ctx context.Context) *resource.Set {
	if p.closed.Load() {
		return resource.NewSet()
	}
	start := time.Now()

	local, err := p.store.ListAvailable(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "local listing failed", "error", err)
		local = resource.NewSet()
	}
	remote, err := p.fetchDirectory(ctx)
	if err != nil {
		remote = nil
	}

	all := local.Union(remote)
	p.opts.metricsCollector.RecordGetAll(all.Len(), time.Since(start))
	return all
}

// LocalResources returns the local resources only. Unlike GetAll it reports
// storage failures.
func (p *Pool) LocalResources(ctx context.Context) (*resource.Set, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	set, err := p.store.List(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return set, nil
}

// Names returns the names held by the local store.
func (p *Pool) Names(ctx context.Context) ([]string, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	names, err := p.store.Names(ctx)
	return names, translateError(err)
}

// ReadLocal reads name from the local store without consulting the
// connector. Connectors use it to serve reads from peers.
func (p *Pool) ReadLocal(ctx context.Context, name string) (any, bool) {
	if p.closed.Load() {
		return nil, false
	}
	v, ok, err := p.store.Get(ctx, name)
	if err != nil {
		p.logger.WarnContext(ctx, "local read failed", "name", name, "error", err)
		return nil, false
	}
	return v, ok
}

// Close releases the read cache and any client built by Open. The store
// contents are unaffected. Close is idempotent.
func (p *Pool) Close() error {
	if p == nil || !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	var errs []error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
