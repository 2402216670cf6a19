package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/codec"
	"github.com/hupe1980/respool/internal/record"
	"github.com/hupe1980/respool/resource"
	"github.com/im7mortal/kmutex"
)

// Store is the durable key→value store of one pool.
// It is safe for concurrent use.
type Store struct {
	blobs       blobstore.BlobStore
	pool        string
	codec       codec.Codec
	compression record.Compression
	logger      *slog.Logger
	locks       *kmutex.Kmutex
}

// Option configures a Store.
type Option func(*Store)

// WithCodec sets the codec used for new records. Records written with any
// built-in codec stay readable.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithCompression sets the payload compression of new records.
func WithCompression(c record.Compression) Option {
	return func(s *Store) {
		s.compression = c
	}
}

// WithLogger sets the logger for skipped records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns the store of pool on blobs.
func New(blobs blobstore.BlobStore, pool string, opts ...Option) (*Store, error) {
	if err := validPool(pool); err != nil {
		return nil, err
	}
	s := &Store{
		blobs:  blobs,
		pool:   pool,
		codec:  codec.Default,
		logger: slog.New(slog.DiscardHandler),
		locks:  kmutex.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Pool returns the pool name.
func (s *Store) Pool() string {
	return s.pool
}

// Blobs returns the backing medium.
func (s *Store) Blobs() blobstore.BlobStore {
	return s.blobs
}

func (s *Store) id(name string) (resource.ID, error) {
	if name == "" {
		return resource.ID{}, ErrInvalidName
	}
	return resource.NewID(s.pool, name), nil
}

// Put stores value under name, replacing any previous value.
//
// Put fails with a SerializationError unless the value decodes back to an
// equal value of the same type.
func (s *Store) Put(ctx context.Context, name string, value any) error {
	id, err := s.id(name)
	if err != nil {
		return err
	}

	typ, payload, err := encodeValue(s.codec, value)
	if err != nil {
		return &SerializationError{ID: id, Err: err}
	}
	data, err := record.Encode(record.Header{
		Codec:       s.codec.Name(),
		Type:        typ,
		Pool:        id.Pool,
		Name:        id.Name,
		Compression: s.compression,
	}, payload)
	if err != nil {
		return &SerializationError{ID: id, Err: err}
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if err := s.blobs.Put(ctx, RecordPath(id), data); err != nil {
		return &StorageError{Op: "put", ID: id, Err: err}
	}
	return nil
}

// Get returns the value stored under name.
//
// The value has the type it was put with. A missing record yields ok=false
// and a nil error. So does a record that cannot be decoded, including one
// whose type is not registered in this process; it is logged and otherwise
// treated as absent. Only
// failures of the backing medium are returned as errors.
func (s *Store) Get(ctx context.Context, name string) (any, bool, error) {
	raw, ok, err := s.Raw(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}
	v, err := raw.Value()
	if err != nil {
		s.logger.WarnContext(ctx, "skipping undecodable resource",
			"pool", s.pool, "name", name, "codec", raw.Codec.Name(), "type", raw.Type, "error", err)
		return nil, false, nil
	}
	return v, true, nil
}

// Raw returns the undecoded payload stored under name.
func (s *Store) Raw(ctx context.Context, name string) (Raw, bool, error) {
	id, err := s.id(name)
	if err != nil {
		return Raw{}, false, err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	return readRecord(ctx, s.blobs, id, s.logger)
}

// Remove deletes name. Removing a missing name is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	id, err := s.id(name)
	if err != nil {
		return err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if err := s.blobs.Delete(ctx, RecordPath(id)); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return &StorageError{Op: "remove", ID: id, Err: err}
	}
	return nil
}

// Names returns the names of all records of the pool in path order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	paths, err := s.blobs.List(ctx, poolPrefix(s.pool))
	if err != nil {
		return nil, &StorageError{Op: "list", ID: resource.ID{Pool: s.pool}, Err: err}
	}
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		id, ok := ParsePath(p)
		if !ok || id.Pool != s.pool {
			continue
		}
		names = append(names, id.Name)
	}
	return names, nil
}

// List returns every decodable record of the pool as a local resource.
// Records removed while listing are left out. A failure to read any record
// fails the listing.
func (s *Store) List(ctx context.Context) (*resource.Set, error) {
	return s.list(ctx, true)
}

// ListAvailable is List without the all-or-nothing rule: records that
// cannot be read are logged and left out. It still fails if the pool's
// records cannot be enumerated.
func (s *Store) ListAvailable(ctx context.Context) (*resource.Set, error) {
	return s.list(ctx, false)
}

func (s *Store) list(ctx context.Context, strict bool) (*resource.Set, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return nil, err
	}
	set := resource.NewSet()
	for _, name := range names {
		v, ok, err := s.Get(ctx, name)
		if err != nil {
			if strict {
				return nil, err
			}
			s.logger.WarnContext(ctx, "skipping unreadable resource",
				"pool", s.pool, "name", name, "error", err)
			continue
		}
		if ok {
			set.Add(resource.NewLocal(resource.NewID(s.pool, name), v))
		}
	}
	return set, nil
}
