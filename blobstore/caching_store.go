package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/respool/internal/cache"
)

// CachingStore wraps a BlobStore and caches whole blobs on read.
//
// Put and Delete invalidate the cached entry before touching the inner
// store. Writes made by other processes directly against the inner store
// are not observed until the entry is evicted, so only put a CachingStore
// in front of a medium the process owns.
type CachingStore struct {
	inner BlobStore
	cache cache.Cache
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner BlobStore, c cache.Cache) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: c,
	}
}

// Open serves the blob from the cache, reading it through on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(ctx, name); ok {
		return NewBytesBlob(data), nil
	}

	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	data := make([]byte, b.Size())
	n, err := b.ReadAt(ctx, data, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	data = data[:n]

	s.cache.Set(ctx, name, data)
	return NewBytesBlob(data), nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Close releases the cache.
func (s *CachingStore) Close() error {
	return s.cache.Close()
}

func (s *CachingStore) invalidate(name string) {
	s.cache.Invalidate(func(key string) bool {
		return key == name
	})
}
