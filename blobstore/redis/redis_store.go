// Package redis provides a Redis implementation of the blobstore.BlobStore
// interface. Each blob is one string key; SET replaces it atomically.
package redis

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hupe1980/respool/blobstore"
)

// Client is the subset of the go-redis API used by Store.
// *redis.Client and *redis.ClusterClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

var (
	_ Client = (*redis.Client)(nil)
	_ Client = (*redis.ClusterClient)(nil)
)

const scanBatch = 256

// Store implements blobstore.BlobStore on Redis.
type Store struct {
	client Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires blobs after ttl. Zero (default) keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore creates a Redis blob store. rootPrefix is prepended to all keys.
func NewStore(client Client, rootPrefix string, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: strings.TrimSuffix(rootPrefix, "/"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return blobstore.NewBytesBlob(data), nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.key(name), data, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.key(name)).Err()
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	match := globEscape(s.key(prefix)) + "*"

	seen := make(map[string]struct{})
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if s.prefix != "" {
				k = strings.TrimPrefix(k, s.prefix+"/")
			}
			// SCAN may return a key more than once.
			seen[k] = struct{}{}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// globEscape escapes the glob metacharacters understood by SCAN MATCH.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
