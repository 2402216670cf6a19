// Package shared connects pools that store their records on one backing
// medium: a network filesystem, an S3 or MinIO bucket, a Redis instance or a
// DynamoDB table. Pools discover each other by scanning the medium, so no
// registry or peer addressing is needed.
package shared

import (
	"context"
	"log/slog"

	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/resource"
	"github.com/hupe1980/respool/store"
)

// Connector is a resource.Connector over a shared blobstore.BlobStore.
type Connector struct {
	blobs  blobstore.BlobStore
	logger *slog.Logger
}

var _ resource.Connector = (*Connector)(nil)

// Option configures a Connector.
type Option func(*Connector)

// WithLogger sets the logger for failed reads.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connector) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a connector over blobs.
func New(blobs blobstore.BlobStore, opts ...Option) *Connector {
	c := &Connector{
		blobs:  blobs,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAllResources returns a stub for every record on the medium, including
// the caller's own.
func (c *Connector) GetAllResources(ctx context.Context) (*resource.Set, error) {
	ids, err := store.Scan(ctx, c.blobs)
	if err != nil {
		return nil, err
	}
	set := resource.NewSet()
	for _, id := range ids {
		set.Add(resource.NewRemote(id, c))
	}
	return set, nil
}

// ReadResource reads the current record of id.
func (c *Connector) ReadResource(ctx context.Context, id resource.ID) (any, bool) {
	v, ok, err := store.Read(ctx, c.blobs, id, c.logger)
	if err != nil {
		c.logger.WarnContext(ctx, "remote read failed", "pool", id.Pool, "name", id.Name, "error", err)
		return nil, false
	}
	return v, ok
}
