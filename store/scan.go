package store

import (
	"context"
	"log/slog"

	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/resource"
)

// Scan returns the IDs of the records of every pool on blobs, in path order.
// Blobs that are not resource records are ignored.
func Scan(ctx context.Context, blobs blobstore.BlobStore) ([]resource.ID, error) {
	paths, err := blobs.List(ctx, "")
	if err != nil {
		return nil, &StorageError{Op: "scan", Err: err}
	}
	ids := make([]resource.ID, 0, len(paths))
	for _, p := range paths {
		if id, ok := ParsePath(p); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Read decodes the record of id from blobs, whatever pool owns it.
// It follows the same rules as Store.Get but takes no lock: records are
// replaced atomically, so an unlocked read never sees a partial write.
func Read(ctx context.Context, blobs blobstore.BlobStore, id resource.ID, logger *slog.Logger) (any, bool, error) {
	if id.Pool == "" || id.Name == "" {
		return nil, false, ErrInvalidName
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	raw, ok, err := readRecord(ctx, blobs, id, logger)
	if err != nil || !ok {
		return nil, false, err
	}
	v, err := raw.Value()
	if err != nil {
		logger.WarnContext(ctx, "skipping undecodable resource",
			"pool", id.Pool, "name", id.Name, "type", raw.Type, "error", err)
		return nil, false, nil
	}
	return v, true, nil
}
