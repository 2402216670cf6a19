package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/codec"
	"github.com/hupe1980/respool/internal/record"
	"github.com/hupe1980/respool/resource"
)

// Raw is an undecoded record payload together with the codec that wrote it
// and the registered name of the value's type.
type Raw struct {
	Codec   codec.Codec
	Type    string
	Payload []byte
}

// Decode unmarshals the payload into v.
func (r Raw) Decode(v any) error {
	return r.Codec.Unmarshal(r.Payload, v)
}

// Value decodes the payload into a value of its recorded type.
func (r Raw) Value() (any, error) {
	return decodeValue(r.Codec, r.Type, r.Payload)
}

// ErrMismatch is logged for records whose header names another resource
// than their path.
var ErrMismatch = errors.New("record header does not match its path")

func readRecord(ctx context.Context, blobs blobstore.BlobStore, id resource.ID, logger *slog.Logger) (Raw, bool, error) {
	data, err := blobstore.ReadAll(ctx, blobs, RecordPath(id))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return Raw{}, false, nil
		}
		return Raw{}, false, &StorageError{Op: "get", ID: id, Err: err}
	}

	raw, err := decodeRecord(id, data)
	if err != nil {
		logger.WarnContext(ctx, "skipping corrupt resource record",
			"pool", id.Pool, "name", id.Name, "error", err)
		return Raw{}, false, nil
	}
	return raw, true, nil
}

func decodeRecord(id resource.ID, data []byte) (Raw, error) {
	h, payload, err := record.Decode(data)
	if err != nil {
		return Raw{}, err
	}
	if h.Pool != id.Pool || h.Name != id.Name {
		return Raw{}, fmt.Errorf("%w: %s/%s", ErrMismatch, h.Pool, h.Name)
	}
	c, ok := codec.ByName(h.Codec)
	if !ok {
		return Raw{}, fmt.Errorf("unknown codec %q", h.Codec)
	}
	return Raw{Codec: c, Type: h.Type, Payload: payload}, nil
}
