package minio

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/respool/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_KeyMapping(t *testing.T) {
	s := NewStore(nil, "bucket", "root/")
	assert.Equal(t, "root/pool/a.res", s.key("pool/a.res"))
	assert.Equal(t, "pool/a.res", s.name("root/pool/a.res"))

	bare := NewStore(nil, "bucket", "")
	assert.Equal(t, "pool/a.res", bare.key("pool/a.res"))
	assert.Equal(t, "pool/a.res", bare.name("pool/a.res"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}
	bucket := "test-respool"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "pool/test.res", data))

	got, err := blobstore.ReadAll(ctx, store, "pool/test.res")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "pool/")
	require.NoError(t, err)
	assert.Contains(t, names, "pool/test.res")

	require.NoError(t, store.Delete(ctx, "pool/test.res"))
	_, err = store.Open(ctx, "pool/test.res")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
