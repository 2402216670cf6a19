package shared

import (
	"context"
	"testing"

	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/internal/fs"
	"github.com/hupe1980/respool/resource"
	"github.com/hupe1980/respool/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnector_SharedRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	writer, err := store.New(blobstore.NewLocalStore(root), "writer")
	require.NoError(t, err)
	require.NoError(t, writer.Put(ctx, "a", "A"))
	require.NoError(t, writer.Put(ctx, "b", "B"))

	c := New(blobstore.NewLocalStore(root))
	set, err := c.GetAllResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	r, ok := set.Get(resource.NewID("writer", "a"))
	require.True(t, ok)
	require.True(t, r.IsRemote())
	v, ok := r.Value(ctx)
	require.True(t, ok)
	assert.Equal(t, "A", v)

	// Stubs re-read on every access.
	require.NoError(t, writer.Put(ctx, "a", "A2"))
	v, ok = r.Value(ctx)
	require.True(t, ok)
	assert.Equal(t, "A2", v)

	require.NoError(t, writer.Remove(ctx, "a"))
	_, ok = r.Value(ctx)
	assert.False(t, ok)
}

func TestConnector_Failures(t *testing.T) {
	ctx := context.Background()
	faulty := fs.NewFaultyFS(nil)
	blobs := blobstore.NewLocalStoreFS(faulty, t.TempDir())

	w, err := store.New(blobs, "sharedpool")
	require.NoError(t, err)
	require.NoError(t, w.Put(ctx, "x", 1))

	c := New(blobs)

	faulty.AddRule("x.res", fs.Fault{FailOnOpen: true})
	_, ok := c.ReadResource(ctx, resource.NewID("sharedpool", "x"))
	assert.False(t, ok)

	faulty.AddRule("sharedpool", fs.Fault{FailOnList: true})
	_, err = c.GetAllResources(ctx)
	assert.ErrorIs(t, err, fs.ErrInjected)

	_, ok = c.ReadResource(ctx, resource.ID{})
	assert.False(t, ok)
}
