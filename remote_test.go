package respool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	set := resource.NewSet(
		resource.NewRemote(resource.NewID("b", "x"), nil),
		resource.NewRemote(resource.NewID("c", "x"), nil),
		resource.NewRemote(resource.NewID("a", "x"), nil),
		resource.NewRemote(resource.NewID("b", "y"), nil),
	)

	r, ok := pick(set, "a", "x")
	require.True(t, ok)
	assert.Equal(t, resource.NewID("a", "x"), r.ID())

	r, ok = pick(set, "z", "x")
	require.True(t, ok)
	assert.Equal(t, resource.NewID("b", "x"), r.ID())

	r, ok = pick(set, "z", "y")
	require.True(t, ok)
	assert.Equal(t, resource.NewID("b", "y"), r.ID())

	_, ok = pick(set, "a", "missing")
	assert.False(t, ok)
	_, ok = pick(resource.NewSet(), "a", "x")
	assert.False(t, ok)
}

func TestCallRemote(t *testing.T) {
	p, err := New("p", blobstore.NewMemoryStore(), nil,
		WithRemoteTimeout(30*time.Millisecond),
		WithThrottle(ThrottleConfig{MaxRemoteCalls: 1}),
	)
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()

	t.Run("result", func(t *testing.T) {
		v, ok, err := p.callRemote(ctx, func(context.Context) (any, bool, error) { return 42, true, nil })
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 42, v)
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		_, _, err := p.callRemote(ctx, func(context.Context) (any, bool, error) { return nil, false, boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("panic", func(t *testing.T) {
		_, ok, err := p.callRemote(ctx, func(context.Context) (any, bool, error) { panic("bad connector") })
		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "bad connector")
	})

	t.Run("timeout releases slot when call finishes", func(t *testing.T) {
		release := make(chan struct{})
		_, _, err := p.callRemote(ctx, func(context.Context) (any, bool, error) {
			<-release
			return nil, true, nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int64(1), p.throttle.RemoteInFlight())

		// The only slot is still held by the abandoned call.
		_, _, err = p.callRemote(ctx, func(context.Context) (any, bool, error) { return nil, true, nil })
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		assert.Eventually(t, func() bool { return p.throttle.RemoteInFlight() == 0 }, time.Second, 5*time.Millisecond)

		_, ok, err := p.callRemote(ctx, func(context.Context) (any, bool, error) { return nil, true, nil })
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestFetchDirectoryWithoutConnector(t *testing.T) {
	p, err := New("p", blobstore.NewMemoryStore(), nil)
	require.NoError(t, err)
	defer p.Close()

	set, err := p.fetchDirectory(context.Background())
	require.NoError(t, err)
	assert.Zero(t, set.Len())
}
