package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	assert.True(t, c.TryAcquireMemory(50))
	assert.True(t, c.TryAcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Over the limit
	assert.False(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	assert.True(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	assert.True(t, c.TryAcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_RemoteConcurrency(t *testing.T) {
	c := NewController(Config{MaxRemoteCalls: 2})
	ctx := context.Background()

	require.NoError(t, c.AcquireRemote(ctx))
	require.NoError(t, c.AcquireRemote(ctx))
	assert.Equal(t, int64(2), c.RemoteInFlight())

	// Third caller blocks until its context expires.
	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireRemote(tctx), context.DeadlineExceeded)

	c.ReleaseRemote()
	require.NoError(t, c.AcquireRemote(ctx))
	assert.Equal(t, int64(2), c.RemoteInFlight())
}

func TestController_RemoteRate(t *testing.T) {
	c := NewController(Config{RemoteCallsPerSec: 1})
	ctx := context.Background()

	require.NoError(t, c.AcquireRemote(ctx))
	c.ReleaseRemote()

	// The bucket is empty; the next token is a second away.
	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireRemote(tctx))
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.NoError(t, c.AcquireRemote(context.Background()))
	c.ReleaseRemote()
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, c.RemoteInFlight())
}
