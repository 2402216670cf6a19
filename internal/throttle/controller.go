package throttle

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds throttling limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for cached record bytes.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxRemoteCalls is the maximum number of concurrent remote calls.
	// If 0, unlimited.
	MaxRemoteCalls int64

	// RemoteCallsPerSec is the maximum rate at which remote calls start.
	// If 0, unlimited.
	RemoteCallsPerSec float64
}

// Controller manages memory and remote call budgets.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Remote concurrency
	remoteSem      *semaphore.Weighted // nil if unlimited
	remoteInFlight atomic.Int64

	// Remote rate
	limiter *rate.Limiter
}

// NewController creates a new controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.MaxRemoteCalls > 0 {
		c.remoteSem = semaphore.NewWeighted(cfg.MaxRemoteCalls)
	}

	if cfg.RemoteCallsPerSec > 0 {
		burst := int(cfg.RemoteCallsPerSec)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RemoteCallsPerSec), burst)
	}

	return c
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireRemote waits for a remote call slot and a rate token.
// Every successful call must be paired with ReleaseRemote.
func (c *Controller) AcquireRemote(ctx context.Context) error {
	if c == nil {
		return nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if c.remoteSem != nil {
		if err := c.remoteSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	c.remoteInFlight.Add(1)
	return nil
}

// ReleaseRemote releases a slot taken by AcquireRemote.
func (c *Controller) ReleaseRemote() {
	if c == nil {
		return
	}
	if c.remoteSem != nil {
		c.remoteSem.Release(1)
	}
	c.remoteInFlight.Add(-1)
}

// RemoteInFlight returns the number of remote calls holding a slot.
func (c *Controller) RemoteInFlight() int64 {
	if c == nil {
		return 0
	}
	return c.remoteInFlight.Load()
}
