// Package hub connects resource pools living in the same process.
//
// A Hub is an explicit registry: pools join and leave it, and any number of
// independent hubs may exist side by side.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hupe1980/respool/resource"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateMember is returned when a second member joins under a taken name.
var ErrDuplicateMember = errors.New("hub: member name already joined")

// Member is a pool reachable through a hub.
type Member interface {
	// Name returns the pool name.
	Name() string
	// Names lists the pool's local resource names.
	Names(ctx context.Context) ([]string, error)
	// ReadLocal reads a local resource without consulting any connector.
	ReadLocal(ctx context.Context, name string) (any, bool)
}

// Hub is an in-process resource.Connector.
type Hub struct {
	mu      sync.RWMutex
	members map[string]Member
	order   []string

	logger      *slog.Logger
	concurrency int
}

var _ resource.Connector = (*Hub)(nil)

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger for members skipped during listing.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithConcurrency bounds how many members are listed in parallel.
func WithConcurrency(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.concurrency = n
		}
	}
}

// New creates an empty hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		members:     make(map[string]Member),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Join registers m. Joining the same member twice is a no-op.
func (h *Hub) Join(m Member) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := m.Name()
	if cur, ok := h.members[name]; ok {
		if cur == m {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDuplicateMember, name)
	}
	h.members[name] = m
	h.order = append(h.order, name)
	return nil
}

// Leave unregisters the member named name.
func (h *Hub) Leave(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.members[name]; !ok {
		return
	}
	delete(h.members, name)
	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Members returns the member names in join order.
func (h *Hub) Members() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

func (h *Hub) snapshot() []Member {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Member, len(h.order))
	for i, n := range h.order {
		out[i] = h.members[n]
	}
	return out
}

// GetAllResources lists every member in parallel and returns stubs in join
// order. A member that fails to list is logged and skipped.
func (h *Hub) GetAllResources(ctx context.Context) (*resource.Set, error) {
	members := h.snapshot()
	names := make([][]string, len(members))

	var g errgroup.Group
	g.SetLimit(h.concurrency)
	for i, m := range members {
		g.Go(func() error {
			n, err := m.Names(ctx)
			if err != nil {
				h.logger.WarnContext(ctx, "skipping pool in listing", "pool", m.Name(), "error", err)
				return nil
			}
			names[i] = n
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := resource.NewSet()
	for i, m := range members {
		for _, n := range names[i] {
			set.Add(resource.NewRemote(resource.NewID(m.Name(), n), h))
		}
	}
	return set, nil
}

// ReadResource reads id from its owning member.
func (h *Hub) ReadResource(ctx context.Context, id resource.ID) (any, bool) {
	h.mu.RLock()
	m, ok := h.members[id.Pool]
	h.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return m.ReadLocal(ctx, id.Name)
}
