// Package multi combines several connectors into one.
package multi

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hupe1980/respool/resource"
	"golang.org/x/sync/errgroup"
)

// Connector fans out to its connectors in order.
//
// Listings are merged in connector order with the first occurrence of an
// ID winning. Stubs stay bound to the connector that listed them. A listing
// fails only when every connector fails.
type Connector struct {
	conns  []resource.Connector
	logger *slog.Logger
}

var _ resource.Connector = (*Connector)(nil)

// Option configures a Connector.
type Option func(*Connector)

// WithLogger sets the logger for failed listings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connector) {
		if l != nil {
			c.logger = l
		}
	}
}

// New combines conns. Nil connectors are ignored.
func New(conns []resource.Connector, opts ...Option) *Connector {
	c := &Connector{logger: slog.New(slog.DiscardHandler)}
	for _, conn := range conns {
		if conn != nil {
			c.conns = append(c.conns, conn)
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAllResources lists all connectors in parallel.
func (c *Connector) GetAllResources(ctx context.Context) (*resource.Set, error) {
	sets := make([]*resource.Set, len(c.conns))
	errs := make([]error, len(c.conns))

	var g errgroup.Group
	for i, conn := range c.conns {
		g.Go(func() error {
			sets[i], errs[i] = conn.GetAllResources(ctx)
			return nil
		})
	}
	_ = g.Wait()

	out := resource.NewSet()
	var failed []error
	for i := range c.conns {
		if errs[i] != nil {
			c.logger.WarnContext(ctx, "connector listing failed", "connector", i, "error", errs[i])
			failed = append(failed, errs[i])
			continue
		}
		out = out.Union(sets[i])
	}
	if len(c.conns) > 0 && len(failed) == len(c.conns) {
		return nil, errors.Join(failed...)
	}
	return out, nil
}

// ReadResource returns the first successful read, trying connectors in order.
func (c *Connector) ReadResource(ctx context.Context, id resource.ID) (any, bool) {
	for _, conn := range c.conns {
		if ctx.Err() != nil {
			return nil, false
		}
		if v, ok := conn.ReadResource(ctx, id); ok {
			return v, true
		}
	}
	return nil, false
}
