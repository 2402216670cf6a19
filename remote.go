package respool

import (
	"context"
	"fmt"

	"github.com/hupe1980/respool/resource"
)

const directoryKey = "directory"

type remoteResult struct {
	value any
	ok    bool
	err   error
}

// callRemote runs fn under the remote timeout and the throttle. It returns
// when fn does or when the deadline passes; a connector that ignores
// cancellation is left to finish in the background.
func (p *Pool) callRemote(ctx context.Context, fn func(context.Context) (any, bool, error)) (any, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.remoteTimeout)
	defer cancel()

	if err := p.throttle.AcquireRemote(ctx); err != nil {
		return nil, false, err
	}

	done := make(chan remoteResult, 1)
	go func() {
		defer p.throttle.ReleaseRemote()
		defer func() {
			if r := recover(); r != nil {
				done <- remoteResult{err: fmt.Errorf("connector panic: %v", r)}
			}
		}()
		v, ok, err := fn(ctx)
		done <- remoteResult{value: v, ok: ok, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.ok, r.err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// fetchDirectory returns the connector's directory. Concurrent callers share
// one in-flight fetch; nothing is cached between fetches.
func (p *Pool) fetchDirectory(ctx context.Context) (*resource.Set, error) {
	if p.connector == nil {
		return resource.NewSet(), nil
	}

	// The shared fetch must outlive any single caller.
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.directory.DoChan(directoryKey, func() (any, error) {
		v, _, err := p.callRemote(fetchCtx, func(ctx context.Context) (any, bool, error) {
			set, err := p.connector.GetAllResources(ctx)
			return set, err == nil, err
		})
		return v, err
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			p.remoteFailed(ctx, "directory", resource.ID{}, r.Err)
			return nil, r.Err
		}
		set, _ := r.Val.(*resource.Set)
		return set, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) getRemote(ctx context.Context, name string) (any, bool) {
	set, err := p.fetchDirectory(ctx)
	if err != nil {
		return nil, false
	}
	r, ok := pick(set, p.name, name)
	if !ok {
		return nil, false
	}
	return p.resolve(ctx, r)
}

// pick applies the collision policy: this pool's entry, else the first
// entry with the same name.
func pick(set *resource.Set, self, name string) (resource.Resource, bool) {
	if r, ok := set.Get(resource.NewID(self, name)); ok {
		return r, true
	}
	for r := range set.All() {
		if r.ID().Name == name {
			return r, true
		}
	}
	return resource.Resource{}, false
}

func (p *Pool) resolve(ctx context.Context, r resource.Resource) (any, bool) {
	if r.IsLocal() {
		return r.Value(ctx)
	}
	v, ok, err := p.callRemote(ctx, func(ctx context.Context) (any, bool, error) {
		v, ok := r.Value(ctx)
		return v, ok, nil
	})
	if err != nil {
		p.remoteFailed(ctx, "read", r.ID(), err)
		return nil, false
	}
	return v, ok
}

func (p *Pool) remoteFailed(ctx context.Context, op string, id resource.ID, err error) {
	p.opts.metricsCollector.RecordRemoteFailure(op)
	p.logger.LogRemoteFailure(ctx, op, id, err)
}
