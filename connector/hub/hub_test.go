package hub

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hupe1980/respool/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMember struct {
	name    string
	mu      sync.Mutex
	values  map[string]any
	order   []string
	listErr error
}

func newFakeMember(name string, kv ...any) *fakeMember {
	m := &fakeMember{name: name, values: map[string]any{}}
	for i := 0; i < len(kv); i += 2 {
		k := kv[i].(string)
		m.values[k] = kv[i+1]
		m.order = append(m.order, k)
	}
	return m
}

func (m *fakeMember) Name() string { return m.name }

func (m *fakeMember) Names(context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...), nil
}

func (m *fakeMember) ReadLocal(_ context.Context, name string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	return v, ok
}

func TestHub_JoinLeave(t *testing.T) {
	h := New()
	a := newFakeMember("a")

	require.NoError(t, h.Join(a))
	require.NoError(t, h.Join(a))
	assert.ErrorIs(t, h.Join(newFakeMember("a")), ErrDuplicateMember)

	require.NoError(t, h.Join(newFakeMember("b")))
	assert.Equal(t, []string{"a", "b"}, h.Members())

	h.Leave("a")
	h.Leave("unknown")
	assert.Equal(t, []string{"b"}, h.Members())
}

func TestHub_GetAllResources(t *testing.T) {
	ctx := context.Background()
	h := New(WithConcurrency(2))
	require.NoError(t, h.Join(newFakeMember("a", "x", 1, "y", 2)))
	require.NoError(t, h.Join(newFakeMember("b", "x", 3)))
	broken := newFakeMember("c", "z", 4)
	broken.listErr = errors.New("unreachable")
	require.NoError(t, h.Join(broken))

	set, err := h.GetAllResources(ctx)
	require.NoError(t, err)

	var ids []resource.ID
	for r := range set.All() {
		assert.True(t, r.IsRemote())
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []resource.ID{
		resource.NewID("a", "x"),
		resource.NewID("a", "y"),
		resource.NewID("b", "x"),
	}, ids)

	r, _ := set.Get(resource.NewID("b", "x"))
	v, ok := r.Value(ctx)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestHub_ReadResource(t *testing.T) {
	ctx := context.Background()
	h := New()
	a := newFakeMember("a", "x", "X")
	require.NoError(t, h.Join(a))

	v, ok := h.ReadResource(ctx, resource.NewID("a", "x"))
	require.True(t, ok)
	assert.Equal(t, "X", v)

	_, ok = h.ReadResource(ctx, resource.NewID("a", "missing"))
	assert.False(t, ok)
	_, ok = h.ReadResource(ctx, resource.NewID("gone", "x"))
	assert.False(t, ok)

	// A stub outlives its owner's membership and then resolves to nothing.
	stub := resource.NewRemote(resource.NewID("a", "x"), h)
	h.Leave("a")
	_, ok = stub.Value(ctx)
	assert.False(t, ok)
}

func TestHub_CancelledListing(t *testing.T) {
	h := New()
	require.NoError(t, h.Join(newFakeMember("a", "x", 1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.GetAllResources(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
