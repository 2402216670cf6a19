package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/respool/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConnector struct {
	mock.Mock
}

func (m *mockConnector) GetAllResources(ctx context.Context) (*resource.Set, error) {
	args := m.Called(ctx)
	set, _ := args.Get(0).(*resource.Set)
	return set, args.Error(1)
}

func (m *mockConnector) ReadResource(ctx context.Context, id resource.ID) (any, bool) {
	args := m.Called(ctx, id)
	return args.Get(0), args.Bool(1)
}

func TestConnector_GetAllResources(t *testing.T) {
	ctx := context.Background()
	first, second, broken := new(mockConnector), new(mockConnector), new(mockConnector)

	first.On("GetAllResources", mock.Anything).Return(resource.NewSet(
		resource.NewRemote(resource.NewID("a", "x"), first),
	), nil)
	second.On("GetAllResources", mock.Anything).Return(resource.NewSet(
		resource.NewRemote(resource.NewID("a", "x"), second),
		resource.NewRemote(resource.NewID("b", "y"), second),
	), nil)
	broken.On("GetAllResources", mock.Anything).Return(nil, errors.New("down"))

	c := New([]resource.Connector{first, nil, broken, second})
	set, err := c.GetAllResources(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	// The first connector's stub wins and stays bound to it.
	first.On("ReadResource", mock.Anything, resource.NewID("a", "x")).Return("from-first", true).Once()
	r, _ := set.Get(resource.NewID("a", "x"))
	v, ok := r.Value(ctx)
	require.True(t, ok)
	assert.Equal(t, "from-first", v)
	second.AssertNotCalled(t, "ReadResource", mock.Anything, resource.NewID("a", "x"))
}

func TestConnector_AllFail(t *testing.T) {
	a, b := new(mockConnector), new(mockConnector)
	a.On("GetAllResources", mock.Anything).Return(nil, errors.New("a down"))
	b.On("GetAllResources", mock.Anything).Return(nil, errors.New("b down"))

	_, err := New([]resource.Connector{a, b}).GetAllResources(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a down")
	assert.Contains(t, err.Error(), "b down")

	set, err := New(nil).GetAllResources(context.Background())
	require.NoError(t, err)
	assert.Zero(t, set.Len())
}

func TestConnector_ReadResource(t *testing.T) {
	ctx := context.Background()
	id := resource.NewID("p", "n")
	a, b := new(mockConnector), new(mockConnector)
	a.On("ReadResource", mock.Anything, id).Return(nil, false)
	b.On("ReadResource", mock.Anything, id).Return(42, true)

	v, ok := New([]resource.Connector{a, b}).ReadResource(ctx, id)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = New([]resource.Connector{a}).ReadResource(ctx, id)
	assert.False(t, ok)
}
