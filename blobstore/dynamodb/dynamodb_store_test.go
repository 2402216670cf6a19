package dynamodb

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/respool/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock. Scan returns one item per page.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue
	err   error
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func keyOf(item map[string]types.AttributeValue) string {
	return item[keyAttr].(*types.AttributeValueMemberS).Value
}

func (m *mockDDBClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.GetItemOutput{Item: m.items[keyOf(params.Key)]}, nil
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.items[keyOf(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, keyOf(params.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (m *mockDDBClient) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	prefix := params.ExpressionAttributeValues[":p"].(*types.AttributeValueMemberS).Value
	var keys []string
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	after := ""
	if params.ExclusiveStartKey != nil {
		after = keyOf(params.ExclusiveStartKey)
	}
	for i, k := range keys {
		if after != "" && k <= after {
			continue
		}
		out := &dynamodb.ScanOutput{}
		if strings.HasPrefix(k, prefix) {
			out.Items = []map[string]types.AttributeValue{{keyAttr: &types.AttributeValueMemberS{Value: k}}}
		}
		if i < len(keys)-1 {
			out.LastEvaluatedKey = map[string]types.AttributeValue{keyAttr: &types.AttributeValueMemberS{Value: k}}
		}
		return out, nil
	}
	return &dynamodb.ScanOutput{}, nil
}

func TestStore_Lifecycle(t *testing.T) {
	client := newMockDDBClient()
	store := NewStore(client, "respool", "root/")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "pool/a.res", []byte("A")))
	assert.Contains(t, client.items, "root/pool/a.res")

	got, err := blobstore.ReadAll(ctx, store, "pool/a.res")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))

	require.NoError(t, store.Delete(ctx, "pool/a.res"))
	_, err = store.Open(ctx, "pool/a.res")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	client := newMockDDBClient()
	store := NewStore(client, "respool", "")
	ctx := context.Background()

	for _, n := range []string{"p/b.res", "q/x.res", "p/a.res", "r/y.res"} {
		require.NoError(t, store.Put(ctx, n, []byte(n)))
	}

	names, err := store.List(ctx, "p/")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/a.res", "p/b.res"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestStore_Errors(t *testing.T) {
	client := newMockDDBClient()
	client.err = errors.New("throttled")
	store := NewStore(client, "respool", "")
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "a", nil))
	_, err := store.Open(ctx, "a")
	assert.Error(t, err)
	_, err = store.List(ctx, "")
	assert.Error(t, err)
}
