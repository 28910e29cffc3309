package s3

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB is an in-memory stand-in for the DynamoDB pointer table. It
// honors the attribute_not_exists condition the pointer relies on.
type fakeDDB struct {
	mu      sync.Mutex
	items   map[string]map[uint64]string // forest_uri -> version -> snapshot
	onQuery func()                       // runs after each Query, outside the lock
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: make(map[string]map[uint64]string)}
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uri := params.Item["forest_uri"].(*types.AttributeValueMemberS).Value
	name := params.Item["snapshot"].(*types.AttributeValueMemberS).Value
	version, err := strconv.ParseUint(params.Item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
	if err != nil {
		return nil, err
	}

	if f.items[uri] == nil {
		f.items[uri] = make(map[uint64]string)
	}
	if _, exists := f.items[uri][version]; exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[uri][version] = name
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	out, err := f.query(params)
	if f.onQuery != nil {
		f.onQuery()
	}
	return out, err
}

func (f *fakeDDB) query(params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uri := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value
	rows := f.items[uri]
	if len(rows) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}

	versions := make([]uint64, 0, len(rows))
	for v := range rows {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })

	latest := versions[0]
	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{
				"forest_uri": &types.AttributeValueMemberS{Value: uri},
				"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(latest, 10)},
				"snapshot":   &types.AttributeValueMemberS{Value: rows[latest]},
			},
		},
	}, nil
}

// seed installs a committed version directly, bypassing the pointer.
func (f *fakeDDB) seed(uri string, version uint64, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[uri] == nil {
		f.items[uri] = make(map[uint64]string)
	}
	f.items[uri][version] = name
}

func TestPointerLatestEmpty(t *testing.T) {
	p := NewPointer(newFakeDDB(), "snapshots", "s3://bucket/forest")

	_, _, err := p.Latest(context.Background())
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestPointerCommitAndLatest(t *testing.T) {
	ctx := context.Background()
	p := NewPointer(newFakeDDB(), "snapshots", "s3://bucket/forest")

	v, err := p.Commit(ctx, "forest-v1.frs")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = p.Commit(ctx, "forest-v2.frs")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	name, version, err := p.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "forest-v2.frs", name)
	assert.Equal(t, uint64(2), version)
}

func TestPointerConcurrentCommit(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()

	a := NewPointer(ddb, "snapshots", "s3://bucket/forest")
	b := NewPointer(ddb, "snapshots", "s3://bucket/forest")

	_, err := a.Commit(ctx, "first.frs")
	require.NoError(t, err)

	// Another writer claims version 2 between b's read of the latest
	// version and its conditional write.
	ddb.onQuery = func() {
		ddb.onQuery = nil
		ddb.seed("s3://bucket/forest", 2, "sniped.frs")
	}
	_, err = b.Commit(ctx, "second.frs")
	require.ErrorIs(t, err, ErrConcurrentCommit)

	// The winner's snapshot stays latest.
	name, version, err := a.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sniped.frs", name)
	assert.Equal(t, uint64(2), version)
}

func TestPointerIsolatesForests(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()

	a := NewPointer(ddb, "snapshots", "s3://bucket/forest-a")
	b := NewPointer(ddb, "snapshots", "s3://bucket/forest-b")

	_, err := a.Commit(ctx, "a-v1.frs")
	require.NoError(t, err)

	_, _, err = b.Latest(ctx)
	require.ErrorIs(t, err, ErrNoSnapshot)
}
