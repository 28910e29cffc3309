package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentCommit is returned when another writer committed a snapshot
// version first.
var ErrConcurrentCommit = errors.New("concurrent snapshot commit detected")

// ErrNoSnapshot is returned when no snapshot has been committed yet.
var ErrNoSnapshot = errors.New("no committed snapshot")

// DDBClient is the subset of the DynamoDB API the pointer needs.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Pointer tracks the latest committed forest snapshot in a DynamoDB table,
// keyed by forest URI with a monotonically increasing version. Conditional
// writes provide the compare-and-swap that S3 lacks, so concurrent
// trainers cannot clobber each other's publishes.
//
// Table schema:
//   - Partition key: forest_uri (string)
//   - Sort key: version (number)
type Pointer struct {
	client    DDBClient
	tableName string
	forestURI string
}

// NewPointer creates a snapshot pointer for one forest. forestURI is the
// partition key, conventionally "s3://bucket/prefix".
func NewPointer(client DDBClient, tableName, forestURI string) *Pointer {
	return &Pointer{
		client:    client,
		tableName: tableName,
		forestURI: forestURI,
	}
}

// Latest returns the blob name and version of the most recently committed
// snapshot, or ErrNoSnapshot.
func (p *Pointer) Latest(ctx context.Context) (string, uint64, error) {
	version, name, err := p.latest(ctx)
	if err != nil {
		return "", 0, err
	}
	if version == 0 {
		return "", 0, ErrNoSnapshot
	}
	return name, version, nil
}

// Commit atomically records name as the next snapshot version. It fails
// with ErrConcurrentCommit if another writer claimed the version first.
func (p *Pointer) Commit(ctx context.Context, name string) (uint64, error) {
	current, _, err := p.latest(ctx)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = p.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(p.tableName),
		Item: map[string]types.AttributeValue{
			"forest_uri": &types.AttributeValueMemberS{Value: p.forestURI},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"snapshot":   &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentCommit
		}
		return 0, fmt.Errorf("commit snapshot version: %w", err)
	}
	return next, nil
}

func (p *Pointer) latest(ctx context.Context) (uint64, string, error) {
	resp, err := p.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(p.tableName),
		KeyConditionExpression: aws.String("forest_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: p.forestURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query snapshot pointer: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute")
	}
	nameAttr, ok := item["snapshot"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse snapshot version: %w", err)
	}
	return version, nameAttr.Value, nil
}
