package repository

import (
	"context"

	"servitec/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCountersTableName = "counters"

// CounterDynamoRepository allocates monotonic sequence values with a
// DynamoDB atomic counter, one item per scope.
//
// Table requirements:
//   - counters: PK scope (string)
type CounterDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICounterRepository = (*CounterDynamoRepository)(nil)

func NewCounterDynamoRepository(ddb *dynamodb.Client) *CounterDynamoRepository {
	return &CounterDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

// Next increments and returns the counter for the given scope. The ADD
// action creates the item on first use, so the first value is always 1.
func (r *CounterDynamoRepository) Next(ctx context.Context, scope string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"scope": &types.AttributeValueMemberS{Value: scope},
		},
		UpdateExpression: aws.String("ADD #current :one"),
		ExpressionAttributeNames: map[string]string{
			"#current": "current",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	var counter struct {
		Current int64 `dynamodbav:"current"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, err
	}
	return counter.Current, nil
}
