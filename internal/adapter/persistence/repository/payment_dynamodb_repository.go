package repository

import (
	"context"
	"strconv"
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsOrderIDIndex     = "order_id-index"
)

type paymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	OrderID            int64                  `dynamodbav:"order_id"`
	InvoiceNumber      string                 `dynamodbav:"invoice_number"`
	Amount             float64                `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, the provider payment id)
//   - GSI: order_id-index (PK: order_id)
type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID int64) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberN{Value: strconv.FormatInt(orderID, 10)},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		OrderID:            p.OrderID,
		InvoiceNumber:      p.InvoiceNumber,
		Amount:             p.Amount,
		Date:               p.Date.UTC().Format(time.RFC3339Nano),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	return entities.Payment{
		ID:                 it.ID,
		OrderID:            it.OrderID,
		InvoiceNumber:      it.InvoiceNumber,
		Amount:             it.Amount,
		Date:               dt,
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
