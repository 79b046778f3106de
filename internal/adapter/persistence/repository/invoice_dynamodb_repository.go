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
	defaultInvoicesTableName       = "invoices"
	defaultInvoiceNumbersTableName = "invoice_numbers"
)

type invoiceItem struct {
	OrderID     int64   `dynamodbav:"order_id"`
	Number      string  `dynamodbav:"number"`
	AccessKey   string  `dynamodbav:"access_key"`
	SubTotal    float64 `dynamodbav:"sub_total"`
	Tax         float64 `dynamodbav:"tax"`
	TotalAmount float64 `dynamodbav:"total_amount"`
	Status      string  `dynamodbav:"status"`
	IssuedAt    string  `dynamodbav:"issued_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - invoices: PK order_id (number). Keying by order id is what enforces
//     the at-most-one-invoice-per-order rule at the store.
//   - invoice_numbers: PK number (string). A marker item written in the same
//     transaction backstops number uniqueness; the atomic counter is the
//     primary protection, the marker converts a missed race into a
//     retryable failure instead of a duplicate.
type InvoiceDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	numbersTable string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		numbersTable: getenvDefault("INVOICE_NUMBERS_TABLE", defaultInvoiceNumbersTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(order_id)"),
			}},
			{Put: &types.Put{
				TableName: aws.String(r.numbersTable),
				Item: map[string]types.AttributeValue{
					"number":   &types.AttributeValueMemberS{Value: inv.Number},
					"order_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(inv.OrderID, 10)},
				},
				ConditionExpression: aws.String("attribute_not_exists(#number)"),
				ExpressionAttributeNames: map[string]string{
					"#number": "number",
				},
			}},
		},
	})
	if err != nil {
		switch transactCancelReasonIndex(err) {
		case 0:
			return entities.Invoice{}, interfaces.ErrInvoiceExists
		case 1:
			return entities.Invoice{}, interfaces.ErrNumberTaken
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByOrderID(ctx context.Context, orderID int64) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(orderID, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) MarkPaid(ctx context.Context, orderID int64) (entities.Invoice, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(orderID, 10)},
		},
		ConditionExpression: aws.String("attribute_exists(order_id)"),
		UpdateExpression:    aws.String("SET #status = :paid, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":paid":       &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPaid)},
			":updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		OrderID:     inv.OrderID,
		Number:      inv.Number,
		AccessKey:   inv.AccessKey,
		SubTotal:    inv.SubTotal,
		Tax:         inv.Tax,
		TotalAmount: inv.TotalAmount,
		Status:      string(inv.Status),
		IssuedAt:    inv.IssuedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   inv.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	issuedAt, _ := time.Parse(time.RFC3339Nano, it.IssuedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Invoice{
		OrderID:     it.OrderID,
		Number:      it.Number,
		AccessKey:   it.AccessKey,
		SubTotal:    it.SubTotal,
		Tax:         it.Tax,
		TotalAmount: it.TotalAmount,
		Status:      entities.InvoiceStatus(it.Status),
		IssuedAt:    issuedAt,
		UpdatedAt:   updatedAt,
	}
}
