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
	defaultOrdersTableName  = "service_orders"
	defaultHistoryTableName = "order_status_history"
	ordersClientIDIndex     = "client_id-index"
)

type orderPartItem struct {
	Name     string  `dynamodbav:"name"`
	Price    float64 `dynamodbav:"price"`
	Quantity int     `dynamodbav:"quantity"`
}

type serviceOrderItem struct {
	ID             int64           `dynamodbav:"id"`
	Tag            string          `dynamodbav:"tag"`
	Status         string          `dynamodbav:"status"`
	ProformaStatus string          `dynamodbav:"proforma_status"`
	ClientID       int64           `dynamodbav:"client_id"`
	EquipmentID    int64           `dynamodbav:"equipment_id"`
	ReceptionistID int64           `dynamodbav:"receptionist_id"`
	TechnicianID   *int64          `dynamodbav:"technician_id,omitempty"`
	Diagnosis      string          `dynamodbav:"diagnosis,omitempty"`
	Parts          []orderPartItem `dynamodbav:"parts,omitempty"`
	TotalPrice     float64         `dynamodbav:"total_price"`
	Notes          string          `dynamodbav:"notes,omitempty"`
	HistorySeq     int64           `dynamodbav:"history_seq"`
	CreatedAt      string          `dynamodbav:"created_at"`
	UpdatedAt      string          `dynamodbav:"updated_at"`
}

type orderHistoryItem struct {
	OrderID   int64  `dynamodbav:"order_id"`
	Seq       int64  `dynamodbav:"seq"`
	Status    string `dynamodbav:"status"`
	Notes     string `dynamodbav:"notes,omitempty"`
	ChangedBy *int64 `dynamodbav:"changed_by,omitempty"`
	Timestamp string `dynamodbav:"timestamp"`
}

// ServiceOrderDynamoRepository persists ServiceOrder entities and their
// append-only status history in DynamoDB.
//
// Table requirements:
//   - service_orders: PK id (number), GSI client_id-index (PK: client_id)
//   - order_status_history: PK order_id (number), SK seq (number)
//
// Status moves and history appends always travel in one TransactWriteItems
// call conditioned on the expected status and history sequence: two
// concurrent transitions from the same starting state can never both land.
type ServiceOrderDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	historyTable string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		historyTable: getenvDefault("ORDER_HISTORY_TABLE", defaultHistoryTableName),
	}
}

// Create writes the order and its first history row transactionally, so a
// stored order always has at least the "received" ledger entry.
func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	orderAV, err := attributevalue.MarshalMap(toServiceOrderItem(o))
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	receptionist := o.ReceptionistID
	historyAV, err := attributevalue.MarshalMap(orderHistoryItem{
		OrderID:   o.ID,
		Seq:       1,
		Status:    string(o.Status),
		Notes:     "order received",
		ChangedBy: &receptionist,
		Timestamp: o.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     orderAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.historyTable),
				Item:                historyAV,
				ConditionExpression: aws.String("attribute_not_exists(order_id)"),
			}},
		},
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id int64) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) ListByClientID(ctx context.Context, clientID int64) ([]entities.ServiceOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberN{Value: strconv.FormatInt(clientID, 10)},
		},
	})
	if err != nil {
		return nil, err
	}

	orders := make([]entities.ServiceOrder, 0, len(out.Items))
	for _, raw := range out.Items {
		var it serviceOrderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		orders = append(orders, fromServiceOrderItem(it))
	}
	return orders, nil
}

// UpdateQuote writes parts and total price, conditioned on the order still
// sitting in diagnosed. A conditional failure means the order moved under
// the caller and surfaces as ErrStatusConflict.
func (r *ServiceOrderDynamoRepository) UpdateQuote(ctx context.Context, id int64, parts []entities.OrderPart, totalPrice float64) (entities.ServiceOrder, error) {
	items := make([]orderPartItem, 0, len(parts))
	for _, p := range parts {
		items = append(items, orderPartItem(p))
	}
	partsAV, err := attributevalue.Marshal(items)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :diagnosed"),
		UpdateExpression:    aws.String("SET #parts = :parts, #total_price = :total_price, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#status":      "status",
			"#parts":       "parts",
			"#total_price": "total_price",
			"#updated_at":  "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":diagnosed":   &types.AttributeValueMemberS{Value: string(entities.StatusDiagnosed)},
			":parts":       partsAV,
			":total_price": &types.AttributeValueMemberN{Value: strconv.FormatFloat(totalPrice, 'f', -1, 64)},
			":updated_at":  &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ServiceOrder{}, interfaces.ErrStatusConflict
		}
		return entities.ServiceOrder{}, err
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

// TransitionStatus applies one lifecycle move: the order row update and the
// history append are a single transaction conditioned on the expected
// current status and history sequence. Nothing is observably applied when
// either condition fails.
func (r *ServiceOrderDynamoRepository) TransitionStatus(ctx context.Context, cmd interfaces.TransitionCommand) (entities.ServiceOrder, error) {
	now := time.Now().UTC()
	newSeq := cmd.ExpectedHistorySeq + 1

	updateExpr := "SET #status = :to, #proforma_status = :ps, #history_seq = :new_seq, #updated_at = :now"
	names := map[string]string{
		"#id":              "id",
		"#status":          "status",
		"#proforma_status": "proforma_status",
		"#history_seq":     "history_seq",
		"#updated_at":      "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from":    &types.AttributeValueMemberS{Value: string(cmd.From)},
		":to":      &types.AttributeValueMemberS{Value: string(cmd.To)},
		":ps":      &types.AttributeValueMemberS{Value: string(cmd.ProformaStatus)},
		":seq":     &types.AttributeValueMemberN{Value: strconv.FormatInt(cmd.ExpectedHistorySeq, 10)},
		":new_seq": &types.AttributeValueMemberN{Value: strconv.FormatInt(newSeq, 10)},
		":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
	}
	if cmd.Diagnosis != nil {
		updateExpr += ", #diagnosis = :diagnosis"
		names["#diagnosis"] = "diagnosis"
		values[":diagnosis"] = &types.AttributeValueMemberS{Value: *cmd.Diagnosis}
	}
	if cmd.Technician != nil {
		updateExpr += ", #technician_id = :technician_id"
		names["#technician_id"] = "technician_id"
		values[":technician_id"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*cmd.Technician, 10)}
	}
	if cmd.ClearQuote {
		updateExpr += ", #total_price = :zero REMOVE #parts"
		names["#total_price"] = "total_price"
		names["#parts"] = "parts"
		values[":zero"] = &types.AttributeValueMemberN{Value: "0"}
	}

	historyAV, err := attributevalue.MarshalMap(orderHistoryItem{
		OrderID:   cmd.OrderID,
		Seq:       newSeq,
		Status:    string(cmd.To),
		Notes:     cmd.Notes,
		ChangedBy: cmd.ChangedBy,
		Timestamp: now.Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(cmd.OrderID, 10)},
				},
				ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from AND #history_seq = :seq"),
				UpdateExpression:          aws.String(updateExpr),
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.historyTable),
				Item:                historyAV,
				ConditionExpression: aws.String("attribute_not_exists(order_id)"),
			}},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ServiceOrder{}, interfaces.ErrStatusConflict
		}
		return entities.ServiceOrder{}, err
	}

	return r.GetByID(ctx, cmd.OrderID)
}

func (r *ServiceOrderDynamoRepository) ListHistory(ctx context.Context, orderID int64) ([]entities.OrderStatusHistory, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.historyTable),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberN{Value: strconv.FormatInt(orderID, 10)},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	history := make([]entities.OrderStatusHistory, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderHistoryItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, it.Timestamp)
		history = append(history, entities.OrderStatusHistory{
			OrderID:   it.OrderID,
			Seq:       it.Seq,
			Status:    entities.OrderStatus(it.Status),
			Notes:     it.Notes,
			ChangedBy: it.ChangedBy,
			Timestamp: ts,
		})
	}
	return history, nil
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	parts := make([]orderPartItem, 0, len(o.Parts))
	for _, p := range o.Parts {
		parts = append(parts, orderPartItem(p))
	}
	return serviceOrderItem{
		ID:             o.ID,
		Tag:            o.Tag,
		Status:         string(o.Status),
		ProformaStatus: string(o.ProformaStatus),
		ClientID:       o.ClientID,
		EquipmentID:    o.EquipmentID,
		ReceptionistID: o.ReceptionistID,
		TechnicianID:   o.TechnicianID,
		Diagnosis:      o.Diagnosis,
		Parts:          parts,
		TotalPrice:     o.TotalPrice,
		Notes:          o.Notes,
		HistorySeq:     o.HistorySeq,
		CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	parts := make([]entities.OrderPart, 0, len(it.Parts))
	for _, p := range it.Parts {
		parts = append(parts, entities.OrderPart(p))
	}
	return entities.ServiceOrder{
		ID:             it.ID,
		Tag:            it.Tag,
		Status:         entities.OrderStatus(it.Status),
		ProformaStatus: entities.ProformaStatus(it.ProformaStatus),
		ClientID:       it.ClientID,
		EquipmentID:    it.EquipmentID,
		ReceptionistID: it.ReceptionistID,
		TechnicianID:   it.TechnicianID,
		Diagnosis:      it.Diagnosis,
		Parts:          parts,
		TotalPrice:     it.TotalPrice,
		Notes:          it.Notes,
		HistorySeq:     it.HistorySeq,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}
