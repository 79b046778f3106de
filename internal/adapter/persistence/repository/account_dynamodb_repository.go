package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultStaffTableName         = "staff"
	defaultClientsTableName       = "clients"
	defaultAccountEmailsTableName = "account_emails"
)

type staffItem struct {
	ID           int64    `dynamodbav:"id"`
	Email        string   `dynamodbav:"email"`
	FullName     string   `dynamodbav:"full_name"`
	PasswordHash string   `dynamodbav:"password_hash"`
	Roles        []string `dynamodbav:"roles"`
	Active       bool     `dynamodbav:"active"`
	CreatedAt    string   `dynamodbav:"created_at"`
}

type clientItem struct {
	ID           int64  `dynamodbav:"id"`
	Email        string `dynamodbav:"email"`
	FullName     string `dynamodbav:"full_name"`
	Phone        string `dynamodbav:"phone"`
	PasswordHash string `dynamodbav:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// StaffDynamoRepository persists Staff accounts in DynamoDB.
//
// Table requirements:
//   - staff: PK id (number)
//   - account_emails: PK email (string, prefixed "staff#" or "client#").
//     The marker item is written in the same transaction as the account and
//     carries the account id, so it doubles as the email lookup index.
type StaffDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	emailsTable string
}

var _ interfaces.IStaffRepository = (*StaffDynamoRepository)(nil)

func NewStaffDynamoRepository(ddb *dynamodb.Client) *StaffDynamoRepository {
	return &StaffDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("STAFF_TABLE", defaultStaffTableName),
		emailsTable: getenvDefault("ACCOUNT_EMAILS_TABLE", defaultAccountEmailsTableName),
	}
}

func (r *StaffDynamoRepository) Create(ctx context.Context, s entities.Staff) (entities.Staff, error) {
	av, err := attributevalue.MarshalMap(toStaffItem(s))
	if err != nil {
		return entities.Staff{}, err
	}
	if err := createAccountItem(ctx, r.ddb, r.tableName, av, r.emailsTable, staffEmailKey(s.Email), s.ID); err != nil {
		return entities.Staff{}, err
	}
	return s, nil
}

func (r *StaffDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Staff, error) {
	item, err := getAccountItem(ctx, r.ddb, r.tableName, id)
	if err != nil || item == nil {
		return entities.Staff{}, err
	}

	var it staffItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Staff{}, err
	}
	return fromStaffItem(it), nil
}

func (r *StaffDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Staff, error) {
	id, err := emailOwner(ctx, r.ddb, r.emailsTable, staffEmailKey(email))
	if err != nil || id == 0 {
		return entities.Staff{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *StaffDynamoRepository) StaffActive(ctx context.Context, staffID int64) (bool, error) {
	s, err := r.GetByID(ctx, staffID)
	if err != nil {
		return false, err
	}
	return s.ID != 0 && s.Active, nil
}

// ClientDynamoRepository persists Client accounts in DynamoDB.
//
// Table requirements:
//   - clients: PK id (number)
//   - account_emails: shared with StaffDynamoRepository.
type ClientDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	emailsTable string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
		emailsTable: getenvDefault("ACCOUNT_EMAILS_TABLE", defaultAccountEmailsTableName),
	}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(c))
	if err != nil {
		return entities.Client{}, err
	}
	if err := createAccountItem(ctx, r.ddb, r.tableName, av, r.emailsTable, clientEmailKey(c.Email), c.ID); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Client, error) {
	item, err := getAccountItem(ctx, r.ddb, r.tableName, id)
	if err != nil || item == nil {
		return entities.Client{}, err
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Client, error) {
	id, err := emailOwner(ctx, r.ddb, r.emailsTable, clientEmailKey(email))
	if err != nil || id == 0 {
		return entities.Client{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *ClientDynamoRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	c, err := r.GetByID(ctx, clientID)
	if err != nil {
		return false, err
	}
	return c.ID != 0, nil
}

func staffEmailKey(email string) string {
	return "staff#" + strings.ToLower(email)
}

func clientEmailKey(email string) string {
	return "client#" + strings.ToLower(email)
}

// createAccountItem writes the account item and its email marker atomically.
// A pre-existing marker cancels the transaction and maps to ErrEmailTaken.
func createAccountItem(ctx context.Context, ddb *dynamodb.Client, table string, item map[string]types.AttributeValue, emailsTable, emailKey string, id int64) error {
	_, err := ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(table),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			}},
			{Put: &types.Put{
				TableName: aws.String(emailsTable),
				Item: map[string]types.AttributeValue{
					"email":      &types.AttributeValueMemberS{Value: emailKey},
					"account_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
				},
				ConditionExpression: aws.String("attribute_not_exists(email)"),
			}},
		},
	})
	if err != nil {
		if transactCancelReasonIndex(err) == 1 {
			return interfaces.ErrEmailTaken
		}
		return err
	}
	return nil
}

func getAccountItem(ctx context.Context, ddb *dynamodb.Client, table string, id int64) (map[string]types.AttributeValue, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// emailOwner resolves an email marker to the owning account id, 0 when the
// marker does not exist.
func emailOwner(ctx context.Context, ddb *dynamodb.Client, table, emailKey string) (int64, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: emailKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 0, nil
	}

	var marker struct {
		AccountID int64 `dynamodbav:"account_id"`
	}
	if err := attributevalue.UnmarshalMap(out.Item, &marker); err != nil {
		return 0, err
	}
	return marker.AccountID, nil
}

func toStaffItem(s entities.Staff) staffItem {
	return staffItem{
		ID:           s.ID,
		Email:        s.Email,
		FullName:     s.FullName,
		PasswordHash: s.PasswordHash,
		Roles:        s.Roles,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromStaffItem(it staffItem) entities.Staff {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Staff{
		ID:           it.ID,
		Email:        it.Email,
		FullName:     it.FullName,
		PasswordHash: it.PasswordHash,
		Roles:        it.Roles,
		Active:       it.Active,
		CreatedAt:    createdAt,
	}
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ID:           c.ID,
		Email:        c.Email,
		FullName:     c.FullName,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromClientItem(it clientItem) entities.Client {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Client{
		ID:           it.ID,
		Email:        it.Email,
		FullName:     it.FullName,
		Phone:        it.Phone,
		PasswordHash: it.PasswordHash,
		CreatedAt:    createdAt,
	}
}
