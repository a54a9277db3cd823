package repository

import (
	"context"
	"sort"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/database"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentItem struct {
	ID         string                 `dynamodbav:"id"`
	PaymentID  string                 `dynamodbav:"payment_id"`
	BookingID  string                 `dynamodbav:"booking_id"`
	OrderID    string                 `dynamodbav:"order_id"`
	Provider   string                 `dynamodbav:"provider"`
	Amount     string                 `dynamodbav:"amount"`
	Currency   string                 `dynamodbav:"currency"`
	Status     string                 `dynamodbav:"status"`
	Source     string                 `dynamodbav:"source"`
	Date       string                 `dynamodbav:"date"`
	Payload    map[string]interface{} `dynamodbav:"payload,omitempty"`
	PayloadRaw string                 `dynamodbav:"payload_raw,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: booking_id-index (PK: booking_id)
type PaymentDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
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
		if isConditionalCheckFailed(err) {
			return entities.Payment{}, interfaces.ErrAlreadyExists
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByBookingID(ctx context.Context, bookingID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.PaymentsBookingIDIndex),
		KeyConditionExpression: aws.String("booking_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: bookingID},
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
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:         p.ID,
		PaymentID:  p.PaymentID,
		BookingID:  p.BookingID,
		OrderID:    p.OrderID,
		Provider:   p.Provider,
		Amount:     p.Amount.String(),
		Currency:   p.Currency,
		Status:     string(p.Status),
		Source:     string(p.Source),
		Date:       formatTime(p.Date),
		Payload:    p.Payload,
		PayloadRaw: string(p.PayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:        it.ID,
		PaymentID: it.PaymentID,
		BookingID: it.BookingID,
		OrderID:   it.OrderID,
		Provider:  it.Provider,
		Amount:    parseDecimal(it.Amount),
		Currency:  it.Currency,
		Status:    entities.PaymentStatus(it.Status),
		Source:    entities.ConfirmationSource(it.Source),
		Date:      parseTime(it.Date),
		Payload:   it.Payload,
	}
	if it.PayloadRaw != "" {
		p.PayloadRaw = []byte(it.PayloadRaw)
	}
	return p
}
