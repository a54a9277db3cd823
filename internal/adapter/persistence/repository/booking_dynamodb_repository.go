package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/database"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type bookingItem struct {
	ID            string `dynamodbav:"id"`
	Kind          string `dynamodbav:"kind"`
	ItemID        string `dynamodbav:"item_id"`
	ItemName      string `dynamodbav:"item_name"`
	CustomerName  string `dynamodbav:"customer_name"`
	CustomerEmail string `dynamodbav:"customer_email"`
	CustomerPhone string `dynamodbav:"customer_phone,omitempty"`
	TravelDate    string `dynamodbav:"travel_date"`
	Guests        int    `dynamodbav:"guests"`
	UnitPrice     string `dynamodbav:"unit_price"`
	Amount        string `dynamodbav:"amount"`
	Currency      string `dynamodbav:"currency"`
	Status        string `dynamodbav:"status"`
	// GSI keys must be absent rather than empty.
	OrderID      string `dynamodbav:"order_id,omitempty"`
	PaymentID    string `dynamodbav:"payment_id,omitempty"`
	Provider     string `dynamodbav:"provider,omitempty"`
	ConfirmedVia string `dynamodbav:"confirmed_via,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
//   - GSI: customer_email-index (PK: customer_email)
type BookingDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb *dynamodb.Client, tableName string) *BookingDynamoRepository {
	return &BookingDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *BookingDynamoRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	av, err := attributevalue.MarshalMap(toBookingItem(b))
	if err != nil {
		return entities.Booking{}, err
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
			return entities.Booking{}, interfaces.ErrAlreadyExists
		}
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}
	return unmarshalBooking(out.Item)
}

func (r *BookingDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Booking, error) {
	items, err := r.query(ctx, database.BookingsOrderIDIndex, "order_id", orderID)
	if err != nil {
		return entities.Booking{}, err
	}
	if len(items) == 0 {
		return entities.Booking{}, nil
	}
	// GSIs are eventually consistent; re-read the base item.
	return r.GetByID(ctx, items[0].ID)
}

func (r *BookingDynamoRepository) ListByCustomerEmail(ctx context.Context, email string) ([]entities.Booking, error) {
	return r.query(ctx, database.BookingsCustomerEmailIndex, "customer_email", strings.ToLower(email))
}

func (r *BookingDynamoRepository) Transition(ctx context.Context, id string, from []entities.BookingStatus, change entities.BookingTransition) (entities.Booking, error) {
	if len(from) == 0 {
		return entities.Booking{}, fmt.Errorf("transition to %s: no source status", change.To)
	}

	expr, values, names := transitionExpression(from, change, time.Now())
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(expr.condition),
		UpdateExpression:          aws.String(expr.update),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Booking{}, nil
	}
	return unmarshalBooking(out.Attributes)
}

type updateExpr struct {
	update    string
	condition string
}

func transitionExpression(from []entities.BookingStatus, change entities.BookingTransition, now time.Time) (updateExpr, map[string]types.AttributeValue, map[string]string) {
	sets := []string{"#status = :to", "#updated_at = :updated_at"}
	values := map[string]types.AttributeValue{
		":to":         &types.AttributeValueMemberS{Value: string(change.To)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(now)},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}

	optional := []struct {
		attr  string
		value string
	}{
		{"order_id", change.OrderID},
		{"provider", change.Provider},
		{"payment_id", change.PaymentID},
		{"confirmed_via", string(change.ConfirmedVia)},
	}
	for _, o := range optional {
		if o.value == "" {
			continue
		}
		sets = append(sets, fmt.Sprintf("#%s = :%s", o.attr, o.attr))
		names["#"+o.attr] = o.attr
		values[":"+o.attr] = &types.AttributeValueMemberS{Value: o.value}
	}

	placeholders := make([]string, 0, len(from))
	for i, s := range from {
		p := fmt.Sprintf(":from%d", i)
		placeholders = append(placeholders, p)
		values[p] = &types.AttributeValueMemberS{Value: string(s)}
	}

	return updateExpr{
		update:    "SET " + strings.Join(sets, ", "),
		condition: fmt.Sprintf("attribute_exists(#id) AND #status IN (%s)", strings.Join(placeholders, ", ")),
	}, values, mergeNames(names, map[string]string{"#id": "id"})
}

func (r *BookingDynamoRepository) query(ctx context.Context, index, attr, value string) ([]entities.Booking, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Booking, 0, len(out.Items))
	for _, raw := range out.Items {
		b, err := unmarshalBooking(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, nil
}

func unmarshalBooking(av map[string]types.AttributeValue) (entities.Booking, error) {
	var it bookingItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func toBookingItem(b entities.Booking) bookingItem {
	return bookingItem{
		ID:            b.ID,
		Kind:          string(b.Kind),
		ItemID:        b.ItemID,
		ItemName:      b.ItemName,
		CustomerName:  b.CustomerName,
		CustomerEmail: strings.ToLower(b.CustomerEmail),
		CustomerPhone: b.CustomerPhone,
		TravelDate:    formatTime(b.TravelDate),
		Guests:        b.Guests,
		UnitPrice:     b.UnitPrice.String(),
		Amount:        b.Amount.String(),
		Currency:      b.Currency,
		Status:        string(b.Status),
		OrderID:       b.OrderID,
		PaymentID:     b.PaymentID,
		Provider:      b.Provider,
		ConfirmedVia:  string(b.ConfirmedVia),
		CreatedAt:     formatTime(b.CreatedAt),
		UpdatedAt:     formatTime(b.UpdatedAt),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	return entities.Booking{
		ID:            it.ID,
		Kind:          entities.BookingKind(it.Kind),
		ItemID:        it.ItemID,
		ItemName:      it.ItemName,
		CustomerName:  it.CustomerName,
		CustomerEmail: it.CustomerEmail,
		CustomerPhone: it.CustomerPhone,
		TravelDate:    parseTime(it.TravelDate),
		Guests:        it.Guests,
		UnitPrice:     parseDecimal(it.UnitPrice),
		Amount:        parseDecimal(it.Amount),
		Currency:      it.Currency,
		Status:        entities.BookingStatus(it.Status),
		OrderID:       it.OrderID,
		PaymentID:     it.PaymentID,
		Provider:      it.Provider,
		ConfirmedVia:  entities.ConfirmationSource(it.ConfirmedVia),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
