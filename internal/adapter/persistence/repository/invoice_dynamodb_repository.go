package repository

import (
	"context"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type invoiceItem struct {
	ID            string `dynamodbav:"id"`
	BookingID     string `dynamodbav:"booking_id"`
	OrderID       string `dynamodbav:"order_id"`
	PaymentID     string `dynamodbav:"payment_id"`
	Provider      string `dynamodbav:"provider"`
	CustomerName  string `dynamodbav:"customer_name"`
	CustomerEmail string `dynamodbav:"customer_email"`
	Kind          string `dynamodbav:"kind"`
	ItemName      string `dynamodbav:"item_name"`
	TravelDate    string `dynamodbav:"travel_date"`
	Guests        int    `dynamodbav:"guests"`
	UnitPrice     string `dynamodbav:"unit_price"`
	Total         string `dynamodbav:"total"`
	Currency      string `dynamodbav:"currency"`
	IssuedAt      string `dynamodbav:"issued_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The id is derived from the booking id, so GetByID also serves lookups by booking.
type InvoiceDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client, tableName string) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
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
			return entities.Invoice{}, interfaces.ErrAlreadyExists
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
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

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:            inv.ID,
		BookingID:     inv.BookingID,
		OrderID:       inv.OrderID,
		PaymentID:     inv.PaymentID,
		Provider:      inv.Provider,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		Kind:          string(inv.Kind),
		ItemName:      inv.ItemName,
		TravelDate:    formatTime(inv.TravelDate),
		Guests:        inv.Guests,
		UnitPrice:     inv.UnitPrice.String(),
		Total:         inv.Total.String(),
		Currency:      inv.Currency,
		IssuedAt:      formatTime(inv.IssuedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:            it.ID,
		BookingID:     it.BookingID,
		OrderID:       it.OrderID,
		PaymentID:     it.PaymentID,
		Provider:      it.Provider,
		CustomerName:  it.CustomerName,
		CustomerEmail: it.CustomerEmail,
		Kind:          entities.BookingKind(it.Kind),
		ItemName:      it.ItemName,
		TravelDate:    parseTime(it.TravelDate),
		Guests:        it.Guests,
		UnitPrice:     parseDecimal(it.UnitPrice),
		Total:         parseDecimal(it.Total),
		Currency:      it.Currency,
		IssuedAt:      parseTime(it.IssuedAt),
	}
}
