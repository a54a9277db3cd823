package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() entities.Booking {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return entities.Booking{
		ID:            "b-1",
		Kind:          entities.BookingKindPackage,
		ItemID:        "pkg-7",
		ItemName:      "Yelagiri Lake Weekend",
		CustomerName:  "Asha",
		CustomerEmail: "Asha@Example.com",
		TravelDate:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Guests:        3,
		UnitPrice:     decimal.RequireFromString("1499.50"),
		Amount:        decimal.RequireFromString("4498.50"),
		Currency:      "INR",
		Status:        entities.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func bookingAttributes(t *testing.T, b entities.Booking) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toBookingItem(b))
	require.NoError(t, err)
	return av
}

func TestBookingItemRoundTrip(t *testing.T) {
	b := sampleBooking()
	got := fromBookingItem(toBookingItem(b))

	assert.Equal(t, "asha@example.com", got.CustomerEmail)
	assert.True(t, b.Amount.Equal(got.Amount))
	assert.True(t, b.UnitPrice.Equal(got.UnitPrice))
	assert.True(t, b.TravelDate.Equal(got.TravelDate))
	assert.Equal(t, b.Status, got.Status)
	assert.Empty(t, got.OrderID)
}

func TestBookingDynamoRepository_CreateOmitsEmptyIndexKeys(t *testing.T) {
	fake := &fakeDynamo{}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	_, err := repo.Create(context.Background(), sampleBooking())
	require.NoError(t, err)
	require.NotNil(t, fake.putIn)
	assert.Equal(t, "bookings", *fake.putIn.TableName)
	assert.Equal(t, "attribute_not_exists(#id)", *fake.putIn.ConditionExpression)
	_, hasOrder := fake.putIn.Item["order_id"]
	assert.False(t, hasOrder)
	assert.Equal(t, "4498.5", strAttr(fake.putIn.Item, "amount"))
}

func TestBookingDynamoRepository_CreateDuplicate(t *testing.T) {
	fake := &fakeDynamo{putErr: conditionalCheckFailed()}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)
}

func TestBookingDynamoRepository_GetByID(t *testing.T) {
	b := sampleBooking()
	fake := &fakeDynamo{getOut: []*dynamodb.GetItemOutput{{Item: bookingAttributes(t, b)}, {}}}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	got, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID)
	assert.Equal(t, "b-1", strAttr(fake.getIn[0].Key, "id"))

	missing, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestBookingDynamoRepository_GetByOrderID(t *testing.T) {
	b := sampleBooking()
	b.OrderID = "mock_order_1"
	fake := &fakeDynamo{
		queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{bookingAttributes(t, b)}},
		getOut:   []*dynamodb.GetItemOutput{{Item: bookingAttributes(t, b)}},
	}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	got, err := repo.GetByOrderID(context.Background(), "mock_order_1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID)
	assert.Equal(t, "order_id-index", *fake.queryIn.IndexName)
	assert.Equal(t, "order_id", fake.queryIn.ExpressionAttributeNames["#k"])
	require.Len(t, fake.getIn, 1)

	fake.queryOut = &dynamodb.QueryOutput{}
	missing, err := repo.GetByOrderID(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestBookingDynamoRepository_ListByCustomerEmail(t *testing.T) {
	b1, b2 := sampleBooking(), sampleBooking()
	b2.ID = "b-2"
	fake := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
		bookingAttributes(t, b1), bookingAttributes(t, b2),
	}}}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	got, err := repo.ListByCustomerEmail(context.Background(), "ASHA@example.com")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "customer_email-index", *fake.queryIn.IndexName)
	assert.Equal(t, "asha@example.com", strAttr(fake.queryIn.ExpressionAttributeValues, ":v"))

	fake.queryErr = errors.New("throttled")
	_, err = repo.ListByCustomerEmail(context.Background(), "x")
	assert.Error(t, err)
}

func TestBookingDynamoRepository_Transition(t *testing.T) {
	b := sampleBooking()
	b.Status = entities.BookingStatusConfirmed
	b.PaymentID = "pay-1"
	fake := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: bookingAttributes(t, b)}}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	got, err := repo.Transition(context.Background(), "b-1",
		[]entities.BookingStatus{entities.BookingStatusAwaitingConfirmation},
		entities.BookingTransition{To: entities.BookingStatusConfirmed, PaymentID: "pay-1", ConfirmedVia: entities.ConfirmedViaWebhook},
	)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusConfirmed, got.Status)

	in := fake.updateIn
	assert.Equal(t, "attribute_exists(#id) AND #status IN (:from0)", *in.ConditionExpression)
	assert.Equal(t, "SET #status = :to, #updated_at = :updated_at, #payment_id = :payment_id, #confirmed_via = :confirmed_via", *in.UpdateExpression)
	assert.Equal(t, "awaiting_confirmation", strAttr(in.ExpressionAttributeValues, ":from0"))
	assert.Equal(t, "webhook", strAttr(in.ExpressionAttributeValues, ":confirmed_via"))
	assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
	_, hasOrder := in.ExpressionAttributeNames["#order_id"]
	assert.False(t, hasOrder)
}

func TestBookingDynamoRepository_TransitionConditionFailed(t *testing.T) {
	fake := &fakeDynamo{updateErr: conditionalCheckFailed()}
	repo := &BookingDynamoRepository{ddb: fake, tableName: "bookings"}

	got, err := repo.Transition(context.Background(), "b-1",
		[]entities.BookingStatus{entities.BookingStatusPending, entities.BookingStatusAwaitingConfirmation},
		entities.BookingTransition{To: entities.BookingStatusCancelled},
	)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.Equal(t, "attribute_exists(#id) AND #status IN (:from0, :from1)", *fake.updateIn.ConditionExpression)

	_, err = repo.Transition(context.Background(), "b-1", nil, entities.BookingTransition{To: entities.BookingStatusCancelled})
	assert.Error(t, err)
}
