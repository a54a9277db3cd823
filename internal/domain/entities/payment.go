package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "captured"
)

// Payment is the record written once a booking's payment is confirmed.
//
// Storage model (DynamoDB):
//   - PK: id (PaymentRecordID of booking and provider payment id)
//   - GSI1 (booking_id-index): booking_id
//
// Provider payment ids are not unique across bookings (clients supply them
// on verify), so the record id is scoped to the booking.
//
// PayloadRaw keeps what the provider handed us (webhook body or verify request)
// for audit; Payload is its parsed form.
type Payment struct {
	ID        string             `json:"id"`
	PaymentID string             `json:"payment_id"`
	BookingID string             `json:"booking_id"`
	OrderID   string             `json:"order_id"`
	Provider  string             `json:"provider"`
	Amount    decimal.Decimal    `json:"amount"`
	Currency  string             `json:"currency"`
	Status    PaymentStatus      `json:"status"`
	Source    ConfirmationSource `json:"source"`
	Date      time.Time          `json:"date"`

	PayloadRaw json.RawMessage        `json:"payload_raw,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

func PaymentRecordID(bookingID, paymentID string) string {
	return bookingID + "#" + paymentID
}
