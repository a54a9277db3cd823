package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingKind identifies what is being booked.
type BookingKind string

const (
	BookingKindListing   BookingKind = "listing"
	BookingKindPackage   BookingKind = "package"
	BookingKindGuide     BookingKind = "guide"
	BookingKindTransport BookingKind = "transport"
)

func (k BookingKind) IsValid() bool {
	switch k {
	case BookingKindListing, BookingKindPackage, BookingKindGuide, BookingKindTransport:
		return true
	}
	return false
}

// BookingStatus represents the lifecycle of a booking.
//
//	pending -> awaiting_confirmation -> confirmed | cancelled
//	pending -> cancelled
//
// A booking enters awaiting_confirmation once a payment order exists for it;
// the UI is then showing either the mock payment modal or the gateway page.
type BookingStatus string

const (
	BookingStatusPending              BookingStatus = "pending"
	BookingStatusAwaitingConfirmation BookingStatus = "awaiting_confirmation"
	BookingStatusConfirmed            BookingStatus = "confirmed"
	BookingStatusCancelled            BookingStatus = "cancelled"
)

// CanCreateOrder reports whether a (new) payment order may be opened.
// Re-opening an order while awaiting confirmation replaces the previous one.
func (s BookingStatus) CanCreateOrder() bool {
	return s == BookingStatusPending || s == BookingStatusAwaitingConfirmation
}

// ConfirmationSource records which path confirmed the payment first.
type ConfirmationSource string

const (
	ConfirmedViaSignature ConfirmationSource = "signature"
	ConfirmedViaWebhook   ConfirmationSource = "webhook"
)

// Booking is a customer's reservation persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//   - GSI2 (customer_email-index): customer_email
//
// Monetary representation:
//   - Amount = UnitPrice * Guests, in major currency units (rupees).
type Booking struct {
	ID            string          `json:"id"`
	Kind          BookingKind     `json:"kind"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	TravelDate    time.Time       `json:"travel_date"`
	Guests        int             `json:"guests"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        BookingStatus   `json:"status"`

	OrderID      string             `json:"order_id,omitempty"`
	PaymentID    string             `json:"payment_id,omitempty"`
	Provider     string             `json:"provider,omitempty"`
	ConfirmedVia ConfirmationSource `json:"confirmed_via,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingTransition is a status change together with the fields written
// alongside it. Empty fields are left untouched.
type BookingTransition struct {
	To           BookingStatus
	OrderID      string
	Provider     string
	PaymentID    string
	ConfirmedVia ConfirmationSource
}
