package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const invoiceIDPrefix = "INV-"

// InvoiceIDForBooking derives the invoice id from its booking, so that a
// booking can never carry two invoices.
func InvoiceIDForBooking(bookingID string) string {
	return invoiceIDPrefix + bookingID
}

// Invoice is issued once per confirmed booking.
//
// Storage model (DynamoDB):
//   - PK: id ("INV-" + booking id)
type Invoice struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	OrderID       string          `json:"order_id"`
	PaymentID     string          `json:"payment_id"`
	Provider      string          `json:"provider"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Kind          BookingKind     `json:"kind"`
	ItemName      string          `json:"item_name"`
	TravelDate    time.Time       `json:"travel_date"`
	Guests        int             `json:"guests"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	IssuedAt      time.Time       `json:"issued_at"`
}
