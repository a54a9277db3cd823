package entities

import "time"

const EventBookingConfirmed = "booking.confirmed"

// BookingConfirmedEvent is published once per booking, by whichever payment
// path confirmed it first.
type BookingConfirmedEvent struct {
	Type         string             `json:"type"`
	BookingID    string             `json:"booking_id"`
	OrderID      string             `json:"order_id"`
	PaymentID    string             `json:"payment_id"`
	InvoiceID    string             `json:"invoice_id,omitempty"`
	Provider     string             `json:"provider"`
	Amount       string             `json:"amount"`
	Currency     string             `json:"currency"`
	ConfirmedVia ConfirmationSource `json:"confirmed_via"`
	ConfirmedAt  time.Time          `json:"confirmed_at"`
}
