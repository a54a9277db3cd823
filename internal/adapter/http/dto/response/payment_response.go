package response

import (
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/usecase"
)

type PaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	OrderID     string    `json:"order_id"`
	Provider    string    `json:"provider"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	PaymentDate time.Time `json:"payment_date"`

	PayloadRaw string                 `json:"payload_raw,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		ID:          p.ID,
		BookingID:   p.BookingID,
		OrderID:     p.OrderID,
		Provider:    p.Provider,
		Amount:      p.Amount.StringFixed(2),
		Currency:    p.Currency,
		Status:      string(p.Status),
		Source:      string(p.Source),
		PaymentDate: p.Date,
		PayloadRaw:  string(p.PayloadRaw),
		Payload:     p.Payload,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

// VerifyPaymentResponse tells the client the booking is paid. Duplicate is
// set when the webhook had already confirmed it.
type VerifyPaymentResponse struct {
	Success   bool            `json:"success"`
	Duplicate bool            `json:"duplicate"`
	Booking   BookingResponse `json:"booking"`
	InvoiceID string          `json:"invoice_id,omitempty"`
}

func FromConfirmation(c usecase.PaymentConfirmation) VerifyPaymentResponse {
	return VerifyPaymentResponse{
		Success:   true,
		Duplicate: c.Duplicate,
		Booking:   FromBooking(c.Booking),
		InvoiceID: c.Invoice.ID,
	}
}

type WebhookAckResponse struct {
	Received  bool   `json:"received"`
	Event     string `json:"event,omitempty"`
	Outcome   string `json:"outcome"`
	BookingID string `json:"booking_id,omitempty"`
}

func FromWebhookResult(r usecase.WebhookResult) WebhookAckResponse {
	return WebhookAckResponse{
		Received:  true,
		Event:     r.Event.Event,
		Outcome:   string(r.Outcome),
		BookingID: r.BookingID,
	}
}
