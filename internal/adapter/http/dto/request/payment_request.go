package request

import (
	"strings"

	"yelagiri_booking/internal/usecase"
)

type CreateOrderRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// VerifyPaymentRequest is posted by the client once the payment step
// (gateway page or mock modal) reports success. The signature is checked by
// the active provider; an empty one simply fails verification. booking_id is
// optional and lets the booking be read directly.
type VerifyPaymentRequest struct {
	BookingID string `json:"booking_id"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func (r VerifyPaymentRequest) ToCommand() usecase.VerifyPaymentCommand {
	return usecase.VerifyPaymentCommand{
		BookingID: strings.TrimSpace(r.BookingID),
		OrderID:   strings.TrimSpace(r.OrderID),
		PaymentID: strings.TrimSpace(r.PaymentID),
		Signature: r.Signature,
	}
}
