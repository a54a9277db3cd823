package response

import (
	"time"

	"yelagiri_booking/internal/domain/entities"
)

type BookingResponse struct {
	BookingID     string    `json:"booking_id"`
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	ItemID        string    `json:"item_id"`
	ItemName      string    `json:"item_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	TravelDate    string    `json:"travel_date"`
	Guests        int       `json:"guests"`
	UnitPrice     string    `json:"unit_price"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	OrderID       string    `json:"order_id,omitempty"`
	PaymentID     string    `json:"payment_id,omitempty"`
	Provider      string    `json:"provider,omitempty"`
	ConfirmedVia  string    `json:"confirmed_via,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromBooking(b entities.Booking) BookingResponse {
	return BookingResponse{
		BookingID:     b.ID,
		ID:            b.ID,
		Kind:          string(b.Kind),
		ItemID:        b.ItemID,
		ItemName:      b.ItemName,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		TravelDate:    b.TravelDate.Format("2006-01-02"),
		Guests:        b.Guests,
		UnitPrice:     b.UnitPrice.StringFixed(2),
		Amount:        b.Amount.StringFixed(2),
		Currency:      b.Currency,
		Status:        string(b.Status),
		OrderID:       b.OrderID,
		PaymentID:     b.PaymentID,
		Provider:      b.Provider,
		ConfirmedVia:  string(b.ConfirmedVia),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func FromBookings(bs []entities.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}
