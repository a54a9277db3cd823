package response

import (
	"time"

	"yelagiri_booking/internal/domain/entities"
)

type InvoiceResponse struct {
	InvoiceID     string    `json:"invoice_id"`
	BookingID     string    `json:"booking_id"`
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id"`
	Provider      string    `json:"provider"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Kind          string    `json:"kind"`
	ItemName      string    `json:"item_name"`
	TravelDate    string    `json:"travel_date"`
	Guests        int       `json:"guests"`
	UnitPrice     string    `json:"unit_price"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	IssuedAt      time.Time `json:"issued_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.ID,
		BookingID:     inv.BookingID,
		OrderID:       inv.OrderID,
		PaymentID:     inv.PaymentID,
		Provider:      inv.Provider,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		Kind:          string(inv.Kind),
		ItemName:      inv.ItemName,
		TravelDate:    inv.TravelDate.Format("2006-01-02"),
		Guests:        inv.Guests,
		UnitPrice:     inv.UnitPrice.StringFixed(2),
		Total:         inv.Total.StringFixed(2),
		Currency:      inv.Currency,
		IssuedAt:      inv.IssuedAt,
	}
}
