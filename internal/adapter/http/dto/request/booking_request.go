package request

import (
	"errors"
	"strings"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/usecase"

	"github.com/shopspring/decimal"
)

var ErrInvalidTravelDate = errors.New("invalid travel_date")

const travelDateLayout = "2006-01-02"

// BookingCreateRequest is what the checkout page posts. unit_price accepts a
// JSON number or a decimal string.
type BookingCreateRequest struct {
	Kind          string          `json:"kind" binding:"required"`
	ItemID        string          `json:"item_id" binding:"required"`
	ItemName      string          `json:"item_name" binding:"required"`
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerEmail string          `json:"customer_email" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	TravelDate    string          `json:"travel_date" binding:"required" example:"2026-04-10"`
	Guests        int             `json:"guests" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" swaggertype:"number"`
}

// ResolveTravelDate accepts a calendar date or an RFC 3339 timestamp.
func (r BookingCreateRequest) ResolveTravelDate() (time.Time, error) {
	v := strings.TrimSpace(r.TravelDate)
	if d, err := time.Parse(travelDateLayout, v); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, v); err == nil {
		return d.UTC(), nil
	}
	return time.Time{}, ErrInvalidTravelDate
}

func (r BookingCreateRequest) ToCommand() (usecase.CreateBookingCommand, error) {
	travelDate, err := r.ResolveTravelDate()
	if err != nil {
		return usecase.CreateBookingCommand{}, err
	}
	return usecase.CreateBookingCommand{
		Kind:          entities.BookingKind(strings.ToLower(strings.TrimSpace(r.Kind))),
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		TravelDate:    travelDate,
		Guests:        r.Guests,
		UnitPrice:     r.UnitPrice,
	}, nil
}
