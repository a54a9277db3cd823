package interfaces

import (
	"context"
	"yelagiri_booking/internal/domain/entities"
)

//go:generate mockgen -source=booking_repository_interface.go -destination=mocks/booking_repository_interface.go -package=mock_interfaces

// IBookingRepository abstracts DynamoDB persistence for Booking.
//
// Lookups return a zero Booking (empty ID) and a nil error when nothing matches.
// Transition applies a status change (plus the fields in change) only when
// the stored status is one of `from`. It returns a zero Booking when the
// booking is missing or the condition does not hold.
type IBookingRepository interface {
	Create(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Booking, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]entities.Booking, error)
	Transition(ctx context.Context, id string, from []entities.BookingStatus, change entities.BookingTransition) (entities.Booking, error)
}
