package interfaces

import (
	"context"
	"yelagiri_booking/internal/domain/entities"
)

//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_interface.go -package=mock_interfaces

// IPaymentRepository abstracts DynamoDB persistence for Payment.
// Create fails with ErrAlreadyExists when the id is already recorded.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByBookingID(ctx context.Context, bookingID string) ([]entities.Payment, error)
}
