package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"go.uber.org/zap"
)

//go:generate mockgen -source=invoice_usecase.go -destination=../adapter/http/handlers/mocks/invoice_usecase.go -package=mocks

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvalidInvoiceID    = errors.New("invalid invoice_id")
	ErrBookingNotConfirmed = errors.New("booking not confirmed")
)

// IInvoiceUseCase issues and reads invoices. Invoices only exist for
// confirmed bookings, and at most one per booking.
type IInvoiceUseCase interface {
	GenerateForBooking(ctx context.Context, booking entities.Booking) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID string) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo     interfaces.IInvoiceRepository
	bookings interfaces.IBookingRepository
	now      func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, bookings interfaces.IBookingRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, bookings: bookings, now: time.Now}
}

// GenerateForBooking returns the booking's invoice, issuing it on first call.
func (u *InvoiceUseCase) GenerateForBooking(ctx context.Context, b entities.Booking) (entities.Invoice, error) {
	if b.Status != entities.BookingStatusConfirmed {
		return entities.Invoice{}, ErrBookingNotConfirmed
	}

	id := entities.InvoiceIDForBooking(b.ID)
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if existing.ID != "" {
		return existing, nil
	}

	inv := entities.Invoice{
		ID:            id,
		BookingID:     b.ID,
		OrderID:       b.OrderID,
		PaymentID:     b.PaymentID,
		Provider:      b.Provider,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Kind:          b.Kind,
		ItemName:      b.ItemName,
		TravelDate:    b.TravelDate,
		Guests:        b.Guests,
		UnitPrice:     b.UnitPrice,
		Total:         b.Amount,
		Currency:      b.Currency,
		IssuedAt:      u.now().UTC(),
	}

	created, err := u.repo.Create(ctx, inv)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		// Issued concurrently by the other confirmation path.
		return u.repo.GetByID(ctx, id)
	}
	if err != nil {
		telemetry.Logger.Error("[invoice][usecase] repository create failed", zap.String("booking_id", b.ID), zap.Error(err))
		return entities.Invoice{}, err
	}

	telemetry.Logger.Info("[invoice][usecase] invoice issued",
		zap.String("invoice_id", created.ID),
		zap.String("booking_id", b.ID),
		zap.String("total", created.Total.String()),
	)
	return created, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// GetByBookingID also backfills the invoice of a confirmed booking whose
// issuance failed at confirmation time.
func (u *InvoiceUseCase) GetByBookingID(ctx context.Context, bookingID string) (entities.Invoice, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return entities.Invoice{}, ErrInvalidBookingID
	}

	inv, err := u.repo.GetByID(ctx, entities.InvoiceIDForBooking(bookingID))
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID != "" {
		return inv, nil
	}

	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if b.ID == "" {
		return entities.Invoice{}, ErrBookingNotFound
	}
	if b.Status != entities.BookingStatusConfirmed {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return u.GenerateForBooking(ctx, b)
}
