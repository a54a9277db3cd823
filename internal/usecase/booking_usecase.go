package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=booking_usecase.go -destination=../adapter/http/handlers/mocks/booking_usecase.go -package=mocks

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidBookingID        = errors.New("invalid booking_id")
	ErrInvalidBooking          = errors.New("invalid booking")
	ErrInvalidCustomerEmail    = errors.New("invalid customer email")
	ErrBookingAlreadyConfirmed = errors.New("booking already confirmed")
	ErrBookingCancelled        = errors.New("booking cancelled")
)

// CreateBookingCommand is what the checkout page submits.
type CreateBookingCommand struct {
	Kind          entities.BookingKind
	ItemID        string
	ItemName      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	TravelDate    time.Time
	Guests        int
	UnitPrice     decimal.Decimal
}

type IBookingUseCase interface {
	CreateBooking(ctx context.Context, cmd CreateBookingCommand) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]entities.Booking, error)
	Cancel(ctx context.Context, id string) (entities.Booking, error)
}

type BookingUseCase struct {
	repo     interfaces.IBookingRepository
	currency string
	now      func() time.Time
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(repo interfaces.IBookingRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo, currency: entities.CurrencyINR, now: time.Now}
}

func (u *BookingUseCase) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (entities.Booking, error) {
	if err := u.validate(&cmd); err != nil {
		telemetry.Logger.Info("[booking][usecase] invalid booking", zap.Error(err))
		return entities.Booking{}, err
	}

	now := u.now().UTC()
	b := entities.Booking{
		ID:            uuid.NewString(),
		Kind:          cmd.Kind,
		ItemID:        cmd.ItemID,
		ItemName:      cmd.ItemName,
		CustomerName:  cmd.CustomerName,
		CustomerEmail: cmd.CustomerEmail,
		CustomerPhone: cmd.CustomerPhone,
		TravelDate:    cmd.TravelDate.UTC(),
		Guests:        cmd.Guests,
		UnitPrice:     cmd.UnitPrice,
		Amount:        cmd.UnitPrice.Mul(decimal.NewFromInt(int64(cmd.Guests))).Round(2),
		Currency:      u.currency,
		Status:        entities.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.repo.Create(ctx, b)
	if err != nil {
		telemetry.Logger.Error("[booking][usecase] repository create failed", zap.String("booking_id", b.ID), zap.Error(err))
		return entities.Booking{}, err
	}
	telemetry.Logger.Info("[booking][usecase] booking created",
		zap.String("booking_id", created.ID),
		zap.String("kind", string(created.Kind)),
		zap.String("amount", created.Amount.String()),
	)
	return created, nil
}

func (u *BookingUseCase) validate(cmd *CreateBookingCommand) error {
	cmd.ItemID = strings.TrimSpace(cmd.ItemID)
	cmd.ItemName = strings.TrimSpace(cmd.ItemName)
	cmd.CustomerName = strings.TrimSpace(cmd.CustomerName)
	cmd.CustomerEmail = strings.ToLower(strings.TrimSpace(cmd.CustomerEmail))
	cmd.CustomerPhone = strings.TrimSpace(cmd.CustomerPhone)

	switch {
	case !cmd.Kind.IsValid():
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBooking, cmd.Kind)
	case cmd.ItemID == "":
		return fmt.Errorf("%w: item_id is required", ErrInvalidBooking)
	case cmd.ItemName == "":
		return fmt.Errorf("%w: item_name is required", ErrInvalidBooking)
	case cmd.CustomerName == "":
		return fmt.Errorf("%w: customer_name is required", ErrInvalidBooking)
	case !validEmail(cmd.CustomerEmail):
		return fmt.Errorf("%w: customer_email is invalid", ErrInvalidBooking)
	case cmd.Guests < 1:
		return fmt.Errorf("%w: guests must be at least 1", ErrInvalidBooking)
	case !cmd.UnitPrice.IsPositive():
		return fmt.Errorf("%w: unit_price must be positive", ErrInvalidBooking)
	case cmd.TravelDate.IsZero():
		return fmt.Errorf("%w: travel_date is required", ErrInvalidBooking)
	}

	today := u.now().UTC().Truncate(24 * time.Hour)
	if cmd.TravelDate.UTC().Before(today) {
		return fmt.Errorf("%w: travel_date is in the past", ErrInvalidBooking)
	}
	return nil
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

// ListByCustomerEmail returns the customer's bookings, newest first.
func (u *BookingUseCase) ListByCustomerEmail(ctx context.Context, email string) ([]entities.Booking, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return nil, ErrInvalidCustomerEmail
	}

	bookings, err := u.repo.ListByCustomerEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// Cancel moves an unpaid booking to cancelled. Cancelling twice is a no-op.
func (u *BookingUseCase) Cancel(ctx context.Context, id string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}

	switch b.Status {
	case entities.BookingStatusCancelled:
		return b, nil
	case entities.BookingStatusConfirmed:
		return entities.Booking{}, ErrBookingAlreadyConfirmed
	}

	cancelled, err := u.repo.Transition(ctx, b.ID,
		[]entities.BookingStatus{entities.BookingStatusPending, entities.BookingStatusAwaitingConfirmation},
		entities.BookingTransition{To: entities.BookingStatusCancelled},
	)
	if err != nil {
		return entities.Booking{}, err
	}
	if cancelled.ID == "" {
		// Lost a race with a payment confirmation (or another cancel).
		current, err := u.GetByID(ctx, b.ID)
		if err != nil {
			return entities.Booking{}, err
		}
		if current.Status == entities.BookingStatusCancelled {
			return current, nil
		}
		return entities.Booking{}, ErrBookingAlreadyConfirmed
	}

	telemetry.Logger.Info("[booking][usecase] booking cancelled", zap.String("booking_id", cancelled.ID))
	return cancelled, nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
