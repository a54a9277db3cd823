package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"yelagiri_booking/internal/domain/entities"
	mock_interfaces "yelagiri_booking/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestBookingUseCase(repo *mock_interfaces.MockIBookingRepository) *BookingUseCase {
	uc := NewBookingUseCase(repo)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func validCreateCommand() CreateBookingCommand {
	return CreateBookingCommand{
		Kind:          entities.BookingKindListing,
		ItemID:        "villa-12",
		ItemName:      "Hilltop Villa",
		CustomerName:  " Ravi Kumar ",
		CustomerEmail: "Ravi@Example.com",
		TravelDate:    fixedNow.Add(72 * time.Hour),
		Guests:        4,
		UnitPrice:     decimal.RequireFromString("2500.75"),
	}
}

func TestBookingUseCase_CreateBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIBookingRepository(ctrl)
	uc := newTestBookingUseCase(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b entities.Booking) (entities.Booking, error) {
		return b, nil
	})

	b, err := uc.CreateBooking(context.Background(), validCreateCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == "" {
		t.Fatalf("expected generated id")
	}
	if b.Status != entities.BookingStatusPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}
	if !b.Amount.Equal(decimal.RequireFromString("10003")) {
		t.Fatalf("unexpected amount %s", b.Amount)
	}
	if b.Currency != "INR" {
		t.Fatalf("unexpected currency %s", b.Currency)
	}
	if b.CustomerName != "Ravi Kumar" || b.CustomerEmail != "ravi@example.com" {
		t.Fatalf("expected normalised customer, got %q %q", b.CustomerName, b.CustomerEmail)
	}
	if !b.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected created_at %v", b.CreatedAt)
	}
}

func TestBookingUseCase_CreateBooking_Validation(t *testing.T) {
	cases := map[string]func(*CreateBookingCommand){
		"unknown kind":     func(c *CreateBookingCommand) { c.Kind = "hotel" },
		"missing item":     func(c *CreateBookingCommand) { c.ItemID = " " },
		"missing name":     func(c *CreateBookingCommand) { c.ItemName = "" },
		"missing customer": func(c *CreateBookingCommand) { c.CustomerName = "" },
		"bad email":        func(c *CreateBookingCommand) { c.CustomerEmail = "ravi.example.com" },
		"no guests":        func(c *CreateBookingCommand) { c.Guests = 0 },
		"free":             func(c *CreateBookingCommand) { c.UnitPrice = decimal.Zero },
		"no date":          func(c *CreateBookingCommand) { c.TravelDate = time.Time{} },
		"past date":        func(c *CreateBookingCommand) { c.TravelDate = fixedNow.Add(-48 * time.Hour) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := newTestBookingUseCase(mock_interfaces.NewMockIBookingRepository(ctrl))

			cmd := validCreateCommand()
			mutate(&cmd)
			_, err := uc.CreateBooking(context.Background(), cmd)
			if !errors.Is(err, ErrInvalidBooking) {
				t.Fatalf("expected ErrInvalidBooking, got %v", err)
			}
		})
	}
}

func TestBookingUseCase_CreateBooking_TodayIsAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIBookingRepository(ctrl)
	uc := newTestBookingUseCase(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b entities.Booking) (entities.Booking, error) {
		return b, nil
	})

	cmd := validCreateCommand()
	cmd.TravelDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := uc.CreateBooking(context.Background(), cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookingUseCase_CreateBooking_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIBookingRepository(ctrl)
	uc := newTestBookingUseCase(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Booking{}, errors.New("db"))

	if _, err := uc.CreateBooking(context.Background(), validCreateCommand()); err == nil || err.Error() != "db" {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestBookingUseCase_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIBookingRepository(ctrl)
	uc := newTestBookingUseCase(repo)

	if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidBookingID) {
		t.Fatalf("expected ErrInvalidBookingID, got %v", err)
	}

	repo.EXPECT().GetByID(gomock.Any(), "b-404").Return(entities.Booking{}, nil)
	if _, err := uc.GetByID(context.Background(), "b-404"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	repo.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Booking{ID: "b-1"}, nil)
	b, err := uc.GetByID(context.Background(), " b-1 ")
	if err != nil || b.ID != "b-1" {
		t.Fatalf("unexpected result %+v %v", b, err)
	}
}

func TestBookingUseCase_ListByCustomerEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIBookingRepository(ctrl)
	uc := newTestBookingUseCase(repo)

	if _, err := uc.ListByCustomerEmail(context.Background(), "nope"); !errors.Is(err, ErrInvalidCustomerEmail) {
		t.Fatalf("expected ErrInvalidCustomerEmail, got %v", err)
	}

	repo.EXPECT().ListByCustomerEmail(gomock.Any(), "ravi@example.com").Return([]entities.Booking{
		{ID: "old", CreatedAt: fixedNow.Add(-time.Hour)},
		{ID: "new", CreatedAt: fixedNow},
	}, nil)

	got, err := uc.ListByCustomerEmail(context.Background(), "RAVI@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestBookingUseCase_Cancel(t *testing.T) {
	cancellable := []entities.BookingStatus{entities.BookingStatusPending, entities.BookingStatusAwaitingConfirmation}

	t.Run("pending booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := newTestBookingUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Booking{ID: "b-1", Status: entities.BookingStatusPending}, nil)
		repo.EXPECT().Transition(gomock.Any(), "b-1", cancellable, entities.BookingTransition{To: entities.BookingStatusCancelled}).
			Return(entities.Booking{ID: "b-1", Status: entities.BookingStatusCancelled}, nil)

		b, err := uc.Cancel(context.Background(), "b-1")
		if err != nil || b.Status != entities.BookingStatusCancelled {
			t.Fatalf("unexpected result %+v %v", b, err)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := newTestBookingUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Booking{ID: "b-1", Status: entities.BookingStatusCancelled}, nil)

		if _, err := uc.Cancel(context.Background(), "b-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("confirmed booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := newTestBookingUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Booking{ID: "b-1", Status: entities.BookingStatusConfirmed}, nil)

		if _, err := uc.Cancel(context.Background(), "b-1"); !errors.Is(err, ErrBookingAlreadyConfirmed) {
			t.Fatalf("expected ErrBookingAlreadyConfirmed, got %v", err)
		}
	})

	t.Run("confirmed concurrently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := newTestBookingUseCase(repo)

		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Booking{ID: "b-1", Status: entities.BookingStatusAwaitingConfirmation}, nil),
			repo.EXPECT().Transition(gomock.Any(), "b-1", cancellable, gomock.Any()).Return(entities.Booking{}, nil),
			repo.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Booking{ID: "b-1", Status: entities.BookingStatusConfirmed}, nil),
		)

		if _, err := uc.Cancel(context.Background(), "b-1"); !errors.Is(err, ErrBookingAlreadyConfirmed) {
			t.Fatalf("expected ErrBookingAlreadyConfirmed, got %v", err)
		}
	})
}
