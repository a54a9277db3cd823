package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/metrics"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payment_usecase.go -destination=../adapter/http/handlers/mocks/payment_usecase.go -package=mocks

var (
	ErrInvalidOrderID             = errors.New("invalid order_id")
	ErrSignatureMismatch          = errors.New("payment signature mismatch")
	ErrInvalidWebhook             = errors.New("invalid webhook")
	ErrPaymentProviderUnavailable = errors.New("payment provider unavailable")
	ErrBookingNotAwaitingPayment  = errors.New("booking is not awaiting payment")
	ErrOrderBookingMismatch       = errors.New("order does not belong to booking")
)

// WebhookOutcome says what a webhook did to its booking. Every outcome is
// acknowledged to the provider.
type WebhookOutcome string

const (
	WebhookOutcomeConfirmed WebhookOutcome = "confirmed"
	WebhookOutcomeDuplicate WebhookOutcome = "duplicate"
	WebhookOutcomeIgnored   WebhookOutcome = "ignored"
)

// VerifyPaymentCommand carries what the client got back from the payment
// step. BookingID is optional; when set the booking is read directly
// instead of through the order index.
type VerifyPaymentCommand struct {
	BookingID string
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentConfirmation is the result of a confirmation attempt. Duplicate is
// set when the booking had already been confirmed by the other path.
type PaymentConfirmation struct {
	Booking   entities.Booking
	Payment   entities.Payment
	Invoice   entities.Invoice
	Duplicate bool
}

type WebhookResult struct {
	Event     entities.WebhookEvent
	Outcome   WebhookOutcome
	BookingID string
	Reason    string
}

// IPaymentUseCase drives a booking from order creation to confirmation.
//
// Confirmation is reachable from two paths: the client's signature
// verification and the provider's webhook. The first one to arrive confirms
// the booking; the other becomes a no-op.
type IPaymentUseCase interface {
	CreateOrder(ctx context.Context, bookingID string) (entities.OrderResult, error)
	VerifyPayment(ctx context.Context, cmd VerifyPaymentCommand) (PaymentConfirmation, error)
	HandleWebhook(ctx context.Context, payload map[string]any, signature string) (WebhookResult, error)
	ListPayments(ctx context.Context, bookingID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	bookings  interfaces.IBookingRepository
	payments  interfaces.IPaymentRepository
	provider  interfaces.IPaymentProvider
	invoices  IInvoiceUseCase
	publisher interfaces.IEventPublisher
	tracer    trace.Tracer
	now       func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	bookings interfaces.IBookingRepository,
	payments interfaces.IPaymentRepository,
	provider interfaces.IPaymentProvider,
	invoices IInvoiceUseCase,
	publisher interfaces.IEventPublisher,
) *PaymentUseCase {
	return &PaymentUseCase{
		bookings:  bookings,
		payments:  payments,
		provider:  provider,
		invoices:  invoices,
		publisher: publisher,
		tracer:    otel.Tracer("yelagiri_booking/usecase/payment"),
		now:       time.Now,
	}
}

func (u *PaymentUseCase) CreateOrder(ctx context.Context, bookingID string) (entities.OrderResult, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return entities.OrderResult{}, ErrInvalidBookingID
	}
	ctx, span := u.tracer.Start(ctx, "payment.create_order", trace.WithAttributes(
		attribute.String("booking.id", bookingID),
		attribute.String("payment.provider", u.provider.Name()),
	))
	defer span.End()

	telemetry.Logger.Info("[payment][usecase] create-order start", zap.String("booking_id", bookingID))
	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return entities.OrderResult{}, fail(span, err)
	}
	if b.ID == "" {
		return entities.OrderResult{}, ErrBookingNotFound
	}
	if err := orderableStatus(b.Status); err != nil {
		telemetry.Logger.Info("[payment][usecase] booking not orderable", zap.String("booking_id", b.ID), zap.String("status", string(b.Status)))
		return entities.OrderResult{}, err
	}

	amount, _ := b.Amount.Float64()
	res, err := u.provider.CreateOrder(ctx, entities.OrderRequest{Amount: amount, Receipt: b.ID})
	if err == nil && !res.Success {
		err = errors.New("provider reported failure")
	}
	if err != nil {
		metrics.OrdersCreated.WithLabelValues(u.provider.Name(), "error").Inc()
		telemetry.Logger.Error("[payment][usecase] provider create-order failed", zap.String("booking_id", b.ID), zap.Error(err))
		return entities.OrderResult{}, fail(span, fmt.Errorf("%w: %w", ErrPaymentProviderUnavailable, err))
	}
	metrics.OrdersCreated.WithLabelValues(res.Provider, "success").Inc()

	updated, err := u.bookings.Transition(ctx, b.ID,
		[]entities.BookingStatus{entities.BookingStatusPending, entities.BookingStatusAwaitingConfirmation},
		entities.BookingTransition{To: entities.BookingStatusAwaitingConfirmation, OrderID: res.OrderID, Provider: res.Provider},
	)
	if err != nil {
		return entities.OrderResult{}, fail(span, err)
	}
	if updated.ID == "" {
		current, err := u.bookings.GetByID(ctx, b.ID)
		if err != nil {
			return entities.OrderResult{}, fail(span, err)
		}
		if err := orderableStatus(current.Status); err != nil {
			return entities.OrderResult{}, err
		}
		return entities.OrderResult{}, ErrBookingNotFound
	}

	span.SetAttributes(attribute.String("payment.order_id", res.OrderID))
	telemetry.Logger.Info("[payment][usecase] create-order success",
		zap.String("booking_id", b.ID),
		zap.String("order_id", res.OrderID),
		zap.String("provider", res.Provider),
		zap.Bool("mock_mode", res.IsMockMode),
	)
	return res, nil
}

func orderableStatus(s entities.BookingStatus) error {
	if s.CanCreateOrder() {
		return nil
	}
	if s == entities.BookingStatusCancelled {
		return ErrBookingCancelled
	}
	return ErrBookingAlreadyConfirmed
}

// VerifyPayment checks the signature the client obtained from the payment
// step. A mismatch leaves the booking untouched.
func (u *PaymentUseCase) VerifyPayment(ctx context.Context, cmd VerifyPaymentCommand) (PaymentConfirmation, error) {
	cmd.BookingID = strings.TrimSpace(cmd.BookingID)
	cmd.OrderID = strings.TrimSpace(cmd.OrderID)
	cmd.PaymentID = strings.TrimSpace(cmd.PaymentID)
	if cmd.OrderID == "" {
		return PaymentConfirmation{}, ErrInvalidOrderID
	}
	ctx, span := u.tracer.Start(ctx, "payment.verify", trace.WithAttributes(
		attribute.String("payment.order_id", cmd.OrderID),
		attribute.String("payment.provider", u.provider.Name()),
	))
	defer span.End()

	ok, err := u.provider.VerifySignature(entities.VerificationInput{
		Signature: cmd.Signature,
		OrderID:   cmd.OrderID,
		PaymentID: cmd.PaymentID,
	})
	if err != nil {
		metrics.SignatureVerifications.WithLabelValues(u.provider.Name(), "error").Inc()
		return PaymentConfirmation{}, fail(span, fmt.Errorf("%w: %w", ErrPaymentProviderUnavailable, err))
	}
	if !ok {
		metrics.SignatureVerifications.WithLabelValues(u.provider.Name(), "mismatch").Inc()
		telemetry.Logger.Warn("[payment][usecase] signature mismatch", zap.String("order_id", cmd.OrderID))
		return PaymentConfirmation{}, ErrSignatureMismatch
	}
	metrics.SignatureVerifications.WithLabelValues(u.provider.Name(), "valid").Inc()

	b, err := u.bookingForOrder(ctx, cmd.BookingID, cmd.OrderID)
	if err != nil {
		return PaymentConfirmation{}, fail(span, err)
	}

	paymentID := cmd.PaymentID
	if paymentID == "" {
		paymentID = "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	raw, _ := json.Marshal(map[string]string{"order_id": cmd.OrderID, "payment_id": paymentID})

	conf, err := u.confirm(ctx, b, confirmation{
		paymentID: paymentID,
		source:    entities.ConfirmedViaSignature,
		raw:       raw,
	})
	if err != nil {
		return PaymentConfirmation{}, fail(span, err)
	}
	span.SetAttributes(attribute.Bool("payment.duplicate", conf.Duplicate))
	return conf, nil
}

// bookingForOrder prefers a consistent read by booking id; the order index
// may lag right after an order is created.
func (u *PaymentUseCase) bookingForOrder(ctx context.Context, bookingID, orderID string) (entities.Booking, error) {
	if bookingID == "" {
		b, err := u.bookings.GetByOrderID(ctx, orderID)
		if err != nil {
			return entities.Booking{}, err
		}
		if b.ID == "" {
			return entities.Booking{}, ErrBookingNotFound
		}
		return b, nil
	}

	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	if b.OrderID != orderID {
		telemetry.Logger.Warn("[payment][usecase] order does not match booking",
			zap.String("booking_id", b.ID),
			zap.String("booking_order_id", b.OrderID),
			zap.String("order_id", orderID),
		)
		return entities.Booking{}, ErrOrderBookingMismatch
	}
	return b, nil
}

// HandleWebhook processes a provider notification. Only an error in the
// notification itself is returned; anything that cannot be applied to a
// booking is acknowledged with WebhookOutcomeIgnored.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload map[string]any, signature string) (WebhookResult, error) {
	ctx, span := u.tracer.Start(ctx, "payment.webhook", trace.WithAttributes(
		attribute.String("payment.provider", u.provider.Name()),
	))
	defer span.End()

	ev, err := u.provider.HandleWebhook(ctx, payload, signature)
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues(u.provider.Name(), "unknown", "rejected").Inc()
		telemetry.Logger.Warn("[payment][usecase] webhook rejected", zap.Error(err))
		return WebhookResult{}, fail(span, fmt.Errorf("%w: %w", ErrInvalidWebhook, err))
	}
	span.SetAttributes(attribute.String("payment.event", ev.Event), attribute.String("payment.order_id", ev.OrderID))

	res := u.applyWebhook(ctx, ev)
	outcome := string(res.Outcome)
	if res.err != nil {
		outcome = "error"
	}
	metrics.WebhooksReceived.WithLabelValues(u.provider.Name(), ev.Event, outcome).Inc()
	telemetry.Logger.Info("[payment][usecase] webhook processed",
		zap.String("event", ev.Event),
		zap.String("order_id", ev.OrderID),
		zap.String("booking_id", res.BookingID),
		zap.String("outcome", outcome),
		zap.String("reason", res.Reason),
	)
	if res.err != nil {
		return WebhookResult{}, fail(span, res.err)
	}
	return res.WebhookResult, nil
}

type webhookApplication struct {
	WebhookResult
	err error
}

func (u *PaymentUseCase) applyWebhook(ctx context.Context, ev entities.WebhookEvent) webhookApplication {
	ignored := func(bookingID, reason string) webhookApplication {
		return webhookApplication{WebhookResult: WebhookResult{Event: ev, Outcome: WebhookOutcomeIgnored, BookingID: bookingID, Reason: reason}}
	}

	if !ev.IsCaptured() {
		return ignored("", "event not handled")
	}
	if ev.OrderID == "" {
		return ignored("", "missing order id")
	}

	b, err := u.bookings.GetByOrderID(ctx, ev.OrderID)
	if err != nil {
		return webhookApplication{err: err}
	}
	if b.ID == "" {
		return ignored("", "unknown order")
	}
	if ev.Amount != 0 && !decimal.NewFromFloat(ev.Amount).Equal(b.Amount) {
		telemetry.Logger.Warn("[payment][usecase] webhook amount mismatch",
			zap.String("booking_id", b.ID),
			zap.Float64("event_amount", ev.Amount),
			zap.String("booking_amount", b.Amount.String()),
		)
		return ignored(b.ID, "amount mismatch")
	}

	switch b.Status {
	case entities.BookingStatusConfirmed:
		return webhookApplication{WebhookResult: WebhookResult{Event: ev, Outcome: WebhookOutcomeDuplicate, BookingID: b.ID}}
	case entities.BookingStatusCancelled:
		return ignored(b.ID, "booking cancelled")
	}

	raw, _ := json.Marshal(ev.Raw)
	conf, err := u.confirm(ctx, b, confirmation{
		paymentID: ev.PaymentID,
		source:    entities.ConfirmedViaWebhook,
		raw:       raw,
		payload:   ev.Raw,
	})
	switch {
	case errors.Is(err, ErrBookingCancelled), errors.Is(err, ErrBookingNotAwaitingPayment):
		return ignored(b.ID, err.Error())
	case err != nil:
		return webhookApplication{err: err}
	}

	outcome := WebhookOutcomeConfirmed
	if conf.Duplicate {
		outcome = WebhookOutcomeDuplicate
	}
	return webhookApplication{WebhookResult: WebhookResult{Event: ev, Outcome: outcome, BookingID: b.ID}}
}

func (u *PaymentUseCase) ListPayments(ctx context.Context, bookingID string) ([]entities.Payment, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ID == "" {
		return nil, ErrBookingNotFound
	}
	return u.payments.ListByBookingID(ctx, bookingID)
}

type confirmation struct {
	paymentID string
	source    entities.ConfirmationSource
	raw       json.RawMessage
	payload   map[string]any
}

// confirm moves the booking from awaiting_confirmation to confirmed. The
// conditional update makes the first caller win; later callers get the
// confirmed booking back with Duplicate set.
func (u *PaymentUseCase) confirm(ctx context.Context, b entities.Booking, c confirmation) (PaymentConfirmation, error) {
	confirmed, err := u.bookings.Transition(ctx, b.ID,
		[]entities.BookingStatus{entities.BookingStatusAwaitingConfirmation},
		entities.BookingTransition{To: entities.BookingStatusConfirmed, PaymentID: c.paymentID, ConfirmedVia: c.source},
	)
	if err != nil {
		return PaymentConfirmation{}, err
	}

	if confirmed.ID == "" {
		current, err := u.bookings.GetByID(ctx, b.ID)
		if err != nil {
			return PaymentConfirmation{}, err
		}
		switch current.Status {
		case entities.BookingStatusConfirmed:
			telemetry.Logger.Info("[payment][usecase] booking already confirmed",
				zap.String("booking_id", current.ID),
				zap.String("confirmed_via", string(current.ConfirmedVia)),
				zap.String("attempt_via", string(c.source)),
			)
			inv, err := u.invoices.GenerateForBooking(ctx, current)
			if err != nil {
				telemetry.Logger.Error("[payment][usecase] invoice generation failed", zap.String("booking_id", current.ID), zap.Error(err))
			}
			return PaymentConfirmation{Booking: current, Invoice: inv, Duplicate: true}, nil
		case entities.BookingStatusCancelled:
			return PaymentConfirmation{}, ErrBookingCancelled
		case "":
			return PaymentConfirmation{}, ErrBookingNotFound
		default:
			return PaymentConfirmation{}, ErrBookingNotAwaitingPayment
		}
	}

	metrics.BookingsConfirmed.WithLabelValues(string(c.source)).Inc()
	telemetry.Logger.Info("[payment][usecase] booking confirmed",
		zap.String("booking_id", confirmed.ID),
		zap.String("order_id", confirmed.OrderID),
		zap.String("payment_id", c.paymentID),
		zap.String("confirmed_via", string(c.source)),
	)

	p := entities.Payment{
		ID:         entities.PaymentRecordID(confirmed.ID, c.paymentID),
		PaymentID:  c.paymentID,
		BookingID:  confirmed.ID,
		OrderID:    confirmed.OrderID,
		Provider:   confirmed.Provider,
		Amount:     confirmed.Amount,
		Currency:   confirmed.Currency,
		Status:     entities.PaymentStatusCaptured,
		Source:     c.source,
		Date:       u.now().UTC(),
		PayloadRaw: c.raw,
		Payload:    c.payload,
	}
	// The booking is confirmed regardless; the record is for audit.
	if _, err := u.payments.Create(ctx, p); errors.Is(err, interfaces.ErrAlreadyExists) {
		telemetry.Logger.Info("[payment][usecase] payment record already stored", zap.String("booking_id", confirmed.ID), zap.String("payment_id", c.paymentID))
	} else if err != nil {
		telemetry.Logger.Error("[payment][usecase] payment record failed", zap.String("booking_id", confirmed.ID), zap.Error(err))
	}

	inv, err := u.invoices.GenerateForBooking(ctx, confirmed)
	if err != nil {
		telemetry.Logger.Error("[payment][usecase] invoice generation failed", zap.String("booking_id", confirmed.ID), zap.Error(err))
	}

	event := entities.BookingConfirmedEvent{
		Type:         entities.EventBookingConfirmed,
		BookingID:    confirmed.ID,
		OrderID:      confirmed.OrderID,
		PaymentID:    c.paymentID,
		InvoiceID:    inv.ID,
		Provider:     confirmed.Provider,
		Amount:       confirmed.Amount.String(),
		Currency:     confirmed.Currency,
		ConfirmedVia: c.source,
		ConfirmedAt:  confirmed.UpdatedAt,
	}
	if err := u.publisher.Publish(ctx, confirmed.ID, event); err != nil {
		telemetry.Logger.Warn("[payment][usecase] publish booking.confirmed failed", zap.String("booking_id", confirmed.ID), zap.Error(err))
	}

	return PaymentConfirmation{Booking: confirmed, Payment: p, Invoice: inv}, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
