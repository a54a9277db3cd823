package response

import (
	"encoding/json"
	"testing"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromBooking(t *testing.T) {
	now := time.Now().UTC()
	b := entities.Booking{
		ID:         "b-1",
		Kind:       entities.BookingKindTransport,
		TravelDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Guests:     3,
		UnitPrice:  decimal.RequireFromString("400"),
		Amount:     decimal.RequireFromString("1200"),
		Currency:   "INR",
		Status:     entities.BookingStatusAwaitingConfirmation,
		OrderID:    "mock_order_1",
		CreatedAt:  now,
	}

	res := FromBooking(b)
	if res.ID != "b-1" || res.BookingID != "b-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Amount != "1200.00" || res.UnitPrice != "400.00" {
		t.Fatalf("unexpected money fields: %+v", res)
	}
	if res.TravelDate != "2026-04-10" || res.Status != "awaiting_confirmation" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if got := FromBookings([]entities.Booking{b, b}); len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	if got := FromBookings(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:         "b-1#pay-1",
		PaymentID:  "pay-1",
		BookingID:  "b-1",
		Amount:     decimal.NewFromInt(1200),
		Status:     entities.PaymentStatusCaptured,
		Source:     entities.ConfirmedViaWebhook,
		Date:       now,
		PayloadRaw: json.RawMessage(`{"order_id":"o"}`),
		Payload:    map[string]interface{}{"order_id": "o"},
	}

	res := FromPayment(p)
	if res.ID != "b-1#pay-1" || res.PaymentID != "pay-1" || res.BookingID != "b-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "captured" || res.Source != "webhook" || res.Amount != "1200.00" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.PaymentDate.Equal(now) || res.PayloadRaw != `{"order_id":"o"}` || res.Payload["order_id"] != "o" {
		t.Fatalf("unexpected payload fields: %+v", res)
	}
}

func TestFromConfirmationAndWebhook(t *testing.T) {
	conf := FromConfirmation(usecase.PaymentConfirmation{
		Booking:   entities.Booking{ID: "b-1", Status: entities.BookingStatusConfirmed},
		Invoice:   entities.Invoice{ID: "INV-b-1"},
		Duplicate: true,
	})
	if !conf.Success || !conf.Duplicate || conf.InvoiceID != "INV-b-1" || conf.Booking.Status != "confirmed" {
		t.Fatalf("unexpected confirmation response: %+v", conf)
	}

	ack := FromWebhookResult(usecase.WebhookResult{
		Event:     entities.WebhookEvent{Event: "payment.captured"},
		Outcome:   usecase.WebhookOutcomeIgnored,
		BookingID: "b-1",
	})
	if !ack.Received || ack.Outcome != "ignored" || ack.Event != "payment.captured" {
		t.Fatalf("unexpected ack: %+v", ack)
	}
}

func TestFromInvoice(t *testing.T) {
	inv := FromInvoice(entities.Invoice{
		ID:        "INV-b-1",
		BookingID: "b-1",
		Total:     decimal.RequireFromString("1499.5"),
		UnitPrice: decimal.RequireFromString("1499.5"),
	})
	if inv.InvoiceID != "INV-b-1" || inv.Total != "1499.50" {
		t.Fatalf("unexpected invoice response: %+v", inv)
	}
}
