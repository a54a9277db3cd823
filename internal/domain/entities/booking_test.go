package entities

import "testing"

func TestBookingStatus_CanCreateOrder(t *testing.T) {
	cases := map[BookingStatus]bool{
		BookingStatusPending:              true,
		BookingStatusAwaitingConfirmation: true,
		BookingStatusConfirmed:            false,
		BookingStatusCancelled:            false,
	}
	for status, want := range cases {
		if got := status.CanCreateOrder(); got != want {
			t.Fatalf("%s: expected %v, got %v", status, want, got)
		}
	}
}

func TestPaymentRecordID(t *testing.T) {
	if a, b := PaymentRecordID("b-1", "pay-1"), PaymentRecordID("b-2", "pay-1"); a == b {
		t.Fatalf("expected distinct record ids, got %q twice", a)
	}
	if got := PaymentRecordID("b-1", "pay-1"); got != "b-1#pay-1" {
		t.Fatalf("unexpected record id %q", got)
	}
}
