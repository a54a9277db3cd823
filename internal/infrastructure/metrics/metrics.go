package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_orders_created_total",
		Help: "Payment orders opened with a provider.",
	}, []string{"provider", "result"})

	SignatureVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_signature_verifications_total",
		Help: "Client signature verifications by outcome.",
	}, []string{"provider", "result"})

	WebhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhooks_received_total",
		Help: "Provider webhooks by normalised event and outcome.",
	}, []string{"provider", "event", "outcome"})

	BookingsConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_confirmed_total",
		Help: "Bookings confirmed, by the path that confirmed them first.",
	}, []string{"source"})
)
