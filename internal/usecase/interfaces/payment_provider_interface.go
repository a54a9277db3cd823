package interfaces

import (
	"context"
	"yelagiri_booking/internal/domain/entities"
)

//go:generate mockgen -source=payment_provider_interface.go -destination=mocks/payment_provider_interface.go -package=mock_interfaces

// IPaymentProvider abstracts payment backends (mock, Mercado Pago, ...).
//
// Callers treat every provider uniformly; the concrete one is chosen once at
// startup from configuration. A wrong signature is reported as (false, nil),
// never as an error.
type IPaymentProvider interface {
	Name() string
	CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.OrderResult, error)
	VerifySignature(input entities.VerificationInput) (bool, error)
	HandleWebhook(ctx context.Context, payload map[string]any, signature string) (entities.WebhookEvent, error)
}
