package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/config"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	ProviderNameMock        = "Mock"
	ProviderNameMercadoPago = "MercadoPago"
)

var (
	ErrNotImplemented         = errors.New("payment provider method not implemented")
	ErrUnknownPaymentProvider = errors.New("unknown payment provider")
)

// UnimplementedProvider is the default behaviour of the provider contract.
// Concrete providers embed it and override what they support; anything left
// over fails loudly with ErrNotImplemented instead of silently succeeding.
type UnimplementedProvider struct{}

func (UnimplementedProvider) Name() string { return "Unimplemented" }

func (UnimplementedProvider) CreateOrder(context.Context, entities.OrderRequest) (entities.OrderResult, error) {
	return entities.OrderResult{}, fmt.Errorf("create order: %w", ErrNotImplemented)
}

func (UnimplementedProvider) VerifySignature(entities.VerificationInput) (bool, error) {
	return false, fmt.Errorf("verify signature: %w", ErrNotImplemented)
}

func (UnimplementedProvider) HandleWebhook(context.Context, map[string]any, string) (entities.WebhookEvent, error) {
	return entities.WebhookEvent{}, fmt.Errorf("handle webhook: %w", ErrNotImplemented)
}

var _ interfaces.IPaymentProvider = UnimplementedProvider{}

// NewPaymentProvider selects the provider named by configuration. It is meant
// to run at startup so that misconfiguration stops the process early.
//
// PAYMENT_GATEWAY_MOCK forces the mock provider regardless of PAYMENT_PROVIDER.
func NewPaymentProvider(cfg *config.Config) (interfaces.IPaymentProvider, error) {
	if cfg.PaymentGatewayMock {
		telemetry.Logger.Info("[payment][provider] mock mode forced by PAYMENT_GATEWAY_MOCK")
		return NewMockProvider(WithDelay(cfg.MockOrderDelay)), nil
	}

	switch cfg.PaymentProvider {
	case "", "mock":
		telemetry.Logger.Info("[payment][provider] using mock provider", zap.Duration("delay", cfg.MockOrderDelay))
		return NewMockProvider(WithDelay(cfg.MockOrderDelay)), nil
	case "mercadopago":
		p, err := NewMercadoPagoProvider(MercadoPagoOptions{
			AccessToken:     cfg.MercadoPagoAccessToken,
			WebhookSecret:   cfg.MercadoPagoWebhookSecret,
			Currency:        cfg.Currency,
			NotificationURL: cfg.MercadoPagoNotificationURL,
			SuccessURL:      cfg.MercadoPagoSuccessURL,
			FailureURL:      cfg.MercadoPagoFailureURL,
			Sandbox:         cfg.MercadoPagoSandbox,
		})
		if err != nil {
			return nil, err
		}
		telemetry.Logger.Info("[payment][provider] Mercado Pago provider initialized", zap.Bool("sandbox", cfg.MercadoPagoSandbox))
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentProvider, cfg.PaymentProvider)
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
