package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MockSignature       = "mock_signature"
	DefaultMockDelay    = 500 * time.Millisecond
	mockOrderIDPrefix   = "mock_order_"
	mockPaymentIDPrefix = "mock_payment_"
)

// MockProvider simulates a gateway for local development and demos. It never
// leaves the process: orders are fabricated, a fixed signature is accepted
// and webhooks are synthesised as captured payments.
type MockProvider struct {
	UnimplementedProvider
	delay time.Duration
}

var _ interfaces.IPaymentProvider = (*MockProvider)(nil)

type MockOption func(*MockProvider)

// WithDelay overrides the artificial latency of CreateOrder.
func WithDelay(d time.Duration) MockOption {
	return func(m *MockProvider) {
		if d >= 0 {
			m.delay = d
		}
	}
}

func NewMockProvider(opts ...MockOption) *MockProvider {
	m := &MockProvider{delay: DefaultMockDelay}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockProvider) Name() string { return ProviderNameMock }

// CreateOrder waits for the configured delay so UI loading states can be
// exercised, then returns an order that must be confirmed in-page.
func (m *MockProvider) CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.OrderResult, error) {
	if m.delay > 0 {
		t := time.NewTimer(m.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return entities.OrderResult{}, ctx.Err()
		}
	}

	orderID := mockOrderIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	telemetry.Logger.Debug("[payment][mock] order created", zap.String("order_id", orderID), zap.String("receipt", req.Receipt), zap.Float64("amount", req.Amount))

	return entities.OrderResult{
		Success:    true,
		OrderID:    orderID,
		Amount:     req.Amount,
		Currency:   entities.CurrencyINR,
		IsRedirect: false,
		IsMockMode: true,
		Provider:   ProviderNameMock,
	}, nil
}

// VerifySignature accepts only the fixed test sentinel.
func (m *MockProvider) VerifySignature(input entities.VerificationInput) (bool, error) {
	return input.Signature == MockSignature, nil
}

// HandleWebhook does not check signature: mock notifications are trusted.
func (m *MockProvider) HandleWebhook(_ context.Context, payload map[string]any, _ string) (entities.WebhookEvent, error) {
	return entities.WebhookEvent{
		Event:     entities.WebhookEventPaymentCaptured,
		OrderID:   stringField(payload, "order_id"),
		PaymentID: fmt.Sprintf("%s%d", mockPaymentIDPrefix, nowMillis()),
		Amount:    numberField(payload, "amount"),
		Status:    entities.WebhookStatusCaptured,
		Raw:       payload,
	}, nil
}
