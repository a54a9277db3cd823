package payments

import (
	"context"
	"testing"
	"time"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnimplementedProvider_FailsLoudly(t *testing.T) {
	var p UnimplementedProvider

	_, err := p.CreateOrder(context.Background(), entities.OrderRequest{Amount: 1, Receipt: "r"})
	assert.ErrorIs(t, err, ErrNotImplemented)

	ok, err := p.VerifySignature(entities.VerificationInput{Signature: MockSignature})
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.False(t, ok)

	_, err = p.HandleWebhook(context.Background(), map[string]any{"order_id": "abc"}, "sig")
	assert.ErrorIs(t, err, ErrNotImplemented)
}

// partialProvider overrides only CreateOrder; the rest must still fail.
type partialProvider struct {
	UnimplementedProvider
}

func (partialProvider) CreateOrder(context.Context, entities.OrderRequest) (entities.OrderResult, error) {
	return entities.OrderResult{Success: true}, nil
}

func TestUnimplementedProvider_Embedded(t *testing.T) {
	var p partialProvider

	res, err := p.CreateOrder(context.Background(), entities.OrderRequest{})
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = p.VerifySignature(entities.VerificationInput{})
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = p.HandleWebhook(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestNewPaymentProvider(t *testing.T) {
	t.Run("default is mock", func(t *testing.T) {
		p, err := NewPaymentProvider(&config.Config{MockOrderDelay: 10 * time.Millisecond})
		require.NoError(t, err)
		m, ok := p.(*MockProvider)
		require.True(t, ok)
		assert.Equal(t, 10*time.Millisecond, m.delay)
	})

	t.Run("mock by name", func(t *testing.T) {
		p, err := NewPaymentProvider(&config.Config{PaymentProvider: "mock"})
		require.NoError(t, err)
		assert.Equal(t, "Mock", p.Name())
	})

	t.Run("mock mode overrides provider", func(t *testing.T) {
		p, err := NewPaymentProvider(&config.Config{PaymentProvider: "mercadopago", PaymentGatewayMock: true})
		require.NoError(t, err)
		assert.Equal(t, "Mock", p.Name())
	})

	t.Run("mercadopago without token", func(t *testing.T) {
		_, err := NewPaymentProvider(&config.Config{PaymentProvider: "mercadopago"})
		assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
	})

	t.Run("mercadopago", func(t *testing.T) {
		p, err := NewPaymentProvider(&config.Config{PaymentProvider: "mercadopago", MercadoPagoAccessToken: "TEST-123"})
		require.NoError(t, err)
		assert.Equal(t, "MercadoPago", p.Name())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewPaymentProvider(&config.Config{PaymentProvider: "phonepe"})
		assert.ErrorIs(t, err, ErrUnknownPaymentProvider)
	})
}

func TestPayloadFields(t *testing.T) {
	m := map[string]any{
		"s":    " abc ",
		"f":    float64(12.5),
		"n":    "42.25",
		"i":    7,
		"nil":  nil,
		"data": map[string]any{"id": float64(123)},
	}
	assert.Equal(t, "abc", stringField(m, "s"))
	assert.Equal(t, "12.5", stringField(m, "f"))
	assert.Equal(t, "", stringField(m, "nil"))
	assert.Equal(t, "", stringField(m, "missing"))
	assert.Equal(t, 12.5, numberField(m, "f"))
	assert.Equal(t, 42.25, numberField(m, "n"))
	assert.Equal(t, 7.0, numberField(m, "i"))
	assert.Equal(t, 0.0, numberField(m, "s"))
	assert.Equal(t, "123", stringField(mapField(m, "data"), "id"))
	assert.Nil(t, mapField(m, "s"))
}
