package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PAYMENT_PROVIDER", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "MOCK_ORDER_DELAY", "KAFKA_BROKERS", "BOOKINGS_TABLE", "CURRENCY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "mock", cfg.PaymentProvider)
	assert.False(t, cfg.PaymentGatewayMock)
	assert.Equal(t, 500*time.Millisecond, cfg.MockOrderDelay)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "bookings", cfg.BookingsTable)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_PROVIDER", " MercadoPago ")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")
	t.Setenv("MOCK_ORDER_DELAY", "0s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("MERCADOPAGO_SANDBOX", "1")

	cfg := Load()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "mercadopago", cfg.PaymentProvider)
	assert.True(t, cfg.PaymentGatewayMock)
	assert.Equal(t, time.Duration(0), cfg.MockOrderDelay)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.MercadoPagoSandbox)
}

func TestLoad_MercadoPagoMockAlias(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "true")

	cfg := Load()
	assert.True(t, cfg.PaymentGatewayMock)
}
