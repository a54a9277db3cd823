package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration, read from the environment (and a
// .env file, loaded before Load is called).
type Config struct {
	Port        int
	ServiceName string

	PaymentProvider    string
	PaymentGatewayMock bool
	MockOrderDelay     time.Duration
	Currency           string

	MercadoPagoAccessToken     string
	MercadoPagoWebhookSecret   string
	MercadoPagoNotificationURL string
	MercadoPagoSuccessURL      string
	MercadoPagoFailureURL      string
	MercadoPagoSandbox         bool

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	BookingsTable      string
	PaymentsTable      string
	InvoicesTable      string

	RedisAddr      string
	IdempotencyTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	OTLPEndpoint string
	LogLevel     string
}

var defaults = map[string]any{
	"PORT":                  8080,
	"SERVICE_NAME":          "yelagiri-booking",
	"PAYMENT_PROVIDER":      "mock",
	"PAYMENT_GATEWAY_MOCK":  false,
	"MOCK_ORDER_DELAY":      "500ms",
	"CURRENCY":              "INR",
	"MERCADOPAGO_SANDBOX":   false,
	"AWS_REGION":            "us-east-1",
	"AWS_ACCESS_KEY_ID":     "local",
	"AWS_SECRET_ACCESS_KEY": "local",
	"BOOKINGS_TABLE":        "bookings",
	"PAYMENTS_TABLE":        "payments",
	"INVOICES_TABLE":        "invoices",
	"IDEMPOTENCY_TTL":       "24h",
	"KAFKA_TOPIC":           "booking.confirmed",
	"LOG_LEVEL":             "info",
}

// Load reads the configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	return &Config{
		Port:        v.GetInt("PORT"),
		ServiceName: v.GetString("SERVICE_NAME"),

		PaymentProvider:    strings.ToLower(strings.TrimSpace(v.GetString("PAYMENT_PROVIDER"))),
		PaymentGatewayMock: isTruthy(v.GetString("PAYMENT_GATEWAY_MOCK")) || isTruthy(v.GetString("MERCADOPAGO_MOCK")),
		MockOrderDelay:     v.GetDuration("MOCK_ORDER_DELAY"),
		Currency:           strings.ToUpper(v.GetString("CURRENCY")),

		MercadoPagoAccessToken:     strings.TrimSpace(v.GetString("MERCADOPAGO_ACCESS_TOKEN")),
		MercadoPagoWebhookSecret:   v.GetString("MERCADOPAGO_WEBHOOK_SECRET"),
		MercadoPagoNotificationURL: v.GetString("MERCADOPAGO_NOTIFICATION_URL"),
		MercadoPagoSuccessURL:      v.GetString("MERCADOPAGO_SUCCESS_URL"),
		MercadoPagoFailureURL:      v.GetString("MERCADOPAGO_FAILURE_URL"),
		MercadoPagoSandbox:         isTruthy(v.GetString("MERCADOPAGO_SANDBOX")),

		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),
		BookingsTable:      v.GetString("BOOKINGS_TABLE"),
		PaymentsTable:      v.GetString("PAYMENTS_TABLE"),
		InvoicesTable:      v.GetString("INVOICES_TABLE"),

		RedisAddr:      v.GetString("REDIS_ADDR"),
		IdempotencyTTL: v.GetDuration("IDEMPOTENCY_TTL"),

		KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:   v.GetString("KAFKA_TOPIC"),

		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
