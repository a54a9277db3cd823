package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrInvalidWebhookSignature         = errors.New("invalid webhook signature")
	ErrInvalidWebhookPayload           = errors.New("invalid webhook payload")
)

const mercadoPagoOrderIDPrefix = "mp_order_"

// preferenceCreator and paymentFetcher are the parts of the SDK clients this
// provider uses.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentFetcher interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type MercadoPagoOptions struct {
	AccessToken     string
	WebhookSecret   string
	Currency        string
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	Sandbox         bool
}

// MercadoPagoProvider opens Checkout Pro preferences and normalises payment
// notifications. Orders always redirect to the gateway.
type MercadoPagoProvider struct {
	UnimplementedProvider
	preferences preferenceCreator
	payments    paymentFetcher
	opts        MercadoPagoOptions
}

var _ interfaces.IPaymentProvider = (*MercadoPagoProvider)(nil)

func NewMercadoPagoProvider(opts MercadoPagoOptions) (*MercadoPagoProvider, error) {
	if opts.AccessToken == "" {
		telemetry.Logger.Warn("[payment][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}
	if opts.Currency == "" {
		opts.Currency = entities.CurrencyINR
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		telemetry.Logger.Error("[payment][mercadopago] failed creating sdk config", zap.Error(err))
		return nil, err
	}

	return &MercadoPagoProvider{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		opts:        opts,
	}, nil
}

func (p *MercadoPagoProvider) Name() string { return ProviderNameMercadoPago }

func (p *MercadoPagoProvider) CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.OrderResult, error) {
	if p == nil || p.preferences == nil {
		return entities.OrderResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	// The payment notified later only carries external_reference back, so the
	// order id travels there and the booking id goes in metadata.
	orderID := mercadoPagoOrderIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	telemetry.Logger.Info("[payment][mercadopago] create preference start", zap.String("receipt", req.Receipt), zap.String("order_id", orderID), zap.Float64("amount", req.Amount))

	prefReq := preference.Request{
		ExternalReference: orderID,
		NotificationURL:   p.opts.NotificationURL,
		Metadata:          map[string]any{"booking_id": req.Receipt},
		Items: []preference.ItemRequest{{
			ID:         req.Receipt,
			Title:      fmt.Sprintf("Booking %s", req.Receipt),
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: p.opts.Currency,
		}},
	}
	if p.opts.SuccessURL != "" || p.opts.FailureURL != "" {
		prefReq.BackURLs = &preference.BackURLsRequest{
			Success: p.opts.SuccessURL,
			Failure: p.opts.FailureURL,
			Pending: p.opts.SuccessURL,
		}
	}

	resp, err := p.preferences.Create(ctx, prefReq)
	if err != nil {
		telemetry.Logger.Error("[payment][mercadopago] sdk create preference failed", zap.String("receipt", req.Receipt), zap.Error(err))
		return entities.OrderResult{}, fmt.Errorf("create preference: %w", err)
	}

	paymentURL := resp.InitPoint
	if p.opts.Sandbox && resp.SandboxInitPoint != "" {
		paymentURL = resp.SandboxInitPoint
	}
	telemetry.Logger.Info("[payment][mercadopago] create preference success", zap.String("receipt", req.Receipt), zap.String("order_id", orderID), zap.String("preference_id", resp.ID))

	return entities.OrderResult{
		Success:    true,
		OrderID:    orderID,
		Amount:     req.Amount,
		Currency:   p.opts.Currency,
		IsRedirect: true,
		IsMockMode: false,
		Provider:   ProviderNameMercadoPago,
		PaymentURL: paymentURL,
	}, nil
}

// VerifySignature checks hex(HMAC-SHA256(secret, "<order_id>|<payment_id>")).
func (p *MercadoPagoProvider) VerifySignature(input entities.VerificationInput) (bool, error) {
	if p.opts.WebhookSecret == "" || input.Signature == "" || input.OrderID == "" || input.PaymentID == "" {
		return false, nil
	}
	expected := signHex(p.opts.WebhookSecret, input.OrderID+"|"+input.PaymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(input.Signature))), nil
}

// HandleWebhook validates the x-signature header (when a secret is set),
// fetches the notified payment and normalises it.
func (p *MercadoPagoProvider) HandleWebhook(ctx context.Context, payload map[string]any, signature string) (entities.WebhookEvent, error) {
	dataID := stringField(mapField(payload, "data"), "id")
	if dataID == "" {
		dataID = stringField(payload, "id")
	}
	if dataID == "" {
		return entities.WebhookEvent{}, fmt.Errorf("%w: missing data.id", ErrInvalidWebhookPayload)
	}

	if p.opts.WebhookSecret != "" && !p.validWebhookSignature(dataID, signature) {
		telemetry.Logger.Warn("[payment][mercadopago] webhook signature rejected", zap.String("data_id", dataID))
		return entities.WebhookEvent{}, ErrInvalidWebhookSignature
	}

	if t := stringField(payload, "type"); t != "" && t != "payment" {
		return entities.WebhookEvent{Event: "mercadopago." + t, Raw: payload}, nil
	}

	paymentID, err := strconv.Atoi(dataID)
	if err != nil {
		return entities.WebhookEvent{}, fmt.Errorf("%w: data.id %q is not numeric", ErrInvalidWebhookPayload, dataID)
	}
	if p.payments == nil {
		return entities.WebhookEvent{}, ErrMercadoPagoGatewayNotConfigured
	}

	resp, err := p.payments.Get(ctx, paymentID)
	if err != nil {
		telemetry.Logger.Error("[payment][mercadopago] sdk get payment failed", zap.Int("payment_id", paymentID), zap.Error(err))
		return entities.WebhookEvent{}, fmt.Errorf("get payment: %w", err)
	}

	event := entities.WebhookEvent{
		Event:     "payment." + resp.Status,
		OrderID:   resp.ExternalReference,
		PaymentID: strconv.Itoa(resp.ID),
		Amount:    resp.TransactionAmount,
		Status:    resp.Status,
		Raw:       payload,
	}
	if resp.Status == "approved" {
		event.Event = entities.WebhookEventPaymentCaptured
		event.Status = entities.WebhookStatusCaptured
	}
	telemetry.Logger.Info("[payment][mercadopago] webhook normalised", zap.String("event", event.Event), zap.String("payment_id", event.PaymentID), zap.String("order_id", event.OrderID))
	return event, nil
}

// validWebhookSignature checks a "ts=<ts>,v1=<hex>" header against the
// manifest "id:<data.id>;ts:<ts>;".
func (p *MercadoPagoProvider) validWebhookSignature(dataID, header string) bool {
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return false
	}
	manifest := fmt.Sprintf("id:%s;ts:%s;", strings.ToLower(dataID), ts)
	return hmac.Equal([]byte(signHex(p.opts.WebhookSecret, manifest)), []byte(strings.ToLower(v1)))
}

func signHex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
