package entities

// Values exchanged with payment providers. None of them is persisted as-is.

const (
	CurrencyINR = "INR"

	WebhookEventPaymentCaptured = "payment.captured"
	WebhookStatusCaptured       = "captured"
)

// OrderRequest asks a provider to open a payment order.
// Amount is expressed in major currency units; Receipt is the booking id.
type OrderRequest struct {
	Amount  float64 `json:"amount"`
	Receipt string  `json:"receipt"`
}

// OrderResult tells the UI how to continue: redirect to PaymentURL, or show
// the in-page confirmation modal when IsMockMode is set.
type OrderResult struct {
	Success    bool    `json:"success"`
	OrderID    string  `json:"orderId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	IsRedirect bool    `json:"isRedirect"`
	IsMockMode bool    `json:"isMockMode"`
	Provider   string  `json:"provider"`
	PaymentURL string  `json:"paymentUrl,omitempty"`
}

// WebhookEvent is a provider notification normalised for the booking flow.
type WebhookEvent struct {
	Event     string         `json:"event"`
	OrderID   string         `json:"orderId"`
	PaymentID string         `json:"paymentId"`
	Amount    float64        `json:"amount"`
	Status    string         `json:"status"`
	Raw       map[string]any `json:"raw,omitempty"`
}

func (e WebhookEvent) IsCaptured() bool {
	return e.Event == WebhookEventPaymentCaptured
}

// VerificationInput carries what the client submits after a (simulated) payment.
type VerificationInput struct {
	Signature string `json:"signature"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}
