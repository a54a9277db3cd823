package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	request "yelagiri_booking/internal/adapter/http/dto/request"
	response "yelagiri_booking/internal/adapter/http/dto/response"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Webhook signatures arrive in this header; Mercado Pago names it x-signature.
const HeaderWebhookSignature = "X-Signature"

// PaymentHandler handles the payment flow: order creation, client-side
// verification and provider webhooks.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateOrder opens a payment order for a booking
// @Summary Create payment order
// @Description Opens an order with the configured provider. isMockMode tells the UI to show the confirmation modal instead of redirecting to paymentUrl.
// @Tags Payments
// @Accept json
// @Produce json
// @Param order body request.CreateOrderRequest true "Order"
// @Success 201 {object} entities.OrderResult
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Failure 502 {object} pkg.HTTPError
// @Router /payments/orders [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	telemetry.Logger.Info("[payment][handler] create-order start", zap.String("booking_id", payload.BookingID))
	result, err := h.usecase.CreateOrder(c.Request.Context(), payload.BookingID)
	if err != nil {
		telemetry.Logger.Info("[payment][handler] create-order failed", zap.String("booking_id", payload.BookingID), zap.Error(err))
		writeError(c, mapUseCaseError(err))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// VerifyPayment confirms a booking from the client's payment signature
// @Summary Verify payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param verification body request.VerifyPaymentRequest true "Verification"
// @Success 200 {object} response.VerifyPaymentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /payments/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var payload request.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	conf, err := h.usecase.VerifyPayment(c.Request.Context(), payload.ToCommand())
	if err != nil {
		telemetry.Logger.Info("[payment][handler] verify failed", zap.String("order_id", payload.OrderID), zap.Error(err))
		writeError(c, mapUseCaseError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromConfirmation(conf))
}

// Webhook receives provider notifications
// @Summary Payment webhook
// @Description Every well-formed notification is acknowledged with 200, including the ones that do not change any booking.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Signature header string false "Provider signature"
// @Success 200 {object} response.WebhookAckResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := readWebhookPayload(c)
	if err != nil {
		telemetry.Logger.Info("[payment][handler] webhook payload invalid", zap.Error(err))
		writeError(c, errInvalidRequest)
		return
	}

	result, err := h.usecase.HandleWebhook(c.Request.Context(), payload, c.GetHeader(HeaderWebhookSignature))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromWebhookResult(result))
}

// ListBookingPayments returns the payment records of a booking
// @Summary List booking payments
// @Tags Payments
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {array} response.PaymentResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /bookings/{booking_id}/payments [get]
func (h *PaymentHandler) ListBookingPayments(c *gin.Context) {
	payments, err := h.usecase.ListPayments(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func readWebhookPayload(c *gin.Context) (map[string]any, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
