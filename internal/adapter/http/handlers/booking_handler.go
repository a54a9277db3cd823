package handlers

import (
	"errors"
	"net/http"

	request "yelagiri_booking/internal/adapter/http/dto/request"
	response "yelagiri_booking/internal/adapter/http/dto/response"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase"
	"yelagiri_booking/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidBookingPayload = pkg.NewDomainErrorSimple("INVALID_BOOKING_INPUT", "Invalid booking payload", http.StatusBadRequest)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// CreateBooking creates a pending booking
// @Summary Create booking
// @Description Create a pending booking for a listing, package, guide or transport. Send an Idempotency-Key header to make retries safe.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param booking body request.BookingCreateRequest true "Booking"
// @Success 201 {object} response.BookingResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload request.BookingCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidBookingPayload)
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		writeError(c, pkg.NewDomainError(errInvalidBookingPayload.Code, err.Error(), err, http.StatusBadRequest))
		return
	}

	booking, err := h.usecase.CreateBooking(c.Request.Context(), cmd)
	if err != nil {
		telemetry.Logger.Info("[booking][handler] create failed", zap.Error(err))
		writeError(c, mapUseCaseError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromBooking(booking))
}

// GetBooking returns one booking
// @Summary Get booking
// @Tags Bookings
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /bookings/{booking_id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.usecase.GetByID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(booking))
}

// ListBookings lists a customer's bookings, newest first
// @Summary List bookings by customer
// @Tags Bookings
// @Produce json
// @Param email query string true "Customer email"
// @Success 200 {array} response.BookingResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.usecase.ListByCustomerEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBookings(bookings))
}

// CancelBooking cancels an unpaid booking
// @Summary Cancel booking
// @Tags Bookings
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /bookings/{booking_id}/cancel [patch]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")
	booking, err := h.usecase.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		if !errors.Is(err, usecase.ErrBookingNotFound) {
			telemetry.Logger.Info("[booking][handler] cancel failed", zap.String("booking_id", bookingID), zap.Error(err))
		}
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(booking))
}
