package handlers

import (
	"errors"
	"net/http"

	"yelagiri_booking/internal/usecase"
	"yelagiri_booking/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInternal       = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapUseCaseError translates use case sentinels into the HTTP envelope.
func mapUseCaseError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID),
		errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidInvoiceID),
		errors.Is(err, usecase.ErrInvalidCustomerEmail):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidBooking):
		return pkg.NewDomainError("INVALID_BOOKING_INPUT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSignatureMismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_SIGNATURE_MISMATCH", "Payment could not be verified", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidWebhook):
		return pkg.NewDomainError("INVALID_WEBHOOK", "Invalid webhook notification", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderBookingMismatch):
		return pkg.NewDomainErrorSimple("ORDER_BOOKING_MISMATCH", "Order does not belong to booking", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBookingAlreadyConfirmed):
		return pkg.NewDomainErrorSimple("BOOKING_ALREADY_CONFIRMED", "Booking already confirmed", http.StatusConflict)
	case errors.Is(err, usecase.ErrBookingCancelled):
		return pkg.NewDomainErrorSimple("BOOKING_CANCELLED", "Booking cancelled", http.StatusConflict)
	case errors.Is(err, usecase.ErrBookingNotAwaitingPayment):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_AWAITING_PAYMENT", "Booking has no open payment order", http.StatusConflict)
	case errors.Is(err, usecase.ErrBookingNotConfirmed):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_CONFIRMED", "Booking not confirmed", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentProviderUnavailable):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError(errInternal.Code, errInternal.Message, err, http.StatusInternalServerError)
	}
}
