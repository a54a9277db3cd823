package handlers

import (
	"net/http"

	response "yelagiri_booking/internal/adapter/http/dto/response"
	"yelagiri_booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// GetInvoice returns an invoice by id
// @Summary Get invoice
// @Tags Invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} response.InvoiceResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /invoices/{invoice_id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("invoice_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetBookingInvoice returns the invoice of a confirmed booking
// @Summary Get booking invoice
// @Tags Invoices
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} response.InvoiceResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /bookings/{booking_id}/invoice [get]
func (h *InvoiceHandler) GetBookingInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByBookingID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}
