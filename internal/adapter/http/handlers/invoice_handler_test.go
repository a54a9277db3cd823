package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"yelagiri_booking/internal/adapter/http/handlers/mocks"
	"yelagiri_booking/internal/domain/entities"
	"yelagiri_booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestInvoiceHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.GET("/v1/invoices/:invoice_id", h.GetInvoice)
	r.GET("/v1/bookings/:booking_id/invoice", h.GetBookingInvoice)

	uc.EXPECT().GetByID(gomock.Any(), "INV-b-1").Return(entities.Invoice{ID: "INV-b-1", BookingID: "b-1"}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/invoices/INV-b-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	uc.EXPECT().GetByBookingID(gomock.Any(), "b-2").Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/bookings/b-2/invoice", nil))
	if w.Code != http.StatusNotFound || decodeError(t, w).Code != "INVOICE_NOT_FOUND" {
		t.Fatalf("expected 404 INVOICE_NOT_FOUND, got %d %s", w.Code, w.Body.String())
	}
}
