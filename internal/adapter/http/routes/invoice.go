package routes

import (
	"yelagiri_booking/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathInvoices = "/invoices"

func addInvoiceRoutes(rg *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler) {
	rg.GET(PathInvoices+"/:invoice_id", invoiceHandler.GetInvoice)
}
