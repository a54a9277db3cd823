package routes

import (
	"yelagiri_booking/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathPayments = "/payments"

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/orders", paymentHandler.CreateOrder)
		payments.POST("/verify", paymentHandler.VerifyPayment)
		payments.POST("/webhook", paymentHandler.Webhook)
	}
}
