package routes

import (
	"github.com/gin-gonic/gin"
)

const PathBookings = "/bookings"

func addBookingRoutes(rg *gin.RouterGroup, h Handlers) {
	bookings := rg.Group(PathBookings)
	{
		bookings.POST("", h.Idempotency, h.Booking.CreateBooking)
		bookings.GET("", h.Booking.ListBookings)
		bookings.GET("/:booking_id", h.Booking.GetBooking)
		bookings.PATCH("/:booking_id/cancel", h.Booking.CancelBooking)
		bookings.GET("/:booking_id/payments", h.Payment.ListBookingPayments)
		bookings.GET("/:booking_id/invoice", h.Invoice.GetBookingInvoice)
	}
}
