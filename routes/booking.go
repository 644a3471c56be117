package routes

import (
	"handyhub/handlers"
	"handyhub/middleware"
	"handyhub/services/booking"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())

		api.POST("", middleware.RequireRole(booking.RoleUser), hb.Booking.CreateBookingHandler)
		api.GET("", hb.Booking.ListBookingsHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)

		// Provider decision on a pending booking.
		api.PATCH("/:id/accept", middleware.RequireRole(booking.RoleProvider), hb.Booking.AcceptBookingHandler)
		api.PATCH("/:id/reject", middleware.RequireRole(booking.RoleProvider), hb.Booking.RejectBookingHandler)

		api.PATCH("/:id/cancel", hb.Booking.CancelBookingHandler)
		api.PATCH("/:id/reschedule", hb.Booking.RescheduleBookingHandler)

		// Completion OTP exchange.
		api.POST("/:id/otp", middleware.RequireRole(booking.RoleProvider), hb.Booking.GenerateOTPHandler)
		api.POST("/:id/complete", middleware.RequireRole(booking.RoleProvider), hb.Booking.VerifyOTPHandler)
	}
}
