package routes

import (
	"net/http"
	"time"

	"handyhub/handlers"
	"handyhub/middleware"
	"handyhub/services/booking"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers provider schedule endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public profile and day availability.
		api.GET("/id/:id", hb.Provider.GetProviderHandler)
		api.GET("/id/:id/availability", hb.Booking.CheckAvailabilityHandler)

		// Schedule management requires a provider token.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(booking.RoleProvider))
		protected.PATCH("/availability/toggle", hb.Provider.ToggleAvailabilityHandler)
		protected.PUT("/working-hours", hb.Provider.UpdateWorkingHoursHandler)
		protected.GET("/bookings/history", hb.Booking.ProviderHistoryHandler)
	}
}

// RegisterPaymentRoutes registers booking payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/intent", middleware.RequireRole(booking.RoleUser), hb.Payment.CreatePaymentIntentHandler)
		api.POST("/confirm", middleware.RequireRole(booking.RoleUser), hb.Payment.ConfirmPaymentHandler)
		api.POST("/refund", middleware.RequireRole(booking.RoleUser, booking.RoleAdmin), hb.Payment.RefundHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm HandyHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
