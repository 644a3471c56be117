package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"handyhub/models"
	"handyhub/services/booking"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler books a provider for the authenticated user.
func (bh *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := bh.Service.CreateBooking(actorFrom(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// AcceptBookingHandler lets the provider accept a pending booking.
func (bh *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	b, err := bh.Service.AcceptBooking(actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// RejectBookingHandler lets the provider reject a pending booking.
func (bh *BookingHandler) RejectBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := bh.Service.RejectBooking(actorFrom(c), c.Param("id"), input.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBookingHandler cancels a booking the caller is a party to and
// reports the computed refund amount.
func (bh *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, refund, err := bh.Service.CancelBooking(actorFrom(c), c.Param("id"), input.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "refundAmount": refund})
}

// RescheduleBookingHandler moves a booking to a new time.
func (bh *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	var input struct {
		NewDateTime time.Time `json:"newDateTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := bh.Service.RescheduleBooking(actorFrom(c), c.Param("id"), input.NewDateTime)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GenerateOTPHandler sends the completion code to the booking's user.
func (bh *BookingHandler) GenerateOTPHandler(c *gin.Context) {
	delivery, err := bh.Service.GenerateCompletionOTP(actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// VerifyOTPHandler completes the booking when the code matches.
func (bh *BookingHandler) VerifyOTPHandler(c *gin.Context) {
	var req booking.CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := bh.Service.VerifyCompletionOTP(actorFrom(c), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GetBookingHandler returns a single booking to one of its parties.
func (bh *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := bh.Service.GetBooking(actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookingsHandler returns the caller's bookings, optionally filtered
// by ?status=.
func (bh *BookingHandler) ListBookingsHandler(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	bookings, err := bh.Service.ListBookings(actorFrom(c), status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// ProviderHistoryHandler returns a page of the provider's own bookings.
func (bh *BookingHandler) ProviderHistoryHandler(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	bookings, pagination, err := bh.Service.ProviderHistory(actorFrom(c), status, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "pagination": pagination})
}

// CheckAvailabilityHandler reports a provider's bookable slots for a date
// given as ?date=YYYY-MM-DD. The answer is cached for a few minutes; slot
// validity is re-checked at booking time anyway.
func (bh *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date, want YYYY-MM-DD"})
		return
	}

	providerID := c.Param("id")
	cacheKey := "availability:" + providerID + ":" + date.Format("2006-01-02")
	cache := utils.GetCacheClient()
	if cache != nil {
		if cached, err := cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var day booking.DayAvailability
			if json.Unmarshal([]byte(cached), &day) == nil {
				c.JSON(http.StatusOK, day)
				return
			}
		}
	}

	duration := models.ServiceDuration(c.Query("category"), c.Query("subcategory"))
	day, err := bh.Service.CheckProviderAvailability(providerID, date, duration)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if cache != nil {
		if data, err := json.Marshal(day); err == nil {
			_ = cache.Set(c.Request.Context(), cacheKey, data, 5*time.Minute).Err()
		}
	}
	c.JSON(http.StatusOK, day)
}
