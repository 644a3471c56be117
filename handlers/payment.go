package handlers

import (
	"net/http"

	"handyhub/services/payment"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes booking payment operations over HTTP.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreatePaymentIntentHandler opens a gateway payment for an accepted booking.
func (ph *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := ph.Service.CreatePaymentIntent(actorFrom(c), input.BookingID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmPaymentHandler verifies the payment and moves the booking to
// in_progress.
func (ph *PaymentHandler) ConfirmPaymentHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
		IntentID  string `json:"intentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := ph.Service.ConfirmPayment(actorFrom(c), input.BookingID, input.IntentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// RefundHandler pushes the recorded cancellation refund through the gateway.
func (ph *PaymentHandler) RefundHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := ph.Service.IssueRefund(actorFrom(c), input.BookingID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": result})
}
