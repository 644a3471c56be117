package handlers

import (
	"errors"
	"net/http"

	"handyhub/services/booking"

	"github.com/gin-gonic/gin"
)

// statusFor maps service error codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeUnauthorized:
		return http.StatusForbidden
	case booking.CodeRateLimited:
		return http.StatusTooManyRequests
	case booking.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// abortWithError writes a coded service error as the JSON response.
func abortWithError(c *gin.Context, err error) {
	var se *booking.Error
	if errors.As(err, &se) {
		c.JSON(statusFor(se.Code), gin.H{"error": se.Message, "code": se.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred", "code": booking.CodeInternal})
}

// actorFrom builds the service actor from the authenticated request context.
func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{ID: c.GetString("userID"), Role: c.GetString("role")}
}
