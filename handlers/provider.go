package handlers

import (
	"net/http"

	"handyhub/models"
	"handyhub/services/provider"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider schedule operations over HTTP.
type ProviderHandler struct {
	Service provider.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// GetProviderHandler returns a provider's public profile.
func (ph *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := ph.Service.GetProviderByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": p})
}

// ToggleAvailabilityHandler flips the caller's live availability flag.
func (ph *ProviderHandler) ToggleAvailabilityHandler(c *gin.Context) {
	result, err := ph.Service.ToggleAvailability(c.GetString("userID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateWorkingHoursHandler replaces the caller's weekly declaration.
func (ph *ProviderHandler) UpdateWorkingHoursHandler(c *gin.Context) {
	var input struct {
		WorkingHours models.WorkingHours `json:"workingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	hours, err := ph.Service.UpdateWorkingHours(c.GetString("userID"), input.WorkingHours)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": hours})
}
