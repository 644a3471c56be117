package provider

import (
	"handyhub/models"
)

// ToggleResult reports the outcome of an availability toggle.
type ToggleResult struct {
	IsAvailable bool   `json:"isAvailable"`
	Message     string `json:"message"`
}

// ProviderService owns provider-facing schedule operations. Identity,
// verification and payout management live elsewhere.
type ProviderService interface {
	GetProviderByID(id string) (*models.Provider, error)
	// ToggleAvailability flips the live flag, except that it auto-disables
	// whenever the declared working hours say the provider should be off.
	ToggleAvailability(providerID string) (*ToggleResult, error)
	// UpdateWorkingHours replaces the weekly declaration after validation.
	UpdateWorkingHours(providerID string, hours models.WorkingHours) (models.WorkingHours, error)
}
