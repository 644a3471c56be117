package providerRepo

import (
	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetAll retrieves all providers.
	GetAll() ([]models.Provider, error)
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// UpdateWithDocument patches a provider document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// SetAvailability overwrites the live availability flag.
	SetAvailability(id string, available bool) error
	// IncrementCompletedJobs bumps the completed-job counter by one.
	IncrementCompletedJobs(id string) error
}
