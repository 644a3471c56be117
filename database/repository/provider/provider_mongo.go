package providerRepo

import (
	"context"
	"time"

	"handyhub/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo is the MongoDB implementation of ProviderRepository.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo returns a repository backed by the "providers" collection.
func NewMongoProviderRepo() *MongoProviderRepo {
	return &MongoProviderRepo{coll: database.Collection("providers")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
