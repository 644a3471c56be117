package bookingRepo

import (
	"fmt"
	"time"

	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// UpdateWithDocument patches a booking with the specified update document.
func (r *MongoBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, ok := updateDoc["$set"]; ok {
		updateDoc["$set"].(bson.M)["updatedAt"] = time.Now()
	} else {
		updateDoc["$set"] = bson.M{"updatedAt": time.Now()}
	}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// UpdateStatusIf atomically transitions a booking's status. The filter
// matches both the ID and the expected current status, so of two
// concurrent transitions exactly one observes MatchedCount == 1.
func (r *MongoBookingRepo) UpdateStatusIf(
	id string,
	from, to models.BookingStatus,
	set bson.M,
	unset bson.M,
	entry models.TimelineEntry,
) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if set == nil {
		set = bson.M{}
	}
	set["status"] = to
	set["updatedAt"] = time.Now()

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"timeline": entry},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	filter := bson.M{"id": id, "status": from}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s from %s to %s: %w", id, from, to, err)
	}
	return result.MatchedCount == 1, nil
}
