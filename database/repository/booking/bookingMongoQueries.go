package bookingRepo

import (
	"fmt"
	"time"

	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeStatuses are the statuses that block a provider's time.
var activeStatuses = []models.BookingStatus{models.BookingAccepted, models.BookingInProgress}

// FindConflicting returns an active booking for the provider scheduled
// within [center-buffer, center+buffer], or nil if none exists.
func (r *MongoBookingRepo) FindConflicting(
	providerID string,
	center time.Time,
	buffer time.Duration,
	excludeID string,
) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"status":     bson.M{"$in": activeStatuses},
		"scheduledDateTime": bson.M{
			"$gte": center.Add(-buffer),
			"$lte": center.Add(buffer),
		},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	var b models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query conflicting bookings for provider %s: %w", providerID, err)
	}
	return &b, nil
}

// FindActiveForDay returns the provider's accepted/in_progress bookings on
// the calendar day containing the given time, in local time.
func (r *MongoBookingRepo) FindActiveForDay(providerID string, day time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	filter := bson.M{
		"providerId":        providerID,
		"status":            bson.M{"$in": activeStatuses},
		"scheduledDateTime": bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query day bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode day bookings: %w", err)
	}
	return bookings, nil
}

func queryFilter(q BookingQuery) bson.M {
	filter := bson.M{}
	if q.UserID != "" {
		filter["userId"] = q.UserID
	}
	if q.ProviderID != "" {
		filter["providerId"] = q.ProviderID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	return filter
}

// Find lists bookings matching the query, newest first.
func (r *MongoBookingRepo) Find(q BookingQuery) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}

	cursor, err := r.coll.Find(ctx, queryFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Count returns the number of bookings matching the query.
func (r *MongoBookingRepo) Count(q BookingQuery) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, queryFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
