package bookingRepo

import (
	"time"

	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingQuery filters booking listings.
type BookingQuery struct {
	UserID     string
	ProviderID string
	Status     models.BookingStatus
	Limit      int64
	Skip       int64
}

// BookingRepository defines data access for booking documents. The booking
// state machine is the only writer of status, timeline and completionOTP.
type BookingRepository interface {
	// Create inserts a new booking document.
	Create(b *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// UpdateWithDocument patches a booking with the given update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// UpdateStatusIf atomically moves a booking from one status to another,
	// applying extra $set/$unset fields and appending a timeline entry. It
	// reports false when the booking was not in the expected status, which
	// resolves concurrent transitions to exactly one winner.
	UpdateStatusIf(id string, from, to models.BookingStatus, set bson.M, unset bson.M, entry models.TimelineEntry) (bool, error)
	// FindConflicting returns a booking for the provider with status in
	// {accepted, in_progress} scheduled within the window around center,
	// excluding excludeID. Returns nil when there is no conflict.
	FindConflicting(providerID string, center time.Time, buffer time.Duration, excludeID string) (*models.Booking, error)
	// FindActiveForDay returns the provider's accepted/in_progress bookings
	// scheduled on the given calendar day.
	FindActiveForDay(providerID string, day time.Time) ([]models.Booking, error)
	// Find lists bookings matching the query, newest first.
	Find(q BookingQuery) ([]models.Booking, error)
	// Count returns the number of bookings matching the query.
	Count(q BookingQuery) (int64, error)
}
