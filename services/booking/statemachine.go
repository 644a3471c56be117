package booking

import (
	"time"

	"handyhub/models"
)

// allowedTransitions is the booking lifecycle table. A status missing from
// the map is terminal; a target missing from its row is illegal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:    {models.BookingAccepted, models.BookingCancelled, models.BookingExpired},
	models.BookingAccepted:   {models.BookingInProgress, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted},
}

// CanTransition reports whether the lifecycle table allows from -> to.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies a lifecycle move to an in-memory booking: it
// validates the edge, sets the new status and appends exactly one timeline
// entry. The booking is left untouched on an illegal move.
func Transition(b *models.Booking, to models.BookingStatus, note string, at time.Time) error {
	if !CanTransition(b.Status, to) {
		return ErrInvalidStateTransition("booking cannot move from %s to %s", b.Status, to)
	}
	b.Status = to
	if to != models.BookingPending {
		b.ExpiresAt = nil
	}
	b.Timeline = append(b.Timeline, models.TimelineEntry{
		Status:    string(to),
		Timestamp: at,
		Note:      note,
	})
	b.UpdatedAt = at
	return nil
}

// expired reports whether a pending booking's acceptance deadline passed.
func expired(b *models.Booking, now time.Time) bool {
	return b.Status == models.BookingPending && b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}
