package booking

import (
	"testing"
	"time"

	"handyhub/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.BookingPending, models.BookingAccepted, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingExpired, true},
		{models.BookingPending, models.BookingInProgress, false},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingAccepted, models.BookingInProgress, true},
		{models.BookingAccepted, models.BookingCancelled, true},
		{models.BookingAccepted, models.BookingCompleted, false},
		{models.BookingAccepted, models.BookingExpired, false},
		{models.BookingInProgress, models.BookingCompleted, true},
		{models.BookingInProgress, models.BookingCancelled, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCancelled, models.BookingPending, false},
		{models.BookingExpired, models.BookingAccepted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransitionAppendsOneTimelineEntry(t *testing.T) {
	b := testBooking(models.BookingPending)
	before := len(b.Timeline)
	at := testNow.Add(time.Minute)

	err := Transition(b, models.BookingAccepted, "Booking accepted by provider", at)

	assert.NoError(t, err)
	assert.Equal(t, models.BookingAccepted, b.Status)
	assert.Len(t, b.Timeline, before+1)
	last := b.Timeline[len(b.Timeline)-1]
	assert.Equal(t, string(models.BookingAccepted), last.Status)
	assert.Equal(t, at, last.Timestamp)
	assert.Nil(t, b.ExpiresAt, "leaving pending must clear the acceptance deadline")
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	b := testBooking(models.BookingCompleted)
	before := len(b.Timeline)

	err := Transition(b, models.BookingCancelled, "should not happen", testNow)

	assert.Error(t, err)
	assert.Equal(t, CodeInvalidStateTransition, CodeOf(err))
	assert.Equal(t, models.BookingCompleted, b.Status)
	assert.Len(t, b.Timeline, before, "failed transitions must not touch the timeline")
}

func TestExpired(t *testing.T) {
	b := testBooking(models.BookingPending)

	assert.False(t, expired(b, testNow))
	assert.True(t, expired(b, b.ExpiresAt.Add(time.Second)))
	assert.True(t, expired(b, *b.ExpiresAt), "deadline instant itself counts as expired")

	accepted := testBooking(models.BookingAccepted)
	assert.False(t, expired(accepted, testNow.Add(48*time.Hour)))
}
