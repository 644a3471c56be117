package booking

import (
	"testing"
	"time"

	"handyhub/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckProviderAvailabilityDayOff(t *testing.T) {
	providers := new(MockProviderRepo)
	providers.On("GetByID", "prov-1").Return(testProvider(), nil)

	svc := newTestService(new(MockBookingRepo), providers, new(MockUserRepo), nil)

	// The fixture provider only works Tuesdays.
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	day, err := svc.CheckProviderAvailability("prov-1", wednesday, time.Hour)

	assert.NoError(t, err)
	assert.False(t, day.Available)
	assert.NotEmpty(t, day.Reason)
	assert.Empty(t, day.Slots)
}

func TestCheckProviderAvailabilitySlots(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)

	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	providers.On("GetByID", "prov-1").Return(testProvider(), nil)
	repo.On("FindActiveForDay", "prov-1", tuesday).Return([]models.Booking{
		{ScheduledDateTime: tuesday.Add(12 * time.Hour)},
	}, nil)

	svc := newTestService(repo, providers, new(MockUserRepo), nil)
	day, err := svc.CheckProviderAvailability("prov-1", tuesday, time.Hour)

	assert.NoError(t, err)
	assert.True(t, day.Available)
	assert.Len(t, day.Slots, 7, "the booked noon hour is excluded from eight candidates")
	if assert.NotNil(t, day.WorkingHours) {
		assert.Equal(t, "09:00", day.WorkingHours.Start)
		assert.Equal(t, "17:00", day.WorkingHours.End)
	}
}

func TestCheckProviderAvailabilityUnknownProvider(t *testing.T) {
	providers := new(MockProviderRepo)
	providers.On("GetByID", "ghost").Return(nil, nil)

	svc := newTestService(new(MockBookingRepo), providers, new(MockUserRepo), nil)
	_, err := svc.CheckProviderAvailability("ghost", testNow, time.Hour)

	assert.Equal(t, CodeNotFound, CodeOf(err))
}
