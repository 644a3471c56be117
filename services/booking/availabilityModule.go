package booking

import (
	"time"

	"handyhub/models"
	"handyhub/services/availability"

	"go.uber.org/zap"
)

// DayAvailability is the answer to "can this provider be booked that day".
type DayAvailability struct {
	Available    bool                `json:"available"`
	Reason       string              `json:"reason,omitempty"`
	Slots        []availability.Slot `json:"availableSlots,omitempty"`
	WorkingHours *models.DayHours    `json:"workingHours,omitempty"`
}

// CheckProviderAvailability evaluates the provider's declared hours for the
// date and generates candidate slots of the requested duration, excluding
// slots that overlap existing active bookings.
func (s *DefaultBookingService) CheckProviderAvailability(providerID string, date time.Time, duration time.Duration) (*DayAvailability, error) {
	if duration <= 0 {
		duration = time.Hour
	}

	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		s.logger().Error("failed to load provider", zap.String("providerId", providerID), zap.Error(err))
		return nil, errInternal(err)
	}
	if provider == nil {
		return nil, ErrNotFound("provider not found")
	}

	window, works, err := availability.WindowFor(provider.WorkingHours, date)
	if err != nil {
		return nil, ErrValidation("provider has malformed working hours: %v", err)
	}
	if !works {
		return &DayAvailability{
			Available: false,
			Reason:    "Provider does not work on this day",
		}, nil
	}

	existing, err := s.Repo.FindActiveForDay(providerID, date)
	if err != nil {
		s.logger().Error("failed to load day bookings", zap.String("providerId", providerID), zap.Error(err))
		return nil, errInternal(err)
	}

	slots := availability.GenerateSlots(window, date, existing, duration)
	dh := provider.WorkingHours[window.Day]
	return &DayAvailability{
		Available:    len(slots) > 0,
		Slots:        slots,
		WorkingHours: &dh,
	}, nil
}
