package provider

import (
	"fmt"
	"time"

	providerRepo "handyhub/database/repository/provider"
	"handyhub/models"
	"handyhub/services/availability"
	"handyhub/services/booking"
	"handyhub/utils"

	"go.uber.org/zap"
)

// DefaultProviderService is the production implementation of ProviderService.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultProviderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetProviderByID returns a provider or a NotFound error.
func (s *DefaultProviderService) GetProviderByID(id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("failed to load provider", zap.String("providerId", id), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	if p == nil {
		return nil, booking.ErrNotFound("provider not found")
	}
	return p, nil
}

// ToggleAvailability flips the provider's live availability flag, unless
// the declared working hours say the provider should be off right now, in
// which case the flag is forced to false.
func (s *DefaultProviderService) ToggleAvailability(providerID string) (*ToggleResult, error) {
	p, err := s.GetProviderByID(providerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	window, works, err := availability.WindowFor(p.WorkingHours, now)
	if err != nil {
		return nil, booking.ErrValidation("working hours are malformed: %v", err)
	}

	if !works {
		if p.IsAvailable {
			if err := s.Repo.SetAvailability(providerID, false); err != nil {
				utils.GetLogger().Error("failed to update availability", zap.String("providerId", providerID), zap.Error(err))
				return nil, booking.ErrInternal()
			}
			return &ToggleResult{
				IsAvailable: false,
				Message:     fmt.Sprintf("You are unavailable today (%s). Your availability has been auto-disabled.", window.Day),
			}, nil
		}
		return nil, booking.ErrValidation("you are unavailable today (%s)", window.Day)
	}

	if !window.Contains(now) && p.IsAvailable {
		if err := s.Repo.SetAvailability(providerID, false); err != nil {
			utils.GetLogger().Error("failed to update availability", zap.String("providerId", providerID), zap.Error(err))
			return nil, booking.ErrInternal()
		}
		return &ToggleResult{
			IsAvailable: false,
			Message:     "You are outside your working hours. You are now marked as unavailable.",
		}, nil
	}

	newAvailability := !p.IsAvailable
	if err := s.Repo.SetAvailability(providerID, newAvailability); err != nil {
		utils.GetLogger().Error("failed to update availability", zap.String("providerId", providerID), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	state := "disabled"
	if newAvailability {
		state = "enabled"
	}
	return &ToggleResult{
		IsAvailable: newAvailability,
		Message:     fmt.Sprintf("Availability %s successfully", state),
	}, nil
}

// UpdateWorkingHours validates and replaces the weekly declaration.
func (s *DefaultProviderService) UpdateWorkingHours(providerID string, hours models.WorkingHours) (models.WorkingHours, error) {
	if len(hours) == 0 {
		return nil, booking.ErrValidation("please provide valid working hours data")
	}
	for day, dh := range hours {
		if !validDay(day) {
			return nil, booking.ErrValidation("unknown weekday %q in working hours", day)
		}
		if !dh.Available {
			continue
		}
		start, err := availability.ParseClock(dh.Start)
		if err != nil {
			return nil, booking.ErrValidation("%s: %v", day, err)
		}
		end, err := availability.ParseClock(dh.End)
		if err != nil {
			return nil, booking.ErrValidation("%s: %v", day, err)
		}
		if end < start {
			return nil, booking.ErrValidation("%s: window end %s is before start %s", day, dh.End, dh.Start)
		}
	}

	p, err := s.GetProviderByID(providerID)
	if err != nil {
		return nil, err
	}
	p.WorkingHours = hours
	if err := s.Repo.Update(p); err != nil {
		utils.GetLogger().Error("failed to update working hours", zap.String("providerId", providerID), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	return hours, nil
}

func validDay(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
