package cron

import (
	"time"

	providerRepo "handyhub/database/repository/provider"
	"handyhub/services/availability"
	"handyhub/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AvailabilityReconciler keeps each provider's live availability flag in
// line with their declared working hours.
type AvailabilityReconciler struct {
	Providers providerRepo.ProviderRepository

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (r *AvailabilityReconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// ReconcileHourly recomputes whether each provider should currently be
// available and writes the flag only when it differs from the stored
// value, so a manual toggle survives until the next boundary crossing.
func (r *AvailabilityReconciler) ReconcileHourly() {
	logger := utils.GetLogger()
	providers, err := r.Providers.GetAll()
	if err != nil {
		logger.Error("availability reconcile: failed to load providers", zap.Error(err))
		return
	}

	now := r.now()
	updated := 0
	for i := range providers {
		p := &providers[i]
		window, ok, err := availability.WindowFor(p.WorkingHours, now)
		if err != nil {
			logger.Warn("availability reconcile: bad working hours",
				zap.String("providerId", p.ID), zap.Error(err))
			continue
		}
		shouldBeAvailable := ok && window.Contains(now)
		if p.IsAvailable == shouldBeAvailable {
			continue
		}
		if err := r.Providers.SetAvailability(p.ID, shouldBeAvailable); err != nil {
			logger.Error("availability reconcile: failed to update provider",
				zap.String("providerId", p.ID), zap.Error(err))
			continue
		}
		updated++
		logger.Info("provider availability updated",
			zap.String("providerId", p.ID), zap.Bool("isAvailable", shouldBeAvailable))
	}
	logger.Info("availability reconcile completed",
		zap.Int("providers", len(providers)), zap.Int("updated", updated))
}

// ResetDaily runs at midnight and forces off every provider whose working
// hours do not cover the new day. Providers who do work today are left for
// the hourly pass to switch on at their start time.
func (r *AvailabilityReconciler) ResetDaily() {
	logger := utils.GetLogger()
	providers, err := r.Providers.GetAll()
	if err != nil {
		logger.Error("availability reset: failed to load providers", zap.Error(err))
		return
	}

	day := availability.Weekday(r.now())
	for i := range providers {
		p := &providers[i]
		dh, works := p.WorkingHours[day]
		if (works && dh.Available) || !p.IsAvailable {
			continue
		}
		if err := r.Providers.SetAvailability(p.ID, false); err != nil {
			logger.Error("availability reset: failed to update provider",
				zap.String("providerId", p.ID), zap.Error(err))
			continue
		}
		logger.Info("provider set unavailable for the new day",
			zap.String("providerId", p.ID), zap.String("day", day))
	}
}

// StartAvailabilityScheduler registers the hourly reconcile and the
// midnight reset, starts the scheduler and returns it so the caller can
// stop it on shutdown.
func StartAvailabilityScheduler(providers providerRepo.ProviderRepository) *cron.Cron {
	r := &AvailabilityReconciler{Providers: providers}
	c := cron.New()
	if _, err := c.AddFunc("0 * * * *", r.ReconcileHourly); err != nil {
		utils.GetLogger().Fatal("failed to register hourly availability job", zap.Error(err))
	}
	if _, err := c.AddFunc("0 0 * * *", r.ResetDaily); err != nil {
		utils.GetLogger().Fatal("failed to register daily availability reset", zap.Error(err))
	}
	c.Start()
	return c
}
