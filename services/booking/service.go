package booking

import (
	"context"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	providerRepo "handyhub/database/repository/provider"
	userRepo "handyhub/database/repository/user"
	"handyhub/models"
	"handyhub/services/notification"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	// pendingTTL is how long a provider has to answer a new booking.
	pendingTTL = 24 * time.Hour
	// conflictBuffer keeps active bookings this far apart on both sides.
	conflictBuffer = 2 * time.Hour
	// minRescheduleLead is the earliest a booking may be moved to.
	minRescheduleLead = 2 * time.Hour
	// maxServiceRadiusMeters is the booking eligibility radius.
	maxServiceRadiusMeters = 10000.0

	otpDigits         = 6
	otpTTL            = 10 * time.Minute
	otpResendCooldown = 2 * time.Minute
	otpMaxAttempts    = 3
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository
	SMS          utils.SMSSender
	Notifier     notification.NotificationService
	Reminders    ReminderScheduler
	Logger       *zap.Logger

	// Now is the clock; nil means time.Now. Injected for tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// getBooking loads a booking or fails with NotFound.
func (s *DefaultBookingService) getBooking(id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		s.logger().Error("failed to load booking", zap.String("bookingId", id), zap.Error(err))
		return nil, errInternal(err)
	}
	if b == nil {
		return nil, ErrNotFound("booking not found")
	}
	return b, nil
}

// expireIfDue lazily enforces the pending acceptance deadline. It must run
// before any pending-only operation proceeds. The status flip is
// conditional on the booking still being pending, so a concurrent accept
// and sweep resolve to one winner.
func (s *DefaultBookingService) expireIfDue(b *models.Booking) (bool, error) {
	now := s.now()
	if !expired(b, now) {
		return false, nil
	}
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		models.BookingPending, models.BookingExpired,
		nil,
		bson.M{"expiresAt": ""},
		models.TimelineEntry{Status: string(models.BookingExpired), Timestamp: now, Note: "Booking expired without provider response"},
	)
	if err != nil {
		s.logger().Error("failed to expire booking", zap.String("bookingId", b.ID), zap.Error(err))
		return false, errInternal(err)
	}
	if matched {
		b.Status = models.BookingExpired
		b.ExpiresAt = nil
		b.Timeline = append(b.Timeline, models.TimelineEntry{
			Status:    string(models.BookingExpired),
			Timestamp: now,
			Note:      "Booking expired without provider response",
		})
	}
	return true, nil
}

// authorizeParty checks the caller is a party to the booking. Admins pass
// when allowAdmin is set.
func authorizeParty(actor Actor, b *models.Booking, allowAdmin bool) error {
	switch {
	case actor.Role == RoleUser && actor.ID == b.UserID:
		return nil
	case actor.Role == RoleProvider && actor.ID == b.ProviderID:
		return nil
	case allowAdmin && actor.Role == RoleAdmin:
		return nil
	}
	return ErrUnauthorized("not authorized to access this booking")
}

// notify dispatches a booking event, logging failures without blocking the
// transition that triggered it.
func (s *DefaultBookingService) notify(event string, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Notifier.NotifyBookingEvent(ctx, event, b); err != nil {
		s.logger().Warn("booking notification failed",
			zap.String("bookingId", b.ID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
