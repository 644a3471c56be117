package booking

import (
	"fmt"
	"strings"
	"time"

	"handyhub/models"
	"handyhub/services/notification"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AcceptBooking moves a pending booking to accepted. The status flip is a
// conditional update, so of two concurrent accepts exactly one succeeds.
func (s *DefaultBookingService) AcceptBooking(actor Actor, bookingID string) (*models.Booking, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleProvider || actor.ID != b.ProviderID {
		return nil, ErrUnauthorized("not authorized to access this booking")
	}
	if b.Status != models.BookingPending {
		return nil, ErrInvalidStateTransition("booking cannot be accepted in current status")
	}
	if due, err := s.expireIfDue(b); err != nil {
		return nil, err
	} else if due {
		return nil, ErrInvalidStateTransition("booking has expired")
	}

	now := s.now()
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		models.BookingPending, models.BookingAccepted,
		nil,
		bson.M{"expiresAt": ""},
		models.TimelineEntry{Status: string(models.BookingAccepted), Timestamp: now, Note: "Booking accepted by provider"},
	)
	if err != nil {
		s.logger().Error("failed to accept booking", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, errInternal(err)
	}
	if !matched {
		return nil, ErrInvalidStateTransition("booking cannot be accepted in current status")
	}

	_ = Transition(b, models.BookingAccepted, "Booking accepted by provider", now)

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(b); err != nil {
			s.logger().Warn("failed to schedule booking reminder", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	s.notify(notification.EventBookingAccepted, b)
	return b, nil
}

// RejectBooking moves a pending booking to cancelled with a provider
// cancellation record.
func (s *DefaultBookingService) RejectBooking(actor Actor, bookingID, reason string) (*models.Booking, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleProvider || actor.ID != b.ProviderID {
		return nil, ErrUnauthorized("not authorized to access this booking")
	}
	if b.Status != models.BookingPending {
		return nil, ErrInvalidStateTransition("booking cannot be rejected in current status")
	}
	if due, err := s.expireIfDue(b); err != nil {
		return nil, err
	} else if due {
		return nil, ErrInvalidStateTransition("booking has already expired")
	}

	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		trimmed = "Rejected by provider"
	}

	now := s.now()
	cancellation := models.Cancellation{
		CancelledBy: RoleProvider,
		Reason:      trimmed,
		CancelledAt: now,
	}
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		models.BookingPending, models.BookingCancelled,
		bson.M{"cancellation": cancellation},
		bson.M{"expiresAt": ""},
		models.TimelineEntry{Status: string(models.BookingCancelled), Timestamp: now, Note: "Rejected by provider: " + trimmed},
	)
	if err != nil {
		s.logger().Error("failed to reject booking", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, errInternal(err)
	}
	if !matched {
		return nil, ErrInvalidStateTransition("booking cannot be rejected in current status")
	}

	_ = Transition(b, models.BookingCancelled, "Rejected by provider: "+trimmed, now)
	b.Cancellation = &cancellation

	s.notify(notification.EventBookingRejected, b)
	return b, nil
}

// CancelBooking cancels a pending or accepted booking on behalf of the
// user, provider or an admin, and records the computed refund amount.
func (s *DefaultBookingService) CancelBooking(actor Actor, bookingID, reason string) (*models.Booking, float64, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, 0, err
	}
	if err := authorizeParty(actor, b, true); err != nil {
		return nil, 0, err
	}
	if b.Status != models.BookingPending && b.Status != models.BookingAccepted {
		return nil, 0, ErrInvalidStateTransition("cannot cancel booking in current status")
	}
	if due, err := s.expireIfDue(b); err != nil {
		return nil, 0, err
	} else if due {
		return nil, 0, ErrInvalidStateTransition("booking has already expired")
	}

	now := s.now()
	refund := CalculateRefundAmount(b, now)
	if reason == "" {
		reason = "Cancelled"
	}
	cancellation := models.Cancellation{
		CancelledBy:  actor.Role,
		Reason:       reason,
		CancelledAt:  now,
		RefundAmount: refund,
	}
	note := fmt.Sprintf("Cancelled by %s: %s", actor.Role, reason)

	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		b.Status, models.BookingCancelled,
		bson.M{"cancellation": cancellation},
		bson.M{"expiresAt": ""},
		models.TimelineEntry{Status: string(models.BookingCancelled), Timestamp: now, Note: note},
	)
	if err != nil {
		s.logger().Error("failed to cancel booking", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, 0, errInternal(err)
	}
	if !matched {
		return nil, 0, ErrInvalidStateTransition("cannot cancel booking in current status")
	}

	_ = Transition(b, models.BookingCancelled, note, now)
	b.Cancellation = &cancellation

	s.notify(notification.EventBookingCancelled, b)
	return b, refund, nil
}

// RescheduleBooking moves a pending or accepted booking to a new time at
// least two hours out, re-running conflict detection at the target. The
// status is unchanged.
func (s *DefaultBookingService) RescheduleBooking(actor Actor, bookingID string, newTime time.Time) (*models.Booking, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeParty(actor, b, false); err != nil {
		return nil, ErrUnauthorized("not authorized to reschedule this booking")
	}
	if b.Status != models.BookingPending && b.Status != models.BookingAccepted {
		return nil, ErrInvalidStateTransition("cannot reschedule booking in current status")
	}
	if due, err := s.expireIfDue(b); err != nil {
		return nil, err
	} else if due {
		return nil, ErrInvalidStateTransition("booking has already expired")
	}

	now := s.now()
	if newTime.Before(now.Add(minRescheduleLead)) {
		return nil, ErrValidation("new time must be at least 2 hours from now")
	}

	conflict, err := s.Repo.FindConflicting(b.ProviderID, newTime, conflictBuffer, b.ID)
	if err != nil {
		s.logger().Error("conflict query failed", zap.String("providerId", b.ProviderID), zap.Error(err))
		return nil, errInternal(err)
	}
	if conflict != nil {
		return nil, ErrSchedulingConflict("provider is not available at the new time")
	}

	oldTime := b.ScheduledDateTime
	note := fmt.Sprintf("Booking rescheduled by %s from %s to %s",
		actor.Role, oldTime.Format(time.RFC3339), newTime.Format(time.RFC3339))
	entry := models.TimelineEntry{Status: "rescheduled", Timestamp: now, Note: note}

	// Same-status conditional update keeps the move atomic with respect to
	// concurrent transitions.
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		b.Status, b.Status,
		bson.M{"scheduledDateTime": newTime},
		nil,
		entry,
	)
	if err != nil {
		s.logger().Error("failed to reschedule booking", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, errInternal(err)
	}
	if !matched {
		return nil, ErrInvalidStateTransition("cannot reschedule booking in current status")
	}

	b.ScheduledDateTime = newTime
	b.Timeline = append(b.Timeline, entry)
	b.UpdatedAt = now

	s.notify(notification.EventBookingRescheduled, b)
	return b, nil
}
