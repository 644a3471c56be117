package booking

import (
	"fmt"
	"math"

	"handyhub/models"
	"handyhub/services/notification"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GenerateCompletionOTP creates a fresh completion code for an in-progress
// booking and relays it to the customer by SMS. Only the sha256 digest is
// stored. A failed SMS send clears the record so the customer is never
// stuck with a code they cannot receive.
func (s *DefaultBookingService) GenerateCompletionOTP(actor Actor, bookingID string) (*OTPDelivery, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleProvider || actor.ID != b.ProviderID {
		return nil, ErrUnauthorized("not authorized to access this booking")
	}
	if b.Status != models.BookingInProgress {
		return nil, ErrInvalidStateTransition("booking must be in progress to generate a completion code")
	}

	now := s.now()
	if b.CompletionOTP != nil && !b.CompletionOTP.GeneratedAt.IsZero() {
		sinceLast := now.Sub(b.CompletionOTP.GeneratedAt)
		if sinceLast < otpResendCooldown {
			remaining := int(math.Ceil((otpResendCooldown - sinceLast).Seconds()))
			return nil, ErrRateLimited("please wait %d seconds before requesting a new code", remaining)
		}
	}

	code, err := utils.GenerateNumericOTP(otpDigits)
	if err != nil {
		s.logger().Error("failed to generate completion code", zap.Error(err))
		return nil, errInternal(err)
	}

	otp := models.CompletionOTP{
		OTPHash:     utils.HashOTP(code),
		GeneratedAt: now,
		ExpiresAt:   now.Add(otpTTL),
		Attempts:    0,
		MaxAttempts: otpMaxAttempts,
		IsUsed:      false,
	}
	if err := s.Repo.UpdateWithDocument(b.ID, bson.M{"$set": bson.M{"completionOTP": otp}}); err != nil {
		s.logger().Error("failed to store completion code", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, errInternal(err)
	}

	user, err := s.UserRepo.GetByID(b.UserID)
	if err != nil || user == nil {
		s.clearOTP(b.ID)
		return nil, ErrNotFound("customer not found for this booking")
	}

	providerName := actor.ID
	if p, pErr := s.ProviderRepo.GetByID(b.ProviderID); pErr == nil && p != nil {
		providerName = p.BusinessName
		if providerName == "" {
			providerName = p.Name
		}
	}

	message := fmt.Sprintf(
		"Your booking completion code is: %s. It is valid for 10 minutes. Share it with the provider only once the work is done. Provider: %s",
		code, providerName,
	)
	if err := s.SMS.Send(user.Phone, message); err != nil {
		// Never leave a pending code the customer cannot obtain.
		s.clearOTP(b.ID)
		s.logger().Error("completion code SMS failed", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, ErrValidation("failed to send completion code")
	}

	entry := models.TimelineEntry{Status: "otp_generated", Timestamp: now, Note: "Completion code sent to customer"}
	if err := s.Repo.UpdateWithDocument(b.ID, bson.M{"$push": bson.M{"timeline": entry}}); err != nil {
		s.logger().Warn("failed to record code generation in timeline", zap.String("bookingId", b.ID), zap.Error(err))
	}

	return &OTPDelivery{
		SentTo:    utils.MaskPhone(user.Phone),
		ExpiresAt: otp.ExpiresAt,
	}, nil
}

func (s *DefaultBookingService) clearOTP(bookingID string) {
	if err := s.Repo.UpdateWithDocument(bookingID, bson.M{"$unset": bson.M{"completionOTP": ""}}); err != nil {
		s.logger().Error("failed to clear completion code", zap.String("bookingId", bookingID), zap.Error(err))
	}
}

// VerifyCompletionOTP checks the relayed code and, on a match, completes
// the booking. The attempt counter is persisted before the comparison so a
// crash mid-check cannot grant extra retries; booking status never changes
// on a failed attempt.
func (s *DefaultBookingService) VerifyCompletionOTP(actor Actor, bookingID string, req CompleteBookingRequest) (*models.Booking, error) {
	if req.OTP == "" {
		return nil, ErrValidation("a completion code is required to complete the booking")
	}

	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleProvider || actor.ID != b.ProviderID {
		return nil, ErrUnauthorized("not authorized to access this booking")
	}
	if b.Status == models.BookingCompleted {
		return nil, ErrInvalidStateTransition("booking is already marked as completed")
	}
	if b.Status != models.BookingInProgress {
		return nil, ErrInvalidStateTransition("booking must be in progress to complete")
	}
	otp := b.CompletionOTP
	if otp == nil || otp.OTPHash == "" {
		return nil, ErrValidation("no completion code generated for this booking, please generate one first")
	}
	if otp.IsUsed {
		return nil, ErrInvalidOTP("completion code has already been used")
	}

	now := s.now()
	if !now.Before(otp.ExpiresAt) {
		return nil, ErrOTPExpired("completion code has expired, please generate a new one")
	}
	if otp.Attempts >= otp.MaxAttempts {
		return nil, ErrAttemptsExceeded("maximum attempts exceeded, please generate a new code")
	}

	// Persist the attempt before evaluating the match.
	otp.Attempts++
	if err := s.Repo.UpdateWithDocument(b.ID, bson.M{"$set": bson.M{"completionOTP.attempts": otp.Attempts}}); err != nil {
		s.logger().Error("failed to record verification attempt", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, errInternal(err)
	}

	if utils.HashOTP(req.OTP) != otp.OTPHash {
		remaining := otp.MaxAttempts - otp.Attempts
		if remaining > 0 {
			return nil, ErrInvalidOTP("invalid completion code, %d attempts remaining", remaining)
		}
		return nil, ErrAttemptsExceeded("invalid completion code, maximum attempts exceeded, please generate a new code")
	}

	completion := models.Completion{CompletedAt: now, WorkImages: req.WorkImages}
	set := bson.M{
		"completionOTP.isUsed": true,
		"completion":           completion,
	}
	if req.Notes != "" {
		set["notes.provider"] = req.Notes
	}
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		models.BookingInProgress, models.BookingCompleted,
		set,
		nil,
		models.TimelineEntry{
			Status:    string(models.BookingCompleted),
			Timestamp: now,
			Note:      "Work completed by provider and verified by customer via completion code",
		},
	)
	if err != nil {
		s.logger().Error("failed to complete booking", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, errInternal(err)
	}
	if !matched {
		return nil, ErrInvalidStateTransition("booking must be in progress to complete")
	}

	// The completed-job counter is bumped exactly once, by the winning
	// completion.
	if err := s.ProviderRepo.IncrementCompletedJobs(b.ProviderID); err != nil {
		s.logger().Error("failed to increment completed jobs", zap.String("providerId", b.ProviderID), zap.Error(err))
	}

	_ = Transition(b, models.BookingCompleted, "Work completed by provider and verified by customer via completion code", now)
	b.Completion = &completion
	b.CompletionOTP.IsUsed = true
	if req.Notes != "" {
		b.Notes.Provider = req.Notes
	}

	s.notify(notification.EventBookingCompleted, b)
	return b, nil
}
