package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"
	"handyhub/services/booking"
	"handyhub/services/notification"
	"handyhub/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const currency = "inr"

// DefaultPaymentService is the production implementation of PaymentService.
type DefaultPaymentService struct {
	Repo     bookingRepo.BookingRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPaymentService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultPaymentService) getBooking(id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		s.logger().Error("failed to load booking", zap.String("bookingId", id), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	if b == nil {
		return nil, booking.ErrNotFound("booking not found")
	}
	return b, nil
}

// smallestUnit converts a rupee amount to paise for the gateway.
func smallestUnit(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePaymentIntent opens a gateway payment for an accepted booking. Only
// the booking's user may pay.
func (s *DefaultPaymentService) CreatePaymentIntent(actor booking.Actor, bookingID string) (*PaymentIntentResult, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != booking.RoleUser || actor.ID != b.UserID {
		return nil, booking.ErrUnauthorized("not authorized to pay for this booking")
	}
	if b.Status != models.BookingAccepted {
		return nil, booking.ErrInvalidStateTransition("only accepted bookings can proceed to payment")
	}
	if b.PaymentStatus == models.PaymentPaid || b.PaymentStatus == models.PaymentRefunded {
		return nil, booking.ErrValidation("booking is already paid")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(smallestUnit(b.Pricing.TotalAmount)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("bookingId", b.ID)
	pi, err := paymentintent.New(params)
	if err != nil {
		s.logger().Error("failed to create payment intent", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, booking.ErrInternal()
	}

	return &PaymentIntentResult{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       b.Pricing.TotalAmount,
		Currency:     currency,
	}, nil
}

// ConfirmPayment re-verifies the intent with the gateway, marks the booking
// paid and advances it to in_progress. The status flip is conditional, so a
// double confirmation records the payment exactly once.
func (s *DefaultPaymentService) ConfirmPayment(actor booking.Actor, bookingID, intentID string) (*models.Booking, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != booking.RoleUser || actor.ID != b.UserID {
		return nil, booking.ErrUnauthorized("not authorized to pay for this booking")
	}
	if b.Status != models.BookingAccepted {
		return nil, booking.ErrInvalidStateTransition("only accepted bookings can proceed to payment")
	}

	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		s.logger().Error("failed to retrieve payment intent",
			zap.String("bookingId", b.ID), zap.String("intentId", intentID), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, booking.ErrValidation("payment has not succeeded")
	}
	if pi.Amount != smallestUnit(b.Pricing.TotalAmount) {
		return nil, booking.ErrValidation("payment amount does not match booking total")
	}

	now := s.now()
	ref := models.PaymentRef{IntentID: pi.ID, PaidAt: now}
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		models.BookingAccepted, models.BookingInProgress,
		bson.M{"paymentStatus": models.PaymentPaid, "payment": ref},
		nil,
		models.TimelineEntry{Status: "paid", Timestamp: now, Note: "Payment verified and recorded"},
	)
	if err != nil {
		s.logger().Error("failed to record payment", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	if !matched {
		return nil, booking.ErrInvalidStateTransition("only accepted bookings can proceed to payment")
	}

	b.Status = models.BookingInProgress
	b.PaymentStatus = models.PaymentPaid
	b.Payment = &ref
	b.Timeline = append(b.Timeline, models.TimelineEntry{Status: "paid", Timestamp: now, Note: "Payment verified and recorded"})
	b.UpdatedAt = now

	s.notify(notification.EventPaymentReceived, b)
	return b, nil
}

// IssueRefund pushes the amount recorded at cancellation time back through
// the gateway and marks the payment refunded.
func (s *DefaultPaymentService) IssueRefund(actor booking.Actor, bookingID string) (*RefundResult, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != booking.RoleAdmin && !(actor.Role == booking.RoleUser && actor.ID == b.UserID) {
		return nil, booking.ErrUnauthorized("not authorized to refund this booking")
	}
	if b.PaymentStatus == models.PaymentRefunded && b.Payment != nil && b.Payment.RefundID != "" {
		return &RefundResult{
			RefundID: b.Payment.RefundID,
			Amount:   b.Cancellation.RefundAmount,
			Status:   "already_processed",
		}, nil
	}
	if b.PaymentStatus != models.PaymentPaid {
		return nil, booking.ErrValidation("no eligible payment to refund")
	}
	if b.Payment == nil || b.Payment.IntentID == "" {
		return nil, booking.ErrValidation("payment record not found for booking")
	}
	if b.Cancellation == nil {
		return nil, booking.ErrValidation("refund amount not found in cancellation")
	}
	if b.Cancellation.RefundAmount <= 0 {
		return nil, booking.ErrValidation("booking has no refundable amount")
	}

	r, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(b.Payment.IntentID),
		Amount:        stripe.Int64(smallestUnit(b.Cancellation.RefundAmount)),
	})
	if err != nil {
		s.logger().Error("gateway refund failed",
			zap.String("bookingId", b.ID), zap.String("intentId", b.Payment.IntentID), zap.Error(err))
		return nil, booking.ErrInternal()
	}

	now := s.now()
	note := fmt.Sprintf("Refund of %.2f processed", b.Cancellation.RefundAmount)
	matched, err := s.Repo.UpdateStatusIf(
		b.ID,
		b.Status, b.Status,
		bson.M{"paymentStatus": models.PaymentRefunded, "payment.refundId": r.ID},
		nil,
		models.TimelineEntry{Status: "refunded", Timestamp: now, Note: note},
	)
	if err != nil {
		s.logger().Error("failed to record refund", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, booking.ErrInternal()
	}
	if !matched {
		return nil, booking.ErrInvalidStateTransition("booking changed while processing refund")
	}

	return &RefundResult{RefundID: r.ID, Amount: b.Cancellation.RefundAmount, Status: "processed"}, nil
}

func (s *DefaultPaymentService) notify(event string, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Notifier.NotifyBookingEvent(ctx, event, b); err != nil {
		s.logger().Warn("payment notification failed",
			zap.String("bookingId", b.ID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
