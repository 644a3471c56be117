package notification

import (
	"context"

	"handyhub/models"
)

// Booking event types dispatched to the parties of a booking.
const (
	EventBookingCreated     = "booking_created"
	EventBookingAccepted    = "booking_accepted"
	EventBookingRejected    = "booking_rejected"
	EventBookingCancelled   = "booking_cancelled"
	EventBookingCompleted   = "booking_completed"
	EventBookingRescheduled = "booking_rescheduled"
	EventPaymentReceived    = "payment_received"
)

// NotificationService defines methods for sending FCM pushes. Delivery is
// best effort: failures are logged by callers and never roll back the
// booking mutation that triggered them.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	SendProviderPushNotification(ctx context.Context, providerID, title, body string, data map[string]string) error
	// NotifyBookingEvent pushes the event to the interested party (or both).
	NotifyBookingEvent(ctx context.Context, event string, b *models.Booking) error
}
