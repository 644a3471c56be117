package notification

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"handyhub/config"
	providerRepo "handyhub/database/repository/provider"
	userRepo "handyhub/database/repository/user"
	"handyhub/models"
)

// FCMClient is the global Firebase messaging client.
var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase app and messaging client.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}

// DefaultNotificationService is the FCM-backed implementation.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s has no FCM token", userID)
	}
	return s.send(ctx, u.FCMToken, title, body, data)
}

// SendProviderPushNotification looks up a provider's FCM token and sends a push.
func (s *DefaultNotificationService) SendProviderPushNotification(
	ctx context.Context,
	providerID, title, body string,
	data map[string]string,
) error {
	p, err := s.Providers.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("SendProviderPushNotification: could not find provider %s: %w", providerID, err)
	}
	if p == nil || p.FCMToken == "" {
		return fmt.Errorf("SendProviderPushNotification: provider %s has no FCM token", providerID)
	}
	return s.send(ctx, p.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if _, err := FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyBookingEvent pushes a booking event to the interested party.
func (s *DefaultNotificationService) NotifyBookingEvent(ctx context.Context, event string, b *models.Booking) error {
	data := map[string]string{
		"bookingId": b.ID,
		"event":     event,
	}

	title, body, toUser, toProvider := renderBookingEvent(event, b)

	var firstErr error
	if toUser {
		if err := s.SendUserPushNotification(ctx, b.UserID, title, body, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if toProvider {
		if err := s.SendProviderPushNotification(ctx, b.ProviderID, title, body, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func renderBookingEvent(event string, b *models.Booking) (title, body string, toUser, toProvider bool) {
	svc := b.Service.Subcategory
	switch event {
	case EventBookingCreated:
		return "New booking request", fmt.Sprintf("You have a new %s request", svc), false, true
	case EventBookingAccepted:
		return "Booking accepted", fmt.Sprintf("Your %s booking was accepted", svc), true, false
	case EventBookingRejected:
		return "Booking rejected", fmt.Sprintf("Your %s booking was rejected", svc), true, false
	case EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("The %s booking was cancelled", svc), true, true
	case EventBookingCompleted:
		return "Booking completed", fmt.Sprintf("The %s booking was completed", svc), true, true
	case EventBookingRescheduled:
		return "Booking rescheduled", fmt.Sprintf("The %s booking was moved to %s", svc, b.ScheduledDateTime.Format("Jan 2 15:04")), true, true
	case EventPaymentReceived:
		return "Payment received", fmt.Sprintf("Payment received for the %s booking", svc), false, true
	default:
		return "Booking update", fmt.Sprintf("Update on your %s booking", svc), true, true
	}
}
