package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"handyhub/config"
	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"
	"handyhub/services/notification"
	"handyhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// reminderLead is how long before the scheduled time the reminder fires.
const reminderLead = time.Hour

func reminderQueueOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues booking reminders onto the asynq queue.
type ReminderScheduler struct {
	Client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{Client: asynq.NewClient(reminderQueueOpts())}
}

// ScheduleReminder queues pushes for one hour before the booking's
// scheduled time. Bookings starting sooner than that get no reminder.
func (s *ReminderScheduler) ScheduleReminder(b *models.Booking) error {
	fireAt := b.ScheduledDateTime.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		BookingID:         b.ID,
		UserID:            b.UserID,
		ProviderID:        b.ProviderID,
		Service:           b.Service.Subcategory,
		ScheduledDateTime: b.ScheduledDateTime.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	// The task ID dedupes re-accepts of the same booking.
	_, err = s.Client.Enqueue(task,
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:"+b.ID),
		asynq.MaxRetry(3),
	)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("enqueue reminder for booking %s: %w", b.ID, err)
	}
	return nil
}

// InitReminderWorker runs the asynq worker in the background, retrying
// startup a few times before giving up.
func InitReminderWorker(bookings bookingRepo.BookingRepository, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		reminderQueueOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(bookings, notifSvc))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted startup attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(bookings bookingRepo.BookingRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		// A cancellation after scheduling leaves a stale task behind; drop it.
		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			return err
		}
		if b == nil || (b.Status != models.BookingAccepted && b.Status != models.BookingInProgress) {
			logger.Debug("skipping reminder for inactive booking", zap.String("bookingId", p.BookingID))
			return nil
		}

		data := map[string]string{
			"bookingId":         p.BookingID,
			"scheduledDateTime": p.ScheduledDateTime,
			"type":              "booking_reminder",
		}
		title := "Upcoming booking"
		userBody := fmt.Sprintf("Your %s booking is scheduled for %s", p.Service, p.ScheduledDateTime)
		providerBody := fmt.Sprintf("You have a %s job scheduled for %s", p.Service, p.ScheduledDateTime)

		if err := notifSvc.SendUserPushNotification(ctx, p.UserID, title, userBody, data); err != nil {
			logger.Warn("failed to send user reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
		}
		if err := notifSvc.SendProviderPushNotification(ctx, p.ProviderID, title, providerBody, data); err != nil {
			logger.Warn("failed to send provider reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
		}
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to surface
// connectivity loss at runtime.
func monitorRedisConnection() {
	opts := reminderQueueOpts()
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx := context.Background()
	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("reminder queue redis connection lost", zap.Error(err))
		}
		time.Sleep(30 * time.Second)
	}
}
