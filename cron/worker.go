package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vetassist/config"
	appointmentRepo "vetassist/database/repository/appointment"
	"vetassist/models"
	"vetassist/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AppointmentGetter loads the current state of an appointment.
type AppointmentGetter interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}

// QueueRedisOpt returns the asynq connection for the reminder queue database.
func QueueRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// InitReminderWorker starts the reminder worker in the background. Callers
// stop it with Shutdown on the returned server.
func InitReminderWorker(cfg *config.Config, appts AppointmentGetter, logger *zap.Logger) *asynq.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := asynq.NewServer(
		QueueRedisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, handleReminderTask(appts, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("reminder worker gave up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReminderTask(appts AppointmentGetter, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		appt, err := appts.GetByID(ctx, p.AppointmentID)
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			logger.Warn("reminder for unknown appointment dropped", zap.String("appointmentId", p.AppointmentID))
			return nil
		}
		if err != nil {
			return err
		}
		if appt.Status == models.StatusCancelled {
			logger.Info("appointment cancelled, skipping reminder", zap.String("appointmentId", appt.ID))
			return nil
		}

		logger.Info("appointment reminder",
			zap.String("appointmentId", appt.ID),
			zap.String("sessionId", appt.SessionID),
			zap.String("ownerName", appt.OwnerName),
			zap.String("petName", appt.PetName),
			zap.String("phoneNumber", appt.PhoneNumber),
			zap.Time("preferredDateTime", appt.PreferredDateTime),
		)
		return nil
	}
}
