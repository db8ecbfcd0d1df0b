package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vetassist/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAppointmentReminder = "appointment:reminder"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.AppointmentID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// Enqueuer is the subset of *asynq.Client used to queue tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues an appointment reminder Lead before the visit.
type ReminderScheduler struct {
	Queue  Enqueuer
	Lead   time.Duration
	Now    func() time.Time
	Logger *zap.Logger
}

func NewReminderScheduler(queue Enqueuer, lead time.Duration, logger *zap.Logger) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderScheduler{Queue: queue, Lead: lead, Now: time.Now, Logger: logger}
}

// ScheduleReminder enqueues the reminder, or does nothing when its fire time has passed.
func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	fireAt := appt.PreferredDateTime.Add(-s.Lead)
	if !fireAt.After(s.Now()) {
		s.Logger.Debug("reminder time already passed, not scheduling",
			zap.String("appointmentId", appt.ID), zap.Time("fireAt", fireAt))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		AppointmentID:     appt.ID,
		SessionID:         appt.SessionID,
		OwnerName:         appt.OwnerName,
		PetName:           appt.PetName,
		PhoneNumber:       appt.PhoneNumber,
		PreferredDateTime: appt.PreferredDateTime,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", appt.ID, err)
	}
	s.Logger.Info("appointment reminder scheduled",
		zap.String("appointmentId", appt.ID), zap.String("taskId", info.ID), zap.Time("fireAt", fireAt))
	return nil
}
