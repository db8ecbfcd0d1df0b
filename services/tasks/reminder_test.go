package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vetassist/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

var now = time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)

func newScheduler(q Enqueuer) *ReminderScheduler {
	s := NewReminderScheduler(q, 24*time.Hour, nil)
	s.Now = func() time.Time { return now }
	return s
}

func TestScheduleReminder(t *testing.T) {
	q := &fakeQueue{}
	appt := models.Appointment{
		ID:                "appt-1",
		SessionID:         "s1",
		OwnerName:         "Jane Doe",
		PetName:           "Rex",
		PhoneNumber:       "555-123-4567",
		PreferredDateTime: time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC),
	}

	require.NoError(t, newScheduler(q).ScheduleReminder(context.Background(), appt))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeAppointmentReminder, q.tasks[0].Type())

	var payload models.ReminderPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &payload))
	assert.Equal(t, "appt-1", payload.AppointmentID)
	assert.Equal(t, "Rex", payload.PetName)
	assert.True(t, appt.PreferredDateTime.Equal(payload.PreferredDateTime))
}

func TestScheduleReminderSkipsPastFireTime(t *testing.T) {
	q := &fakeQueue{}
	// Less than a day away, so the reminder instant is already behind us.
	appt := models.Appointment{ID: "appt-1", PreferredDateTime: now.Add(3 * time.Hour)}

	require.NoError(t, newScheduler(q).ScheduleReminder(context.Background(), appt))
	assert.Empty(t, q.tasks)
}

func TestScheduleReminderEnqueueError(t *testing.T) {
	q := &fakeQueue{err: errors.New("redis down")}
	appt := models.Appointment{ID: "appt-1", PreferredDateTime: now.AddDate(0, 0, 5)}

	err := newScheduler(q).ScheduleReminder(context.Background(), appt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appt-1")
}
