package appointment

import (
	"context"
	"testing"

	appointmentRepo "vetassist/database/repository/appointment"
	"vetassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	appointmentRepo.AppointmentRepository

	appts      map[string]*models.Appointment
	total      int64
	lastFilter appointmentRepo.ListFilter
	lastPage   int64
	lastLimit  int64
}

func (f *fakeRepo) List(_ context.Context, filter appointmentRepo.ListFilter, page, limit int64) ([]models.Appointment, int64, error) {
	f.lastFilter, f.lastPage, f.lastLimit = filter, page, limit
	return []models.Appointment{}, f.total, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return appt, nil
}

func TestList(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		page       int64
		limit      int64
		total      int64
		wantPage   int64
		wantLimit  int64
		wantPages  int64
		wantStatus models.AppointmentStatus
	}{
		{"defaults", "", 0, 0, 25, 1, 10, 3, ""},
		{"explicit page", "pending", 2, 5, 11, 2, 5, 3, models.StatusPending},
		{"limit capped", "", 1, 500, 250, 1, 100, 3, ""},
		{"empty", "cancelled", 1, 10, 0, 1, 10, 0, models.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{total: tt.total}
			res, err := NewService(repo, nil).List(context.Background(), tt.status, tt.page, tt.limit)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, repo.lastPage)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
			assert.Equal(t, tt.wantStatus, repo.lastFilter.Status)
			assert.Equal(t, models.Pagination{Page: tt.wantPage, Limit: tt.wantLimit, Total: tt.total, TotalPages: tt.wantPages}, res.Pagination)
			assert.NotNil(t, res.Appointments)
		})
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	_, err := NewService(&fakeRepo{}, nil).List(context.Background(), "done", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{appts: map[string]*models.Appointment{"a1": {ID: "a1", Status: models.StatusPending}}}
	svc := NewService(repo, nil)

	appt, err := svc.UpdateStatus(context.Background(), "a1", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)

	_, err = svc.UpdateStatus(context.Background(), "a1", "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "missing", models.StatusCancelled)
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)
}
