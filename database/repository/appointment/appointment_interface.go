package appointmentRepo

import (
	"context"
	"errors"

	"vetassist/models"
)

// ErrAppointmentNotFound is returned when no appointment has the requested id.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ListFilter narrows an appointment listing. Zero values match everything.
type ListFilter struct {
	Status models.AppointmentStatus
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) (string, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListBySession returns a session's appointments, newest created first.
	ListBySession(ctx context.Context, sessionID string) ([]models.Appointment, error)
	// RecentBySession returns up to limit appointments, latest preferred time first.
	RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.Appointment, error)
	// List returns one page of appointments and the total matching filter.
	List(ctx context.Context, filter ListFilter, page, limit int64) ([]models.Appointment, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
	EnsureIndexes(ctx context.Context) error
}
