package appointment

import (
	"context"
	"errors"

	appointmentRepo "vetassist/database/repository/appointment"
	"vetassist/models"

	"go.uber.org/zap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ErrInvalidStatus is returned for a status outside pending, confirmed and cancelled.
var ErrInvalidStatus = errors.New("invalid status")

// ListResult is one page of appointments.
type ListResult struct {
	Appointments []models.Appointment `json:"appointments"`
	Pagination   models.Pagination    `json:"pagination"`
}

// Service exposes appointment queries and status changes.
type Service struct {
	repo   appointmentRepo.AppointmentRepository
	logger *zap.Logger
}

func NewService(repo appointmentRepo.AppointmentRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListBySession(ctx context.Context, sessionID string) ([]models.Appointment, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// List returns a page of appointments, optionally filtered by status. Out of
// range page and limit values fall back to the defaults; limit is capped at MaxLimit.
func (s *Service) List(ctx context.Context, status string, page, limit int64) (*ListResult, error) {
	filter := appointmentRepo.ListFilter{}
	if status != "" {
		st := models.AppointmentStatus(status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = st
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	appts, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Appointments: appts,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	appt, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("appointment status updated", zap.String("appointmentId", id), zap.String("status", string(status)))
	return appt, nil
}
