package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetassist/models"

	"go.uber.org/zap"
)

// StateStore persists a session's booking state, failing if the session's
// version no longer matches expectedVersion.
type StateStore interface {
	SaveBookingState(ctx context.Context, sessionID string, expectedVersion int64, state models.BookingState) error
}

// AppointmentCreator stores a new appointment and returns its identifier.
type AppointmentCreator interface {
	Create(ctx context.Context, appt *models.Appointment) (string, error)
}

// ReminderScheduler queues a reminder for a freshly created appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}

// Result is the outcome of feeding one user message to the booking dialogue.
type Result struct {
	Reply              string
	AppointmentCreated bool
	AppointmentID      string
	Cancelled          bool
}

// Machine drives the idle → ownerName → petName → phone → dateTime → confirm dialogue.
type Machine struct {
	States       StateStore
	Appointments AppointmentCreator
	Reminders    ReminderScheduler // optional
	Parser       *DateTimeParser
	// IdleTimeout expires a booking left untouched for longer; zero disables expiry.
	IdleTimeout time.Duration
	Now         func() time.Time
	Logger      *zap.Logger
}

// NewMachine wires a Machine with the wall clock.
func NewMachine(states StateStore, appts AppointmentCreator, parser *DateTimeParser, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		States:       states,
		Appointments: appts,
		Parser:       parser,
		Now:          time.Now,
		Logger:       logger,
	}
}

func (m *Machine) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *Machine) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

// InProgress reports whether session has an active booking dialogue.
func InProgress(session *models.Session) bool {
	return session.BookingState.InProgress
}

// Expired reports whether an active booking has sat untouched past IdleTimeout.
func (m *Machine) Expired(state models.BookingState) bool {
	if !state.InProgress || m.IdleTimeout <= 0 || state.UpdatedAt.IsZero() {
		return false
	}
	return m.now().Sub(state.UpdatedAt) > m.IdleTimeout
}

// Reset returns the session's booking dialogue to idle, discarding collected data.
func (m *Machine) Reset(ctx context.Context, session *models.Session) error {
	return m.save(ctx, session, models.IdleBookingState())
}

// Advance performs at most one transition for session given the user's text.
// Invalid answers re-prompt without touching state; only store failures are returned as errors.
func (m *Machine) Advance(ctx context.Context, session *models.Session, text string) (*Result, error) {
	state := session.BookingState
	if state.Step == "" {
		state = models.IdleBookingState()
	}

	// The message that opened the dialogue is never an answer.
	if !state.InProgress {
		next := models.BookingState{InProgress: true, Step: models.StepOwnerName}
		if err := m.save(ctx, session, next); err != nil {
			return nil, err
		}
		m.logger().Info("booking started", zap.String("sessionId", session.SessionID))
		return &Result{Reply: promptOwnerName}, nil
	}

	answer := strings.TrimSpace(text)

	switch state.Step {
	case models.StepOwnerName:
		if !ValidOwnerName(answer) {
			return &Result{Reply: msgInvalidOwnerName}, nil
		}
		next := state
		next.CollectedData.OwnerName = &answer
		next.Step = models.StepPetName
		if err := m.save(ctx, session, next); err != nil {
			return nil, err
		}
		return &Result{Reply: promptPetName}, nil

	case models.StepPetName:
		if !ValidPetName(answer) {
			return &Result{Reply: msgInvalidPetName}, nil
		}
		next := state
		next.CollectedData.PetName = &answer
		next.Step = models.StepPhone
		if err := m.save(ctx, session, next); err != nil {
			return nil, err
		}
		return &Result{Reply: promptPhone}, nil

	case models.StepPhone:
		if !ValidPhone(answer) {
			return &Result{Reply: msgInvalidPhone}, nil
		}
		next := state
		next.CollectedData.PhoneNumber = &answer
		next.Step = models.StepDateTime
		if err := m.save(ctx, session, next); err != nil {
			return nil, err
		}
		return &Result{Reply: promptDateTime}, nil

	case models.StepDateTime:
		at, err := m.preferredTime(answer)
		if err != nil {
			var parseErr *ParseError
			switch {
			case errors.As(err, &parseErr):
				return &Result{Reply: msgUnparsableDate}, nil
			case errors.Is(err, ErrDateInPast):
				return &Result{Reply: msgDateInPast}, nil
			}
			return nil, err
		}
		iso := at.Format(time.RFC3339)
		next := state
		next.CollectedData.PreferredDateTime = &iso
		next.Step = models.StepConfirm
		if err := m.save(ctx, session, next); err != nil {
			return nil, err
		}
		return &Result{Reply: summaryMessage(next.CollectedData, at)}, nil

	case models.StepConfirm:
		switch strings.ToLower(answer) {
		case "confirm", "yes":
			return m.book(ctx, session, state)
		case "cancel", "no":
			if err := m.save(ctx, session, models.IdleBookingState()); err != nil {
				return nil, err
			}
			m.logger().Info("booking cancelled", zap.String("sessionId", session.SessionID))
			return &Result{Reply: msgCancelled, Cancelled: true}, nil
		default:
			return &Result{Reply: msgConfirmOrCancel}, nil
		}
	}

	m.logger().Warn("booking state had unknown step, resetting",
		zap.String("sessionId", session.SessionID), zap.String("step", string(state.Step)))
	if err := m.save(ctx, session, models.IdleBookingState()); err != nil {
		return nil, err
	}
	return &Result{Reply: msgUnknownStep}, nil
}

// preferredTime parses answer and rejects instants before now.
func (m *Machine) preferredTime(answer string) (time.Time, error) {
	at, err := m.Parser.Parse(answer)
	if err != nil {
		return time.Time{}, err
	}
	if at.Before(m.now()) {
		return time.Time{}, ErrDateInPast
	}
	return at, nil
}

func (m *Machine) book(ctx context.Context, session *models.Session, state models.BookingState) (*Result, error) {
	// Snapshot before the reset below clears the collected fields.
	data := state.CollectedData
	if data.OwnerName == nil || data.PetName == nil || data.PhoneNumber == nil || data.PreferredDateTime == nil {
		m.logger().Warn("confirm step reached with incomplete data, resetting", zap.String("sessionId", session.SessionID))
		if err := m.save(ctx, session, models.IdleBookingState()); err != nil {
			return nil, err
		}
		return &Result{Reply: msgUnknownStep}, nil
	}
	at, err := time.Parse(time.RFC3339, *data.PreferredDateTime)
	if err != nil {
		return nil, fmt.Errorf("booking: stored preferred time %q: %w", *data.PreferredDateTime, err)
	}
	if m.Parser != nil && m.Parser.Location != nil {
		at = at.In(m.Parser.Location)
	}

	appt := models.Appointment{
		SessionID:         session.SessionID,
		OwnerName:         *data.OwnerName,
		PetName:           *data.PetName,
		PhoneNumber:       *data.PhoneNumber,
		PreferredDateTime: at,
		Status:            models.StatusPending,
	}
	id, err := m.Appointments.Create(ctx, &appt)
	if err != nil {
		return nil, fmt.Errorf("booking: create appointment: %w", err)
	}
	appt.ID = id

	if err := m.save(ctx, session, models.IdleBookingState()); err != nil {
		return nil, err
	}

	m.logger().Info("appointment booked",
		zap.String("sessionId", session.SessionID), zap.String("appointmentId", id))

	if m.Reminders != nil {
		if err := m.Reminders.ScheduleReminder(ctx, appt); err != nil {
			m.logger().Warn("failed to schedule appointment reminder",
				zap.String("appointmentId", id), zap.Error(err))
		}
	}

	return &Result{
		Reply:              bookedMessage(id, data, at),
		AppointmentCreated: true,
		AppointmentID:      id,
	}, nil
}

// save persists next and, on success, applies it to the in-memory session.
func (m *Machine) save(ctx context.Context, session *models.Session, next models.BookingState) error {
	next.UpdatedAt = m.now()
	if err := m.States.SaveBookingState(ctx, session.SessionID, session.Version, next); err != nil {
		return fmt.Errorf("booking: save state: %w", err)
	}
	session.BookingState = next
	session.Version++
	return nil
}
