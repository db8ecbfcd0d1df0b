package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetassist/models"
	"vetassist/services/booking"
	ai "vetassist/services/intelligence"
	"vetassist/services/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer trace.Tracer = otel.Tracer("vetassist/chat")

// ErrMissingFields is returned when a message arrives without a session id or text.
var ErrMissingFields = errors.New("sessionId and message are required")

// SessionStore is the session persistence the router needs.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	AppendMessages(ctx context.Context, sessionID string, msgs ...models.Message) error
}

// AppointmentFinder looks up a session's appointments for the model context.
type AppointmentFinder interface {
	RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.Appointment, error)
}

// Service routes chat messages between the booking dialogue and the generative model.
type Service struct {
	Sessions     SessionStore
	Appointments AppointmentFinder
	Booking      *booking.Machine
	Generator    ai.Generator
	Lock         SessionLock
	Metrics      *metrics.ChatMetrics
	Location     *time.Location
	Now          func() time.Time
	NewID        func() string
	Logger       *zap.Logger
}

func NewService(
	sessions SessionStore,
	appts AppointmentFinder,
	machine *booking.Machine,
	gen ai.Generator,
	lock SessionLock,
	m *metrics.ChatMetrics,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lock == nil {
		lock = NoopSessionLock{}
	}
	return &Service{
		Sessions:     sessions,
		Appointments: appts,
		Booking:      machine,
		Generator:    gen,
		Lock:         lock,
		Metrics:      m,
		Location:     time.Local,
		Now:          time.Now,
		NewID:        func() string { return uuid.New().String() },
		Logger:       logger,
	}
}

func welcomeMessage(userName string) string {
	greeting := "Hello!"
	if userName != "" {
		greeting = fmt.Sprintf("Hello %s!", userName)
	}
	return greeting + " 🐾 I'm your veterinary assistant. I can help you with pet health questions or book an appointment. How can I assist you today?"
}

// CreateSession stores a new idle session opened by the welcome message.
func (s *Service) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.CreateSessionResponse, error) {
	now := s.Now()
	welcome := welcomeMessage(req.UserName)

	session := &models.Session{
		SessionID:    s.NewID(),
		UserID:       req.UserID,
		UserName:     req.UserName,
		PetName:      req.PetName,
		Source:       req.Source,
		BookingState: models.IdleBookingState(),
		Messages: []models.Message{{
			Role:      models.RoleAssistant,
			Content:   welcome,
			Timestamp: now,
		}},
		CreatedAt: now,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.Logger.Info("chat session created",
		zap.String("sessionId", session.SessionID), zap.String("source", req.Source))
	return &models.CreateSessionResponse{SessionID: session.SessionID, WelcomeMessage: welcome}, nil
}

// SendMessage handles one user message and returns the assistant's reply.
func (s *Service) SendMessage(ctx context.Context, sessionID, message string) (*models.SendMessageResponse, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(message) == "" {
		return nil, ErrMissingFields
	}

	ctx, span := tracer.Start(ctx, "chat.send_message")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sessionID))

	release, err := s.Lock.Acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	receivedAt := s.Now()
	reply, route, err := s.route(ctx, sessionID, message)
	if err != nil {
		s.Metrics.ObserveMessage(metrics.RouteError)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("chat.route", route))
	s.Metrics.ObserveMessage(route)

	repliedAt := s.Now()
	err = s.Sessions.AppendMessages(ctx, sessionID,
		models.Message{Role: models.RoleUser, Content: message, Timestamp: receivedAt},
		models.Message{Role: models.RoleAssistant, Content: reply, Timestamp: repliedAt},
	)
	if err != nil {
		return nil, err
	}

	return &models.SendMessageResponse{Response: reply, Timestamp: repliedAt}, nil
}

func (s *Service) route(ctx context.Context, sessionID, message string) (string, string, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	if s.Booking.Expired(session.BookingState) {
		s.Logger.Info("booking idle too long, resetting",
			zap.String("sessionId", sessionID), zap.String("step", string(session.BookingState.Step)))
		if err := s.Booking.Reset(ctx, session); err != nil {
			return "", "", err
		}
	}

	if booking.InProgress(session) || booking.IsBookingIntent(message) {
		res, err := s.Booking.Advance(ctx, session, message)
		if err != nil {
			return "", "", err
		}
		switch {
		case res.AppointmentCreated:
			s.Metrics.ObserveBooking(metrics.OutcomeCreated)
		case res.Cancelled:
			s.Metrics.ObserveBooking(metrics.OutcomeCancelled)
		}
		return res.Reply, metrics.RouteBooking, nil
	}

	appts, err := s.Appointments.RecentBySession(ctx, sessionID, maxContextAppointments)
	if err != nil {
		s.Logger.Warn("could not load appointments for context", zap.String("sessionId", sessionID), zap.Error(err))
		appts = nil
	}

	started := s.Now()
	reply, err := s.Generator.Generate(ctx, enrichMessage(message, appts, s.Location), models.TurnsFromMessages(session.Messages))
	s.Metrics.ObserveGenerationLatency(s.Now().Sub(started).Seconds())
	if err != nil {
		s.Logger.Error("generation failed", zap.String("sessionId", sessionID), zap.Error(err))
		if !errors.Is(err, ai.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %v", ai.ErrGenerationFailed, err)
		}
		return "", "", err
	}
	return reply, metrics.RouteAI, nil
}

// GetHistory returns the session's full message log.
func (s *Service) GetHistory(ctx context.Context, sessionID string) (*models.HistoryResponse, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	msgs := session.Messages
	if msgs == nil {
		msgs = []models.Message{}
	}
	return &models.HistoryResponse{SessionID: session.SessionID, Messages: msgs, CreatedAt: session.CreatedAt}, nil
}
