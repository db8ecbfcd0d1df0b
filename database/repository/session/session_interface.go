package sessionRepo

import (
	"context"
	"errors"

	"vetassist/models"
)

var (
	// ErrSessionNotFound is returned when no session has the requested sessionId.
	ErrSessionNotFound = errors.New("session not found")
	// ErrVersionConflict is returned when a session was modified since it was read.
	ErrVersionConflict = errors.New("session was modified concurrently")
)

// SessionRepository defines methods for chat session data access.
type SessionRepository interface {
	// Create inserts a new session document.
	Create(ctx context.Context, session *models.Session) error
	// GetByID retrieves a session by its sessionId.
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	// SaveBookingState replaces the booking state if the stored version still
	// equals expectedVersion, and bumps the version.
	SaveBookingState(ctx context.Context, sessionID string, expectedVersion int64, state models.BookingState) error
	// AppendMessages pushes msgs onto the end of the session's message log.
	AppendMessages(ctx context.Context, sessionID string, msgs ...models.Message) error
	// EnsureIndexes creates the indexes the queries above rely on.
	EnsureIndexes(ctx context.Context) error
}
