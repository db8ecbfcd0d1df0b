package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "sessions"

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoSessionRepo returns a SessionRepository backed by db's sessions collection.
func NewMongoSessionRepo(db *mongo.Database) *MongoSessionRepo {
	return newMongoSessionRepo(db.Collection(collectionName))
}

func newMongoSessionRepo(coll *mongo.Collection) *MongoSessionRepo {
	return &MongoSessionRepo{coll: coll, now: time.Now}
}

// EnsureIndexes creates a unique index on sessionId.
func (r *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	now := r.now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	if session.Messages == nil {
		session.Messages = []models.Message{}
	}

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session %s: %w", session.SessionID, err)
	}
	return nil
}

// GetByID retrieves a session by its sessionId.
func (r *MongoSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}
	return &session, nil
}

// SaveBookingState writes state with an optimistic version check.
func (r *MongoSessionRepo) SaveBookingState(ctx context.Context, sessionID string, expectedVersion int64, state models.BookingState) error {
	filter := bson.M{"sessionId": sessionID, "version": expectedVersion}
	if expectedVersion == 0 {
		// Documents written before versioning carry no version field.
		filter = bson.M{
			"sessionId": sessionID,
			"$or": bson.A{
				bson.M{"version": 0},
				bson.M{"version": bson.M{"$exists": false}},
			},
		}
	}
	update := bson.M{
		"$set": bson.M{"bookingState": state, "updatedAt": r.now()},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to save booking state for session %s: %w", sessionID, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return fmt.Errorf("failed to check session %s: %w", sessionID, err)
	}
	if count == 0 {
		return ErrSessionNotFound
	}
	return ErrVersionConflict
}

// AppendMessages pushes msgs in order onto the session's message log.
func (r *MongoSessionRepo) AppendMessages(ctx context.Context, sessionID string, msgs ...models.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": msgs}},
		"$set":  bson.M{"updatedAt": r.now()},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"sessionId": sessionID}, update)
	if err != nil {
		return fmt.Errorf("failed to append messages to session %s: %w", sessionID, err)
	}
	if result.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
