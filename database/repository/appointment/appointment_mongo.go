package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetassist/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "appointments"

type mongoAppointmentRepo struct {
	coll  *mongo.Collection
	now   func() time.Time
	newID func() string
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by db's appointments collection.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return newMongoAppointmentRepo(db.Collection(collectionName))
}

func newMongoAppointmentRepo(coll *mongo.Collection) *mongoAppointmentRepo {
	return &mongoAppointmentRepo{
		coll:  coll,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

func (r *mongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

// Create inserts appt, assigning an id and timestamps, and returns the id.
func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) (string, error) {
	if appt.ID == "" {
		appt.ID = r.newID()
	}
	if appt.Status == "" {
		appt.Status = models.StatusPending
	}
	now := r.now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return "", fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt.ID, nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"sessionId": sessionID}, opts)
}

func (r *mongoAppointmentRepo) RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.Appointment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "preferredDateTime", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"sessionId": sessionID}, opts)
}

func (r *mongoAppointmentRepo) List(ctx context.Context, filter ListFilter, page, limit int64) ([]models.Appointment, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if page < 1 {
		page = 1
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	appts, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

// UpdateStatus sets the status of appointment id and returns the updated document.
func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": r.now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
