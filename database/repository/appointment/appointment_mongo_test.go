package appointmentRepo

import (
	"context"
	"testing"
	"time"

	"vetassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var fixed = time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func newRepo(mt *mtest.T) *mongoAppointmentRepo {
	repo := newMongoAppointmentRepo(mt.Coll)
	repo.now = func() time.Time { return fixed }
	repo.newID = func() string { return "appt-1" }
	return repo
}

func appointmentDoc(id, sessionID, status string, preferred time.Time) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "sessionId", Value: sessionID},
		{Key: "ownerName", Value: "Jane Doe"},
		{Key: "petName", Value: "Rex"},
		{Key: "phoneNumber", Value: "555-123-4567"},
		{Key: "preferredDateTime", Value: preferred},
		{Key: "status", Value: status},
		{Key: "createdAt", Value: fixed},
	}
}

func TestMongoAppointmentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	preferred := time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)

	mt.Run("create assigns id, status and timestamps", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		appt := &models.Appointment{SessionID: "s1", OwnerName: "Jane Doe", PreferredDateTime: preferred}
		id, err := repo.Create(ctx, appt)
		require.NoError(mt, err)
		assert.Equal(mt, "appt-1", id)
		assert.Equal(mt, "appt-1", appt.ID)
		assert.Equal(mt, models.StatusPending, appt.Status)
		assert.Equal(mt, fixed, appt.CreatedAt)
		assert.Equal(mt, fixed, appt.UpdatedAt)
	})

	mt.Run("create failure", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := repo.Create(ctx, &models.Appointment{SessionID: "s1"})
		require.Error(mt, err)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			appointmentDoc("appt-1", "s1", "confirmed", preferred)))

		appt, err := repo.GetByID(ctx, "appt-1")
		require.NoError(mt, err)
		assert.Equal(mt, "Rex", appt.PetName)
		assert.Equal(mt, models.StatusConfirmed, appt.Status)
		assert.True(mt, preferred.Equal(appt.PreferredDateTime))
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(mt, err, ErrAppointmentNotFound)
	})

	mt.Run("list by session", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			appointmentDoc("appt-2", "s1", "pending", preferred.AddDate(0, 0, 1)),
			appointmentDoc("appt-1", "s1", "pending", preferred),
		))

		appts, err := repo.ListBySession(ctx, "s1")
		require.NoError(mt, err)
		require.Len(mt, appts, 2)
		assert.Equal(mt, "appt-2", appts[0].ID)
	})

	mt.Run("list by session empty is not nil", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		appts, err := repo.ListBySession(ctx, "s1")
		require.NoError(mt, err)
		assert.NotNil(mt, appts)
		assert.Empty(mt, appts)
	})

	mt.Run("recent by session", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			appointmentDoc("appt-1", "s1", "pending", preferred),
		))

		appts, err := repo.RecentBySession(ctx, "s1", 10)
		require.NoError(mt, err)
		assert.Len(mt, appts, 1)
	})

	mt.Run("list with total", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(12)}}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
				appointmentDoc("appt-3", "s2", "pending", preferred),
				appointmentDoc("appt-4", "s3", "pending", preferred),
			),
		)

		appts, total, err := repo.List(ctx, ListFilter{Status: models.StatusPending}, 2, 10)
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), total)
		assert.Len(mt, appts, 2)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: appointmentDoc("appt-1", "s1", "cancelled", preferred)},
		))

		appt, err := repo.UpdateStatus(ctx, "appt-1", models.StatusCancelled)
		require.NoError(mt, err)
		assert.Equal(mt, models.StatusCancelled, appt.Status)
	})

	mt.Run("update status not found", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "lastErrorObject", Value: bson.D{{Key: "n", Value: 0}}},
		))

		_, err := repo.UpdateStatus(ctx, "nope", models.StatusConfirmed)
		assert.ErrorIs(mt, err, ErrAppointmentNotFound)
	})
}
