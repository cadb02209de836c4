package notificationRepo

import (
	"context"
	"testing"
	"time"

	"carrental/database"
	"carrental/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func TestMongoNotificationRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := &MongoNotificationRepo{coll: mt.Coll, logger: zap.NewNop()}
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(t, repo.ensureIndexes())

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 85, Message: "index options conflict"}))
		assert.ErrorContains(t, repo.ensureIndexes(), "failed to create indexes")
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := &MongoNotificationRepo{coll: mt.Coll, logger: zap.NewNop()}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "carrental.notifications", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "n-1"},
			{Key: "userId", Value: "u-1"},
			{Key: "title", Value: "Booking approved"},
			{Key: "message", Value: "See you soon"},
		}))

		n, err := repo.GetByID(context.Background(), "n-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", n.UserID)
		assert.Equal(t, "Booking approved", n.Title)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := &MongoNotificationRepo{coll: mt.Coll, logger: zap.NewNop()}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "carrental.notifications", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	mt.Run("save delivery results", func(mt *mtest.T) {
		repo := &MongoNotificationRepo{coll: mt.Coll, logger: zap.NewNop()}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.SaveDeliveryResults(context.Background(), "n-1", true, time.Now(), &models.DeliveryResults{})
		assert.NoError(t, err)
	})

	mt.Run("save delivery results unknown id", func(mt *mtest.T) {
		repo := &MongoNotificationRepo{coll: mt.Coll, logger: zap.NewNop()}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.SaveDeliveryResults(context.Background(), "nope", true, time.Now(), &models.DeliveryResults{})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}
