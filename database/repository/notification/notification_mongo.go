package notificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/database"
	"carrental/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	collectionName = "notifications"
	opTimeout      = 5 * time.Second
	indexTimeout   = 10 * time.Second
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoNotificationRepo creates a new instance of NotificationRepository using MongoDB.
func NewMongoNotificationRepo(logger *zap.Logger) NotificationRepository {
	repo := &MongoNotificationRepo{coll: database.Collection(collectionName), logger: logger}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("notification indexes not created", zap.Error(err))
	}
	return repo
}

// newContext bounds a repository call by timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new notification document.
func (r *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByID retrieves a notification by its ID.
func (r *MongoNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	var n models.Notification
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification with id %s: %w", id, err)
	}
	return &n, nil
}

// SaveDeliveryResults writes processed, processedAt and deliveryResults onto the record.
func (r *MongoNotificationRepo) SaveDeliveryResults(ctx context.Context, id string, processed bool, at time.Time, results *models.DeliveryResults) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"processed":       processed,
		"processedAt":     at,
		"deliveryResults": results,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to save delivery results for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// insertEvent is the subset of a change event the watcher needs.
type insertEvent struct {
	FullDocument struct {
		ID string `bson:"id"`
	} `bson:"fullDocument"`
}

// WatchInserts opens a change stream on the collection. It requires a replica set.
func (r *MongoNotificationRepo) WatchInserts(ctx context.Context, onInsert func(id string)) error {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "operationType", Value: "insert"}}}},
	}
	stream, err := r.coll.Watch(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to open notification change stream: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var event insertEvent
		if err := stream.Decode(&event); err != nil {
			r.logger.Warn("undecodable notification change event", zap.Error(err))
			continue
		}
		if event.FullDocument.ID == "" {
			continue
		}
		onInsert(event.FullDocument.ID)
	}
	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("notification change stream: %w", err)
	}
	return nil
}
