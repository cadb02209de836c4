package driverRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/database"
	"carrental/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	collectionName = "drivers"
	opTimeout      = 5 * time.Second
	indexTimeout   = 10 * time.Second
)

// MongoDriverRepo implements DriverRepository on the drivers collection.
type MongoDriverRepo struct {
	coll *mongo.Collection
}

func NewMongoDriverRepo() DriverRepository {
	repo := &MongoDriverRepo{coll: database.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("driver indexes not created", zap.Error(err))
	}
	return repo
}

// newContext bounds a repository call by timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes makes the driver id unique so concurrent upserts cannot duplicate a driver.
func (r *MongoDriverRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// UpsertLocation replaces drivers/{id}.currentLocation.
func (r *MongoDriverRepo) UpsertLocation(ctx context.Context, driverID string, loc models.GeoLocation) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"currentLocation": loc}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": driverID}, update, opts); err != nil {
		return fmt.Errorf("failed to store location for driver %s: %w", driverID, err)
	}
	return nil
}

// GetLocation returns the driver's last known location.
func (r *MongoDriverRepo) GetLocation(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	var loc models.DriverLocation
	if err := r.coll.FindOne(ctx, bson.M{"id": driverID}).Decode(&loc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch location for driver %s: %w", driverID, err)
	}
	return &loc, nil
}
