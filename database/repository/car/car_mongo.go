package carRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"carrental/database"
	"carrental/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	collectionName = "cars"
	opTimeout      = 5 * time.Second
	indexTimeout   = 10 * time.Second
)

// MongoCarRepo implements CarRepository using MongoDB.
type MongoCarRepo struct {
	coll *mongo.Collection
}

// NewMongoCarRepo creates a new instance of CarRepository using MongoDB.
func NewMongoCarRepo() CarRepository {
	repo := &MongoCarRepo{coll: database.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("car indexes not created", zap.Error(err))
	}
	return repo
}

// newContext bounds a repository call by timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new car document.
func (r *MongoCarRepo) Create(ctx context.Context, car *models.Car) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	if car.Images == nil {
		car.Images = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, car); err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// GetByID retrieves a car by its ID.
func (r *MongoCarRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	var car models.Car
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch car with id %s: %w", id, err)
	}
	return &car, nil
}

// Update replaces the mutable fields of a car.
func (r *MongoCarRepo) Update(ctx context.Context, car *models.Car) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"brand":        car.Brand,
		"model":        car.Model,
		"year":         car.Year,
		"seats":        car.Seats,
		"fuelType":     car.FuelType,
		"transmission": car.Transmission,
		"pricePerDay":  car.PricePerDay,
		"available":    car.Available,
		"description":  car.Description,
		"ownerId":      car.OwnerID,
		"updatedAt":    car.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": car.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update car with id %s: %w", car.ID, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// SetAvailability toggles whether the car can be booked.
func (r *MongoCarRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"available": available, "updatedAt": time.Now()}})
}

// AddImage appends an image URL to the car.
func (r *MongoCarRepo) AddImage(ctx context.Context, id, imageURL string) error {
	return r.updateOne(ctx, id, bson.M{
		"$addToSet": bson.M{"images": imageURL},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

func (r *MongoCarRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update car with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// List returns the cars matching filter.
func (r *MongoCarRepo) List(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	query, opts := BuildListQuery(filter)
	return r.find(ctx, query, opts)
}

// ListByOwner returns the cars owned by ownerID.
func (r *MongoCarRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Car, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID}, options.Find())
}

func (r *MongoCarRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Car, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer cursor.Close(ctx)

	cars := []models.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}
	return cars, nil
}

// Brands returns the distinct brands, sorted.
func (r *MongoCarRepo) Brands(ctx context.Context) ([]string, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "brand", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	brands := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			brands = append(brands, s)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

// BuildListQuery translates browse filters into a Mongo query and find options.
func BuildListQuery(f models.CarFilter) (bson.M, *options.FindOptions) {
	query := bson.M{}
	if f.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		query["$or"] = []bson.M{
			{"brand": pattern},
			{"model": pattern},
		}
	}
	if f.FuelType != "" && f.FuelType != "all" {
		query["fuelType"] = f.FuelType
	}
	if f.Brand != "" && f.Brand != "all" {
		query["brand"] = f.Brand
	}
	if f.MinSeats > 0 {
		query["seats"] = bson.M{"$gte": f.MinSeats}
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		query["pricePerDay"] = price
	}

	opts := options.Find()
	switch f.Sort {
	case "low-to-high":
		opts.SetSort(bson.D{{Key: "pricePerDay", Value: 1}})
	case "high-to-low":
		opts.SetSort(bson.D{{Key: "pricePerDay", Value: -1}})
	}
	return query, opts
}
