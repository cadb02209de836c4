// File: database/repository/booking/booking_mongo.go
package bookingRepo

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
	collectionName = "bookings"
	opTimeout      = 5 * time.Second
	indexTimeout   = 10 * time.Second
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("booking indexes not created", zap.Error(err))
	}
	return repo
}

// newContext bounds a repository call by timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	if booking.Issues == nil {
		booking.Issues = []models.BookingIssue{}
	}
	if booking.Extras == nil {
		booking.Extras = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ListByCustomer returns the customer's bookings ordered by createdAt descending.
func (r *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

// ListForDriver returns bookings on cars owned by the driver or assigned to them.
func (r *MongoBookingRepo) ListForDriver(ctx context.Context, driverID string, carIDs []string) ([]models.Booking, error) {
	or := []bson.M{{"driverId": driverID}}
	if len(carIDs) > 0 {
		or = append(or, bson.M{"carId": bson.M{"$in": carIDs}})
	}
	return r.find(ctx, bson.M{"$or": or})
}

// ListAll returns all bookings, filtered by status when one is given.
func (r *MongoBookingRepo) ListAll(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booking cursor error: %w", err)
	}
	return bookings, nil
}

// Transition sets fields only when the booking's current status is one of from.
func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from []models.BookingStatus, fields bson.M) (bool, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// UpdateFields sets the given fields on a booking.
func (r *MongoBookingRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// AppendIssue adds an issue to the booking without touching its status.
func (r *MongoBookingRepo) AppendIssue(ctx context.Context, id string, issue models.BookingIssue, at time.Time) error {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"issues": issue},
		"$set":  bson.M{"hasIssue": true, "updatedAt": at},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to append issue to booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// HasBookingWithDriver reports whether the customer holds a booking in the given status with driverID.
func (r *MongoBookingRepo) HasBookingWithDriver(ctx context.Context, customerID, driverID string, status models.BookingStatus) (bool, error) {
	ctx, cancel := newContext(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"customerId": customerID, "driverId": driverID, "status": status}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n > 0, nil
}
