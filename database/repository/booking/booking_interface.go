package bookingRepo

import (
	"context"
	"time"

	"carrental/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByCustomer returns a customer's bookings, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// ListForDriver returns bookings on any of carIDs or naming driverID, newest first.
	ListForDriver(ctx context.Context, driverID string, carIDs []string) ([]models.Booking, error)
	// ListAll returns every booking, optionally restricted to one status.
	ListAll(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	// Transition applies fields only if the booking is currently in one of from.
	// It reports whether the update matched.
	Transition(ctx context.Context, id string, from []models.BookingStatus, fields bson.M) (bool, error)
	// UpdateFields sets fields on a booking unconditionally.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// AppendIssue pushes an issue onto the booking and flags it.
	AppendIssue(ctx context.Context, id string, issue models.BookingIssue, at time.Time) error
	// HasBookingWithDriver reports whether customerID holds a booking in status naming driverID.
	HasBookingWithDriver(ctx context.Context, customerID, driverID string, status models.BookingStatus) (bool, error)
}
