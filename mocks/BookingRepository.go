package mocks

import (
	"context"
	"time"

	"carrental/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository is a mock of bookingRepo.BookingRepository.
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	args := m.Called(ctx, customerID)
	list, _ := args.Get(0).([]models.Booking)
	return list, args.Error(1)
}

func (m *BookingRepository) ListForDriver(ctx context.Context, driverID string, carIDs []string) ([]models.Booking, error) {
	args := m.Called(ctx, driverID, carIDs)
	list, _ := args.Get(0).([]models.Booking)
	return list, args.Error(1)
}

func (m *BookingRepository) ListAll(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]models.Booking)
	return list, args.Error(1)
}

func (m *BookingRepository) Transition(ctx context.Context, id string, from []models.BookingStatus, fields bson.M) (bool, error) {
	args := m.Called(ctx, id, from, fields)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *BookingRepository) AppendIssue(ctx context.Context, id string, issue models.BookingIssue, at time.Time) error {
	args := m.Called(ctx, id, issue, at)
	return args.Error(0)
}

func (m *BookingRepository) HasBookingWithDriver(ctx context.Context, customerID, driverID string, status models.BookingStatus) (bool, error) {
	args := m.Called(ctx, customerID, driverID, status)
	return args.Bool(0), args.Error(1)
}
