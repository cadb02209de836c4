package mocks

import (
	"context"

	"carrental/models"

	"github.com/stretchr/testify/mock"
)

// CarRepository is a mock of carRepo.CarRepository.
type CarRepository struct {
	mock.Mock
}

func (m *CarRepository) Create(ctx context.Context, car *models.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *CarRepository) GetByID(ctx context.Context, id string) (*models.Car, error) {
	args := m.Called(ctx, id)
	car, _ := args.Get(0).(*models.Car)
	return car, args.Error(1)
}

func (m *CarRepository) Update(ctx context.Context, car *models.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *CarRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}

func (m *CarRepository) AddImage(ctx context.Context, id, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *CarRepository) List(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	args := m.Called(ctx, filter)
	cars, _ := args.Get(0).([]models.Car)
	return cars, args.Error(1)
}

func (m *CarRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Car, error) {
	args := m.Called(ctx, ownerID)
	cars, _ := args.Get(0).([]models.Car)
	return cars, args.Error(1)
}

func (m *CarRepository) Brands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	brands, _ := args.Get(0).([]string)
	return brands, args.Error(1)
}
