package mocks

import (
	"context"

	"carrental/models"

	"github.com/stretchr/testify/mock"
)

// DriverRepository is a mock of driverRepo.DriverRepository.
type DriverRepository struct {
	mock.Mock
}

func (m *DriverRepository) UpsertLocation(ctx context.Context, driverID string, loc models.GeoLocation) error {
	return m.Called(ctx, driverID, loc).Error(0)
}

func (m *DriverRepository) GetLocation(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	args := m.Called(ctx, driverID)
	loc, _ := args.Get(0).(*models.DriverLocation)
	return loc, args.Error(1)
}
