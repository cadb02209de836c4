package driverRepo

import (
	"context"

	"carrental/models"
)

// DriverRepository stores the last reported position of each driver.
type DriverRepository interface {
	UpsertLocation(ctx context.Context, driverID string, loc models.GeoLocation) error
	GetLocation(ctx context.Context, driverID string) (*models.DriverLocation, error)
}
