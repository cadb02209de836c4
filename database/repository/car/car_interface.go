package carRepo

import (
	"context"

	"carrental/models"
)

// CarRepository defines methods for fleet data access.
type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id string) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	SetAvailability(ctx context.Context, id string, available bool) error
	AddImage(ctx context.Context, id, imageURL string) error
	// List returns cars matching the browse filter.
	List(ctx context.Context, filter models.CarFilter) ([]models.Car, error)
	// ListByOwner returns the cars owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Car, error)
	// Brands returns the distinct brand names in the fleet.
	Brands(ctx context.Context) ([]string, error)
}
