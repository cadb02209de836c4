package driver

import (
	"context"
	"errors"
	"math"
	"time"

	"carrental/database"
	bookingRepo "carrental/database/repository/booking"
	driverRepo "carrental/database/repository/driver"
	"carrental/models"
	"carrental/utils"

	"go.uber.org/zap"
)

var (
	ErrLocationNotFound = utils.NewAppError(utils.CodeNotFound, "no location reported for this driver")
	ErrInvalidLocation  = utils.NewAppError(utils.CodeInvalidInput, "lat must be within [-90, 90] and lng within [-180, 180]")
)

// DriverService tracks where drivers are.
type DriverService interface {
	UpdateLocation(ctx context.Context, actor models.Actor, loc models.GeoLocation) (*models.DriverLocation, error)
	GetLocation(ctx context.Context, actor models.Actor, driverID string) (*models.DriverLocation, error)
}

type DefaultDriverService struct {
	Drivers  driverRepo.DriverRepository
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultDriverService(drivers driverRepo.DriverRepository, bookings bookingRepo.BookingRepository, logger *zap.Logger) *DefaultDriverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDriverService{Drivers: drivers, Bookings: bookings, Logger: logger, Now: time.Now}
}

func validCoord(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

// UpdateLocation records the calling driver's position.
func (s *DefaultDriverService) UpdateLocation(ctx context.Context, actor models.Actor, loc models.GeoLocation) (*models.DriverLocation, error) {
	if actor.Role != models.RoleDriver {
		return nil, utils.Forbidden(string(models.RoleDriver))
	}
	if !validCoord(loc.Lat, 90) || !validCoord(loc.Lng, 180) {
		return nil, ErrInvalidLocation
	}

	loc.UpdatedAt = s.Now().UTC()
	if err := s.Drivers.UpsertLocation(ctx, actor.ID, loc); err != nil {
		return nil, err
	}
	return &models.DriverLocation{DriverID: actor.ID, CurrentLocation: loc}, nil
}

// GetLocation returns a driver's last position. Managers and the driver
// can always see it; a renter only while holding an approved booking with
// that driver.
func (s *DefaultDriverService) GetLocation(ctx context.Context, actor models.Actor, driverID string) (*models.DriverLocation, error) {
	switch actor.Role {
	case models.RoleManager:
	case models.RoleDriver:
		if actor.ID != driverID {
			return nil, utils.Forbidden(string(models.RoleManager), "the driver", "renters with an approved booking")
		}
	case models.RoleRenter:
		ok, err := s.Bookings.HasBookingWithDriver(ctx, actor.ID, driverID, models.StatusApproved)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, utils.Forbidden(string(models.RoleManager), "the driver", "renters with an approved booking")
		}
	default:
		return nil, utils.Forbidden(string(models.RoleManager), "the driver", "renters with an approved booking")
	}

	loc, err := s.Drivers.GetLocation(ctx, driverID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}
