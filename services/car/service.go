package car

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"carrental/database"
	carRepo "carrental/database/repository/car"
	"carrental/models"
	"carrental/services/storage"
	"carrental/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCarNotFound = utils.NewAppError(utils.CodeNotFound, "car not found")
	ErrInvalidCar  = utils.NewAppError(utils.CodeInvalidInput, "brand, model and a non-negative pricePerDay are required")
	ErrNoStorage   = utils.NewAppError(utils.CodeUnavailable, "image storage is not configured")
)

// Cache is the listing cache.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ImageGenerator renders a picture of a car.
type ImageGenerator interface {
	GenerateCarImage(ctx context.Context, input models.CarImageInput) (*models.CarImageOutput, error)
}

// CarService manages the fleet.
type CarService interface {
	Create(ctx context.Context, actor models.Actor, car *models.Car) (*models.Car, error)
	Update(ctx context.Context, actor models.Actor, id string, car *models.Car) (*models.Car, error)
	SetAvailability(ctx context.Context, actor models.Actor, id string, available bool) error
	UploadImage(ctx context.Context, actor models.Actor, id, localPath string) (*models.Car, error)
	List(ctx context.Context, filter models.CarFilter) ([]models.Car, error)
	Get(ctx context.Context, id string) (*models.Car, error)
	Brands(ctx context.Context) ([]string, error)
	DisplayImage(ctx context.Context, id string) (string, error)
}

// DefaultCarService implements CarService.
type DefaultCarService struct {
	Repo        carRepo.CarRepository
	Cache       Cache
	Storage     storage.StorageService
	Images      ImageGenerator
	Placeholder string
	Logger      *zap.Logger
}

// NewDefaultCarService wires the car service. cache, store and images are optional.
func NewDefaultCarService(repo carRepo.CarRepository, cache Cache, store storage.StorageService, images ImageGenerator, placeholder string, logger *zap.Logger) *DefaultCarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCarService{
		Repo:        repo,
		Cache:       cache,
		Storage:     store,
		Images:      images,
		Placeholder: placeholder,
		Logger:      logger,
	}
}

func requireManager(actor models.Actor) error {
	if actor.Role != models.RoleManager {
		return utils.Forbidden(string(models.RoleManager))
	}
	return nil
}

func validCar(c *models.Car) bool {
	if strings.TrimSpace(c.Brand) == "" || strings.TrimSpace(c.Model) == "" {
		return false
	}
	if math.IsNaN(c.PricePerDay) || math.IsInf(c.PricePerDay, 0) || c.PricePerDay < 0 {
		return false
	}
	return c.Seats >= 0 && c.Year >= 0
}

// Create adds a car to the fleet.
func (s *DefaultCarService) Create(ctx context.Context, actor models.Actor, car *models.Car) (*models.Car, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if !validCar(car) {
		return nil, ErrInvalidCar
	}

	now := time.Now().UTC()
	car.ID = uuid.NewString()
	car.Brand = strings.TrimSpace(car.Brand)
	car.Model = strings.TrimSpace(car.Model)
	if car.Images == nil {
		car.Images = []string{}
	}
	car.CreatedAt = now
	car.UpdatedAt = now

	if err := s.Repo.Create(ctx, car); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.Logger.Info("Car created", zap.String("carId", car.ID), zap.String("brand", car.Brand), zap.String("model", car.Model))
	return car, nil
}

// Update replaces the editable fields of a car.
func (s *DefaultCarService) Update(ctx context.Context, actor models.Actor, id string, car *models.Car) (*models.Car, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if !validCar(car) {
		return nil, ErrInvalidCar
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Brand = strings.TrimSpace(car.Brand)
	existing.Model = strings.TrimSpace(car.Model)
	existing.Year = car.Year
	existing.Seats = car.Seats
	existing.FuelType = car.FuelType
	existing.Transmission = car.Transmission
	existing.PricePerDay = car.PricePerDay
	existing.Available = car.Available
	existing.OwnerID = car.OwnerID
	existing.Description = car.Description
	existing.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, mapNotFound(err)
	}
	s.invalidate(ctx)
	return existing, nil
}

// SetAvailability toggles whether the car can be booked.
func (s *DefaultCarService) SetAvailability(ctx context.Context, actor models.Actor, id string, available bool) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if err := s.Repo.SetAvailability(ctx, id, available); err != nil {
		return mapNotFound(err)
	}
	s.invalidate(ctx)
	return nil
}

// UploadImage stores a photo of the car and appends its URL.
func (s *DefaultCarService) UploadImage(ctx context.Context, actor models.Actor, id, localPath string) (*models.Car, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if s.Storage == nil {
		return nil, ErrNoStorage
	}
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.Storage.UploadFile(ctx, localPath, storage.CarPhotosFolder)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddImage(ctx, id, res.SecureURL); err != nil {
		if delErr := s.Storage.DeleteFile(ctx, res.PublicID); delErr != nil {
			s.Logger.Warn("Failed to remove orphaned upload", zap.String("publicId", res.PublicID), zap.Error(delErr))
		}
		return nil, mapNotFound(err)
	}
	car.Images = append(car.Images, res.SecureURL)
	s.invalidate(ctx)
	return car, nil
}

// List returns cars matching the filter, served from cache when possible.
func (s *DefaultCarService) List(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	key := utils.CarListCachePrefix + filterKey(filter)
	if s.Cache != nil {
		var cached []models.Car
		hit, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			s.Logger.Warn("Car list cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	cars, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cars == nil {
		cars = []models.Car{}
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, cars, utils.CarListCacheTTL); err != nil {
			s.Logger.Warn("Car list cache write failed", zap.Error(err))
		}
	}
	return cars, nil
}

// Get returns one car.
func (s *DefaultCarService) Get(ctx context.Context, id string) (*models.Car, error) {
	car, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return car, nil
}

// Brands returns the brand facet.
func (s *DefaultCarService) Brands(ctx context.Context) ([]string, error) {
	return s.Repo.Brands(ctx)
}

// DisplayImage resolves the image to show for a car: its first stored photo,
// else a generated one (persisted for next time), else the placeholder.
func (s *DefaultCarService) DisplayImage(ctx context.Context, id string) (string, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if len(car.Images) > 0 {
		return car.Images[0], nil
	}
	if s.Images == nil {
		return s.Placeholder, nil
	}

	out, err := s.Images.GenerateCarImage(ctx, models.CarImageInput{
		CarName:        strings.TrimSpace(car.Brand + " " + car.Model),
		CarType:        carType(car),
		CarDescription: car.Description,
	})
	if err != nil {
		s.Logger.Warn("Car image generation failed, using placeholder", zap.String("carId", id), zap.Error(err))
		return s.Placeholder, nil
	}

	if strings.HasPrefix(out.ImageURL, "http") {
		if err := s.Repo.AddImage(ctx, id, out.ImageURL); err != nil {
			s.Logger.Warn("Failed to persist generated image", zap.String("carId", id), zap.Error(err))
		} else {
			s.invalidate(ctx)
		}
	}
	return out.ImageURL, nil
}

func carType(c *models.Car) string {
	switch {
	case c.Seats >= 7:
		return "minivan"
	case c.Seats >= 5:
		return "SUV or sedan"
	case c.Seats > 0:
		return "compact"
	}
	return "car"
}

func (s *DefaultCarService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeletePrefix(ctx, utils.CarListCachePrefix); err != nil {
		s.Logger.Warn("Car list cache invalidation failed", zap.Error(err))
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrCarNotFound
	}
	return fmt.Errorf("car repository: %w", err)
}

func filterKey(f models.CarFilter) string {
	b, _ := json.Marshal(f)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}
