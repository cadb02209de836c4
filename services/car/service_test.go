package car_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"carrental/database"
	"carrental/mocks"
	"carrental/models"
	"carrental/services/car"
	"carrental/services/storage"
	"carrental/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const placeholder = "https://img.example.com/placeholder.png"

type memoryCache struct {
	items   map[string][]byte
	cleared []string
}

func newMemoryCache() *memoryCache { return &memoryCache{items: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, v interface{}, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.items[key] = b
	return nil
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) error {
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	c.cleared = append(c.cleared, prefix)
	return nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
	err      error
}

func (s *fakeStorage) UploadFile(_ context.Context, file, folder string) (*storage.UploadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploaded = append(s.uploaded, folder+"|"+file)
	return &storage.UploadResult{PublicID: "pub-1", SecureURL: "https://cdn.example.com/pub-1.jpg"}, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

type fakeImages struct {
	url   string
	err   error
	input models.CarImageInput
}

func (g *fakeImages) GenerateCarImage(_ context.Context, in models.CarImageInput) (*models.CarImageOutput, error) {
	g.input = in
	if g.err != nil {
		return nil, g.err
	}
	return &models.CarImageOutput{ImageURL: g.url}, nil
}

var (
	manager = models.Actor{ID: "manager-1", Role: models.RoleManager}
	renter  = models.Actor{ID: "renter-1", Role: models.RoleRenter}
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("manager creates car and cache is cleared", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		cache := newMemoryCache()
		cache.items[utils.CarListCachePrefix+"stale"] = []byte("[]")
		svc := car.NewDefaultCarService(repo, cache, nil, nil, placeholder, zap.NewNop())
		repo.On("Create", ctx, mock.AnythingOfType("*models.Car")).Return(nil)

		out, err := svc.Create(ctx, manager, &models.Car{Brand: " Toyota ", Model: "RAV4", PricePerDay: 30000, Seats: 5})
		require.NoError(t, err)
		assert.NotEmpty(t, out.ID)
		assert.Equal(t, "Toyota", out.Brand)
		assert.NotNil(t, out.Images)
		assert.False(t, out.CreatedAt.IsZero())
		assert.Empty(t, cache.items)
		repo.AssertExpectations(t)
	})

	t.Run("renter is denied", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		svc := car.NewDefaultCarService(repo, nil, nil, nil, placeholder, nil)
		_, err := svc.Create(ctx, renter, &models.Car{Brand: "Toyota", Model: "RAV4"})
		assertCode(t, err, utils.CodeForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		svc := car.NewDefaultCarService(new(mocks.CarRepository), nil, nil, nil, placeholder, nil)
		_, err := svc.Create(ctx, manager, &models.Car{Brand: "Toyota", Model: "RAV4", PricePerDay: -1})
		assert.ErrorIs(t, err, car.ErrInvalidCar)
	})

	t.Run("blank model rejected", func(t *testing.T) {
		svc := car.NewDefaultCarService(new(mocks.CarRepository), nil, nil, nil, placeholder, nil)
		_, err := svc.Create(ctx, manager, &models.Car{Brand: "Toyota", Model: "  "})
		assert.ErrorIs(t, err, car.ErrInvalidCar)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	existing := &models.Car{ID: "car-1", Brand: "Toyota", Model: "RAV4", PricePerDay: 30000, Images: []string{"a.jpg"}}

	t.Run("keeps images and replaces fields", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		svc := car.NewDefaultCarService(repo, nil, nil, nil, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(existing, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*models.Car")).Return(nil)

		out, err := svc.Update(ctx, manager, "car-1", &models.Car{Brand: "Toyota", Model: "Prado", PricePerDay: 45000, Available: true})
		require.NoError(t, err)
		assert.Equal(t, "Prado", out.Model)
		assert.Equal(t, 45000.0, out.PricePerDay)
		assert.Equal(t, []string{"a.jpg"}, out.Images)
	})

	t.Run("missing car", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		svc := car.NewDefaultCarService(repo, nil, nil, nil, placeholder, nil)
		repo.On("GetByID", ctx, "nope").Return(nil, database.ErrNotFound)

		_, err := svc.Update(ctx, manager, "nope", &models.Car{Brand: "Toyota", Model: "Prado"})
		assert.ErrorIs(t, err, car.ErrCarNotFound)
	})
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.CarRepository)
	cache := newMemoryCache()
	svc := car.NewDefaultCarService(repo, cache, nil, nil, placeholder, nil)

	repo.On("SetAvailability", ctx, "car-1", false).Return(nil).Once()
	require.NoError(t, svc.SetAvailability(ctx, manager, "car-1", false))
	assert.Equal(t, []string{utils.CarListCachePrefix}, cache.cleared)

	repo.On("SetAvailability", ctx, "gone", true).Return(database.ErrNotFound).Once()
	assert.ErrorIs(t, svc.SetAvailability(ctx, manager, "gone", true), car.ErrCarNotFound)

	assertCode(t, svc.SetAvailability(ctx, renter, "car-1", true), utils.CodeForbidden)
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads and appends url", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		store := &fakeStorage{}
		svc := car.NewDefaultCarService(repo, nil, store, nil, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1", Images: []string{}}, nil)
		repo.On("AddImage", ctx, "car-1", "https://cdn.example.com/pub-1.jpg").Return(nil)

		out, err := svc.UploadImage(ctx, manager, "car-1", "/tmp/photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/pub-1.jpg"}, out.Images)
		assert.Equal(t, []string{storage.CarPhotosFolder + "|/tmp/photo.jpg"}, store.uploaded)
		assert.Empty(t, store.deleted)
	})

	t.Run("orphaned upload is removed", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		store := &fakeStorage{}
		svc := car.NewDefaultCarService(repo, nil, store, nil, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1"}, nil)
		repo.On("AddImage", ctx, "car-1", mock.Anything).Return(errors.New("write failed"))

		_, err := svc.UploadImage(ctx, manager, "car-1", "/tmp/photo.jpg")
		require.Error(t, err)
		assert.Equal(t, []string{"pub-1"}, store.deleted)
	})

	t.Run("no storage configured", func(t *testing.T) {
		svc := car.NewDefaultCarService(new(mocks.CarRepository), nil, nil, nil, placeholder, nil)
		_, err := svc.UploadImage(ctx, manager, "car-1", "/tmp/photo.jpg")
		assert.ErrorIs(t, err, car.ErrNoStorage)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	filter := models.CarFilter{FuelType: "hybrid", MinSeats: 5}
	cars := []models.Car{{ID: "car-1", Brand: "Toyota", Model: "RAV4"}}

	t.Run("second call is served from cache", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		cache := newMemoryCache()
		svc := car.NewDefaultCarService(repo, cache, nil, nil, placeholder, nil)
		repo.On("List", ctx, filter).Return(cars, nil).Once()

		first, err := svc.List(ctx, filter)
		require.NoError(t, err)
		second, err := svc.List(ctx, filter)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		repo.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("different filters use different keys", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		cache := newMemoryCache()
		svc := car.NewDefaultCarService(repo, cache, nil, nil, placeholder, nil)
		repo.On("List", ctx, mock.Anything).Return(cars, nil)

		_, _ = svc.List(ctx, filter)
		_, _ = svc.List(ctx, models.CarFilter{Brand: "Toyota"})
		assert.Len(t, cache.items, 2)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		svc := car.NewDefaultCarService(repo, nil, nil, nil, placeholder, nil)
		repo.On("List", ctx, filter).Return(nil, nil)

		out, err := svc.List(ctx, filter)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestDisplayImage(t *testing.T) {
	ctx := context.Background()

	t.Run("stored photo wins", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		gen := &fakeImages{url: "https://gen.example.com/x.png"}
		svc := car.NewDefaultCarService(repo, nil, nil, gen, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1", Images: []string{"https://cdn/1.jpg"}}, nil)

		url, err := svc.DisplayImage(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/1.jpg", url)
		assert.Empty(t, gen.input.CarName)
	})

	t.Run("generated image is persisted", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		gen := &fakeImages{url: "https://gen.example.com/x.png"}
		svc := car.NewDefaultCarService(repo, nil, nil, gen, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1", Brand: "Toyota", Model: "RAV4", Seats: 5}, nil)
		repo.On("AddImage", ctx, "car-1", "https://gen.example.com/x.png").Return(nil)

		url, err := svc.DisplayImage(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "https://gen.example.com/x.png", url)
		assert.Equal(t, "Toyota RAV4", gen.input.CarName)
		assert.Equal(t, "SUV or sedan", gen.input.CarType)
		repo.AssertExpectations(t)
	})

	t.Run("data uri is returned but not stored", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		gen := &fakeImages{url: "data:image/png;base64,YWJj"}
		svc := car.NewDefaultCarService(repo, nil, nil, gen, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1", Brand: "Kia", Model: "Picanto"}, nil)

		url, err := svc.DisplayImage(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,YWJj", url)
		repo.AssertNotCalled(t, "AddImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("generation failure falls back to placeholder", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		gen := &fakeImages{err: errors.New("quota")}
		svc := car.NewDefaultCarService(repo, nil, nil, gen, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1"}, nil)

		url, err := svc.DisplayImage(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, placeholder, url)
	})

	t.Run("no generator uses placeholder", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		svc := car.NewDefaultCarService(repo, nil, nil, nil, placeholder, nil)
		repo.On("GetByID", ctx, "car-1").Return(&models.Car{ID: "car-1"}, nil)

		url, err := svc.DisplayImage(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, placeholder, url)
	})

	t.Run("unknown car", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		svc := car.NewDefaultCarService(repo, nil, nil, nil, placeholder, nil)
		repo.On("GetByID", ctx, "nope").Return(nil, database.ErrNotFound)

		_, err := svc.DisplayImage(ctx, "nope")
		assert.ErrorIs(t, err, car.ErrCarNotFound)
	})
}
