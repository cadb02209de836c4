package mocks

import (
	"context"

	"carrental/models"

	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock of userRepo.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}
