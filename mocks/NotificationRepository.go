package mocks

import (
	"context"
	"time"

	"carrental/models"

	"github.com/stretchr/testify/mock"
)

// NotificationRepository is a mock of notificationRepo.NotificationRepository.
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *NotificationRepository) SaveDeliveryResults(ctx context.Context, id string, processed bool, at time.Time, results *models.DeliveryResults) error {
	return m.Called(ctx, id, processed, at, results).Error(0)
}

func (m *NotificationRepository) WatchInserts(ctx context.Context, onInsert func(id string)) error {
	return m.Called(ctx, onInsert).Error(0)
}
