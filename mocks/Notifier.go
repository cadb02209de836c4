package mocks

import (
	"context"
	"time"

	"carrental/models"

	"github.com/stretchr/testify/mock"
)

// Notifier is a mock of booking.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

// ReminderScheduler is a mock of booking.ReminderScheduler.
type ReminderScheduler struct {
	mock.Mock
}

func (m *ReminderScheduler) ScheduleReminder(ctx context.Context, booking *models.Booking, fireAt time.Time) error {
	return m.Called(ctx, booking, fireAt).Error(0)
}
