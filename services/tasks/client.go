package tasks

import (
	"context"
	"fmt"
	"time"

	"carrental/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// enqueuer is the part of *asynq.Client used to queue tasks.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client queues background tasks.
type Client struct {
	q      enqueuer
	logger *zap.Logger
}

// NewClient wraps an asynq client.
func NewClient(q *asynq.Client, logger *zap.Logger) *Client {
	return &Client{q: q, logger: logger}
}

// EnqueueDispatch queues delivery of one notification.
func (c *Client) EnqueueDispatch(ctx context.Context, notificationID string) error {
	task, opts, err := NewDispatchTask(notificationID)
	if err != nil {
		return err
	}
	if _, err := c.q.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue dispatch %s: %w", notificationID, err)
	}
	return nil
}

// ScheduleReminder queues a pickup reminder for the booking at fireAt.
func (c *Client) ScheduleReminder(ctx context.Context, booking *models.Booking, fireAt time.Time) error {
	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID: booking.ID,
		UserID:    booking.CustomerID,
		FireDate:  fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return err
	}
	info, err := c.q.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("schedule reminder for booking %s: %w", booking.ID, err)
	}
	c.logger.Info("Pickup reminder scheduled",
		zap.String("bookingId", booking.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
