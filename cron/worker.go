package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"carrental/database"
	"carrental/models"
	"carrental/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher delivers a stored notification.
type Dispatcher interface {
	Dispatch(ctx context.Context, notificationID string) error
}

// BookingLookup loads a booking by id.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// NotificationWriter stores a notification record.
type NotificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Handlers holds the task handlers run by the worker.
type Handlers struct {
	Dispatcher    Dispatcher
	Bookings      BookingLookup
	Notifications NotificationWriter
	Logger        *zap.Logger
}

// HandleDispatch delivers one notification. It never returns an error so the
// task is attempted exactly once; failures are recorded on the notification.
func (h *Handlers) HandleDispatch(ctx context.Context, task *asynq.Task) error {
	var p models.DispatchPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		h.Logger.Error("Invalid dispatch payload", zap.Error(err))
		return nil
	}
	if err := h.Dispatcher.Dispatch(ctx, p.NotificationID); err != nil {
		h.Logger.Error("Notification dispatch failed", zap.String("notificationId", p.NotificationID), zap.Error(err))
	}
	return nil
}

// HandleReminder writes a pickup reminder for a booking that is still approved.
func (h *Handlers) HandleReminder(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		h.Logger.Error("Invalid reminder payload", zap.Error(err))
		return fmt.Errorf("decode reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	b, err := h.Bookings.GetByID(ctx, p.BookingID)
	if errors.Is(err, database.ErrNotFound) {
		h.Logger.Warn("Reminder for unknown booking", zap.String("bookingId", p.BookingID))
		return nil
	}
	if err != nil {
		return err
	}
	if b.Status != models.StatusApproved {
		h.Logger.Info("Skipping reminder, booking no longer approved",
			zap.String("bookingId", b.ID), zap.String("status", string(b.Status)))
		return nil
	}

	msg := fmt.Sprintf("Reminder: your rental starts on %s", b.StartDate.Format("Mon, 02 Jan 2006"))
	if b.PickupTime != "" {
		msg += " at " + b.PickupTime
	}
	if loc := strings.TrimSpace(b.PickupLocation); loc != "" {
		msg += ". Pickup location: " + loc
	}
	msg += "."

	return h.Notifications.Create(ctx, &models.Notification{
		UserID:    b.CustomerID,
		Type:      "pickup_reminder",
		BookingID: b.ID,
		Title:     "Pickup reminder",
		Message:   msg,
	})
}

// Worker runs the asynq server that processes background tasks.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewWorker builds the worker and registers its handlers.
func NewWorker(redisOpt asynq.RedisClientOpt, h *Handlers) *Worker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationDispatch, h.HandleDispatch)
	mux.HandleFunc(tasks.TypeBookingReminder, h.HandleReminder)

	return &Worker{srv: srv, mux: mux, logger: h.Logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		w.logger.Info("Starting background worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Worker gave up; background tasks will not run")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops fetching tasks and waits for running ones.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
