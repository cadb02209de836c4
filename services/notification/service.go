package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	notificationRepo "carrental/database/repository/notification"
	"carrental/models"
	"carrental/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Trigger modes.
const (
	TriggerDirect       = "direct"
	TriggerChangeStream = "changestream"
)

// Enqueuer schedules a dispatch task for a notification id.
type Enqueuer interface {
	EnqueueDispatch(ctx context.Context, notificationID string) error
}

// NotificationService writes notification records, which triggers their delivery.
type NotificationService interface {
	Create(ctx context.Context, n *models.Notification) error
	Send(ctx context.Context, actor models.Actor, req models.NotificationRequest) (*models.Notification, error)
	Watch(ctx context.Context) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo     notificationRepo.NotificationRepository
	enqueuer Enqueuer
	trigger  string
	logger   *zap.Logger
}

// NewDefaultNotificationService wires the service. An unknown trigger falls back to direct.
func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	enqueuer Enqueuer,
	trigger string,
	logger *zap.Logger,
) *DefaultNotificationService {
	if trigger != TriggerChangeStream {
		trigger = TriggerDirect
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{repo: repo, enqueuer: enqueuer, trigger: trigger, logger: logger}
}

// Create inserts the record. In direct mode it also enqueues the dispatch task;
// an enqueue failure is logged and leaves the record unprocessed.
func (s *DefaultNotificationService) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.Processed = false

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.trigger != TriggerDirect || s.enqueuer == nil {
		return nil
	}
	if err := s.enqueuer.EnqueueDispatch(ctx, n.ID); err != nil {
		s.logger.Error("Failed to enqueue notification dispatch", zap.String("notificationId", n.ID), zap.Error(err))
	}
	return nil
}

// Send creates an ad-hoc notification. Managers only.
func (s *DefaultNotificationService) Send(ctx context.Context, actor models.Actor, req models.NotificationRequest) (*models.Notification, error) {
	if actor.Role != models.RoleManager {
		return nil, utils.Forbidden(string(models.RoleManager))
	}
	if strings.TrimSpace(req.UserID) == "" && strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "" {
		return nil, utils.NewAppError(utils.CodeInvalidInput, "one of userId, email or phone is required")
	}

	n := &models.Notification{
		UserID:  strings.TrimSpace(req.UserID),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Type:    "manual",
		Title:   req.Title,
		Message: req.Message,
	}
	if err := s.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// Watch enqueues a dispatch for every inserted record until ctx ends.
// It is a no-op in direct mode.
func (s *DefaultNotificationService) Watch(ctx context.Context) error {
	if s.trigger != TriggerChangeStream {
		return nil
	}
	s.logger.Info("Watching notifications change stream")
	return s.repo.WatchInserts(ctx, func(id string) {
		if err := s.enqueuer.EnqueueDispatch(ctx, id); err != nil {
			s.logger.Error("Failed to enqueue notification dispatch", zap.String("notificationId", id), zap.Error(err))
		}
	})
}
