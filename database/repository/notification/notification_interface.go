package notificationRepo

import (
	"context"
	"time"

	"carrental/models"
)

// NotificationRepository defines methods for notification record access.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// SaveDeliveryResults records the dispatch outcome on the notification.
	SaveDeliveryResults(ctx context.Context, id string, processed bool, at time.Time, results *models.DeliveryResults) error
	// WatchInserts calls onInsert with the id of every newly inserted notification until ctx ends.
	WatchInserts(ctx context.Context, onInsert func(id string)) error
}
