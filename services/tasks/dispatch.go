package tasks

import (
	"encoding/json"

	"carrental/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationDispatch = "notification:dispatch"

// NewDispatchTask builds a single-attempt delivery task for one notification.
func NewDispatchTask(notificationID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.DispatchPayload{NotificationID: notificationID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationDispatch, b)
	return task, []asynq.Option{asynq.MaxRetry(0)}, nil
}
