package tasks

import (
	"encoding/json"
	"time"

	"carrental/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.TaskID("reminder:" + payload.BookingID)}

	return task, opts, nil
}
