package models

// ReminderPayload is the body of a scheduled pickup reminder task.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	FireDate  string `json:"fireDate"`
}

// DispatchPayload is the body of a notification dispatch task.
type DispatchPayload struct {
	NotificationID string `json:"notificationId"`
}
