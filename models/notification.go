package models

import "time"

// Notification is a record in the notifications collection. Creating one triggers delivery.
type Notification struct {
	ID              string           `bson:"id" json:"id"`
	UserID          string           `bson:"userId,omitempty" json:"userId,omitempty"`
	Email           string           `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string           `bson:"phone,omitempty" json:"phone,omitempty"`
	Type            string           `bson:"type,omitempty" json:"type,omitempty"`
	BookingID       string           `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Title           string           `bson:"title" json:"title"`
	Message         string           `bson:"message" json:"message"`
	Processed       bool             `bson:"processed" json:"processed"`
	ProcessedAt     *time.Time       `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	DeliveryResults *DeliveryResults `bson:"deliveryResults,omitempty" json:"deliveryResults,omitempty"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
}

// DeliveryResult is the outcome of one channel send.
type DeliveryResult struct {
	Success bool   `bson:"success" json:"success"`
	Details string `bson:"details,omitempty" json:"details,omitempty"`
}

// DeliveryResults is written back onto a notification after dispatch.
// Email and SMS are null when the channel was not attempted.
type DeliveryResults struct {
	Email *DeliveryResult `bson:"email" json:"email"`
	SMS   *DeliveryResult `bson:"sms" json:"sms"`
	Push  *DeliveryResult `bson:"push,omitempty" json:"push,omitempty"`
	Error string          `bson:"error,omitempty" json:"error,omitempty"`
}

// NotificationRequest is the manager input for an ad-hoc notification.
type NotificationRequest struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}
