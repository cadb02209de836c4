package notification

import (
	"context"
	"fmt"

	"carrental/models"

	"firebase.google.com/go/v4/messaging"
)

// PushSender delivers a push notification to a device token.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) (*models.DeliveryResult, error)
}

// messenger is the part of the FCM client used here.
type messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender sends pushes through Firebase Cloud Messaging.
type FCMSender struct {
	client messenger
}

// NewFCMSender wraps an initialized messaging client.
func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

func (s *FCMSender) SendPush(ctx context.Context, token, title, body string, data map[string]string) (*models.DeliveryResult, error) {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	if _, err := s.client.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send FCM message: %w", err)
	}
	return &models.DeliveryResult{Success: true}, nil
}
