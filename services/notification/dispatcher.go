package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/database"
	notificationRepo "carrental/database/repository/notification"
	userRepo "carrental/database/repository/user"
	"carrental/models"

	"go.uber.org/zap"
)

const defaultSubject = "Notification"

// Dispatcher delivers one notification record over every channel it can reach
// and writes the outcome back onto the record. It never retries.
type Dispatcher struct {
	Notifications notificationRepo.NotificationRepository
	Users         userRepo.UserRepository
	Email         EmailSender
	SMS           SMSSender
	Push          PushSender // nil disables push
	Logger        *zap.Logger
	Now           func() time.Time
}

// NewDispatcher wires a dispatcher. push may be nil.
func NewDispatcher(
	notifications notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	email EmailSender,
	sms SMSSender,
	push PushSender,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		Notifications: notifications,
		Users:         users,
		Email:         email,
		SMS:           sms,
		Push:          push,
		Logger:        logger,
		Now:           time.Now,
	}
}

// Dispatch loads the record by id and processes it.
func (d *Dispatcher) Dispatch(ctx context.Context, id string) error {
	n, err := d.Notifications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load notification %s: %w", id, err)
	}
	return d.Process(ctx, n)
}

// Process delivers n and records the outcome. The returned error only reports a
// failure to write that outcome; delivery failures are stored on the record.
func (d *Dispatcher) Process(ctx context.Context, n *models.Notification) error {
	results, err := d.deliver(ctx, n)
	now := d.Now().UTC()
	if err != nil {
		d.Logger.Error("Notification delivery failed", zap.String("notificationId", n.ID), zap.Error(err))
		return d.Notifications.SaveDeliveryResults(ctx, n.ID, false, now, &models.DeliveryResults{Error: err.Error()})
	}

	d.Logger.Info("Notification processed",
		zap.String("notificationId", n.ID),
		zap.Any("email", results.Email),
		zap.Any("sms", results.SMS))
	return d.Notifications.SaveDeliveryResults(ctx, n.ID, true, now, results)
}

func (d *Dispatcher) deliver(ctx context.Context, n *models.Notification) (results *models.DeliveryResults, err error) {
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, fmt.Errorf("panic during delivery: %v", r)
		}
	}()

	email, phone := n.Email, n.Phone
	needContacts := email == "" || phone == ""
	var user *models.User
	if n.UserID != "" && (needContacts || d.Push != nil) {
		user, err = d.Users.GetByID(ctx, n.UserID)
		if errors.Is(err, database.ErrNotFound) {
			user, err = nil, nil
		}
		if err != nil {
			if needContacts {
				return nil, fmt.Errorf("failed to load user %s: %w", n.UserID, err)
			}
			// Contacts are complete; only push depends on the user.
			d.Logger.Warn("Skipping push, user lookup failed",
				zap.String("notificationId", n.ID), zap.String("userId", n.UserID), zap.Error(err))
			user, err = nil, nil
		}
		if user != nil {
			if email == "" {
				email = user.Email
			}
			if phone == "" {
				phone = user.PhoneNumber
			}
		}
	}

	subject := n.Title
	if subject == "" {
		subject = defaultSubject
	}

	results = &models.DeliveryResults{}
	if email != "" {
		results.Email = attempt(func() (*models.DeliveryResult, error) {
			return d.Email.SendEmail(ctx, email, subject, n.Message)
		})
	}
	if phone != "" {
		results.SMS = attempt(func() (*models.DeliveryResult, error) {
			return d.SMS.SendSMS(ctx, phone, n.Message)
		})
	}
	if d.Push != nil && user != nil && user.FCMToken != "" {
		data := map[string]string{"notificationId": n.ID, "type": n.Type}
		if n.BookingID != "" {
			data["bookingId"] = n.BookingID
		}
		results.Push = attempt(func() (*models.DeliveryResult, error) {
			return d.Push.SendPush(ctx, user.FCMToken, subject, n.Message, data)
		})
	}
	return results, nil
}

// attempt runs one channel send, turning errors and panics into a failed result.
func attempt(send func() (*models.DeliveryResult, error)) (result *models.DeliveryResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &models.DeliveryResult{Success: false, Details: fmt.Sprint(r)}
		}
	}()

	res, err := send()
	if err != nil {
		return &models.DeliveryResult{Success: false, Details: err.Error()}
	}
	if res == nil {
		return &models.DeliveryResult{Success: false, Details: "no result from provider"}
	}
	return res
}
