package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carrental/database"
	"carrental/models"
	"carrental/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const defaultReminderLead = 24 * time.Hour

// CancelOutcome reports the result of a cancellation attempt. A refused
// cancellation is a result, not an error, and leaves the booking unchanged.
type CancelOutcome struct {
	Cancelled bool            `json:"cancelled"`
	Reason    string          `json:"reason,omitempty"`
	Booking   *models.Booking `json:"booking,omitempty"`
}

type draft struct {
	car     *models.Car
	start   time.Time
	end     time.Time
	pricing *models.PriceBreakdown
}

// prepare validates a request and prices it.
func (s *DefaultBookingService) prepare(ctx context.Context, req models.BookingRequest) (*draft, error) {
	if !req.BookingType.Valid() {
		return nil, ErrInvalidType
	}
	start, err := ParseBookingDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseBookingDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	extras, err := ResolveExtras(req.Extras)
	if err != nil {
		return nil, err
	}

	var car *models.Car
	if req.BookingType != models.BookingDriverOnly {
		if strings.TrimSpace(req.CarID) == "" {
			return nil, ErrMissingCar
		}
		car, err = s.loadCar(ctx, req.CarID)
		if err != nil {
			return nil, err
		}
		if !car.Available {
			return nil, ErrCarUnavailable
		}
	}

	pricing, err := CalculatePricing(PriceInput{
		DailyRate: DailyRateFor(req.BookingType, car, s.Settings.DriverDailyRate),
		StartDate: start,
		EndDate:   end,
		Extras:    extras,
		TaxRate:   s.Settings.TaxRate,
		Mode:      s.Settings.ExtrasMode,
	})
	if err != nil {
		return nil, err
	}
	return &draft{car: car, start: start, end: end, pricing: pricing}, nil
}

// Quote prices a booking request without persisting anything.
func (s *DefaultBookingService) Quote(ctx context.Context, actor models.Actor, req models.BookingRequest) (*models.PriceBreakdown, error) {
	d, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return d.pricing, nil
}

// Create places a pending booking for the renter.
func (s *DefaultBookingService) Create(ctx context.Context, actor models.Actor, req models.BookingRequest) (*models.Booking, error) {
	if actor.Role != models.RoleRenter {
		return nil, utils.Forbidden(string(models.RoleRenter))
	}
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	req.DropoffLocation = strings.TrimSpace(req.DropoffLocation)
	if len(req.PickupLocation) < 2 || len(req.DropoffLocation) < 2 {
		return nil, ErrMissingLocation
	}
	d, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	b := &models.Booking{
		ID:              uuid.NewString(),
		CustomerID:      actor.ID,
		CarID:           req.CarID,
		DriverID:        req.DriverID,
		Status:          models.StatusPending,
		BookingType:     req.BookingType,
		StartDate:       d.start,
		EndDate:         d.end,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      req.PickupTime,
		DropoffTime:     req.DropoffTime,
		Extras:          append([]string{}, req.Extras...),
		TotalPrice:      d.pricing.Total,
		Pricing:         d.pricing,
		IsPaid:          false,
		Issues:          []models.BookingIssue{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("customerId", b.CustomerID),
		zap.Float64("total", b.TotalPrice))

	s.notify(ctx, b, "booking_received", "Booking received",
		fmt.Sprintf("We received your booking from %s to %s. It is pending approval. Total: %.2f.",
			b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"), b.TotalPrice))
	return b, nil
}

// Get returns a booking visible to the actor.
func (s *DefaultBookingService) Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, actor, b) {
		return nil, utils.Forbidden("booking owner", string(models.RoleManager), "assigned driver")
	}
	return b, nil
}

// ListMine returns the actor's own bookings, newest first.
func (s *DefaultBookingService) ListMine(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(ctx, actor.ID)
}

// ListAll returns every booking, optionally filtered by status. Managers only.
func (s *DefaultBookingService) ListAll(ctx context.Context, actor models.Actor, status models.BookingStatus) ([]models.Booking, error) {
	if actor.Role != models.RoleManager {
		return nil, utils.Forbidden(string(models.RoleManager))
	}
	if status != "" && !knownStatus(status) {
		return nil, utils.NewAppError(utils.CodeInvalidInput, fmt.Sprintf("unknown status %q", status))
	}
	return s.Bookings.ListAll(ctx, status)
}

// ListForDriver returns bookings on cars the driver owns or naming the driver.
func (s *DefaultBookingService) ListForDriver(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if actor.Role != models.RoleDriver {
		return nil, utils.Forbidden(string(models.RoleDriver))
	}
	cars, err := s.Cars.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver cars: %w", err)
	}
	carIDs := make([]string, 0, len(cars))
	for _, c := range cars {
		carIDs = append(carIDs, c.ID)
	}
	return s.Bookings.ListForDriver(ctx, actor.ID, carIDs)
}

// Cancel cancels a booking if the actor's role allows it from the current status.
func (s *DefaultBookingService) Cancel(ctx context.Context, actor models.Actor, id, reason string) (*CancelOutcome, error) {
	allowed := cancellableBy(actor.Role)
	if allowed == nil {
		return nil, utils.Forbidden(string(models.RoleRenter), string(models.RoleManager))
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleRenter && b.CustomerID != actor.ID {
		return nil, utils.Forbidden("booking owner", string(models.RoleManager))
	}
	if !containsStatus(allowed, b.Status) {
		return &CancelOutcome{Cancelled: false, Reason: cancelRefusal(actor.Role, b.Status)}, nil
	}

	now := s.Now().UTC()
	reason = strings.TrimSpace(reason)
	ok, err := s.Bookings.Transition(ctx, id, allowed, bson.M{
		"status":             models.StatusCancelled,
		"cancelledAt":        now,
		"cancelledBy":        actor.Role,
		"cancellationReason": reason,
		"updatedAt":          now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !ok {
		return &CancelOutcome{Cancelled: false, Reason: "booking status changed before it could be cancelled"}, nil
	}

	b.Status = models.StatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = actor.Role
	b.CancellationReason = reason
	b.UpdatedAt = now

	msg := "Your booking has been cancelled."
	if actor.Role == models.RoleManager {
		msg = "Your booking was cancelled by the rental manager."
	}
	if reason != "" {
		msg += " Reason: " + reason
	}
	s.notify(ctx, b, "booking_cancelled", "Booking cancelled", msg)
	return &CancelOutcome{Cancelled: true, Booking: b}, nil
}

func cancelRefusal(role models.Role, status models.BookingStatus) string {
	if role == models.RoleRenter {
		return fmt.Sprintf("only pending bookings can be cancelled; this booking is %s", status)
	}
	return fmt.Sprintf("only pending or approved bookings can be cancelled; this booking is %s", status)
}

// UpdateStatus moves a booking along the lifecycle. Managers only.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.BookingStatus) (*models.Booking, error) {
	if actor.Role != models.RoleManager {
		return nil, utils.Forbidden(string(models.RoleManager))
	}
	if !managerTargets[status] {
		return nil, ErrInvalidTransition
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	now := s.Now().UTC()
	ok, err := s.Bookings.Transition(ctx, id, []models.BookingStatus{b.Status}, bson.M{
		"status":    status,
		"updatedAt": now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	b.Status = status
	b.UpdatedAt = now

	s.Logger.Info("Booking status updated", zap.String("bookingId", id), zap.String("status", string(status)))

	switch status {
	case models.StatusApproved:
		s.notify(ctx, b, "booking_approved", "Booking approved",
			fmt.Sprintf("Your booking starting %s has been approved.", b.StartDate.Format("2006-01-02")))
		s.scheduleReminder(ctx, b, now)
	case models.StatusRejected:
		s.notify(ctx, b, "booking_rejected", "Booking rejected", "Unfortunately your booking request was rejected.")
	case models.StatusCompleted:
		s.notify(ctx, b, "booking_completed", "Booking completed", "Thank you for renting with us. Your booking is complete.")
	}
	return b, nil
}

// ReportIssue records a problem raised by the booking's renter or driver.
func (s *DefaultBookingService) ReportIssue(ctx context.Context, actor models.Actor, id, description string) (*models.Booking, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyIssue
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	permitted := (actor.Role == models.RoleRenter && b.CustomerID == actor.ID) ||
		(actor.Role == models.RoleDriver && s.isDriverOn(ctx, actor.ID, b))
	if !permitted {
		return nil, utils.Forbidden("booking owner", "assigned driver")
	}

	now := s.Now().UTC()
	issue := models.BookingIssue{ReportedAt: now, Description: description, ReportedBy: actor.ID}
	if err := s.Bookings.AppendIssue(ctx, id, issue, now); err != nil {
		return nil, s.mapNotFound(err, "failed to report issue")
	}

	s.Logger.Warn("Issue reported on booking", zap.String("bookingId", id), zap.String("reportedBy", actor.ID))
	s.notifyManager(ctx, b, "issue_reported", "Issue reported",
		fmt.Sprintf("A %s reported an issue on booking %s: %s", actor.Role, b.ID, description))

	b.Issues = append(b.Issues, issue)
	b.HasIssue = true
	b.UpdatedAt = now
	return b, nil
}

// SetPaymentIntent stores the payment intent created for a booking.
func (s *DefaultBookingService) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	err := s.Bookings.UpdateFields(ctx, id, bson.M{
		"paymentIntentId": paymentIntentID,
		"updatedAt":       s.Now().UTC(),
	})
	return s.mapNotFound(err, "failed to store payment intent")
}

// MarkPaid flags a booking as paid and tells the customer.
func (s *DefaultBookingService) MarkPaid(ctx context.Context, id string) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if b.IsPaid {
		return nil
	}
	now := s.Now().UTC()
	if err := s.Bookings.UpdateFields(ctx, id, bson.M{"isPaid": true, "updatedAt": now}); err != nil {
		return s.mapNotFound(err, "failed to mark booking paid")
	}
	b.IsPaid = true
	b.UpdatedAt = now
	s.notify(ctx, b, "payment_received", "Payment received",
		fmt.Sprintf("We received your payment of %.2f. Thank you!", b.TotalPrice))
	return nil
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, "failed to load booking")
	}
	return b, nil
}

func (s *DefaultBookingService) loadCar(ctx context.Context, id string) (*models.Car, error) {
	car, err := s.Cars.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load car: %w", err)
	}
	return car, nil
}

func (s *DefaultBookingService) mapNotFound(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *DefaultBookingService) canView(ctx context.Context, actor models.Actor, b *models.Booking) bool {
	switch actor.Role {
	case models.RoleManager:
		return true
	case models.RoleRenter:
		return b.CustomerID == actor.ID
	case models.RoleDriver:
		return s.isDriverOn(ctx, actor.ID, b)
	}
	return false
}

// isDriverOn reports whether driverID is named on the booking or owns its car.
func (s *DefaultBookingService) isDriverOn(ctx context.Context, driverID string, b *models.Booking) bool {
	if b.DriverID != "" && b.DriverID == driverID {
		return true
	}
	if b.CarID == "" {
		return false
	}
	car, err := s.Cars.GetByID(ctx, b.CarID)
	if err != nil {
		return false
	}
	return car.OwnerID == driverID
}

// notify writes a notification for the booking's customer. Delivery problems never fail the booking operation.
func (s *DefaultBookingService) notify(ctx context.Context, b *models.Booking, kind, title, message string) {
	if s.Notifier == nil {
		return
	}
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    b.CustomerID,
		Type:      kind,
		BookingID: b.ID,
		Title:     title,
		Message:   message,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Notifier.Create(ctx, n); err != nil {
		s.Logger.Warn("Failed to write booking notification",
			zap.String("bookingId", b.ID), zap.String("type", kind), zap.Error(err))
	}
}

// notifyManager emails the configured manager address about a booking.
func (s *DefaultBookingService) notifyManager(ctx context.Context, b *models.Booking, kind, title, message string) {
	if s.Notifier == nil || s.Settings.ManagerEmail == "" {
		return
	}
	n := &models.Notification{
		ID:        uuid.NewString(),
		Email:     s.Settings.ManagerEmail,
		Type:      kind,
		BookingID: b.ID,
		Title:     title,
		Message:   message,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Notifier.Create(ctx, n); err != nil {
		s.Logger.Warn("Failed to write manager notification",
			zap.String("bookingId", b.ID), zap.String("type", kind), zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking, now time.Time) {
	if s.Reminders == nil {
		return
	}
	lead := s.Settings.ReminderLead
	if lead <= 0 {
		lead = defaultReminderLead
	}
	fireAt := b.StartDate.Add(-lead)
	if !fireAt.After(now) {
		s.Logger.Debug("Reminder time already passed, skipping", zap.String("bookingId", b.ID))
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, b, fireAt); err != nil {
		s.Logger.Warn("Failed to schedule pickup reminder", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func knownStatus(s models.BookingStatus) bool {
	switch s {
	case models.StatusPending, models.StatusApproved, models.StatusCompleted, models.StatusCancelled, models.StatusRejected:
		return true
	}
	return false
}

func containsStatus(list []models.BookingStatus, s models.BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
