package booking

import (
	"context"
	"time"

	bookingRepo "carrental/database/repository/booking"
	carRepo "carrental/database/repository/car"
	"carrental/models"

	"go.uber.org/zap"
)

// BookingService defines booking operations. Every call carries the acting user and
// authorization is decided here, not in the handlers.
type BookingService interface {
	Quote(ctx context.Context, actor models.Actor, req models.BookingRequest) (*models.PriceBreakdown, error)
	Create(ctx context.Context, actor models.Actor, req models.BookingRequest) (*models.Booking, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListMine(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	ListAll(ctx context.Context, actor models.Actor, status models.BookingStatus) ([]models.Booking, error)
	ListForDriver(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	Cancel(ctx context.Context, actor models.Actor, id, reason string) (*CancelOutcome, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.BookingStatus) (*models.Booking, error)
	ReportIssue(ctx context.Context, actor models.Actor, id, description string) (*models.Booking, error)
	Dashboard(ctx context.Context, actor models.Actor) (*Dashboard, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
	MarkPaid(ctx context.Context, id string) error
}

// Notifier persists a notification record, which triggers its delivery.
type Notifier interface {
	Create(ctx context.Context, n *models.Notification) error
}

// ReminderScheduler queues a pickup reminder to fire at a given time.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking *models.Booking, fireAt time.Time) error
}

// Settings carries the pricing and reminder knobs read from config.
type Settings struct {
	TaxRate         float64
	ExtrasMode      ExtrasMode
	DriverDailyRate float64
	ReminderLead    time.Duration
	// ManagerEmail receives issue reports. Empty disables them.
	ManagerEmail    string
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Cars      carRepo.CarRepository
	Notifier  Notifier
	Reminders ReminderScheduler
	Settings  Settings
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewDefaultBookingService wires the booking service.
func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	cars carRepo.CarRepository,
	notifier Notifier,
	reminders ReminderScheduler,
	settings Settings,
	logger *zap.Logger,
) *DefaultBookingService {
	if settings.ExtrasMode == "" {
		settings.ExtrasMode = ExtrasFlat
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Bookings:  bookings,
		Cars:      cars,
		Notifier:  notifier,
		Reminders: reminders,
		Settings:  settings,
		Logger:    logger,
		Now:       time.Now,
	}
}
