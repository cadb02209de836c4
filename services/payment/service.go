package payment

import (
	"context"
	"fmt"
	"strings"

	"carrental/models"
	"carrental/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

var (
	ErrPaymentsNotConfigured = utils.NewAppError(utils.CodeUnavailable, "payments are not configured")
	ErrAlreadyPaid           = utils.NewAppError(utils.CodeConflict, "booking is already paid")
	ErrNotPayable            = utils.NewAppError(utils.CodeConflict, "only approved bookings can be paid")
	ErrNoIntent              = utils.NewAppError(utils.CodeInvalidInput, "no payment has been started for this booking")
	ErrStripe                = utils.NewAppError(utils.CodeUnavailable, "payment provider request failed")
)

// Bookings is what payments need from the booking service.
type Bookings interface {
	Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
	MarkPaid(ctx context.Context, id string) error
}

type PaymentService interface {
	CreateIntent(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentIntent, error)
	Confirm(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentIntent, error)
}

type StripePaymentService struct {
	Intents    IntentAPI
	Bookings   Bookings
	Currency   string
	Configured bool
	Logger     *zap.Logger
}

// NewStripePaymentService wires payments. configured is false when no Stripe key is set.
func NewStripePaymentService(intents IntentAPI, bookings Bookings, currency string, configured bool, logger *zap.Logger) *StripePaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "rwf"
	}
	return &StripePaymentService{
		Intents:    intents,
		Bookings:   bookings,
		Currency:   strings.ToLower(currency),
		Configured: configured,
		Logger:     logger,
	}
}

func (s *StripePaymentService) ownBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	if !s.Configured || s.Intents == nil {
		return nil, ErrPaymentsNotConfigured
	}
	b, err := s.Bookings.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.ID {
		return nil, utils.Forbidden("booking owner")
	}
	return b, nil
}

// CreateIntent starts a card payment for the booking total.
func (s *StripePaymentService) CreateIntent(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentIntent, error) {
	b, err := s.ownBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if b.IsPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status != models.StatusApproved {
		return nil, ErrNotPayable
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(b.TotalPrice, s.Currency)),
		Currency: stripe.String(s.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(fmt.Sprintf("Car rental booking %s", b.ID)),
	}
	params.AddMetadata("bookingId", b.ID)
	params.Context = ctx

	pi, err := s.Intents.New(params)
	if err != nil {
		s.Logger.Error("Failed to create payment intent", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStripe, err)
	}
	if err := s.Bookings.SetPaymentIntent(ctx, b.ID, pi.ID); err != nil {
		return nil, err
	}
	s.Logger.Info("Payment intent created", zap.String("bookingId", b.ID), zap.String("paymentIntentId", pi.ID))

	return &models.PaymentIntent{
		BookingID:       b.ID,
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Amount:          b.TotalPrice,
		Currency:        s.Currency,
		Status:          string(pi.Status),
	}, nil
}

// Confirm checks the intent with Stripe and marks the booking paid once it has succeeded.
func (s *StripePaymentService) Confirm(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentIntent, error) {
	b, err := s.ownBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if b.PaymentIntentID == "" {
		return nil, ErrNoIntent
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := s.Intents.Get(b.PaymentIntentID, params)
	if err != nil {
		s.Logger.Error("Failed to retrieve payment intent", zap.String("paymentIntentId", b.PaymentIntentID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStripe, err)
	}

	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		if err := s.Bookings.MarkPaid(ctx, b.ID); err != nil {
			return nil, err
		}
	}

	return &models.PaymentIntent{
		BookingID:       b.ID,
		PaymentIntentID: pi.ID,
		Amount:          b.TotalPrice,
		Currency:        s.Currency,
		Status:          string(pi.Status),
	}, nil
}
