package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"carrental/models"
	"carrental/utils"
)

// ExtrasMode selects how extras are charged.
type ExtrasMode string

const (
	// ExtrasFlat charges each extra once per booking.
	ExtrasFlat ExtrasMode = "flat"
	// ExtrasPerDay charges each extra for every rental day.
	ExtrasPerDay ExtrasMode = "per-day"
)

// DefaultTaxRate applies when no rate is configured.
const DefaultTaxRate = 0.18

// dateLayouts are the accepted booking date formats.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

var (
	ErrInvalidDates   = utils.NewAppError(utils.CodeInvalidInput, "start and end dates must be valid dates")
	ErrEndBeforeStart = utils.NewAppError(utils.CodeInvalidInput, "end date must not be before start date")
	ErrInvalidPrice   = utils.NewAppError(utils.CodeInvalidInput, "price and tax rate must be non-negative numbers")
	ErrUnknownExtra   = utils.NewAppError(utils.CodeInvalidInput, "unknown booking extra")
	ErrDuplicateExtra = utils.NewAppError(utils.CodeInvalidInput, "booking extra selected more than once")
)

// PriceInput is everything the pricing computation needs.
type PriceInput struct {
	DailyRate float64
	StartDate time.Time
	EndDate   time.Time
	Extras    []models.BookingExtra
	TaxRate   float64
	Mode      ExtrasMode
}

// ParseBookingDate parses a date in one of the accepted layouts.
func ParseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDates, s)
}

// RentalDays is the number of started 24h periods between start and end, never less than one.
func RentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// ResolveExtras maps extra ids onto the catalog. Unknown or repeated ids are rejected.
func ResolveExtras(ids []string) ([]models.BookingExtra, error) {
	extras := make([]models.BookingExtra, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		extra, ok := models.FindExtra(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExtra, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExtra, id)
		}
		seen[id] = true
		extras = append(extras, extra)
	}
	return extras, nil
}

// CalculatePricing computes the price breakdown:
//
//	days     = max(1, ceil((end-start)/24h))
//	base     = dailyRate * days
//	subtotal = base + extras (flat or per day)
//	total    = subtotal * (1 + taxRate)
func CalculatePricing(in PriceInput) (*models.PriceBreakdown, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, ErrInvalidDates
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, ErrEndBeforeStart
	}
	if !validAmount(in.DailyRate) || !validAmount(in.TaxRate) {
		return nil, ErrInvalidPrice
	}

	days := RentalDays(in.StartDate, in.EndDate)
	base := in.DailyRate * float64(days)

	var extrasTotal float64
	for _, e := range in.Extras {
		extrasTotal += e.Price
	}
	if in.Mode == ExtrasPerDay {
		extrasTotal *= float64(days)
	}

	subtotal := base + extrasTotal
	tax := roundCents(subtotal * in.TaxRate)

	return &models.PriceBreakdown{
		Days:        days,
		DailyRate:   in.DailyRate,
		Base:        base,
		ExtrasTotal: extrasTotal,
		Subtotal:    subtotal,
		TaxRate:     in.TaxRate,
		Tax:         tax,
		Total:       roundCents(subtotal + tax),
	}, nil
}

// DailyRateFor returns the per-day base for a booking type.
func DailyRateFor(bookingType models.BookingType, car *models.Car, driverRate float64) float64 {
	switch bookingType {
	case models.BookingDriverOnly:
		return driverRate
	case models.BookingCarWithDriver:
		return car.PricePerDay + driverRate
	default:
		return car.PricePerDay
	}
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
