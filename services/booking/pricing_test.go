package booking

import (
	"math"
	"testing"
	"time"

	"carrental/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseBookingDate(s)
	require.NoError(t, err)
	return d
}

func TestCalculatePricing(t *testing.T) {
	gpsAndWifi, err := ResolveExtras([]string{"gps", "wifi"})
	require.NoError(t, err)

	t.Run("flat extras example", func(t *testing.T) {
		p, err := CalculatePricing(PriceInput{
			DailyRate: 30000,
			StartDate: mustDate(t, "2025-03-01"),
			EndDate:   mustDate(t, "2025-03-04"),
			Extras:    gpsAndWifi,
			TaxRate:   0.18,
			Mode:      ExtrasFlat,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, p.Days)
		assert.Equal(t, 90000.0, p.Base)
		assert.Equal(t, 8.0, p.ExtrasTotal)
		assert.Equal(t, 90008.0, p.Subtotal)
		assert.InDelta(t, 16201.44, p.Tax, 1e-9)
		assert.InDelta(t, 106209.44, p.Total, 1e-9)
	})

	t.Run("per-day extras", func(t *testing.T) {
		p, err := CalculatePricing(PriceInput{
			DailyRate: 30000,
			StartDate: mustDate(t, "2025-03-01"),
			EndDate:   mustDate(t, "2025-03-04"),
			Extras:    gpsAndWifi,
			TaxRate:   0.18,
			Mode:      ExtrasPerDay,
		})
		require.NoError(t, err)
		assert.Equal(t, 24.0, p.ExtrasTotal)
		assert.InDelta(t, (90000+24)*1.18, p.Total, 0.005)
	})

	t.Run("same day counts as one day", func(t *testing.T) {
		d := mustDate(t, "2025-03-01")
		p, err := CalculatePricing(PriceInput{DailyRate: 100, StartDate: d, EndDate: d, TaxRate: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, p.Days)
		assert.Equal(t, 100.0, p.Total)
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		p, err := CalculatePricing(PriceInput{
			DailyRate: 100,
			StartDate: mustDate(t, "2025-03-01T09:00:00Z"),
			EndDate:   mustDate(t, "2025-03-02T10:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, p.Days)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := CalculatePricing(PriceInput{
			DailyRate: 100,
			StartDate: mustDate(t, "2025-03-04"),
			EndDate:   mustDate(t, "2025-03-01"),
		})
		assert.ErrorIs(t, err, ErrEndBeforeStart)
	})

	t.Run("zero dates", func(t *testing.T) {
		_, err := CalculatePricing(PriceInput{DailyRate: 100})
		assert.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("nan never propagates", func(t *testing.T) {
		_, err := CalculatePricing(PriceInput{
			DailyRate: math.NaN(),
			StartDate: mustDate(t, "2025-03-01"),
			EndDate:   mustDate(t, "2025-03-02"),
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("total matches formula", func(t *testing.T) {
		start := mustDate(t, "2025-01-10T08:00:00Z")
		for _, hours := range []int{1, 23, 24, 25, 71, 72, 240} {
			end := start.Add(time.Duration(hours) * time.Hour)
			p, err := CalculatePricing(PriceInput{DailyRate: 12345, StartDate: start, EndDate: end, Extras: gpsAndWifi, TaxRate: 0.18})
			require.NoError(t, err)

			days := math.Max(1, math.Ceil(float64(hours)/24))
			assert.InDelta(t, (12345*days+8)*1.18, p.Total, 0.01, "hours=%d", hours)
		}
	})
}

func TestParseBookingDate(t *testing.T) {
	for _, s := range []string{"2025-03-01", "2025-03-01T10:30", "2025-03-01T10:30:00Z"} {
		_, err := ParseBookingDate(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"", "tomorrow", "2025-13-01", "01/03/2025"} {
		_, err := ParseBookingDate(s)
		assert.ErrorIs(t, err, ErrInvalidDates, s)
	}
}

func TestResolveExtras(t *testing.T) {
	extras, err := ResolveExtras([]string{"babySeat", "insurance"})
	require.NoError(t, err)
	assert.Equal(t, []models.BookingExtra{
		{ID: "babySeat", Name: "Baby Seat", Price: 10, Category: "safety"},
		{ID: "insurance", Name: "Additional Insurance", Price: 15, Category: "safety"},
	}, extras)

	_, err = ResolveExtras([]string{"jetpack"})
	assert.ErrorIs(t, err, ErrUnknownExtra)

	_, err = ResolveExtras([]string{"gps", "wifi", "gps"})
	assert.ErrorIs(t, err, ErrDuplicateExtra)
}

func TestDailyRateFor(t *testing.T) {
	car := &models.Car{PricePerDay: 30000}
	assert.Equal(t, 30000.0, DailyRateFor(models.BookingCarOnly, car, 50))
	assert.Equal(t, 30050.0, DailyRateFor(models.BookingCarWithDriver, car, 50))
	assert.Equal(t, 50.0, DailyRateFor(models.BookingDriverOnly, nil, 50))
}
