package pricing_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria/modules/reservation/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBase(t *testing.T) {
	tests := []struct {
		name       string
		dailyRate  string
		rentalDays int
		want       string
	}{
		{"whole amounts", "10.00", 5, "50.00"},
		{"seven days at 15.99", "15.99", 7, "111.93"},
		{"single day", "0.99", 1, "0.99"},
		{"zero rate", "0.00", 30, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Base(d(tt.dailyRate), tt.rentalDays)
			assert.True(t, got.Equal(d(tt.want)), "Base(%s, %d) = %s, want %s", tt.dailyRate, tt.rentalDays, got, tt.want)
		})
	}
}

func TestLate(t *testing.T) {
	tests := []struct {
		name      string
		bookPrice string
		daysLate  int
		want      string
	}{
		{"three days at 20.00", "20.00", 3, "9.00"},
		{"three days at 15.99", "15.99", 3, "7.20"},
		{"one day", "10.00", 1, "1.50"},
		{"rounds half up", "0.10", 1, "0.02"}, // 0.015 -> 0.02
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Late(d(tt.bookPrice), tt.daysLate)
			assert.True(t, got.Equal(d(tt.want)), "Late(%s, %d) = %s, want %s", tt.bookPrice, tt.daysLate, got, tt.want)
		})
	}
}

// halfUpDiv divides non-negative n by div rounding half up, in integer
// arithmetic, so the expectations are computed independently of the
// decimal library.
func halfUpDiv(n, div int64) int64 {
	return (n + div/2) / div
}

func TestBaseMatchesHandComputation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		priceCents := rng.Int63n(100_001) // price in [0, 1000.00]
		days := 1 + rng.Intn(365)

		price := decimal.NewFromInt(priceCents).Shift(-2)
		// a scale-2 price times an integer day count stays at scale 2,
		// so the expected value is exact
		want := decimal.NewFromInt(priceCents * int64(days)).Shift(-2)

		got := pricing.Base(price, days)
		require.True(t, got.Equal(want), "Base(%s, %d) = %s, want %s", price, days, got, want)
	}
}

func TestLateMatchesHandComputation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		priceCents := rng.Int63n(100_001)
		daysLate := 1 + rng.Intn(400)

		price := decimal.NewFromInt(priceCents).Shift(-2)
		// price * 0.15 * days in hundredths of a cent, rounded half up to cents
		raw := priceCents * 15 * int64(daysLate)
		want := decimal.NewFromInt(halfUpDiv(raw, 100)).Shift(-2)

		got := pricing.Late(price, daysLate)
		require.True(t, got.Equal(want), "Late(%s, %d) = %s, want %s", price, daysLate, got, want)
	}
}
