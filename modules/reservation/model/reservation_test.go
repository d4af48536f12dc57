package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria/modules/reservation/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNewReservation(t *testing.T) {
	start := date(2026, time.March, 1)
	r := model.NewReservation(1, 258027, 7, start, d("15.99"))

	assert.Equal(t, int64(1), r.UserID)
	assert.Equal(t, int64(258027), r.BookExternalID)
	assert.Equal(t, 7, r.RentalDays)
	assert.Equal(t, start, r.StartDate)
	assert.Equal(t, date(2026, time.March, 8), r.ExpectedReturnDate)
	assert.True(t, r.DailyRate.Equal(d("15.99")))
	assert.True(t, r.TotalFee.Equal(d("111.93")), "total fee = %s", r.TotalFee)
	assert.Equal(t, model.StatusActive, r.Status)
	assert.Nil(t, r.ActualReturnDate)
	assert.False(t, r.LateFee.Valid)
}

func TestNewReservation_TruncatesStartDateToCalendarDay(t *testing.T) {
	start := time.Date(2026, time.March, 1, 17, 45, 12, 0, time.UTC)
	r := model.NewReservation(1, 258027, 7, start, d("15.99"))

	assert.Equal(t, date(2026, time.March, 1), r.StartDate)
	assert.Equal(t, date(2026, time.March, 8), r.ExpectedReturnDate)
}

func TestMarkReturned_OnTime(t *testing.T) {
	r := model.NewReservation(1, 258027, 7, date(2026, time.March, 1), d("15.99"))

	r.MarkReturned(date(2026, time.March, 8), d("15.99"))

	require.NotNil(t, r.ActualReturnDate)
	assert.Equal(t, date(2026, time.March, 8), *r.ActualReturnDate)
	assert.Equal(t, model.StatusReturned, r.Status)
	require.True(t, r.LateFee.Valid)
	assert.True(t, r.LateFee.Decimal.IsZero())
}

func TestMarkReturned_Early(t *testing.T) {
	r := model.NewReservation(1, 258027, 7, date(2026, time.March, 1), d("15.99"))

	r.MarkReturned(date(2026, time.March, 3), d("15.99"))

	assert.Equal(t, model.StatusReturned, r.Status)
	require.True(t, r.LateFee.Valid)
	assert.True(t, r.LateFee.Decimal.IsZero())
}

func TestMarkReturned_Late(t *testing.T) {
	r := model.NewReservation(1, 258027, 7, date(2026, time.March, 1), d("15.99"))

	// three whole days past the expected return: 15.99 * 0.15 * 3 = 7.20
	r.MarkReturned(date(2026, time.March, 11), d("15.99"))

	assert.Equal(t, model.StatusReturned, r.Status)
	require.True(t, r.LateFee.Valid)
	assert.True(t, r.LateFee.Decimal.Equal(d("7.20")), "late fee = %s", r.LateFee.Decimal)
}

func TestFinalTotal(t *testing.T) {
	r := model.NewReservation(1, 258027, 10, date(2026, time.March, 1), d("10.00"))
	require.True(t, r.TotalFee.Equal(d("100.00")))

	// late fee not set yet
	assert.True(t, r.FinalTotal().Equal(d("100.00")))

	r.LateFee = decimal.NewNullDecimal(d("15.00"))
	assert.True(t, r.FinalTotal().Equal(d("115.00")))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, model.DaysBetween(date(2026, time.March, 8), date(2026, time.March, 8)))
	assert.Equal(t, 3, model.DaysBetween(date(2026, time.March, 8), date(2026, time.March, 11)))
	assert.Equal(t, -2, model.DaysBetween(date(2026, time.March, 8), date(2026, time.March, 6)))

	// time-of-day never influences the day count
	from := time.Date(2026, time.March, 8, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 9, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, model.DaysBetween(from, to))
}
