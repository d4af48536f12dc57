package model

import (
	"time"

	"github.com/shopspring/decimal"

	"libreria/modules/reservation/pricing"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
)

// Reservation records that a user rented a specific book. DailyRate and
// TotalFee are snapshots taken at creation: later price changes on the
// book never alter an existing reservation.
type Reservation struct {
	ID                 int64               `db:"id"`
	UserID             int64               `db:"user_id"`
	BookExternalID     int64               `db:"book_external_id"`
	RentalDays         int                 `db:"rental_days"`
	StartDate          time.Time           `db:"start_date"`
	ExpectedReturnDate time.Time           `db:"expected_return_date"`
	ActualReturnDate   *time.Time          `db:"actual_return_date"`
	DailyRate          decimal.Decimal     `db:"daily_rate"`
	TotalFee           decimal.Decimal     `db:"total_fee"`
	LateFee            decimal.NullDecimal `db:"late_fee"`
	Status             Status              `db:"status"`
	CreatedAt          time.Time           `db:"created_at"`
}

func NewReservation(userID, bookExternalID int64, rentalDays int, startDate time.Time, dailyRate decimal.Decimal) *Reservation {
	start := DateOnly(startDate)
	return &Reservation{
		UserID:             userID,
		BookExternalID:     bookExternalID,
		RentalDays:         rentalDays,
		StartDate:          start,
		ExpectedReturnDate: start.AddDate(0, 0, rentalDays),
		DailyRate:          dailyRate,
		TotalFee:           pricing.Base(dailyRate, rentalDays),
		Status:             StatusActive,
	}
}

func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// MarkReturned closes the reservation. The penalty is computed from the
// book's current price, per whole calendar day past the expected return;
// same-day or earlier returns carry a zero fee.
func (r *Reservation) MarkReturned(returnDate time.Time, bookPrice decimal.Decimal) {
	returned := DateOnly(returnDate)
	r.ActualReturnDate = &returned

	if daysLate := DaysBetween(r.ExpectedReturnDate, returned); daysLate > 0 {
		r.LateFee = decimal.NewNullDecimal(pricing.Late(bookPrice, daysLate))
	} else {
		r.LateFee = decimal.NewNullDecimal(decimal.Zero)
	}

	r.Status = StatusReturned
}

// FinalTotal is the base fee plus the late fee, each taken as zero when
// absent.
func (r *Reservation) FinalTotal() decimal.Decimal {
	total := r.TotalFee
	if r.LateFee.Valid {
		total = total.Add(r.LateFee.Decimal)
	}
	return total
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from one date to another;
// negative when `to` is before `from`.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)) / (24 * time.Hour))
}
