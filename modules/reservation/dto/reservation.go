package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"libreria/modules/reservation/model"
)

const dateLayout = "2006-01-02"

type ReservationRequest struct {
	UserID         int64  `json:"user_id"`
	BookExternalID int64  `json:"book_external_id"`
	RentalDays     int    `json:"rental_days"`
	StartDate      string `json:"start_date"`

	startDate time.Time
}

func (r *ReservationRequest) Validate() error {
	if r.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if r.BookExternalID <= 0 {
		return errors.New("book_external_id is required")
	}
	if r.RentalDays < 1 {
		return errors.New("rental_days must be at least 1")
	}
	parsed, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return errors.New("start_date must be a date in YYYY-MM-DD format")
	}
	r.startDate = parsed
	return nil
}

// StartDateValue is only meaningful after a successful Validate.
func (r *ReservationRequest) StartDateValue() time.Time {
	return r.startDate
}

type ReturnBookRequest struct {
	ReturnDate string `json:"return_date"`

	returnDate time.Time
}

func (r *ReturnBookRequest) Validate() error {
	parsed, err := time.Parse(dateLayout, r.ReturnDate)
	if err != nil {
		return errors.New("return_date must be a date in YYYY-MM-DD format")
	}
	r.returnDate = parsed
	return nil
}

func (r *ReturnBookRequest) ReturnDateValue() time.Time {
	return r.returnDate
}

type ReservationResponse struct {
	ID                 int64            `json:"id"`
	UserID             int64            `json:"user_id"`
	UserName           string           `json:"user_name"`
	BookExternalID     int64            `json:"book_external_id"`
	BookTitle          string           `json:"book_title"`
	RentalDays         int              `json:"rental_days"`
	StartDate          string           `json:"start_date"`
	ExpectedReturnDate string           `json:"expected_return_date"`
	ActualReturnDate   *string          `json:"actual_return_date"`
	DailyRate          decimal.Decimal  `json:"daily_rate"`
	TotalFee           decimal.Decimal  `json:"total_fee"`
	LateFee            *decimal.Decimal `json:"late_fee"`
	Status             string           `json:"status"`
	CreatedAt          time.Time        `json:"created_at"`
}

// NewReservationResponse resolves user name and book title at read time.
// total_fee in the response is the base fee plus the late fee: existing
// clients depend on this conflated shape, so it stays even though storage
// keeps the two amounts apart.
func NewReservationResponse(r *model.Reservation, userName, bookTitle string) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           userName,
		BookExternalID:     r.BookExternalID,
		BookTitle:          bookTitle,
		RentalDays:         r.RentalDays,
		StartDate:          r.StartDate.Format(dateLayout),
		ExpectedReturnDate: r.ExpectedReturnDate.Format(dateLayout),
		DailyRate:          r.DailyRate,
		TotalFee:           r.FinalTotal(),
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt,
	}
	if r.ActualReturnDate != nil {
		actual := r.ActualReturnDate.Format(dateLayout)
		resp.ActualReturnDate = &actual
	}
	if r.LateFee.Valid {
		lateFee := r.LateFee.Decimal
		resp.LateFee = &lateFee
	}
	return resp
}

type PendingLateFeesResponse struct {
	UserID          int64           `json:"user_id"`
	PendingLateFees decimal.Decimal `json:"pending_late_fees"`
}

type AvailabilityResponse struct {
	BookExternalID int64 `json:"book_external_id"`
	Available      bool  `json:"available"`
}

type FinalTotalResponse struct {
	ReservationID int64           `json:"reservation_id"`
	FinalTotal    decimal.Decimal `json:"final_total"`
}
