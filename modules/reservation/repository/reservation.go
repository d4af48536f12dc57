package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libreria/modules/reservation/model"
	"libreria/util/errs"
	"libreria/util/storage/sqldb/transactor"
)

type ReservationRepository interface {
	Insert(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id int64) (*model.Reservation, error)
	FindAll(ctx context.Context) ([]model.Reservation, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Reservation, error)
	FindActive(ctx context.Context) ([]model.Reservation, error)
	FindOverdue(ctx context.Context, today time.Time) ([]model.Reservation, error)
	ExistsActive(ctx context.Context, userID, bookExternalID int64) (bool, error)
	CountActiveByBook(ctx context.Context, bookExternalID int64) (int64, error)
}

type reservationRepository struct {
	dbCtx transactor.DBTXContext
}

func NewReservationRepository(dbCtx transactor.DBTXContext) ReservationRepository {
	return &reservationRepository{
		dbCtx: dbCtx,
	}
}

func (r *reservationRepository) Insert(ctx context.Context, m *model.Reservation) error {
	// the partial unique index on (user_id, book_external_id) with
	// actual_return_date IS NULL backstops the duplicate-active check
	query := `
	INSERT INTO public.reservations (
		user_id, book_external_id, rental_days, start_date,
		expected_return_date, daily_rate, total_fee, status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING *
	`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.dbCtx(ctx).
		QueryRowxContext(ctx, query,
			m.UserID, m.BookExternalID, m.RentalDays, m.StartDate,
			m.ExpectedReturnDate, m.DailyRate, m.TotalFee, m.Status).
		StructScan(m)
	if err != nil {
		return errs.HandleDBError(fmt.Errorf("an error occurred while inserting a reservation: %w", err))
	}
	return nil
}

func (r *reservationRepository) Update(ctx context.Context, m *model.Reservation) error {
	query := `
	UPDATE public.reservations
	SET actual_return_date = $2, late_fee = $3, status = $4
	WHERE id = $1
	RETURNING *
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.dbCtx(ctx).
		QueryRowxContext(ctx, query, m.ID, m.ActualReturnDate, m.LateFee, m.Status).
		StructScan(m)
	if err != nil {
		return errs.HandleDBError(fmt.Errorf("an error occurred while updating a reservation: %w", err))
	}
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	query := `
	SELECT *
	FROM public.reservations
	WHERE id = $1
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reservation model.Reservation
	err := r.dbCtx(ctx).QueryRowxContext(ctx, query, id).StructScan(&reservation)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while finding a reservation by id: %w", err))
	}
	return &reservation, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]model.Reservation, error) {
	query := `
	SELECT *
	FROM public.reservations
	ORDER BY id
`
	return r.selectMany(ctx, query)
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Reservation, error) {
	query := `
	SELECT *
	FROM public.reservations
	WHERE user_id = $1
	ORDER BY id
`
	return r.selectMany(ctx, query, userID)
}

func (r *reservationRepository) FindActive(ctx context.Context) ([]model.Reservation, error) {
	query := `
	SELECT *
	FROM public.reservations
	WHERE actual_return_date IS NULL
	ORDER BY id
`
	return r.selectMany(ctx, query)
}

func (r *reservationRepository) FindOverdue(ctx context.Context, today time.Time) ([]model.Reservation, error) {
	query := `
	SELECT *
	FROM public.reservations
	WHERE expected_return_date < $1
	AND actual_return_date IS NULL
	ORDER BY id
`
	return r.selectMany(ctx, query, model.DateOnly(today))
}

func (r *reservationRepository) ExistsActive(ctx context.Context, userID, bookExternalID int64) (bool, error) {
	query := `
	SELECT 1
	FROM public.reservations
	WHERE user_id = $1
	AND book_external_id = $2
	AND actual_return_date IS NULL
	LIMIT 1
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists int
	err := r.dbCtx(ctx).QueryRowxContext(ctx, query, userID, bookExternalID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errs.HandleDBError(fmt.Errorf("an error occurred while checking for an active reservation: %w", err))
	}
	return true, nil
}

func (r *reservationRepository) CountActiveByBook(ctx context.Context, bookExternalID int64) (int64, error) {
	query := `
	SELECT count(*)
	FROM public.reservations
	WHERE book_external_id = $1
	AND actual_return_date IS NULL
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int64
	err := r.dbCtx(ctx).GetContext(ctx, &count, query, bookExternalID)
	if err != nil {
		return 0, errs.HandleDBError(fmt.Errorf("an error occurred while counting active reservations: %w", err))
	}
	return count, nil
}

func (r *reservationRepository) selectMany(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	reservations := []model.Reservation{}
	err := r.dbCtx(ctx).SelectContext(ctx, &reservations, query, args...)
	if err != nil {
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while listing reservations: %w", err))
	}
	return reservations, nil
}
