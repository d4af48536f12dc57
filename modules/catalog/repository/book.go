package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libreria/modules/catalog/model"
	"libreria/util/errs"
	"libreria/util/storage/sqldb/transactor"
)

type BookRepository interface {
	FindByExternalID(ctx context.Context, externalID int64) (*model.Book, error)
	FindByExternalIDForUpdate(ctx context.Context, externalID int64) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	Upsert(ctx context.Context, book *model.Book) error
	UpdateStock(ctx context.Context, book *model.Book) error
	DecrementAvailable(ctx context.Context, externalID int64) (bool, error)
	IncrementAvailable(ctx context.Context, externalID int64) error
}

type bookRepository struct {
	dbCtx transactor.DBTXContext
}

func NewBookRepository(dbCtx transactor.DBTXContext) BookRepository {
	return &bookRepository{
		dbCtx: dbCtx,
	}
}

func (r *bookRepository) FindByExternalID(ctx context.Context, externalID int64) (*model.Book, error) {
	query := `
	SELECT *
	FROM public.books
	WHERE external_id = $1
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var book model.Book
	err := r.dbCtx(ctx).QueryRowxContext(ctx, query, externalID).StructScan(&book)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while finding a book by external id: %w", err))
	}
	return &book, nil
}

// FindByExternalIDForUpdate locks the book row for the rest of the
// transaction. The book row is the contention point for stock mutations.
func (r *bookRepository) FindByExternalIDForUpdate(ctx context.Context, externalID int64) (*model.Book, error) {
	query := `
	SELECT *
	FROM public.books
	WHERE external_id = $1
	FOR NO KEY UPDATE
`
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var book model.Book
	err := r.dbCtx(ctx).QueryRowxContext(ctx, query, externalID).StructScan(&book)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while locking a book by external id: %w", err))
	}
	return &book, nil
}

func (r *bookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	query := `
	SELECT *
	FROM public.books
	ORDER BY external_id
`
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	books := []model.Book{}
	err := r.dbCtx(ctx).SelectContext(ctx, &books, query)
	if err != nil {
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while listing books: %w", err))
	}
	return books, nil
}

func (r *bookRepository) Upsert(ctx context.Context, book *model.Book) error {
	// sync keeps title and price fresh but never touches stock counters of
	// a book that already exists locally
	query := `
	INSERT INTO public.books (external_id, title, price, available_quantity, stock_quantity)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (external_id)
	DO UPDATE SET title = EXCLUDED.title, price = EXCLUDED.price, updated_at = now()
	RETURNING *
	`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.dbCtx(ctx).
		QueryRowxContext(ctx, query, book.ExternalID, book.Title, book.Price, book.AvailableQuantity, book.StockQuantity).
		StructScan(book)
	if err != nil {
		return errs.HandleDBError(fmt.Errorf("an error occurred while upserting a book: %w", err))
	}
	return nil
}

func (r *bookRepository) UpdateStock(ctx context.Context, book *model.Book) error {
	query := `
	UPDATE public.books
	SET available_quantity = $2, stock_quantity = $3, updated_at = now()
	WHERE external_id = $1
	RETURNING *
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.dbCtx(ctx).
		QueryRowxContext(ctx, query, book.ExternalID, book.AvailableQuantity, book.StockQuantity).
		StructScan(book)
	if err != nil {
		return errs.HandleDBError(fmt.Errorf("an error occurred while updating book stock: %w", err))
	}
	return nil
}

// DecrementAvailable performs the conditional decrement; it reports false
// when no copy was available, so overselling is impossible even without
// the row lock.
func (r *bookRepository) DecrementAvailable(ctx context.Context, externalID int64) (bool, error) {
	query := `
	UPDATE public.books
	SET available_quantity = available_quantity - 1, updated_at = now()
	WHERE external_id = $1
	AND available_quantity > 0
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.dbCtx(ctx).ExecContext(ctx, query, externalID)
	if err != nil {
		return false, errs.HandleDBError(fmt.Errorf("an error occurred while decrementing book availability: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.HandleDBError(fmt.Errorf("an error occurred while decrementing book availability: %w", err))
	}
	return n == 1, nil
}

func (r *bookRepository) IncrementAvailable(ctx context.Context, externalID int64) error {
	query := `
	UPDATE public.books
	SET available_quantity = available_quantity + 1, updated_at = now()
	WHERE external_id = $1
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.dbCtx(ctx).ExecContext(ctx, query, externalID)
	if err != nil {
		return errs.HandleDBError(fmt.Errorf("an error occurred while incrementing book availability: %w", err))
	}
	return nil
}
