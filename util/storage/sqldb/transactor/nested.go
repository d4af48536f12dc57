package transactor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type nestedTransactionNone struct {
	*sqlx.Tx
}

func (t *nestedTransactionNone) BeginTxx(_ context.Context, _ *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, errors.New("nested transactions are not supported")
}

// NestedTransactionsNone rejects any attempt to open a transaction inside
// an already running one.
func NestedTransactionsNone(db sqlxDB, tx *sqlx.Tx) (sqlxDB, sqlxTx) {
	switch db.(type) {
	case *sqlx.DB:
		return &nestedTransactionNone{Tx: tx}, tx
	default:
		panic("unsupported database type for nested transaction")
	}
}

type nestedTransactionSavepoint struct {
	*sqlx.Tx
	depth int
}

func (t *nestedTransactionSavepoint) BeginTxx(ctx context.Context, _ *sql.TxOptions) (*sqlx.Tx, error) {
	if _, err := t.ExecContext(ctx, fmt.Sprintf("SAVEPOINT sp_%d", t.depth+1)); err != nil {
		return nil, fmt.Errorf("failed to create savepoint: %w", err)
	}
	return t.Tx, nil
}

func (t *nestedTransactionSavepoint) Commit() error {
	_, err := t.Exec(fmt.Sprintf("RELEASE SAVEPOINT sp_%d", t.depth))
	return err
}

func (t *nestedTransactionSavepoint) Rollback() error {
	_, err := t.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT sp_%d", t.depth))
	return err
}

// NestedTransactionsSavepoints maps nested WithinTransaction calls onto
// SQL savepoints, so an inner rollback does not abort the outer scope.
func NestedTransactionsSavepoints(db sqlxDB, tx *sqlx.Tx) (sqlxDB, sqlxTx) {
	switch typedDB := db.(type) {
	case *sqlx.DB:
		return &nestedTransactionSavepoint{Tx: tx}, tx
	case *nestedTransactionSavepoint:
		nested := &nestedTransactionSavepoint{Tx: typedDB.Tx, depth: typedDB.depth + 1}
		return nested, nested
	default:
		panic("unsupported database type for nested transaction")
	}
}
