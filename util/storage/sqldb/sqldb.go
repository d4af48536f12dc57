package sqldb

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type DBContext interface {
	DB() *sqlx.DB
}

type CloseFunc func() error

type dbContext struct {
	db *sqlx.DB
}

func NewDBContext(dsn string) (DBContext, CloseFunc, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &dbContext{db: db}, db.Close, nil
}

func (c *dbContext) DB() *sqlx.DB {
	return c.db
}
